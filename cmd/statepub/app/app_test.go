package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/google/go-cmp/cmp"

	"github.com/roman-kulish/drone-state-publisher/internal/middleware"
	"github.com/roman-kulish/drone-state-publisher/internal/msgs"
	"github.com/roman-kulish/drone-state-publisher/internal/publisher"
	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// eventLog keeps the order in which the components did their work
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) count(event string) int {
	n := 0
	for _, e := range l.list() {
		if e == event {
			n++
		}
	}
	return n
}

type fakeNode struct {
	log *eventLog
}

func (n *fakeNode) Name() string                              { return "fake" }
func (n *fakeNode) Ping(context.Context, time.Duration) error { return nil }
func (n *fakeNode) Close() error                              { return nil }
func (n *fakeNode) Publisher(topic, typeName string, _ middleware.QoS) (middleware.Publisher, error) {
	return &fakePublisher{log: n.log, topic: topic}, nil
}

type fakePublisher struct {
	log   *eventLog
	topic string
}

func (p *fakePublisher) Topic() string { return p.topic }

func (p *fakePublisher) Publish(context.Context, msgs.Message) error {
	p.log.add("publish")
	return nil
}

type fakeSource struct {
	log *eventLog
	err error
}

func (s *fakeSource) Run(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	s.log.add("source stopped")
	return nil
}

type fakeRecorder struct {
	log *eventLog
	err error
}

func (r *fakeRecorder) Record(telemetry.State) bool {
	r.log.add("record")
	return true
}

func (r *fakeRecorder) Run(ctx context.Context) error {
	<-ctx.Done()
	r.log.add("flush")
	return r.err
}

func newPublisher(t *testing.T, log *eventLog, rec *fakeRecorder) *publisher.Publisher {
	t.Helper()

	table := telemetry.NewTable()
	if _, err := telemetry.RegisterStateEstimate(table); err != nil {
		t.Fatalf("Failed to register state estimate: %v", err)
	}

	pub := publisher.New(&fakeNode{log: log}, table,
		publisher.WithPeriod(time.Millisecond),
		publisher.WithRecordEvery(1),
		publisher.WithRecorder(rec))
	if err := pub.Setup(); err != nil {
		t.Fatalf("Failed to set up publisher: %v", err)
	}
	return pub
}

func TestRun_FlushesRecordersAfterPublishing(t *testing.T) {
	log := &eventLog{}
	rec := &fakeRecorder{log: log}
	pub := newPublisher(t, log, rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, pub, &fakeSource{log: log}, []recorder{rec})
	}()

	deadline := time.After(2 * time.Second)
	for log.count("record") < 3 {
		select {
		case <-deadline:
			t.Fatal("Publisher did not record")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}

	events := log.list()
	if last := events[len(events)-1]; last != "flush" {
		t.Fatalf("Expected the recorder flush to come last, got %q", last)
	}
	if n := log.count("flush"); n != 1 {
		t.Errorf("Expected a single flush, got %d", n)
	}
	if n := log.count("source stopped"); n != 1 {
		t.Errorf("Expected the source to stop once, got %d", n)
	}

	records := uint64(log.count("record"))
	if cycles := pub.Stats().Cycles; cycles != records {
		t.Errorf("Expected every cycle to be recorded before the flush, got %d cycles and %d records", cycles, records)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name      string
		sourceErr error
		recordErr error
		wantErr   []string
	}{
		{
			name:      "source fails",
			sourceErr: errors.New("link lost"),
			wantErr:   []string{"running source", "link lost"},
		},
		{
			name:      "recorder fails",
			sourceErr: errors.New("link lost"),
			recordErr: errors.New("disk full"),
			wantErr:   []string{"running source", "recording: disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &eventLog{}
			rec := &fakeRecorder{log: log, err: tt.recordErr}
			pub := newPublisher(t, log, rec)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := run(ctx, pub, &fakeSource{log: log, err: tt.sourceErr}, []recorder{rec})
			if err == nil {
				t.Fatal("Expected an error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Expected error to contain %q, got %q", want, err)
				}
			}
			if !errors.Is(err, tt.sourceErr) {
				t.Errorf("Expected the source error to be wrapped, got %v", err)
			}
			if ctx.Err() != nil {
				t.Error("Expected run to stop on the source error")
			}
			if n := log.count("flush"); n != 1 {
				t.Errorf("Expected the recorder to flush once, got %d", n)
			}
		})
	}
}

type fakeEvents struct{}

func (fakeEvents) Events() chan gomavlib.Event { return make(chan gomavlib.Event) }

func TestCreateSource(t *testing.T) {
	tests := []struct {
		name    string
		source  SourceType
		events  telemetry.EventStream
		wantErr string
	}{
		{name: "simulator", source: SourceSimulator},
		{name: "mavlink", source: SourceMAVLink, events: fakeEvents{}},
		{name: "mavlink over lcm", source: SourceMAVLink, events: nil, wantErr: "requires the mavlink transport"},
		{name: "unknown", source: "gps", wantErr: "unknown source type 'gps'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig().Source
			config.Type = tt.source

			table := telemetry.NewTable()
			handles, err := telemetry.RegisterStateEstimate(table)
			if err != nil {
				t.Fatalf("Failed to register state estimate: %v", err)
			}

			source, err := createSource(&config, table, handles, tt.events, discard)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if source == nil {
				t.Error("Expected a source")
			}
		})
	}
}

func TestLCMTransportRejectsMAVLinkSource(t *testing.T) {
	config := DefaultConfig()
	config.Transport.Type = TransportLCM
	config.Source.Type = SourceMAVLink

	err := config.Validate()
	if err == nil || !strings.Contains(err.Error(), "mavlink source requires the mavlink transport") {
		t.Errorf("Expected the mavlink source to be rejected, got %v", err)
	}
}

func TestCreateNode_UnknownTransport(t *testing.T) {
	config := DefaultConfig().Transport
	config.Type = "zenoh"

	node, events, err := createNode(context.Background(), &config, discard)
	if err == nil || !strings.Contains(err.Error(), "unknown transport type 'zenoh'") {
		t.Errorf("Expected unknown transport error, got %v", err)
	}
	if node != nil || events != nil {
		t.Error("Expected no node on error")
	}
}

func TestCreateEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint EndpointType
		want     gomavlib.EndpointConf
		wantErr  bool
	}{
		{name: "udp client", endpoint: EndpointUDPClient, want: gomavlib.EndpointUDPClient{Address: "127.0.0.1:14550"}},
		{name: "udp server", endpoint: EndpointUDPServer, want: gomavlib.EndpointUDPServer{Address: "127.0.0.1:14550"}},
		{name: "tcp client", endpoint: EndpointTCPClient, want: gomavlib.EndpointTCPClient{Address: "127.0.0.1:14550"}},
		{name: "serial", endpoint: EndpointSerial, want: gomavlib.EndpointSerial{Device: "/dev/ttyUSB0", Baud: 57600}},
		{name: "unknown", endpoint: "carrier-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig().Transport
			config.MAVLink.Endpoint = tt.endpoint
			config.MAVLink.Address = "127.0.0.1:14550"
			config.MAVLink.SerialDevice = "/dev/ttyUSB0"

			got, err := createEndpoint(&config, discard)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Endpoint mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreateRecorders(t *testing.T) {
	config := DefaultConfig()
	config.Influx.Enabled = true
	config.Influx.URL = "http://127.0.0.1:8086"
	config.Influx.Org = "drones"
	config.Influx.Bucket = "state"

	recorders, closeAll, err := createRecorders(context.Background(), config, "run-1", discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(recorders) != 1 {
		t.Fatalf("Expected 1 recorder, got %d", len(recorders))
	}

	// the influx client is released even though the recorder never ran
	closeAll()

	config.Influx.Bucket = ""
	if _, _, err = createRecorders(context.Background(), config, "run-1", discard); err == nil {
		t.Error("Expected invalid influx config to fail")
	}
}

func TestCreateStorage(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr string
	}{
		{name: "directory", dir: dir},
		{name: "missing directory", dir: filepath.Join(dir, "missing"), wantErr: "does not exist"},
		{name: "not a directory", dir: file, wantErr: "invalid storage directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := createStorage(&StorageConfig{DataDirectory: tt.dir})
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if store == nil {
				t.Error("Expected a store")
			}
		})
	}
}
