// Package mavlink publishes middleware topics as MAVLink messages using
// gomavlib. Point32 topics become DEBUG_VECT messages named after the last
// topic segment, transforms become ATT_POS_MOCAP.
package mavlink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
	"github.com/bluenviron/gomavlib/v3/pkg/message"

	"github.com/roman-kulish/drone-state-publisher/internal/middleware"
)

const (
	DefaultSystemID        = 1
	DefaultComponentID     = 1
	DefaultHeartbeatPeriod = time.Second

	eventsBufferSize = 64
)

// Config describes the MAVLink node
type Config struct {
	Name            string
	Endpoints       []gomavlib.EndpointConf
	SystemID        uint8
	ComponentID     uint8
	HeartbeatPeriod time.Duration
}

// WithLogger sets the logger for the node
func WithLogger(logger *slog.Logger) func(*Node) {
	return func(n *Node) {
		n.logger = logger.With(slog.String("node", n.name), slog.String("transport", "mavlink"))
	}
}

// WithClock replaces the clock used to stamp messages
func WithClock(now func() time.Time) func(*Node) {
	return func(n *Node) {
		n.now = now
	}
}

// Node is a middleware.Node over MAVLink.
//
// The node consumes the gomavlib event stream: remote heartbeats answer
// pings, and all events are forwarded to Events() for optional consumers
// such as a telemetry source. Forwarded events are dropped when nobody
// reads them.
type Node struct {
	name  string
	write func(message.Message) error
	close func()
	now   func() time.Time

	mu        sync.Mutex
	heartbeat chan struct{} // closed and replaced on every remote heartbeat
	out       chan gomavlib.Event
	closed    atomic.Bool
	done      chan struct{}

	heartbeats atomic.Uint64
	logger     *slog.Logger
}

// New opens the MAVLink endpoints and starts the event loop
func New(conf Config, options ...func(*Node)) (*Node, error) {
	if len(conf.Endpoints) == 0 {
		return nil, fmt.Errorf("mavlink: at least one endpoint is required")
	}
	if conf.SystemID == 0 {
		conf.SystemID = DefaultSystemID
	}
	if conf.ComponentID == 0 {
		conf.ComponentID = DefaultComponentID
	}
	if conf.HeartbeatPeriod == 0 {
		conf.HeartbeatPeriod = DefaultHeartbeatPeriod
	}

	gn, err := gomavlib.NewNode(gomavlib.NodeConf{
		Endpoints:       conf.Endpoints,
		Dialect:         common.Dialect,
		OutVersion:      gomavlib.V2,
		OutSystemID:     conf.SystemID,
		OutComponentID:  conf.ComponentID,
		HeartbeatPeriod: conf.HeartbeatPeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("creating mavlink node: %w", err)
	}

	return newNode(
		conf.Name,
		gn.Events(),
		func(m message.Message) error { return gn.WriteMessageAll(m) },
		func() { gn.Close() },
		options...,
	), nil
}

func newNode(name string, events chan gomavlib.Event, write func(message.Message) error, closeFn func(), options ...func(*Node)) *Node {
	n := Node{
		name:      name,
		write:     write,
		close:     closeFn,
		now:       time.Now,
		heartbeat: make(chan struct{}),
		out:       make(chan gomavlib.Event, eventsBufferSize),
		done:      make(chan struct{}),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&n)
	}

	go n.handleEvents(events)

	return &n
}

func (n *Node) handleEvents(events chan gomavlib.Event) {
	defer close(n.done)
	defer close(n.out)

	for evt := range events {
		switch e := evt.(type) {
		case *gomavlib.EventChannelOpen:
			n.logger.Info("channel open", slog.String("channel", e.Channel.String()))

		case *gomavlib.EventChannelClose:
			n.logger.Warn("channel closed", slog.String("channel", e.Channel.String()))

		case *gomavlib.EventParseError:
			n.logger.Debug("parse error", slog.String("error", e.Error.Error()))

		case *gomavlib.EventFrame:
			if _, ok := e.Message().(*common.MessageHeartbeat); ok {
				n.onHeartbeat()
			}
		}

		select {
		case n.out <- evt:
		default:
		}
	}
}

func (n *Node) onHeartbeat() {
	n.heartbeats.Add(1)

	n.mu.Lock()
	close(n.heartbeat)
	n.heartbeat = make(chan struct{})
	n.mu.Unlock()
}

// Name returns the node name
func (n *Node) Name() string {
	return n.name
}

// Events returns the events received by the node. The channel is closed
// when the node is closed.
func (n *Node) Events() chan gomavlib.Event {
	return n.out
}

// Heartbeats returns the number of remote heartbeats received
func (n *Node) Heartbeats() uint64 {
	return n.heartbeats.Load()
}

// Ping waits for the next heartbeat of a remote system
func (n *Node) Ping(ctx context.Context, timeout time.Duration) error {
	if n.closed.Load() {
		return middleware.ErrNodeClosed
	}

	n.mu.Lock()
	heartbeat := n.heartbeat
	n.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-heartbeat:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: no heartbeat within %s", middleware.ErrAgentUnavailable, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publisher creates a publisher for the topic. MAVLink has no delivery
// guarantees, so only best-effort publishers are supported.
func (n *Node) Publisher(topic, typeName string, qos middleware.QoS) (middleware.Publisher, error) {
	if n.closed.Load() {
		return nil, middleware.ErrNodeClosed
	}
	if err := middleware.ValidatePublisher(topic, typeName); err != nil {
		return nil, err
	}
	if qos != middleware.BestEffort {
		return nil, fmt.Errorf("%w: %s publishers", middleware.ErrUnsupported, qos)
	}

	return &publisher{
		node:     n,
		topic:    topic,
		typeName: typeName,
		name:     debugVectName(topic),
	}, nil
}

// Close stops the node and waits for the event loop to finish
func (n *Node) Close() error {
	if n.closed.Swap(true) {
		return nil
	}

	n.close()
	<-n.done

	n.logger.Info("mavlink node closed", slog.Uint64("heartbeats", n.heartbeats.Load()))
	return nil
}

func (n *Node) timeUsec(t time.Time) uint64 {
	if t.IsZero() {
		t = n.now()
	}
	return uint64(t.UnixMicro())
}
