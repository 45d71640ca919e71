// Package influx records the published drone state in InfluxDB
package influx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
)

// Measurement is the name of the state points
const Measurement = "drone_state"

const (
	defaultQueueSize     = 256
	defaultBatchSize     = 50
	defaultFlushInterval = time.Second
	writeTimeout         = 5 * time.Second
)

// Config is the InfluxDB connection
type Config struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

// Validate checks required fields
func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("url is required"))
	}
	if c.Org == "" {
		errs = append(errs, errors.New("org is required"))
	}
	if c.Bucket == "" {
		errs = append(errs, errors.New("bucket is required"))
	}
	return errors.Join(errs...)
}

// PointWriter writes points synchronously
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// WithLogger sets the logger for the recorder
func WithLogger(logger *slog.Logger) func(*Recorder) {
	return func(r *Recorder) {
		r.logger = logger.With(slog.String("recorder", "influx"))
	}
}

// WithBatchSize sets the number of points written at once
func WithBatchSize(size int) func(*Recorder) {
	return func(r *Recorder) {
		r.batchSize = size
	}
}

// WithFlushInterval sets how often queued points are written when the batch
// is not full.
func WithFlushInterval(d time.Duration) func(*Recorder) {
	return func(r *Recorder) {
		r.flushInterval = d
	}
}

// Recorder writes states as InfluxDB points asynchronously
type Recorder struct {
	writer PointWriter
	tags   map[string]string

	close     func()
	closeOnce sync.Once

	states        chan telemetry.State
	batchSize     int
	flushInterval time.Duration

	written atomic.Uint64
	dropped atomic.Uint64
	logger  *slog.Logger
}

// New connects to InfluxDB. Points are tagged with the run id and the
// state source.
func New(conf Config, runID, source string, options ...func(*Recorder)) (*Recorder, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid influx config: %w", err)
	}

	client := influxdb2.NewClient(conf.URL, conf.Token)
	r := NewRecorder(client.WriteAPIBlocking(conf.Org, conf.Bucket), runID, source, options...)
	r.close = client.Close

	return r, nil
}

// NewRecorder creates a recorder on top of a point writer
func NewRecorder(w PointWriter, runID, source string, options ...func(*Recorder)) *Recorder {
	r := Recorder{
		writer:        w,
		tags:          map[string]string{"run_id": runID, "source": source},
		close:         func() {},
		states:        make(chan telemetry.State, defaultQueueSize),
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&r)
	}
	if r.batchSize <= 0 {
		r.batchSize = defaultBatchSize
	}

	return &r
}

// Record queues the state without blocking. It returns false when the queue
// is full and the state was dropped.
func (r *Recorder) Record(s telemetry.State) bool {
	select {
	case r.states <- s:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Written returns the number of points written
func (r *Recorder) Written() uint64 {
	return r.written.Load()
}

// Close releases the InfluxDB client. Run closes the recorder when it
// returns, Close is for recorders that never ran. It is safe to call Close
// multiple times.
func (r *Recorder) Close() error {
	r.closeOnce.Do(r.close)
	return nil
}

// Run writes queued states until ctx is done. Write errors are logged, the
// points of a failed write are lost.
func (r *Recorder) Run(ctx context.Context) error {
	defer r.Close()

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	points := make([]*write.Point, 0, r.batchSize)

	for {
		select {
		case <-ctx.Done():
			for drained := false; !drained; {
				select {
				case s := <-r.states:
					points = append(points, r.point(s))
				default:
					drained = true
				}
			}

			writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
			err := r.write(writeCtx, points)
			cancel()

			r.logger.Info("influx recorder stopped",
				slog.Uint64("written", r.written.Load()),
				slog.Uint64("dropped", r.dropped.Load()))
			return err

		case s := <-r.states:
			points = append(points, r.point(s))
			if len(points) < r.batchSize {
				continue
			}

		case <-ticker.C:
		}

		if err := r.write(ctx, points); err != nil {
			r.logger.Error(err.Error())
		}
		points = points[:0]
	}
}

func (r *Recorder) write(ctx context.Context, points []*write.Point) error {
	if len(points) == 0 {
		return nil
	}
	if err := r.writer.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("writing %d points: %w", len(points), err)
	}
	r.written.Add(uint64(len(points)))
	return nil
}

func (r *Recorder) point(s telemetry.State) *write.Point {
	return influxdb2.NewPoint(
		Measurement,
		r.tags,
		map[string]interface{}{
			"x":     s.X,
			"y":     s.Y,
			"z":     s.Z,
			"roll":  s.Roll,
			"pitch": s.Pitch,
			"yaw":   s.Yaw,
			"qx":    s.QX,
			"qy":    s.QY,
			"qz":    s.QZ,
			"qw":    s.QW,
		},
		s.Timestamp,
	)
}
