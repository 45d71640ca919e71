// Package publisher polls the state estimate and publishes it at a fixed
// rate as attitude, odometry and transform messages.
package publisher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/middleware"
	"github.com/roman-kulish/drone-state-publisher/internal/msgs"
	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
)

const (
	TopicAttitude = "/drone/attitude"
	TopicOdometry = "/drone/odometry"
	TopicTF       = "/drone/tf"

	DefaultFrameID      = "/map"
	DefaultChildFrameID = "/base_footprint_drone"

	DefaultPeriod      = 10 * time.Millisecond
	DefaultRecordEvery = 10
)

// Recorder receives state snapshots from the publish loop
type Recorder interface {
	// Record hands the state over without blocking. It returns false when the
	// state was dropped.
	Record(s telemetry.State) bool
}

// Stats are the publish loop counters
type Stats struct {
	Cycles    uint64
	Published uint64
	Failed    uint64
	Dropped   uint64
}

// WithLogger sets the logger for the publisher
func WithLogger(logger *slog.Logger) func(*Publisher) {
	return func(p *Publisher) {
		p.logger = logger.With(slog.String("node", p.node.Name()))
	}
}

// WithPeriod sets the publish period
func WithPeriod(period time.Duration) func(*Publisher) {
	return func(p *Publisher) {
		p.period = period
	}
}

// WithFrameIDs sets the parent and child frames of the transform
func WithFrameIDs(frameID, childFrameID string) func(*Publisher) {
	return func(p *Publisher) {
		p.frameID = frameID
		p.childFrameID = childFrameID
	}
}

// WithRecorder adds a recorder. Recorders receive every n-th polled state,
// see WithRecordEvery.
func WithRecorder(r Recorder) func(*Publisher) {
	return func(p *Publisher) {
		p.recorders = append(p.recorders, r)
	}
}

// WithRecordEvery sets the record decimation
func WithRecordEvery(n int) func(*Publisher) {
	return func(p *Publisher) {
		p.recordEvery = n
	}
}

// WithClock replaces the clock used to stamp messages
func WithClock(now func() time.Time) func(*Publisher) {
	return func(p *Publisher) {
		p.now = now
	}
}

// Publisher owns the three publishers and their message buffers
type Publisher struct {
	node  middleware.Node
	table *telemetry.Table

	period       time.Duration
	frameID      string
	childFrameID string
	recorders    []Recorder
	recordEvery  int
	now          func() time.Time

	handles  telemetry.StateHandles
	attitude publication[*msgs.Point32]
	odometry publication[*msgs.Point32]
	tf       publication[*msgs.TransformStamped]

	isSetup   atomic.Bool
	isRunning atomic.Bool

	cycles    atomic.Uint64
	published atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64

	logger *slog.Logger
}

type publication[M msgs.Message] struct {
	pub middleware.Publisher
	msg M
}

// New creates a Publisher with a discard logger
func New(node middleware.Node, table *telemetry.Table, options ...func(*Publisher)) *Publisher {
	p := Publisher{
		node:         node,
		table:        table,
		period:       DefaultPeriod,
		frameID:      DefaultFrameID,
		childFrameID: DefaultChildFrameID,
		recordEvery:  DefaultRecordEvery,
		now:          time.Now,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&p)
	}

	return &p
}

// Setup creates the publishers, allocates the messages and resolves the
// state estimate handles. It must succeed before Run.
func (p *Publisher) Setup() error {
	if p.isSetup.Load() {
		return fmt.Errorf("publisher is already set up")
	}
	if p.period <= 0 {
		return fmt.Errorf("invalid publish period %s", p.period)
	}
	if p.recordEvery <= 0 {
		p.recordEvery = 1
	}

	handles, err := telemetry.ResolveStateHandles(p.table)
	if err != nil {
		return err
	}

	attitude, err := p.node.Publisher(TopicAttitude, msgs.TypePoint32, middleware.BestEffort)
	if err != nil {
		return fmt.Errorf("creating attitude publisher: %w", err)
	}
	odometry, err := p.node.Publisher(TopicOdometry, msgs.TypePoint32, middleware.BestEffort)
	if err != nil {
		return fmt.Errorf("creating odometry publisher: %w", err)
	}
	tf, err := p.node.Publisher(TopicTF, msgs.TypeTransformStamped, middleware.BestEffort)
	if err != nil {
		return fmt.Errorf("creating transform publisher: %w", err)
	}

	// assigned only once every step succeeded
	p.attitude = publication[*msgs.Point32]{pub: attitude, msg: &msgs.Point32{}}
	p.odometry = publication[*msgs.Point32]{pub: odometry, msg: &msgs.Point32{}}
	p.tf = publication[*msgs.TransformStamped]{
		pub: tf,
		msg: &msgs.TransformStamped{
			Header:       msgs.Header{FrameID: p.frameID},
			ChildFrameID: p.childFrameID,
		},
	}
	p.handles = handles

	p.isSetup.Store(true)
	p.logger.Info("publisher ready",
		slog.Duration("period", p.period),
		slog.String("frame", p.frameID),
		slog.String("childFrame", p.childFrameID))

	return nil
}

// Run publishes the state every period until ctx is cancelled. Publish
// errors are logged and do not stop the loop.
func (p *Publisher) Run(ctx context.Context) error {
	if !p.isSetup.Load() {
		return fmt.Errorf("publisher is not set up")
	}
	if p.isRunning.Swap(true) {
		return fmt.Errorf("publisher is already running")
	}
	defer p.isRunning.Store(false)

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	p.logger.Info("publishing started")

	for {
		select {
		case <-ctx.Done():
			p.release()
			p.logger.Info("publishing stopped",
				slog.Uint64("cycles", p.cycles.Load()),
				slog.Uint64("published", p.published.Load()),
				slog.Uint64("failed", p.failed.Load()))
			p.logger.Debug("last state", slog.Any("variables", p.table.Snapshot()))
			return nil

		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle polls the state once and publishes the three messages
func (p *Publisher) cycle(ctx context.Context) {
	state := p.handles.Read(p.table, p.now())
	p.fill(state)

	p.publish(ctx, p.attitude.pub, p.attitude.msg)
	p.publish(ctx, p.odometry.pub, p.odometry.msg)
	p.publish(ctx, p.tf.pub, p.tf.msg)

	n := p.cycles.Add(1)
	if len(p.recorders) > 0 && (n-1)%uint64(p.recordEvery) == 0 {
		p.record(state)
	}
}

// Stats returns a copy of the loop counters
func (p *Publisher) Stats() Stats {
	return Stats{
		Cycles:    p.cycles.Load(),
		Published: p.published.Load(),
		Failed:    p.failed.Load(),
		Dropped:   p.dropped.Load(),
	}
}

func (p *Publisher) fill(s telemetry.State) {
	p.attitude.msg.X = s.Pitch
	p.attitude.msg.Y = s.Roll
	p.attitude.msg.Z = s.Yaw

	p.odometry.msg.X = s.X
	p.odometry.msg.Y = s.Y
	p.odometry.msg.Z = s.Z

	tf := p.tf.msg
	tf.Header.Stamp = msgs.TimeFrom(s.Timestamp)
	tf.Transform.Rotation = msgs.Quaternion{
		X: float64(s.QX),
		Y: float64(s.QY),
		Z: float64(s.QZ),
		W: float64(s.QW),
	}
	tf.Transform.Translation = msgs.Vector3{
		X: float64(s.X),
		Y: float64(s.Y),
		Z: float64(s.Z),
	}
}

func (p *Publisher) publish(ctx context.Context, pub middleware.Publisher, msg msgs.Message) {
	if err := pub.Publish(ctx, msg); err != nil {
		p.failed.Add(1)
		p.logger.Warn("publish failed", slog.String("topic", pub.Topic()), slog.String("error", err.Error()))
		return
	}

	p.published.Add(1)
}

func (p *Publisher) record(s telemetry.State) {
	for _, r := range p.recorders {
		if !r.Record(s) {
			p.dropped.Add(1)
			p.logger.Warn("recorder busy, state dropped")
		}
	}
}

func (p *Publisher) release() {
	p.attitude = publication[*msgs.Point32]{}
	p.odometry = publication[*msgs.Point32]{}
	p.tf = publication[*msgs.TransformStamped]{}
	p.isSetup.Store(false)
}
