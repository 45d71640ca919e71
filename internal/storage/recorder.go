package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
)

const (
	maxBatchSize         = 100
	defaultQueueSize     = 256
	defaultFlushInterval = time.Second
	flushTimeout         = 5 * time.Second
)

// WithRecorderLogger sets the logger for the recorder
func WithRecorderLogger(logger *slog.Logger) func(*Recorder) {
	return func(r *Recorder) {
		r.logger = logger.With(slog.Int64("sessionID", r.sessionID))
	}
}

// WithMaxBatchSize sets the maximum number of states stored within a single
// database transaction.
func WithMaxBatchSize(size int) func(*Recorder) {
	return func(r *Recorder) {
		r.maxBatchSize = size
	}
}

// WithQueueSize sets the number of states buffered between Record and the
// writer goroutine.
func WithQueueSize(size int) func(*Recorder) {
	return func(r *Recorder) {
		r.queueSize = size
	}
}

// WithFlushInterval sets how often buffered states are written when the
// batch is not full.
func WithFlushInterval(d time.Duration) func(*Recorder) {
	return func(r *Recorder) {
		r.flushInterval = d
	}
}

// Recorder writes states to a Store asynchronously, in batches
type Recorder struct {
	store     Store
	sessionID int64

	states        chan telemetry.State
	queueSize     int
	maxBatchSize  int
	flushInterval time.Duration

	stored  atomic.Uint64
	dropped atomic.Uint64
	logger  *slog.Logger
}

// NewRecorder creates a recorder for an existing session
func NewRecorder(store Store, sessionID int64, options ...func(*Recorder)) *Recorder {
	r := Recorder{
		store:         store,
		sessionID:     sessionID,
		queueSize:     defaultQueueSize,
		maxBatchSize:  maxBatchSize,
		flushInterval: defaultFlushInterval,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&r)
	}

	if r.maxBatchSize <= 0 {
		r.maxBatchSize = maxBatchSize
	}
	r.states = make(chan telemetry.State, r.queueSize)

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

// Stored returns the number of states written to the store
func (r *Recorder) Stored() uint64 {
	return r.stored.Load()
}

// Dropped returns the number of states dropped because the queue was full
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Run writes queued states until ctx is done, then flushes what is left
func (r *Recorder) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	batch := make([]telemetry.State, 0, r.maxBatchSize)

	for {
		select {
		case <-ctx.Done():
			for drained := false; !drained; {
				select {
				case s := <-r.states:
					batch = append(batch, s)
				default:
					drained = true
				}
			}

			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
			err := r.flush(flushCtx, batch)
			cancel()

			r.logger.Info("recorder stopped",
				slog.Uint64("stored", r.stored.Load()),
				slog.Uint64("dropped", r.dropped.Load()))
			return err

		case s := <-r.states:
			batch = append(batch, s)
			if len(batch) < r.maxBatchSize {
				continue
			}

		case <-ticker.C:
		}

		if err := r.flush(ctx, batch); err != nil {
			r.logger.Error(err.Error())
		}
		batch = batch[:0]
	}
}

func (r *Recorder) flush(ctx context.Context, batch []telemetry.State) error {
	for chunk := range slices.Chunk(batch, r.maxBatchSize) {
		if err := r.store.StoreStates(ctx, r.sessionID, chunk); err != nil {
			return fmt.Errorf("storing states: %w", err)
		}
		r.stored.Add(uint64(len(chunk)))
	}
	return nil
}
