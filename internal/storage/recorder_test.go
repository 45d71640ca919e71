package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/telemetry"
	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

type fakeStore struct {
	mu      sync.Mutex
	batches [][]telemetry.State
	err     error
}

func (f *fakeStore) CreateSession(context.Context, string, string, any) (int64, error) {
	return 1, nil
}

func (f *fakeStore) Session(context.Context, int64) (*track.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Sessions(context.Context) ([]*track.Session, error) {
	return nil, nil
}

func (f *fakeStore) StoreStates(_ context.Context, _ int64, states []telemetry.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]telemetry.State(nil), states...))
	return nil
}

func (f *fakeStore) Close() error {
	return nil
}

func (f *fakeStore) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func TestRecorder_Batches(t *testing.T) {
	store := &fakeStore{}
	rec := NewRecorder(store, 1, WithMaxBatchSize(4), WithQueueSize(32), WithFlushInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- rec.Run(ctx)
	}()

	for _, s := range testStates(time.Now(), 10) {
		if !rec.Record(s) {
			t.Fatal("Expected state to be queued")
		}
	}

	deadline := time.After(time.Second)
	for store.total() < 8 {
		select {
		case <-deadline:
			t.Fatalf("Expected 2 full batches, stored %d", store.total())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.total() != 10 {
		t.Errorf("Expected 10 stored states, got %d", store.total())
	}
	if rec.Stored() != 10 {
		t.Errorf("Expected 10 counted states, got %d", rec.Stored())
	}
	for i, b := range store.batches {
		if len(b) > 4 {
			t.Errorf("Batch %d exceeds max size: %d", i, len(b))
		}
	}
}

func TestRecorder_FlushInterval(t *testing.T) {
	store := &fakeStore{}
	rec := NewRecorder(store, 1, WithFlushInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = rec.Run(ctx)
	}()

	rec.Record(telemetry.State{X: 1})

	deadline := time.After(time.Second)
	for store.total() < 1 {
		select {
		case <-deadline:
			t.Fatal("Expected state to be flushed")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	rec := NewRecorder(&fakeStore{}, 1, WithQueueSize(2))

	for range 3 {
		rec.Record(telemetry.State{})
	}
	if rec.Dropped() != 1 {
		t.Errorf("Expected 1 dropped state, got %d", rec.Dropped())
	}
}

func TestRecorder_FinalFlushError(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	rec := NewRecorder(store, 1, WithFlushInterval(time.Hour))

	rec.Record(telemetry.State{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := rec.Run(ctx); !errors.Is(err, store.err) {
		t.Errorf("Expected store error, got %v", err)
	}
}
