package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Defaults of the agent connectivity poll
const (
	DefaultPingTimeout  = time.Second
	DefaultPingAttempts = 10
	DefaultRetryDelay   = 100 * time.Millisecond
)

// WaitOptions configures WaitForAgent
type WaitOptions struct {
	Timeout    time.Duration // Timeout of a single ping
	Attempts   int           // Pings per round
	RetryDelay time.Duration // Pause between rounds
	Logger     *slog.Logger
}

// DefaultWaitOptions returns the default connectivity poll: rounds of ten
// one-second pings, 100 ms apart.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{
		Timeout:    DefaultPingTimeout,
		Attempts:   DefaultPingAttempts,
		RetryDelay: DefaultRetryDelay,
	}
}

// PingAgent pings the agent up to attempts times and succeeds on the first answer
func PingAgent(ctx context.Context, p Pinger, timeout time.Duration, attempts int) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = p.Ping(ctx, timeout); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrNodeClosed) {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrAgentUnavailable, attempts, err)
}

// WaitForAgent blocks until the agent answers or the context is cancelled.
// A closed node ends the wait at once.
func WaitForAgent(ctx context.Context, p Pinger, opts WaitOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for round := 1; ; round++ {
		err := PingAgent(ctx, p, opts.Timeout, opts.Attempts)
		if err == nil {
			logger.Info("agent available", slog.Int("rounds", round))
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("waiting for agent: %w", ctx.Err())
		}
		if errors.Is(err, ErrNodeClosed) {
			return fmt.Errorf("waiting for agent: %w", err)
		}

		logger.Debug("agent not available yet", slog.Int("round", round), slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for agent: %w", ctx.Err())
		case <-time.After(opts.RetryDelay):
		}
	}
}
