// Package operation turns fire-and-forget asynchronous remote operations
// into synchronous results by polling their status endpoint until they reach
// a terminal state.
package operation

import (
	"context"
	"fmt"
	"time"

	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
)

const (
	// DefaultInterval is the default wait between polls.
	DefaultInterval = 3 * time.Second
	// DefaultMaxAttempts is the default polling attempt budget.
	DefaultMaxAttempts = 60
)

// NotifyFunc receives a progress snapshot after every non-terminal poll.
type NotifyFunc func(status model.OperationStatus)

// Config is the polling configuration. The worst-case client-side wait is
// bounded by Interval * MaxAttempts.
type Config struct {
	// Interval is the wait between polls.
	Interval time.Duration
	// MaxAttempts is the maximum number of status checks before giving up
	// with model.ErrTimeout.
	MaxAttempts int
	// Notify, when set, is called with the reported progress after every
	// non-terminal poll. Best-effort, informational only.
	Notify NotifyFunc
	// Logger for logging.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// CheckFunc returns the current state of the polled operation.
type CheckFunc[T model.StatusReporter] func(ctx context.Context) (T, error)

// WaitUntilDone polls check until the reported status is terminal and
// returns the full terminal payload. Any check error aborts immediately.
// When MaxAttempts polls all report a non-terminal status it fails with
// model.ErrTimeout without issuing further requests. The wait between polls
// is cancellable through ctx.
func WaitUntilDone[T model.StatusReporter](ctx context.Context, cfg Config, check CheckFunc[T]) (T, error) {
	var zero T
	if err := cfg.defaults(); err != nil {
		return zero, fmt.Errorf("invalid config: %w", err)
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := check(ctx)
		if err != nil {
			return zero, fmt.Errorf("could not check operation status: %w", err)
		}

		status := result.OperationStatus()
		if status.State.Terminal() {
			cfg.Logger.Debugf("Operation reached %q after %d poll(s)", status.State, attempt)
			return result, nil
		}

		cfg.Logger.Debugf("Operation ongoing (attempt %d/%d): [%d%%] %s", attempt, cfg.MaxAttempts, status.Progress, status.CurrentStep)
		if cfg.Notify != nil {
			cfg.Notify(status)
		}

		// No wait after the final attempt, the budget is exhausted either way.
		if attempt == cfg.MaxAttempts {
			break
		}

		timer := time.NewTimer(cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, fmt.Errorf("operation did not complete after %d attempts (%s): %w",
		cfg.MaxAttempts, time.Duration(cfg.MaxAttempts)*cfg.Interval, model.ErrTimeout)
}
