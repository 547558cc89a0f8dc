// Package retry re-runs operations that fail for transient reasons, such as
// a headless Chrome tab that crashes mid-capture.
//
//	err := retry.Do(ctx, retry.Config{MaxAttempts: 2, InitDelay: time.Second}, func() error {
//	    return capture()
//	})
package retry

import (
	"context"
	"errors"
	"time"
)

// Strategy defines how the delay grows between attempts.
type Strategy int

const (
	// Constant waits InitDelay between every attempt.
	Constant Strategy = iota
	// Exponential doubles the delay after each attempt.
	Exponential
)

// Config controls retry behaviour.
type Config struct {
	MaxAttempts int           // Total attempts including the first; <= 0 runs fn once.
	InitDelay   time.Duration // Delay before the first retry.
	MaxDelay    time.Duration // Cap on any single delay; 0 means uncapped.
	Strategy    Strategy
}

// StopError marks an error as permanent.
type StopError struct {
	Err error
}

func (e *StopError) Error() string { return e.Err.Error() }
func (e *StopError) Unwrap() error { return e.Err }

// Stop wraps err so that Do returns it without further attempts.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &StopError{Err: err}
}

// wait is replaced in tests.
var wait = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do calls fn until it succeeds, returns a StopError, the attempts run out
// or ctx is done. It returns the last error from fn, unwrapped from any
// StopError, or ctx.Err() if the context ended first.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	attempts := max(cfg.MaxAttempts, 1)
	var err error
	for i := range attempts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(); err == nil {
			return nil
		}
		var stop *StopError
		if errors.As(err, &stop) {
			return stop.Err
		}
		if i < attempts-1 {
			if werr := wait(ctx, Delay(cfg, i)); werr != nil {
				return werr
			}
		}
	}
	return err
}

// Delay returns the wait after the given failed attempt (0-indexed).
func Delay(cfg Config, attempt int) time.Duration {
	d := cfg.InitDelay
	if cfg.Strategy == Exponential {
		for range attempt {
			d *= 2
			if cfg.MaxDelay > 0 && d >= cfg.MaxDelay {
				break
			}
		}
	}
	if cfg.MaxDelay > 0 && d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return d
}
