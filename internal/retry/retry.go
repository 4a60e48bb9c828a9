package retry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vidscope/internal/services"
)

const (
	defaultMaxAttempts  = 3
	defaultInitialDelay = 1000 * time.Millisecond
	defaultMaxDelay     = 8000 * time.Millisecond
	defaultMultiplier   = 2.0
)

// Observer receives attempt lifecycle events. Implementations must be safe
// for concurrent use because independent calls share one observer.
type Observer interface {
	AttemptFailed(surface services.Surface, attempt int, err *services.ClassifiedError)
	RetryScheduled(surface services.Surface, attempt int, delay time.Duration)
	GaveUp(surface services.Surface, attempts int, err *services.ClassifiedError)
}

// Policy is the retry configuration for one call site. It is a plain value:
// each Do invocation reads it and keeps its own attempt counter.
type Policy struct {
	Surface           services.Surface
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64

	// ShouldRetry decides whether a classified failure earns another attempt.
	// Defaults to DefaultRetryable.
	ShouldRetry func(*services.ClassifiedError) bool
	// Classify overrides services.Classify for the policy's surface.
	Classify func(error) *services.ClassifiedError
	// Sleep overrides the context-aware timer wait (useful for tests).
	Sleep func(context.Context, time.Duration) error

	Logger   *slog.Logger
	Observer Observer
}

// DefaultPolicy returns the standard policy for surface: 3 attempts, 1s
// initial delay doubling up to 8s.
func DefaultPolicy(surface services.Surface) Policy {
	return Policy{
		Surface:           surface,
		MaxAttempts:       defaultMaxAttempts,
		InitialDelay:      defaultInitialDelay,
		MaxDelay:          defaultMaxDelay,
		BackoffMultiplier: defaultMultiplier,
		ShouldRetry:       DefaultRetryable,
	}
}

// WithSurface returns a copy of p bound to surface.
func (p Policy) WithSurface(surface services.Surface) Policy {
	p.Surface = surface
	return p
}

// Do invokes op until it succeeds, the classified failure is not retryable,
// or MaxAttempts is reached. Failures are returned as *services.ClassifiedError.
// Cancellation of ctx stops further attempts and returns ctx.Err().
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := p.attempts()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}

		classified := p.classify(err)
		if p.Observer != nil {
			p.Observer.AttemptFailed(p.Surface, attempt, classified)
		}

		if attempt >= attempts || !p.shouldRetry(classified) {
			if p.Observer != nil {
				p.Observer.GaveUp(p.Surface, attempt, classified)
			}
			return zero, classified
		}

		delay := p.Delay(attempt)
		if p.Logger != nil {
			p.Logger.WarnContext(ctx, "retrying after failure",
				slog.String("surface", string(p.Surface)),
				slog.String("kind", string(classified.Kind)),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", attempts),
				slog.Duration("delay", delay),
				slog.String("error", classified.Message),
			)
		}
		if p.Observer != nil {
			p.Observer.RetryScheduled(p.Surface, attempt, delay)
		}
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// Delay returns the wait after the given 1-based failed attempt:
// min(InitialDelay * multiplier^(attempt-1), MaxDelay).
func (p Policy) Delay(attempt int) time.Duration {
	base := p.InitialDelay
	if base <= 0 {
		return 0
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultMaxDelay
	}
	multiplier := p.BackoffMultiplier
	if multiplier < 1 {
		multiplier = defaultMultiplier
	}
	if attempt < 1 {
		attempt = 1
	}

	delay := base
	for i := 1; i < attempt; i++ {
		next := time.Duration(float64(delay) * multiplier)
		if next >= maxDelay || next < delay {
			return maxDelay
		}
		delay = next
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

func (p Policy) attempts() int {
	if p.MaxAttempts <= 0 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) classify(err error) *services.ClassifiedError {
	if p.Classify != nil {
		if classified := p.Classify(err); classified != nil {
			return classified
		}
	}
	return services.Classify(p.Surface, err)
}

func (p Policy) shouldRetry(err *services.ClassifiedError) bool {
	if p.ShouldRetry != nil {
		return p.ShouldRetry(err)
	}
	return DefaultRetryable(err)
}

func (p Policy) sleep(ctx context.Context, delay time.Duration) error {
	if p.Sleep != nil {
		if err := p.Sleep(ctx, delay); err != nil {
			return err
		}
		return ctx.Err()
	}
	return Sleep(ctx, delay)
}

// Sleep waits for delay or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var fallbackRetryKeywords = []string{"timeout", "network", "rate limit", "temporary"}

// DefaultRetryable treats transient network failures, the rate-limit family
// and download-origin processing failures as retryable. Unknown failures are
// retried only when their message looks transient.
func DefaultRetryable(err *services.ClassifiedError) bool {
	if err == nil {
		return false
	}
	switch err.Kind {
	case services.KindTransientNetwork, services.KindRateLimited, services.KindAIQuotaExceeded:
		return true
	case services.KindProcessingFailure:
		return err.Operation == "download" || strings.Contains(strings.ToLower(err.Message), "download")
	case services.KindUnknown:
		message := strings.ToLower(err.Message)
		for _, keyword := range fallbackRetryKeywords {
			if strings.Contains(message, keyword) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
