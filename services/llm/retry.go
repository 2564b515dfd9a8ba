package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/avast/retry-go/v4"

	"recapstream/config"
	"recapstream/internal/metrics"
)

// Policy controls how often a failed generation is retried. Backoff returns the wait
// before the next attempt, given the 1-based number of the attempt that just failed.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// FixedBackoff waits d between every pair of attempts.
func FixedBackoff(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// DefaultPolicy is three attempts back to back.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, Backoff: FixedBackoff(0)}
}

// PolicyFromConfig maps the retry section onto a Policy.
func PolicyFromConfig(cfg config.RetryConfig) Policy {
	p := DefaultPolicy()
	if cfg.MaxAttempts > 0 {
		p.MaxAttempts = cfg.MaxAttempts
	}
	p.Backoff = FixedBackoff(cfg.Backoff)
	return p
}

// Retrier wraps a Generator so each Generate makes up to MaxAttempts calls. When every
// attempt fails, the error of the final attempt is returned as is.
type Retrier struct {
	gen    Generator
	policy Policy
}

func NewRetrier(gen Generator, policy Policy) *Retrier {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Backoff == nil {
		policy.Backoff = FixedBackoff(0)
	}
	return &Retrier{gen: gen, policy: policy}
}

func (r *Retrier) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	defer func() { metrics.GenerationDuration.Observe(time.Since(start).Seconds()) }()

	attempt := 0
	return retry.DoWithData(
		func() (string, error) {
			attempt++
			text, err := r.gen.Generate(ctx, prompt)
			if err != nil {
				metrics.GenerationAttempts.WithLabelValues("error").Inc()
				return "", err
			}
			metrics.GenerationAttempts.WithLabelValues("ok").Inc()
			return text, nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.policy.MaxAttempts)),
		retry.LastErrorOnly(true),
		retry.DelayType(func(uint, error, *retry.Config) time.Duration {
			return r.policy.Backoff(attempt)
		}),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled)
		}),
		retry.OnRetry(func(_ uint, err error) {
			log.Printf("[llm] generation failed (attempt %d/%d): %v", attempt, r.policy.MaxAttempts, err)
		}),
	)
}
