package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls after repeated failures.
var ErrCircuitOpen = errors.New("completion service temporarily unavailable")

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a trial call.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings trips after five straight failures and retries after 30s.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}
}

// BreakerCompleter guards a ChatCompleter with a circuit breaker.
type BreakerCompleter struct {
	next ChatCompleter
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerCompleter wraps next.
func NewBreakerCompleter(name string, next ChatCompleter, s BreakerSettings) *BreakerCompleter {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about provider health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("completion circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerCompleter{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

// ChatWithMessages forwards to the wrapped completer unless the breaker is open.
func (b *BreakerCompleter) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.next.ChatWithMessages(ctx, messages, params)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrCircuitOpen
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State reports the breaker state for health checks.
func (b *BreakerCompleter) State() string {
	return b.cb.State().String()
}
