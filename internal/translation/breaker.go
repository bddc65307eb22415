package translation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// BreakerBackend stops calling a failing backend for a cooldown period after a
// run of consecutive failures. Calls made while the breaker is open fail with
// gobreaker.ErrOpenState.
type BreakerBackend struct {
	next Backend
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerBackend wraps next in a circuit breaker
func NewBreakerBackend(next Backend, threshold uint32, cooldown time.Duration) *BreakerBackend {
	settings := gobreaker.Settings{
		Name:    next.Name(),
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("backend", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Translation circuit breaker changed state")
		},
	}

	return &BreakerBackend{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate calls the wrapped backend through the breaker
func (b *BreakerBackend) Translate(ctx context.Context, text string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// Name returns the wrapped backend name
func (b *BreakerBackend) Name() string {
	return b.next.Name()
}

// State returns the current breaker state
func (b *BreakerBackend) State() gobreaker.State {
	return b.cb.State()
}

// BreakerState returns the breaker state of b when it is wrapped in a circuit
// breaker
func BreakerState(b Backend) (gobreaker.State, bool) {
	breaker, ok := b.(*BreakerBackend)
	if !ok {
		return gobreaker.StateClosed, false
	}
	return breaker.State(), true
}
