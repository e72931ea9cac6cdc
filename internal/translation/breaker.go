package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

// BreakerTranslator runs a model translator behind a circuit breaker and
// answers from the fallback translator whenever the model fails or the
// circuit is open.
type BreakerTranslator struct {
	primary  Translator
	fallback Translator
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerTranslator creates a breaker that opens after three consecutive
// failures and probes the model again after thirty seconds
func NewBreakerTranslator(primary, fallback Translator) *BreakerTranslator {
	return newBreakerTranslator(primary, fallback, 3, 30*time.Second)
}

func newBreakerTranslator(primary, fallback Translator, maxFailures uint32, timeout time.Duration) *BreakerTranslator {
	settings := gobreaker.Settings{
		Name:        primary.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled request says nothing about the model's health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("translation circuit breaker changed state", "engine", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerTranslator{
		primary:  primary,
		fallback: fallback,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerTranslator) Translate(ctx context.Context, text string, dir lexicon.Direction) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.primary.Translate(ctx, text, dir)
	})
	if err == nil {
		return result.(string), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	if errors.Is(err, gobreaker.ErrOpenState) {
		slog.Debug("circuit open, using fallback", "engine", b.primary.Name(), "fallback", b.fallback.Name())
	} else {
		slog.Warn("model translation failed, using fallback", "engine", b.primary.Name(), "fallback", b.fallback.Name(), "error", err)
	}
	translated, fbErr := b.fallback.Translate(ctx, text, dir)
	if fbErr != nil {
		return "", fmt.Errorf("%s: %w; fallback %s: %v", b.primary.Name(), err, b.fallback.Name(), fbErr)
	}
	return translated, nil
}

func (b *BreakerTranslator) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", b.primary.Name(), b.fallback.Name())
}

// State reports the breaker state: closed, half-open or open
func (b *BreakerTranslator) State() string {
	return b.cb.State().String()
}
