package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"strainbrain/application/ports"
	pkgerrors "strainbrain/pkg/errors"
)

// BreakerClient wraps a completion backend with a circuit breaker so a
// flapping backend fails fast instead of stalling every dispatch on its
// timeout.
type BreakerClient struct {
	inner   ports.Completion
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewBreakerClient decorates the given backend. The breaker opens after
// five consecutive failures and probes again after thirty seconds.
func NewBreakerClient(inner ports.Completion, logger *zap.Logger) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        inner.ModelName(),
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("completion breaker state changed",
				zap.String("backend", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &BreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Generate runs the inner call through the breaker.
func (c *BreakerClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.inner.Generate(ctx, prompt)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", pkgerrors.NewBackendUnavailableError(c.inner.ModelName(), err)
		}
		return "", err
	}
	return result.(string), nil
}

// ModelName identifies the wrapped backend model.
func (c *BreakerClient) ModelName() string { return c.inner.ModelName() }
