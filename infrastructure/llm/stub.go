package llm

import (
	"context"

	"go.uber.org/zap"
)

// StubClient is the no-key development backend. Every dispatch declines,
// so the graph and scheduler paths run end to end without an API key.
type StubClient struct {
	logger *zap.Logger
}

// NewStubClient creates the stub backend.
func NewStubClient(logger *zap.Logger) *StubClient {
	return &StubClient{logger: logger}
}

// Generate always declines with the skip sentinel.
func (c *StubClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("stub backend declined", zap.Int("prompt_chars", len(prompt)))
	return "NO THOUGHT", nil
}

// ModelName identifies the stub.
func (c *StubClient) ModelName() string { return "stub" }
