package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	pkgerrors "strainbrain/pkg/errors"
)

// GeminiClient is the Gemini-backed completion client.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClient creates a completion client against the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

// Generate sends one prompt and returns the reply text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", pkgerrors.NewBackendUnavailableError(c.model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", pkgerrors.NewBackendUnavailableError(c.model, fmt.Errorf("empty completion"))
	}

	c.logger.Debug("completion generated",
		zap.String("model", c.model),
		zap.Int("reply_chars", len(text)),
	)
	return text, nil
}

// ModelName identifies the backend model.
func (c *GeminiClient) ModelName() string { return c.model }
