package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the subset of *genai.Models the gateway uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGateway asks Gemini for reward ideas.
type GeminiGateway struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

// NewGeminiGateway creates a client for the Gemini API.
func NewGeminiGateway(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return newGeminiGateway(client.Models, model, logger), nil
}

func newGeminiGateway(models contentGenerator, model string, logger *slog.Logger) *GeminiGateway {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGateway{models: models, model: model, logger: logger}
}

// FetchSuggestions sends the prompt with thinking disabled and returns the
// response text, or a fallback string on any failure.
func (g *GeminiGateway) FetchSuggestions(ctx context.Context, name string, points int) string {
	config := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(name, points)), config)
	if err != nil {
		g.logger.Error("Error generating rewards", "error", err, "model", g.model)
		return FallbackError
	}
	if resp == nil {
		return FallbackEmpty
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return FallbackEmpty
	}
	return text
}
