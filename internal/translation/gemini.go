package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiBackend translates with a Google Gemini model
type GeminiBackend struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGeminiBackend creates a new Gemini translation backend. The API client is
// created on first use.
func NewGeminiBackend(apiKey, model string) *GeminiBackend {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiBackend{
		apiKey: apiKey,
		model:  model,
	}
}

// Translate translates English text to Spanish
func (g *GeminiBackend) Translate(ctx context.Context, text string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("Gemini API key not found")
	}

	if g.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create Gemini client: %w", err)
		}
		g.client = client
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(fmt.Sprintf(llmPrompt, text)), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// Name returns the backend name
func (g *GeminiBackend) Name() string {
	return BackendGemini
}
