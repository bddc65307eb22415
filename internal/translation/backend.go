package translation

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Language pair handled by every backend
const (
	SourceLanguage = "en"
	TargetLanguage = "es"
)

// Backend names accepted by NewBackend
const (
	BackendGoogle = "google"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// ErrUnknownBackend is returned by NewBackend for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown translation backend")

// Backend translates free text from SourceLanguage to TargetLanguage
type Backend interface {
	// Translate returns the translation of text
	Translate(ctx context.Context, text string) (string, error)

	// Name returns the backend name
	Name() string
}

// Config selects and configures a translation backend
type Config struct {
	Backend string // "google", "openai" or "gemini"

	OpenAIKey   string
	OpenAIModel string

	GeminiKey   string
	GeminiModel string

	// BreakerThreshold is the number of consecutive failures that opens the
	// circuit breaker. Zero disables the breaker.
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
}

// DefaultConfig returns the default backend configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:          BackendGoogle,
		OpenAIModel:      "gpt-4o-mini",
		GeminiModel:      "gemini-2.0-flash",
		BreakerThreshold: 5,
		BreakerCooldown:  30 * time.Second,
	}
}

// NewBackend creates the configured backend, wrapped in a circuit breaker
// unless the breaker is disabled.
func NewBackend(config *Config) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var backend Backend
	switch config.Backend {
	case BackendGoogle, "":
		backend = NewGoogleBackend()

	case BackendOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		backend = NewOpenAIBackend(config.OpenAIKey, config.OpenAIModel)

	case BackendGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		backend = NewGeminiBackend(config.GeminiKey, config.GeminiModel)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, config.Backend)
	}

	if config.BreakerThreshold == 0 {
		return backend, nil
	}
	return NewBreakerBackend(backend, config.BreakerThreshold, config.BreakerCooldown), nil
}
