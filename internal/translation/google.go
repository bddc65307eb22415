package translation

import (
	"context"

	"github.com/bregydoc/gtranslate"
)

// GoogleBackend translates through the public Google Translate endpoint
type GoogleBackend struct {
	params    gtranslate.TranslationParams
	translate func(text string, params gtranslate.TranslationParams) (string, error)
}

// NewGoogleBackend creates an English to Spanish Google Translate backend
func NewGoogleBackend() *GoogleBackend {
	return &GoogleBackend{
		params: gtranslate.TranslationParams{
			From: SourceLanguage,
			To:   TargetLanguage,
		},
		translate: gtranslate.TranslateWithParams,
	}
}

// Translate translates text. The underlying client cannot be cancelled, so ctx
// is only checked before the request starts.
func (g *GoogleBackend) Translate(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.translate(text, g.params)
}

// Name returns the backend name
func (g *GoogleBackend) Name() string {
	return BackendGoogle
}
