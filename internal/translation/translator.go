package translation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/snonux/vocabtrans/internal"
)

// DefaultDelay is the minimum spacing between two backend calls
const DefaultDelay = 100 * time.Millisecond

// snippetLength is how much of a failed text is included in log output
const snippetLength = 50

var errEmptyTranslation = errors.New("backend returned an empty translation")

// Translator translates free text and never fails: when the backend errors or
// returns nothing, the cleaned source text is returned instead.
type Translator struct {
	backend Backend
	limiter *rate.Limiter
	cache   Cache
	logger  zerolog.Logger
}

// Option configures a Translator
type Option func(*Translator)

// WithDelay sets the minimum spacing between backend calls. Zero or a negative
// value disables rate limiting.
func WithDelay(d time.Duration) Option {
	return func(t *Translator) {
		if d <= 0 {
			t.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		t.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithCache consults cache before calling the backend
func WithCache(cache Cache) Option {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithLogger sets the logger used for translation failures
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a translator on top of backend
func NewTranslator(backend Backend, opts ...Option) *Translator {
	t := &Translator{
		backend: backend,
		logger:  log.Logger,
	}
	WithDelay(DefaultDelay)(t)

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TrimDanglingParen drops a trailing "(" left over from a truncated
// parenthetical, along with the spaces and parentheses before it.
func TrimDanglingParen(s string) string {
	if strings.HasSuffix(s, "(") {
		return strings.TrimRight(s, " (")
	}
	return s
}

// TranslateText translates text to Spanish. Empty input yields "" without a
// backend call.
func (t *Translator) TranslateText(ctx context.Context, text string) string {
	text = TrimDanglingParen(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	if t.cache != nil {
		cached, ok, err := t.cache.Get(ctx, text)
		if err != nil {
			t.logger.Warn().Err(err).Msg("Translation cache lookup failed")
		} else if ok {
			return cached
		}
	}

	result, err := t.call(ctx, text)
	if err != nil {
		t.logger.Warn().
			Str("text", internal.Truncate(text, snippetLength)).
			Err(err).
			Msg("Translation error")
		return text
	}

	if t.cache != nil {
		if err := t.cache.Add(ctx, text, result); err != nil {
			t.logger.Warn().Err(err).Msg("Translation cache update failed")
		}
	}
	return result
}

func (t *Translator) call(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}

	result, err := t.backend.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	if result == "" {
		return "", errEmptyTranslation
	}
	return result, nil
}
