package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/snonux/vocabtrans/internal/translation"
	"codeberg.org/snonux/vocabtrans/internal/vocab"
)

// Store loads and saves the vocabulary being enriched
type Store interface {
	Load() ([]*vocab.Entry, error)
	Save(entries []*vocab.Entry) error
	Path() string
}

// TextTranslator translates free text and never fails
type TextTranslator interface {
	TranslateText(ctx context.Context, text string) string
}

// Progress receives one tick per visited entry
type Progress interface {
	Add(n int) error
	Finish() error
}

// Options tunes the enrichment pass
type Options struct {
	// CheckpointEvery saves the file after every n-th position that was newly translated
	CheckpointEvery int
	// ProgressEvery logs a line for every n-th position that was already translated
	ProgressEvery int
	// NewProgress creates a progress sink for total entries. May be nil.
	NewProgress func(total int) Progress
}

// DefaultOptions returns the default pass options
func DefaultOptions() Options {
	return Options{
		CheckpointEvery: 50,
		ProgressEvery:   100,
	}
}

// Processor handles the enrichment pass
type Processor struct {
	store      Store
	translator TextTranslator
	opts       Options
	logger     zerolog.Logger
}

// NewProcessor creates a new enrichment processor
func NewProcessor(store Store, translator TextTranslator, opts Options) *Processor {
	defaults := DefaultOptions()
	if opts.CheckpointEvery <= 0 {
		opts.CheckpointEvery = defaults.CheckpointEvery
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = defaults.ProgressEvery
	}

	return &Processor{
		store:      store,
		translator: translator,
		opts:       opts,
		logger:     log.Logger,
	}
}

// SetLogger replaces the processor logger
func (p *Processor) SetLogger(logger zerolog.Logger) {
	p.logger = logger
}

// Run enriches every entry and writes the result back to the store. Only a
// failure to load or to perform the final save is returned as an error.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	p.logger.Info().Str("path", p.store.Path()).Msg("Reading vocabulary")

	entries, err := p.store.Load()
	if err != nil {
		return Summary{}, err
	}

	total := len(entries)
	summary := Summary{Total: total}
	p.logger.Info().Int("entries", total).Msg("Found vocabulary entries")

	var progress Progress
	if p.opts.NewProgress != nil {
		progress = p.opts.NewProgress(total)
	}

	for i, entry := range entries {
		if ctx.Err() != nil {
			summary.Interrupted = true
			p.logger.Warn().Int("position", i).Int("total", total).Msg("Interrupted, saving progress")
			break
		}

		position := i + 1
		p.processEntry(ctx, entry, position, total, entries, &summary)

		if progress != nil {
			_ = progress.Add(1)
		}
	}

	if progress != nil {
		_ = progress.Finish()
	}
	// Cancellation during the last entry rolls it back without reaching the check above
	if ctx.Err() != nil && !summary.Interrupted {
		summary.Interrupted = true
		p.logger.Warn().Msg("Interrupted, saving progress")
	}

	p.logger.Info().Str("path", p.store.Path()).Msg("Saving final results")
	if err := p.store.Save(entries); err != nil {
		return summary, fmt.Errorf("failed to save results: %w", err)
	}

	p.logger.Info().
		Int("total", summary.Total).
		Int("already_translated", summary.AlreadyTranslated).
		Int("newly_translated", summary.NewlyTranslated).
		Int("errors", summary.Errors).
		Int("total_with_spanish", summary.TotalTranslated()).
		Msg("Translation complete")

	return summary, nil
}

func (p *Processor) processEntry(ctx context.Context, entry *vocab.Entry, position, total int, entries []*vocab.Entry, summary *Summary) {
	term := entry.Term()

	if entry.IsTranslated() {
		summary.AlreadyTranslated++
		if position%p.opts.ProgressEvery == 0 {
			p.logger.Info().
				Int("position", position).
				Int("total", total).
				Str("term", term).
				Msg("Already translated")
		}
		return
	}

	before := entry.Clone()
	err := p.enrich(ctx, entry)
	if ctx.Err() != nil {
		// Translations cut short by cancellation fell back to English; drop them
		*entry = *before
		return
	}
	if err != nil {
		p.logger.Error().
			Str("id", entry.ID(position)).
			Str("term", term).
			Err(err).
			Msg("Error processing entry")
		summary.Errors++
		return
	}
	summary.NewlyTranslated++

	if position%p.opts.CheckpointEvery == 0 {
		p.logger.Info().
			Int("position", position).
			Int("total", total).
			Str("term", term).
			Msg("Translated")
		if err := p.store.Save(entries); err != nil {
			p.logger.Error().Err(err).Msg("Failed to save progress")
			return
		}
		p.logger.Info().Msg("Saved progress")
	}
}

// enrich fills in the missing Spanish fields of one entry. Fields set before a
// failure are kept.
func (p *Processor) enrich(ctx context.Context, entry *vocab.Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	hasPartOfSpeechES := entry.Has(vocab.FieldPartOfSpeechES)
	hasDefinitionES := entry.Has(vocab.FieldDefinitionES)

	if !hasPartOfSpeechES && entry.Has(vocab.FieldPartOfSpeech) {
		tag, err := entry.Text(vocab.FieldPartOfSpeech)
		if err != nil {
			return err
		}
		if err := entry.Set(vocab.FieldPartOfSpeechES, translation.TranslatePartOfSpeech(tag)); err != nil {
			return err
		}
	}

	if !hasDefinitionES && entry.Has(vocab.FieldDefinition) {
		definition, err := entry.Text(vocab.FieldDefinition)
		if err != nil {
			return err
		}
		definition = translation.TrimDanglingParen(definition)
		if err := entry.Set(vocab.FieldDefinitionES, p.translator.TranslateText(ctx, definition)); err != nil {
			return err
		}
	}

	if entry.Has(vocab.FieldEtymology) && !entry.Has(vocab.FieldEtymologyES) {
		etymology, err := entry.Text(vocab.FieldEtymology)
		if err != nil {
			return err
		}
		if err := entry.Set(vocab.FieldEtymologyES, p.translator.TranslateText(ctx, etymology)); err != nil {
			return err
		}
	}

	return nil
}
