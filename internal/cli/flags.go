package cli

import (
	"time"

	"codeberg.org/snonux/vocabtrans/internal/processor"
	"codeberg.org/snonux/vocabtrans/internal/translation"
)

// DefaultVocabularyFile is the dataset translated when no file is given
const DefaultVocabularyFile = "frontend/src/data/dailyLearning/vocabulary.json"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	File       string
	Backup     bool
	Progress   bool
	ListModels bool
	LogLevel   string

	// Translation flags
	Backend          string
	Delay            time.Duration
	CacheFile        string
	BreakerThreshold int
	BreakerCooldown  time.Duration

	// Model flags
	OpenAIModel string
	GeminiModel string

	// Pass flags
	CheckpointEvery int
	ProgressEvery   int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	backend := translation.DefaultConfig()
	pass := processor.DefaultOptions()

	return &Flags{
		File:             DefaultVocabularyFile,
		LogLevel:         "info",
		Backend:          backend.Backend,
		Delay:            translation.DefaultDelay,
		BreakerThreshold: int(backend.BreakerThreshold),
		BreakerCooldown:  backend.BreakerCooldown,
		OpenAIModel:      backend.OpenAIModel,
		GeminiModel:      backend.GeminiModel,
		CheckpointEvery:  pass.CheckpointEvery,
		ProgressEvery:    pass.ProgressEvery,
	}
}

// BackendConfig builds the translation backend configuration from the flags
func (f *Flags) BackendConfig() *translation.Config {
	threshold := f.BreakerThreshold
	if threshold < 0 {
		threshold = 0
	}

	return &translation.Config{
		Backend:          f.Backend,
		OpenAIKey:        GetOpenAIKey(),
		OpenAIModel:      f.OpenAIModel,
		GeminiKey:        GetGeminiKey(),
		GeminiModel:      f.GeminiModel,
		BreakerThreshold: uint32(threshold),
		BreakerCooldown:  f.BreakerCooldown,
	}
}

// PassOptions builds the enrichment pass options from the flags
func (f *Flags) PassOptions() processor.Options {
	opts := processor.Options{
		CheckpointEvery: f.CheckpointEvery,
		ProgressEvery:   f.ProgressEvery,
	}
	if f.Progress {
		opts.NewProgress = NewProgressBar
	}
	return opts
}
