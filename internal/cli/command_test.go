package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabtrans/internal"
)

// resetViper gives each test a clean global viper instance
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)
	cmd := CreateRootCommand(NewFlags())

	assert.Equal(t, "vocabtrans", cmd.Use)
	assert.Equal(t, internal.Version, cmd.Version)
	assert.Contains(t, cmd.Short, "Spanish")

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	for _, name := range []string{
		"file", "backup", "progress", "list-models", "log-level",
		"backend", "delay", "cache-file", "breaker-threshold", "breaker-cooldown",
		"openai-model", "gemini-model", "checkpoint-every", "progress-every",
	} {
		t.Run("flag_"+name, func(t *testing.T) {
			assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s missing", name)
		})
	}
}

func TestCreateRootCommand_RejectsArgs(t *testing.T) {
	resetViper(t)
	cmd := CreateRootCommand(NewFlags())

	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
	assert.NoError(t, cmd.Args(cmd, nil))
}

func TestSetupFlags_Defaults(t *testing.T) {
	resetViper(t)
	cmd := &cobra.Command{}
	setupFlags(cmd, NewFlags())

	defaults := map[string]string{
		"file":              DefaultVocabularyFile,
		"backend":           "google",
		"delay":             "100ms",
		"breaker-threshold": "5",
		"breaker-cooldown":  "30s",
		"checkpoint-every":  "50",
		"progress-every":    "100",
		"backup":            "false",
	}
	for name, want := range defaults {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, want, flag.DefValue, name)
	}

	assert.Equal(t, "f", cmd.Flags().Lookup("file").Shorthand)
	assert.Equal(t, "b", cmd.Flags().Lookup("backend").Shorthand)
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)
	cmd := &cobra.Command{}
	setupFlags(cmd, NewFlags())

	require.NoError(t, cmd.Flags().Set("file", "/data/words.json"))
	require.NoError(t, cmd.Flags().Set("backend", "openai"))
	require.NoError(t, cmd.Flags().Set("delay", "250ms"))
	require.NoError(t, cmd.Flags().Set("checkpoint-every", "10"))

	assert.Equal(t, "/data/words.json", viper.GetString("vocabulary.file"))
	assert.Equal(t, "openai", viper.GetString("translation.backend"))
	assert.Equal(t, 250*time.Millisecond, viper.GetDuration("translation.delay"))
	assert.Equal(t, 10, viper.GetInt("pass.checkpoint_every"))
	// Unset flags fall back to their defaults
	assert.Equal(t, 100, viper.GetInt("pass.progress_every"))
}

func TestApplyConfig(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `vocabulary:
  file: words.json
translation:
  backend: Gemini
  delay: 2s
  gemini_model: gemini-test
pass:
  checkpoint_every: 7
log:
  level: debug
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	InitConfig(cfgPath)

	flags := NewFlags()
	cmd := &cobra.Command{}
	setupFlags(cmd, flags)
	// Explicit flags win over the config file
	require.NoError(t, cmd.Flags().Set("checkpoint-every", "3"))

	ApplyConfig(flags)

	assert.Equal(t, "words.json", flags.File)
	assert.Equal(t, "gemini", flags.Backend)
	assert.Equal(t, 2*time.Second, flags.Delay)
	assert.Equal(t, "gemini-test", flags.GeminiModel)
	assert.Equal(t, "gpt-4o-mini", flags.OpenAIModel)
	assert.Equal(t, 3, flags.CheckpointEvery)
	assert.Equal(t, 100, flags.ProgressEvery)
	assert.Equal(t, "debug", flags.LogLevel)
	assert.Equal(t, 5, flags.BreakerThreshold)
}

func TestInitConfig_Environment(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VOCABTRANS_TRANSLATION_BACKEND", "openai")
	t.Setenv("VOCABTRANS_PASS_PROGRESS_EVERY", "25")

	InitConfig("")

	flags := NewFlags()
	setupFlags(&cobra.Command{}, flags)
	ApplyConfig(flags)

	assert.Equal(t, "openai", flags.Backend)
	assert.Equal(t, 25, flags.ProgressEvery)
}

func TestInitConfig_MissingFile(t *testing.T) {
	resetViper(t)

	// A missing explicit config file is only a warning
	assert.NotPanics(t, func() {
		InitConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_API_KEY", tt.envKey)
			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
			}

			assert.Equal(t, tt.expected, GetOpenAIKey())
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	tests := []struct {
		name      string
		gemini    string
		google    string
		configKey string
		expected  string
	}{
		{"gemini variable first", "gemini-key", "google-key", "config-key", "gemini-key"},
		{"google variable second", "", "google-key", "config-key", "google-key"},
		{"config last", "", "", "config-key", "config-key"},
		{"empty when nothing set", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("GOOGLE_API_KEY", tt.google)
			if tt.configKey != "" {
				viper.Set("translation.gemini_key", tt.configKey)
			}

			assert.Equal(t, tt.expected, GetGeminiKey())
		})
	}
}

func TestSetupFlags_UnderscoreNames(t *testing.T) {
	resetViper(t)
	flags := NewFlags()
	cmd := &cobra.Command{}
	setupFlags(cmd, flags)

	require.NoError(t, cmd.Flags().Parse([]string{"--cache_file", "cache.db", "--checkpoint_every=9"}))

	assert.Equal(t, "cache.db", flags.CacheFile)
	assert.Equal(t, 9, flags.CheckpointEvery)
}

func TestSetup(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: warn\n"), 0644))

	flags := NewFlags()
	flags.CfgFile = cfgPath
	setupFlags(&cobra.Command{}, flags)

	require.NoError(t, Setup(flags))
	assert.Equal(t, "warn", flags.LogLevel)
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())
}

func TestSetup_InvalidLevel(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VOCABTRANS_LOG_LEVEL", "loud")
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	flags := NewFlags()
	setupFlags(&cobra.Command{}, flags)

	assert.Error(t, Setup(flags))
}
