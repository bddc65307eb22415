package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabtrans/internal"
	"codeberg.org/snonux/vocabtrans/internal/logging"
)

// flagKeys maps flag names to their viper configuration keys
var flagKeys = map[string]string{
	"file":              "vocabulary.file",
	"backup":            "vocabulary.backup",
	"backend":           "translation.backend",
	"delay":             "translation.delay",
	"cache-file":        "translation.cache_file",
	"breaker-threshold": "translation.breaker_threshold",
	"breaker-cooldown":  "translation.breaker_cooldown",
	"openai-model":      "translation.openai_model",
	"gemini-model":      "translation.gemini_model",
	"checkpoint-every":  "pass.checkpoint_every",
	"progress-every":    "pass.progress_every",
	"progress":          "pass.progress",
	"log-level":         "log.level",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vocabtrans",
		Short: "Spanish translations for a vocabulary dataset",
		Long: `vocabtrans adds Spanish translations to a vocabulary JSON file.

For every entry it fills in partOfSpeech_es from a fixed table and
translates definition and etymology into definition_es and etymology_es.
Entries that already have both partOfSpeech_es and definition_es are
skipped, so an interrupted run can simply be started again.

Examples:
  vocabtrans                                  # Translate the default vocabulary file
  vocabtrans --file words.json --progress     # Translate another file with a progress bar
  vocabtrans --backend openai --backup        # Use OpenAI and archive the file first`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vocabtrans.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.File, "file", "f", flags.File, "Vocabulary JSON file to translate in place")
	cmd.Flags().BoolVar(&flags.Backup, "backup", false, "Copy the vocabulary file into an archive directory before translating")
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI chat models available for the current API key")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Translation flags
	cmd.Flags().StringVarP(&flags.Backend, "backend", "b", flags.Backend, "Translation backend: google, openai or gemini")
	cmd.Flags().DurationVar(&flags.Delay, "delay", flags.Delay, "Minimum delay between translation requests (0 disables)")
	cmd.Flags().StringVar(&flags.CacheFile, "cache-file", "", "SQLite translation cache (default: in-memory for this run)")
	cmd.Flags().IntVar(&flags.BreakerThreshold, "breaker-threshold", flags.BreakerThreshold, "Consecutive backend failures before pausing requests (0 disables)")
	cmd.Flags().DurationVar(&flags.BreakerCooldown, "breaker-cooldown", flags.BreakerCooldown, "How long requests stay paused after the breaker opens")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for --backend openai")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for --backend gemini")

	// Pass flags
	cmd.Flags().IntVar(&flags.CheckpointEvery, "checkpoint-every", flags.CheckpointEvery, "Save progress every N entries")
	cmd.Flags().IntVar(&flags.ProgressEvery, "progress-every", flags.ProgressEvery, "Log skipped entries every N entries")

	// Accept --cache_file as well as --cache-file
	cmd.Flags().SetNormalizeFunc(normalizeFlagName)

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range flagKeys {
		viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

// ApplyConfig copies the effective settings back into flags. Explicit flags
// win over environment and config file values, which win over defaults.
func ApplyConfig(flags *Flags) {
	flags.File = viper.GetString("vocabulary.file")
	flags.Backup = viper.GetBool("vocabulary.backup")
	flags.Backend = strings.ToLower(viper.GetString("translation.backend"))
	flags.Delay = viper.GetDuration("translation.delay")
	flags.CacheFile = viper.GetString("translation.cache_file")
	flags.BreakerThreshold = viper.GetInt("translation.breaker_threshold")
	flags.BreakerCooldown = viper.GetDuration("translation.breaker_cooldown")
	flags.OpenAIModel = viper.GetString("translation.openai_model")
	flags.GeminiModel = viper.GetString("translation.gemini_model")
	flags.CheckpointEvery = viper.GetInt("pass.checkpoint_every")
	flags.ProgressEvery = viper.GetInt("pass.progress_every")
	flags.Progress = viper.GetBool("pass.progress")
	flags.LogLevel = viper.GetString("log.level")
}

// Setup loads the configuration into flags and configures the global logger.
// A console logger at the default level is installed first so config file
// messages use the same output as the rest of the run.
func Setup(flags *Flags) error {
	if err := logging.Setup(NewFlags().LogLevel); err != nil {
		return err
	}

	InitConfig(flags.CfgFile)
	ApplyConfig(flags)

	return logging.Setup(flags.LogLevel)
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			log.Warn().Err(err).Msg("Error getting home directory")
		} else {
			viper.AddConfigPath(home)
		}

		// Search config with name ".vocabtrans" (without extension)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocabtrans")
	}

	// Environment variables
	viper.SetEnvPrefix("VOCABTRANS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("path", viper.ConfigFileUsed()).Msg("Using config file")
	} else if cfgFile != "" {
		log.Warn().Err(err).Str("path", cfgFile).Msg("Failed to read config file")
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("translation.gemini_key")
}
