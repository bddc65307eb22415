package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabtrans/internal/archive"
	"codeberg.org/snonux/vocabtrans/internal/cli"
	"codeberg.org/snonux/vocabtrans/internal/models"
	"codeberg.org/snonux/vocabtrans/internal/processor"
	"codeberg.org/snonux/vocabtrans/internal/translation"
	"codeberg.org/snonux/vocabtrans/internal/vocab"
)

var errInterrupted = errors.New("translation interrupted, progress saved")

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("vocabtrans failed")
		stop()
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	if err := cli.Setup(flags); err != nil {
		return err
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	store := vocab.NewStore(flags.File)
	if err := store.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := store.Unlock(); err != nil {
			log.Warn().Err(err).Msg("Failed to release vocabulary lock")
		}
	}()

	// Handle --backup flag
	if flags.Backup {
		archived, err := archive.Snapshot(flags.File)
		if err != nil {
			return fmt.Errorf("failed to back up vocabulary: %w", err)
		}
		log.Info().Str("path", archived).Msg("Archived vocabulary")
	}

	backend, err := translation.NewBackend(flags.BackendConfig())
	if err != nil {
		return err
	}

	cache, err := translation.OpenCache(flags.CacheFile)
	if err != nil {
		return err
	}
	defer cache.Close()

	translator := translation.NewTranslator(backend,
		translation.WithDelay(flags.Delay),
		translation.WithCache(cache),
	)
	log.Info().Str("backend", backend.Name()).Dur("delay", flags.Delay).Msg("Translating to Spanish")

	proc := processor.NewProcessor(store, translator, flags.PassOptions())
	summary, err := proc.Run(ctx)
	if state, ok := translation.BreakerState(backend); ok && state != gobreaker.StateClosed {
		log.Warn().Str("backend", backend.Name()).Str("breaker", state.String()).
			Msg("Backend failures paused translation, some entries kept English text")
	}
	if err != nil {
		return err
	}

	fmt.Println(summary.Table())

	if summary.Interrupted {
		return errInterrupted
	}
	return nil
}
