package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meetscribe/internal/callback"
	"github.com/nguyentantai21042004/meetscribe/internal/capture"
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/driver"
	"github.com/nguyentantai21042004/meetscribe/internal/exporter"
	"github.com/nguyentantai21042004/meetscribe/internal/httpapi"
	"github.com/nguyentantai21042004/meetscribe/internal/joiner"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/processor"
	"github.com/nguyentantai21042004/meetscribe/internal/scheduler"
	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
	"github.com/nguyentantai21042004/meetscribe/internal/version"
	"github.com/nguyentantai21042004/meetscribe/internal/watcher"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the scheduler and the intake watcher",
		RunE:  runServe,
	}
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "meetscribe %s", version.Version)
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max concurrent sessions: %d", cfg.Bot.MaxConcurrent)
	log.Info(ctx, "Bot display name: %s", cfg.Bot.DisplayName)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		return err
	}

	// Initialize dependencies
	dispatcher := callback.New(callback.ConfigFrom(cfg.Callback), &http.Client{}, log)
	proc := processor.New(processor.Deps{
		Drivers:    driver.NewRodFactory(driver.OptionsFromConfig(cfg.Browser)),
		Joiner:     joiner.New(joiner.ConfigFrom(cfg), log),
		Capturer:   capture.New(capture.Config{PollInterval: cfg.Capture.PollInterval}, log),
		Exporter:   exporter.New(cfg.Paths.Transcripts, cfg.Export.Docx, log),
		Summarizer: summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log),
		Dispatcher: dispatcher,
	}, log)
	sched := scheduler.New(scheduler.Config{
		MaxConcurrent: cfg.Bot.MaxConcurrent,
		Grace:         cfg.Bot.ScheduleGrace,
	}, proc, log)
	api := httpapi.New(sched, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpapi.Serve(gctx, cfg.Server.Addr, api.Handler(), cfg.Server.ShutdownTimeout, log)
	})

	if cfg.Paths.Intake != "" {
		w, err := watcher.New(cfg.Paths.Intake, sched, log)
		if err != nil {
			log.Error(ctx, "Failed to create intake watcher: %v", err)
			return err
		}
		defer w.Stop()

		g.Go(func() error {
			if err := w.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "meetscribe is ready!")
	log.Info(ctx, "API: %s", cfg.Server.Addr)
	log.Info(ctx, "Transcripts: %s", cfg.Paths.Transcripts)
	if cfg.Paths.Intake != "" {
		log.Info(ctx, "Intake: %s", cfg.Paths.Intake)
	}
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	runErr := g.Wait()
	if runErr != nil {
		log.Error(ctx, "Server error: %v", runErr)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := sched.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "Sessions did not stop in time: %v", err)
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "Callbacks still in flight: %v", err)
	}

	log.Info(ctx, "meetscribe stopped")
	return runErr
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Transcripts, cfg.Paths.Screenshots}
	if cfg.Paths.Intake != "" {
		dirs = append(dirs, cfg.Paths.Intake)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
