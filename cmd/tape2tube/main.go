// Command tape2tube converts a directory of MP3s into static-image videos
// and publishes them to YouTube, tracking processed files in a state file so
// repeated runs are incremental.
//
// It parses flags, loads the TOML config, and either runs system
// diagnostics (--check), previews the work queue (--dry-run), or the
// render/publish pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/backmassage/tape2tube/internal/check"
	"github.com/backmassage/tape2tube/internal/config"
	"github.com/backmassage/tape2tube/internal/display"
	"github.com/backmassage/tape2tube/internal/logging"
	"github.com/backmassage/tape2tube/internal/pipeline"
	"github.com/backmassage/tape2tube/internal/state"
	"github.com/backmassage/tape2tube/internal/upload/youtube"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "2.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; credential path overrides may live there.
	_ = godotenv.Load()

	cfg := config.DefaultConfig()
	var (
		configPath string
		audioDir   string
		imagesDir  string
		forceColor bool
		noColor    bool
	)

	root := &cobra.Command{
		Use:           "tape2tube",
		Short:         "Upload MP3s as static-image YouTube videos",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				cfg.ColorMode = config.ColorNever
			} else if forceColor {
				cfg.ColorMode = config.ColorAlways
			}
			return realMain(cmd.Context(), &cfg, configPath, audioDir, imagesDir)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&configPath, "config", "c", "config.toml", "Path to the TOML config file")
	fl.StringVar(&audioDir, "audio-dir", "", "Override the source audio directory")
	fl.StringVar(&imagesDir, "images-dir", "", "Override the background images directory")
	fl.StringVar(&cfg.Only, "only", "", "Process only this MP3 filename (or path)")
	fl.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Enumerate eligible work without rendering or publishing")
	fl.IntVar(&cfg.Limit, "limit", 0, "Cap the number of items processed this run (0 = unlimited)")
	fl.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output (ffmpeg loglevel info, debug logs)")
	fl.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fl.BoolVar(&forceColor, "color", false, "Force colored logs")
	fl.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fl.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tape2tube: %v\n", err)
		return 1
	}
	return 0
}

// errSilent marks failures that were already reported through the logger.
var errSilent = errors.New("run failed")

func realMain(ctx context.Context, cfg *config.Config, configPath, audioDir, imagesDir string) error {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors surface
	// through cobra to stderr. Once NewLogger succeeds, all output goes
	// through the logger for consistent formatting and log-file capture.
	if err := config.Load(cfg, configPath); err != nil {
		return err
	}
	cfg.ApplyEnv()
	if audioDir != "" {
		cfg.AudioDir = config.NormalizeDirArg(audioDir)
	}
	if imagesDir != "" {
		cfg.ImagesDir = config.NormalizeDirArg(imagesDir)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(log) {
			return errSilent
		}
		return nil
	}

	log.Info("=== tape2tube v%s ===", version)
	log.Info("Audio:  %s", cfg.AudioDir)
	log.Info("Images: %s", cfg.ImagesDir)
	log.Info("Out:    %s", cfg.OutDir)
	if cfg.DryRun {
		log.Warn("DRY RUN — nothing will be rendered or published")
	}

	// Phase 3: Work queue. A named --only file that is missing is fatal.
	store, err := state.Load(cfg.StatePath)
	if err != nil {
		return err
	}
	queue, err := pipeline.BuildQueue(cfg, store)
	if err != nil {
		log.Error("%v", err)
		return errSilent
	}

	if len(queue) == 0 {
		log.Info("No new MP3s found")
		return nil
	}

	if cfg.DryRun {
		log.Info("Dry run: %d new MP3(s) would be processed", len(queue))
		pipeline.PrintDryRun(os.Stdout, queue)
		return nil
	}

	// Phase 4: Preconditions that make any processing impossible.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return errSilent
	}
	images, err := pipeline.VerifyImages(cfg)
	if err != nil {
		log.Error("%v", err)
		return errSilent
	}
	if _, err := os.Stat(cfg.ClientSecrets); err != nil {
		log.Error("Missing client secrets at %s", cfg.ClientSecrets)
		return errSilent
	}

	if err := store.Acquire(); err != nil {
		log.Error("%v", err)
		return errSilent
	}
	defer store.Release()

	// Phase 5: Publish capability — read-or-refresh-or-obtain the token
	// once; the capability object is passed explicitly into the pipeline.
	svc, err := youtube.New(ctx, cfg.ClientSecrets, cfg.TokenPath)
	if err != nil {
		log.Error("YouTube auth failed: %v", err)
		return errSilent
	}

	// Phase 6: Signal handling — cancel on SIGINT/SIGTERM so the pipeline
	// stops between items without leaving half-processed state.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current item…")
		cancel()
	}()

	// Phase 7: Run. Per-item failures are logged and skipped inside; they
	// do not change the exit status.
	enc := pipeline.FFmpegEncoder{Verbose: cfg.Verbose}
	p := pipeline.New(cfg, log, store, enc, svc)
	p.Run(ctx, queue, images)

	log.Debug("State file: %s (%d recorded)", cfg.StatePath, store.Len())
	return nil
}
