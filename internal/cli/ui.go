package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/apkenv-launcher/internal/apk"
	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
	"github.com/baaaaaaaka/apkenv-launcher/internal/config"
	"github.com/baaaaaaaka/apkenv-launcher/internal/grid"
	"github.com/baaaaaaaka/apkenv-launcher/internal/launch"
	"github.com/baaaaaaaka/apkenv-launcher/internal/logging"
	"github.com/baaaaaaaka/apkenv-launcher/internal/tui"
	"github.com/baaaaaaaka/apkenv-launcher/internal/watch"
)

var runTui = tui.Run

func runUI(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := resolveConfig(root)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}

	cache, err := apk.NewCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	catOpts, err := catalogOptions(cfg, cache, logger)
	if err != nil {
		return err
	}
	runner := launch.New(cfg.Launcher, logFile, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := tui.Options{
		Load: func(ctx context.Context) (*catalog.Catalog, error) {
			return catalog.Load(ctx, catOpts)
		},
		Launch: func(e *catalog.Entry) error {
			_, err := runner.Launch(e.Path)
			return err
		},
		Dir:          cfg.ApkDir,
		Border:       cfg.BorderOrDefault(),
		Cell:         grid.Size{W: cfg.CellWidth, H: cfg.CellHeight},
		MinCell:      grid.Size{W: cfg.MinCellWidth, H: cfg.MinCellHeight},
		LabelRows:    labelRows,
		ExitOnLaunch: cfg.ExitOnLaunch,
		Version:      version,
		Logger:       logger,
	}
	if cfg.WatchEnabled() {
		opts.Watch = func(notify func()) (func(), error) {
			return startWatcher(ctx, cfg, notify)
		}
	}

	logger.Info("launcher started", "apkDir", cfg.ApkDir, "cacheDir", cfg.CacheDir)
	selection, err := runTui(ctx, opts)
	if err != nil {
		logger.Error("launcher stopped", "err", err)
		return err
	}
	if selection != nil {
		logger.Info("exiting after launch", "apk", selection.Entry.Path)
	}
	return nil
}

// startWatcher runs a package directory watcher until the returned stop
// function is called.
func startWatcher(ctx context.Context, cfg config.Config, notify func()) (func(), error) {
	w, err := watch.New(cfg.ApkDir, cfg.Suffix, notify)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	go func() { _ = w.Run(ctx) }()
	return func() {
		cancel()
		_ = w.Close()
	}, nil
}
