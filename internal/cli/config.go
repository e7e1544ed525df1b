package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/log/v2"

	"github.com/baaaaaaaka/apkenv-launcher/internal/apk"
	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
	"github.com/baaaaaaaka/apkenv-launcher/internal/config"
	"github.com/baaaaaaaka/apkenv-launcher/internal/grid"
	"github.com/baaaaaaaka/apkenv-launcher/internal/logging"
)

// labelRows is the text height under each icon.
const labelRows = 1

// resolveConfig merges the config file, APKENV_* variables and command line
// flags, in increasing order of precedence.
func resolveConfig(root *rootOptions) (config.Config, error) {
	if err := config.LoadEnvFile(root.envFile); err != nil {
		return config.Config{}, err
	}

	store, err := config.NewStore(root.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return config.Config{}, err
	}
	cfg = cfg.WithDefaults()
	config.ApplyEnv(&cfg, os.Getenv)
	applyFlags(&cfg, root)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, root *rootOptions) {
	if v := strings.TrimSpace(root.apkDir); v != "" {
		cfg.ApkDir = v
	}
	if v := strings.TrimSpace(root.cacheDir); v != "" {
		cfg.CacheDir = v
	}
	if v := strings.Fields(root.launcher); len(v) > 0 {
		cfg.Launcher = v
	}
	if v := strings.TrimSpace(root.order); v != "" {
		cfg.Order = strings.ToLower(v)
	}
	if v := strings.TrimSpace(root.logLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func newLogger(cfg config.Config, w io.Writer) (*log.Logger, error) {
	return logging.New(w, cfg.LogLevel)
}

func catalogOptions(cfg config.Config, cache *apk.Cache, logger *log.Logger) (catalog.Options, error) {
	order, err := catalog.ParseOrder(cfg.Order)
	if err != nil {
		return catalog.Options{}, err
	}
	return catalog.Options{
		Dir:     cfg.ApkDir,
		Suffix:  cfg.Suffix,
		Order:   order,
		Cache:   cache,
		IconMax: grid.Size{W: cfg.IconMaxWidth, H: cfg.IconMaxHeight},
		Logger:  logger,
	}, nil
}

func arrangement(cfg config.Config, container grid.Size) catalog.Arrangement {
	return catalog.Arrangement{
		Container: container,
		Border:    cfg.BorderOrDefault(),
		Fixed:     grid.Size{W: cfg.CellWidth, H: cfg.CellHeight},
		Min:       grid.Size{W: cfg.MinCellWidth, H: cfg.MinCellHeight},
		LabelRows: labelRows,
	}
}
