package config

import (
	"fmt"
	"strings"

	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
)

// WithDefaults returns a copy with every unset field filled in.
func (c Config) WithDefaults() Config {
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	if strings.TrimSpace(c.ApkDir) == "" {
		c.ApkDir = DefaultApkDir
	}
	if strings.TrimSpace(c.CacheDir) == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if len(c.Launcher) == 0 {
		c.Launcher = append([]string(nil), DefaultLauncher...)
	}
	if c.Border == nil {
		b := DefaultBorder
		c.Border = &b
	}
	if c.MinCellWidth == 0 {
		c.MinCellWidth = DefaultMinCellWidth
	}
	if c.MinCellHeight == 0 {
		c.MinCellHeight = DefaultMinCellHeight
	}
	if c.IconMaxWidth == 0 {
		c.IconMaxWidth = DefaultIconMax
	}
	if c.IconMaxHeight == 0 {
		c.IconMaxHeight = DefaultIconMax
	}
	if c.Order == "" {
		c.Order = string(catalog.OrderFS)
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

func (c Config) BorderOrDefault() int {
	if c.Border == nil {
		return DefaultBorder
	}
	return *c.Border
}

func (c Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

func (c Config) Validate() error {
	if _, err := catalog.ParseOrder(c.Order); err != nil {
		return err
	}
	if len(c.Launcher) == 0 || strings.TrimSpace(c.Launcher[0]) == "" {
		return fmt.Errorf("launcher command is empty")
	}
	if c.BorderOrDefault() < 0 {
		return fmt.Errorf("border must not be negative")
	}
	for name, v := range map[string]int{
		"cellWidth":     c.CellWidth,
		"cellHeight":    c.CellHeight,
		"minCellWidth":  c.MinCellWidth,
		"minCellHeight": c.MinCellHeight,
		"iconMaxWidth":  c.IconMaxWidth,
		"iconMaxHeight": c.IconMaxHeight,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if strings.TrimSpace(c.Suffix) == "" {
		return fmt.Errorf("suffix is empty")
	}
	return nil
}
