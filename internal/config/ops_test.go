package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
)

func TestWithDefaultsFillsUnsetFields(t *testing.T) {
	cfg := Config{}.WithDefaults()

	if cfg.Version != CurrentVersion {
		t.Fatalf("Version=%d want %d", cfg.Version, CurrentVersion)
	}
	if cfg.ApkDir != DefaultApkDir || cfg.CacheDir != DefaultCacheDir || cfg.Suffix != DefaultSuffix {
		t.Fatalf("unexpected dirs %#v", cfg)
	}
	if !reflect.DeepEqual(cfg.Launcher, DefaultLauncher) {
		t.Fatalf("Launcher=%v", cfg.Launcher)
	}
	if cfg.BorderOrDefault() != DefaultBorder {
		t.Fatalf("Border=%d", cfg.BorderOrDefault())
	}
	if cfg.Order != string(catalog.OrderFS) || cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("Order=%q LogLevel=%q", cfg.Order, cfg.LogLevel)
	}
	if !cfg.WatchEnabled() {
		t.Fatalf("expected watch enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestWithDefaultsKeepsExplicitZeroBorder(t *testing.T) {
	zero := 0
	off := false
	cfg := Config{Border: &zero, Watch: &off}.WithDefaults()
	if cfg.BorderOrDefault() != 0 {
		t.Fatalf("expected explicit zero border, got %d", cfg.BorderOrDefault())
	}
	if cfg.WatchEnabled() {
		t.Fatalf("expected watch disabled")
	}
}

func TestWithDefaultsDoesNotAliasDefaultLauncher(t *testing.T) {
	cfg := Config{}.WithDefaults()
	cfg.Launcher[0] = "changed"
	if DefaultLauncher[0] == "changed" {
		t.Fatalf("WithDefaults must copy the default launcher")
	}
}

func TestValidate(t *testing.T) {
	neg := -1
	cases := []struct {
		name string
		mod  func(*Config)
		want string
	}{
		{name: "order", mod: func(c *Config) { c.Order = "mtime" }, want: "invalid order"},
		{name: "launcher", mod: func(c *Config) { c.Launcher = []string{" "} }, want: "launcher"},
		{name: "border", mod: func(c *Config) { c.Border = &neg }, want: "border"},
		{name: "cell", mod: func(c *Config) { c.CellWidth = -3 }, want: "cellWidth"},
		{name: "suffix", mod: func(c *Config) { c.Suffix = " " }, want: "suffix"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{}.WithDefaults()
			tc.mod(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvApkDir:   "/sd/apks",
		EnvCacheDir: " /sd/cache ",
		EnvLauncher: "/usr/bin/apkenv --scale 2",
		EnvOrder:    "NAME",
		EnvLogLevel: "Debug",
	}
	cfg := Config{}.WithDefaults()
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.ApkDir != "/sd/apks" || cfg.CacheDir != "/sd/cache" {
		t.Fatalf("unexpected dirs %#v", cfg)
	}
	if !reflect.DeepEqual(cfg.Launcher, []string{"/usr/bin/apkenv", "--scale", "2"}) {
		t.Fatalf("Launcher=%v", cfg.Launcher)
	}
	if cfg.Order != string(catalog.OrderName) || cfg.LogLevel != "debug" {
		t.Fatalf("Order=%q LogLevel=%q", cfg.Order, cfg.LogLevel)
	}
}

func TestApplyEnvIgnoresBlank(t *testing.T) {
	cfg := Config{}.WithDefaults()
	ApplyEnv(&cfg, func(string) string { return "  " })
	if cfg.ApkDir != DefaultApkDir || !reflect.DeepEqual(cfg.Launcher, DefaultLauncher) {
		t.Fatalf("blank env should not override: %#v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.env")
	if err := os.WriteFile(path, []byte("APKENV_APK_DIR=/from/file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(EnvApkDir, "")
	_ = os.Unsetenv(EnvApkDir)

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv(EnvApkDir); got != "/from/file" {
		t.Fatalf("expected env from file, got %q", got)
	}

	if err := LoadEnvFile(""); err != nil {
		t.Fatalf("empty path should be a no-op: %v", err)
	}
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}
}

func TestValidateAcceptsCatalogOrders(t *testing.T) {
	for _, order := range []catalog.Order{catalog.OrderFS, catalog.OrderName} {
		cfg := Config{Order: string(order)}.WithDefaults()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("order %q rejected: %v", order, err)
		}
		if _, err := catalog.ParseOrder(cfg.Order); err != nil {
			t.Fatalf("validated order %q does not parse: %v", cfg.Order, err)
		}
	}
}
