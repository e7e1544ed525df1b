package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvApkDir   = "APKENV_APK_DIR"
	EnvCacheDir = "APKENV_CACHE_DIR"
	EnvLauncher = "APKENV_LAUNCHER"
	EnvOrder    = "APKENV_ORDER"
	EnvLogLevel = "APKENV_LOG_LEVEL"
)

// LoadEnvFile exports the variables of a dotenv file into the process
// environment. Variables that are already set keep their value.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with any APKENV_* variable that getenv reports.
func ApplyEnv(c *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvApkDir)); v != "" {
		c.ApkDir = v
	}
	if v := strings.TrimSpace(getenv(EnvCacheDir)); v != "" {
		c.CacheDir = v
	}
	if v := strings.Fields(getenv(EnvLauncher)); len(v) > 0 {
		c.Launcher = v
	}
	if v := strings.TrimSpace(getenv(EnvOrder)); v != "" {
		c.Order = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}
