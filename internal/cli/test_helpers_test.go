package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/baaaaaaaka/apkenv-launcher/internal/apk"
	"github.com/baaaaaaaka/apkenv-launcher/internal/config"
)

func newTempStore(t *testing.T) *config.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := config.NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

// isolateEnv hides any APKENV_* variables of the developer's shell.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvApkDir, config.EnvCacheDir, config.EnvLauncher, config.EnvOrder, config.EnvLogLevel} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

type testDirs struct {
	configPath string
	apkDir     string
	cacheDir   string
}

func newTestDirs(t *testing.T) testDirs {
	t.Helper()
	isolateEnv(t)
	base := t.TempDir()
	dirs := testDirs{
		configPath: filepath.Join(base, "config", "config.json"),
		apkDir:     filepath.Join(base, "apks"),
		cacheDir:   filepath.Join(base, "cache"),
	}
	if err := os.MkdirAll(dirs.apkDir, 0o755); err != nil {
		t.Fatalf("mkdir apks: %v", err)
	}
	return dirs
}

func (d testDirs) root() *rootOptions {
	return &rootOptions{configPath: d.configPath, apkDir: d.apkDir, cacheDir: d.cacheDir}
}

func (d testDirs) args(args ...string) []string {
	return append([]string{"--config", d.configPath, "--apk-dir", d.apkDir, "--cache-dir", d.cacheDir}, args...)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func writeApk(t *testing.T, dir, name string, withIcon bool) string {
	t.Helper()
	files := []apk.ArchiveFile{{Name: "AndroidManifest.xml", Data: []byte("manifest")}}
	if withIcon {
		files = append(files, apk.ArchiveFile{Name: "res/drawable-hdpi/icon.png", Data: pngBytes(t, 32, 32)})
	}
	path := filepath.Join(dir, name)
	if err := apk.WriteArchiveForTest(path, files); err != nil {
		t.Fatalf("write apk: %v", err)
	}
	return path
}

// writeRunner writes a fake apkenv that records its last argument next to
// itself and exits with code.
func writeRunner(t *testing.T, dir string, code int) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell runner not available on Windows")
	}
	record := filepath.Join(dir, "launched")
	path := filepath.Join(dir, "apkenv")
	script := "#!/bin/sh\nprintf '%s' \"$1\" > '" + record + "'\nexit " + strconv.Itoa(code) + "\n"
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil {
		t.Fatalf("write runner: %v", err)
	}
	return path, record
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
