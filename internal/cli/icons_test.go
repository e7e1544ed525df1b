package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIconsExtractsAndCleans(t *testing.T) {
	dirs := newTestDirs(t)
	writeApk(t, dirs.apkDir, "a.apk", true)
	writeApk(t, dirs.apkDir, "b.apk", false)

	out, err := executeRoot(t, dirs.args("--order", "name", "icons")...)
	if err != nil {
		t.Fatalf("icons: %v", err)
	}
	for _, want := range []string{"icon    a.apk", "no icon b.apk", "1 of 2 packages"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
	cached := filepath.Join(dirs.cacheDir, "a.apk.png")
	if _, err := os.Stat(cached); err != nil {
		t.Fatalf("expected cached icon: %v", err)
	}

	out, err = executeRoot(t, dirs.args("icons", "--clean")...)
	if err != nil {
		t.Fatalf("icons --clean: %v", err)
	}
	if !strings.Contains(out, "Removed 1 cached icons") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(cached); err != nil {
		t.Fatalf("expected icon to be extracted again: %v", err)
	}
}
