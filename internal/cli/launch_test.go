package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
)

func TestResolvePackage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Doom.apk", "quake.apk", "Hex.apk", "hex.apk"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 4 {
		t.Skip("case-insensitive filesystem")
	}

	cases := []struct {
		ref  string
		want string
		err  string
	}{
		{ref: filepath.Join(dir, "quake.apk"), want: filepath.Join(dir, "quake.apk")},
		{ref: "quake.apk", want: filepath.Join(dir, "quake.apk")},
		{ref: "quake", want: filepath.Join(dir, "quake.apk")},
		{ref: "doom", want: filepath.Join(dir, "Doom.apk")},
		{ref: "hex", want: filepath.Join(dir, "hex.apk")},
		{ref: "HEX", err: "ambiguous"},
		{ref: "missing", err: "no package named"},
		{ref: filepath.Join(dir, "nope", "x.apk"), err: "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.ref, func(t *testing.T) {
			got, err := resolvePackage(tc.ref, dir, ".apk", catalog.OrderName)
			if tc.err != "" {
				if err == nil || !strings.Contains(err.Error(), tc.err) {
					t.Fatalf("expected error containing %q, got %q, %v", tc.err, got, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("resolvePackage(%q)=%q, %v want %q", tc.ref, got, err, tc.want)
			}
		})
	}
}

func TestLaunchCommandRunsRunner(t *testing.T) {
	dirs := newTestDirs(t)
	path := writeApk(t, dirs.apkDir, "quake.apk", false)
	runner, record := writeRunner(t, t.TempDir(), 0)

	if _, err := executeRoot(t, dirs.args("--launcher", runner, "launch", "quake")...); err != nil {
		t.Fatalf("launch: %v", err)
	}
	b, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if string(b) != path {
		t.Fatalf("runner got %q want %q", string(b), path)
	}
}

func TestLaunchCommandReportsRunnerFailure(t *testing.T) {
	dirs := newTestDirs(t)
	writeApk(t, dirs.apkDir, "quake.apk", false)
	runner, _ := writeRunner(t, t.TempDir(), 3)

	_, err := executeRoot(t, dirs.args("--launcher", runner, "launch", "quake.apk")...)
	if err == nil || !strings.Contains(err.Error(), "exit status 3") {
		t.Fatalf("expected exit status 3, got %v", err)
	}
}
