package apk

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestCacheIconPath(t *testing.T) {
	c, err := NewCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	want := filepath.Join(c.Dir(), "game.apk.png")
	if got := c.IconPath("/sd/apks/game.apk"); got != want {
		t.Fatalf("IconPath=%q want %q", got, want)
	}
}

func TestCacheEnsureExtractsOnceThenHits(t *testing.T) {
	dir := t.TempDir()
	apkPath := writeArchive(t, dir, "game.apk", ArchiveFile{Name: "res/drawable/icon.png", Data: []byte("png")})
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if c.Has(apkPath) {
		t.Fatalf("expected empty cache")
	}

	path, ok, err := c.Ensure(apkPath)
	if err != nil || !ok {
		t.Fatalf("Ensure ok=%v err=%v", ok, err)
	}
	if path != c.IconPath(apkPath) || !c.Has(apkPath) {
		t.Fatalf("expected cached icon at %s", c.IconPath(apkPath))
	}

	// A cache hit must not touch the archive.
	if err := os.Remove(apkPath); err != nil {
		t.Fatalf("remove archive: %v", err)
	}
	if _, ok, err := c.Ensure(apkPath); err != nil || !ok {
		t.Fatalf("expected cache hit, ok=%v err=%v", ok, err)
	}
}

func TestCacheEnsureDoesNotRetryFailures(t *testing.T) {
	dir := t.TempDir()
	apkPath := filepath.Join(dir, "broken.apk")
	if err := os.WriteFile(apkPath, []byte("junk"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if _, ok, err := c.Ensure(apkPath); ok || err == nil {
		t.Fatalf("expected first attempt to fail, ok=%v err=%v", ok, err)
	}

	// The same archive is not re-read.
	if _, ok, err := c.Ensure(apkPath); ok || err != nil {
		t.Fatalf("expected silent miss on retry, ok=%v err=%v", ok, err)
	}
}

func TestCacheEnsureRetriesRewrittenArchive(t *testing.T) {
	dir := t.TempDir()
	apkPath := filepath.Join(dir, "game.apk")
	// A copy still in progress: the archive is cut short.
	if err := WriteArchiveForTest(apkPath, []ArchiveFile{{Name: "res/drawable/icon.png", Data: []byte("png")}}); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	full, err := os.ReadFile(apkPath)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if err := os.WriteFile(apkPath, full[:len(full)/2], 0o600); err != nil {
		t.Fatalf("truncate archive: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(apkPath, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if _, ok, _ := c.Ensure(apkPath); ok {
		t.Fatalf("expected a truncated archive to fail")
	}

	// The copy finishes.
	if err := os.WriteFile(apkPath, full, 0o600); err != nil {
		t.Fatalf("finish archive: %v", err)
	}
	path, ok, err := c.Ensure(apkPath)
	if err != nil || !ok {
		t.Fatalf("expected the rewritten archive to be extracted, ok=%v err=%v", ok, err)
	}
	if got, _ := os.ReadFile(path); string(got) != "png" {
		t.Fatalf("unexpected icon %q", got)
	}
}

func TestCacheEnsureDoesNotCacheOversizedIcon(t *testing.T) {
	withMaxIconBytes(t, 8)
	dir := t.TempDir()
	apkPath := writeArchive(t, dir, "game.apk", ArchiveFile{Name: "res/drawable/icon.png", Data: []byte("0123456789abcdef")})
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if _, ok, err := c.Ensure(apkPath); ok || !errors.Is(err, ErrIconTooLarge) {
		t.Fatalf("expected ErrIconTooLarge, ok=%v err=%v", ok, err)
	}
	if c.Has(apkPath) {
		t.Fatalf("oversized icon must not become a cache hit")
	}
}

func TestCacheEnsureConcurrent(t *testing.T) {
	dir := t.TempDir()
	apkPath := writeArchive(t, dir, "game.apk", ArchiveFile{Name: "res/drawable-hdpi/icon.png", Data: []byte("png")})
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, err := c.Ensure(apkPath); err != nil || !ok {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent Ensure failed: %v", err)
	}
}

func TestCacheClean(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	for _, name := range []string{"a.apk.png", "b.apk.png", "launcher.log"} {
		if err := os.WriteFile(filepath.Join(c.Dir(), name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	n, err := c.Clean()
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 icons removed, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(c.Dir(), "launcher.log")); err != nil {
		t.Fatalf("expected non-icon files to survive: %v", err)
	}
}
