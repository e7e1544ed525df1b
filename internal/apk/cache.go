package apk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

const lockName = ".lock"

// Cache stores one extracted icon per archive at <dir>/<archive name>.png.
// The presence of that file is the cache hit test. A lock file in the cache
// directory keeps concurrent launchers from extracting at the same time.
type Cache struct {
	dir  string
	lock *flock.Flock

	mu    sync.Mutex
	tried map[string]archiveStamp
}

// archiveStamp identifies one version of an archive on disk.
type archiveStamp struct {
	size    int64
	modTime int64
}

func stampOf(path string) archiveStamp {
	info, err := os.Stat(path)
	if err != nil {
		return archiveStamp{size: -1}
	}
	return archiveStamp{size: info.Size(), modTime: info.ModTime().UnixNano()}
}

func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create icon cache: %w", err)
	}
	return &Cache{
		dir:   dir,
		lock:  flock.New(filepath.Join(dir, lockName)),
		tried: map[string]archiveStamp{},
	}, nil
}

func (c *Cache) Dir() string { return c.dir }

func (c *Cache) IconPath(apkPath string) string {
	return filepath.Join(c.dir, filepath.Base(apkPath)+".png")
}

func (c *Cache) Has(apkPath string) bool {
	info, err := os.Stat(c.IconPath(apkPath))
	return err == nil && !info.IsDir()
}

// Ensure returns the cached icon for apkPath, extracting it on a miss.
// A failed extraction is not retried while the archive's size and
// modification time stay the same; a rewritten archive gets a new attempt.
func (c *Cache) Ensure(apkPath string) (string, bool, error) {
	dest := c.IconPath(apkPath)
	if c.Has(apkPath) {
		return dest, true, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Has(apkPath) {
		return dest, true, nil
	}
	stamp := stampOf(apkPath)
	if prev, ok := c.tried[apkPath]; ok && prev == stamp {
		return "", false, nil
	}
	c.tried[apkPath] = stamp

	if err := c.lock.Lock(); err != nil {
		return "", false, fmt.Errorf("lock icon cache: %w", err)
	}
	defer func() { _ = c.lock.Unlock() }()

	// Another process may have filled it while we waited.
	if c.Has(apkPath) {
		return dest, true, nil
	}
	ok, err := ExtractIcon(apkPath, dest)
	if err != nil || !ok {
		return "", false, err
	}
	return dest, true, nil
}

// Clean removes every cached icon and returns how many were deleted.
func (c *Cache) Clean() (int, error) {
	if err := c.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock icon cache: %w", err)
	}
	defer func() { _ = c.lock.Unlock() }()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("read icon cache: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return n, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		n++
	}

	c.mu.Lock()
	c.tried = map[string]archiveStamp{}
	c.mu.Unlock()
	return n, nil
}
