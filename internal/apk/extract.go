// Package apk pulls launcher icons out of Android package archives and keeps
// them in an on-disk cache.
package apk

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/baaaaaaaka/apkenv-launcher/internal/fsutil"
)

// IconFolders are searched in order; the first folder holding a match wins.
// Entries are matched by prefix, so "res/drawable" also covers the density
// specific folders.
var IconFolders = []string{
	"res/drawable-hdpi/",
	"res/drawable",
}

// maxIconBytes caps the size of an extracted icon.
var maxIconBytes int64 = 4 << 20

// ErrIconTooLarge is returned for icons over maxIconBytes. Nothing is written
// to the cache for them.
var ErrIconTooLarge = errors.New("icon too large")

// visitFunc handles one archive member. Returning stop=true ends the walk.
type visitFunc func(f *zip.File) (stop bool, err error)

// forEachFile calls visit for every regular member whose name starts with
// prefix, in archive order.
func forEachFile(r *zip.Reader, prefix string, visit visitFunc) error {
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		stop, err := visit(f)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

// IsIconName reports whether an archive member looks like a launcher icon.
func IsIconName(name string) bool {
	base := path.Base(name)
	return strings.Contains(base, "icon") && path.Ext(base) == ".png"
}

// ExtractIcon copies the first icon found in the archive at apkPath to dest.
// It returns false when the archive has no icon.
func ExtractIcon(apkPath, dest string) (bool, error) {
	zr, err := zip.OpenReader(apkPath)
	if err != nil {
		return false, fmt.Errorf("open archive %s: %w", apkPath, err)
	}
	defer zr.Close()

	for _, folder := range IconFolders {
		found := false
		err := forEachFile(&zr.Reader, folder, func(f *zip.File) (bool, error) {
			if !IsIconName(f.Name) {
				return false, nil
			}
			if err := copyMember(f, dest); err != nil {
				return false, err
			}
			found = true
			return true, nil
		})
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

func copyMember(f *zip.File, dest string) error {
	if f.UncompressedSize64 > uint64(maxIconBytes) {
		return fmt.Errorf("%s: %w (%d bytes)", f.Name, ErrIconTooLarge, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	// The header size can lie; the reader enforces the cap as well.
	r := &cappedReader{r: io.LimitReader(rc, maxIconBytes+1), left: maxIconBytes}
	if err := fsutil.AtomicWriteFrom(dest, r, 0o644); err != nil {
		if errors.Is(err, ErrIconTooLarge) {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		return fmt.Errorf("write icon %s: %w", dest, err)
	}
	return nil
}

// cappedReader fails once more than left bytes have been read.
type cappedReader struct {
	r    io.Reader
	left int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, ErrIconTooLarge
	}
	return n, err
}
