// Package catalog discovers launchable packages and owns their entries.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charm.land/log/v2"

	"github.com/baaaaaaaka/apkenv-launcher/internal/apk"
	"github.com/baaaaaaaka/apkenv-launcher/internal/grid"
	"github.com/baaaaaaaka/apkenv-launcher/internal/icon"
	"github.com/baaaaaaaka/apkenv-launcher/internal/logging"
)

type Order string

const (
	// OrderFS keeps directory enumeration order.
	OrderFS   Order = "fs"
	OrderName Order = "name"
)

func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderFS:
		return OrderFS, nil
	case OrderName:
		return OrderName, nil
	default:
		return "", fmt.Errorf("invalid order %q (expected fs or name)", s)
	}
}

// Assets is what a renderer draws for an entry. Icon is nil when extraction
// or decoding failed; the entry is then shown by label alone.
type Assets struct {
	Icon  *icon.Icon
	Label string
}

type Entry struct {
	Path   string
	Name   string
	Assets Assets
	// Cell is rewritten by every Arrange call.
	Cell grid.Cell
}

func (e *Entry) HasIcon() bool { return e.Assets.Icon != nil }

// Footprint is the entry's asset size on a character grid: the icon with
// labelRows text rows under it, or just the label rows.
func (e *Entry) Footprint(labelRows int) grid.Size {
	if e.Assets.Icon == nil {
		return grid.Size{H: labelRows}
	}
	w, h := e.Assets.Icon.CellSize()
	return grid.Size{W: w, H: h + labelRows}
}

// Catalog is the ordered entry list for one scan. It is not modified after
// Load apart from layout; a rescan builds a new Catalog.
type Catalog struct {
	Dir     string
	Entries []*Entry
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Find returns the index of the entry with the given path, or -1.
func (c *Catalog) Find(path string) int {
	if c == nil || path == "" {
		return -1
	}
	for i, e := range c.Entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

type Options struct {
	Dir    string
	Suffix string
	Order  Order
	// Cache is optional; without it no icons are loaded.
	Cache   *apk.Cache
	IconMax grid.Size
	Logger  *log.Logger
}

// Scan lists the file names in dir that end with suffix. A missing directory
// is an empty result, not an error.
func Scan(dir, suffix string, order Order) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open package dir: %w", err)
	}
	defer f.Close()

	// File.ReadDir keeps enumeration order; os.ReadDir would sort.
	des, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read package dir: %w", err)
	}
	var names []string
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), suffix) {
			continue
		}
		names = append(names, de.Name())
	}
	if order == OrderName {
		sort.SliceStable(names, func(i, j int) bool {
			a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
			if a != b {
				return a < b
			}
			return names[i] < names[j]
		})
	}
	return names, nil
}

// Load scans opts.Dir and builds one entry per package. Icon problems are
// logged and leave the entry label-only; only an unreadable directory or a
// cancelled context fails the load.
func Load(ctx context.Context, opts Options) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve package dir: %w", err)
	}
	names, err := Scan(dir, opts.Suffix, opts.Order)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{Dir: dir, Entries: make([]*Entry, 0, len(names))}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e := &Entry{
			Path:   filepath.Join(dir, name),
			Name:   name,
			Assets: Assets{Label: Label(name, opts.Suffix)},
		}
		if opts.Cache != nil {
			e.Assets.Icon = loadIcon(opts.Cache, e.Path, opts.IconMax, logger)
		}
		cat.Entries = append(cat.Entries, e)
	}
	logger.Info("catalog loaded", "dir", dir, "entries", len(cat.Entries))
	return cat, nil
}

func loadIcon(cache *apk.Cache, apkPath string, limit grid.Size, logger *log.Logger) *icon.Icon {
	iconPath, ok, err := cache.Ensure(apkPath)
	if err != nil {
		logger.Warn("icon extraction failed", "apk", apkPath, "err", err)
		return nil
	}
	if !ok {
		logger.Warn("no icon in package", "apk", apkPath)
		return nil
	}
	ic, err := icon.Load(iconPath, limit.W, limit.H)
	if err != nil {
		logger.Warn("failed to load icon", "apk", apkPath, "err", err)
		return nil
	}
	logger.Debug("icon loaded", "apk", apkPath, "w", ic.Width(), "h", ic.Height())
	return ic
}

// Label derives the display label from a package file name.
func Label(name, suffix string) string {
	label := strings.TrimSuffix(name, suffix)
	if strings.TrimSpace(label) == "" {
		return name
	}
	return label
}
