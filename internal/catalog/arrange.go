package catalog

import "github.com/baaaaaaaka/apkenv-launcher/internal/grid"

// Arrangement configures one layout pass over a catalog.
type Arrangement struct {
	Container grid.Size
	Border    int
	// Fixed overrides the derived cell size when non-zero.
	Fixed grid.Size
	// Min bounds the derived cell size from below.
	Min       grid.Size
	LabelRows int
}

// CellSize is the uniform cell for the current entries.
func (c *Catalog) CellSize(a Arrangement) grid.Size {
	if !a.Fixed.IsZero() {
		return a.Fixed
	}
	cell := grid.DeriveCell(c.footprints(a.LabelRows), a.Border)
	cell.W = max(cell.W, a.Min.W)
	cell.H = max(cell.H, a.Min.H)
	return cell
}

// Arrange lays the entries out and records each entry's cell. The returned
// slice is indexed like c.Entries.
func (c *Catalog) Arrange(a Arrangement) []grid.Cell {
	if c.Len() == 0 {
		return nil
	}
	cells := grid.Layout(grid.Params{
		Container: a.Container,
		Border:    a.Border,
		Cell:      c.CellSize(a),
	}, c.footprints(a.LabelRows))
	for i, e := range c.Entries {
		e.Cell = cells[i]
	}
	return cells
}

func (c *Catalog) footprints(labelRows int) []grid.Size {
	out := make([]grid.Size, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Footprint(labelRows)
	}
	return out
}
