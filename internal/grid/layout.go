// Package grid places launcher entries into uniform cells and tracks which
// cell is currently selected. It does no I/O and never returns errors.
package grid

// Rect is an axis-aligned rectangle in screen units.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Overlaps reports whether r and o share at least one point.
func (r Rect) Overlaps(o Rect) bool { return !r.Intersect(o).Empty() }

type Size struct {
	W int
	H int
}

func (s Size) IsZero() bool { return s.W <= 0 || s.H <= 0 }

// Cell is the placement of one entry.
//
// Rect is the uniform grid slot. Draw is where the entry's visual asset goes:
// the asset size centered inside Rect, or Rect itself along any axis where
// the asset is absent or does not fit.
type Cell struct {
	Row  int
	Col  int
	Rect Rect
	Draw Rect
}

// Params describes one layout pass. A zero Cell means the cell size is
// derived from the assets with DeriveCell.
type Params struct {
	Container Size
	Border    int
	Cell      Size
}

// DeriveCell returns the cell that fits the largest asset plus the border on
// every side. Assets with a zero dimension do not contribute.
func DeriveCell(assets []Size, border int) Size {
	maxW, maxH := 0, 0
	for _, a := range assets {
		if a.IsZero() {
			continue
		}
		maxW = max(maxW, a.W)
		maxH = max(maxH, a.H)
	}
	return Size{W: maxW + 2*border, H: maxH + 2*border}
}

// Layout assigns a cell to every asset in input order, raster style.
//
// Placement starts at (border, border). After each cell x advances by the
// cell width; once x meets or exceeds the container width it resets to the
// border and the next row begins. A cell wider than the container still gets
// the origin slot. Zero assets yield a nil layout.
func Layout(p Params, assets []Size) []Cell {
	if len(assets) == 0 {
		return nil
	}
	cell := p.Cell
	if cell.IsZero() {
		cell = DeriveCell(assets, p.Border)
	}
	cell.W = max(1, cell.W)
	cell.H = max(1, cell.H)

	cells := make([]Cell, len(assets))
	x, y := p.Border, p.Border
	row, col := 0, 0
	for i, a := range assets {
		r := Rect{X: x, Y: y, W: cell.W, H: cell.H}
		cells[i] = Cell{Row: row, Col: col, Rect: r, Draw: center(r, a)}

		x += cell.W
		if x >= p.Container.W {
			x = p.Border
			y += cell.H
			row++
			col = 0
		} else {
			col++
		}
	}
	return cells
}

// Extent is the bottom-right corner covered by the cells.
func Extent(cells []Cell) Size {
	var s Size
	for _, c := range cells {
		s.W = max(s.W, c.Rect.X+c.Rect.W)
		s.H = max(s.H, c.Rect.Y+c.Rect.H)
	}
	return s
}

func center(r Rect, asset Size) Rect {
	out := r
	if asset.W > 0 && asset.W <= r.W {
		out.X = r.X + (r.W-asset.W)/2
		out.W = asset.W
	}
	if asset.H > 0 && asset.H <= r.H {
		out.Y = r.Y + (r.H-asset.H)/2
		out.H = asset.H
	}
	return out
}
