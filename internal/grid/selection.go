package grid

// Selection holds the single current entry of a laid out grid.
//
// The selected flag of every entry is derived from one index, so moving the
// selection never exposes zero or two highlighted cells to a renderer that
// samples between calls. Every operation on an empty grid is a no-op.
type Selection struct {
	cells []Cell
	index int
}

// NewSelection selects the first cell when cells is non-empty.
func NewSelection(cells []Cell) *Selection {
	s := &Selection{index: -1}
	s.Reset(cells, -1)
	return s
}

// Reset swaps in a new layout. keep is retained when it indexes the new
// cells; otherwise the first cell is selected, or nothing if cells is empty.
func (s *Selection) Reset(cells []Cell, keep int) {
	s.cells = cells
	switch {
	case len(cells) == 0:
		s.index = -1
	case keep >= 0 && keep < len(cells):
		s.index = keep
	default:
		s.index = 0
	}
}

func (s *Selection) Len() int { return len(s.cells) }

func (s *Selection) Cells() []Cell { return s.cells }

// Index returns the selected index, or false when nothing is selected.
func (s *Selection) Index() (int, bool) {
	if s.index < 0 || s.index >= len(s.cells) {
		return -1, false
	}
	return s.index, true
}

func (s *Selection) Current() (Cell, bool) {
	i, ok := s.Index()
	if !ok {
		return Cell{}, false
	}
	return s.cells[i], true
}

func (s *Selection) IsSelected(i int) bool {
	cur, ok := s.Index()
	return ok && cur == i
}

// Select moves the selection to i. Out of range indices are ignored.
func (s *Selection) Select(i int) bool {
	if i < 0 || i >= len(s.cells) {
		return false
	}
	s.index = i
	return true
}

// Pick selects the first cell, in layout order, whose rectangle contains the
// point. A miss leaves the selection unchanged and returns false.
func (s *Selection) Pick(x, y int) bool {
	for i, c := range s.cells {
		if c.Rect.Contains(x, y) {
			s.index = i
			return true
		}
	}
	return false
}

// Step moves d entries along the flat raster order, wrapping at both ends.
// Row boundaries play no part.
func (s *Selection) Step(d int) bool {
	cur, ok := s.Index()
	if !ok {
		return false
	}
	n := len(s.cells)
	s.index = wrap(cur+d, n)
	return true
}

// StepVertical moves d rows within the current column, wrapping between the
// top row and the lowest row that column reaches. When no cell sits at the
// wrapped coordinate the selection stays where it is and false is returned.
func (s *Selection) StepVertical(d int) bool {
	cur, ok := s.Index()
	if !ok {
		return false
	}
	at := s.cells[cur]

	maxRow := -1
	for _, c := range s.cells {
		if c.Col == at.Col && c.Row > maxRow {
			maxRow = c.Row
		}
	}
	if maxRow < 0 {
		return false
	}

	target := wrap(at.Row+d, maxRow+1)
	for i, c := range s.cells {
		if c.Row == target && c.Col == at.Col {
			s.index = i
			return true
		}
	}
	return false
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
