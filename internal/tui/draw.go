package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
	"github.com/baaaaaaaka/apkenv-launcher/internal/grid"
)

var (
	backgroundColor = tcell.NewRGBColor(64, 64, 64)
	highlightColor  = tcell.NewRGBColor(70, 110, 170)
	labelColor      = tcell.NewRGBColor(255, 255, 255)
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

const keyHints = "arrows move  enter launch  r rescan  q quit"

func draw(screen tcell.Screen, state *uiState, opts Options) {
	screen.Clear()
	w, _ := screen.Size()
	view := grid.Rect{W: w, H: state.container.H}
	fill(screen, view, tcell.StyleDefault.Background(backgroundColor))

	if state.cat.Len() == 0 {
		drawEmpty(screen, view, emptyMessage(state, opts))
	} else {
		for i, e := range state.cat.Entries {
			drawEntry(screen, view, e, state.sel.IsSelected(i), state.scroll, opts.Border)
		}
	}

	drawStatus(screen, state, opts)
	screen.Show()
}

func emptyMessage(state *uiState, opts Options) string {
	if state.loadErr != nil {
		return fmt.Sprintf("Failed to load packages: %v", state.loadErr)
	}
	dir := opts.Dir
	if state.cat != nil && state.cat.Dir != "" {
		dir = state.cat.Dir
	}
	return fmt.Sprintf("No packages found in %s", dir)
}

func drawEmpty(screen tcell.Screen, view grid.Rect, msg string) {
	if view.Empty() {
		return
	}
	msg = truncate(msg, view.W)
	x := view.X + max(0, (view.W-displayWidth(msg))/2)
	y := view.Y + view.H/2
	style := tcell.StyleDefault.Background(backgroundColor).Foreground(labelColor)
	writeClipped(screen, view, x, y, msg, style)
}

// drawEntry paints one entry. Nothing is drawn outside the entry's cell.
func drawEntry(screen tcell.Screen, view grid.Rect, e *catalog.Entry, selected bool, scroll, border int) {
	rect := e.Cell.Rect.Translate(0, -scroll)
	clip := rect.Intersect(view)
	if clip.Empty() {
		return
	}

	cellBg := backgroundColor
	inner := grid.Rect{X: rect.X + border, Y: rect.Y + border, W: rect.W - 2*border, H: rect.H - 2*border}
	if inner.Empty() {
		inner = rect
	}
	if selected {
		cellBg = highlightColor
		fill(screen, inner.Intersect(clip), tcell.StyleDefault.Background(cellBg))
	}
	bgAt := func(x, y int) tcell.Color {
		if selected && inner.Contains(x, y) {
			return highlightColor
		}
		return backgroundColor
	}

	at := e.Cell.Draw.Translate(0, -scroll)
	iconRows := 0
	if ic := e.Assets.Icon; ic != nil {
		cols, rows := ic.CellSize()
		x0 := at.X + max(0, (at.W-cols)/2)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				x, y := x0+col, at.Y+row
				if !clip.Contains(x, y) {
					continue
				}
				top, bottom, topOK, bottomOK := ic.HalfBlock(col, row)
				drawHalfBlock(screen, x, y, bgAt(x, y), rgb(top), rgb(bottom), topOK, bottomOK)
			}
		}
		iconRows = rows
	}

	labelW := rect.W - 2*border
	if labelW <= 0 {
		labelW = rect.W
	}
	label := truncate(e.Assets.Label, labelW)
	x := rect.X + max(0, (rect.W-displayWidth(label))/2)
	style := tcell.StyleDefault.Background(cellBg).Foreground(labelColor)
	if selected {
		style = style.Bold(true)
	}
	writeClipped(screen, clip, x, at.Y+iconRows, label, style)
}

// drawHalfBlock renders two vertically stacked pixels in one terminal cell.
// A transparent pixel shows bg.
func drawHalfBlock(screen tcell.Screen, x, y int, bg, top, bottom tcell.Color, topOK, bottomOK bool) {
	switch {
	case !topOK && !bottomOK:
		return
	case topOK && bottomOK:
		screen.SetContent(x, y, upperHalf, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
	case topOK:
		screen.SetContent(x, y, upperHalf, nil, tcell.StyleDefault.Foreground(top).Background(bg))
	default:
		screen.SetContent(x, y, lowerHalf, nil, tcell.StyleDefault.Foreground(bottom).Background(bg))
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawStatus(screen tcell.Screen, state *uiState, opts Options) {
	w, h := screen.Size()
	if h <= 0 || w <= 0 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Reverse(true)
	writeText(screen, 0, y, padRight("", w), style)

	parts := []string{"apkenv-launcher " + versionLabel(opts.Version)}
	if i, ok := state.sel.Index(); ok && i < state.cat.Len() {
		n := state.cat.Len()
		parts = append(parts, fmt.Sprintf("%d/%d %s", i+1, n, state.cat.Entries[i].Assets.Label))
	}
	if state.status != "" {
		parts = append(parts, state.status)
	}
	left := strings.Join(parts, "  ")

	right := keyHints
	if displayWidth(left)+displayWidth(right)+2 > w {
		right = ""
	}
	writeText(screen, 0, y, truncate(left, w), style)
	if right != "" {
		writeText(screen, w-displayWidth(right), y, right, style)
	}
}

func fill(screen tcell.Screen, r grid.Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func writeClipped(screen tcell.Screen, clip grid.Rect, x, y int, text string, style tcell.Style) {
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		if clip.Contains(x+offset, y) && clip.Contains(x+offset+width-1, y) {
			screen.SetContent(x+offset, y, ch, nil, style)
		}
		offset += width
	}
}

func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		screen.SetContent(x+offset, y, ch, nil, style)
		offset += width
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	var buf strings.Builder
	curWidth := 0
	for _, ch := range s {
		chWidth := runewidth.RuneWidth(ch)
		if chWidth == 0 {
			buf.WriteRune(ch)
			continue
		}
		if curWidth+chWidth > width {
			break
		}
		buf.WriteRune(ch)
		curWidth += chWidth
	}
	return buf.String()
}

func padRight(s string, width int) string {
	if displayWidth(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-displayWidth(s))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func versionLabel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		v = "dev"
	}
	if strings.EqualFold(v, "dev") {
		return v
	}
	if strings.HasPrefix(strings.ToLower(v), "v") {
		return v
	}
	return "v" + v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
