package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/log/v2"
	"github.com/gdamore/tcell/v2"

	"github.com/baaaaaaaka/apkenv-launcher/internal/catalog"
	"github.com/baaaaaaaka/apkenv-launcher/internal/grid"
	"github.com/baaaaaaaka/apkenv-launcher/internal/logging"
)

var errQuit = errors.New("quit")

var newScreen = tcell.NewScreen

const statusHeight = 1

// Selection is the entry the user confirmed.
type Selection struct {
	Entry *catalog.Entry
}

type Options struct {
	// Load builds a complete catalog. It runs once before the screen opens
	// and again, off the event loop, for every rescan.
	Load func(context.Context) (*catalog.Catalog, error)
	// Launch starts the confirmed entry. When nil, Run returns the entry to
	// the caller instead.
	Launch func(*catalog.Entry) error
	// Watch starts a change notifier and returns its stop function.
	Watch func(notify func()) (func(), error)

	Dir       string
	Border    int
	Cell      grid.Size
	MinCell   grid.Size
	LabelRows int
	// ExitOnLaunch returns from Run after a successful launch.
	ExitOnLaunch bool
	Version      string
	Logger       *log.Logger
}

type uiEvent struct {
	when time.Time
	kind string
}

func (e *uiEvent) When() time.Time { return e.when }

type loadResult struct {
	cat *catalog.Catalog
	err error
}

type uiState struct {
	cat     *catalog.Catalog
	loadErr error
	sel     *grid.Selection

	container grid.Size
	scroll    int
	status    string

	loading       bool
	rescanPending bool
	mouseDown     bool
	// chosen is set once the user has moved or picked the selection; a tap
	// confirms only an entry the user chose.
	chosen bool
}

func newState(cat *catalog.Catalog, err error) *uiState {
	return &uiState{cat: cat, loadErr: err, sel: grid.NewSelection(nil)}
}

// Run shows the package grid until the user quits, ctx ends, or an entry is
// confirmed and returned.
func Run(ctx context.Context, opts Options) (*Selection, error) {
	if opts.Load == nil {
		return nil, errors.New("Load is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	cat, err := opts.Load(ctx)
	if err != nil {
		logger.Error("load packages", "err", err)
	}
	state := newState(cat, err)

	screen, err := newScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	defer screen.Fini()
	screen.EnableMouse()
	state.resize(screen, opts)

	done := make(chan struct{})
	defer close(done)

	loadCh := make(chan loadResult, 1)

	if opts.Watch != nil {
		stop, err := opts.Watch(func() {
			screen.PostEvent(&uiEvent{when: time.Now(), kind: "rescan"})
		})
		if err != nil {
			logger.Warn("package watcher disabled", "err", err)
		} else {
			defer stop()
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			screen.PostEvent(&uiEvent{when: time.Now(), kind: "quit"})
		case <-done:
		}
	}()

	for {
		draw(screen, state, opts)
		ev := screen.PollEvent()

		switch tev := ev.(type) {
		case nil:
			return nil, nil
		case *uiEvent:
			switch tev.kind {
			case "quit":
				return nil, ctx.Err()
			case "rescan":
				startRescan(ctx, screen, state, opts, loadCh)
			case "catalog":
				select {
				case res := <-loadCh:
					state.loading = false
					state.swap(res.cat, res.err, opts)
					if res.err != nil {
						logger.Warn("rescan failed", "err", res.err)
					}
					if state.rescanPending {
						state.rescanPending = false
						startRescan(ctx, screen, state, opts, loadCh)
					}
				default:
				}
			}
		case *tcell.EventResize:
			screen.Sync()
			state.resize(screen, opts)
		case *tcell.EventKey:
			selection, err := handleKey(ctx, screen, state, opts, loadCh, tev)
			if err != nil {
				if errors.Is(err, errQuit) {
					return nil, nil
				}
				return nil, err
			}
			if selection != nil {
				return selection, nil
			}
		case *tcell.EventMouse:
			if selection := handleMouse(state, opts, tev); selection != nil {
				return selection, nil
			}
		}
	}
}

// startRescan loads a new catalog in the background. The result is swapped
// in by the event loop when the "catalog" event arrives.
func startRescan(ctx context.Context, screen tcell.Screen, state *uiState, opts Options, loadCh chan<- loadResult) {
	if state.loading {
		state.rescanPending = true
		return
	}
	state.loading = true
	state.status = "Rescanning..."
	go func() {
		cat, err := opts.Load(ctx)
		loadCh <- loadResult{cat: cat, err: err}
		screen.PostEvent(&uiEvent{when: time.Now(), kind: "catalog"})
	}()
}

func handleKey(
	ctx context.Context,
	screen tcell.Screen,
	state *uiState,
	opts Options,
	loadCh chan<- loadResult,
	ev *tcell.EventKey,
) (*Selection, error) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyESC:
		return nil, errQuit
	case tcell.KeyCtrlR:
		startRescan(ctx, screen, state, opts, loadCh)
		return nil, nil
	case tcell.KeyLeft:
		state.move(state.sel.Step(-1))
		return nil, nil
	case tcell.KeyRight:
		state.move(state.sel.Step(1))
		return nil, nil
	case tcell.KeyUp:
		state.move(state.sel.StepVertical(-1))
		return nil, nil
	case tcell.KeyDown:
		state.move(state.sel.StepVertical(1))
		return nil, nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return nil, errQuit
		case 'r', 'R':
			startRescan(ctx, screen, state, opts, loadCh)
		case 'h':
			state.move(state.sel.Step(-1))
		case 'l':
			state.move(state.sel.Step(1))
		case 'k':
			state.move(state.sel.StepVertical(-1))
		case 'j':
			state.move(state.sel.StepVertical(1))
		case ' ':
			return confirm(state, opts)
		}
		return nil, nil
	}

	if ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyCtrlJ || ev.Key() == tcell.KeyCtrlM {
		return confirm(state, opts)
	}
	return nil, nil
}

// handleMouse reacts to the press edge of the primary button. A press on the
// entry the user already selected confirms it; the initial selection needs a
// pick first.
func handleMouse(state *uiState, opts Options, ev *tcell.EventMouse) *Selection {
	pressed := ev.Buttons()&tcell.Button1 != 0
	edge := pressed && !state.mouseDown
	state.mouseDown = pressed
	if !edge {
		return nil
	}

	x, y := ev.Position()
	if y >= state.container.H {
		return nil
	}
	before, hadSelection := state.sel.Index()
	if !state.sel.Pick(x, y+state.scroll) {
		return nil
	}
	after, _ := state.sel.Index()
	if hadSelection && before == after && state.chosen {
		selection, _ := confirm(state, opts)
		return selection
	}
	state.move(true)
	return nil
}

func confirm(state *uiState, opts Options) (*Selection, error) {
	entry := state.current()
	if entry == nil {
		return nil, nil
	}
	if opts.Launch == nil {
		return &Selection{Entry: entry}, nil
	}
	if err := opts.Launch(entry); err != nil {
		state.status = fmt.Sprintf("Launch failed: %v", err)
		return nil, nil
	}
	state.status = "Launched " + entry.Assets.Label
	if opts.ExitOnLaunch {
		return &Selection{Entry: entry}, nil
	}
	return nil, nil
}

func (s *uiState) current() *catalog.Entry {
	i, ok := s.sel.Index()
	if !ok || i >= s.cat.Len() {
		return nil
	}
	return s.cat.Entries[i]
}

func (s *uiState) move(changed bool) {
	s.chosen = true
	if changed {
		s.status = ""
		s.ensureVisible()
	}
}

func (s *uiState) arrangement(opts Options) catalog.Arrangement {
	return catalog.Arrangement{
		Container: s.container,
		Border:    opts.Border,
		Fixed:     opts.Cell,
		Min:       opts.MinCell,
		LabelRows: opts.LabelRows,
	}
}

// relayout recomputes every cell for the current container and installs the
// new cells and selection together.
func (s *uiState) relayout(opts Options, keep int) {
	cells := s.cat.Arrange(s.arrangement(opts))
	s.sel.Reset(cells, keep)
	s.ensureVisible()
}

func (s *uiState) resize(screen tcell.Screen, opts Options) {
	w, h := screen.Size()
	container := grid.Size{W: w, H: max(0, h-statusHeight)}
	if container == s.container && s.sel.Len() == s.cat.Len() {
		return
	}
	s.container = container
	keep, _ := s.sel.Index()
	s.relayout(opts, keep)
}

// swap replaces the catalog with a freshly loaded one, keeping the selected
// package selected when it still exists. A failed load keeps the old grid.
func (s *uiState) swap(cat *catalog.Catalog, err error, opts Options) {
	if err != nil {
		s.status = fmt.Sprintf("Rescan failed: %v", err)
		return
	}
	keepPath := ""
	if e := s.current(); e != nil {
		keepPath = e.Path
	}
	keep := cat.Find(keepPath)
	if keep < 0 {
		s.chosen = false
	}
	s.cat = cat
	s.loadErr = nil
	s.relayout(opts, keep)
	s.status = fmt.Sprintf("%d packages", cat.Len())
}

// ensureVisible scrolls the grid so the selected cell is fully on screen
// when it fits.
func (s *uiState) ensureVisible() {
	viewH := s.container.H
	cur, ok := s.sel.Current()
	if !ok || viewH <= 0 {
		s.scroll = 0
		return
	}
	top := cur.Rect.Y
	bottom := cur.Rect.Y + cur.Rect.H
	if bottom-s.scroll > viewH {
		s.scroll = bottom - viewH
	}
	if top < s.scroll {
		s.scroll = top
	}
	maxScroll := max(0, grid.Extent(s.sel.Cells()).H-viewH)
	s.scroll = clamp(s.scroll, 0, maxScroll)
}
