// Package term runs a character grid on a terminal through tcell.
//
// Terminals report key presses but not releases, so every press is delivered
// as a key down followed at once by a key up. Only the primary mouse button
// is tracked; its press, drags and release become pointer begin, move and end
// events in cell coordinates.
package term

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/starter"
	"github.com/phanxgames/starter/clock"
	"github.com/phanxgames/starter/input"
	"github.com/phanxgames/starter/queue"
)

// DefaultFrameRate is the redraw rate used when none is set.
const DefaultFrameRate = 30

// Program is the application body. It returns when done; the terminal is
// restored afterwards.
type Program func(ctx context.Context, m *starter.CharMode) error

type options struct {
	log  *starter.Logger
	rate float64
	src  clock.TimeSource
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *starter.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithFrameRate sets how many times per second the grid is redrawn.
func WithFrameRate(hz float64) Option {
	return func(o *options) { o.rate = hz }
}

// WithTimeSource replaces the clock pacing redraws.
func WithTimeSource(src clock.TimeSource) Option {
	return func(o *options) { o.src = src }
}

type terminal struct {
	screen tcell.Screen
	disp   *input.Dispatcher
	grid   *starter.CharMode
	log    *starter.Logger
	bounds input.Rect
	down   bool
}

// Run initializes screen, shows a cols × rows grid in its top-left corner
// and runs program with it. Run returns when program returns, when ctx ends
// or when Ctrl-C is pressed, and always finalizes the screen.
//
// Errors from program are returned, except context.Canceled and
// queue.ErrClosed, which only mean the grid was shut down under it.
func Run(ctx context.Context, screen tcell.Screen, cols, rows int, program Program, opts ...Option) error {
	o := options{rate: DefaultFrameRate}
	for _, opt := range opts {
		opt(&o)
	}
	clk, err := clock.NewRate(o.rate, clock.WithTimeSource(o.src))
	if err != nil {
		return err
	}

	disp := input.NewDispatcher()
	var ls input.Listeners
	grid, err := starter.NewCharMode(disp, &ls, cols, rows)
	if err != nil {
		return err
	}
	defer ls.RemoveAll()

	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	t := &terminal{
		screen: screen,
		disp:   disp,
		grid:   grid,
		log:    o.log,
		bounds: input.Rect{Width: float64(cols), Height: float64(rows)},
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return program(gctx, grid)
	})
	g.Go(func() error {
		t.redraw(gctx, clk)
		return nil
	})

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	t.log.Info().Int("cols", cols).Int("rows", rows).Log("terminal started")
loop:
	for {
		select {
		case <-gctx.Done():
			break loop
		case <-done:
			break loop
		case ev, ok := <-events:
			if !ok || !t.handle(ev) {
				break loop
			}
		}
	}
	close(quit)
	cancel()
	ls.RemoveAll()

	err = g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, queue.ErrClosed) {
		err = nil
	}
	if err != nil {
		t.log.Err().Err(err).Log("program failed")
		return err
	}
	t.log.Info().Log("terminal stopped")
	return nil
}

func (t *terminal) redraw(ctx context.Context, clk *clock.Clock) {
	for {
		if _, err := clk.Tick(ctx); err != nil {
			return
		}
		t.draw()
	}
}

// handle routes one tcell event and reports whether to keep running.
func (t *terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.log.Info().Log("interrupted")
			return false
		}
		t.key(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.mouse(float64(x), float64(y), ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) key(ev *tcell.EventKey) {
	code, text, ok := keyCode(ev)
	if ok {
		raw := input.RawKey{KeyCode: code}
		t.disp.EmitKeyDown(raw)
		t.disp.EmitChars(text)
		t.disp.EmitKeyUp(raw)
		return
	}
	t.disp.EmitChars(text)
	t.log.Debug().Str("key", ev.Name()).Log("unmapped key")
}

func (t *terminal) mouse(x, y float64, pressed bool) {
	raw := input.RawPointer{ClientX: x, ClientY: y, Bounds: t.bounds}
	switch {
	case pressed && !t.down:
		t.down = true
		t.disp.EmitPointerDown(raw)
	case !pressed && t.down:
		t.down = false
		t.disp.EmitPointerUp(raw)
	default:
		t.disp.EmitPointerMove(raw)
	}
}

func (t *terminal) draw() {
	t.grid.Each(func(col, row int, r rune, st starter.Style) {
		t.screen.SetContent(col, row, r, nil, cellStyle(st))
	})
	t.screen.Show()
}

func cellStyle(st starter.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(termColor(st.Color)).
		Background(termColor(st.Background)).
		Bold(st.Bold).
		Italic(st.Italic).
		Underline(st.Underline)
}

func termColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	if _, _, _, a := c.RGBA(); a == 0 {
		return tcell.ColorDefault
	}
	return tcell.FromImageColor(c)
}
