package starter

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/starter/input"
	"github.com/phanxgames/starter/queue"
)

// Host runs one display mode at a time in an Ebitengine window. It
// implements ebiten.Game: Update turns polled or injected input into raw
// events on its Dispatcher, Draw renders the active mode scaled to fit the
// window.
//
// Mode constructors (TextMode, CharMode, PixelMode, GraphicsMode) may be
// called from any goroutine. Each ends the previous mode first.
type Host struct {
	cfg       Config
	log       *Logger
	disp      *input.Dispatcher
	clear     color.NRGBA
	textColor color.NRGBA

	// defaultKeys are host actions for keys no listener prevented.
	defaultKeys map[int]func()

	// switchMu serializes mode switches from close through install.
	switchMu sync.Mutex

	mu          sync.Mutex
	active      surface
	ls          *input.Listeners
	mode        string
	outerW      int
	outerH      int
	injectQueue []syntheticEvent
	shots       []string
	stopped     bool

	// Update/Draw goroutine only.
	runner    *TestRunner
	pointers  [maxPointers]pointerState
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID
	keyBuf    []ebiten.Key
	charBuf   []rune
	offscreen *ebiten.Image
	fps       fpsOverlay
	stats     frameStats

	frame atomic.Int64
}

// NewHost returns a host with no active mode. Unset Config fields take
// their DefaultConfig values.
func NewHost(cfg Config) *Host {
	cfg = cfg.withDefaults()
	log, err := NewLogger(cfg.LogOutput, cfg.LogLevel)
	if err != nil {
		log, _ = NewLogger(cfg.LogOutput, "info")
		log.Warning().Err(err).Log("bad log level, using info")
	}
	h := &Host{
		cfg:       cfg,
		log:       log,
		disp:      input.NewDispatcher(),
		clear:     mustColor(cfg.ClearColor, color.NRGBA{255, 255, 255, 255}),
		textColor: mustColor(cfg.TextColor, color.NRGBA{0, 0, 0, 255}),
		outerW:    cfg.Width,
		outerH:    cfg.Height,
	}
	h.defaultKeys = map[int]func(){
		input.KeyF11: func() { ebiten.SetFullscreen(!ebiten.IsFullscreen()) },
	}
	return h
}

// Run opens a window configured by cfg and runs program on its own
// goroutine. The window closes when program returns; closing the window
// cancels program's context and ends the active mode so blocked reads
// return. Run returns program's error, or the window's if it failed.
// Run must be called from the main goroutine.
func Run(cfg Config, program func(ctx context.Context, h *Host) error) error {
	h := NewHost(cfg)
	cfg = h.cfg

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer h.Stop()
		return program(gctx, h)
	})

	h.log.Info().Str("title", cfg.Title).Int("width", cfg.Width).Int("height", cfg.Height).
		Int("tps", cfg.TPS).Log("window open")
	runErr := ebiten.RunGame(h)
	cancel()
	h.Close()
	progErr := g.Wait()

	if progErr != nil && !errors.Is(progErr, context.Canceled) && !errors.Is(progErr, queue.ErrClosed) {
		h.log.Err().Err(progErr).Log("program failed")
	} else {
		progErr = nil
	}
	if runErr != nil {
		h.log.Err().Err(runErr).Log("window failed")
		return fmt.Errorf("run window: %w", runErr)
	}
	h.log.Info().Int64("frames", h.frame.Load()).Log("window closed")
	return progErr
}

// Dispatcher returns the raw event source fed by Update.
func (h *Host) Dispatcher() *input.Dispatcher { return h.disp }

// Logger returns the host's logger.
func (h *Host) Logger() *Logger { return h.log }

// Config returns the effective configuration.
func (h *Host) Config() Config { return h.cfg }

// Mode returns the name of the active mode, or "" before the first one.
func (h *Host) Mode() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mode
}

// Frame returns the number of Update calls so far.
func (h *Host) Frame() int64 { return h.frame.Load() }

// Stop makes the next Update end the game loop.
func (h *Host) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
}

// Stopped reports whether Stop has been called.
func (h *Host) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Close ends the active mode. Its listeners are removed and its queues
// closed.
func (h *Host) Close() {
	h.mu.Lock()
	ls := h.ls
	h.ls, h.active, h.mode = nil, nil, ""
	h.mu.Unlock()
	if ls != nil {
		ls.RemoveAll()
	}
}

// beginSession ends the current mode, lets register wire the new mode's
// listeners, then makes s the drawn surface.
func (h *Host) beginSession(name string, s surface, register func(ls *input.Listeners)) session {
	h.switchMu.Lock()
	defer h.switchMu.Unlock()

	h.mu.Lock()
	prev := h.mode
	h.mu.Unlock()
	h.Close()

	ls := &input.Listeners{}
	register(ls)

	h.mu.Lock()
	h.ls, h.active, h.mode = ls, s, name
	h.mu.Unlock()
	h.log.Info().Str("mode", name).Str("previous", prev).Log("mode switch")
	return session{host: h, ls: ls}
}

func (h *Host) outerSize() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outerW, h.outerH
}

// surfaceRect returns where the active surface is shown, in screen
// coordinates.
func (h *Host) surfaceRect() input.Rect {
	h.mu.Lock()
	s, ow, oh := h.active, h.outerW, h.outerH
	h.mu.Unlock()
	if s == nil {
		return input.Rect{}
	}
	w, sh := s.surfaceSize(ow, oh)
	return fitRect(float64(w), float64(sh), float64(ow), float64(oh))
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.Stopped() {
		return ebiten.Termination
	}
	start := time.Now()
	h.frame.Add(1)
	if h.runner != nil {
		h.runner.step(h)
	}
	if h.processInjectedInput() {
		h.stats.injected++
	} else {
		h.pollInput()
	}
	h.stats.update += time.Since(start)
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	start := time.Now()
	screen.Fill(h.clear)

	h.mu.Lock()
	s, ow, oh := h.active, h.outerW, h.outerH
	h.mu.Unlock()

	if s != nil {
		w, sh := s.surfaceSize(ow, oh)
		off := h.offscreenImage(w, sh)
		s.draw(off)

		r := fitRect(float64(w), float64(sh), float64(ow), float64(oh))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(r.Width/float64(w), r.Height/float64(sh))
		op.GeoM.Translate(r.X, r.Y)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(off, op)

		h.flushScreenshots(off)
	}
	if h.cfg.ShowFPS {
		h.fps.draw(screen, h.cfg.TPS)
	}

	h.stats.draw += time.Since(start)
	h.stats.frames++
	h.debugLog()
}

// offscreenImage returns a cleared image of w × h, reallocating on resize.
func (h *Host) offscreenImage(w, sh int) *ebiten.Image {
	if h.offscreen != nil {
		b := h.offscreen.Bounds()
		if b.Dx() == w && b.Dy() == sh {
			h.offscreen.Clear()
			return h.offscreen
		}
		h.offscreen.Deallocate()
	}
	h.offscreen = ebiten.NewImage(w, sh)
	return h.offscreen
}

// Layout implements ebiten.Game. The screen matches the window so the
// surface can be fitted at any scale.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.mu.Lock()
	h.outerW, h.outerH = outsideWidth, outsideHeight
	h.mu.Unlock()
	return outsideWidth, outsideHeight
}
