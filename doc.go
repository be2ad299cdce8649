// Package starter is a small display toolkit for [Ebitengine] programs that
// read input the way a console program does: by blocking until the next key,
// pointer sample or line arrives.
//
// A program runs on its own goroutine while the window's game loop turns
// device input into queued records:
//
//	err := starter.Run(starter.DefaultConfig(), func(ctx context.Context, h *starter.Host) error {
//		t, err := h.TextMode(40, 20)
//		if err != nil {
//			return err
//		}
//		t.WriteLine("What is your name?")
//		name, err := t.ReadLine(ctx)
//		if err != nil {
//			return err
//		}
//		t.Printf("Hello, %s!", name)
//		return nil
//	})
//
// # Modes
//
// A host shows one mode at a time. Creating a mode ends the previous one:
// its listeners are removed and its queues closed, so reads still blocked
// on it return [queue.ErrClosed].
//
//   - [Host.TextMode]: scrolling lines above an input prompt.
//   - [Host.CharMode]: a grid of styled character cells.
//   - [Host.PixelMode]: a buffer of straight-alpha pixels.
//   - [Host.GraphicsMode]: an aspect-locked canvas painted by a callback.
//
// Every mode is scaled to the largest rectangle of its aspect ratio that
// fits the window. Pointer positions are reported in the mode's own units
// (cells, pixels) and may fall outside it while a drag is in progress.
//
// # Input and timing
//
// Keys are reported as browser-style key codes (see package input). Held
// keys do not repeat in ReadKey. Animation loops pace themselves with a
// [clock.Clock], which reports how many ticks have elapsed so work can
// catch up after a slow frame. [Tween] groups advance by those ticks.
//
// # Configuration and logging
//
// [Config] can be loaded from TOML with [LoadConfig]. The host logs
// structured JSON lines through [logiface] with the stumpy backend.
//
// # Scripted runs
//
// [LoadTestScript] reads a JSON list of key, type, click, drag, wait and
// screenshot steps that the host replays frame by frame in place of real
// input.
//
// The term subpackage runs a CharMode in a terminal through tcell.
//
// [Ebitengine]: https://ebitengine.org
// [logiface]: https://github.com/joeycumines/logiface
package starter
