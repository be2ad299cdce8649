package starter

import "time"

// frameStats accumulates timing between debug reports.
type frameStats struct {
	update   time.Duration
	draw     time.Duration
	frames   int
	injected int
}

// debugLog reports frame timing about once per second of frames when
// Config.Debug is set, then resets the counters.
func (h *Host) debugLog() {
	if !h.cfg.Debug || h.stats.frames < h.cfg.TPS {
		return
	}
	s := h.stats
	h.stats = frameStats{}
	n := time.Duration(s.frames)
	h.log.Debug().
		Str("mode", h.Mode()).
		Int("frames", s.frames).
		Int("injected", s.injected).
		Dur("update_avg", s.update/n).
		Dur("draw_avg", s.draw/n).
		Int("handlers", h.disp.Len()).
		Log("frame stats")
}
