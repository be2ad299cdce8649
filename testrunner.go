package starter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phanxgames/starter/input"
)

// ErrNoSteps is returned by LoadTestScript for a script without steps.
var ErrNoSteps = errors.New("no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Code   int     `json:"code,omitempty"`
	Text   string  `json:"text,omitempty"`
}

// keyCode resolves the step's key by name, falling back to its code.
func (st testStep) keyCode() (int, error) {
	if st.Key != "" {
		code, ok := input.KeyCodeNames[st.Key]
		if !ok {
			return 0, fmt.Errorf("unknown key %q", st.Key)
		}
		return code, nil
	}
	if st.Code <= 0 {
		return 0, fmt.Errorf("%s: key or code required", st.Action)
	}
	return st.Code, nil
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a Host via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Host via SetTestRunner.
//
// Actions are screenshot, click, drag, wait, key, keydown, keyup and type.
// Key actions name the key ("enter", "a", "f5") or give its numeric code.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "click", "drag", "wait", "type":
		case "key", "keydown", "keyup":
			if _, err := st.keyCode(); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the host. The runner's step method
// is called from Update before input is processed each frame.
func (h *Host) SetTestRunner(runner *TestRunner) {
	h.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Host.Update.
func (r *TestRunner) step(h *Host) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if h.pendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.finish(h)
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		h.Screenshot(st.Label)
	case "click":
		h.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "key":
		code, _ := st.keyCode()
		h.InjectKey(code)
	case "keydown":
		code, _ := st.keyCode()
		h.InjectKeyDown(code)
	case "keyup":
		code, _ := st.keyCode()
		h.InjectKeyUp(code)
	case "type":
		h.InjectText(st.Text)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && h.pendingInjections() == 0 {
		r.finish(h)
	}
}

func (r *TestRunner) finish(h *Host) {
	r.done = true
	h.log.Info().Int("steps", len(r.steps)).Int64("frame", h.frame.Load()).Log("test script done")
}
