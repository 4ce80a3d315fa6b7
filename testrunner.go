package easel

import (
	"encoding/json"
	"fmt"
)

// gestureStep represents a single action in a gesture script.
type gestureStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []gestureStep `json:"steps"`
}

// GestureRunner sequences injected pointer events and screenshots across
// frames for automated interaction testing. Attach to a Context via
// SetGestureRunner; steps advance from Context.Tick.
//
// Supported actions: "click" (x, y), "press" (x, y), "release" (x, y),
// "drag" (fromX, fromY, toX, toY, frames), "wait" (frames), "leave", and
// "screenshot" (label).
type GestureRunner struct {
	steps     []gestureStep
	cursor    int
	waitCount int
	done      bool
}

// LoadGestureScript parses a JSON gesture script.
func LoadGestureScript(jsonData []byte) (*GestureRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	return &GestureRunner{steps: script.Steps}, nil
}

// SetGestureRunner attaches a runner to the context. Pass nil to detach.
func (c *Context) SetGestureRunner(runner *GestureRunner) {
	c.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *GestureRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Context.Tick.
func (r *GestureRunner) step(c *Context) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		c.Screenshot(st.Label)
	case "click":
		c.InjectClick(st.X, st.Y)
	case "press":
		c.InjectPress(st.X, st.Y)
	case "release":
		c.InjectRelease(st.X, st.Y)
	case "leave":
		c.InjectLeave()
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
