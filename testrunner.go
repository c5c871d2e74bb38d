package billow

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Key    string `json:"key,omitempty"`
	Frames int    `json:"frames,omitempty"`

	key ebiten.Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted sequence of key presses, waits and
// screenshots across ticks. Attach to a Scene via SetTestRunner.
//
// Actions:
//   - "press" / "release": set or clear an injected key
//   - "hold": press a key for Frames ticks, then release it
//   - "wait": do nothing for Frames ticks
//   - "screenshot": queue a screenshot named Label
//   - "stop": stop the scene
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	holding   *ebiten.Key
	done      bool
}

// LoadTestScript parses a JSON test script. Key names are Ebitengine key
// names such as "ArrowRight" or "W".
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "hold":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		case "wait", "screenshot", "stop":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. It steps once per tick,
// before input is read.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from Scene.tick.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.holding != nil {
		s.ReleaseInjectedKey(*r.holding)
		r.holding = nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "press":
		s.InjectKey(st.key, true)
	case "release":
		s.ReleaseInjectedKey(st.key)
	case "hold":
		s.InjectKey(st.key, true)
		k := st.key
		r.holding = &k
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "stop":
		s.Stop()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.holding == nil {
		r.done = true
	}
}
