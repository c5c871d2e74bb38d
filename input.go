package billow

import "github.com/hajimehoshi/ebiten/v2"

// KeyState reports whether a key is currently held. The host updates it
// asynchronously; the scene reads it once per tick and the last state wins.
type KeyState interface {
	IsKeyPressed(key ebiten.Key) bool
}

// ebitenKeys reads the live Ebitengine keyboard state.
type ebitenKeys struct{}

func (ebitenKeys) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// KeyMap is a KeyState backed by a map, for headless hosts and tests.
type KeyMap map[ebiten.Key]bool

// IsKeyPressed implements KeyState.
func (m KeyMap) IsKeyPressed(key ebiten.Key) bool {
	return m[key]
}

// Movement keys. Left/right move along X, up/down move along Y (away from
// and toward the camera).
var (
	keysLeft  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysUp    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	keysDown  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
)

// movement is the raw direction read from the keyboard this tick; each
// component is -1, 0 or 1.
type movement struct {
	dx, dy float64
}

// keyPressed resolves a key against injected state first, then the host.
func (s *Scene) keyPressed(key ebiten.Key) bool {
	if pressed, ok := s.injected[key]; ok {
		return pressed
	}
	return s.keys.IsKeyPressed(key)
}

func (s *Scene) anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if s.keyPressed(k) {
			return true
		}
	}
	return false
}

// readMovement snapshots the movement keys. Opposite keys cancel out.
func (s *Scene) readMovement() movement {
	var m movement
	if s.anyPressed(keysLeft) {
		m.dx--
	}
	if s.anyPressed(keysRight) {
		m.dx++
	}
	if s.anyPressed(keysUp) {
		m.dy++
	}
	if s.anyPressed(keysDown) {
		m.dy--
	}
	return m
}
