package billow

import "github.com/hajimehoshi/ebiten/v2"

// InjectKey overrides the host state of key until ReleaseInjectedKey or
// ClearInjectedKeys. Injected state is read by the next tick exactly as real
// keyboard input would be.
func (s *Scene) InjectKey(key ebiten.Key, pressed bool) {
	s.injected[key] = pressed
}

// ReleaseInjectedKey drops the override for key so the host state applies
// again.
func (s *Scene) ReleaseInjectedKey(key ebiten.Key) {
	delete(s.injected, key)
}

// ClearInjectedKeys drops every key override.
func (s *Scene) ClearInjectedKeys() {
	clear(s.injected)
}
