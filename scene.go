package billow

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultEntryCap = 256

// SceneConfig holds the setup parameters of a Scene.
type SceneConfig struct {
	// Viewport is the canvas rectangle the scene renders into. Its size fixes
	// the camera aspect ratio.
	Viewport Rect
	// Eye and Target place the camera.
	Eye, Target mgl64.Vec3
	// Camera holds the perspective parameters.
	Camera CameraConfig
	// CornerMode is applied to billboards created by the scene (layouts,
	// particles).
	CornerMode CornerMode

	SkyColor    Color
	GroundColor Color
	// GroundDistance is how far ahead of the eye, along +Y, the ground
	// reference point is projected to find the horizon line.
	GroundDistance float64
	// GroundLevel is the Z of the ground plane. Billboards stand on it.
	GroundLevel float64

	// MoveSpeed is the player speed in world units per second.
	MoveSpeed float64
	// VerticalScale multiplies the forward/back component of a move.
	VerticalScale float64
}

// DefaultSceneConfig returns a config for a width×height viewport with the
// camera behind and above the origin, looking along +Y.
func DefaultSceneConfig(width, height float64) SceneConfig {
	return SceneConfig{
		Viewport:       Rect{Width: width, Height: height},
		Eye:            mgl64.Vec3{0, -8, -3},
		Target:         mgl64.Vec3{0, 0, -1},
		Camera:         DefaultCameraConfig(),
		CornerMode:     CornersFour,
		SkyColor:       Color{R: 0.53, G: 0.75, B: 0.92, A: 1},
		GroundColor:    Color{R: 0.35, G: 0.55, B: 0.25, A: 1},
		GroundDistance: 500,
		MoveSpeed:      4,
		VerticalScale:  1,
	}
}

// Scene owns everything a frame needs: the camera, the active billboard set,
// the player, particle fields and the key state. Update applies input and
// motion; Draw projects, sorts and draws.
type Scene struct {
	config SceneConfig
	camera *Camera

	player     *Billboard
	billboards []*Billboard
	fields     []*ParticleField

	keys       KeyState
	injected   map[ebiten.Key]bool
	updateFunc func() error

	debug   bool
	stopped bool

	// Render state
	entries []drawEntry
	sortBuf []drawEntry
	stats   FrameStats

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewScene creates a scene and its camera. Returns ErrDegenerateCamera when
// cfg.Eye and cfg.Target leave the view direction undefined.
func NewScene(cfg SceneConfig) (*Scene, error) {
	cam, err := NewCamera(cfg.Eye, cfg.Target, cfg.Viewport, cfg.Camera)
	if err != nil {
		return nil, fmt.Errorf("billow: new scene: %w", err)
	}
	cfg.Camera = cam.Config()
	if cfg.VerticalScale == 0 {
		cfg.VerticalScale = 1
	}
	return &Scene{
		config:        cfg,
		camera:        cam,
		keys:          ebitenKeys{},
		injected:      make(map[ebiten.Key]bool),
		entries:       make([]drawEntry, 0, defaultEntryCap),
		sortBuf:       make([]drawEntry, 0, defaultEntryCap),
		ScreenshotDir: "screenshots",
	}, nil
}

// Config returns the scene configuration.
func (s *Scene) Config() SceneConfig { return s.config }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Player returns the player billboard, or nil.
func (s *Scene) Player() *Billboard { return s.player }

// SetPlayer sets the billboard moved by keyboard input and adds it to the
// active set if it isn't there yet.
func (s *Scene) SetPlayer(b *Billboard) {
	s.player = b
	if b != nil && !s.contains(b) {
		s.billboards = append(s.billboards, b)
	}
}

// AddBillboard appends b to the active set.
func (s *Scene) AddBillboard(b *Billboard) {
	if b == nil {
		panic("billow: cannot add nil billboard")
	}
	s.billboards = append(s.billboards, b)
}

// RemoveBillboard removes b from the active set.
func (s *Scene) RemoveBillboard(b *Billboard) {
	for i, c := range s.billboards {
		if c == b {
			s.billboards = append(s.billboards[:i], s.billboards[i+1:]...)
			if s.player == b {
				s.player = nil
			}
			return
		}
	}
}

// Billboards returns the active set in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Billboards() []*Billboard {
	return s.billboards
}

func (s *Scene) contains(b *Billboard) bool {
	for _, c := range s.billboards {
		if c == b {
			return true
		}
	}
	return false
}

// AddParticles creates a particle field using the scene's corner mode and
// ground level and adds its billboards to the active set.
func (s *Scene) AddParticles(cfg ParticleConfig) *ParticleField {
	f := NewParticleField(cfg, s.config.CornerMode, s.config.GroundLevel)
	s.fields = append(s.fields, f)
	s.billboards = append(s.billboards, f.Billboards()...)
	return f
}

// SetKeyState replaces the keyboard source. Nil restores Ebitengine input.
func (s *Scene) SetKeyState(k KeyState) {
	if k == nil {
		k = ebitenKeys{}
	}
	s.keys = k
}

// SetUpdateFunc sets a callback run once per tick after input and particles.
// A returned error stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats are measured and logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Stop makes the next Update return ebiten.Termination, ending Run.
func (s *Scene) Stop() {
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *Scene) Stopped() bool {
	return s.stopped
}

// Update advances the scene by one tick of 1/TPS seconds.
func (s *Scene) Update() error {
	if s.stopped {
		return ebiten.Termination
	}
	return s.tick(1.0 / float64(ebiten.TPS()))
}

// tick runs the update half of a frame: scripted input, player and camera
// movement, camera glide, particles, then the user hook.
func (s *Scene) tick(dt float64) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.applyMovement(s.readMovement(), dt)
	s.camera.update(float32(dt))
	for _, f := range s.fields {
		f.update(dt)
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// applyMovement moves the player and the camera by the same offset so the
// camera keeps its position relative to the player. The direction is
// normalized, so diagonals are not faster.
func (s *Scene) applyMovement(m movement, dt float64) {
	if m.dx == 0 && m.dy == 0 {
		return
	}
	l := math.Hypot(m.dx, m.dy)
	step := s.config.MoveSpeed * dt
	offset := mgl64.Vec3{
		m.dx / l * step,
		m.dy / l * step * s.config.VerticalScale,
		0,
	}
	if s.player != nil {
		s.player.Translate(offset)
	}
	s.camera.Translate(offset)
}

// Draw renders the scene onto screen, then writes any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.render(NewSurface(screen, s.config.Viewport))
	s.flushScreenshots(screen)
}

// FrameStats returns the counters of the last rendered frame.
func (s *Scene) FrameStats() FrameStats {
	return s.stats
}
