package billow

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// TPS sets the tick rate. Zero keeps the Ebitengine default (60).
	TPS int
}

// game adapts a Scene to ebiten.Game. Ebitengine calls Update and Draw once
// per tick, which is the scene's frame schedule.
type game struct {
	scene *Scene
	cfg   RunConfig
	fps   *fpsOverlay
}

func (g *game) Update() error {
	if err := g.scene.Update(); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs scene until the window closes, Scene.Stop is
// called or an update hook fails. Zero Width/Height fall back to the scene
// viewport size.
func Run(scene *Scene, cfg RunConfig) error {
	vp := scene.Config().Viewport
	if cfg.Width <= 0 {
		cfg.Width = int(vp.X + vp.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(vp.Y + vp.Height)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("billow: run: window size %dx%d is not positive", cfg.Width, cfg.Height)
	}
	if cfg.Title == "" {
		cfg.Title = "billow"
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	g := &game{scene: scene, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return ebiten.RunGame(g)
}

// fpsOverlay shows the current FPS and TPS, refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
	dirty      bool
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32), dirty: true}
}

func (o *fpsOverlay) update(dt float64) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 && !o.dirty {
		return
	}
	o.lastUpdate = 0
	o.dirty = false

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
