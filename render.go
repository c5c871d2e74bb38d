package billow

import (
	"image"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the 2D drawing target of a frame. Rectangles are in viewport
// pixels, origin at the viewport's top-left.
type Surface interface {
	// Fill clears the whole viewport to c.
	Fill(c Color)
	// FillRect fills r with a solid color.
	FillRect(r Rect, c Color)
	// DrawImage stretches img over r.
	DrawImage(img *ebiten.Image, r Rect)
}

// imageSurface draws onto an Ebitengine image, offset by the viewport origin.
type imageSurface struct {
	dst      *ebiten.Image
	viewport Rect
}

// NewSurface adapts an Ebitengine image to Surface for the given viewport.
func NewSurface(dst *ebiten.Image, viewport Rect) Surface {
	if viewport.Width == 0 || viewport.Height == 0 {
		b := dst.Bounds()
		viewport = Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	return &imageSurface{dst: dst, viewport: viewport}
}

func (s *imageSurface) Fill(c Color) {
	s.FillRect(Rect{Width: s.viewport.Width, Height: s.viewport.Height}, c)
}

func (s *imageSurface) FillRect(r Rect, c Color) {
	rect := pixelRect(s.viewport, r).Intersect(s.dst.Bounds())
	if rect.Empty() {
		return
	}
	s.dst.SubImage(rect).(*ebiten.Image).Fill(c.RGBA())
}

// pixelRect snaps r, offset by the viewport origin, to whole pixels. Each
// absolute edge is rounded on its own so that rects sharing an edge in
// viewport space share it in pixels too.
func pixelRect(viewport, r Rect) image.Rectangle {
	x0 := viewport.X + r.X
	y0 := viewport.Y + r.Y
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x0+r.Width)), int(math.Round(y0+r.Height)),
	)
}

func (s *imageSurface) DrawImage(img *ebiten.Image, r Rect) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(s.viewport.X+r.X, s.viewport.Y+r.Y)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, &op)
}

// render draws one frame: sky, ground, then every visible billboard from
// farthest to nearest.
func (s *Scene) render(dst Surface) {
	var stats FrameStats
	var t0 time.Time

	vw, vh := s.config.Viewport.Width, s.config.Viewport.Height
	view := Rect{Width: vw, Height: vh}
	viewProj := s.camera.ViewProjection()

	dst.Fill(s.config.SkyColor)
	s.drawGround(dst, viewProj)

	if s.debug {
		t0 = time.Now()
	}

	s.collect(viewProj, &stats)

	if s.debug {
		stats.ProjectTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.SortTime = time.Since(t0)
		t0 = time.Now()
	}

	for i := range s.entries {
		e := &s.entries[i]
		if !e.placement.Visible() {
			stats.Culled++
			continue
		}
		img := e.billboard.template.Image
		if img == nil {
			img = ensureMagentaImage()
		}
		r := e.placement.Rect(vw, vh)
		if !r.Overlaps(view) {
			stats.Offscreen++
		}
		dst.DrawImage(img, r)
		stats.Drawn++
	}

	if s.debug {
		stats.SubmitTime = time.Since(t0)
		s.debugLog(stats)
	}
	s.stats = stats
}

// collect projects every visible billboard into s.entries. A billboard whose
// projection is singular is left out of this frame only.
func (s *Scene) collect(viewProj mgl64.Mat4, stats *FrameStats) {
	s.entries = s.entries[:0]
	for i, b := range s.billboards {
		if !b.Visible {
			continue
		}
		stats.Billboards++
		p, err := b.Project(viewProj)
		if err != nil {
			stats.Skipped++
			if s.debug {
				Logger().Debug("billboard skipped", "id", b.ID, "name", b.Name, "err", err)
			}
			continue
		}
		s.entries = append(s.entries, drawEntry{billboard: b, placement: p, order: i})
	}
}

// drawGround projects a ground point far ahead of the eye and fills from its
// canvas Y down to the bottom of the viewport.
func (s *Scene) drawGround(dst Surface, viewProj mgl64.Mat4) {
	eye := s.camera.Eye()
	ref := mgl64.Vec3{eye.X(), eye.Y() + s.config.GroundDistance, s.config.GroundLevel}
	p, err := ProjectPoint(ref, viewProj)
	if err != nil || p.Z > 1 {
		return
	}
	vw, vh := s.config.Viewport.Width, s.config.Viewport.Height
	top := ToCanvas(p, 0, 0, vw, vh).Y
	if top < 0 {
		top = 0
	}
	if top >= vh {
		return
	}
	dst.FillRect(Rect{X: 0, Y: top, Width: vw, Height: vh - top}, s.config.GroundColor)
}
