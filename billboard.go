package billow

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Template is the shared, read-only part of a billboard: its world size and
// the image drawn for it. Many billboards point at one Template.
type Template struct {
	// Sprite is the asset id the image was looked up by.
	Sprite string
	// Width and Height are in world units.
	Width, Height float64
	// Image is drawn stretched to the billboard's canvas rectangle.
	Image *ebiten.Image
}

// NewTemplate creates a template. img may be nil; billboards using it draw a
// magenta placeholder.
func NewTemplate(sprite string, width, height float64, img *ebiten.Image) *Template {
	return &Template{Sprite: sprite, Width: width, Height: height, Image: img}
}

// Corners holds a billboard's world-space corners. In CornersDiagonal mode
// only TopLeft and BottomRight are maintained.
type Corners struct {
	TopLeft, TopRight, BottomLeft, BottomRight mgl64.Vec3
}

// billboardIDCounter is a plain counter (no atomic; billow is single-threaded).
var billboardIDCounter uint32

func nextBillboardID() uint32 {
	billboardIDCounter++
	return billboardIDCounter
}

// Billboard is an upright rectangular sprite placed in world space. It stands
// in the XZ plane at its center's Y, its base on the center and its top Height
// units toward -Z. Billboards do not turn to face the camera.
type Billboard struct {
	ID   uint32
	Name string
	// Visible billboards are projected, sorted and drawn.
	Visible bool

	template *Template
	mode     CornerMode
	center   mgl64.Vec3
	corners  Corners
}

// NewBillboard creates a visible billboard at pos. Panics if tpl is nil.
func NewBillboard(name string, tpl *Template, mode CornerMode, pos mgl64.Vec3) *Billboard {
	if tpl == nil {
		panic("billow: cannot create billboard with nil template")
	}
	b := &Billboard{
		ID:       nextBillboardID(),
		Name:     name,
		Visible:  true,
		template: tpl,
		mode:     mode,
	}
	b.SetPosition(pos)
	return b
}

// Template returns the billboard's shared template.
func (b *Billboard) Template() *Template { return b.template }

// Mode returns the corner mode.
func (b *Billboard) Mode() CornerMode { return b.mode }

// Position returns the billboard's center (base midpoint).
func (b *Billboard) Position() mgl64.Vec3 { return b.center }

// Corners returns the world-space corners for the current position.
func (b *Billboard) Corners() Corners { return b.corners }

// SetPosition moves the billboard and rederives its corners.
func (b *Billboard) SetPosition(p mgl64.Vec3) {
	b.center = p
	halfW := b.template.Width / 2
	h := b.template.Height
	x, y, z := p.X(), p.Y(), p.Z()

	b.corners.TopLeft = mgl64.Vec3{x - halfW, y, z - h}
	b.corners.BottomRight = mgl64.Vec3{x + halfW, y, z}
	if b.mode == CornersFour {
		b.corners.TopRight = mgl64.Vec3{x + halfW, y, z - h}
		b.corners.BottomLeft = mgl64.Vec3{x - halfW, y, z}
	} else {
		b.corners.TopRight = mgl64.Vec3{}
		b.corners.BottomLeft = mgl64.Vec3{}
	}
}

// Translate moves the billboard by delta.
func (b *Billboard) Translate(delta mgl64.Vec3) {
	b.SetPosition(b.center.Add(delta))
}

// Project derives the billboard's screen placement under viewProj. Any
// corner on the camera plane fails the whole billboard with
// ErrProjectionSingularity.
func (b *Billboard) Project(viewProj mgl64.Mat4) (Placement, error) {
	tl, err := ProjectPoint(b.corners.TopLeft, viewProj)
	if err != nil {
		return Placement{}, err
	}
	br, err := ProjectPoint(b.corners.BottomRight, viewProj)
	if err != nil {
		return Placement{}, err
	}
	if b.mode == CornersDiagonal {
		return placeDiagonal(tl, br), nil
	}
	tr, err := ProjectPoint(b.corners.TopRight, viewProj)
	if err != nil {
		return Placement{}, err
	}
	bl, err := ProjectPoint(b.corners.BottomLeft, viewProj)
	if err != nil {
		return Placement{}, err
	}
	return placeQuad(tl, tr, bl, br), nil
}
