package billow

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// wEpsilon is the smallest |w| accepted by the perspective divide.
const wEpsilon = 1e-9

// ProjectedPoint is a point in normalized device coordinates, after the
// perspective divide. Z grows with distance from the camera; Z > 1 lies
// beyond the far plane or behind the eye.
type ProjectedPoint struct {
	X, Y, Z float64
}

// ProjectPoint transforms a world-space point (w = 1) by the view-projection
// matrix and divides by the resulting w. Points on the camera plane return
// ErrProjectionSingularity.
func ProjectPoint(p mgl64.Vec3, viewProj mgl64.Mat4) (ProjectedPoint, error) {
	h := viewProj.Mul4x1(p.Vec4(1))
	w := h.W()
	if math.Abs(w) < wEpsilon {
		return ProjectedPoint{}, ErrProjectionSingularity
	}
	return ProjectedPoint{X: h.X() / w, Y: h.Y() / w, Z: h.Z() / w}, nil
}

// ToCanvas maps a projected point and a normalized width/height to a pixel
// rectangle. Normalized Y maps straight to canvas Y without flipping; sprite
// placement is tuned against that convention. The rectangle is centered
// horizontally on the projected X and hangs down from the projected Y.
func ToCanvas(p ProjectedPoint, width, height, viewportW, viewportH float64) Rect {
	halfW := viewportW / 2
	halfH := viewportH / 2
	px := p.X*halfW + halfW
	py := p.Y*halfH + halfH
	w := width * halfW
	h := height * halfH
	return Rect{X: px - w/2, Y: py, Width: w, Height: h}
}

// Placement is the screen footprint of a billboard in normalized device
// coordinates, derived once per frame from its projected corners.
type Placement struct {
	CenterX, CenterY float64
	Width, Height    float64
	// Depth is the largest corner Z: the corner farthest from the camera.
	Depth float64
}

// Rect converts the placement to canvas pixels for the given viewport size.
func (p Placement) Rect(viewportW, viewportH float64) Rect {
	return ToCanvas(ProjectedPoint{X: p.CenterX, Y: p.CenterY, Z: p.Depth}, p.Width, p.Height, viewportW, viewportH)
}

// Visible reports whether the placement lies in front of the far plane.
func (p Placement) Visible() bool {
	return p.Depth <= 1
}

// placeQuad derives a placement from four projected corners, averaging
// opposite edges to absorb perspective skew. The vertical center follows the
// top edge so the rectangle is anchored there.
func placeQuad(tl, tr, bl, br ProjectedPoint) Placement {
	return Placement{
		CenterX: (tl.X + tr.X + bl.X + br.X) / 4,
		CenterY: (tl.Y + tr.Y) / 2,
		Width:   ((tr.X - tl.X) + (br.X - bl.X)) / 2,
		Height:  ((br.Y - tr.Y) + (bl.Y - tl.Y)) / 2,
		Depth:   math.Max(math.Max(tl.Z, tr.Z), math.Max(bl.Z, br.Z)),
	}
}

// placeDiagonal derives a placement from the top-left and bottom-right
// corners only.
func placeDiagonal(tl, br ProjectedPoint) Placement {
	return Placement{
		CenterX: (tl.X + br.X) / 2,
		CenterY: tl.Y,
		Width:   br.X - tl.X,
		Height:  br.Y - tl.Y,
		Depth:   math.Max(tl.Z, br.Z),
	}
}
