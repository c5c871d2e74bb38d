package billow

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to Ebitengine.
type Color struct {
	R, G, B, A float64
}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle in canvas pixels. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Overlaps reports whether r and other share any area. A placement that
// only touches the viewport edge covers no pixels, so shared edges do not
// count.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// Range is a general-purpose min/max range.
// Used by ParticleConfig for spawn areas, speeds and radii.
type Range struct {
	Min, Max float64
}

// CornerMode selects how many world-space corners a billboard derives and
// how its screen placement is computed from them.
type CornerMode uint8

const (
	// CornersFour derives all four corners and averages opposite edges,
	// which accounts for perspective skew across the quad.
	CornersFour CornerMode = iota
	// CornersDiagonal derives only top-left and bottom-right. Cheaper, and
	// only accurate under weak perspective distortion.
	CornersDiagonal
)

// String returns the mode name used in layouts and logs.
func (m CornerMode) String() string {
	switch m {
	case CornersFour:
		return "four"
	case CornersDiagonal:
		return "diagonal"
	default:
		return "unknown"
	}
}
