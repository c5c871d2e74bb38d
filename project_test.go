package billow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanvasCenter(t *testing.T) {
	r := ToCanvas(ProjectedPoint{}, 0, 0, 800, 600)
	assert.Equal(t, Rect{X: 400, Y: 300}, r)
}

func TestToCanvasScalesAndAnchors(t *testing.T) {
	r := ToCanvas(ProjectedPoint{X: 0.5, Y: -0.5}, 0.5, 1, 800, 600)
	// px = 600, py = 150, w = 200, h = 300; centered on X, hanging from Y.
	assert.Equal(t, Rect{X: 500, Y: 150, Width: 200, Height: 300}, r)
}

func TestToCanvasDoesNotFlipY(t *testing.T) {
	top := ToCanvas(ProjectedPoint{Y: -1}, 0, 0, 800, 600)
	bottom := ToCanvas(ProjectedPoint{Y: 1}, 0, 0, 800, 600)
	assert.Equal(t, 0.0, top.Y)
	assert.Equal(t, 600.0, bottom.Y)
}

func TestProjectPointIdentity(t *testing.T) {
	p, err := ProjectPoint(mgl64.Vec3{0.25, -0.5, 0.75}, mgl64.Ident4())
	require.NoError(t, err)
	assert.Equal(t, ProjectedPoint{X: 0.25, Y: -0.5, Z: 0.75}, p)
}

func TestProjectPointPerspectiveDivide(t *testing.T) {
	m := mgl64.Ident4()
	m.Set(3, 3, 2) // w = 2
	p, err := ProjectPoint(mgl64.Vec3{2, 4, 6}, m)
	require.NoError(t, err)
	assert.Equal(t, ProjectedPoint{X: 1, Y: 2, Z: 3}, p)
}

func TestProjectPointSingularity(t *testing.T) {
	cam := newTestCamera(t)
	_, err := ProjectPoint(cam.Eye(), cam.ViewProjection())
	assert.ErrorIs(t, err, ErrProjectionSingularity)

	var zero mgl64.Mat4
	_, err = ProjectPoint(mgl64.Vec3{1, 2, 3}, zero)
	assert.ErrorIs(t, err, ErrProjectionSingularity)
}

func TestProjectPointDepthOrdering(t *testing.T) {
	cam := newTestCamera(t)
	vp := cam.ViewProjection()
	near, err := ProjectPoint(mgl64.Vec3{0, 0, 0}, vp)
	require.NoError(t, err)
	far, err := ProjectPoint(mgl64.Vec3{0, 50, 0}, vp)
	require.NoError(t, err)
	behind, err := ProjectPoint(mgl64.Vec3{0, -20, 0}, vp)
	require.NoError(t, err)
	beyond, err := ProjectPoint(mgl64.Vec3{0, 5000, 0}, vp)
	require.NoError(t, err)

	assert.Less(t, near.Z, far.Z)
	assert.LessOrEqual(t, far.Z, 1.0)
	assert.Greater(t, behind.Z, 1.0)
	assert.Greater(t, beyond.Z, 1.0)
}

func TestPlaceQuad(t *testing.T) {
	tl := ProjectedPoint{X: -0.5, Y: -0.4, Z: 0.9}
	tr := ProjectedPoint{X: 0.5, Y: -0.4, Z: 0.9}
	bl := ProjectedPoint{X: -0.6, Y: 0.2, Z: 0.95}
	br := ProjectedPoint{X: 0.6, Y: 0.2, Z: 0.95}

	p := placeQuad(tl, tr, bl, br)
	assert.InDelta(t, 1.1, p.Width, epsilon)
	assert.InDelta(t, 0.6, p.Height, epsilon)
	assert.InDelta(t, 0, p.CenterX, epsilon)
	assert.InDelta(t, -0.4, p.CenterY, epsilon)
	assert.Equal(t, 0.95, p.Depth)
}

func TestPlaceQuadSkewed(t *testing.T) {
	tl := ProjectedPoint{X: 0, Y: 0, Z: 0.5}
	tr := ProjectedPoint{X: 1, Y: 0.2, Z: 0.7}
	bl := ProjectedPoint{X: 0, Y: 1, Z: 0.6}
	br := ProjectedPoint{X: 2, Y: 1.4, Z: 0.4}

	p := placeQuad(tl, tr, bl, br)
	assert.InDelta(t, 1.5, p.Width, epsilon)    // avg(1, 2)
	assert.InDelta(t, 1.1, p.Height, epsilon)   // avg(1.2, 1)
	assert.InDelta(t, 0.75, p.CenterX, epsilon) // (0+1+0+2)/4
	assert.InDelta(t, 0.1, p.CenterY, epsilon)  // avg(0, 0.2)
	assert.Equal(t, 0.7, p.Depth)
}

func TestPlaceDiagonal(t *testing.T) {
	tl := ProjectedPoint{X: -0.2, Y: -0.3, Z: 0.8}
	br := ProjectedPoint{X: 0.4, Y: 0.5, Z: 0.85}

	p := placeDiagonal(tl, br)
	assert.InDelta(t, 0.6, p.Width, epsilon)
	assert.InDelta(t, 0.8, p.Height, epsilon)
	assert.InDelta(t, 0.1, p.CenterX, epsilon)
	assert.InDelta(t, -0.3, p.CenterY, epsilon)
	assert.Equal(t, 0.85, p.Depth)
}

func TestPlacementRect(t *testing.T) {
	p := Placement{CenterX: 0, CenterY: 0, Width: 0.5, Height: 0.5, Depth: 0.9}
	assert.Equal(t, Rect{X: 300, Y: 300, Width: 200, Height: 150}, p.Rect(800, 600))
}

func TestPlacementVisible(t *testing.T) {
	assert.True(t, Placement{Depth: 0.99}.Visible())
	assert.True(t, Placement{Depth: 1}.Visible())
	assert.False(t, Placement{Depth: 1.0001}.Visible())
}
