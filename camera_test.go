package billow

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

const epsilon = 1e-9

var testViewport = Rect{Width: 800, Height: 600}

func newTestCamera(t *testing.T) *Camera {
	t.Helper()
	cam, err := NewCamera(mgl64.Vec3{0, -8, -3}, mgl64.Vec3{0, 0, -1}, testViewport, CameraConfig{})
	require.NoError(t, err)
	return cam
}

func TestCameraDefaults(t *testing.T) {
	cam := newTestCamera(t)
	cfg := cam.Config()
	assert.Equal(t, 45.0, cfg.FOV)
	assert.Equal(t, 0.1, cfg.Near)
	assert.Equal(t, 1000.0, cfg.Far)
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), epsilon)
}

func TestCameraViewProjectionFiniteAndInvertible(t *testing.T) {
	cases := []struct {
		name        string
		eye, target mgl64.Vec3
	}{
		{"behind and above", mgl64.Vec3{0, -8, -3}, mgl64.Vec3{0, 0, -1}},
		{"level", mgl64.Vec3{5, 5, -1}, mgl64.Vec3{5, 20, -1}},
		{"oblique", mgl64.Vec3{-3, 2, -10}, mgl64.Vec3{4, 9, 0}},
		{"looking back", mgl64.Vec3{0, 10, -2}, mgl64.Vec3{0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam, err := NewCamera(tc.eye, tc.target, testViewport, CameraConfig{})
			require.NoError(t, err)
			vp := cam.ViewProjection()
			for i, v := range vp {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "element %d = %v", i, v)
			}
			assert.NotZero(t, vp.Det())
		})
	}
}

func TestCameraFarFallbackBeyondNear(t *testing.T) {
	cases := []struct {
		name string
		cfg  CameraConfig
		far  float64
	}{
		{"far below near", CameraConfig{Near: 5, Far: 2}, 1000},
		{"near past default far", CameraConfig{Near: 2000}, 2000 * farNearRatio},
		{"far equals near", CameraConfig{Near: 1500, Far: 1500}, 1500 * farNearRatio},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cam, err := NewCamera(mgl64.Vec3{0, -8, -3}, mgl64.Vec3{0, 0, -1}, testViewport, tc.cfg)
			require.NoError(t, err)
			cfg := cam.Config()
			assert.Equal(t, tc.far, cfg.Far)
			assert.Greater(t, cfg.Far, cfg.Near)

			vp := cam.ViewProjection()
			for i, v := range vp {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "element %d = %v", i, v)
			}
			assert.NotZero(t, vp.Det())

			// A point between the planes lands inside the depth range.
			mid := mgl64.Vec3{0, -8 + (cfg.Near+cfg.Far)/2, -3}
			p, err := ProjectPoint(mid, vp)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p.Z, -1.0)
			assert.LessOrEqual(t, p.Z, 1.0)
		})
	}
}

func TestCameraDegenerate(t *testing.T) {
	_, err := NewCamera(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, testViewport, CameraConfig{})
	assert.ErrorIs(t, err, ErrDegenerateCamera)

	_, err = NewCamera(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, 0}, testViewport, CameraConfig{})
	assert.ErrorIs(t, err, ErrDegenerateCamera, "looking along the up axis")
}

func TestCameraSetTargetErrorKeepsState(t *testing.T) {
	cam := newTestCamera(t)
	before := cam.ViewProjection()

	err := cam.SetTarget(mgl64.Vec3{4, 4, 4}, mgl64.Vec3{4, 4, 4})
	require.True(t, errors.Is(err, ErrDegenerateCamera))

	assert.Equal(t, mgl64.Vec3{0, -8, -3}, cam.Eye())
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, cam.Target())
	assert.Equal(t, before, cam.ViewProjection())
}

func TestCameraSetTargetRecomputes(t *testing.T) {
	cam := newTestCamera(t)
	before := cam.ViewProjection()
	require.NoError(t, cam.SetTarget(mgl64.Vec3{1, -8, -3}, mgl64.Vec3{1, 0, -1}))
	assert.NotEqual(t, before, cam.ViewProjection())
	assert.Equal(t, cam.Projection().Mul4(cam.View()), cam.ViewProjection())
}

func TestCameraViewProjectionCached(t *testing.T) {
	cam := newTestCamera(t)
	a := cam.ViewProjection()
	b := cam.ViewProjection()
	assert.Equal(t, a, b)
}

func TestCameraTranslateRoundTrip(t *testing.T) {
	cam := newTestCamera(t)
	eye, target := cam.Eye(), cam.Target()
	delta := mgl64.Vec3{1.25, -3.5, 0.75}

	cam.Translate(delta)
	assert.True(t, cam.Eye().ApproxEqual(eye.Add(delta)))
	assert.True(t, cam.Target().ApproxEqual(target.Add(delta)))

	cam.Translate(delta.Mul(-1))
	assert.True(t, cam.Eye().ApproxEqualThreshold(eye, epsilon))
	assert.True(t, cam.Target().ApproxEqualThreshold(target, epsilon))
}

func TestCameraTranslatePreservesDirection(t *testing.T) {
	cam := newTestCamera(t)
	dir := cam.Target().Sub(cam.Eye())
	cam.Translate(mgl64.Vec3{10, 20, 0})
	assert.True(t, cam.Target().Sub(cam.Eye()).ApproxEqualThreshold(dir, epsilon))
}

func TestCameraTargetProjectsToCenter(t *testing.T) {
	cam := newTestCamera(t)
	p, err := ProjectPoint(cam.Target(), cam.ViewProjection())
	require.NoError(t, err)
	assert.InDelta(t, 0, p.X, epsilon)
	assert.InDelta(t, 0, p.Y, epsilon)
}

func TestCameraGlide(t *testing.T) {
	cam := newTestCamera(t)
	eye := cam.Eye()
	delta := mgl64.Vec3{4, 0, 0}

	cam.GlideBy(delta, 1, ease.InOutQuad)
	require.True(t, cam.Gliding())

	cam.update(0.5)
	mid := cam.Eye().X()
	assert.Greater(t, mid, eye.X())
	assert.Less(t, mid, eye.X()+4)

	cam.update(0.6)
	assert.False(t, cam.Gliding())
	assert.True(t, cam.Eye().ApproxEqualThreshold(eye.Add(delta), 1e-6))
	assert.True(t, cam.Target().Sub(cam.Eye()).ApproxEqualThreshold(mgl64.Vec3{0, 8, 2}, 1e-6))
}

func TestCameraGlideZeroDurationIsImmediate(t *testing.T) {
	cam := newTestCamera(t)
	cam.GlideBy(mgl64.Vec3{0, 2, 0}, 0, nil)
	assert.False(t, cam.Gliding())
	assert.InDelta(t, -6, cam.Eye().Y(), epsilon)
}

func TestCameraUpdateWithoutGlide(t *testing.T) {
	cam := newTestCamera(t)
	before := cam.ViewProjection()
	cam.update(1)
	assert.Equal(t, before, cam.ViewProjection())
}
