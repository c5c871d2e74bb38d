package billow

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// UpAxis is the world up vector used by every camera. Billboards stand along
// it: their tops sit at smaller Z than their bases.
var UpAxis = mgl64.Vec3{0, 0, 1}

const degenerateEpsilon = 1e-9

// farNearRatio sizes the fallback far plane for cameras whose near plane is
// beyond the default far plane.
const farNearRatio = 10000

// CameraConfig holds the fixed perspective parameters of a camera.
type CameraConfig struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far are the clip plane distances.
	Near, Far float64
}

// DefaultCameraConfig returns a 45° field of view with near 0.1 and far 1000.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{FOV: 45, Near: 0.1, Far: 1000}
}

// glideAnim pans the camera by delta over the lifetime of a 0→1 tween.
type glideAnim struct {
	tween   *gween.Tween
	delta   mgl64.Vec3
	applied float64
}

// Camera is a perspective camera defined by an eye position and a look-at
// target. The projection is fixed at construction; the view and the combined
// view-projection are cached and recomputed only when the eye or target
// change.
type Camera struct {
	eye    mgl64.Vec3
	target mgl64.Vec3

	config     CameraConfig
	aspect     float64
	projection mgl64.Mat4
	view       mgl64.Mat4
	viewProj   mgl64.Mat4

	glide *glideAnim
}

// NewCamera creates a camera looking from eye to target. The aspect ratio is
// taken from the viewport's pixel size once and is not re-derived on resize.
// Zero config fields fall back to DefaultCameraConfig. A far plane not beyond
// the near plane falls back to the default, or to farNearRatio times Near when
// Near is already past the default far plane.
func NewCamera(eye, target mgl64.Vec3, viewport Rect, cfg CameraConfig) (*Camera, error) {
	def := DefaultCameraConfig()
	if cfg.FOV <= 0 {
		cfg.FOV = def.FOV
	}
	if cfg.Near <= 0 {
		cfg.Near = def.Near
	}
	if cfg.Far <= cfg.Near {
		cfg.Far = max(def.Far, cfg.Near*farNearRatio)
	}
	aspect := 1.0
	if viewport.Height > 0 && viewport.Width > 0 {
		aspect = viewport.Width / viewport.Height
	}

	c := &Camera{
		config:     cfg,
		aspect:     aspect,
		projection: mgl64.Perspective(mgl64.DegToRad(cfg.FOV), aspect, cfg.Near, cfg.Far),
	}
	if err := c.SetTarget(eye, target); err != nil {
		return nil, err
	}
	return c, nil
}

// checkView reports whether eye→target yields a usable LookAt basis.
func checkView(eye, target mgl64.Vec3) error {
	dir := target.Sub(eye)
	if dir.Len() < degenerateEpsilon {
		return fmt.Errorf("%w: eye %v equals look-at target", ErrDegenerateCamera, eye)
	}
	if dir.Normalize().Cross(UpAxis).Len() < degenerateEpsilon {
		return fmt.Errorf("%w: view direction %v is parallel to the up axis", ErrDegenerateCamera, dir)
	}
	return nil
}

// SetTarget replaces the eye and look-at target and recomputes the view and
// view-projection matrices. The camera is left unchanged on error.
func (c *Camera) SetTarget(eye, target mgl64.Vec3) error {
	if err := checkView(eye, target); err != nil {
		return err
	}
	c.eye = eye
	c.target = target
	c.recompute()
	return nil
}

// Translate pans the camera by delta, moving eye and target together so the
// view direction is preserved.
func (c *Camera) Translate(delta mgl64.Vec3) {
	c.eye = c.eye.Add(delta)
	c.target = c.target.Add(delta)
	c.recompute()
}

func (c *Camera) recompute() {
	c.view = mgl64.LookAtV(c.eye, c.target, UpAxis)
	c.viewProj = c.projection.Mul4(c.view)
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 { return c.eye }

// Target returns the look-at target.
func (c *Camera) Target() mgl64.Vec3 { return c.target }

// Aspect returns the aspect ratio fixed at construction.
func (c *Camera) Aspect() float64 { return c.aspect }

// Config returns the perspective parameters.
func (c *Camera) Config() CameraConfig { return c.config }

// View returns the cached view matrix.
func (c *Camera) View() mgl64.Mat4 { return c.view }

// Projection returns the fixed projection matrix.
func (c *Camera) Projection() mgl64.Mat4 { return c.projection }

// ViewProjection returns the cached projection × view matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 { return c.viewProj }

// GlideBy pans the camera by delta over duration seconds, eased by easeFn.
// A glide started while another is running replaces it; the part of the old
// glide already applied stays applied. A non-positive duration pans at once.
func (c *Camera) GlideBy(delta mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.Translate(delta)
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.glide = &glideAnim{
		tween: gween.New(0, 1, duration, easeFn),
		delta: delta,
	}
}

// Gliding reports whether a glide is in progress.
func (c *Camera) Gliding() bool {
	return c.glide != nil
}

// update advances an active glide. Called from Scene.Update.
func (c *Camera) update(dt float32) {
	g := c.glide
	if g == nil {
		return
	}
	val, done := g.tween.Update(dt)
	progress := float64(val)
	if done {
		progress = 1
	}
	if step := progress - g.applied; step != 0 {
		c.Translate(g.delta.Mul(step))
	}
	g.applied = progress
	if done {
		c.glide = nil
	}
}
