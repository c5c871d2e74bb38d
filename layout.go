package billow

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// TemplateSpec describes a template in a layout.
type TemplateSpec struct {
	Sprite string  `json:"sprite"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ObjectSpec places a billboard in a layout.
type ObjectSpec struct {
	Name     string  `json:"name,omitempty"`
	Template string  `json:"template"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

// CameraSpec overrides the scene camera in a layout.
type CameraSpec struct {
	Eye    [3]float64 `json:"eye"`
	Target [3]float64 `json:"target"`
}

// Layout is a scene description: named templates, placed objects, an
// optional player and an optional camera.
type Layout struct {
	Templates map[string]TemplateSpec `json:"templates"`
	Objects   []ObjectSpec            `json:"objects"`
	Player    *ObjectSpec             `json:"player,omitempty"`
	Camera    *CameraSpec             `json:"camera,omitempty"`
}

// LoadLayout parses layout JSON and checks that every object names a defined
// template and every template has a positive size.
func LoadLayout(jsonData []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(jsonData, &l); err != nil {
		return nil, fmt.Errorf("billow: failed to parse layout JSON: %w", err)
	}
	for name, t := range l.Templates {
		if t.Width <= 0 || t.Height <= 0 {
			return nil, fmt.Errorf("billow: layout template %q: size must be positive, got %vx%v", name, t.Width, t.Height)
		}
		if t.Sprite == "" {
			t.Sprite = name
			l.Templates[name] = t
		}
	}
	check := func(o ObjectSpec) error {
		if _, ok := l.Templates[o.Template]; !ok {
			return fmt.Errorf("billow: layout object %q: unknown template %q", o.Name, o.Template)
		}
		return nil
	}
	for _, o := range l.Objects {
		if err := check(o); err != nil {
			return nil, err
		}
	}
	if l.Player != nil {
		if err := check(*l.Player); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

// ApplyLayout resolves the layout's templates against assets and adds its
// billboards to the scene. Nothing is added if any sprite is missing; the
// error is a *MissingResourceError. A camera spec replaces the camera
// position.
func (s *Scene) ApplyLayout(l *Layout, assets *Assets) error {
	templates := make(map[string]*Template, len(l.Templates))
	for name, spec := range l.Templates {
		tpl, err := assets.Template(spec.Sprite, spec.Width, spec.Height)
		if err != nil {
			return fmt.Errorf("billow: layout template %q: %w", name, err)
		}
		templates[name] = tpl
	}

	if l.Camera != nil {
		eye := mgl64.Vec3(l.Camera.Eye)
		target := mgl64.Vec3(l.Camera.Target)
		if err := s.camera.SetTarget(eye, target); err != nil {
			return fmt.Errorf("billow: layout camera: %w", err)
		}
	}

	mode := s.config.CornerMode
	for _, o := range l.Objects {
		name := o.Name
		if name == "" {
			name = o.Template
		}
		s.AddBillboard(NewBillboard(name, templates[o.Template], mode, mgl64.Vec3{o.X, o.Y, o.Z}))
	}
	if p := l.Player; p != nil {
		name := p.Name
		if name == "" {
			name = "player"
		}
		s.SetPlayer(NewBillboard(name, templates[p.Template], mode, mgl64.Vec3{p.X, p.Y, p.Z}))
	}

	Logger().Info("layout applied",
		"templates", len(templates), "objects", len(l.Objects), "player", l.Player != nil)
	return nil
}
