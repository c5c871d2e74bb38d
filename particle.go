package billow

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// MotionKind selects how a particle field moves its billboards.
type MotionKind uint8

const (
	// MotionGravity drops billboards toward the ground and respawns them
	// above the spawn area when they land.
	MotionGravity MotionKind = iota
	// MotionOrbit circles billboards around a center at a fixed lift.
	MotionOrbit
)

// ParticleConfig controls a ParticleField.
type ParticleConfig struct {
	// Count is the fixed number of billboards. Defaults to 32.
	Count int
	// Motion is the movement strategy.
	Motion MotionKind
	// Template is shared by every particle. Required.
	Template *Template

	// AreaX and AreaY bound the spawn positions of gravity particles.
	AreaX, AreaY Range
	// Height is the range of spawn heights above the ground (gravity) or the
	// lift above the ground (orbit).
	Height Range
	// Gravity is the downward acceleration in world units per second².
	Gravity float64

	// Center is the orbit center.
	Center mgl64.Vec3
	// Radius is the range of orbit radii.
	Radius Range
	// AngularSpeed is the range of orbit speeds in radians per second.
	AngularSpeed Range

	// Seed makes spawning deterministic when non-zero.
	Seed uint64
}

// billboardRef links an entity to the billboard it drives.
type billboardRef struct {
	billboard *Billboard
}

// motionState is the per-particle simulation state.
type motionState struct {
	velocity float64 // +Z speed (gravity)
	angle    float64 // current orbit angle (orbit)
	radius   float64
	speed    float64
	lift     float64
}

var (
	billboardComponent = donburi.NewComponentType[billboardRef]()
	motionComponent    = donburi.NewComponentType[motionState]()
)

// ParticleField is a fixed batch of flying billboards. Each particle is a
// donburi entity carrying its billboard and motion state; billboards are
// created once and repositioned forever.
type ParticleField struct {
	config      ParticleConfig
	groundLevel float64
	world       donburi.World
	query       *donburi.Query
	rng         *rand.Rand
	billboards  []*Billboard
}

// NewParticleField creates cfg.Count billboards in the given corner mode and
// places them. Panics if cfg.Template is nil.
func NewParticleField(cfg ParticleConfig, mode CornerMode, groundLevel float64) *ParticleField {
	if cfg.Template == nil {
		panic("billow: particle field needs a template")
	}
	if cfg.Count <= 0 {
		cfg.Count = 32
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	f := &ParticleField{
		config:      cfg,
		groundLevel: groundLevel,
		world:       donburi.NewWorld(),
		query:       donburi.NewQuery(filter.Contains(billboardComponent, motionComponent)),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		billboards:  make([]*Billboard, 0, cfg.Count),
	}

	for i := 0; i < cfg.Count; i++ {
		b := NewBillboard("particle", cfg.Template, mode, mgl64.Vec3{})
		entry := f.world.Entry(f.world.Create(billboardComponent, motionComponent))
		billboardComponent.SetValue(entry, billboardRef{billboard: b})
		m := motionComponent.Get(entry)
		switch cfg.Motion {
		case MotionOrbit:
			m.angle = f.rng.Float64() * 2 * math.Pi
			m.radius = f.random(cfg.Radius)
			m.speed = f.random(cfg.AngularSpeed)
			m.lift = f.random(cfg.Height)
			b.SetPosition(f.orbitPosition(m))
		default:
			// Spread the first drop over the whole column so particles don't
			// fall in one sheet.
			f.respawn(b, m)
			drop := f.rng.Float64() * (groundLevel - b.Position().Z())
			b.Translate(mgl64.Vec3{0, 0, drop})
		}
		f.billboards = append(f.billboards, b)
	}
	return f
}

// Billboards returns the field's billboards. The returned slice MUST NOT be
// mutated.
func (f *ParticleField) Billboards() []*Billboard {
	return f.billboards
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return f.query.Count(f.world)
}

// Config returns a pointer to the field's config for live tuning.
func (f *ParticleField) Config() *ParticleConfig {
	return &f.config
}

// update advances every particle by dt seconds.
func (f *ParticleField) update(dt float64) {
	f.query.Each(f.world, func(entry *donburi.Entry) {
		b := billboardComponent.Get(entry).billboard
		m := motionComponent.Get(entry)
		switch f.config.Motion {
		case MotionOrbit:
			m.angle = math.Mod(m.angle+m.speed*dt, 2*math.Pi)
			b.SetPosition(f.orbitPosition(m))
		default:
			m.velocity += f.config.Gravity * dt
			p := b.Position()
			z := p.Z() + m.velocity*dt
			if z >= f.groundLevel {
				f.respawn(b, m)
				return
			}
			b.SetPosition(mgl64.Vec3{p.X(), p.Y(), z})
		}
	})
}

// minSpawnLift keeps respawned gravity particles strictly above the ground,
// so a zero Height.Min cannot land them back on it.
const minSpawnLift = 1e-3

// respawn places a gravity particle at rest somewhere above the spawn area.
func (f *ParticleField) respawn(b *Billboard, m *motionState) {
	m.velocity = 0
	lift := max(f.random(f.config.Height), minSpawnLift)
	b.SetPosition(mgl64.Vec3{
		f.random(f.config.AreaX),
		f.random(f.config.AreaY),
		f.groundLevel - lift,
	})
}

func (f *ParticleField) orbitPosition(m *motionState) mgl64.Vec3 {
	sin, cos := math.Sincos(m.angle)
	c := f.config.Center
	return mgl64.Vec3{
		c.X() + cos*m.radius,
		c.Y() + sin*m.radius,
		f.groundLevel - m.lift,
	}
}

// random returns a value in [r.Min, r.Max].
func (f *ParticleField) random(r Range) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + f.rng.Float64()*(r.Max-r.Min)
}
