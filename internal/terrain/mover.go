package terrain

import "github.com/go-gl/mathgl/mgl64"

// CapsuleMover is a demo-grade move-and-collide primitive over a
// heightfield: it applies the requested displacement, clamps the capsule
// against the surface, and reports how far it actually traveled. It owns
// its own position, like an engine character body would.
type CapsuleMover struct {
	field      *Heightfield
	pos        mgl64.Vec3
	slopeLimit float64
}

func NewCapsuleMover(field *Heightfield, start mgl64.Vec3, slopeLimitDeg float64) *CapsuleMover {
	return &CapsuleMover{
		field:      field,
		pos:        start,
		slopeLimit: slopeLimitDeg,
	}
}

// Move resolves one tick's displacement. Outside the field there is
// nothing to collide with and the capsule free-falls.
func (m *CapsuleMover) Move(delta mgl64.Vec3) (mgl64.Vec3, bool) {
	target := m.pos.Add(delta)
	grounded := false
	if surf, ok := m.field.HeightAt(target.X(), target.Z()); ok && target.Y() <= surf {
		target[1] = surf
		grounded = true
	}
	actual := target.Sub(m.pos)
	m.pos = target
	return actual, grounded
}

// SlopeLimit is the maximum climbable angle in degrees; the ground
// detector sources its slope classification limit from here.
func (m *CapsuleMover) SlopeLimit() float64 { return m.slopeLimit }

func (m *CapsuleMover) Position() mgl64.Vec3 { return m.pos }

func (m *CapsuleMover) SetPosition(p mgl64.Vec3) { m.pos = p }
