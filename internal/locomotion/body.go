package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Body is the persistent per-character movement state. Each character
// instance owns exactly one Body for its whole lifetime; nothing is shared
// across characters.
//
// PlanarVelocity stays on the horizontal plane (its Y component is zero
// after every integration step); vertical motion is tracked separately so
// gravity never leaks into the planar speed cap.
type Body struct {
	Position         mgl64.Vec3
	PlanarVelocity   mgl64.Vec3
	VerticalVelocity float64
	Yaw              float64
	Blend            mgl64.Vec3
}

// PlanarSpeed is the horizontal speed, ignoring any vertical component.
func (b *Body) PlanarSpeed() float64 {
	v := b.PlanarVelocity
	return mgl64.Vec2{v.X(), v.Z()}.Len()
}
