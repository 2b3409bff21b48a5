package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rig is the orbit camera orientation, in degrees. Yaw 0 looks toward +Z;
// positive pitch looks down.
type Rig struct {
	Yaw   float64
	Pitch float64
}

// Forward is the full 3D view direction. Callers that need a ground-plane
// basis flatten it themselves.
func (r Rig) Forward() mgl64.Vec3 {
	yaw := mgl64.DegToRad(r.Yaw)
	pitch := mgl64.DegToRad(r.Pitch)
	return mgl64.Vec3{
		-math.Sin(yaw) * math.Cos(pitch),
		-math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}
}

// Right is already horizontal; pitch does not tilt it.
func (r Rig) Right() mgl64.Vec3 {
	yaw := mgl64.DegToRad(r.Yaw)
	return mgl64.Vec3{math.Cos(yaw), 0, math.Sin(yaw)}
}
