package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/hollowpine/stride/internal/ground"
)

// Tuning is the numeric movement surface. All values are plain numbers;
// resolution of defaults happens in the config layer, not here.
type Tuning struct {
	Acceleration  float64
	MaxSpeed      float64
	Drag          float64
	MoveThreshold float64
	Gravity       float64
}

// While grounded the vertical velocity is pinned to a small downward bias
// that keeps the capsule seated against the surface. Not zero: a true zero
// lets the mover float off on the next downhill cell.
const groundedFallBias = -2.0

type Integrator struct {
	Tuning Tuning
}

// Step advances the body by one tick and returns the displacement to hand
// to the external capsule mover. Every branch is total; an airborne probe
// is a handled case, not a failure.
//
// The planar speed cap is fixed at Tuning.MaxSpeed regardless of movement
// state. Sprinting scales only the animation blend target, never the
// integrated velocity.
func (ig Integrator) Step(body *Body, in InputFrame, probe ground.Probe, camForward, camRight mgl64.Vec3, dt float64) mgl64.Vec3 {
	dir := moveDirection(in.Move, camForward, camRight)
	if probe.OnSlope {
		dir = normalizeOrZero(projectOnPlane(dir, probe.Normal))
	}

	vel := body.PlanarVelocity.Add(dir.Mul(ig.Tuning.Acceleration * dt))

	// Below one tick's worth of drag the velocity snaps to zero instead of
	// oscillating around it.
	dragStep := ig.Tuning.Drag * dt
	if vel.Len() > dragStep {
		vel = vel.Sub(vel.Normalize().Mul(dragStep))
	} else {
		vel = mgl64.Vec3{}
	}

	vel = clampMagnitude(vel, ig.Tuning.MaxSpeed)
	vel[1] = 0
	body.PlanarVelocity = vel

	if probe.Grounded {
		body.VerticalVelocity = groundedFallBias
	} else {
		// No terminal velocity cap.
		body.VerticalVelocity += ig.Tuning.Gravity * dt
	}

	delta := vel.Mul(dt)
	delta[1] = body.VerticalVelocity * dt
	return delta
}

// moveDirection maps the 2D move axes onto the horizontal plane relative
// to the camera: X strafes along the flattened right vector, Y walks along
// the flattened forward vector.
func moveDirection(move mgl64.Vec2, camForward, camRight mgl64.Vec3) mgl64.Vec3 {
	forward := normalizeOrZero(flattened(camForward))
	right := normalizeOrZero(flattened(camRight))
	return right.Mul(move.X()).Add(forward.Mul(move.Y()))
}

func flattened(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

func projectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

func clampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if l := v.Len(); l > max {
		return v.Mul(max / l)
	}
	return v
}
