package anim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/hollowpine/stride/internal/locomotion"
)

// Parameters are the named scalar channels handed to the external blend
// tree every tick. There is no schema beyond the three floats.
type Parameters struct {
	InputX         float64
	InputY         float64
	InputMagnitude float64
}

// Sprinting widens the blend target past the unit square so the blend tree
// reaches its sprint poses; the integrated speed cap is untouched.
const sprintBlendScale = 1.5

// BlendDriver exponentially smooths raw move input toward a target and
// republishes it as animation parameters. The smoothed value is carried in
// a 3-vector whose first two components mirror the move axes; the third is
// unused.
type BlendDriver struct {
	Speed float64
}

// Update advances the smoothed blend vector one tick and returns it with
// the derived parameters.
func (d BlendDriver) Update(smoothed mgl64.Vec3, state locomotion.State, move mgl64.Vec2, dt float64) (mgl64.Vec3, Parameters) {
	target := move
	if state == locomotion.Sprinting {
		target = move.Mul(sprintBlendScale)
	}

	t := mgl64.Clamp(d.Speed*dt, 0, 1)
	smoothed[0] += (target.X() - smoothed[0]) * t
	smoothed[1] += (target.Y() - smoothed[1]) * t

	return smoothed, Parameters{
		InputX:         smoothed.X(),
		InputY:         smoothed.Y(),
		InputMagnitude: smoothed.Len(),
	}
}
