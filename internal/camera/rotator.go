package camera

import "github.com/go-gl/mathgl/mgl64"

// The body turns at a tenth of the camera's yaw rate, decoupling camera
// swing from character facing. Pitch input carries the same factor.
const bodyTurnFactor = 0.1

// Rotator accumulates look input into the camera rig and the body facing.
// It runs on the late pass, after movement has committed, so the rig
// observes the tick's final position.
type Rotator struct {
	SenseH     float64
	SenseV     float64
	PitchLimit float64
}

// Update applies one frame of look input. Yaw accumulation is applied per
// frame, not per second: the observed behavior is frame-rate dependent, and
// reproducing it beats silently retuning everyone's sensitivity. Retune
// SenseH/SenseV if the tick rate changes.
func (r Rotator) Update(rig *Rig, bodyYaw *float64, look mgl64.Vec2) {
	rig.Yaw += r.SenseH * look.X()
	rig.Pitch = mgl64.Clamp(rig.Pitch-r.SenseV*look.Y()*bodyTurnFactor, -r.PitchLimit, r.PitchLimit)
	*bodyYaw += r.SenseH * look.X() * bodyTurnFactor
}
