package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Classify derives the movement state for this tick from the previous
// tick's planar velocity and the current input. Pure: no state is touched.
//
// Only Idling and Running are ever produced. The remaining State values are
// consumed elsewhere (sprint scales the animation target) but adding
// transition rules for them is new behavior, not something this function
// half-implements.
func Classify(planarVelocity mgl64.Vec3, in InputFrame, moveThreshold float64) State {
	speed := mgl64.Vec2{planarVelocity.X(), planarVelocity.Z()}.Len()
	if speed > moveThreshold || in.HasMove() {
		return Running
	}
	return Idling
}
