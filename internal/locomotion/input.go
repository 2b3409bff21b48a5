package locomotion

import "github.com/go-gl/mathgl/mgl64"

// InputFrame is one tick's worth of control input. Move axes are normalized
// to [-1,1] by the producer; no further validation happens here. A dropped
// frame is represented by the zero value.
type InputFrame struct {
	Move mgl64.Vec2
	Look mgl64.Vec2
}

func (f InputFrame) HasMove() bool {
	return f.Move.X() != 0 || f.Move.Y() != 0
}
