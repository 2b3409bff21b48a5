package character

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hollowpine/stride/internal/anim"
	"github.com/hollowpine/stride/internal/camera"
	"github.com/hollowpine/stride/internal/ground"
	"github.com/hollowpine/stride/internal/locomotion"
)

// Mover is the external capsule move-and-collide primitive. It resolves
// penetration itself and reports how far the capsule actually traveled.
type Mover interface {
	Move(delta mgl64.Vec3) (actual mgl64.Vec3, grounded bool)
	SlopeLimit() float64
}

// InputSource supplies one InputFrame per tick.
type InputSource interface {
	Frame() locomotion.InputFrame
}

// Options bundles the construction-time tuning for a controller.
type Options struct {
	Start      mgl64.Vec3
	Tuning     locomotion.Tuning
	Look       camera.Rotator
	BlendSpeed float64
	GroundMask ground.Mask
}

// Controller runs the per-frame locomotion pipeline for a single
// character: classify, probe, integrate, move, blend, with camera
// rotation on the late pass. It owns its Body exclusively; every tick runs
// to completion from its inputs, so there is nothing to lock or cancel.
type Controller struct {
	body       locomotion.Body
	state      locomotion.State
	rig        camera.Rig
	integrator locomotion.Integrator
	rotator    camera.Rotator
	blend      anim.BlendDriver
	detector   *ground.Detector
	mover      Mover
	params     anim.Parameters
}

// New wires a controller to its collaborators. The detector's slope limit
// comes from the mover's configured maximum climbable angle; the ground
// mask resolves its match-all default here, once.
func New(caster ground.RayCaster, mover Mover, opts Options) *Controller {
	return &Controller{
		body:       locomotion.Body{Position: opts.Start},
		integrator: locomotion.Integrator{Tuning: opts.Tuning},
		rotator:    opts.Look,
		blend:      anim.BlendDriver{Speed: opts.BlendSpeed},
		detector:   ground.NewDetector(caster, opts.GroundMask, mover.SlopeLimit()),
		mover:      mover,
	}
}

// Update runs the movement pass for one tick and returns the animation
// parameters for the external blend tree.
func (c *Controller) Update(in locomotion.InputFrame, dt float64) anim.Parameters {
	state := locomotion.Classify(c.body.PlanarVelocity, in, c.integrator.Tuning.MoveThreshold)
	if state != c.state {
		slog.Debug("movement state changed", "from", c.state, "to", state)
		c.state = state
	}

	probe := c.detector.Probe(c.body.Position)
	delta := c.integrator.Step(&c.body, in, probe, c.rig.Forward(), c.rig.Right(), dt)
	actual, _ := c.mover.Move(delta)
	c.body.Position = c.body.Position.Add(actual)

	c.body.Blend, c.params = c.blend.Update(c.body.Blend, c.state, in.Move, dt)
	return c.params
}

// LateUpdate runs the camera pass. It is deliberately separate from Update
// so the rig observes the position already committed this tick.
func (c *Controller) LateUpdate(in locomotion.InputFrame) {
	c.rotator.Update(&c.rig, &c.body.Yaw, in.Look)
}

// Retune swaps the numeric tuning in place; used for live config reload.
func (c *Controller) Retune(t locomotion.Tuning, look camera.Rotator, blendSpeed float64) {
	c.integrator.Tuning = t
	c.rotator = look
	c.blend.Speed = blendSpeed
}

func (c *Controller) Body() locomotion.Body   { return c.body }
func (c *Controller) State() locomotion.State { return c.state }
func (c *Controller) Camera() camera.Rig      { return c.rig }
func (c *Controller) Params() anim.Parameters { return c.params }
func (c *Controller) Probe() ground.Probe     { return c.detector.Probe(c.body.Position) }

// SetPosition teleports the body and, when the mover tracks its own
// position, keeps it in sync.
func (c *Controller) SetPosition(p mgl64.Vec3) {
	c.body.Position = p
	if m, ok := c.mover.(interface{ SetPosition(mgl64.Vec3) }); ok {
		m.SetPosition(p)
	}
}
