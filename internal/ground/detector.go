package ground

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// The probe starts slightly above the body origin so a capsule seated
	// exactly on the surface still registers a hit.
	probeLift     = 0.1
	probeDistance = 2.0
)

var (
	up   = mgl64.Vec3{0, 1, 0}
	down = mgl64.Vec3{0, -1, 0}
)

// RayHit is a terrain intersection reported by a RayCaster.
type RayHit struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Layer  Mask
}

// RayCaster is the collision boundary the detector probes through. The
// implementation owns all geometry; the detector only interprets hits.
type RayCaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask Mask) (RayHit, bool)
}

// Probe is the result of one downward cast. It is recomputed every tick
// and never persisted. A miss is a normal outcome (airborne), not an error.
type Probe struct {
	Grounded      bool
	Normal        mgl64.Vec3
	SlopeAngleDeg float64
	OnSlope       bool
}

type Detector struct {
	caster     RayCaster
	mask       Mask
	slopeLimit float64
}

// NewDetector resolves the layer mask once: an unset mask collides with
// everything. slopeLimitDeg is the mover's maximum climbable angle.
func NewDetector(caster RayCaster, mask Mask, slopeLimitDeg float64) *Detector {
	return &Detector{
		caster:     caster,
		mask:       mask.Resolve(),
		slopeLimit: slopeLimitDeg,
	}
}

// Probe casts a single ray straight down from just above position.
func (d *Detector) Probe(position mgl64.Vec3) Probe {
	origin := position.Add(up.Mul(probeLift))
	hit, ok := d.caster.Raycast(origin, down, probeDistance, d.mask)
	if !ok {
		return Probe{}
	}

	angle := slopeAngleDeg(hit.Normal)
	return Probe{
		Grounded:      true,
		Normal:        hit.Normal,
		SlopeAngleDeg: angle,
		OnSlope:       angle != 0 && angle <= d.slopeLimit,
	}
}

func slopeAngleDeg(normal mgl64.Vec3) float64 {
	cos := mgl64.Clamp(normal.Dot(up), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}
