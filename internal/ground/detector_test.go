package ground

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type stubCaster struct {
	hit RayHit
	ok  bool

	gotOrigin mgl64.Vec3
	gotDir    mgl64.Vec3
	gotDist   float64
	gotMask   Mask
}

func (s *stubCaster) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask Mask) (RayHit, bool) {
	s.gotOrigin = origin
	s.gotDir = dir
	s.gotDist = maxDist
	s.gotMask = mask
	return s.hit, s.ok
}

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func tiltedNormal(deg float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(deg)
	return mgl64.Vec3{math.Sin(rad), math.Cos(rad), 0}
}

func TestProbe_CastGeometry(t *testing.T) {
	caster := &stubCaster{}
	det := NewDetector(caster, MaskAll, 45)

	det.Probe(mgl64.Vec3{3, 1.5, -2})

	approxEqual(t, caster.gotOrigin.Y(), 1.6, 1e-12, "origin.y")
	approxEqual(t, caster.gotOrigin.X(), 3, 1e-12, "origin.x")
	if caster.gotDir != (mgl64.Vec3{0, -1, 0}) {
		t.Fatalf("dir = %v, want straight down", caster.gotDir)
	}
	approxEqual(t, caster.gotDist, 2.0, 1e-12, "max distance")
}

func TestProbe_UnsetMaskMatchesEverything(t *testing.T) {
	caster := &stubCaster{}
	det := NewDetector(caster, 0, 45)

	det.Probe(mgl64.Vec3{})

	if caster.gotMask != MaskAll {
		t.Fatalf("mask = %v, want MaskAll", caster.gotMask)
	}
}

func TestProbe_FlatGround(t *testing.T) {
	caster := &stubCaster{
		hit: RayHit{Normal: mgl64.Vec3{0, 1, 0}},
		ok:  true,
	}
	det := NewDetector(caster, MaskAll, 45)

	p := det.Probe(mgl64.Vec3{})

	if !p.Grounded {
		t.Fatal("grounded = false, want true")
	}
	if p.OnSlope {
		t.Fatal("onSlope = true on flat ground")
	}
	approxEqual(t, p.SlopeAngleDeg, 0, 1e-9, "slope angle")
}

func TestProbe_ClimbableSlope(t *testing.T) {
	caster := &stubCaster{
		hit: RayHit{Normal: tiltedNormal(30)},
		ok:  true,
	}
	det := NewDetector(caster, MaskAll, 45)

	p := det.Probe(mgl64.Vec3{})

	if !p.Grounded || !p.OnSlope {
		t.Fatalf("grounded=%t onSlope=%t, want true/true", p.Grounded, p.OnSlope)
	}
	approxEqual(t, p.SlopeAngleDeg, 30, 1e-9, "slope angle")
}

func TestProbe_SlopePastLimitIsNotASlope(t *testing.T) {
	caster := &stubCaster{
		hit: RayHit{Normal: tiltedNormal(60)},
		ok:  true,
	}
	det := NewDetector(caster, MaskAll, 45)

	p := det.Probe(mgl64.Vec3{})

	if !p.Grounded {
		t.Fatal("grounded = false, want true")
	}
	if p.OnSlope {
		t.Fatal("onSlope = true past the climbable limit")
	}
	approxEqual(t, p.SlopeAngleDeg, 60, 1e-9, "slope angle")
}

func TestProbe_MissIsAirborne(t *testing.T) {
	det := NewDetector(&stubCaster{}, MaskAll, 45)

	p := det.Probe(mgl64.Vec3{0, 100, 0})

	if p.Grounded || p.OnSlope {
		t.Fatalf("grounded=%t onSlope=%t, want false/false", p.Grounded, p.OnSlope)
	}
	if p.Normal != (mgl64.Vec3{}) || p.SlopeAngleDeg != 0 {
		t.Fatalf("miss probe carries data: %+v", p)
	}
}

func TestMask(t *testing.T) {
	if Mask(0).Resolve() != MaskAll {
		t.Fatal("zero mask should resolve to MaskAll")
	}
	if Mask(0b10).Resolve() != Mask(0b10) {
		t.Fatal("set mask should resolve to itself")
	}
	if !Mask(0b110).Contains(0b010) {
		t.Fatal("mask should contain overlapping layer")
	}
	if Mask(0b110).Contains(0b001) {
		t.Fatal("mask should not contain disjoint layer")
	}
}
