package terrain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hollowpine/stride/internal/ground"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func flatField(height float64) *Heightfield {
	f := New(16, 16, 1)
	f.Fill(func(x, z int) float64 { return height })
	return f
}

// rampField rises 0.5 units per unit of x.
func rampField() *Heightfield {
	f := New(16, 16, 1)
	f.Fill(func(x, z int) float64 { return float64(x) * 0.5 })
	return f
}

func TestHeightAt(t *testing.T) {
	f := rampField()

	h, ok := f.HeightAt(4, 7)
	if !ok {
		t.Fatal("in-bounds point reported outside")
	}
	approxEqual(t, h, 2, 1e-12, "vertex height")

	h, _ = f.HeightAt(4.5, 7.25)
	approxEqual(t, h, 2.25, 1e-12, "interpolated height")

	if _, ok := f.HeightAt(-1, 5); ok {
		t.Fatal("point left of the field reported inside")
	}
	if _, ok := f.HeightAt(5, 100); ok {
		t.Fatal("point past the field reported inside")
	}
}

func TestNormalAt(t *testing.T) {
	flat := flatField(2)
	n := flat.NormalAt(8, 8)
	approxEqual(t, n.Y(), 1, 1e-12, "flat normal.y")

	ramp := rampField()
	n = ramp.NormalAt(8, 8)
	approxEqual(t, n.Len(), 1, 1e-12, "ramp normal length")
	// Surface rises with x, so the normal leans toward -x.
	if n.X() >= 0 {
		t.Fatalf("ramp normal.x = %v, want negative", n.X())
	}
	wantAngle := math.Atan(0.5)
	approxEqual(t, math.Acos(n.Y()), wantAngle, 1e-6, "ramp tilt angle")
}

func TestRaycast_DownwardHit(t *testing.T) {
	f := flatField(2)

	hit, ok := f.Raycast(mgl64.Vec3{8, 5, 8}, mgl64.Vec3{0, -1, 0}, 10, ground.MaskAll)
	if !ok {
		t.Fatal("expected a hit")
	}
	approxEqual(t, hit.Point.Y(), 2, 1e-12, "hit.y")
	approxEqual(t, hit.Point.X(), 8, 1e-9, "hit.x")
	approxEqual(t, hit.Normal.Y(), 1, 1e-12, "hit normal.y")
	if hit.Layer != ground.Mask(1) {
		t.Fatalf("hit layer = %v, want 1", hit.Layer)
	}
}

func TestRaycast_MissBeyondRange(t *testing.T) {
	f := flatField(2)

	if _, ok := f.Raycast(mgl64.Vec3{8, 10, 8}, mgl64.Vec3{0, -1, 0}, 2, ground.MaskAll); ok {
		t.Fatal("hit reported past max distance")
	}
}

func TestRaycast_MissOutsideField(t *testing.T) {
	f := flatField(2)

	if _, ok := f.Raycast(mgl64.Vec3{-20, 5, -20}, mgl64.Vec3{0, -1, 0}, 10, ground.MaskAll); ok {
		t.Fatal("hit reported outside the field")
	}
}

func TestRaycast_MaskFiltersLayers(t *testing.T) {
	f := flatField(2)
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			f.SetLayer(x, z, ground.Mask(0b10))
		}
	}

	if _, ok := f.Raycast(mgl64.Vec3{8, 5, 8}, mgl64.Vec3{0, -1, 0}, 10, ground.Mask(0b01)); ok {
		t.Fatal("hit reported on an excluded layer")
	}
	if _, ok := f.Raycast(mgl64.Vec3{8, 5, 8}, mgl64.Vec3{0, -1, 0}, 10, ground.Mask(0b10)); !ok {
		t.Fatal("no hit on an included layer")
	}
	if _, ok := f.Raycast(mgl64.Vec3{8, 5, 8}, mgl64.Vec3{0, -1, 0}, 10, ground.MaskAll); !ok {
		t.Fatal("no hit with the match-all mask")
	}
}

func TestRaycast_AngledRayLandsOnSurface(t *testing.T) {
	f := rampField()

	origin := mgl64.Vec3{2, 6, 8}
	dir := mgl64.Vec3{1, -1, 0}
	hit, ok := f.Raycast(origin, dir, 20, ground.MaskAll)
	if !ok {
		t.Fatal("expected a hit")
	}
	surf, _ := f.HeightAt(hit.Point.X(), hit.Point.Z())
	approxEqual(t, hit.Point.Y(), surf, 1e-9, "hit sits on the surface")
}

func TestCapsuleMover_ClampsToGround(t *testing.T) {
	f := flatField(2)
	m := NewCapsuleMover(f, mgl64.Vec3{8, 3, 8}, 45)

	actual, grounded := m.Move(mgl64.Vec3{0, -2, 0})

	if !grounded {
		t.Fatal("grounded = false after clamping")
	}
	approxEqual(t, actual.Y(), -1, 1e-12, "actual.y")
	approxEqual(t, m.Position().Y(), 2, 1e-12, "position.y")
}

func TestCapsuleMover_FreeMoveAboveGround(t *testing.T) {
	f := flatField(2)
	m := NewCapsuleMover(f, mgl64.Vec3{8, 5, 8}, 45)

	actual, grounded := m.Move(mgl64.Vec3{1, -0.5, 0})

	if grounded {
		t.Fatal("grounded = true in the air")
	}
	if actual != (mgl64.Vec3{1, -0.5, 0}) {
		t.Fatalf("actual = %v, want the full delta", actual)
	}
}

func TestCapsuleMover_OutsideFieldFalls(t *testing.T) {
	f := flatField(2)
	m := NewCapsuleMover(f, mgl64.Vec3{-30, 1, -30}, 45)

	_, grounded := m.Move(mgl64.Vec3{0, -5, 0})

	if grounded {
		t.Fatal("grounded = true outside the field")
	}
	approxEqual(t, m.Position().Y(), -4, 1e-12, "position.y")
}

func TestCapsuleMover_SlopeLimit(t *testing.T) {
	m := NewCapsuleMover(flatField(0), mgl64.Vec3{}, 37.5)
	approxEqual(t, m.SlopeLimit(), 37.5, 1e-12, "slope limit")
}
