package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/hollowpine/stride/internal/ground"
)

const (
	rayStep       = 0.05
	refineRounds  = 8
	defaultLayer  = ground.Mask(1)
	gradientStep  = 0.05
	outsideHeight = 0.0
)

// Heightfield is a regular grid of terrain heights with bilinear
// interpolation between vertices and a collision layer per cell. It backs
// both the ray-cast boundary and the capsule mover for the demo and tests.
type Heightfield struct {
	width  int
	depth  int
	cell   float64
	height []float64
	layer  []ground.Mask
}

// New allocates a flat field of width x depth vertices spaced cell units
// apart, all on layer 1.
func New(width, depth int, cell float64) *Heightfield {
	h := &Heightfield{
		width:  width,
		depth:  depth,
		cell:   cell,
		height: make([]float64, width*depth),
		layer:  make([]ground.Mask, width*depth),
	}
	for i := range h.layer {
		h.layer[i] = defaultLayer
	}
	return h
}

func (h *Heightfield) SetHeight(x, z int, y float64) {
	if x < 0 || x >= h.width || z < 0 || z >= h.depth {
		return
	}
	h.height[z*h.width+x] = y
}

func (h *Heightfield) SetLayer(x, z int, layer ground.Mask) {
	if x < 0 || x >= h.width || z < 0 || z >= h.depth {
		return
	}
	h.layer[z*h.width+x] = layer
}

// Fill sets every vertex height from f, for procedural terrain.
func (h *Heightfield) Fill(f func(x, z int) float64) {
	for z := 0; z < h.depth; z++ {
		for x := 0; x < h.width; x++ {
			h.height[z*h.width+x] = f(x, z)
		}
	}
}

// HeightAt bilinearly interpolates the surface height at a world-space
// point. The second return is false outside the field.
func (h *Heightfield) HeightAt(wx, wz float64) (float64, bool) {
	gx := wx / h.cell
	gz := wz / h.cell
	if gx < 0 || gz < 0 || gx > float64(h.width-1) || gz > float64(h.depth-1) {
		return outsideHeight, false
	}

	x0 := int(gx)
	z0 := int(gz)
	x1 := min(x0+1, h.width-1)
	z1 := min(z0+1, h.depth-1)
	fx := gx - float64(x0)
	fz := gz - float64(z0)

	h00 := h.height[z0*h.width+x0]
	h10 := h.height[z0*h.width+x1]
	h01 := h.height[z1*h.width+x0]
	h11 := h.height[z1*h.width+x1]

	top := h00*(1-fx) + h10*fx
	bottom := h01*(1-fx) + h11*fx
	return top*(1-fz) + bottom*fz, true
}

// NormalAt is the surface normal from central height differences. Always
// unit length and upward-facing. Samples are clamped into the field so
// edge normals stay sane.
func (h *Heightfield) NormalAt(wx, wz float64) mgl64.Vec3 {
	hl := h.heightClamped(wx-gradientStep, wz)
	hr := h.heightClamped(wx+gradientStep, wz)
	hd := h.heightClamped(wx, wz-gradientStep)
	hu := h.heightClamped(wx, wz+gradientStep)
	n := mgl64.Vec3{
		(hl - hr) / (2 * gradientStep),
		1,
		(hd - hu) / (2 * gradientStep),
	}
	return n.Normalize()
}

func (h *Heightfield) heightClamped(wx, wz float64) float64 {
	wx = mgl64.Clamp(wx, 0, float64(h.width-1)*h.cell)
	wz = mgl64.Clamp(wz, 0, float64(h.depth-1)*h.cell)
	v, _ := h.HeightAt(wx, wz)
	return v
}

// LayerAt is the collision layer of the cell containing the point, or zero
// outside the field.
func (h *Heightfield) LayerAt(wx, wz float64) ground.Mask {
	x := int(wx / h.cell)
	z := int(wz / h.cell)
	if wx < 0 || wz < 0 || x >= h.width || z >= h.depth {
		return 0
	}
	return h.layer[z*h.width+x]
}

// Raycast marches along the ray in fixed steps until a sample dips below
// the surface, then bisects the last segment for the hit point. Samples in
// cells whose layer is excluded by mask are skipped.
func (h *Heightfield) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask ground.Mask) (ground.RayHit, bool) {
	if dir.Len() == 0 {
		return ground.RayHit{}, false
	}
	dir = dir.Normalize()

	prev := 0.0
	for dist := rayStep; dist <= maxDist; dist += rayStep {
		p := origin.Add(dir.Mul(dist))
		surf, ok := h.HeightAt(p.X(), p.Z())
		if !ok {
			prev = dist
			continue
		}
		if p.Y() > surf {
			prev = dist
			continue
		}
		if !mask.Contains(h.LayerAt(p.X(), p.Z())) {
			prev = dist
			continue
		}

		hitDist := h.refine(origin, dir, prev, dist)
		point := origin.Add(dir.Mul(hitDist))
		if surf, ok := h.HeightAt(point.X(), point.Z()); ok {
			point[1] = surf
		}
		return ground.RayHit{
			Point:  point,
			Normal: h.NormalAt(point.X(), point.Z()),
			Layer:  h.LayerAt(point.X(), point.Z()),
		}, true
	}

	return ground.RayHit{}, false
}

// refine bisects between an above-surface and a below-surface distance.
func (h *Heightfield) refine(origin, dir mgl64.Vec3, above, below float64) float64 {
	for i := 0; i < refineRounds; i++ {
		mid := (above + below) / 2
		p := origin.Add(dir.Mul(mid))
		surf, ok := h.HeightAt(p.X(), p.Z())
		if !ok || p.Y() > surf {
			above = mid
		} else {
			below = mid
		}
	}
	return below
}
