package ground

// Mask is a bitmask of collision layers a ray is allowed to hit.
//
// A zero mask means "unconfigured" and resolves to MaskAll; the
// substitution happens once at detector construction, never per tick.
type Mask uint32

const MaskAll Mask = ^Mask(0)

func (m Mask) Resolve() Mask {
	if m == 0 {
		return MaskAll
	}
	return m
}

func (m Mask) Contains(layer Mask) bool {
	return m&layer != 0
}
