// ABOUTME: Length units for positional quantities
// ABOUTME: Decimal-power conversion between millimeters and kilometers

package aural

import "github.com/Resonate-Protocol/aural-go/pkg/linalg"

// LengthUnit names the unit positional quantities are expressed in. The
// numeric values encode decimal powers relative to the millimeter, which
// keeps conversion a pure power-of-ten ratio.
type LengthUnit int

const (
	Millimeter LengthUnit = 0
	Centimeter LengthUnit = 1
	Decimeter  LengthUnit = 2
	Meter      LengthUnit = 3
	Kilometer  LengthUnit = 6
)

func (u LengthUnit) valid() bool {
	switch u {
	case Millimeter, Centimeter, Decimeter, Meter, Kilometer:
		return true
	}
	return false
}

func pow10(p int) float32 {
	r := float32(1)
	for ; p > 0; p-- {
		r *= 10
	}
	return r
}

// ConvertLength rescales a scalar from one unit to another.
func ConvertLength(value float32, from, to LengthUnit) float32 {
	if from == to {
		return value
	}
	if from > to {
		return value * pow10(int(from-to))
	}
	return value / pow10(int(to-from))
}

// ConvertLengthVec rescales each component of a vector.
func ConvertLengthVec(v linalg.Vec3, from, to LengthUnit) linalg.Vec3 {
	return linalg.Vec3{
		X: ConvertLength(v.X, from, to),
		Y: ConvertLength(v.Y, from, to),
		Z: ConvertLength(v.Z, from, to),
	}
}

// SetGlobalLengthUnit sets the unit every positional quantity handed to the
// engine is interpreted in. Default is Meter. Changing the unit does not
// rescale state already set.
func (e *Engine) SetGlobalLengthUnit(u LengthUnit) bool {
	if !u.valid() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lengthUnit = u
	return true
}

// GetGlobalLengthUnit returns the engine's global length unit.
func (e *Engine) GetGlobalLengthUnit() LengthUnit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lengthUnit
}
