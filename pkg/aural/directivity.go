// ABOUTME: Source directivity patterns
// ABOUTME: Polar weight as a function of the angle to the listener

package aural

import "github.com/chewxy/math32"

// DirectivityType selects the polar pattern a source radiates with when its
// directivity blend is above zero.
type DirectivityType int

const (
	Cardioid DirectivityType = iota
	SuperCardioid
	HalfRectifiedDipole
	Dipole
)

func (d DirectivityType) valid() bool {
	return d >= Cardioid && d <= Dipole
}

func (d DirectivityType) String() string {
	switch d {
	case Cardioid:
		return "Cardioid"
	case SuperCardioid:
		return "SuperCardioid"
	case HalfRectifiedDipole:
		return "HalfRectifiedDipole"
	case Dipole:
		return "Dipole"
	}
	return "unknown"
}

// patternWeight evaluates the raw polar pattern at cosAngle, the cosine of
// the angle between the source's forward axis and the direction to the
// listener.
func (d DirectivityType) patternWeight(cosAngle float32) float32 {
	switch d {
	case Cardioid:
		return 0.5 * (1 + cosAngle)
	case SuperCardioid:
		return 0.25 + 0.75*cosAngle
	case HalfRectifiedDipole:
		return math32.Max(cosAngle, 0)
	case Dipole:
		return math32.Abs(cosAngle)
	}
	return 1
}
