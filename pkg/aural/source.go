// ABOUTME: Playback source record
// ABOUTME: Transport, gain, pitch, pan, distance model and directivity state

package aural

// SourceID identifies a playback source. Zero means "none".
type SourceID uint32

// source is one playable instance bound to a buffer by handle. Handles
// rather than pointers keep destroyed buffers self-healing in the mixer.
type source struct {
	bufferID BufferID

	looping bool
	playing bool
	paused  bool
	playPos float64 // fractional frame cursor into the buffer

	gain  float32
	pitch float32
	pan   *float32 // nil when unset; applied to stereo buffers only

	obj object3D

	// speedOfSound in global length units per second; 0 disables Doppler.
	speedOfSound float32

	constantFalloff  float32
	linearFalloff    float32
	quadraticFalloff float32
	minDistance      float32
	maxDistance      float32
	attAtMinDistance float32

	directivityAlpha     float32 // omni -> pattern blend
	directivitySharpness float32 // pattern exponent
	directivityType      DirectivityType
	rearAttenuation      float32
}

func newSource() *source {
	return &source{
		gain:  1,
		pitch: 1,
		obj:   newObject3D(),

		constantFalloff:  1,
		linearFalloff:    0.2,
		quadraticFalloff: 0.08,
		minDistance:      1,
		maxDistance:      500,
		attAtMinDistance: attenuationAt(1, 0.2, 0.08, 1),

		directivitySharpness: 1,
		directivityType:      Cardioid,
		rearAttenuation:      1,
	}
}

// attenuationAt evaluates the inverse falloff polynomial at distance d.
func attenuationAt(constant, linear, quadratic, d float32) float32 {
	return 1 / (constant + linear*d + quadratic*d*d)
}
