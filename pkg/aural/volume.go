// ABOUTME: Volume control in decibels and via a perceptual slider
// ABOUTME: Alternate front-ends over the source's linear gain

package aural

import "github.com/chewxy/math32"

const (
	// DefaultSliderMinDB is the slider's floor: slider 0 maps to this level.
	DefaultSliderMinDB = -60.0

	// DefaultSliderTaper is the slider curve exponent. 1 is linear in dB.
	DefaultSliderTaper = 1.0
)

// SetSourceVolumeDB sets the gain from a decibel level: gain = 10^(dB/20).
func (e *Engine) SetSourceVolumeDB(src SourceID, dB float32) bool {
	if math32.IsNaN(dB) || math32.IsInf(dB, 1) {
		return false
	}
	gain := math32.Pow(10, dB/20)
	if math32.IsInf(dB, -1) {
		gain = 0
	}
	return e.SetSourceGain(src, gain)
}

// GetSourceVolumeDB returns the gain as a decibel level. A zero gain
// reports negative infinity.
func (e *Engine) GetSourceVolumeDB(src SourceID) (float32, bool) {
	gain, ok := e.GetSourceGain(src)
	if !ok {
		return 0, false
	}
	if gain <= 0 {
		return math32.Inf(-1), true
	}
	return 20 * math32.Log10(gain), true
}

// SetSourceVolumeSlider maps a normalized slider position v in [0,1] onto
// the gain with gain = 10^((minDB*(1-v^taper))/20), so slider 1 is unity
// and slider 0 sits at minDB. Out-of-range positions are clamped;
// non-positive tapers fall back to DefaultSliderTaper.
func (e *Engine) SetSourceVolumeSlider(src SourceID, v, minDB, taper float32) bool {
	if math32.IsNaN(v) {
		return false
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if taper <= 0 || math32.IsNaN(taper) {
		taper = DefaultSliderTaper
	}
	dB := minDB * (1 - math32.Pow(v, taper))
	return e.SetSourceVolumeDB(src, dB)
}

// GetSourceVolumeSlider inverts the slider mapping for the current gain
// under the same minDB and taper. Gains at or below the floor report 0.
func (e *Engine) GetSourceVolumeSlider(src SourceID, minDB, taper float32) (float32, bool) {
	if taper <= 0 || math32.IsNaN(taper) {
		taper = DefaultSliderTaper
	}
	dB, ok := e.GetSourceVolumeDB(src)
	if !ok {
		return 0, false
	}
	if minDB >= 0 || math32.IsInf(dB, -1) || dB <= minDB {
		return 0, true
	}
	v := math32.Pow(1-dB/minDB, 1/taper)
	return clamp32(v, 0, 1), true
}
