// ABOUTME: 3D mixing path
// ABOUTME: Applies solver gain tables per channel pairing and a unified Doppler rate

package aural

import (
	"math"

	"github.com/Resonate-Protocol/aural-go/pkg/sample"
)

// mix3DSource accumulates one source through the solver's parameter
// tables. Each (source-channel, output-channel) pairing contributes with
// its own gain; the playback rate takes a single unified Doppler shift,
// the one deviating furthest from 1 across the contributing pairs, because
// the engine does not resample per output channel.
func (e *Engine) mix3DSource(block []sample.Type, src *source, buf *buffer) {
	effDoppler := src.effectiveDoppler()
	step := float64(src.pitch) * float64(buf.sampleRate) / float64(e.outputRate) * effDoppler
	gain := float64(src.gain)
	pos := src.playPos

	for f := 0; f < e.frameCount; f++ {
		v, cont := interpolateFrame(src, buf, &pos)
		if !cont {
			break
		}

		for outCh := 0; outCh < e.outputChannels; outCh++ {
			var sum float64
			for c := 0; c < buf.channels; c++ {
				p := src.obj.paramAt(c, outCh)
				sum += v[c] * float64(p.gain)
			}
			o := f*e.outputChannels + outCh
			block[o] = sample.Saturate(sample.ToFloat(block[o]) + sum*gain)
		}

		pos += step
	}

	src.playPos = pos
}

// effectiveDoppler picks the per-pair shift with the largest deviation
// from unity.
func (s *source) effectiveDoppler() float64 {
	eff := 1.0
	for i := range s.obj.channelState {
		for _, p := range s.obj.channelState[i].listenerChParams {
			d := float64(p.dopplerShift)
			if math.Abs(d-1) > math.Abs(eff-1) {
				eff = d
			}
		}
	}
	return eff
}
