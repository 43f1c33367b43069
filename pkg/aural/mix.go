// ABOUTME: Flat (non-3D) mixing path and the per-tick block producer
// ABOUTME: Linear interpolation, channel mapping, panning, saturating accumulate

package aural

import (
	"log"
	"math"

	"github.com/Resonate-Protocol/aural-go/pkg/sample"
)

// mixBlock produces one block of frameCount interleaved output frames by
// accumulating every active source. Runs under the engine mutex.
func (e *Engine) mixBlock() []sample.Type {
	block := make([]sample.Type, e.frameCount*e.outputChannels)

	for id, src := range e.sources {
		if !src.playing || src.paused {
			continue
		}
		if src.bufferID == 0 {
			continue
		}

		buf, ok := e.buffers[src.bufferID]
		if !ok {
			// The buffer was destroyed while this source referenced it.
			src.bufferID = 0
			src.playing = false
			log.Printf("aural: source %d referenced a destroyed buffer, detached", id)
			continue
		}
		if buf.channels == 0 || len(buf.data) < buf.channels {
			continue
		}

		if e.sceneInit && src.obj.enabled {
			e.mix3DSource(block, src, buf)
		} else {
			e.mixFlatSource(block, src, buf)
		}
	}

	return block
}

// mixFlatSource accumulates one source using the fixed channel map: copy
// when the channel counts match, duplicate mono into stereo, average stereo
// into mono. Any other combination adds nothing to the block.
func (e *Engine) mixFlatSource(block []sample.Type, src *source, buf *buffer) {
	step := float64(src.pitch) * float64(buf.sampleRate) / float64(e.outputRate)
	gain := float64(src.gain)
	pos := src.playPos

	for f := 0; f < e.frameCount; f++ {
		v, cont := interpolateFrame(src, buf, &pos)
		if !cont {
			break
		}

		switch {
		case buf.channels == e.outputChannels:
			for c := 0; c < buf.channels; c++ {
				o := f*e.outputChannels + c
				block[o] = sample.Saturate(sample.ToFloat(block[o]) + v[c]*gain)
			}
		case buf.channels == 1 && e.outputChannels == 2:
			for c := 0; c < 2; c++ {
				o := f*2 + c
				block[o] = sample.Saturate(sample.ToFloat(block[o]) + v[0]*gain)
			}
		case buf.channels == 2 && e.outputChannels == 1:
			mono := (v[0] + v[1]) / 2
			block[f] = sample.Saturate(sample.ToFloat(block[f]) + mono*gain)
		}

		pos += step
	}

	src.playPos = pos
}

// interpolateFrame reads the linearly interpolated sample for each source
// channel at *pos, applying panning on stereo buffers. It handles loop
// wrap and end-of-buffer: cont=false means the source just stopped.
func interpolateFrame(src *source, buf *buffer, pos *float64) (v [2]float64, cont bool) {
	bufLen := len(buf.data)
	ch := buf.channels

	idx := int(*pos) * ch
	if idx+ch > bufLen {
		if src.looping {
			*pos = 0
			idx = 0
		} else {
			src.playing = false
			return v, false
		}
	}

	frac := *pos - math.Floor(*pos)
	for c := 0; c < ch; c++ {
		s1 := sample.ToFloat(buf.data[idx+c])
		s2 := s1
		if next := idx + ch + c; next < bufLen {
			s2 = sample.ToFloat(buf.data[next])
		}
		v[c] = (1-frac)*s1 + frac*s2
	}

	if ch == 2 && src.pan != nil {
		p := float64(*src.pan)
		v[0] *= 1 - p
		v[1] *= p
	}
	return v, true
}
