// ABOUTME: Positional scene solver
// ABOUTME: Per channel-pair distance gain, Doppler, panning, directivity and rear weight

package aural

import "github.com/chewxy/math32"

// Doppler shifts are clamped to two octaves either way.
const (
	minDopplerShift = 0.25
	maxDopplerShift = 4.0
)

// rearBlendExp shapes the front-to-rear crossfade of the rear weight.
const rearBlendExp = 0.7

// updateScene fills every 3D source's per-channel parameter table against
// the current listener. Runs under the engine mutex, once per tick, before
// the mixer.
func (e *Engine) updateScene() {
	nChL := e.listener.obj.numChannels()

	for _, src := range e.sources {
		if !src.obj.enabled {
			continue
		}

		// A buffer swap may have changed the source's channel count.
		if buf, ok := e.buffers[src.bufferID]; ok && buf.channels > 0 && src.obj.numChannels() != buf.channels {
			src.obj.setNumChannels(buf.channels)
		}

		nChS := src.obj.numChannels()
		for chS := 0; chS < nChS; chS++ {
			src.obj.channelState[chS].resizeParams(nChL)
		}

		for chL := 0; chL < nChL; chL++ {
			stateL := e.listener.obj.state(chL)
			rightL := e.listener.obj.dirRight(chL)
			forwardL := e.listener.obj.dirForward(chL)

			for chS := 0; chS < nChS; chS++ {
				stateS := &src.obj.channelState[chS]

				dir := stateS.posWorld.Sub(stateL.posWorld)
				if dir.LengthSquared() < 1e-9 {
					// Emitter on top of the ear; keep the previous params.
					continue
				}

				dirLS := dir.Normalize() // listener -> source
				dirSL := dirLS.Neg()

				// Doppler along the line of sight.
				doppler := float32(1)
				if c := src.speedOfSound; c > 0 {
					vL := stateL.velWorld.Dot(dirSL)
					vS := stateS.velWorld.Dot(dirSL)
					doppler = (c + vL) / (c - vS)
					if math32.IsNaN(doppler) {
						doppler = 1
					}
					doppler = clamp32(doppler, minDopplerShift, maxDopplerShift)
				}

				dist := dir.Length()
				if dist < 1e-6 {
					dist = 1e-6
				}
				distanceGain := src.distanceGainAt(dist)

				// Listener pan from the ear's right axis.
				panWeight := float32(1)
				if nChL >= 2 {
					pan := rightL.Dot(dirLS)
					if chL == 0 {
						panWeight = 0.5 * (1 - pan)
					} else if chL == 1 {
						panWeight = 0.5 * (1 + pan)
					}
				}

				// Source directivity toward the listener.
				forwardS := src.obj.dirForward(chS)
				cosAngle := forwardS.Dot(dirSL)
				pattern := src.directivityType.patternWeight(cosAngle)
				directivityWeight := 1 + (pattern-1)*src.directivityAlpha
				directivityWeight = clamp32(directivityWeight, 0, 1)
				directivityWeight = math32.Pow(directivityWeight, src.directivitySharpness)

				// Muffle sources behind the listener.
				frontness := forwardL.Dot(dirLS)
				t := clamp32(0.5*(1+frontness), 0, 1)
				rearFloor := src.rearAttenuation * e.listener.rearAttenuation
				rearWeight := rearFloor + (1-rearFloor)*math32.Pow(t, rearBlendExp)

				gain := clamp32(distanceGain*panWeight*directivityWeight*rearWeight, 0, 1)

				stateS.listenerChParams[chL] = param3D{gain: gain, dopplerShift: doppler}
			}
		}
	}
}

// distanceGainAt evaluates the normalized, clamped falloff at distance d:
// unity inside minDistance, frozen beyond maxDistance.
func (s *source) distanceGainAt(d float32) float32 {
	if d < s.minDistance {
		return 1
	}
	if d >= s.maxDistance {
		d = s.maxDistance
	}
	att := attenuationAt(s.constantFalloff, s.linearFalloff, s.quadraticFalloff, d)
	if s.attAtMinDistance == 0 {
		return 0
	}
	return att / s.attAtMinDistance
}
