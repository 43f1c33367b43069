// ABOUTME: Public positional-audio API
// ABOUTME: Scene init, per-channel poses, rigid-body state, falloff and directivity

package aural

import (
	"github.com/Resonate-Protocol/aural-go/pkg/linalg"
	"github.com/chewxy/math32"
)

// Bounds accepted for the cached attenuation at minimum distance. Falloff
// mutators producing values outside this window are rejected.
const (
	minFalloffCache = 1e-6
	maxFalloffCache = 1e6
)

// Init3DScene activates the positional layer. Until this is called every
// source takes the flat mixing path regardless of its 3D flag. The
// listener's ear emitters are sized to the output channel count.
func (e *Engine) Init3DScene() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sceneInit = true
	if e.outputChannels > 0 {
		e.listener.obj.setNumChannels(e.outputChannels)
	}
}

// Is3DSceneInitialized reports whether Init3DScene has been called.
func (e *Engine) Is3DSceneInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sceneInit
}

// EnableSource3DAudio routes a source through the positional solver. The
// source's channel emitters are sized to its buffer's channel count.
func (e *Engine) EnableSource3DAudio(src SourceID, enable bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sceneInit {
		return false
	}
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.obj.enabled = enable
	if buf, ok := e.buffers[s.bufferID]; ok && buf.channels > 0 {
		s.obj.setNumChannels(buf.channels)
	}
	return true
}

// IsSource3DAudioEnabled reports the source's 3D flag.
func (e *Engine) IsSource3DAudioEnabled(src SourceID) (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false, false
	}
	return s.obj.enabled, true
}

// SetSource3DStateChannel poses one channel emitter of a source: rotation,
// world position and world velocity, in global length units.
func (e *Engine) SetSource3DStateChannel(src SourceID, ch int, rot linalg.Mtx3, pos, vel linalg.Vec3) bool {
	if !pos.IsFinite() || !vel.IsFinite() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sceneInit {
		return false
	}
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	return s.obj.setChannelState(ch, rot, pos, vel)
}

// GetSource3DStateChannel returns one channel emitter's pose.
func (e *Engine) GetSource3DStateChannel(src SourceID, ch int) (linalg.Mtx3, linalg.Vec3, linalg.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return linalg.Mtx3Identity, linalg.Vec3Zero, linalg.Vec3Zero, false
	}
	return s.obj.channelStateAt(ch)
}

// SetSource3DState poses every channel emitter of a source from one rigid
// body: channel positions are the local offsets pushed through trf, and
// channel velocities follow rigid-body transport,
// vel + w x (pos_ch - pos_cm), with the angular velocity given in the local
// frame.
func (e *Engine) SetSource3DState(src SourceID, trf linalg.Mtx4, velWorld, angVelLocal linalg.Vec3, channelOffsetsLocal []linalg.Vec3) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sceneInit {
		return false
	}
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	return applyRigidBodyState(&s.obj, trf, velWorld, angVelLocal, channelOffsetsLocal)
}

// SetListener3DStateChannel poses one listener ear.
func (e *Engine) SetListener3DStateChannel(ch int, rot linalg.Mtx3, pos, vel linalg.Vec3) bool {
	if !pos.IsFinite() || !vel.IsFinite() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sceneInit {
		return false
	}
	return e.listener.obj.setChannelState(ch, rot, pos, vel)
}

// GetListener3DStateChannel returns one listener ear's pose.
func (e *Engine) GetListener3DStateChannel(ch int) (linalg.Mtx3, linalg.Vec3, linalg.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sceneInit {
		return linalg.Mtx3Identity, linalg.Vec3Zero, linalg.Vec3Zero, false
	}
	return e.listener.obj.channelStateAt(ch)
}

// SetListener3DState poses all listener ears from one rigid body, with the
// same transport rule as SetSource3DState. The offset list length must
// match the listener's channel count once the scene is live.
func (e *Engine) SetListener3DState(trf linalg.Mtx4, velWorld, angVelLocal linalg.Vec3, channelOffsetsLocal []linalg.Vec3) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sceneInit {
		return false
	}
	return applyRigidBodyState(&e.listener.obj, trf, velWorld, angVelLocal, channelOffsetsLocal)
}

// applyRigidBodyState computes per-channel poses by rigid-body transport.
// An empty object is sized to the offset list; a populated object rejects a
// mismatched list length.
func applyRigidBodyState(obj *object3D, trf linalg.Mtx4, velWorld, angVelLocal linalg.Vec3, offsets []linalg.Vec3) bool {
	if len(offsets) == 0 {
		return false
	}
	if !velWorld.IsFinite() || !angVelLocal.IsFinite() {
		return false
	}
	for _, off := range offsets {
		if !off.IsFinite() {
			return false
		}
	}
	if n := obj.numChannels(); n > 0 && n != len(offsets) {
		return false
	}
	obj.setNumChannels(len(offsets))

	rot := trf.Rotation()
	posCM := trf.Translation()
	angVelWorld := trf.TransformVector(angVelLocal)

	for ch, off := range offsets {
		pos := trf.TransformPoint(off)
		vel := velWorld.Add(angVelWorld.Cross(pos.Sub(posCM)))
		obj.setChannelState(ch, rot, pos, vel)
	}
	return true
}

// SetSourceSpeedOfSound sets the per-source speed of sound in global length
// units per second. Zero disables Doppler for the source.
func (e *Engine) SetSourceSpeedOfSound(src SourceID, c float32) bool {
	if c < 0 || !isFinite32(c) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.speedOfSound = c
	return true
}

// SetSourceSpeedOfSoundUnit sets the speed of sound expressed in the given
// length unit per second, converting into the engine's global unit.
func (e *Engine) SetSourceSpeedOfSoundUnit(src SourceID, c float32, unit LengthUnit) bool {
	if !unit.valid() {
		return false
	}
	e.mu.Lock()
	global := e.lengthUnit
	e.mu.Unlock()
	return e.SetSourceSpeedOfSound(src, ConvertLength(c, unit, global))
}

// GetSourceSpeedOfSound returns the per-source speed of sound.
func (e *Engine) GetSourceSpeedOfSound(src SourceID) (float32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return 0, false
	}
	return s.speedOfSound, true
}

// SetSourceFalloff sets the inverse-polynomial falloff coefficients
// 1/(constant + linear*d + quadratic*d^2). The cached attenuation at
// minimum distance is recomputed; coefficient sets producing a non-finite
// or numerically extreme cache are rejected without mutating the source.
func (e *Engine) SetSourceFalloff(src SourceID, constant, linear, quadratic float32) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	att := attenuationAt(constant, linear, quadratic, s.minDistance)
	if !falloffCacheOK(att) {
		return false
	}
	s.constantFalloff = constant
	s.linearFalloff = linear
	s.quadraticFalloff = quadratic
	s.attAtMinDistance = att
	return true
}

// GetSourceFalloff returns the falloff coefficients.
func (e *Engine) GetSourceFalloff(src SourceID) (constant, linear, quadratic float32, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, found := e.sources[src]
	if !found {
		return 0, 0, 0, false
	}
	return s.constantFalloff, s.linearFalloff, s.quadraticFalloff, true
}

// SetSourceFalloffDistances sets the distance window the falloff operates
// in: unity gain inside minDistance, clamped attenuation beyond
// maxDistance. Distances must be finite, non-negative and ordered.
func (e *Engine) SetSourceFalloffDistances(src SourceID, minDistance, maxDistance float32) bool {
	if minDistance < 0 || maxDistance < minDistance {
		return false
	}
	if !isFinite32(minDistance) || !isFinite32(maxDistance) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	att := attenuationAt(s.constantFalloff, s.linearFalloff, s.quadraticFalloff, minDistance)
	if !falloffCacheOK(att) {
		return false
	}
	s.minDistance = minDistance
	s.maxDistance = maxDistance
	s.attAtMinDistance = att
	return true
}

// GetSourceFalloffDistances returns the distance window.
func (e *Engine) GetSourceFalloffDistances(src SourceID) (minDistance, maxDistance float32, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, found := e.sources[src]
	if !found {
		return 0, 0, false
	}
	return s.minDistance, s.maxDistance, true
}

func falloffCacheOK(att float32) bool {
	if !isFinite32(att) {
		return false
	}
	a := math32.Abs(att)
	return a >= minFalloffCache && a <= maxFalloffCache
}

// SetSourceDirectivity configures the source's polar pattern: alpha blends
// from omnidirectional (0) to the full pattern (1), sharpness raises the
// pattern to a power in [1,8]. Out-of-range values are clamped.
func (e *Engine) SetSourceDirectivity(src SourceID, alpha, sharpness float32, pattern DirectivityType) bool {
	if !pattern.valid() || !isFinite32(alpha) || !isFinite32(sharpness) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.directivityAlpha = clamp32(alpha, 0, 1)
	s.directivitySharpness = clamp32(sharpness, 1, 8)
	s.directivityType = pattern
	return true
}

// GetSourceDirectivity returns the directivity parameters.
func (e *Engine) GetSourceDirectivity(src SourceID) (alpha, sharpness float32, pattern DirectivityType, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, found := e.sources[src]
	if !found {
		return 0, 0, Cardioid, false
	}
	return s.directivityAlpha, s.directivitySharpness, s.directivityType, true
}

// SetSourceRearAttenuation sets how much of the source's energy survives
// behind the listener, in [0,1]. Clamped.
func (e *Engine) SetSourceRearAttenuation(src SourceID, rear float32) bool {
	if !isFinite32(rear) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.rearAttenuation = clamp32(rear, 0, 1)
	return true
}

// GetSourceRearAttenuation returns the source rear attenuation.
func (e *Engine) GetSourceRearAttenuation(src SourceID) (float32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return 0, false
	}
	return s.rearAttenuation, true
}

// SetSourceCoordSysConvention names which matrix axes mean right, up and
// forward for the source's emitters.
func (e *Engine) SetSourceCoordSysConvention(src SourceID, conv CoordSysConvention) bool {
	if !conv.valid() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.obj.convention = conv
	return true
}

// GetSourceCoordSysConvention returns the source's convention.
func (e *Engine) GetSourceCoordSysConvention(src SourceID) (CoordSysConvention, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return XLeftYUpZFront, false
	}
	return s.obj.convention, true
}

// SetListenerCoordSysConvention names the listener's axis convention.
func (e *Engine) SetListenerCoordSysConvention(conv CoordSysConvention) bool {
	if !conv.valid() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener.obj.convention = conv
	return true
}

// GetListenerCoordSysConvention returns the listener's convention.
func (e *Engine) GetListenerCoordSysConvention() CoordSysConvention {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listener.obj.convention
}

// SetListenerRearAttenuation sets the listener-side rear attenuation in
// [0,1]. Clamped.
func (e *Engine) SetListenerRearAttenuation(rear float32) bool {
	if !isFinite32(rear) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener.rearAttenuation = clamp32(rear, 0, 1)
	return true
}

// GetListenerRearAttenuation returns the listener rear attenuation.
func (e *Engine) GetListenerRearAttenuation() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listener.rearAttenuation
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
