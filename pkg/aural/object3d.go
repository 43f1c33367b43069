// ABOUTME: Per-channel 3D emitter state for sources and the listener
// ABOUTME: Rotation/position/velocity per channel plus solver parameter tables

package aural

import "github.com/Resonate-Protocol/aural-go/pkg/linalg"

// param3D is one solver result for a (source-channel, listener-channel)
// pair, consumed by the 3D mix path.
type param3D struct {
	gain         float32
	dopplerShift float32
}

// state3D is the pose of one channel emitter in world space.
type state3D struct {
	rotation linalg.Mtx3
	posWorld linalg.Vec3
	velWorld linalg.Vec3

	// listenerChParams has one entry per listener channel; the solver
	// resizes it every tick so stale entries never leak.
	listenerChParams []param3D
}

func newState3D() state3D {
	return state3D{rotation: linalg.Mtx3Identity}
}

// object3D is the set of channel emitters for one source or the listener.
type object3D struct {
	channelState []state3D
	enabled      bool
	convention   CoordSysConvention
}

func newObject3D() object3D {
	// +Z forward by default.
	return object3D{convention: XLeftYUpZFront}
}

func (o *object3D) numChannels() int {
	return len(o.channelState)
}

// setNumChannels resizes the emitter list, preserving existing channels.
func (o *object3D) setNumChannels(n int) {
	if n < 0 {
		n = 0
	}
	for len(o.channelState) < n {
		o.channelState = append(o.channelState, newState3D())
	}
	o.channelState = o.channelState[:n]
}

// state returns the emitter for ch. A populated object answers out-of-range
// channels with channel 0, which lets a mono emitter serve any channel
// count. An empty object has no state.
func (o *object3D) state(ch int) *state3D {
	if len(o.channelState) == 0 {
		return nil
	}
	if len(o.channelState) == 1 || ch < 0 || ch >= len(o.channelState) {
		return &o.channelState[0]
	}
	return &o.channelState[ch]
}

func (o *object3D) setChannelState(ch int, rot linalg.Mtx3, pos, vel linalg.Vec3) bool {
	if ch < 0 || ch >= len(o.channelState) {
		return false
	}
	s := &o.channelState[ch]
	s.rotation = rot
	s.posWorld = pos
	s.velWorld = vel
	return true
}

func (o *object3D) channelStateAt(ch int) (rot linalg.Mtx3, pos, vel linalg.Vec3, ok bool) {
	if ch < 0 || ch >= len(o.channelState) {
		return linalg.Mtx3Identity, linalg.Vec3Zero, linalg.Vec3Zero, false
	}
	s := o.channelState[ch]
	return s.rotation, s.posWorld, s.velWorld, true
}

// dirRight returns channel ch's semantic right direction in world space.
func (o *object3D) dirRight(ch int) linalg.Vec3 {
	s := o.state(ch)
	if s == nil {
		return linalg.Vec3Zero
	}
	axis, _ := s.rotation.Column(linalg.AxisX)
	return axis.Scale(o.convention.rightSign())
}

// dirUp returns channel ch's semantic up direction in world space.
func (o *object3D) dirUp(ch int) linalg.Vec3 {
	s := o.state(ch)
	if s == nil {
		return linalg.Vec3Zero
	}
	axis, _ := s.rotation.Column(linalg.AxisY)
	return axis.Scale(o.convention.upSign())
}

// dirForward returns channel ch's semantic forward direction in world space.
func (o *object3D) dirForward(ch int) linalg.Vec3 {
	s := o.state(ch)
	if s == nil {
		return linalg.Vec3Zero
	}
	axis, _ := s.rotation.Column(linalg.AxisZ)
	return axis.Scale(o.convention.forwardSign())
}

// paramAt returns the solver result for a channel pairing, or the neutral
// parameters when the solver has not produced one yet.
func (o *object3D) paramAt(srcCh, listenerCh int) param3D {
	s := o.state(srcCh)
	if s == nil || listenerCh < 0 || listenerCh >= len(s.listenerChParams) {
		return param3D{gain: 1, dopplerShift: 1}
	}
	return s.listenerChParams[listenerCh]
}

// resizeParams grows or shrinks the parameter table to the listener's
// channel count. New entries start neutral.
func (s *state3D) resizeParams(n int) {
	for len(s.listenerChParams) < n {
		s.listenerChParams = append(s.listenerChParams, param3D{gain: 1, dopplerShift: 1})
	}
	s.listenerChParams = s.listenerChParams[:n]
}
