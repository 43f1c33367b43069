// ABOUTME: Tests for the positional scene solver
// ABOUTME: Doppler, distance falloff, panning, directivity and rear weights

package aural

import (
	"testing"

	"github.com/Resonate-Protocol/aural-go/pkg/linalg"
	"github.com/chewxy/math32"
)

// newSceneEngine returns an engine with a live 3D scene, a stereo listener
// with both ears at the origin-adjacent positions given, and one mono
// source placed at srcPos.
func newSceneEngine(t *testing.T, srcPos, srcVel linalg.Vec3) (*Engine, SourceID) {
	t.Helper()
	e := newTestEngine(48000, 2, 64)
	e.Init3DScene()
	e.listener.obj.setNumChannels(2)
	e.SetListenerCoordSysConvention(XRightYUpZBack)
	e.SetListener3DStateChannel(0, linalg.Mtx3Identity, linalg.Vec3{X: -0.1}, linalg.Vec3Zero)
	e.SetListener3DStateChannel(1, linalg.Mtx3Identity, linalg.Vec3{X: 0.1}, linalg.Vec3Zero)

	buf := monoBuffer(e, make([]float32, 48000), 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.EnableSource3DAudio(src, true)
	e.SetSource3DStateChannel(src, 0, linalg.Mtx3Identity, srcPos, srcVel)
	return e, src
}

func sourceParams(e *Engine, src SourceID) []param3D {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.sources[src]
	return append([]param3D(nil), s.obj.channelState[0].listenerChParams...)
}

func TestSolverResizesParamTables(t *testing.T) {
	e, src := newSceneEngine(t, linalg.Vec3{Z: -5}, linalg.Vec3Zero)
	e.updateScene()
	params := sourceParams(e, src)
	if len(params) != 2 {
		t.Fatalf("param table has %d entries, want 2", len(params))
	}
}

func TestDopplerStationaryIsUnity(t *testing.T) {
	e, src := newSceneEngine(t, linalg.Vec3{X: 3, Y: 1, Z: -2}, linalg.Vec3Zero)
	e.SetSourceSpeedOfSound(src, 343)
	e.updateScene()
	for i, p := range sourceParams(e, src) {
		if p.dopplerShift != 1 {
			t.Errorf("param %d doppler = %v, want exactly 1", i, p.dopplerShift)
		}
	}
}

func TestDopplerSignOnApproachAndRecession(t *testing.T) {
	// Moving toward the listener raises the shift above 1.
	e, src := newSceneEngine(t, linalg.Vec3{X: 10}, linalg.Vec3{X: -5})
	e.SetSourceSpeedOfSound(src, 343)
	e.updateScene()
	for _, p := range sourceParams(e, src) {
		if p.dopplerShift <= 1 {
			t.Errorf("approaching source doppler = %v, want > 1", p.dopplerShift)
		}
	}

	// Moving away drops it below 1.
	e2, src2 := newSceneEngine(t, linalg.Vec3{X: 10}, linalg.Vec3{X: 5})
	e2.SetSourceSpeedOfSound(src2, 343)
	e2.updateScene()
	for _, p := range sourceParams(e2, src2) {
		if p.dopplerShift >= 1 {
			t.Errorf("receding source doppler = %v, want < 1", p.dopplerShift)
		}
	}
}

func TestDopplerDisabledWithZeroSpeedOfSound(t *testing.T) {
	e, src := newSceneEngine(t, linalg.Vec3{X: 10}, linalg.Vec3{X: -300})
	e.updateScene()
	for _, p := range sourceParams(e, src) {
		if p.dopplerShift != 1 {
			t.Errorf("doppler = %v with speed of sound 0, want 1", p.dopplerShift)
		}
	}
}

func TestDopplerClamped(t *testing.T) {
	e, src := newSceneEngine(t, linalg.Vec3{X: 10}, linalg.Vec3{X: -340})
	e.SetSourceSpeedOfSound(src, 343)
	e.updateScene()
	for _, p := range sourceParams(e, src) {
		if p.dopplerShift > maxDopplerShift || p.dopplerShift < minDopplerShift {
			t.Errorf("doppler = %v outside [%v, %v]", p.dopplerShift, minDopplerShift, maxDopplerShift)
		}
	}
}

func TestDistanceGainMonotonic(t *testing.T) {
	s := newSource()
	prev := float32(2)
	for d := float32(1); d < 500; d += 7 {
		g := s.distanceGainAt(d)
		if g > prev {
			t.Fatalf("gain at %v is %v, rose above %v", d, g, prev)
		}
		prev = g
	}
}

func TestDistanceGainWindow(t *testing.T) {
	s := newSource()
	if g := s.distanceGainAt(0.5); g != 1 {
		t.Errorf("gain inside min distance = %v, want 1", g)
	}
	if g := s.distanceGainAt(s.minDistance); math32.Abs(g-1) > 1e-6 {
		t.Errorf("gain at min distance = %v, want 1", g)
	}
	// Beyond max the gain freezes.
	gMax := s.distanceGainAt(s.maxDistance)
	if g := s.distanceGainAt(s.maxDistance * 3); g != gMax {
		t.Errorf("gain past max = %v, want frozen at %v", g, gMax)
	}
}

func TestListenerPanWeights(t *testing.T) {
	// Source far to the listener's right: the right ear dominates.
	e, src := newSceneEngine(t, linalg.Vec3{X: 20}, linalg.Vec3Zero)
	e.updateScene()
	params := sourceParams(e, src)
	if params[1].gain <= params[0].gain {
		t.Errorf("right ear %v not louder than left %v for source at +X", params[1].gain, params[0].gain)
	}

	// Mirrored on the left.
	e2, src2 := newSceneEngine(t, linalg.Vec3{X: -20}, linalg.Vec3Zero)
	e2.updateScene()
	params2 := sourceParams(e2, src2)
	if params2[0].gain <= params2[1].gain {
		t.Errorf("left ear %v not louder than right %v for source at -X", params2[0].gain, params2[1].gain)
	}
}

func TestDirectivityFacingListener(t *testing.T) {
	// With alpha=1 any pattern passes at full weight when the source's
	// forward axis points straight at the listener.
	for _, pattern := range []DirectivityType{Cardioid, SuperCardioid, HalfRectifiedDipole, Dipole} {
		// Source ahead of the listener at -Z (listener faces -Z under
		// XRight_YUp_ZBack); source faces +Z back at the listener.
		e, src := newSceneEngine(t, linalg.Vec3{Z: -10}, linalg.Vec3Zero)
		e.SetSourceDirectivity(src, 1, 1, pattern)
		e.updateScene()
		withDir := sourceParams(e, src)

		e2, src2 := newSceneEngine(t, linalg.Vec3{Z: -10}, linalg.Vec3Zero)
		e2.updateScene()
		omni := sourceParams(e2, src2)

		for i := range withDir {
			if math32.Abs(withDir[i].gain-omni[i].gain) > 1e-5 {
				t.Errorf("%v at 0 degrees: gain %v, want %v", pattern, withDir[i].gain, omni[i].gain)
			}
		}
	}
}

func TestCardioidRejectsRear(t *testing.T) {
	// Source ahead, but rotated to face away from the listener: a full
	// cardioid mutes it.
	e, src := newSceneEngine(t, linalg.Vec3{Z: -10}, linalg.Vec3Zero)
	e.SetSourceDirectivity(src, 1, 1, Cardioid)
	e.SetSource3DStateChannel(src, 0, linalg.RotationY(math32.Pi), linalg.Vec3{Z: -10}, linalg.Vec3Zero)
	e.updateScene()
	for i, p := range sourceParams(e, src) {
		if p.gain > 1e-4 {
			t.Errorf("param %d gain = %v, want 0 for reversed cardioid", i, p.gain)
		}
	}
}

func TestRearAttenuationBehindListener(t *testing.T) {
	// Under XRight_YUp_ZBack the listener faces -Z, so +Z is behind.
	front, srcF := newSceneEngine(t, linalg.Vec3{Z: -10}, linalg.Vec3Zero)
	front.updateScene()
	behind, srcB := newSceneEngine(t, linalg.Vec3{Z: 10}, linalg.Vec3Zero)
	behind.updateScene()

	fp := sourceParams(front, srcF)
	bp := sourceParams(behind, srcB)
	fTotal := fp[0].gain + fp[1].gain
	bTotal := bp[0].gain + bp[1].gain
	if bTotal >= fTotal {
		t.Errorf("behind total %v not quieter than front total %v", bTotal, fTotal)
	}
}

func TestCoincidentEmitterKeepsPreviousParams(t *testing.T) {
	e, src := newSceneEngine(t, linalg.Vec3{X: 5}, linalg.Vec3Zero)
	e.updateScene()
	before := sourceParams(e, src)

	// Drop the emitter exactly onto the left ear; that pairing skips but
	// keeps its previous value.
	e.SetSource3DStateChannel(src, 0, linalg.Mtx3Identity, linalg.Vec3{X: -0.1}, linalg.Vec3Zero)
	e.updateScene()
	after := sourceParams(e, src)
	if after[0] != before[0] {
		t.Errorf("coincident pairing overwrote params: %v -> %v", before[0], after[0])
	}
}

func TestFalloffMutatorRejectsExtremes(t *testing.T) {
	e := New(false)
	src := e.CreateSource()

	if e.SetSourceFalloff(src, 0, 0, 0) {
		t.Error("accepted all-zero coefficients (infinite attenuation)")
	}
	if e.SetSourceFalloff(src, math32.NaN(), 1, 1) {
		t.Error("accepted NaN coefficient")
	}
	if e.SetSourceFalloff(src, 1e9, 0, 0) {
		t.Error("accepted numerically extreme coefficients")
	}
	if !e.SetSourceFalloff(src, 1, 0.2, 0.08) {
		t.Error("rejected the default coefficients")
	}

	// Rejected mutations leave the previous state untouched.
	c, l, q, _ := e.GetSourceFalloff(src)
	e.SetSourceFalloff(src, math32.Inf(1), 0, 0)
	c2, l2, q2, _ := e.GetSourceFalloff(src)
	if c != c2 || l != l2 || q != q2 {
		t.Error("rejected mutation altered coefficients")
	}
}

func TestFalloffDistanceValidation(t *testing.T) {
	e := New(false)
	src := e.CreateSource()
	if e.SetSourceFalloffDistances(src, -1, 10) {
		t.Error("accepted negative min distance")
	}
	if e.SetSourceFalloffDistances(src, 10, 5) {
		t.Error("accepted max < min")
	}
	if !e.SetSourceFalloffDistances(src, 2, 300) {
		t.Error("rejected valid distances")
	}
	min, max, _ := e.GetSourceFalloffDistances(src)
	if min != 2 || max != 300 {
		t.Errorf("distances = (%v, %v)", min, max)
	}
}

func TestSource3DCallsRejectedBeforeSceneInit(t *testing.T) {
	e := newTestEngine(48000, 2, 32)
	buf := monoBuffer(e, make([]float32, 1000), 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	if e.EnableSource3DAudio(src, true) {
		t.Error("EnableSource3DAudio succeeded before Init3DScene")
	}
	if e.SetSource3DStateChannel(src, 0, linalg.Mtx3Identity, linalg.Vec3{X: 1}, linalg.Vec3Zero) {
		t.Error("SetSource3DStateChannel succeeded before Init3DScene")
	}
}
