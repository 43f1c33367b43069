// ABOUTME: Tests for the flat mixing path
// ABOUTME: Silence, identity, gain linearity, looping, pitch and self-healing

package aural

import (
	"math"
	"testing"
)

func TestSilenceWithNoSources(t *testing.T) {
	e := newTestEngine(48000, 2, 128)
	block := e.mixBlock()
	if len(block) != 128*2 {
		t.Fatalf("block length %d, want %d", len(block), 128*2)
	}
	for i, s := range block {
		if s != 0 {
			t.Fatalf("block[%d] = %v, want 0", i, s)
		}
	}
}

func TestSingleSourceIdentity(t *testing.T) {
	// One mono source, unity gain and pitch, matching rates, mono output:
	// the output is the source verbatim.
	e := newTestEngine(48000, 1, 64)
	data := make([]float32, 256)
	for i := range data {
		data[i] = float32(i%17-8) / 16
	}
	buf := monoBuffer(e, data, 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.PlaySource(src)

	block := e.mixBlock()
	for i := 0; i < 64; i++ {
		if float32(block[i]) != data[i] {
			t.Fatalf("block[%d] = %v, want %v", i, block[i], data[i])
		}
	}

	// Second tick continues where the first left off.
	block = e.mixBlock()
	for i := 0; i < 64; i++ {
		if float32(block[i]) != data[64+i] {
			t.Fatalf("tick 2 block[%d] = %v, want %v", i, block[i], data[64+i])
		}
	}
}

func TestGainLinearity(t *testing.T) {
	data := make([]float32, 256)
	for i := range data {
		data[i] = 0.1 * float32(i%5) / 4
	}

	mixWithGain := func(gain float32) []float32 {
		e := newTestEngine(48000, 1, 64)
		buf := monoBuffer(e, data, 48000)
		src := e.CreateSource()
		e.AttachBufferToSource(src, buf)
		e.SetSourceGain(src, gain)
		e.PlaySource(src)
		block := e.mixBlock()
		out := make([]float32, len(block))
		for i, s := range block {
			out[i] = float32(s)
		}
		return out
	}

	single := mixWithGain(0.2)
	double := mixWithGain(0.4)
	for i := range single {
		if math.Abs(float64(double[i])-2*float64(single[i])) > 1e-6 {
			t.Fatalf("sample %d: gain 0.4 gave %v, gain 0.2 gave %v", i, double[i], single[i])
		}
	}
}

func TestLoopContinuity(t *testing.T) {
	// A looping source of length L read for 2L+k frames equals the source
	// repeated from the top.
	const L = 48
	data := make([]float32, L)
	for i := range data {
		data[i] = float32(i+1) / float32(L+1)
	}

	e := newTestEngine(48000, 1, L) // one loop per tick
	buf := monoBuffer(e, data, 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.SetSourceLooping(src, true)
	e.PlaySource(src)

	var out []float32
	for tick := 0; tick < 3; tick++ {
		block := e.mixBlock()
		for _, s := range block {
			out = append(out, float32(s))
		}
	}

	for i := 0; i < 2*L+L/2; i++ {
		if out[i] != data[i%L] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], data[i%L])
		}
	}
	if playing, _ := e.IsSourcePlaying(src); !playing {
		t.Error("looping source stopped")
	}
}

func TestSourceStopsAtBufferEnd(t *testing.T) {
	e := newTestEngine(48000, 1, 64)
	buf := monoBuffer(e, make([]float32, 40), 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.PlaySource(src)

	e.mixBlock()
	if playing, _ := e.IsSourcePlaying(src); playing {
		t.Error("source still playing past buffer end")
	}
}

func TestPitchRatioAdvancesCursor(t *testing.T) {
	// play_pos advances by N * pitch * bufRate/outRate over N output frames.
	e := newTestEngine(48000, 1, 64)
	buf := monoBuffer(e, make([]float32, 4000), 30000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.SetSourcePitch(src, 1.5)
	e.PlaySource(src)

	e.mixBlock()
	want := 64 * 1.5 * 30000.0 / 48000.0
	pos, _ := e.GetSourcePlayPos(src)
	if math.Abs(pos-want) > 1e-9 {
		t.Errorf("play pos = %v, want %v", pos, want)
	}
}

func TestMonoToStereoDuplicates(t *testing.T) {
	e := newTestEngine(48000, 2, 32)
	data := make([]float32, 64)
	for i := range data {
		data[i] = float32(i) / 100
	}
	buf := monoBuffer(e, data, 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.PlaySource(src)

	block := e.mixBlock()
	for f := 0; f < 32; f++ {
		l, r := float32(block[f*2]), float32(block[f*2+1])
		if l != r {
			t.Fatalf("frame %d: L %v != R %v", f, l, r)
		}
		if l != data[f] {
			t.Fatalf("frame %d: got %v, want %v", f, l, data[f])
		}
	}
}

func TestStereoToMonoAverages(t *testing.T) {
	e := newTestEngine(48000, 1, 16)
	id := e.CreateBuffer()
	data := make([]float32, 64)
	for f := 0; f < 32; f++ {
		data[f*2] = 0.4  // left
		data[f*2+1] = 0.2 // right
	}
	e.SetBufferDataFloat32(id, data, 2, 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, id)
	e.PlaySource(src)

	block := e.mixBlock()
	for f := 0; f < 16; f++ {
		if got := float64(block[f]); math.Abs(got-0.3) > 1e-6 {
			t.Fatalf("frame %d = %v, want 0.3", f, got)
		}
	}
}

func TestPanningOnStereoBuffer(t *testing.T) {
	e := newTestEngine(48000, 2, 16)
	id := e.CreateBuffer()
	data := make([]float32, 64)
	for i := range data {
		data[i] = 0.5
	}
	e.SetBufferDataFloat32(id, data, 2, 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, id)
	e.SetSourcePanning(src, 0.25)
	e.PlaySource(src)

	block := e.mixBlock()
	l, r := float64(block[0]), float64(block[1])
	if math.Abs(l-0.5*0.75) > 1e-6 {
		t.Errorf("left = %v, want %v", l, 0.5*0.75)
	}
	if math.Abs(r-0.5*0.25) > 1e-6 {
		t.Errorf("right = %v, want %v", r, 0.5*0.25)
	}
}

func TestPanningIgnoredOnMonoBuffer(t *testing.T) {
	e := newTestEngine(48000, 2, 8)
	buf := monoBuffer(e, []float32{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.SetSourcePanning(src, 0)
	e.PlaySource(src)

	block := e.mixBlock()
	if float64(block[0]) != 0.5 || float64(block[1]) != 0.5 {
		t.Errorf("mono source panned: L=%v R=%v", block[0], block[1])
	}
}

func TestAccumulationSaturates(t *testing.T) {
	e := newTestEngine(48000, 1, 8)
	data := []float32{0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9}
	for i := 0; i < 3; i++ {
		buf := monoBuffer(e, data, 48000)
		src := e.CreateSource()
		e.AttachBufferToSource(src, buf)
		e.PlaySource(src)
	}

	block := e.mixBlock()
	for f := 0; f < 8; f++ {
		if float64(block[f]) > 1 {
			t.Fatalf("frame %d = %v, exceeds canonical range", f, block[f])
		}
	}
}

func TestSelfHealOnDestroyedBuffer(t *testing.T) {
	e := newTestEngine(48000, 1, 32)
	buf := monoBuffer(e, make([]float32, 1000), 48000)
	src := e.CreateSource()
	e.AttachBufferToSource(src, buf)
	e.PlaySource(src)
	e.mixBlock()

	if !e.DestroyBuffer(buf) {
		t.Fatal("destroy failed")
	}

	block := e.mixBlock()
	for i, s := range block {
		if s != 0 {
			t.Fatalf("block[%d] = %v after buffer destroy, want silence", i, s)
		}
	}
	if playing, _ := e.IsSourcePlaying(src); playing {
		t.Error("source still playing after self-heal")
	}

	e.mu.Lock()
	if e.sources[src].bufferID != 0 {
		t.Error("source still references destroyed buffer")
	}
	e.mu.Unlock()
}

func TestDetachedSourceIsSilent(t *testing.T) {
	e := newTestEngine(48000, 1, 16)
	src := e.CreateSource()
	e.PlaySource(src)
	block := e.mixBlock()
	for i, s := range block {
		if s != 0 {
			t.Fatalf("block[%d] = %v for detached source", i, s)
		}
	}
}
