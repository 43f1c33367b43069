// ABOUTME: Engine lifecycle, handle stores and the public transport API
// ABOUTME: Owns the mix thread and the single mutex guarding all state

package aural

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Resonate-Protocol/aural-go/internal/backend"
	"github.com/Resonate-Protocol/aural-go/pkg/sample"
	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// defaultFrameCount is the mix block size when the backend does not report
// a preferred one.
const defaultFrameCount = 512

// StartupOptions configures Startup. Zero values select the defaults.
type StartupOptions struct {
	SampleRate          int  // default 48000
	Channels            int  // default 2
	ExclusiveIfPossible bool // request an exclusive-mode stream where supported
	Verbose             bool // log negotiated format on startup
}

// Engine mixes sources into a device backend. Create one with New, bring it
// up with Startup and tear it down with Shutdown.
type Engine struct {
	mu sync.Mutex

	backend    backend.Backend
	instanceID string

	outputRate     int
	outputChannels int
	frameCount     int
	blockDuration  time.Duration

	buffers      map[BufferID]*buffer
	sources      map[SourceID]*source
	nextBufferID uint32
	nextSourceID uint32

	listener   listener
	sceneInit  bool
	lengthUnit LengthUnit

	started  bool
	running  atomic.Bool
	loopDone chan struct{}
}

// New creates an engine. With enableAudio false the silent backend is
// installed and the full API stays usable without a device.
func New(enableAudio bool) *Engine {
	return &Engine{
		backend:      backend.Select(enableAudio),
		instanceID:   uuid.NewString(),
		buffers:      make(map[BufferID]*buffer),
		sources:      make(map[SourceID]*source),
		nextBufferID: 1,
		nextSourceID: 1,
		listener:     newListener(),
		lengthUnit:   Meter,
	}
}

// Startup initializes the device backend and spawns the mix thread. The
// backend may negotiate a different format than requested; query the
// Output* getters for actuals. Returns false, with a diagnostic on standard
// error, when the device cannot be initialized.
func (e *Engine) Startup(opts StartupOptions) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return false
	}

	if opts.SampleRate <= 0 {
		opts.SampleRate = 48000
	}
	if opts.Channels <= 0 {
		opts.Channels = 2
	}

	if !e.backend.Startup(opts.SampleRate, opts.Channels, opts.ExclusiveIfPossible, opts.Verbose) {
		log.Printf("aural: failed to initialize audio device")
		return false
	}

	e.outputRate = e.backend.SampleRate()
	e.outputChannels = e.backend.NumChannels()
	e.frameCount = e.backend.BufferSizeFrames()
	if e.frameCount <= 0 {
		e.frameCount = defaultFrameCount
	}
	e.blockDuration = time.Duration(float64(e.frameCount) / float64(e.outputRate) * float64(time.Second))

	if e.sceneInit {
		e.listener.obj.setNumChannels(e.outputChannels)
	}

	if opts.Verbose {
		log.Printf("aural engine %s: %d Hz, %d output channels, %d frames per mix, backend %q",
			e.instanceID, e.outputRate, e.outputChannels, e.frameCount, e.backend.Name())
	}

	e.started = true
	e.running.Store(true)
	e.loopDone = make(chan struct{})
	go e.audioLoop()

	return true
}

// Shutdown stops the mix thread, joins it and tears down the backend. Safe
// to call more than once.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	done := e.loopDone
	e.mu.Unlock()

	e.running.Store(false)
	<-done
	e.backend.Shutdown()
}

// audioLoop is the engine mix thread. Each tick runs the 3D solver and the
// mixer under the engine mutex, hands the block to the backend ring, then
// sleeps to wall-clock pacing.
func (e *Engine) audioLoop() {
	defer close(e.loopDone)

	nextWake := time.Now()
	for e.running.Load() {
		e.mu.Lock()
		if e.sceneInit {
			e.updateScene()
		}
		block := e.mixBlock()
		frames := e.frameCount
		e.mu.Unlock()

		e.backend.WriteSamples(block, frames)

		nextWake = nextWake.Add(e.blockDuration)
		time.Sleep(time.Until(nextWake))
	}
}

// OutputSampleRate returns the negotiated output rate, 0 before Startup.
func (e *Engine) OutputSampleRate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outputRate
}

// NumOutputChannels returns the negotiated channel count, 0 before Startup.
func (e *Engine) NumOutputChannels() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outputChannels
}

// NumBitsPerSample returns the canonical sample width in bits.
func (e *Engine) NumBitsPerSample() int {
	return e.backend.BitFormat()
}

// BackendName returns the device backend's name.
func (e *Engine) BackendName() string {
	return e.backend.Name()
}

// PrintBackendName writes the backend name to standard output.
func (e *Engine) PrintBackendName() {
	fmt.Println(e.BackendName())
}

// CreateBuffer allocates an empty buffer and returns its handle. Handles
// are never reused within a process.
func (e *Engine) CreateBuffer() BufferID {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := BufferID(e.nextBufferID)
	e.nextBufferID++
	e.buffers[id] = &buffer{}
	return id
}

// DestroyBuffer removes a buffer. Sources still referencing it self-heal in
// the mixer: they detach and stop on their next mix.
func (e *Engine) DestroyBuffer(id BufferID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.buffers[id]; !ok {
		return false
	}
	delete(e.buffers, id)
	return true
}

// setBufferData installs converted samples into a buffer.
func (e *Engine) setBufferData(id BufferID, data []sample.Type, channels, sampleRate int) bool {
	if channels != 1 && channels != 2 {
		return false
	}
	if sampleRate <= 0 {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	buf, ok := e.buffers[id]
	if !ok {
		return false
	}
	buf.data = data
	buf.channels = channels
	buf.sampleRate = sampleRate
	return true
}

// SetBufferDataUint8 uploads unsigned 8-bit PCM.
func (e *Engine) SetBufferDataUint8(id BufferID, data []uint8, channels, sampleRate int) bool {
	return e.setBufferData(id, sample.ConvertUint8(data), channels, sampleRate)
}

// SetBufferDataInt8 uploads signed 8-bit PCM.
func (e *Engine) SetBufferDataInt8(id BufferID, data []int8, channels, sampleRate int) bool {
	return e.setBufferData(id, sample.ConvertInt8(data), channels, sampleRate)
}

// SetBufferDataInt16 uploads signed 16-bit PCM.
func (e *Engine) SetBufferDataInt16(id BufferID, data []int16, channels, sampleRate int) bool {
	return e.setBufferData(id, sample.ConvertInt16(data), channels, sampleRate)
}

// SetBufferDataFloat32 uploads 32-bit float PCM.
func (e *Engine) SetBufferDataFloat32(id BufferID, data []float32, channels, sampleRate int) bool {
	return e.setBufferData(id, sample.ConvertFloat32(data), channels, sampleRate)
}

// CreateSource allocates a source and returns its handle.
func (e *Engine) CreateSource() SourceID {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := SourceID(e.nextSourceID)
	e.nextSourceID++
	e.sources[id] = newSource()
	return id
}

// DestroySource stops and removes a source. Its handle becomes invalid;
// any attached buffer is left untouched.
func (e *Engine) DestroySource(id SourceID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sources[id]; !ok {
		return false
	}
	delete(e.sources, id)
	return true
}

// AttachBufferToSource binds a buffer to a source. Playback stops, the
// cursor rewinds and the paused flag clears.
func (e *Engine) AttachBufferToSource(src SourceID, buf BufferID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	b, ok := e.buffers[buf]
	if !ok {
		return false
	}
	s.bufferID = buf
	s.playing = false
	s.paused = false
	s.playPos = 0
	if b.channels > 0 && s.obj.numChannels() != b.channels {
		s.obj.setNumChannels(b.channels)
	}
	return true
}

// DetachBufferFromSource unbinds the buffer, stops playback and rewinds.
func (e *Engine) DetachBufferFromSource(src SourceID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.bufferID = 0
	s.playing = false
	s.paused = false
	s.playPos = 0
	return true
}

// PlaySource starts playback. A paused source resumes from its current
// position; anything else rewinds to the beginning.
func (e *Engine) PlaySource(src SourceID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	if s.paused {
		s.paused = false
	} else {
		s.playPos = 0
	}
	s.playing = true
	return true
}

// PauseSource suspends playback, keeping the cursor.
func (e *Engine) PauseSource(src SourceID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	if s.playing {
		s.paused = true
	}
	return true
}

// ResumeSource clears the paused flag, continuing from the kept cursor.
func (e *Engine) ResumeSource(src SourceID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.paused = false
	return true
}

// StopSource halts playback and rewinds to the beginning.
func (e *Engine) StopSource(src SourceID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.playing = false
	s.paused = false
	s.playPos = 0
	return true
}

// IsSourcePlaying reports whether the source is actively playing. Paused
// sources report false.
func (e *Engine) IsSourcePlaying(src SourceID) (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false, false
	}
	return s.playing && !s.paused, true
}

// IsSourcePaused reports the paused flag.
func (e *Engine) IsSourcePaused(src SourceID) (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false, false
	}
	return s.paused, true
}

// GetSourcePlayPos returns the fractional frame cursor into the attached
// buffer.
func (e *Engine) GetSourcePlayPos(src SourceID) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return 0, false
	}
	return s.playPos, true
}

// SetSourceGain sets the linear gain. Negative or non-finite gains are
// rejected.
func (e *Engine) SetSourceGain(src SourceID, gain float32) bool {
	if gain < 0 || !isFinite32(gain) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.gain = gain
	return true
}

// GetSourceGain returns the linear gain.
func (e *Engine) GetSourceGain(src SourceID) (float32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return 0, false
	}
	return s.gain, true
}

// SetSourcePitch sets the playback rate multiplier. Must be positive and
// finite.
func (e *Engine) SetSourcePitch(src SourceID, pitch float32) bool {
	if pitch <= 0 || !isFinite32(pitch) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.pitch = pitch
	return true
}

// GetSourcePitch returns the playback rate multiplier.
func (e *Engine) GetSourcePitch(src SourceID) (float32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return 0, false
	}
	return s.pitch, true
}

// SetSourceLooping toggles loop-on-end.
func (e *Engine) SetSourceLooping(src SourceID, loop bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.looping = loop
	return true
}

// GetSourceLooping reports loop-on-end.
func (e *Engine) GetSourceLooping(src SourceID) (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false, false
	}
	return s.looping, true
}

// SetSourcePanning sets the stereo pan in [0,1]: 0 is full left, 1 full
// right. Panning only applies while the attached buffer is stereo.
func (e *Engine) SetSourcePanning(src SourceID, pan float32) bool {
	if pan < 0 || pan > 1 || !isFinite32(pan) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	p := pan
	s.pan = &p
	return true
}

// GetSourcePanning returns the pan, with ok=false when no pan is set.
func (e *Engine) GetSourcePanning(src SourceID) (float32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok || s.pan == nil {
		return 0, false
	}
	return *s.pan, true
}

// RemoveSourcePanning clears the pan so both channels pass at full weight.
func (e *Engine) RemoveSourcePanning(src SourceID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sources[src]
	if !ok {
		return false
	}
	s.pan = nil
	return true
}

func isFinite32(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
