// ABOUTME: Silent fallback backend
// ABOUTME: Accepts and discards samples when no audio device is available

package backend

import "github.com/Resonate-Protocol/aural-go/pkg/sample"

// NoAudio is the silent backend. It negotiates whatever was requested and
// discards every sample, which keeps the engine's mix loop running with the
// full API available.
type NoAudio struct {
	sampleRate int
	channels   int
}

// NewNoAudio creates the silent backend.
func NewNoAudio() *NoAudio {
	return &NoAudio{}
}

// Startup records the requested format verbatim.
func (n *NoAudio) Startup(requestRate, requestChannels int, exclusive, verbose bool) bool {
	n.sampleRate = requestRate
	n.channels = requestChannels
	return true
}

// Shutdown is a no-op.
func (n *NoAudio) Shutdown() {}

// WriteSamples discards the block.
func (n *NoAudio) WriteSamples(data []sample.Type, frames int) bool {
	return true
}

func (n *NoAudio) SampleRate() int       { return n.sampleRate }
func (n *NoAudio) NumChannels() int      { return n.channels }
func (n *NoAudio) BitFormat() int        { return sample.Bits }
func (n *NoAudio) BufferSizeFrames() int { return 0 }
func (n *NoAudio) Name() string          { return "No Audio" }
