// ABOUTME: PCM buffer store entry
// ABOUTME: Immutable interleaved payload with channel count and sample rate

package aural

import "github.com/Resonate-Protocol/aural-go/pkg/sample"

// BufferID identifies a PCM buffer. Zero means "none".
type BufferID uint32

// buffer owns one uploaded PCM payload. Samples are interleaved per frame
// in the canonical format.
type buffer struct {
	data       []sample.Type
	channels   int
	sampleRate int
}

// frames returns the payload length in frames.
func (b *buffer) frames() int {
	if b.channels == 0 {
		return 0
	}
	return len(b.data) / b.channels
}
