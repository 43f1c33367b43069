// ABOUTME: Decoded-PCM carrier type and extension-based dispatch
// ABOUTME: Load reads a file and routes it to the right decoder

package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/aural-go/pkg/aural"
)

// PCM is decoded audio in the engine's upload format: interleaved float32
// frames.
type PCM struct {
	Samples    []float32
	Channels   int
	SampleRate int
}

// Frames returns the decoded length in frames.
func (p PCM) Frames() int {
	if p.Channels == 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Upload installs the decoded audio into an engine buffer.
func (p PCM) Upload(e *aural.Engine, id aural.BufferID) bool {
	return e.SetBufferDataFloat32(id, p.Samples, p.Channels, p.SampleRate)
}

// Load reads and decodes a file, picking the decoder from the extension.
func Load(path string) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, fmt.Errorf("codec: open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return DecodeWAV(f)
	case ".mp3":
		return DecodeMP3(f)
	case ".flac":
		return DecodeFLAC(f)
	case ".ogg", ".oga":
		return DecodeVorbis(f)
	}
	return PCM{}, fmt.Errorf("codec: unsupported file type %q", filepath.Ext(path))
}

// validate rejects decoded audio the engine cannot host.
func validate(p PCM) (PCM, error) {
	if p.Channels != 1 && p.Channels != 2 {
		return PCM{}, fmt.Errorf("codec: unsupported channel count %d", p.Channels)
	}
	if p.SampleRate <= 0 {
		return PCM{}, fmt.Errorf("codec: invalid sample rate %d", p.SampleRate)
	}
	return p, nil
}
