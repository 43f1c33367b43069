// ABOUTME: Ogg Vorbis decoder
// ABOUTME: Wraps jfreymuth/oggvorbis, which already yields float32 PCM

package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// DecodeVorbis decodes an Ogg Vorbis stream.
func DecodeVorbis(r io.Reader) (PCM, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return PCM{}, fmt.Errorf("codec: vorbis decode: %w", err)
	}

	channels := dec.Channels()
	var samples []float32
	chunk := make([]float32, 4096)
	for {
		n, err := dec.Read(chunk)
		samples = append(samples, chunk[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return PCM{}, fmt.Errorf("codec: vorbis read: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return validate(PCM{
		Samples:    samples,
		Channels:   channels,
		SampleRate: dec.SampleRate(),
	})
}
