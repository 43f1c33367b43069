// ABOUTME: MP3 decoder
// ABOUTME: Wraps hajimehoshi/go-mp3, which emits 16-bit stereo PCM

package codec

import (
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an MP3 stream. go-mp3 always produces 16-bit
// little-endian stereo at the file's sample rate.
func DecodeMP3(r io.Reader) (PCM, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return PCM{}, fmt.Errorf("codec: mp3 decode: %w", err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return PCM{}, fmt.Errorf("codec: mp3 read: %w", err)
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(raw[i*2]) | int16(raw[i*2+1])<<8
		samples[i] = float32(v) / 32768
	}

	return validate(PCM{
		Samples:    samples,
		Channels:   2,
		SampleRate: d.SampleRate(),
	})
}
