// ABOUTME: WAV decoder
// ABOUTME: Wraps go-audio/wav and normalizes integer PCM to float32

package codec

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// DecodeWAV decodes a RIFF/WAVE stream.
func DecodeWAV(r io.ReadSeeker) (PCM, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return PCM{}, fmt.Errorf("codec: not a valid wav file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return PCM{}, fmt.Errorf("codec: wav decode: %w", err)
	}

	bitDepth := int(d.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float32(s) / scale
	}

	return validate(PCM{
		Samples:    samples,
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
	})
}
