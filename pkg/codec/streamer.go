// ABOUTME: Bridge from beep streamers into engine upload format
// ABOUTME: Drains a beep.Streamer fully into interleaved float32 PCM

package codec

import (
	"fmt"

	"github.com/gopxl/beep/v2"
)

// FromStreamer drains a beep.Streamer to completion and returns the result
// in upload format. Streamers with one channel in their format collapse to
// mono; everything else is kept as stereo.
func FromStreamer(s beep.Streamer, format beep.Format) (PCM, error) {
	channels := 2
	if format.NumChannels == 1 {
		channels = 1
	}

	var samples []float32
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			if channels == 1 {
				samples = append(samples, float32(frame[0]))
			} else {
				samples = append(samples, float32(frame[0]), float32(frame[1]))
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return PCM{}, fmt.Errorf("codec: streamer: %w", err)
	}

	return validate(PCM{
		Samples:    samples,
		Channels:   channels,
		SampleRate: int(format.SampleRate),
	})
}
