// ABOUTME: Tests for the codec package
// ABOUTME: Decodes a handcrafted WAV and bridges a synthetic beep streamer

package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
)

// buildWAV assembles a minimal PCM RIFF/WAVE byte stream.
func buildWAV(samples []int16, channels, sampleRate int) []byte {
	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}

	var buf bytes.Buffer
	dataLen := uint32(data.Len())
	byteRate := uint32(sampleRate * channels * 2)
	blockAlign := uint16(channels * 2)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, uint16(16)) // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func TestDecodeWAV(t *testing.T) {
	in := []int16{0, 8192, -8192, 16384, -16384, 32767}
	raw := buildWAV(in, 1, 22050)

	pcm, err := DecodeWAV(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if pcm.Channels != 1 {
		t.Errorf("Channels = %d, want 1", pcm.Channels)
	}
	if pcm.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", pcm.SampleRate)
	}
	if pcm.Frames() != len(in) {
		t.Fatalf("Frames = %d, want %d", pcm.Frames(), len(in))
	}
	for i, want := range in {
		got := pcm.Samples[i]
		if math.Abs(float64(got)-float64(want)/32768) > 1e-4 {
			t.Errorf("sample %d = %v, want ~%v", i, got, float64(want)/32768)
		}
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV(bytes.NewReader([]byte("definitely not a wav"))); err == nil {
		t.Error("expected error for non-wav input")
	}
}

// toneStreamer emits a fixed number of constant frames.
type toneStreamer struct {
	remaining int
	value     float64
}

func (s *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.remaining == 0 {
		return 0, false
	}
	n := len(samples)
	if n > s.remaining {
		n = s.remaining
	}
	for i := 0; i < n; i++ {
		samples[i][0] = s.value
		samples[i][1] = -s.value
	}
	s.remaining -= n
	return n, true
}

func (s *toneStreamer) Err() error { return nil }

func TestFromStreamerStereo(t *testing.T) {
	src := &toneStreamer{remaining: 1000, value: 0.5}
	format := beep.Format{SampleRate: beep.SampleRate(44100), NumChannels: 2, Precision: 2}

	pcm, err := FromStreamer(src, format)
	if err != nil {
		t.Fatalf("FromStreamer: %v", err)
	}
	if pcm.Channels != 2 {
		t.Errorf("Channels = %d, want 2", pcm.Channels)
	}
	if pcm.Frames() != 1000 {
		t.Errorf("Frames = %d, want 1000", pcm.Frames())
	}
	if pcm.Samples[0] != 0.5 || pcm.Samples[1] != -0.5 {
		t.Errorf("first frame = (%v, %v), want (0.5, -0.5)", pcm.Samples[0], pcm.Samples[1])
	}
}

func TestFromStreamerMono(t *testing.T) {
	src := &toneStreamer{remaining: 10, value: 0.25}
	format := beep.Format{SampleRate: beep.SampleRate(8000), NumChannels: 1, Precision: 2}

	pcm, err := FromStreamer(src, format)
	if err != nil {
		t.Fatalf("FromStreamer: %v", err)
	}
	if pcm.Channels != 1 || len(pcm.Samples) != 10 {
		t.Errorf("got %d channels, %d samples", pcm.Channels, len(pcm.Samples))
	}
}

func TestValidateRejectsBadFormats(t *testing.T) {
	if _, err := validate(PCM{Channels: 3, SampleRate: 44100}); err == nil {
		t.Error("expected error for 3 channels")
	}
	if _, err := validate(PCM{Channels: 1, SampleRate: 0}); err == nil {
		t.Error("expected error for zero sample rate")
	}
}
