//go:build !(linux && alsa)

// ABOUTME: Default device backend using the oto library
// ABOUTME: Bridges the sample ring into the OS mixer via oto's pull callback

package backend

import (
	"encoding/binary"
	"log"
	"math"
	"runtime"

	"github.com/Resonate-Protocol/aural-go/internal/ring"
	"github.com/Resonate-Protocol/aural-go/pkg/sample"
	"github.com/ebitengine/oto/v3"
)

// ringSeconds sizes the producer/consumer queue between the mix thread and
// the device callback.
const ringSeconds = 2

// Oto plays through the platform audio service (CoreAudio, WASAPI or ALSA)
// via oto. oto owns the render path: it reads from this backend on its own
// thread, so the ring is the only state shared with the engine.
type Oto struct {
	ctx    *oto.Context
	player *oto.Player
	ring   *ring.Ring

	sampleRate int
	channels   int
}

// newDeviceBackend selects oto for every platform build without a more
// specific backend tag.
func newDeviceBackend() Backend {
	return &Oto{}
}

// Startup opens the oto context with the requested format. oto does not
// expose exclusive-mode streams, so the flag is accepted and ignored.
func (o *Oto) Startup(requestRate, requestChannels int, exclusive, verbose bool) bool {
	format := oto.FormatSignedInt16LE
	if sample.Bits == 32 {
		format = oto.FormatFloat32LE
	}

	op := &oto.NewContextOptions{
		SampleRate:   requestRate,
		ChannelCount: requestChannels,
		Format:       format,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		log.Printf("oto backend: failed to create context: %v", err)
		return false
	}
	<-readyChan

	o.ctx = ctx
	o.sampleRate = requestRate
	o.channels = requestChannels
	o.ring = ring.New(ringSeconds * requestRate * requestChannels)

	o.player = ctx.NewPlayer(o)
	o.player.Play()

	if verbose {
		log.Printf("oto backend: %dHz, %d channels, %d-bit samples",
			o.sampleRate, o.channels, sample.Bits)
	}
	return true
}

// Shutdown closes the player and releases the ring. oto keeps its context
// for the process lifetime; suspending it stops the OS stream.
func (o *Oto) Shutdown() {
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.ring != nil {
		o.ring.Close()
	}
	if o.ctx != nil {
		o.ctx.Suspend()
		o.ctx = nil
	}
}

// WriteSamples enqueues one mixed block.
func (o *Oto) WriteSamples(data []sample.Type, frames int) bool {
	if o.ring == nil {
		return false
	}
	n := frames * o.channels
	if n > len(data) {
		n = len(data)
	}
	return o.ring.Write(data[:n])
}

// Read is oto's pull callback. It drains the ring into the device buffer,
// converting canonical samples to the wire format. Underruns come out as
// silence via the ring's drain contract.
func (o *Oto) Read(p []byte) (int, error) {
	bytesPer := sample.Bits / 8
	count := len(p) / bytesPer
	block := make([]sample.Type, count)
	o.ring.Drain(block)

	if sample.Bits == 32 {
		for i, s := range block {
			bits := math.Float32bits(float32(sample.ToFloat(s)))
			binary.LittleEndian.PutUint32(p[i*4:], bits)
		}
	} else {
		for i, s := range block {
			binary.LittleEndian.PutUint16(p[i*2:], uint16(sample.ToInt16(s)))
		}
	}
	return count * bytesPer, nil
}

func (o *Oto) SampleRate() int  { return o.sampleRate }
func (o *Oto) NumChannels() int { return o.channels }
func (o *Oto) BitFormat() int   { return sample.Bits }

// BufferSizeFrames reports 0: oto does not expose its device period, so the
// engine falls back to its own default block size.
func (o *Oto) BufferSizeFrames() int { return 0 }

// Name reports the OS audio service oto renders through.
func (o *Oto) Name() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS : CoreAudio (oto)"
	case "windows":
		return "Windows : WASAPI (oto)"
	case "linux":
		return "Linux : ALSA (oto)"
	}
	return "oto"
}
