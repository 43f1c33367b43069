//go:build linux && alsa

// ABOUTME: Direct ALSA device backend for Linux builds with the alsa tag
// ABOUTME: Runs its own render thread draining the sample ring via snd_pcm_writei

package backend

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* aural_open_pcm(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int aural_setup_pcm(snd_pcm_t* handle, unsigned int* rate, unsigned int channels, int use_float) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params,
        use_float ? SND_PCM_FORMAT_FLOAT_LE : SND_PCM_FORMAT_S16_LE);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, channels);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate_near(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static long aural_write_pcm(snd_pcm_t* handle, void* buffer, unsigned long frames) {
    snd_pcm_sframes_t written = snd_pcm_writei(handle, buffer, frames);
    if (written < 0)
        written = snd_pcm_recover(handle, written, 1);
    return written;
}

static unsigned long aural_buffer_frames(snd_pcm_t* handle) {
    snd_pcm_uframes_t size = 0;
    snd_pcm_uframes_t period = 0;
    snd_pcm_get_params(handle, &size, &period);
    return period;
}

static void aural_close_pcm(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"

import (
	"log"
	"sync"
	"unsafe"

	"github.com/Resonate-Protocol/aural-go/internal/ring"
	"github.com/Resonate-Protocol/aural-go/pkg/sample"
)

// ALSA talks to the Linux sound service directly. The render goroutine is
// the single consumer of the ring; snd_pcm_writei paces it against the
// device clock.
type ALSA struct {
	handle *C.snd_pcm_t
	ring   *ring.Ring
	wg     sync.WaitGroup

	sampleRate int
	channels   int
	frames     int
}

func newDeviceBackend() Backend {
	return &ALSA{}
}

func (a *ALSA) Startup(requestRate, requestChannels int, exclusive, verbose bool) bool {
	device := C.CString("default")
	defer C.free(unsafe.Pointer(device))

	var cerr C.int
	handle := C.aural_open_pcm(device, &cerr)
	if cerr < 0 {
		log.Printf("ALSA backend: cannot open device: %s", C.GoString(C.snd_strerror(cerr)))
		return false
	}

	useFloat := C.int(0)
	if sample.Bits == 32 {
		useFloat = 1
	}
	rate := C.uint(requestRate)
	if cerr = C.aural_setup_pcm(handle, &rate, C.uint(requestChannels), useFloat); cerr < 0 {
		log.Printf("ALSA backend: setup failed: %s", C.GoString(C.snd_strerror(cerr)))
		C.aural_close_pcm(handle)
		return false
	}

	a.handle = handle
	a.sampleRate = int(rate)
	a.channels = requestChannels
	a.frames = int(C.aural_buffer_frames(handle))
	a.ring = ring.New(ringSecondsALSA * a.sampleRate * requestChannels)

	if verbose {
		log.Printf("ALSA backend: %dHz, %d channels, period %d frames",
			a.sampleRate, a.channels, a.frames)
	}

	a.wg.Add(1)
	go a.renderLoop()
	return true
}

const ringSecondsALSA = 2

func (a *ALSA) renderLoop() {
	defer a.wg.Done()

	period := a.frames
	if period <= 0 {
		period = 512
	}
	block := make([]sample.Type, period*a.channels)
	for a.ring.WaitPending() {
		a.ring.Drain(block)
		written := C.aural_write_pcm(a.handle, unsafe.Pointer(&block[0]), C.ulong(period))
		if written < 0 {
			log.Printf("ALSA backend: write error: %s", C.GoString(C.snd_strerror(C.int(written))))
		}
	}
}

func (a *ALSA) Shutdown() {
	if a.ring != nil {
		a.ring.Close()
		a.wg.Wait()
	}
	if a.handle != nil {
		C.aural_close_pcm(a.handle)
		a.handle = nil
	}
}

func (a *ALSA) WriteSamples(data []sample.Type, frames int) bool {
	if a.ring == nil {
		return false
	}
	n := frames * a.channels
	if n > len(data) {
		n = len(data)
	}
	return a.ring.Write(data[:n])
}

func (a *ALSA) SampleRate() int       { return a.sampleRate }
func (a *ALSA) NumChannels() int      { return a.channels }
func (a *ALSA) BitFormat() int        { return sample.Bits }
func (a *ALSA) BufferSizeFrames() int { return a.frames }
func (a *ALSA) Name() string          { return "Linux : ALSA" }
