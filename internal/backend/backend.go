// ABOUTME: Device backend abstraction and build-time selection
// ABOUTME: Uniform contract between the engine and OS audio output

package backend

import (
	"runtime"

	"github.com/Resonate-Protocol/aural-go/pkg/sample"
)

// Backend owns an OS audio stream and drains the engine's sample ring into
// it. Implementations may substitute a different rate, channel count or
// format than requested; callers must query the negotiated values after
// Startup.
type Backend interface {
	// Startup initializes the OS audio device. It reports failure instead
	// of returning an error so callers can fall through to diagnostics.
	Startup(requestRate, requestChannels int, exclusive, verbose bool) bool

	// Shutdown stops the stream, joins any internal render thread and
	// releases OS resources.
	Shutdown()

	// WriteSamples enqueues frames worth of interleaved samples on the
	// producer side. It never blocks indefinitely.
	WriteSamples(data []sample.Type, frames int) bool

	SampleRate() int
	NumChannels() int
	BitFormat() int
	BufferSizeFrames() int
	Name() string
}

// Select returns the backend for this process. enableAudio=false always
// yields the silent backend, as does running under WSL, where the host
// audio service is not reachable in a way the device backends can use.
func Select(enableAudio bool) Backend {
	if !enableAudio {
		return NewNoAudio()
	}
	if runtime.GOOS == "linux" && isWSL() {
		return NewNoAudio()
	}
	return newDeviceBackend()
}
