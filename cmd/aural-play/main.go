// ABOUTME: Entry point for the aural-play demo player
// ABOUTME: Parses CLI flags, loads a file into a buffer and runs the TUI

package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/Resonate-Protocol/aural-go/pkg/aural"
	"github.com/Resonate-Protocol/aural-go/pkg/codec"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	sampleRate = flag.Int("rate", 48000, "Requested output sample rate")
	channels   = flag.Int("channels", 2, "Requested output channel count")
	noAudio    = flag.Bool("no-audio", false, "Run against the silent backend")
	verbose    = flag.Bool("verbose", false, "Log the negotiated output format")
	loop       = flag.Bool("loop", false, "Loop playback")
)

func main() {
	flag.Parse()

	engine := aural.New(!*noAudio)
	if !engine.Startup(aural.StartupOptions{
		SampleRate: *sampleRate,
		Channels:   *channels,
		Verbose:    *verbose,
	}) {
		log.Fatal("aural-play: audio engine startup failed")
	}
	defer engine.Shutdown()

	buf := engine.CreateBuffer()
	name := "440 Hz test tone"
	if path := flag.Arg(0); path != "" {
		pcm, err := codec.Load(path)
		if err != nil {
			log.Fatalf("aural-play: %v", err)
		}
		if !pcm.Upload(engine, buf) {
			log.Fatal("aural-play: buffer upload rejected")
		}
		name = path
	} else {
		uploadTestTone(engine, buf)
	}

	src := engine.CreateSource()
	engine.AttachBufferToSource(src, buf)
	engine.SetSourceLooping(src, *loop)
	engine.PlaySource(src)

	m := newModel(engine, src, name)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "aural-play: %v\n", err)
		os.Exit(1)
	}
}

// uploadTestTone fills the buffer with two seconds of a 440 Hz sine.
func uploadTestTone(engine *aural.Engine, buf aural.BufferID) {
	const rate = 44100
	data := make([]float32, rate*2)
	for i := range data {
		data[i] = float32(0.8 * math.Sin(2*math.Pi*440*float64(i)/rate))
	}
	engine.SetBufferDataFloat32(buf, data, 1, rate)
}
