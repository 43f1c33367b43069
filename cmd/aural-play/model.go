// ABOUTME: Bubbletea model for the demo player
// ABOUTME: Keyboard transport, volume slider and pan control over one source

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Resonate-Protocol/aural-go/pkg/aural"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tickMsg refreshes the play-position readout.
type tickMsg time.Time

// model is the TUI state around one engine source.
type model struct {
	engine *aural.Engine
	src    aural.SourceID
	name   string

	slider float32 // volume slider position [0,1]
	pan    float32
	panned bool

	width int
}

func newModel(engine *aural.Engine, src aural.SourceID, name string) model {
	return model{
		engine: engine,
		src:    src,
		name:   name,
		slider: 1,
		pan:    0.5,
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ":
			if paused, ok := m.engine.IsSourcePaused(m.src); ok && paused {
				m.engine.ResumeSource(m.src)
			} else {
				m.engine.PauseSource(m.src)
			}

		case "r":
			m.engine.StopSource(m.src)
			m.engine.PlaySource(m.src)

		case "s":
			m.engine.StopSource(m.src)

		case "l":
			looping, _ := m.engine.GetSourceLooping(m.src)
			m.engine.SetSourceLooping(m.src, !looping)

		case "up":
			m.slider = clamp(m.slider+0.05, 0, 1)
			m.engine.SetSourceVolumeSlider(m.src, m.slider, aural.DefaultSliderMinDB, aural.DefaultSliderTaper)

		case "down":
			m.slider = clamp(m.slider-0.05, 0, 1)
			m.engine.SetSourceVolumeSlider(m.src, m.slider, aural.DefaultSliderMinDB, aural.DefaultSliderTaper)

		case "left":
			m.pan = clamp(m.pan-0.1, 0, 1)
			m.panned = true
			m.engine.SetSourcePanning(m.src, m.pan)

		case "right":
			m.pan = clamp(m.pan+0.1, 0, 1)
			m.panned = true
			m.engine.SetSourcePanning(m.src, m.pan)

		case "c":
			m.panned = false
			m.engine.RemoveSourcePanning(m.src)
		}
	}

	return m, nil
}

func (m model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("aural-play") + "\n")
	b.WriteString(headerStyle.Render("Track:   ") + valueStyle.Render(m.name) + "\n")
	b.WriteString(headerStyle.Render("Backend: ") + valueStyle.Render(m.engine.BackendName()) + "\n")
	b.WriteString(headerStyle.Render("Output:  ") + valueStyle.Render(
		fmt.Sprintf("%d Hz, %d channels, %d-bit",
			m.engine.OutputSampleRate(), m.engine.NumOutputChannels(), m.engine.NumBitsPerSample())) + "\n\n")

	state := "stopped"
	if playing, _ := m.engine.IsSourcePlaying(m.src); playing {
		state = "playing"
	} else if paused, _ := m.engine.IsSourcePaused(m.src); paused {
		state = "paused"
	}
	looping, _ := m.engine.GetSourceLooping(m.src)
	pos, _ := m.engine.GetSourcePlayPos(m.src)

	b.WriteString(headerStyle.Render("State:   ") + valueStyle.Render(state))
	if looping {
		b.WriteString(valueStyle.Render(" (loop)"))
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Frame:   ") + valueStyle.Render(fmt.Sprintf("%.0f", pos)) + "\n")
	b.WriteString(headerStyle.Render("Volume:  ") + bar(m.slider) + "\n")
	if m.panned {
		b.WriteString(headerStyle.Render("Pan:     ") + bar(m.pan) + "\n")
	} else {
		b.WriteString(headerStyle.Render("Pan:     ") + valueStyle.Render("center (unset)") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(
		"space pause/resume · r restart · s stop · l loop · up/down volume · left/right pan · c clear pan · q quit"))
	return b.String()
}

// bar renders a 20-cell meter for a normalized value.
func bar(v float32) string {
	const cells = 20
	filled := int(v*cells + 0.5)
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", cells-filled) + "]"
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
