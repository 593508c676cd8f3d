package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/procaudio/pkg/param"
	"github.com/justyntemme/procaudio/pkg/playback"
	"github.com/justyntemme/procaudio/pkg/preset"
)

// TuneCmd plays a continuous preset and adjusts its handles live from the
// keyboard, demonstrating the control/render split: the TUI writes
// parameter cells while the audio thread keeps pulling blocks.
type TuneCmd struct {
	Preset string `arg:"" default:"heartbeat" enum:"heartbeat,ear-ringing" help:"Continuous preset to tune."`
}

func (c *TuneCmd) Run(cli *CLI) error {
	sink, err := playback.NewSink(cli.Rate, 2)
	if err != nil {
		return err
	}
	engine := playback.NewEngine(sink)
	defer engine.Close()

	var handles []*param.Handle
	switch c.Preset {
	case "ear-ringing":
		net, params := preset.BuildEarRinging(preset.DefaultEarRinging())
		handles = []*param.Handle{params.Intensity}
		asset := playback.NewAsset(net, cli.Rate, 2)
		if _, err := engine.Play(asset, c.Preset); err != nil {
			return err
		}
	default:
		net, params := preset.BuildHeartbeat(preset.DefaultHeartbeat())
		handles = []*param.Handle{params.Rate, params.Intensity, params.Arrhythmia}
		asset := playback.NewAsset(net, cli.Rate, 2)
		if _, err := engine.Play(asset, c.Preset); err != nil {
			return err
		}
	}

	model := newTuneModel(c.Preset, handles)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
)

type tickMsg time.Time

// tuneModel is the bubbletea model: a list of parameter handles with one
// selected for adjustment. Every keypress writes straight to the shared
// cell; the render context picks the value up on its next block.
type tuneModel struct {
	name     string
	handles  []*param.Handle
	selected int
}

func newTuneModel(name string, handles []*param.Handle) tuneModel {
	return tuneModel{name: name, handles: handles}
}

func (m tuneModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// step is 1% of the handle's range.
func step(h *param.Handle) float64 {
	return (h.Max - h.Min) / 100.0
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.handles)-1 {
				m.selected++
			}
		case "left", "h":
			h := m.handles[m.selected]
			h.Set(h.Get() - step(h))
		case "right", "l":
			h := m.handles[m.selected]
			h.Set(h.Get() + step(h))
		case "shift+left", "H":
			h := m.handles[m.selected]
			h.Set(h.Get() - 10*step(h))
		case "shift+right", "L":
			h := m.handles[m.selected]
			h.Set(h.Get() + 10*step(h))
		}
	}
	return m, nil
}

func renderBar(h *param.Handle, width int) string {
	frac := (h.Get() - h.Min) / (h.Max - h.Min)
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return barStyle.Render(bar)
}

func (m tuneModel) View() string {
	s := titleStyle.Render(fmt.Sprintf("procaudio tune: %s", m.name)) + "\n\n"
	for i, h := range m.handles {
		line := fmt.Sprintf("%-12s %s %8.2f", h.Name, renderBar(h, 30), h.Get())
		if i == m.selected {
			s += selectedStyle.Render("▸ "+line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}
	s += "\n" + dimStyle.Render("↑/↓ select · ←/→ adjust · shift for coarse · q quit")
	return s
}
