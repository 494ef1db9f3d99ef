// Package ui provides the Bubbletea meter view for the lunchbox command
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
)

// NumMeters is the number of meters shown
const NumMeters = 4

// Meter indices
const (
	MeterIn = iota
	MeterOut
	MeterDeEss
	MeterComp
)

// meterDef names a meter and the dB range its normalized value covers
type meterDef struct {
	label string
	r     analysis.MeterRange
}

var meters = [NumMeters]meterDef{
	{"In", analysis.LevelRange},
	{"Out", analysis.LevelRange},
	{"De-ess", analysis.ReductionRange},
	{"Comp", analysis.ReductionRange},
}

const barWidth = 40

// MetersMsg carries the meters of one processed block
type MetersMsg struct {
	Values   [NumMeters]float64
	Elapsed  float64 // seconds since the previous message
	Position float64 // playback position in seconds
}

// DoneMsg signals the end of playback
type DoneMsg struct{}

// MeterModel is the Bubbletea model for the live meter view
type MeterModel struct {
	Title    string
	Duration float64
	Position float64
	Done     bool

	holds [NumMeters]*analysis.PeakHold
	raw   [NumMeters]float64
}

// NewMeterModel creates a meter view for a file of duration seconds
func NewMeterModel(title string, duration float64) MeterModel {
	m := MeterModel{Title: title, Duration: duration}
	for i := range m.holds {
		m.holds[i] = analysis.NewPeakHold()
	}
	return m
}

// Init initializes the model
func (m MeterModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m MeterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case MetersMsg:
		m.raw = msg.Values
		m.Position = msg.Position
		for i, h := range m.holds {
			h.Update(msg.Values[i], msg.Elapsed)
		}
	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

// Value returns the displayed (falling) value of meter i
func (m MeterModel) Value(i int) float64 {
	return m.holds[i].Value()
}

// View renders the meters
func (m MeterModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E0A030")).Render("Lunchbox meters")
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true).
		Render(fmt.Sprintf("%s  %.1f / %.1f s", m.Title, m.Position, m.Duration))
	b.WriteString(title + "\n" + sub + "\n\n")

	for i, ms := range meters {
		b.WriteString(renderBar(ms, m.holds[i].Value(), m.holds[i].Hold(), m.raw[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("q to quit"))
	return b.String()
}

// renderBar draws one meter with its hold marker and current dB reading
func renderBar(ms meterDef, value, hold, raw float64) string {
	filled := int(value*barWidth + 0.5)
	filled = max(0, min(filled, barWidth))
	holdAt := max(0, min(int(hold*barWidth+0.5), barWidth-1))

	cells := []rune(strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled))
	if hold > 0 && holdAt >= filled {
		cells[holdAt] = '▌'
	}

	color := lipgloss.Color("#00AA00")
	if value > 0.9 {
		color = lipgloss.Color("#A40000")
	} else if value > 0.75 {
		color = lipgloss.Color("#FFA500")
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(string(cells))

	return fmt.Sprintf("%-7s %s %6.1f dB", ms.label, bar, ms.r.Plain(raw))
}
