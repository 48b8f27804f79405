// SPDX-License-Identifier: MIT

// Package tui renders the live tuner display: the matched note, a cents
// needle, and the raw frequency estimate, refreshed from the engine's
// update stream.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tuner/internal/tuner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	inTuneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	offTuneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// needleWidth is the number of cells on each side of the center mark.
const needleWidth = 25

// inTuneCents is the band treated as "in tune" for display purposes.
const inTuneCents = 5.0

// TunerModel is the Bubble Tea model for the live display. It blocks on
// the engine's lossy update channel between frames, so a quiet room
// simply leaves the last reading on screen.
type TunerModel struct {
	engine  *tuner.Engine
	reading tuner.Reading
	quitKey key.Binding
}

// NewTunerModel wires the display to a running engine.
func NewTunerModel(engine *tuner.Engine) TunerModel {
	return TunerModel{
		engine:  engine,
		quitKey: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

type readingMsg tuner.Reading

// waitForReading blocks until the engine publishes a new reading.
func (m TunerModel) waitForReading() tea.Cmd {
	return func() tea.Msg {
		return readingMsg(<-m.engine.Updates())
	}
}

func (m TunerModel) Init() tea.Cmd {
	return m.waitForReading()
}

func (m TunerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readingMsg:
		m.reading = tuner.Reading(msg)
		return m, m.waitForReading()

	case tea.KeyMsg:
		if key.Matches(msg, m.quitKey) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TunerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tuner"))
	b.WriteString("\n\n")

	if !m.reading.Detected {
		b.WriteString(dimStyle.Render("  listening..."))
		b.WriteString("\n\n")
		b.WriteString(m.renderNeedle(0, false))
	} else {
		style := offTuneStyle
		if m.reading.Cents >= -inTuneCents && m.reading.Cents <= inTuneCents {
			style = inTuneStyle
		}

		b.WriteString(fmt.Sprintf("  %s  %s\n\n",
			noteStyle.Render(m.reading.Note.String()),
			style.Render(fmt.Sprintf("%+.1f cents", m.reading.Cents))))
		b.WriteString(m.renderNeedle(m.reading.Cents, true))
		b.WriteString(fmt.Sprintf("\n  %s\n",
			dimStyle.Render(fmt.Sprintf("%.2f Hz (target %.2f Hz)",
				m.reading.Frequency, m.reading.Note.Frequency))))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  q to quit"))
	b.WriteString("\n")
	return b.String()
}

// renderNeedle draws a flat-to-sharp scale with a marker at the cents
// offset. Cents beyond the half-semitone scale clamp to the edge.
func (m TunerModel) renderNeedle(cents float64, detected bool) string {
	pos := needleWidth
	if detected {
		offset := int(cents / 50.0 * float64(needleWidth))
		if offset < -needleWidth {
			offset = -needleWidth
		} else if offset > needleWidth {
			offset = needleWidth
		}
		pos = needleWidth + offset
	}

	cells := make([]string, 2*needleWidth+1)
	for i := range cells {
		switch {
		case detected && i == pos:
			cells[i] = noteStyle.Render("▲")
		case i == needleWidth:
			cells[i] = "|"
		default:
			cells[i] = dimStyle.Render("·")
		}
	}

	return fmt.Sprintf("  %s %s %s\n",
		dimStyle.Render("♭"), strings.Join(cells, ""), dimStyle.Render("♯"))
}

// Run starts the display and blocks until the user quits.
func Run(engine *tuner.Engine) error {
	p := tea.NewProgram(NewTunerModel(engine))
	_, err := p.Run()
	return err
}
