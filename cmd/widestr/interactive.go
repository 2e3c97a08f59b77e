package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/widestring/wide"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inputMode int

const (
	modeText inputMode = iota
	modePath
)

func (m inputMode) String() string {
	if m == modePath {
		return "path"
	}
	return "text"
}

type interactiveModel struct {
	input  textinput.Model
	pool   *wide.Pool
	report report
	mode   inputMode
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type something"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	m := &interactiveModel{input: ti, pool: wide.NewPool()}
	m.refresh()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.mode = (m.mode + 1) % 2
			m.refresh()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

// refresh re-encodes the input with a buffer checked out of the pool.
func (m *interactiveModel) refresh() {
	text := m.input.Value()
	var h wide.Pooled
	if m.mode == modePath {
		h = m.pool.GetPath(text)
	} else {
		h = m.pool.Get(text)
	}
	ws := wide.FromUnits(h.Slice())
	m.report = describe(&ws)
	m.pool.Put(&h)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Wide String Inspector"))
	b.WriteString(" ")
	b.WriteString(m.mode.String())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	row := func(k, v string) {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-8s", k)))
		b.WriteString(valueStyle.Render(v))
		b.WriteString("\n")
	}
	r := m.report
	row("units", r.Units)
	row("length", fmt.Sprintf("%d (%s)", r.Len, r.Variant))
	if r.Valid {
		row("decoded", fmt.Sprintf("%q", r.Lifted))
	} else {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-8s", "decoded")))
		b.WriteString(errorStyle.Render("invalid UTF-16, lossy: " + fmt.Sprintf("%q", r.Lifted)))
		b.WriteString("\n")
	}
	row("quoted", r.Quoted)

	st := m.pool.Stats()
	row("pool", fmt.Sprintf("%d buffered, %d hits, %d misses", m.pool.Len(), st.Hits, st.Misses))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab text/path • esc quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
