package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SearchModel - Live Search Progress
// =============================================================================

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// searchProgressMsg carries trial progress from the worker pool.
type searchProgressMsg struct {
	Done int
	Best int
}

// searchDoneMsg signals that the search finished.
type searchDoneMsg struct{}

// SearchModel is the bubbletea model showing live trial progress and the
// current best clique size.
type SearchModel struct {
	Source string
	Total  int

	done     int
	best     int
	width    int
	finished bool
	aborted  bool
}

// NewSearchModel creates a progress model for a search of total trials.
func NewSearchModel(source string, total int) SearchModel {
	return SearchModel{Source: source, Total: total, width: 80}
}

// Aborted reports whether the user quit before the search finished.
func (m SearchModel) Aborted() bool { return m.aborted }

func (m SearchModel) Init() tea.Cmd {
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchProgressMsg:
		if msg.Done > m.done {
			m.done = msg.Done
		}
		if msg.Best > m.best {
			m.best = msg.Best
		}
	case searchDoneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m SearchModel) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Searching " + m.Source))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	barWidth := m.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	filled := 0
	if m.Total > 0 {
		filled = barWidth * m.done / m.Total
		if filled > barWidth {
			filled = barWidth
		}
	}
	b.WriteString(barFilledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString(fmt.Sprintf(" %d/%d", m.done, m.Total))
	b.WriteString("\n\n")

	b.WriteString(StyleDim.Render("best clique "))
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("%d", m.best)))
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Program Wiring
// =============================================================================

// newSearchProgram wraps a SearchModel in a tea.Program and returns it with
// a progress callback safe to call from worker goroutines.
func newSearchProgram(source string, total int) (*tea.Program, func(done, best int)) {
	p := tea.NewProgram(NewSearchModel(source, total))
	send := func(done, best int) {
		p.Send(searchProgressMsg{Done: done, Best: best})
	}
	return p, send
}
