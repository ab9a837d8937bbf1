package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/placard/pkg/diagram"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// stageFilters is the tab order of the stage filter. Empty shows all.
var stageFilters = []diagram.Stage{"", diagram.StageDefinition, diagram.StageLayout, diagram.StageRender}

// =============================================================================
// ReviewModel - Interactive warning browser
// =============================================================================

// ReviewModel is the bubbletea model for browsing a run's warnings.
type ReviewModel struct {
	Title    string
	Warnings []diagram.Warning
	Filter   int
	Cursor   int
	Height   int
	Offset   int
}

// NewReviewModel creates a new review model.
func NewReviewModel(title string, ws []diagram.Warning) ReviewModel {
	return ReviewModel{Title: title, Warnings: ws, Height: 15}
}

// visible returns the warnings passing the current stage filter.
func (m ReviewModel) visible() []diagram.Warning {
	stage := stageFilters[m.Filter]
	if stage == "" {
		return m.Warnings
	}
	var out []diagram.Warning
	for _, w := range m.Warnings {
		if w.Stage == stage {
			out = append(out, w)
		}
	}
	return out
}

// Selected returns the warning under the cursor.
func (m ReviewModel) Selected() (diagram.Warning, bool) {
	ws := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(ws) {
		return diagram.Warning{}, false
	}
	return ws[m.Cursor], true
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.visible())
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.Filter = (m.Filter + 1) % len(stageFilters)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab stage  q quit"))
	b.WriteString("\n\n")

	filter := "all stages"
	if s := stageFilters[m.Filter]; s != "" {
		filter = string(s)
	}
	ws := m.visible()
	b.WriteString(StyleHighlight.Render(filter))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d warnings", len(ws), len(m.Warnings))))
	b.WriteString("\n")

	if len(ws) == 0 {
		b.WriteString("\n")
		b.WriteString(StyleSuccess.Render(iconSuccess + " nothing to review"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(ws))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		w := ws[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		subject := w.Subject
		if subject == "" {
			subject = "—"
		}
		rows = append(rows, []string{cursor, string(w.Stage), string(w.Code), subject})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Stage", "Code", "Subject").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if w, ok := m.Selected(); ok {
		b.WriteString(detailStyle.Render(w.Message))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(ws))))

	return b.String()
}
