// Package ui implements the interactive type-table explorer.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/th3flyboy/llvm-mirror/internal/driver"
)

type explorerModel struct {
	report  *driver.Report
	filter  textinput.Model
	visible []int // indexes into report.Entries matching the filter
	cursor  int
	width   int
	height  int
	detail  bool
}

// NewExplorerModel returns a Bubble Tea model that browses one evaluated
// report: arrow keys move, '/' focuses the filter, enter toggles details,
// q quits.
func NewExplorerModel(report *driver.Report) tea.Model {
	ti := textinput.New()
	ti.Placeholder = "filter by name or form"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := &explorerModel{
		report: report,
		filter: ti,
		width:  80,
		height: 24,
	}
	m.refilter()
	return m
}

func (m *explorerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.refilter()
				return m, cmd
			}
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.filter.Focus()
			return m, textinput.Blink
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "enter":
			m.detail = !m.detail
		}
	}
	return m, nil
}

func (m *explorerModel) refilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.report.Entries {
		if needle == "" ||
			strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Rendered), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m *explorerModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	s := m.report.Stats
	header := fmt.Sprintf("%s — %d types (%d structs, %d functions, %d pointers)",
		m.report.Path, len(m.report.Entries), s.Structs, s.Functions, s.Pointers)
	b.WriteString(titleStyle.Render(truncate(header, m.width-2)))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	nameWidth := 16
	formWidth := m.width - nameWidth - 6
	if formWidth < 20 {
		formWidth = 20
	}
	rows := m.height - 7
	if rows < 4 {
		rows = 4
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(m.visible) && i < start+rows; i++ {
		e := m.report.Entries[m.visible[i]]
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		name := nameStyle.Render(fmt.Sprintf("%%%-*s", nameWidth-1, truncate(e.Name, nameWidth-1)))
		form := truncate(e.Named, formWidth)
		fmt.Fprintf(&b, "%s%s %s\n", marker, name, form)
	}
	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  no types match the filter"))
		b.WriteString("\n")
	}

	if m.detail && m.cursor < len(m.visible) {
		e := m.report.Entries[m.visible[m.cursor]]
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", min(m.width-2, 60))))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  name:     %%%s\n", e.Name)
		fmt.Fprintf(&b, "  kind:     %s\n", e.Kind)
		fmt.Fprintf(&b, "  expanded: %s\n", truncate(e.Rendered, m.width-12))
		fmt.Fprintf(&b, "  abstract: %v\n", e.Abstract)
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ move · / filter · enter details · q quit"))
	b.WriteString("\n")
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
