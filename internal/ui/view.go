package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lecturegrid/internal/grid"
)

const cellWidth = 14

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle = lipgloss.NewStyle().Bold(true).Width(cellWidth + 1).Align(lipgloss.Center)
	periodStyle = lipgloss.NewStyle().Bold(true).Width(4).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Width(cellWidth).
			Border(lipgloss.NormalBorder(), false, true, true, false).
			BorderForeground(lipgloss.Color("240"))
	cursorStyle = cellStyle.Reverse(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const help = "arrows/hjkl move • enter edit • d clear cell • s class folder • t link folder\n" +
	"g generate • w save as • o load • c clear links • i import • x export • q quit"

func (m Model) View() string {
	if m.mode == modeLoad {
		return m.names.View()
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Timetable: " + m.s.Current()))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Class folder: ") + orUnset(m.s.SourceFolder()) + "\n")
	b.WriteString(labelStyle.Render("Link folder:  ") + orUnset(m.s.LinkFolder()) + "\n\n")

	b.WriteString(m.gridView())
	b.WriteString("\n")

	switch m.mode {
	case modeConfirmClear:
		b.WriteString(warnStyle.Render("Delete everything in " + m.s.LinkFolder() + "? (y/n)"))
	case modeGrid:
		if m.status != "" {
			if m.warn {
				b.WriteString(warnStyle.Render(m.status))
			} else {
				b.WriteString(infoStyle.Render(m.status))
			}
		}
	default:
		b.WriteString(m.input.View())
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m Model) gridView() string {
	g := m.s.Grid()

	header := []string{periodStyle.Render("")}
	for d := grid.Monday; d <= grid.Friday; d++ {
		header = append(header, headerStyle.Render(d.Label(m.s.Days())))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for p := 1; p <= grid.Periods; p++ {
		row := []string{periodStyle.Render(strconv.Itoa(p))}
		for d := grid.Monday; d <= grid.Friday; d++ {
			style := cellStyle
			if p-1 == m.row && int(d) == m.col {
				style = cursorStyle
			}
			row = append(row, style.Render(g.Get(p, d)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func orUnset(s string) string {
	if s == "" {
		return labelStyle.Render("(not set)")
	}
	return s
}
