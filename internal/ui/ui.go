package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lecturegrid/internal/grid"
	"lecturegrid/internal/session"
	"lecturegrid/internal/store"
)

// Model states
type mode int

const (
	modeGrid mode = iota
	modeEditCell
	modeEditSource
	modeEditLinks
	modeSaveAs
	modeImport
	modeExport
	modeLoad
	modeConfirmClear
)

// prompts for the modes that read a line of text
var prompts = map[mode]string{
	modeEditCell:   "Class: ",
	modeEditSource: "Class folder: ",
	modeEditLinks:  "Link folder: ",
	modeSaveAs:     "Save as: ",
	modeImport:     "Import from (.docx, .xlsx): ",
	modeExport:     "Export to (.xlsx): ",
}

// timetable name item for the load list
type nameItem struct {
	name    string
	current bool
}

func (n nameItem) Title() string {
	if n.current {
		return "→ " + n.name
	}
	return "  " + n.name
}
func (n nameItem) Description() string { return "" }
func (n nameItem) FilterValue() string { return n.name }

type autosaveMsg time.Time

type Model struct {
	s        *session.Session
	interval time.Duration

	mode     mode
	row, col int

	input textinput.Model
	names list.Model

	status string
	warn   bool

	width, height int
}

func New(s *session.Session, interval time.Duration) Model {
	ti := textinput.New()
	ti.CharLimit = 255

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	names := list.New(nil, d, 40, 12)
	names.Title = "Load timetable"
	names.SetShowHelp(false)

	return Model{
		s:        s,
		interval: interval,
		input:    ti,
		names:    names,
	}
}

// Run blocks until the user quits.
func Run(s *session.Session, interval time.Duration) error {
	_, err := tea.NewProgram(New(s, interval), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return autosaveMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case autosaveMsg:
		if err := m.s.AutoSave(); err != nil {
			m.setError(err)
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.names.SetSize(msg.Width, max(msg.Height-4, 5))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case modeGrid:
			return m.updateGrid(msg)
		case modeLoad:
			return m.updateLoad(msg)
		case modeConfirmClear:
			return m.updateConfirm(msg)
		default:
			return m.updateInput(msg)
		}
	}

	if m.mode == modeLoad {
		var cmd tea.Cmd
		m.names, cmd = m.names.Update(msg)
		return m, cmd
	}
	if _, ok := prompts[m.mode]; ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.row = max(m.row-1, 0)
	case "down", "j":
		m.row = min(m.row+1, grid.Periods-1)
	case "left", "h":
		m.col = max(m.col-1, 0)
	case "right", "l":
		m.col = min(m.col+1, grid.Days-1)
	case "enter", "e":
		return m.prompt(modeEditCell, m.s.Grid().Get(m.row+1, grid.Weekday(m.col)))
	case "d", "backspace", "delete":
		if err := m.s.SetCell(m.row+1, grid.Weekday(m.col), ""); err != nil {
			m.setError(err)
		}
	case "s":
		return m.prompt(modeEditSource, m.s.SourceFolder())
	case "t":
		return m.prompt(modeEditLinks, m.s.LinkFolder())
	case "w":
		return m.prompt(modeSaveAs, "")
	case "i":
		return m.prompt(modeImport, "")
	case "x":
		return m.prompt(modeExport, "")
	case "o":
		m.mode = modeLoad
		return m, m.names.SetItems(m.nameItems())
	case "c":
		if m.s.LinkFolder() == "" {
			m.setError(session.ErrMissingInput)
			return m, nil
		}
		m.mode = modeConfirmClear
	case "g":
		m.generate()
	}
	return m, nil
}

func (m Model) prompt(md mode, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Prompt = prompts[md]
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.mode = modeGrid
		return m, nil
	case "enter":
		m.submit(m.input.Value())
		m.input.Blur()
		m.mode = modeGrid
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(value string) {
	var err error
	switch m.mode {
	case modeEditCell:
		err = m.s.SetCell(m.row+1, grid.Weekday(m.col), value)
	case modeEditSource:
		err = m.s.SetSourceFolder(expandHome(value))
	case modeEditLinks:
		err = m.s.SetLinkFolder(expandHome(value))
	case modeSaveAs:
		if err = m.s.SaveAs(value); err == nil {
			m.setInfo(fmt.Sprintf("Saved as %q", m.s.Current()))
		}
	case modeImport:
		if err = m.s.Import(expandHome(value)); err == nil {
			m.setInfo(fmt.Sprintf("Imported %d classes", len(m.s.Grid().Cells())))
		}
	case modeExport:
		if err = m.s.Export(expandHome(value)); err == nil {
			m.setInfo("Exported to " + value)
		}
	}
	if err != nil {
		m.setError(err)
	}
}

func (m Model) updateLoad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.names.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "q":
			m.mode = modeGrid
			return m, nil
		case "enter":
			m.mode = modeGrid
			item, ok := m.names.SelectedItem().(nameItem)
			if !ok {
				return m, nil
			}
			if err := m.s.Load(item.name); err != nil {
				m.setError(err)
			} else {
				m.setInfo(fmt.Sprintf("Loaded %q", item.name))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.names, cmd = m.names.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		n, err := m.s.ClearLinks()
		if err != nil {
			m.setError(err)
		} else {
			m.setInfo(fmt.Sprintf("Removed %d entries from %s", n, m.s.LinkFolder()))
		}
		m.mode = modeGrid
	case "n", "esc", "q":
		m.setInfo("Clear cancelled")
		m.mode = modeGrid
	}
	return m, nil
}

func (m *Model) generate() {
	res, err := m.s.Generate()
	if err != nil {
		m.setError(err)
		return
	}
	m.setInfo(fmt.Sprintf("Created %d folders and %d links", len(res.Folders), len(res.Links)))
}

func (m Model) nameItems() []list.Item {
	var items []list.Item
	for _, name := range m.s.Names() {
		items = append(items, nameItem{name: name, current: name == m.s.Current()})
	}
	return items
}

func (m *Model) setInfo(s string) {
	m.status, m.warn = s, false
}

func (m *Model) setError(err error) {
	m.warn = true
	switch {
	case errors.Is(err, session.ErrMissingInput):
		m.status = "Set both the class folder and the link folder first"
	case errors.Is(err, store.ErrNotFound):
		m.status = "No such timetable"
	default:
		m.status = "Error: " + err.Error()
	}
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
