package ui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"lecturegrid/internal/grid"
	"lecturegrid/internal/linkwriter"
	"lecturegrid/internal/session"
	"lecturegrid/internal/store"
)

func newModel(t *testing.T) (Model, *store.JSONFile) {
	t.Helper()

	backend := store.NewJSONFile(osfs.New(t.TempDir()), "timetables.json")
	fs := memfs.New()
	s, err := session.Open(session.Options{
		Backend: backend,
		FS:      fs,
		Writer:  linkwriter.NewDesktopEntry(fs),
		Days:    "en",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}
	return New(s, time.Minute), backend
}

func keys(m Model, input ...string) Model {
	for _, in := range input {
		var msg tea.KeyMsg
		switch in {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(in)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func Test_EditCell(t *testing.T) {
	m, backend := newModel(t)

	m = keys(m, "down", "right", "enter", "Art", "enter")

	if got := m.s.Grid().Get(2, grid.Tuesday); got != "Art" {
		t.Fatalf("cell (2, Tue) = %q, want Art", got)
	}
	if m.mode != modeGrid {
		t.Errorf("expected to be back in grid mode, got %v", m.mode)
	}

	st, err := backend.Load()
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	tt, err := st.Get(store.DefaultName)
	if err != nil || len(tt.Classes) != 1 {
		t.Errorf("edit was not auto-saved: %+v %v", tt, err)
	}

	if !strings.Contains(m.View(), "Art") {
		t.Errorf("view does not show the edited cell")
	}
}

func Test_EditCell_EscCancels(t *testing.T) {
	m, _ := newModel(t)

	m = keys(m, "enter", "Math", "esc")

	if got := m.s.Grid().Get(1, grid.Monday); got != "" {
		t.Errorf("cancelled edit was applied: %q", got)
	}
}

func Test_Generate_WithoutFoldersWarns(t *testing.T) {
	m, _ := newModel(t)

	m = keys(m, "g")

	if !m.warn || !strings.Contains(m.status, "folder") {
		t.Errorf("expected a missing folder warning, got %q", m.status)
	}
}

func Test_SaveAsAndLoad(t *testing.T) {
	m, _ := newModel(t)

	m = keys(m, "enter", "Math", "enter")
	m = keys(m, "w", "spring", "enter")
	if m.s.Current() != "spring" {
		t.Fatalf("current = %q, want spring", m.s.Current())
	}

	m = keys(m, "o")
	if m.mode != modeLoad {
		t.Fatalf("expected load mode, got %v", m.mode)
	}
	// first item is the default timetable
	m = keys(m, "enter")
	if m.s.Current() != store.DefaultName {
		t.Errorf("current = %q, want %q", m.s.Current(), store.DefaultName)
	}
}

func Test_ClearLinks_Confirm(t *testing.T) {
	m, _ := newModel(t)

	m = keys(m, "t", "/week", "enter")
	m = keys(m, "c")
	if m.mode != modeConfirmClear {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	m = keys(m, "n")
	if m.mode != modeGrid || m.status != "Clear cancelled" {
		t.Errorf("unexpected state after declining: %v %q", m.mode, m.status)
	}
}

func Test_Generate_AndClear(t *testing.T) {
	m, _ := newModel(t)

	m = keys(m, "enter", "Math", "enter")
	m = keys(m, "s", "/classes", "enter")
	m = keys(m, "t", "/week", "enter")
	m = keys(m, "g")

	if m.warn || !strings.Contains(m.status, "1 folders and 1 links") {
		t.Fatalf("unexpected status after generate: %q", m.status)
	}

	m = keys(m, "c", "y")
	if m.warn || !strings.Contains(m.status, "Removed 1 entries") {
		t.Errorf("unexpected status after clear: %q", m.status)
	}
}

func Test_AutosaveTick(t *testing.T) {
	m, backend := newModel(t)

	_, cmd := m.Update(autosaveMsg(time.Now()))
	if cmd == nil {
		t.Errorf("autosave should schedule the next tick")
	}

	st, err := backend.Load()
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if !st.Has(store.DefaultName) {
		t.Errorf("tick did not save the current timetable")
	}
}

func Test_expandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := expandHome("~/classes"); got != "/home/tester/classes" {
		t.Errorf("expandHome() = %q", got)
	}
	if got := expandHome(" /abs "); got != "/abs" {
		t.Errorf("expandHome() = %q", got)
	}
}
