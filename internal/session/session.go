// Package session holds the state behind the timetable window: the grid
// being edited, the folders and the name it is saved under.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-git/go-billy/v5"

	"lecturegrid/internal/cleaner"
	"lecturegrid/internal/generator"
	"lecturegrid/internal/grid"
	"lecturegrid/internal/linkwriter"
	"lecturegrid/internal/store"
	"lecturegrid/internal/transfer"
)

var (
	ErrMissingInput = generator.ErrMissingInput
	ErrEmptyName    = errors.New("timetable name is empty")
)

// FS is the host filesystem folders and links are written to.
type FS interface {
	billy.Basic
	billy.Dir
}

type Options struct {
	Backend store.Backend
	FS      FS
	Writer  linkwriter.LinkWriter
	Days    string
	Logger  *slog.Logger
}

type Session struct {
	backend store.Backend
	fs      FS
	gen     *generator.Generator
	days    string
	log     *slog.Logger

	store   *store.Store
	grid    *grid.Grid
	current string
	source  string
	links   string

	// failure of the auto-save triggered by the last edit
	saveErr error
}

// Open loads the persisted store and the timetable it was last saved with.
func Open(opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	st, err := opts.Backend.Load()
	if err != nil {
		return nil, fmt.Errorf("load timetables: %w", err)
	}

	s := &Session{
		backend: opts.Backend,
		fs:      opts.FS,
		gen:     generator.New(opts.FS, opts.Writer, opts.Days),
		days:    opts.Days,
		log:     opts.Logger,
		store:   st,
		grid:    grid.New(),
		current: st.Current(),
	}

	if t, err := st.Get(s.current); err == nil {
		s.apply(t)
	}
	s.grid.OnChange(func(grid.Cell) { s.saveErr = s.AutoSave() })

	s.log.Info("session opened", "timetable", s.current, "timetables", st.Len())
	return s, nil
}

func (s *Session) apply(t store.Timetable) {
	s.grid.Load(t.Cells())
	s.source = t.SummaryFolder
	s.links = t.ShortcutFolder
}

func (s *Session) Current() string      { return s.current }
func (s *Session) SourceFolder() string { return s.source }
func (s *Session) LinkFolder() string   { return s.links }
func (s *Session) Days() string         { return s.days }
func (s *Session) Grid() *grid.Grid     { return s.grid }

// Names lists the saved timetables in insertion order.
func (s *Session) Names() []string {
	return s.store.Names()
}

// SetCell edits the grid; a change triggers an auto-save whose failure is
// returned.
func (s *Session) SetCell(period int, day grid.Weekday, label string) error {
	s.saveErr = nil
	if err := s.grid.Set(period, day, label); err != nil {
		return err
	}
	return s.SaveErr()
}

func (s *Session) SetSourceFolder(path string) error {
	s.source = strings.TrimSpace(path)
	return s.AutoSave()
}

func (s *Session) SetLinkFolder(path string) error {
	s.links = strings.TrimSpace(path)
	return s.AutoSave()
}

// AutoSave stores the grid under the current name and writes the whole
// store.
func (s *Session) AutoSave() error {
	s.store.Put(s.current, store.Timetable{
		SummaryFolder:  s.source,
		ShortcutFolder: s.links,
		Classes:        store.ClassesFromCells(s.grid.Cells()),
	})
	s.store.LastUsed = s.current

	if err := s.backend.Save(s.store); err != nil {
		s.log.Error("auto-save failed", "timetable", s.current, "err", err)
		return fmt.Errorf("save timetables: %w", err)
	}

	s.log.Debug("auto-saved", "timetable", s.current)
	return nil
}

// SaveErr returns and clears the failure of the last edit's auto-save.
func (s *Session) SaveErr() error {
	err := s.saveErr
	s.saveErr = nil
	return err
}

// SaveAs makes name the current timetable and saves under it.
func (s *Session) SaveAs(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.current = name
	if err := s.AutoSave(); err != nil {
		return err
	}

	s.log.Info("timetable saved", "timetable", name)
	return nil
}

// Load switches to a saved timetable. An unknown name leaves everything
// unchanged.
func (s *Session) Load(name string) error {
	t, err := s.store.Get(name)
	if err != nil {
		return err
	}

	s.current = name
	s.apply(t)

	s.log.Info("timetable loaded", "timetable", name)
	return s.AutoSave()
}

// Generate creates the class folders and links for the current grid.
func (s *Session) Generate() (generator.Result, error) {
	if s.source == "" || s.links == "" {
		return generator.Result{}, ErrMissingInput
	}

	res, err := s.gen.Generate(s.source, s.links, s.grid.Cells())
	if err != nil {
		s.log.Error("generate failed", "timetable", s.current, "err", err)
		return res, err
	}

	s.log.Info("generated", "timetable", s.current, "folders", len(res.Folders), "links", len(res.Links))
	return res, nil
}

// ClearLinks empties the link folder. Callers confirm with the user first.
func (s *Session) ClearLinks() (int, error) {
	if s.links == "" {
		return 0, ErrMissingInput
	}

	n, err := cleaner.Clean(s.fs, s.links)
	if err != nil {
		s.log.Error("clear failed", "folder", s.links, "removed", n, "err", err)
		return n, err
	}

	s.log.Info("link folder cleared", "folder", s.links, "removed", n)
	return n, nil
}

// Import replaces the grid with the one read from a document.
func (s *Session) Import(path string) error {
	cells, err := transfer.Import(path)
	if err != nil {
		return err
	}

	s.grid.Load(cells)
	s.log.Info("imported", "path", path, "cells", len(cells))
	return s.AutoSave()
}

// Export writes the grid to a spreadsheet.
func (s *Session) Export(path string) error {
	if err := transfer.Export(path, s.grid.Cells(), s.days); err != nil {
		return err
	}

	s.log.Info("exported", "path", path)
	return nil
}

func (s *Session) Close() error {
	return s.backend.Close()
}
