package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/nexidian/gocliselect"

	"lecturegrid/internal/config"
	"lecturegrid/internal/grid"
	"lecturegrid/internal/linkwriter"
	"lecturegrid/internal/logging"
	"lecturegrid/internal/session"
	"lecturegrid/internal/store"
	"lecturegrid/internal/ui"
)

const interactiveLogFile = "lecturegrid.log"

type App struct {
	cfg     *config.Config
	session *session.Session
	logFile io.Closer
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Open loads the store and the last used timetable. Interactive sessions log
// to a file since the terminal belongs to the UI.
func (a *App) Open(interactive bool) error {
	if a.session != nil {
		return nil
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := a.openLogger(interactive)
	if err != nil {
		return err
	}

	var backend store.Backend
	switch strings.ToLower(a.cfg.StoreDriver) {
	case store.DriverSQLite:
		backend, err = store.NewSQLite(a.cfg.StorePath)
		if err != nil {
			return err
		}
	default:
		backend = store.NewJSONFile(osfs.Default, a.cfg.StorePath)
	}

	writer, err := linkwriter.New(a.cfg.LinkKind, osfs.Default)
	if err != nil {
		backend.Close()
		return err
	}

	a.session, err = session.Open(session.Options{
		Backend: backend,
		FS:      osfs.Default,
		Writer:  writer,
		Days:    a.cfg.Days,
		Logger:  logger,
	})
	if err != nil {
		backend.Close()
		return err
	}

	return nil
}

func (a *App) openLogger(interactive bool) (*slog.Logger, error) {
	var w io.Writer = os.Stderr
	level := a.cfg.LogLevel

	path := a.cfg.LogFile
	if path == "" && interactive {
		path = interactiveLogFile
	}
	if path != "" {
		f, err := logging.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		w = f
	}

	logger, err := logging.New(w, level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func (a *App) Close() error {
	var err error
	if a.session != nil {
		err = a.session.Close()
		a.session = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
	return err
}

// Interactive runs the terminal UI.
func (a *App) Interactive() error {
	return ui.Run(a.session, a.cfg.AutoSave)
}

func (a *App) Show() error {
	labels, err := grid.DayLabels(a.cfg.Days)
	if err != nil {
		return err
	}

	fmt.Printf("Timetable: %s\n", a.session.Current())
	fmt.Printf("Class folder: %s\n", orUnset(a.session.SourceFolder()))
	fmt.Printf("Link folder:  %s\n\n", orUnset(a.session.LinkFolder()))

	headers := append([]string{""}, labels[:]...)

	var rows [][]string
	g := a.session.Grid()
	for p := 1; p <= grid.Periods; p++ {
		row := []string{strconv.Itoa(p)}
		for d := grid.Monday; d <= grid.Friday; d++ {
			row = append(row, g.Get(p, d))
		}
		rows = append(rows, row)
	}

	footers := []string{"Total:", fmt.Sprintf("%d classes", len(g.Labels())), "", "", "", ""}
	PrintTable(headers, rows, footers)

	return nil
}

func (a *App) SetCell(period, day, label string) error {
	p, err := strconv.Atoi(period)
	if err != nil {
		return fmt.Errorf("invalid period %q", period)
	}
	d, err := grid.ParseWeekday(day)
	if err != nil {
		return err
	}

	if err := a.session.SetCell(p, d, label); err != nil {
		return err
	}

	if strings.TrimSpace(label) == "" {
		fmt.Printf("Cleared period %d on %s\n", p, d.Label(a.cfg.Days))
	} else {
		fmt.Printf("Set period %d on %s to %s\n", p, d.Label(a.cfg.Days), label)
	}
	return nil
}

func (a *App) SetFolders(source, links *string) error {
	if source == nil && links == nil {
		fmt.Printf("Class folder: %s\n", orUnset(a.session.SourceFolder()))
		fmt.Printf("Link folder:  %s\n", orUnset(a.session.LinkFolder()))
		return nil
	}

	if source != nil {
		if err := a.session.SetSourceFolder(*source); err != nil {
			return err
		}
		fmt.Printf("Class folder set to: %s\n", orUnset(a.session.SourceFolder()))
	}
	if links != nil {
		if err := a.session.SetLinkFolder(*links); err != nil {
			return err
		}
		fmt.Printf("Link folder set to: %s\n", orUnset(a.session.LinkFolder()))
	}
	return nil
}

func (a *App) Generate() error {
	res, err := a.session.Generate()
	if err != nil {
		if err == session.ErrMissingInput {
			return fmt.Errorf("Set both folders first, use the 'folders' command")
		}
		return err
	}

	fmt.Printf("Created %d folders and %d links\n", len(res.Folders), len(res.Links))
	return nil
}

func (a *App) Clean(yes bool) error {
	folder := a.session.LinkFolder()
	if folder == "" {
		return fmt.Errorf("No link folder set, use the 'folders' command")
	}

	if !yes && !Confirm(os.Stdin, fmt.Sprintf("Delete everything in %s?", folder)) {
		fmt.Println("Cancelled.")
		return nil
	}

	n, err := a.session.ClearLinks()
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d entries from %s\n", n, folder)
	return nil
}

func (a *App) SaveAs(name string) error {
	if err := a.session.SaveAs(name); err != nil {
		return err
	}

	fmt.Printf("Saved timetable as: %s\n", a.session.Current())
	return nil
}

// Load switches to the named timetable, or asks for one when name is empty.
func (a *App) Load(name string) error {
	if name == "" {
		names := a.session.Names()
		if len(names) == 0 {
			return fmt.Errorf("No saved timetables")
		}

		menu := gocliselect.NewMenu("Choose a timetable")
		for _, n := range names {
			menu.AddItem(n, n)
		}
		choice, err := menu.Display()
		if err != nil {
			return err
		}
		name, _ = choice.(string)
		if name == "" {
			return nil
		}
	}

	if err := a.session.Load(name); err != nil {
		return err
	}

	fmt.Printf("Loaded timetable: %s\n", name)
	return nil
}

func (a *App) List() {
	for _, name := range a.session.Names() {
		if name == a.session.Current() {
			fmt.Printf("* %s\n", name)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

func (a *App) Import(path string) error {
	if err := a.session.Import(path); err != nil {
		return err
	}

	fmt.Printf("Imported %d slots into %s\n", len(a.session.Grid().Cells()), a.session.Current())
	return nil
}

func (a *App) Export(path string) error {
	if err := a.session.Export(path); err != nil {
		return err
	}

	fmt.Printf("Exported %s to %s\n", a.session.Current(), path)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
