package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// migration queries
	createTimetablesTableSQL = `
  CREATE TABLE IF NOT EXISTS timetables (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  summary_folder TEXT NOT NULL DEFAULT '',
  shortcut_folder TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	createClassesTableSQL = `
  CREATE TABLE IF NOT EXISTS classes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  timetable_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  row_index INTEGER NOT NULL,
  col_index INTEGER NOT NULL,
  FOREIGN KEY (timetable_id) REFERENCES timetables(id)
  )`

	// timetable queries
	createTimetableSQL  = `INSERT INTO timetables (name, summary_folder, shortcut_folder, active) VALUES (?, ?, ?, ?)`
	getAllTimetablesSQL = `SELECT id, name, summary_folder, shortcut_folder, active FROM timetables ORDER BY id`
	deleteTimetablesSQL = `DELETE FROM timetables`

	// class queries
	createClassSQL    = `INSERT INTO classes (timetable_id, name, row_index, col_index) VALUES (?, ?, ?, ?)`
	getAllClassesSQL  = `SELECT timetable_id, name, row_index, col_index FROM classes ORDER BY timetable_id, id`
	deleteClassesSQL  = `DELETE FROM classes`
	resetSequencesSQL = `DELETE FROM sqlite_sequence WHERE name IN ('timetables', 'classes')`
)

// schema is applied in order on every open; each statement is idempotent.
var schema = []string{
	createTimetablesTableSQL,
	createClassesTableSQL,
}

// SQLite persists the store in a sqlite database. The last used timetable
// is the one marked active.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at path, creating its directory and tables
// when missing.
func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return &SQLite{db: db}, nil
}

func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load() (*Store, error) {
	rows, err := s.db.Query(getAllTimetablesSQL)
	if err != nil {
		return nil, fmt.Errorf("query timetables: %w", err)
	}
	defer rows.Close()

	type row struct {
		id   int64
		name string
		t    Timetable
	}

	st := New()
	var loaded []row
	for rows.Next() {
		var r row
		var active bool
		if err := rows.Scan(&r.id, &r.name, &r.t.SummaryFolder, &r.t.ShortcutFolder, &active); err != nil {
			return nil, err
		}
		if active {
			st.LastUsed = r.name
		}
		loaded = append(loaded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	classes, err := s.classesByTimetable()
	if err != nil {
		return nil, err
	}

	for _, r := range loaded {
		r.t.Classes = classes[r.id]
		st.Put(r.name, r.t)
	}

	return st, nil
}

func (s *SQLite) classesByTimetable() (map[int64][]Class, error) {
	rows, err := s.db.Query(getAllClassesSQL)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}
	defer rows.Close()

	classes := make(map[int64][]Class)
	for rows.Next() {
		var id int64
		var c Class
		if err := rows.Scan(&id, &c.Name, &c.Row, &c.Col); err != nil {
			return nil, err
		}
		classes[id] = append(classes[id], c)
	}

	return classes, rows.Err()
}

// Save replaces every row in one transaction.
func (s *SQLite) Save(st *Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{deleteClassesSQL, deleteTimetablesSQL, resetSequencesSQL} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("error clearing timetables: %w", err)
		}
	}

	for _, name := range st.Names() {
		t, err := st.Get(name)
		if err != nil {
			return err
		}

		res, err := tx.Exec(createTimetableSQL, name, t.SummaryFolder, t.ShortcutFolder, name == st.LastUsed)
		if err != nil {
			return fmt.Errorf("error inserting timetable %q: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, c := range t.Classes {
			if _, err := tx.Exec(createClassSQL, id, c.Name, c.Row, c.Col); err != nil {
				return fmt.Errorf("error inserting class %q: %w", c.Name, err)
			}
		}
	}

	return tx.Commit()
}
