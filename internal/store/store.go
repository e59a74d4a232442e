package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"lecturegrid/internal/grid"
)

// DefaultName is the timetable used when nothing has been saved yet.
const DefaultName = "default"

var ErrNotFound = errors.New("timetable not found")

// Class is a labeled cell as persisted: row and col are 0-based.
type Class struct {
	Name string `json:"name"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type Timetable struct {
	SummaryFolder  string  `json:"summary_folder"`
	ShortcutFolder string  `json:"shortcut_folder"`
	Classes        []Class `json:"classes"`
}

// Cells converts the persisted classes to grid cells.
func (t Timetable) Cells() []grid.Cell {
	cells := make([]grid.Cell, 0, len(t.Classes))
	for _, c := range t.Classes {
		cells = append(cells, grid.Cell{Period: c.Row + 1, Weekday: grid.Weekday(c.Col), Label: c.Name})
	}
	return cells
}

// ClassesFromCells converts grid cells to their persisted form.
func ClassesFromCells(cells []grid.Cell) []Class {
	classes := make([]Class, 0, len(cells))
	for _, c := range cells {
		classes = append(classes, Class{Name: c.Label, Row: c.Row(), Col: int(c.Weekday)})
	}
	return classes
}

// Store maps timetable names to timetables, keeping insertion order.
type Store struct {
	names      []string
	timetables map[string]Timetable

	// LastUsed is the name that was current at the last save.
	LastUsed string
}

func New() *Store {
	return &Store{timetables: make(map[string]Timetable)}
}

// Names returns all timetable names in insertion order.
func (s *Store) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

func (s *Store) Len() int {
	return len(s.names)
}

func (s *Store) Has(name string) bool {
	_, ok := s.timetables[name]
	return ok
}

// Get returns a copy of the named timetable.
func (s *Store) Get(name string) (Timetable, error) {
	t, ok := s.timetables[name]
	if !ok {
		return Timetable{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	t.Classes = append([]Class{}, t.Classes...)
	return t, nil
}

// Put replaces the named timetable in place, or appends it when new.
func (s *Store) Put(name string, t Timetable) {
	if s.timetables == nil {
		s.timetables = make(map[string]Timetable)
	}
	if _, ok := s.timetables[name]; !ok {
		s.names = append(s.names, name)
	}
	t.Classes = append([]Class{}, t.Classes...)
	s.timetables[name] = t
}

// Current resolves the timetable to open at startup: the last used one if
// it still exists, else the most recently inserted, else DefaultName.
func (s *Store) Current() string {
	if s.LastUsed != "" && s.Has(s.LastUsed) {
		return s.LastUsed
	}
	if n := len(s.names); n > 0 {
		return s.names[n-1]
	}
	return DefaultName
}

type storeJSON struct {
	Timetables json.RawMessage `json:"timetables"`
	LastUsed   string          `json:"last_used"`
}

// MarshalJSON writes timetables as an object in insertion order.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := marshal(s.timetables[name])
		if err != nil {
			return nil, fmt.Errorf("encode timetable %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return marshal(storeJSON{Timetables: buf.Bytes(), LastUsed: s.LastUsed})
}

// UnmarshalJSON reads the document keeping the key order of timetables.
func (s *Store) UnmarshalJSON(data []byte) error {
	var raw storeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Store{timetables: make(map[string]Timetable), LastUsed: raw.LastUsed}

	if len(raw.Timetables) == 0 || string(raw.Timetables) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Timetables))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("timetables: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("timetables: expected name, got %v", tok)
		}

		var t Timetable
		if err := dec.Decode(&t); err != nil {
			return fmt.Errorf("decode timetable %q: %w", name, err)
		}
		s.Put(name, t)
	}

	_, err = dec.Token()
	return err
}

// marshal encodes v without escaping HTML characters.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
