package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

const storeMode = 0o644

// FS is the filesystem the JSON store is written to.
type FS interface {
	billy.Basic
	billy.Dir
	billy.TempFile
}

// JSONFile persists the store as one indented JSON document.
type JSONFile struct {
	fs   FS
	path string
}

func NewJSONFile(fs FS, path string) *JSONFile {
	return &JSONFile{fs: fs, path: path}
}

func (j *JSONFile) Path() string {
	return j.path
}

func (j *JSONFile) Load() (*Store, error) {
	f, err := j.fs.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", j.path, err)
	}
	return s, nil
}

// Save writes to a temp file next to the target and renames it over the
// target.
func (j *JSONFile) Save(s *Store) error {
	dir := filepath.Dir(j.path)
	if dir != "." {
		if err := j.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	tmp, err := j.fs.TempFile(dir, ".timetables-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		tmp.Close()
		j.fs.Remove(tmp.Name())
		return fmt.Errorf("encode store: %w", err)
	}

	if err := tmp.Close(); err != nil {
		j.fs.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := j.keepMode(tmp.Name()); err != nil {
		j.fs.Remove(tmp.Name())
		return fmt.Errorf("set store mode: %w", err)
	}

	if err := j.fs.Rename(tmp.Name(), j.path); err != nil {
		j.fs.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}

	return nil
}

// keepMode gives the temp file the mode of the file it replaces, or
// storeMode for a new store.
func (j *JSONFile) keepMode(tmp string) error {
	ch, ok := j.fs.(billy.Change)
	if !ok {
		return nil
	}

	mode := os.FileMode(storeMode)
	if fi, err := j.fs.Stat(j.path); err == nil {
		mode = fi.Mode().Perm()
	}
	return ch.Chmod(tmp, mode)
}

func (j *JSONFile) Close() error {
	return nil
}
