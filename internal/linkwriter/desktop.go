package linkwriter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"gopkg.in/ini.v1"
)

const (
	desktopSection = "Desktop Entry"
	desktopIcon    = "folder"
)

// DesktopEntry writes freedesktop.org entries of type Link.
type DesktopEntry struct {
	fs billy.Basic
}

func NewDesktopEntry(fs billy.Basic) *DesktopEntry {
	return &DesktopEntry{fs: fs}
}

func (d *DesktopEntry) Extension() string {
	return "desktop"
}

func (d *DesktopEntry) Write(path string, link Link) error {
	cfg := newINI()
	sec, err := cfg.NewSection(desktopSection)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), "."+d.Extension())
	keys := [][2]string{
		{"Version", "1.0"},
		{"Type", "Link"},
		{"Name", name},
		{"Comment", link.Description},
		{"URL", fileURL(link.Target)},
		{"Path", link.WorkingDir},
		{"Icon", desktopIcon},
	}
	if err := setKeys(sec, keys); err != nil {
		return fmt.Errorf("desktop entry: %w", err)
	}

	return writeINI(d.fs, path, cfg)
}

// newINI returns an empty file whose values are written verbatim, '#' and
// ';' included.
func newINI() *ini.File {
	return ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
}

// setKeys adds keys in order, skipping empty values.
func setKeys(sec *ini.Section, keys [][2]string) error {
	for _, kv := range keys {
		if kv[1] == "" {
			continue
		}
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("key %s: %w", kv[0], err)
		}
	}
	return nil
}

// writeINI truncates path and writes cfg to it.
func writeINI(fs billy.Basic, path string, cfg *ini.File) error {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}

	if _, err := cfg.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
