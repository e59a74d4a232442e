package linkwriter

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-git/go-billy/v5"
)

const (
	shortcutSection = "InternetShortcut"
	// folder icon of shell32.dll
	shortcutIconIndex = 3
)

// InternetShortcut writes Windows .url shortcut files. The format has no
// description field, so Link.Description is not written.
type InternetShortcut struct {
	fs       billy.Basic
	iconFile string
}

func NewInternetShortcut(fs billy.Basic) *InternetShortcut {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return &InternetShortcut{fs: fs, iconFile: root + `\System32\shell32.dll`}
}

func (s *InternetShortcut) Extension() string {
	return "url"
}

// IconLocation returns the icon reference in "file,index" form.
func (s *InternetShortcut) IconLocation() string {
	return s.iconFile + "," + strconv.Itoa(shortcutIconIndex)
}

func (s *InternetShortcut) Write(path string, link Link) error {
	cfg := newINI()
	sec, err := cfg.NewSection(shortcutSection)
	if err != nil {
		return err
	}

	keys := [][2]string{
		{"URL", fileURL(link.Target)},
		{"WorkingDirectory", link.WorkingDir},
		{"IconFile", s.iconFile},
		{"IconIndex", strconv.Itoa(shortcutIconIndex)},
	}
	if err := setKeys(sec, keys); err != nil {
		return fmt.Errorf("internet shortcut: %w", err)
	}

	return writeINI(s.fs, path, cfg)
}
