// Package linkwriter writes navigable pointers to folders: a freedesktop
// link entry, a Windows Internet Shortcut, or a plain symbolic link.
package linkwriter

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Link describes the pointer to write.
type Link struct {
	Target      string
	WorkingDir  string
	Description string
}

// FS is the filesystem link writers need.
type FS interface {
	billy.Basic
	billy.Symlink
}

// LinkWriter creates a link file at a path, replacing any existing one.
type LinkWriter interface {
	// Extension is the file extension of written links, without the dot.
	Extension() string
	Write(path string, link Link) error
}

const (
	KindAuto     = "auto"
	KindDesktop  = "desktop"
	KindURL      = "url"
	KindSymlink  = "symlink"
	defaultKinds = "auto, desktop, url, symlink"
)

// Kinds returns the accepted writer kinds.
func Kinds() []string {
	return []string{KindAuto, KindDesktop, KindURL, KindSymlink}
}

// New returns the writer of the given kind over fs. KindAuto picks the
// native format of the running platform.
func New(kind string, fs FS) (LinkWriter, error) {
	switch strings.ToLower(kind) {
	case KindAuto, "":
		if runtime.GOOS == "windows" {
			return NewInternetShortcut(fs), nil
		}
		return NewDesktopEntry(fs), nil
	case KindDesktop:
		return NewDesktopEntry(fs), nil
	case KindURL:
		return NewInternetShortcut(fs), nil
	case KindSymlink:
		return NewSymlink(fs), nil
	default:
		return nil, fmt.Errorf("unknown link kind %q (want one of %s)", kind, defaultKinds)
	}
}

// fileURL turns a local path into a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// drive letter paths
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
