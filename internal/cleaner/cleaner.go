// Package cleaner empties the link folder.
package cleaner

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

var ErrMissingInput = errors.New("no folder to clean")

// FS is the filesystem the cleaner works on.
type FS interface {
	billy.Basic
	billy.Dir
}

// Clean removes every direct entry of dir and keeps dir itself. Files and
// symlinks are removed directly, directories recursively. The first failure
// stops the pass and is returned; entries already removed stay removed.
// It returns the number of entries removed.
func Clean(fs FS, dir string) (int, error) {
	if dir == "" {
		return 0, ErrMissingInput
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}

	removed := 0
	for _, fi := range entries {
		path := fs.Join(dir, fi.Name())

		if fi.IsDir() {
			err = util.RemoveAll(fs, path)
		} else {
			err = fs.Remove(path)
		}
		if err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed++
	}

	return removed, nil
}
