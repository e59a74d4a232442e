package cleaner

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

func Test_Clean_FileAndSubdirectory(t *testing.T) {
	fs := memfs.New()

	if err := util.WriteFile(fs, "/week/1.Math.desktop", []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := util.WriteFile(fs, "/week/old/nested/file", []byte("y"), 0o644); err != nil {
		t.Fatalf("failed to write nested file: %v", err)
	}

	n, err := Clean(fs, "/week")
	if err != nil {
		t.Fatalf("failed to clean: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 removed entries, got %d", n)
	}

	fi, err := fs.Stat("/week")
	if err != nil || !fi.IsDir() {
		t.Fatalf("cleaned folder should still exist: %v", err)
	}
	entries, err := fs.ReadDir("/week")
	if err != nil {
		t.Fatalf("failed to read cleaned folder: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cleaned folder is not empty: %v", entries)
	}
}

func Test_Clean_SymlinkKeepsTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "classes", "Math")
	links := filepath.Join(dir, "week")
	for _, d := range []string{target, links} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(target, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(links, "1.Math.link")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	if _, err := Clean(osfs.Default, links); err != nil {
		t.Fatalf("failed to clean: %v", err)
	}

	if entries, _ := os.ReadDir(links); len(entries) != 0 {
		t.Errorf("link folder is not empty: %v", entries)
	}
	if _, err := os.Stat(filepath.Join(target, "notes.txt")); err != nil {
		t.Errorf("symlink target content was removed: %v", err)
	}
}

func Test_Clean_Errors(t *testing.T) {
	if _, err := Clean(memfs.New(), ""); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}

	if _, err := Clean(osfs.New(t.TempDir()), "does-not-exist"); err == nil {
		t.Errorf("expected an error for a missing folder")
	}
}

var errLocked = errors.New("file is locked")

// lockedFS fails to remove one path.
type lockedFS struct {
	billy.Filesystem
	locked string
}

func (fs lockedFS) Remove(path string) error {
	if path == fs.locked {
		return errLocked
	}
	return fs.Filesystem.Remove(path)
}

func Test_Clean_StopsAtFirstError(t *testing.T) {
	mem := memfs.New()
	for _, name := range []string{"1.Art.desktop", "2.Math.desktop", "3.PE.desktop"} {
		if err := util.WriteFile(mem, mem.Join("/week", name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	fs := lockedFS{Filesystem: mem, locked: mem.Join("/week", "2.Math.desktop")}

	n, err := Clean(fs, "/week")
	if !errors.Is(err, errLocked) {
		t.Fatalf("expected %v, got %v", errLocked, err)
	}
	if n != 1 {
		t.Errorf("expected 1 removed entry, got %d", n)
	}

	entries, err := mem.ReadDir("/week")
	if err != nil {
		t.Fatalf("failed to read folder: %v", err)
	}
	var left []string
	for _, fi := range entries {
		left = append(left, fi.Name())
	}
	if want := []string{"2.Math.desktop", "3.PE.desktop"}; !reflect.DeepEqual(left, want) {
		t.Errorf("entries left = %v, want %v", left, want)
	}
}
