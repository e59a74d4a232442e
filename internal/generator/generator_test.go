package generator

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"gopkg.in/ini.v1"

	"lecturegrid/internal/grid"
	"lecturegrid/internal/linkwriter"
)

var sampleCells = []grid.Cell{
	{Period: 1, Weekday: grid.Monday, Label: "Math"},
	{Period: 2, Weekday: grid.Tuesday, Label: "Art"},
	{Period: 3, Weekday: grid.Monday, Label: "Math"},
}

func names(t *testing.T, fs billy.Dir, dir string) []string {
	t.Helper()

	infos, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir %s: %v", dir, err)
	}

	var out []string
	for _, fi := range infos {
		out = append(out, fi.Name())
	}
	sort.Strings(out)
	return out
}

func Test_Generate_CreatesFoldersAndLinks(t *testing.T) {
	fs := memfs.New()
	g := New(fs, linkwriter.NewDesktopEntry(fs), "ja")

	res, err := g.Generate("/classes", "/week", sampleCells)
	if err != nil {
		t.Fatalf("failed to generate: %v", err)
	}

	if got := names(t, fs, "/classes"); !reflect.DeepEqual(got, []string{"Art", "Math"}) {
		t.Errorf("unexpected class folders: %v", got)
	}
	wantLinks := []string{"1.Math.desktop", "2.Art.desktop", "3.Math.desktop"}
	if got := names(t, fs, "/week"); !reflect.DeepEqual(got, wantLinks) {
		t.Errorf("unexpected links: %v", got)
	}
	if len(res.Folders) != 2 || len(res.Links) != 3 {
		t.Errorf("unexpected result: %+v", res)
	}

	f, err := fs.Open("/week/2.Art.desktop")
	if err != nil {
		t.Fatalf("failed to open link: %v", err)
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	cfg, err := ini.Load(b)
	if err != nil {
		t.Fatalf("failed to parse link: %v", err)
	}
	sec := cfg.Section("Desktop Entry")
	if got := sec.Key("URL").String(); got != "file:///classes/Art" {
		t.Errorf("link target = %q", got)
	}
	if got := sec.Key("Comment").String(); got != "2火" {
		t.Errorf("link description = %q", got)
	}
}

func Test_Generate_Idempotent(t *testing.T) {
	fs := memfs.New()
	g := New(fs, linkwriter.NewDesktopEntry(fs), "en")

	if _, err := g.Generate("/classes", "/week", sampleCells); err != nil {
		t.Fatalf("failed to generate: %v", err)
	}
	folders, links := names(t, fs, "/classes"), names(t, fs, "/week")

	if _, err := g.Generate("/classes", "/week", sampleCells); err != nil {
		t.Fatalf("failed to generate twice: %v", err)
	}

	if got := names(t, fs, "/classes"); !reflect.DeepEqual(got, folders) {
		t.Errorf("folders changed: %v != %v", got, folders)
	}
	if got := names(t, fs, "/week"); !reflect.DeepEqual(got, links) {
		t.Errorf("links changed: %v != %v", got, links)
	}
}

func Test_Generate_MissingInput(t *testing.T) {
	fs := memfs.New()
	g := New(fs, linkwriter.NewDesktopEntry(fs), "ja")

	for _, tt := range [][2]string{{"", "/week"}, {"/classes", ""}, {"", ""}} {
		if _, err := g.Generate(tt[0], tt[1], sampleCells); !errors.Is(err, ErrMissingInput) {
			t.Errorf("Generate(%q, %q) error = %v, want %v", tt[0], tt[1], err, ErrMissingInput)
		}
	}

	if infos, _ := fs.ReadDir("/"); len(infos) != 0 {
		t.Errorf("nothing should be written on missing input")
	}
}

func Test_Generate_SymlinkTargets(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	dir := t.TempDir()
	src, links := filepath.Join(dir, "classes"), filepath.Join(dir, "week")
	g := New(osfs.Default, linkwriter.NewSymlink(osfs.Default), "ja")

	if _, err := g.Generate(src, links, sampleCells); err != nil {
		t.Fatalf("failed to generate: %v", err)
	}

	for _, c := range sampleCells {
		target, err := os.Readlink(filepath.Join(links, LinkName(c, "link")))
		if err != nil {
			t.Fatalf("failed to read link for %+v: %v", c, err)
		}
		if want := filepath.Join(src, c.Label); target != want {
			t.Errorf("link for %+v points at %q, want %q", c, target, want)
		}
		if fi, err := os.Stat(target); err != nil || !fi.IsDir() {
			t.Errorf("class folder %s missing: %v", target, err)
		}
	}
}

func Test_Generate_SamePeriodAndLabelOverwrites(t *testing.T) {
	fs := memfs.New()
	g := New(fs, linkwriter.NewDesktopEntry(fs), "ja")

	cells := []grid.Cell{
		{Period: 1, Weekday: grid.Monday, Label: "Math"},
		{Period: 1, Weekday: grid.Thursday, Label: "Math"},
	}
	if _, err := g.Generate("/classes", "/week", cells); err != nil {
		t.Fatalf("failed to generate: %v", err)
	}

	if got := names(t, fs, "/week"); !reflect.DeepEqual(got, []string{"1.Math.desktop"}) {
		t.Errorf("unexpected links: %v", got)
	}
}

func Test_Description(t *testing.T) {
	if got := Description(grid.Wednesday, "ja"); got != "3水" {
		t.Errorf("Description() = %q", got)
	}
	if got := Description(grid.Friday, "en"); got != "5Fri" {
		t.Errorf("Description() = %q", got)
	}
}
