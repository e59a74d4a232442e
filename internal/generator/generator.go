// Package generator creates class folders and per-slot links from a grid.
package generator

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-git/go-billy/v5"

	"lecturegrid/internal/grid"
	"lecturegrid/internal/linkwriter"
)

var ErrMissingInput = errors.New("both the class folder and the link folder must be set")

// FS is the filesystem the generator writes to.
type FS interface {
	billy.Basic
	billy.Dir
}

// Generator writes through fs. Days selects the day label set used in link
// descriptions.
type Generator struct {
	fs     FS
	writer linkwriter.LinkWriter
	days   string
}

func New(fs FS, writer linkwriter.LinkWriter, days string) *Generator {
	return &Generator{fs: fs, writer: writer, days: days}
}

// Result lists what a run wrote, in write order.
type Result struct {
	Folders []string
	Links   []string
}

// LinkName returns the file name of the link for a cell.
func LinkName(c grid.Cell, ext string) string {
	name := strconv.Itoa(c.Period) + "." + c.Label
	if ext != "" {
		name += "." + ext
	}
	return name
}

// Description returns the link description for a cell, e.g. "1月".
func Description(day grid.Weekday, days string) string {
	return strconv.Itoa(int(day)+1) + day.Label(days)
}

// Generate ensures a folder per label under sourceFolder and writes one link
// per cell under linkFolder. It stops at the first failure; whatever was
// written before stays.
func (g *Generator) Generate(sourceFolder, linkFolder string, cells []grid.Cell) (Result, error) {
	var res Result
	if sourceFolder == "" || linkFolder == "" {
		return res, ErrMissingInput
	}

	if err := g.fs.MkdirAll(linkFolder, 0o755); err != nil {
		return res, fmt.Errorf("create link folder: %w", err)
	}

	seen := make(map[string]bool)
	for _, c := range cells {
		if c.Label == "" {
			continue
		}

		classFolder := g.fs.Join(sourceFolder, c.Label)
		if err := g.fs.MkdirAll(classFolder, 0o755); err != nil {
			return res, fmt.Errorf("create class folder %q: %w", c.Label, err)
		}
		if !seen[classFolder] {
			seen[classFolder] = true
			res.Folders = append(res.Folders, classFolder)
		}

		linkPath := g.fs.Join(linkFolder, LinkName(c, g.writer.Extension()))
		link := linkwriter.Link{
			Target:      classFolder,
			WorkingDir:  classFolder,
			Description: Description(c.Weekday, g.days),
		}
		if err := g.writer.Write(linkPath, link); err != nil {
			return res, fmt.Errorf("create link %q: %w", linkPath, err)
		}
		res.Links = append(res.Links, linkPath)
	}

	return res, nil
}
