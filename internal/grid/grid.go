package grid

import (
	"errors"
	"strings"
)

const (
	// Periods is the number of rows in a timetable.
	Periods = 5
	// Days is the number of columns in a timetable.
	Days = 5
)

var ErrInvalidPosition = errors.New("invalid cell position")

// Cell is one labeled slot. Period is 1-based.
type Cell struct {
	Period  int
	Weekday Weekday
	Label   string
}

// Row returns the 0-based row of the cell.
func (c Cell) Row() int {
	return c.Period - 1
}

func (c Cell) Valid() bool {
	return c.Period >= 1 && c.Period <= Periods && c.Weekday.Valid()
}

// Grid is the in-memory 5x5 timetable. The zero value is an empty grid.
type Grid struct {
	slots    [Periods][Days]string
	onChange func(Cell)
	loading  bool
}

func New() *Grid {
	return &Grid{}
}

// OnChange registers fn to be called after every edit made through Set.
// Only one handler is kept.
func (g *Grid) OnChange(fn func(Cell)) {
	g.onChange = fn
}

// Set stores label at the given slot as entered. A blank label clears the
// slot.
func (g *Grid) Set(period int, day Weekday, label string) error {
	c := Cell{Period: period, Weekday: day, Label: normalize(label)}
	if !c.Valid() {
		return ErrInvalidPosition
	}

	if g.slots[c.Row()][day] == c.Label {
		return nil
	}
	g.slots[c.Row()][day] = c.Label

	if g.onChange != nil && !g.loading {
		g.onChange(c)
	}
	return nil
}

// Get returns the label at the given slot, empty when unset.
func (g *Grid) Get(period int, day Weekday) string {
	c := Cell{Period: period, Weekday: day}
	if !c.Valid() {
		return ""
	}
	return g.slots[c.Row()][day]
}

// Cells returns the non-empty slots in row-major order.
func (g *Grid) Cells() []Cell {
	var cells []Cell
	for row := 0; row < Periods; row++ {
		for col := 0; col < Days; col++ {
			if label := g.slots[row][col]; label != "" {
				cells = append(cells, Cell{Period: row + 1, Weekday: Weekday(col), Label: label})
			}
		}
	}
	return cells
}

// Load replaces every slot with cells. Cells at invalid positions are
// skipped and later duplicates win. The change handler is not called.
func (g *Grid) Load(cells []Cell) {
	g.loading = true
	defer func() { g.loading = false }()

	g.slots = [Periods][Days]string{}
	for _, c := range cells {
		if !c.Valid() {
			continue
		}
		g.slots[c.Row()][c.Weekday] = normalize(c.Label)
	}
}

// normalize maps whitespace-only labels to the empty label.
func normalize(label string) string {
	if strings.TrimSpace(label) == "" {
		return ""
	}
	return label
}

// Clear empties every slot without notifying.
func (g *Grid) Clear() {
	g.Load(nil)
}

// Labels returns the distinct labels in first-seen order.
func (g *Grid) Labels() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, c := range g.Cells() {
		if !seen[c.Label] {
			seen[c.Label] = true
			labels = append(labels, c.Label)
		}
	}
	return labels
}
