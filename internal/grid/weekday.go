package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday is a 0-based column of the timetable, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// day label sets, keyed by the value of the days setting
var dayLabels = map[string][Days]string{
	"ja": {"月", "火", "水", "木", "金"},
	"en": {"Mon", "Tue", "Wed", "Thu", "Fri"},
}

var englishNames = [Days]string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// DefaultLabels is the label set used when none is configured.
const DefaultLabels = "ja"

// LabelSets returns the names of the known day label sets.
func LabelSets() []string {
	return []string{"ja", "en"}
}

// DayLabels returns the column headers for the given label set.
func DayLabels(set string) ([Days]string, error) {
	labels, ok := dayLabels[set]
	if !ok {
		return [Days]string{}, fmt.Errorf("unknown day labels %q", set)
	}
	return labels, nil
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Friday
}

// Label returns the day label of d in the given set, falling back to the
// default set for unknown names.
func (d Weekday) Label(set string) string {
	labels, ok := dayLabels[set]
	if !ok {
		labels = dayLabels[DefaultLabels]
	}
	if !d.Valid() {
		return ""
	}
	return labels[d]
}

func (d Weekday) String() string {
	return d.Label("en")
}

// ParseWeekday accepts english names or abbreviations, 1-based column
// numbers and any known day label.
func ParseWeekday(s string) (Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty weekday")
	}

	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > Days {
			return 0, fmt.Errorf("weekday %d out of range 1-%d", n, Days)
		}
		return Weekday(n - 1), nil
	}

	for i, name := range englishNames {
		if len(v) >= 3 && strings.HasPrefix(name, v) {
			return Weekday(i), nil
		}
	}

	for _, labels := range dayLabels {
		for i, label := range labels {
			if strings.ToLower(label) == v {
				return Weekday(i), nil
			}
		}
	}

	return 0, fmt.Errorf("unknown weekday %q", s)
}
