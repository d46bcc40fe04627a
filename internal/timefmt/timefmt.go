// Package timefmt parses submitted timestamps and renders them for pages.
package timefmt

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Layout is the textual form shows carry into view models.
const Layout = "2006-01-02 15:04:05"

// Named presets for the datetime template filter (English locale).
const (
	Full   = "full"
	Medium = "medium"
)

var presets = map[string]string{
	Full:   "Monday January, 2, 2006 at 3:04PM",
	Medium: "Mon 01, 02, 2006 3:04PM",
}

var parser = &now.Config{
	WeekStartDay: time.Sunday,
	TimeLocation: time.UTC,
	TimeFormats: []string{
		Layout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02",
	},
}

// Parse reads the timestamp shapes browsers and the store produce.
// Values without a zone are taken as UTC.
func Parse(value string) (time.Time, error) {
	t, err := parser.Parse(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Text renders t the way view models carry it.
func Text(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Format applies a named preset to value; any other format is used as a Go layout.
func Format(value, format string) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	if format == "" {
		format = Medium
	}
	if layout, ok := presets[format]; ok {
		format = layout
	}
	return t.Format(format), nil
}
