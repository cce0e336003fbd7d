// Package timeutil parses calendar look-back windows such as "2w" or "1y3m".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the fallback look-back used when none is provided.
	DefaultWindow = "1w"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]string{
		"d":      "d",
		"day":    "d",
		"days":   "d",
		"w":      "w",
		"wk":     "w",
		"wks":    "w",
		"week":   "w",
		"weeks":  "w",
		"m":      "m",
		"mo":     "m",
		"month":  "m",
		"months": "m",
		"y":      "y",
		"yr":     "y",
		"yrs":    "y",
		"year":   "y",
		"years":  "y",
	}
)

// Window is a span of whole calendar units, applied with time.AddDate and
// normalized the same way.
type Window struct {
	Years  int
	Months int
	Days   int
}

// ParseWindow parses a human-friendly window ("3d", "2w", "1y6m") and returns
// it with a canonical, compact label. An empty input means one week.
func ParseWindow(input string) (Window, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	var w Window
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return Window{}, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		switch unit {
		case "d":
			w.Days += value
		case "w":
			w.Days += 7 * value
		case "m":
			w.Months += value
		case "y":
			w.Years += value
		}
		remaining = remaining[len(matches[0]):]
	}

	if w.IsZero() {
		return Window{}, "", fmt.Errorf("window must be greater than zero")
	}
	return w, w.String(), nil
}

// IsZero reports whether the window spans nothing.
func (w Window) IsZero() bool {
	return w.Years == 0 && w.Months == 0 && w.Days == 0
}

// Since returns the first day inside the window ending on now's day.
func (w Window) Since(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(-w.Years, -w.Months, -w.Days)
}

// String renders the window using y/m/w/d tokens.
func (w Window) String() string {
	if w.IsZero() {
		return "0d"
	}
	var parts []string
	if w.Years > 0 {
		parts = append(parts, fmt.Sprintf("%dy", w.Years))
	}
	if w.Months > 0 {
		parts = append(parts, fmt.Sprintf("%dm", w.Months))
	}
	if weeks := w.Days / 7; weeks > 0 {
		parts = append(parts, fmt.Sprintf("%dw", weeks))
	}
	if days := w.Days % 7; days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	return strings.Join(parts, "")
}
