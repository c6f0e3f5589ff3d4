// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
	"time"
)

// isoLayouts accept year-first dates after "/" has been folded to "-".
// Single-digit month and day fields also accept two digits.
var isoLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2T15:04:05",
	time.RFC3339,
}

// humanLayouts are tried in order; numeric forms are day-first, with
// month-first only as a last resort for values like 01/13/2024.
var humanLayouts = []string{
	"2 Jan 06",
	"2 Jan 2006",
	"2 January 06",
	"2 January 2006",
	"2 Jan, 2006",
	"2 January, 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 06",
	"January 2 06",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"1/2/2006",
	"1-2-2006",
}

var (
	ordinalSuffix = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)
	spaceRun      = regexp.MustCompile(`\s+`)
	septAbbrev    = regexp.MustCompile(`\bsept\b`)
)

func purchaseDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	t, ok := ParseDate(*raw)
	if !ok {
		return nil
	}
	return &t
}

// ParseDate reads a purchase date. Text that starts with a four-digit year
// and contains "-" or "/" is read year-first; anything else goes through the
// day-first human layouts. The result is midnight UTC unless the text carries
// a time of day.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if isISOish(s) {
		return parseAny(strings.ReplaceAll(s, "/", "-"), isoLayouts)
	}

	s = strings.ToLower(s)
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = spaceRun.ReplaceAllString(s, " ")
	s = septAbbrev.ReplaceAllString(s, "sep")
	return parseAny(s, humanLayouts)
}

func isISOish(s string) bool {
	if len(s) < 4 {
		return false
	}
	for _, c := range s[:4] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return strings.ContainsAny(s, "-/")
}

func parseAny(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
