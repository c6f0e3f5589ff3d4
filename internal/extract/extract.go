// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls raw purchase fields out of free-form text lines.
// Every line yields exactly one RawRecord; a field that does not match is
// left nil and never reported as an error.
package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/purchase-wrangler/internal/lookup"
	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

var (
	// An optional "name:" label, then the first run of 3+ letters.
	namePattern = regexp.MustCompile(`(?:name:\s*)?([a-z]{3,})`)

	// "age: 34", "age=-5", "age 12", or "32 yrs".
	agePattern = regexp.MustCompile(`age[:=]?\s*(-?\d+)|(\d+)\s*yrs`)

	// "₹55,000", "55000", "55k", "fifty thousand".
	pricePattern = regexp.MustCompile(`₹?\s*\d{1,3},?\d{3}|\d+\s*k|fifty thousand`)

	// "2024-01-05", "2024/01/05", "10 jan 24", "jan 10 2024".
	datePattern = regexp.MustCompile(`\d{4}[-/]\d{2}[-/]\d{2}|\d{1,2}\s\w+\s\d{2,4}|\w+\s\d{1,2}\s\d{4}`)
)

// Extractor matches fields against the vocabularies of a lookup table set.
// It holds no per-call state and may be shared between goroutines.
type Extractor struct {
	cities   []string
	products []string
}

// New returns an Extractor using the city and product vocabularies of t.
func New(t *lookup.Tables) *Extractor {
	return &Extractor{
		cities:   t.Cities(),
		products: t.Products(),
	}
}

// Line extracts the raw fields of a single line. The returned record has
// Line set to zero; Lines and Read number records.
func (e *Extractor) Line(text string) types.RawRecord {
	s := strings.ToLower(norm.NFKC.String(strings.TrimRight(text, "\r\n")))

	var rec types.RawRecord

	if m := namePattern.FindStringSubmatch(s); m != nil {
		rec.NameRaw = &m[1]
	}

	if m := agePattern.FindStringSubmatch(s); m != nil {
		switch {
		case m[1] != "":
			rec.AgeRaw = &m[1]
		case m[2] != "":
			rec.AgeRaw = &m[2]
		}
	}

	rec.CityRaw = firstContained(s, e.cities)
	rec.ProductRaw = firstContained(s, e.products)

	if m := pricePattern.FindString(s); m != "" {
		rec.PriceRaw = &m
	}
	if m := datePattern.FindString(s); m != "" {
		rec.DateRaw = &m
	}

	return rec
}

// Lines extracts one record per line, numbering them from 1.
func (e *Extractor) Lines(lines []string) []types.RawRecord {
	recs := make([]types.RawRecord, len(lines))
	for i, l := range lines {
		recs[i] = e.Line(l)
		recs[i].Line = i + 1
	}
	return recs
}

// Read extracts one record per line of r. Lines have no length limit; only
// I/O errors are returned.
func (e *Extractor) Read(r io.Reader) ([]types.RawRecord, error) {
	br := bufio.NewReader(r)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading lines: %w", err)
		}
	}
	return e.Lines(lines), nil
}

// firstContained returns the first vocabulary entry that occurs in s.
func firstContained(s string, vocab []string) *string {
	for _, v := range vocab {
		if strings.Contains(s, v) {
			return &v
		}
	}
	return nil
}
