// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns RawRecords into typed CleanRecords. Values that
// cannot be parsed or fall outside their valid range become absent; nothing
// in this package returns an error or drops a row.
package normalize

import (
	"math"
	"strings"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/purchase-wrangler/internal/lookup"
	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

const (
	minAge = 0
	maxAge = 100
)

// currencyStripper removes currency marks and digit grouping. The mojibake
// form of the rupee sign shows up in files that were decoded as cp1252.
var currencyStripper = strings.NewReplacer(
	"â‚¹", "",
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	",", "",
)

// Normalizer converts raw records using a fixed set of lookup tables.
type Normalizer struct {
	tables  *lookup.Tables
	workers int
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithWorkers sets how many goroutines All uses. Values below 2 keep All
// sequential.
func WithWorkers(n int) Option {
	return func(nz *Normalizer) {
		nz.workers = n
	}
}

// New returns a Normalizer backed by t.
func New(t *lookup.Tables, opts ...Option) *Normalizer {
	nz := &Normalizer{tables: t, workers: 1}
	for _, o := range opts {
		o(nz)
	}
	return nz
}

// Normalize returns the clean form of raw. It is a pure function of raw and
// the tables.
func (n *Normalizer) Normalize(raw types.RawRecord) types.CleanRecord {
	return types.CleanRecord{
		Line:         raw.Line,
		Name:         titleOrNil(raw.NameRaw),
		Age:          n.age(raw.AgeRaw),
		City:         n.city(raw.CityRaw),
		Product:      titleOrNil(raw.ProductRaw),
		Price:        n.price(raw.PriceRaw),
		PurchaseDate: purchaseDate(raw.DateRaw),
	}
}

// All normalizes every record, keeping input order.
func (n *Normalizer) All(raws []types.RawRecord) []types.CleanRecord {
	if n.workers < 2 || len(raws) < 2 {
		out := make([]types.CleanRecord, len(raws))
		for i, r := range raws {
			out[i] = n.Normalize(r)
		}
		return out
	}

	mapper := iter.Mapper[types.RawRecord, types.CleanRecord]{MaxGoroutines: n.workers}
	return mapper.Map(raws, func(r *types.RawRecord) types.CleanRecord {
		return n.Normalize(*r)
	})
}

func (n *Normalizer) age(raw *string) *int {
	if raw == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(*raw))
	if s == "" {
		return nil
	}

	v, ok := n.tables.AgeText(s)
	if !ok {
		f, err := cast.ToFloat64E(s)
		// Range-check the float before converting so huge values cannot wrap.
		if err != nil || !finite(f) || f != math.Trunc(f) || f < minAge || f > maxAge {
			return nil
		}
		v = int(f)
	}
	if v < minAge || v > maxAge {
		return nil
	}
	return &v
}

func (n *Normalizer) city(raw *string) *string {
	if raw == nil {
		return nil
	}
	c := *raw
	if fixed, ok := n.tables.CorrectCity(c); ok {
		c = fixed
	}
	c = titleCase(c)
	return &c
}

func (n *Normalizer) price(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(strings.ToLower(currencyStripper.Replace(*raw)))
	if s == "" {
		return nil
	}

	if v, ok := n.tables.PriceText(s); ok {
		return &v
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || !finite(v) {
		return nil
	}
	return &v
}

func titleOrNil(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := titleCase(*raw)
	return &s
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest. A Caser is stateful, so each call builds its own.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
