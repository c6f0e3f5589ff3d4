// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup holds the static vocabularies and correction tables used by
// the extract and normalize stages. Tables are built once and never mutated;
// every accessor is safe for concurrent use.
package lookup

import (
	"maps"
	"slices"
	"strings"
)

var defaultCities = []string{
	"bangalore", "bengaluru", "banglore",
	"delhi", "delhii",
	"chennai", "mumbai", "kolkata", "pune",
}

var defaultProducts = []string{
	"iphone", "samsung tv", "laptop", "headphones",
	"washingmachine", "mobile", "ac", "refrigerator",
}

var defaultCityCorrections = map[string]string{
	"banglore":  "Bangalore",
	"bengaluru": "Bangalore",
	"delhii":    "Delhi",
}

var defaultPriceText = map[string]float64{
	"55k":            55000,
	"fifty thousand": 50000,
}

var defaultAgeText = map[string]int{
	"thirty four": 34,
}

// Tables is an immutable set of vocabularies and correction maps.
type Tables struct {
	cities          []string
	products        []string
	cityCorrections map[string]string
	priceText       map[string]float64
	ageText         map[string]int
}

// Default returns the built-in tables.
func Default() *Tables {
	return &Tables{
		cities:          slices.Clone(defaultCities),
		products:        slices.Clone(defaultProducts),
		cityCorrections: maps.Clone(defaultCityCorrections),
		priceText:       maps.Clone(defaultPriceText),
		ageText:         maps.Clone(defaultAgeText),
	}
}

// Cities returns the known city spellings, misspellings included, in match
// priority order.
func (t *Tables) Cities() []string {
	return slices.Clone(t.cities)
}

// Products returns the known product names in match priority order.
func (t *Tables) Products() []string {
	return slices.Clone(t.products)
}

// CorrectCity returns the canonical spelling for a known variant.
func (t *Tables) CorrectCity(raw string) (string, bool) {
	v, ok := t.cityCorrections[raw]
	return v, ok
}

// PriceText returns the numeric value of a textual price such as "55k".
func (t *Tables) PriceText(s string) (float64, bool) {
	v, ok := t.priceText[s]
	return v, ok
}

// AgeText returns the numeric value of a spelled-out age.
func (t *Tables) AgeText(s string) (int, bool) {
	v, ok := t.ageText[s]
	return v, ok
}

// Overrides are user-supplied additions to the built-in tables. Keys are
// matched against lowercased text, so they are lowercased on merge.
type Overrides struct {
	Cities          []string           `json:"cities" yaml:"cities" toml:"cities"`
	Products        []string           `json:"products" yaml:"products" toml:"products"`
	CityCorrections map[string]string  `json:"city_corrections" yaml:"city_corrections" toml:"city_corrections"`
	PriceText       map[string]float64 `json:"price_text" yaml:"price_text" toml:"price_text"`
	AgeText         map[string]int     `json:"age_text" yaml:"age_text" toml:"age_text"`
}

// IsEmpty reports whether the overrides add nothing.
func (o Overrides) IsEmpty() bool {
	return len(o.Cities) == 0 && len(o.Products) == 0 &&
		len(o.CityCorrections) == 0 && len(o.PriceText) == 0 && len(o.AgeText) == 0
}

// Merge returns new tables with o layered over t. Vocabulary entries are
// appended after the existing ones so built-in priority is kept; map entries
// replace existing keys.
func (t *Tables) Merge(o Overrides) *Tables {
	out := &Tables{
		cities:          appendVocab(t.cities, o.Cities),
		products:        appendVocab(t.products, o.Products),
		cityCorrections: maps.Clone(t.cityCorrections),
		priceText:       maps.Clone(t.priceText),
		ageText:         maps.Clone(t.ageText),
	}
	for k, v := range o.CityCorrections {
		out.cityCorrections[normKey(k)] = v
	}
	for k, v := range o.PriceText {
		out.priceText[normKey(k)] = v
	}
	for k, v := range o.AgeText {
		out.ageText[normKey(k)] = v
	}
	return out
}

func appendVocab(base, extra []string) []string {
	out := slices.Clone(base)
	for _, e := range extra {
		e = normKey(e)
		if e == "" || slices.Contains(out, e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func normKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
