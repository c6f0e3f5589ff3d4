// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records that flow between pipeline stages and the
// configuration shared by the CLI and the stage packages.
package types

import "time"

// RawRecord holds the text matched for each field of one input line, with no
// validation or conversion applied. A nil field means the pattern did not
// match anywhere on the line.
type RawRecord struct {
	// Line is the 1-based line number in the input.
	Line int `json:"line" yaml:"line"`

	NameRaw    *string `json:"name_raw" yaml:"name_raw"`
	AgeRaw     *string `json:"age_raw" yaml:"age_raw"`
	CityRaw    *string `json:"city_raw" yaml:"city_raw"`
	ProductRaw *string `json:"product_raw" yaml:"product_raw"`
	PriceRaw   *string `json:"price_raw" yaml:"price_raw"`
	DateRaw    *string `json:"date_raw" yaml:"date_raw"`
}

// CleanRecord is the typed, validated form of exactly one RawRecord.
// A nil field is absent and renders as an empty cell.
type CleanRecord struct {
	Line int `json:"line" yaml:"line"`

	Name         *string    `json:"name" yaml:"name"`
	Age          *int       `json:"age" yaml:"age"`
	City         *string    `json:"city" yaml:"city"`
	Product      *string    `json:"product" yaml:"product"`
	Price        *float64   `json:"price" yaml:"price"`
	PurchaseDate *time.Time `json:"purchase_date" yaml:"purchase_date"`
}

// Columns is the fixed output column order.
var Columns = []string{"name", "age", "city", "product", "price", "purchase_date"}

// DateLayout is the textual form of PurchaseDate in every output.
const DateLayout = "2006-01-02"

// AbsentCounts reports how many records have each column absent.
type AbsentCounts map[string]int

// CountAbsent tallies absent fields across recs, keyed by column name.
func CountAbsent(recs []CleanRecord) AbsentCounts {
	counts := AbsentCounts{}
	for _, c := range Columns {
		counts[c] = 0
	}
	for _, r := range recs {
		if r.Name == nil {
			counts["name"]++
		}
		if r.Age == nil {
			counts["age"]++
		}
		if r.City == nil {
			counts["city"]++
		}
		if r.Product == nil {
			counts["product"]++
		}
		if r.Price == nil {
			counts["price"]++
		}
		if r.PurchaseDate == nil {
			counts["purchase_date"]++
		}
	}
	return counts
}

// Ptr returns a pointer to v. It keeps literals in tests and table code short.
func Ptr[T any](v T) *T {
	return &v
}
