// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/purchase-wrangler/internal/lookup"
	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

func val(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want [6]string // name, age, city, product, price, date
	}{
		{
			name: "labeled fields and iso date",
			line: "Name: amit, age: 34, banglore, bought iphone for 55k on 2024-01-05",
			want: [6]string{"amit", "34", "banglore", "iphone", "55k", "2024-01-05"},
		},
		{
			name: "yrs age, currency price, day-month-year date",
			line: "Priya 28 yrs from Bengaluru on 10 Jan 24 bought a laptop for ₹55,000",
			want: [6]string{"priya", "28", "bengaluru", "laptop", "₹55,000", "10 jan 24"},
		},
		{
			name: "negative age and month-first date",
			line: "rahul age=-5 delhii headphones fifty thousand jan 10 2024",
			want: [6]string{"rahul", "-5", "delhi", "headphones", "fifty thousand", "jan 10 2024"},
		},
		{
			name: "slash iso date and plain grouped number",
			line: "NEHA age 101 Pune samsung tv 45000 2023/12/31",
			want: [6]string{"neha", "101", "pune", "samsung tv", " 45000", "2023/12/31"},
		},
		{
			name: "nothing matches",
			line: "?? ok ??",
			want: [6]string{"<nil>", "<nil>", "<nil>", "<nil>", "<nil>", "<nil>"},
		},
		{
			name: "plain words only capture a name",
			line: "hello world",
			want: [6]string{"hello", "<nil>", "<nil>", "<nil>", "<nil>", "<nil>"},
		},
		{
			name: "label word is captured as name",
			line: "age: 40, mumbai",
			want: [6]string{"age", "40", "mumbai", "<nil>", "<nil>", "<nil>"},
		},
		{
			name: "full-width digits are folded",
			line: "kiran ａｇｅ: ３０ chennai",
			want: [6]string{"kiran", "30", "chennai", "<nil>", "<nil>", "<nil>"},
		},
	}

	e := New(lookup.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Line(tt.line)
			got := [6]string{
				val(rec.NameRaw), val(rec.AgeRaw), val(rec.CityRaw),
				val(rec.ProductRaw), val(rec.PriceRaw), val(rec.DateRaw),
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineCityPriorityFollowsVocabulary(t *testing.T) {
	e := New(lookup.Default())
	rec := e.Line("moved from pune to bangalore")
	require.NotNil(t, rec.CityRaw)
	assert.Equal(t, "bangalore", *rec.CityRaw, "vocabulary order wins over position in the line")
}

func TestLineUsesOverrides(t *testing.T) {
	tbl := lookup.Default().Merge(lookup.Overrides{
		Cities:   []string{"hyderabad"},
		Products: []string{"kindle"},
	})
	rec := New(tbl).Line("sana bought a kindle in Hyderabad")
	assert.Equal(t, "hyderabad", val(rec.CityRaw))
	assert.Equal(t, "kindle", val(rec.ProductRaw))
}

func TestLinesPreservesCountAndOrder(t *testing.T) {
	lines := []string{
		"amit bought iphone",
		"",
		"?? ok ??",
		"rahul in pune",
	}
	recs := New(lookup.Default()).Lines(lines)
	require.Len(t, recs, len(lines))
	for i, r := range recs {
		assert.Equal(t, i+1, r.Line)
	}
	assert.Equal(t, "amit", val(recs[0].NameRaw))
	assert.Equal(t, types.RawRecord{Line: 2}, recs[1])
	assert.Equal(t, "rahul", val(recs[3].NameRaw))
}

func TestRead(t *testing.T) {
	input := "Name: amit, banglore\r\nhello world\n\nlast line without newline"
	recs, err := New(lookup.Default()).Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, "banglore", val(recs[0].CityRaw))
	assert.Equal(t, "last", val(recs[3].NameRaw))
	assert.Equal(t, 4, recs[3].Line)
}

func TestReadVeryLongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	input := "amit pune\n" + long + "\nravi delhi\n"

	recs, err := New(lookup.Default()).Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "pune", val(recs[0].CityRaw))
	assert.Equal(t, 2, recs[1].Line)
	assert.Equal(t, long, val(recs[1].NameRaw))
	assert.Equal(t, "delhi", val(recs[2].CityRaw))
	assert.Equal(t, 3, recs[2].Line)
}

func TestReadEmpty(t *testing.T) {
	recs, err := New(lookup.Default()).Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadError(t *testing.T) {
	_, err := New(lookup.Default()).Read(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
