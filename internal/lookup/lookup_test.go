// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tbl := Default()

	v, ok := tbl.CorrectCity("banglore")
	assert.True(t, ok)
	assert.Equal(t, "Bangalore", v)

	v, ok = tbl.CorrectCity("bengaluru")
	assert.True(t, ok)
	assert.Equal(t, "Bangalore", v)

	_, ok = tbl.CorrectCity("pune")
	assert.False(t, ok)

	p, ok := tbl.PriceText("fifty thousand")
	assert.True(t, ok)
	assert.Equal(t, 50000.0, p)

	a, ok := tbl.AgeText("thirty four")
	assert.True(t, ok)
	assert.Equal(t, 34, a)

	assert.Equal(t, "bangalore", tbl.Cities()[0])
	assert.Equal(t, "iphone", tbl.Products()[0])
}

func TestAccessorsReturnCopies(t *testing.T) {
	tbl := Default()
	cities := tbl.Cities()
	cities[0] = "atlantis"
	assert.Equal(t, "bangalore", tbl.Cities()[0])
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(Overrides{
		Cities:          []string{" Hyderabad ", "pune"},
		Products:        []string{"Kindle"},
		CityCorrections: map[string]string{"Hydrabad": "Hyderabad"},
		PriceText:       map[string]float64{"one lakh": 100000},
		AgeText:         map[string]int{"Twenty": 20},
	})

	assert.Equal(t, "hyderabad", merged.Cities()[len(merged.Cities())-1])
	assert.Len(t, merged.Cities(), len(base.Cities())+1, "duplicate pune should not be appended")
	assert.Contains(t, merged.Products(), "kindle")

	v, ok := merged.CorrectCity("hydrabad")
	assert.True(t, ok)
	assert.Equal(t, "Hyderabad", v)

	p, ok := merged.PriceText("one lakh")
	assert.True(t, ok)
	assert.Equal(t, 100000.0, p)

	a, ok := merged.AgeText("twenty")
	assert.True(t, ok)
	assert.Equal(t, 20, a)

	_, ok = base.PriceText("one lakh")
	assert.False(t, ok, "merge must not modify the receiver")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		errIs   error
		check   func(t *testing.T, tbl *Tables)
	}{
		{
			name: "yaml",
			path: "/cfg/lookup.yaml",
			content: `cities: [hyderabad]
city_corrections:
  hydrabad: Hyderabad
price_text:
  one lakh: 100000
`,
			check: func(t *testing.T, tbl *Tables) {
				v, ok := tbl.CorrectCity("hydrabad")
				assert.True(t, ok)
				assert.Equal(t, "Hyderabad", v)
				p, _ := tbl.PriceText("one lakh")
				assert.Equal(t, 100000.0, p)
			},
		},
		{
			name: "toml",
			path: "/cfg/lookup.toml",
			content: `products = ["kindle"]

[price_text]
"one lakh" = 100000.0

[age_text]
"forty" = 40
`,
			check: func(t *testing.T, tbl *Tables) {
				assert.Contains(t, tbl.Products(), "kindle")
				p, _ := tbl.PriceText("one lakh")
				assert.Equal(t, 100000.0, p)
				a, _ := tbl.AgeText("forty")
				assert.Equal(t, 40, a)
			},
		},
		{
			name:    "json",
			path:    "/cfg/lookup.json",
			content: `{"city_corrections": {"bombay": "Mumbai"}}`,
			check: func(t *testing.T, tbl *Tables) {
				v, ok := tbl.CorrectCity("bombay")
				assert.True(t, ok)
				assert.Equal(t, "Mumbai", v)
			},
		},
		{
			name:    "unsupported extension",
			path:    "/cfg/lookup.ini",
			content: "x=y",
			errIs:   ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))

			tbl, err := Load(fs, tt.path)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			tt.check(t, tbl)
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	tbl, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Default().Cities(), tbl.Cities())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading lookup file")
}

func TestLoadMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("{"), 0o644))
	_, err := Load(fs, "/bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing lookup file")
}
