// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/purchase-wrangler/internal/pipeline"
	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, pipeline.Result{
		Output: "out.csv",
		Rows:   3,
		Absent: types.AbsentCounts{"price": 2, "age": 1, "name": 0},
		RunID:  7,
	})

	want := "Wrote 3 rows to out.csv\n" +
		"  age            1 empty\n" +
		"  price          2 empty\n" +
		"Recorded as run 7\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintResultWithoutRun(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, pipeline.Result{Output: "out.csv"})
	assert.Equal(t, "Wrote 0 rows to out.csv\n", buf.String())
}

func TestEncode(t *testing.T) {
	v := map[string]int{"rows": 2}

	tests := []struct {
		format string
		want   string
	}{
		{"yaml", "rows: 2\n"},
		{"", "rows: 2\n"},
		{"json", "{\n  \"rows\": 2\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf, tt.format, v))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := encode(&buf, "xml", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestBindFlagsSkipsMissing(t *testing.T) {
	require.NoError(t, bindFlags(versionCmd.Flags(), stageFlags))
}
