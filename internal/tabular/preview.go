// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

// absentMark stands in for absent cells in terminal output only.
const absentMark = "-"

// Table writes header and rows as space-aligned columns. Widths are measured
// in terminal cells, so wide runes such as ₹ or CJK text line up. Cells
// wider than maxWidth are truncated with "..."; maxWidth <= 0 disables
// truncation.
func Table(w io.Writer, header []string, rows [][]string, maxWidth int) error {
	widths := make([]int, len(header))
	cell := func(s string) string {
		if maxWidth > 0 {
			s = runewidth.Truncate(s, maxWidth, "...")
		}
		return s
	}
	for i, h := range header {
		widths[i] = runewidth.StringWidth(cell(h))
	}
	for _, row := range rows {
		for i := range header {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell(row[i])))
			}
		}
	}

	writeLine := func(cells []string) error {
		var b strings.Builder
		for i := range header {
			v := ""
			if i < len(cells) {
				v = cell(cells[i])
			}
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(header)-1 {
				b.WriteString(v)
			} else {
				b.WriteString(runewidth.FillRight(v, widths[i]))
			}
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
		return err
	}

	if err := writeLine(header); err != nil {
		return err
	}
	total := 0
	for _, wd := range widths {
		total += wd
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", total+2*(len(widths)-1))); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeLine(row); err != nil {
			return err
		}
	}
	return nil
}

// Preview prints cleaned records as an aligned table with a line-number
// column and a trailing count.
func Preview(w io.Writer, recs []types.CleanRecord, maxWidth int) error {
	header := append([]string{"#"}, types.Columns...)
	rows := make([][]string, len(recs))
	for i, r := range recs {
		cells := Row(r)
		for j, c := range cells {
			if c == "" {
				cells[j] = absentMark
			}
		}
		rows[i] = append([]string{fmt.Sprint(r.Line)}, cells...)
	}
	if err := Table(w, header, rows, maxWidth); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d rows\n", len(recs))
	return err
}
