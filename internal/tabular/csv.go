// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular renders CleanRecords as CSV files and terminal tables.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

// Row returns the cells of r in column order. Absent fields are empty.
func Row(r types.CleanRecord) []string {
	row := make([]string, len(types.Columns))
	if r.Name != nil {
		row[0] = *r.Name
	}
	if r.Age != nil {
		row[1] = strconv.Itoa(*r.Age)
	}
	if r.City != nil {
		row[2] = *r.City
	}
	if r.Product != nil {
		row[3] = *r.Product
	}
	if r.Price != nil {
		row[4] = strconv.FormatFloat(*r.Price, 'f', -1, 64)
	}
	if r.PurchaseDate != nil {
		row[5] = r.PurchaseDate.Format(types.DateLayout)
	}
	return row
}

// Encode writes a header row followed by one row per record.
func Encode(w io.Writer, recs []types.CleanRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range recs {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", r.Line, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// StagedCSV is a fully written CSV waiting in a temporary file next to its
// destination. Exactly one of Commit or Discard should be called. Until
// Commit, any previous file at the destination is left intact.
type StagedCSV struct {
	fs   afero.Fs
	tmp  string
	path string
}

// StageCSV writes recs to a temporary file beside path without touching
// path itself.
func StageCSV(fsys afero.Fs, path string, recs []types.CleanRecord) (_ *StagedCSV, err error) {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			fsys.Remove(tmpName)
		}
	}()

	if err := Encode(tmp, recs); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	return &StagedCSV{fs: fsys, tmp: tmpName, path: path}, nil
}

// Commit renames the staged file over its destination.
func (s *StagedCSV) Commit() error {
	if err := s.fs.Rename(s.tmp, s.path); err != nil {
		s.fs.Remove(s.tmp)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Discard removes the staged file, leaving the destination untouched.
func (s *StagedCSV) Discard() {
	s.fs.Remove(s.tmp)
}
