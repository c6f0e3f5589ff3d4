// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "purchases.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.CleanRecord {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	return []types.CleanRecord{
		{
			Line: 1, Name: types.Ptr("Amit"), Age: types.Ptr(34), City: types.Ptr("Bangalore"),
			Product: types.Ptr("Iphone"), Price: types.Ptr(55000.0), PurchaseDate: &d,
		},
		{Line: 2, City: types.Ptr("Bangalore"), Price: types.Ptr(50000.0)},
		{Line: 3, City: types.Ptr("Pune")},
		{Line: 4},
	}
}

func TestSaveRunAndRecords(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	recs := sampleRecords()

	id, err := s.SaveRun(ctx, Run{Input: "in.txt", Output: "out.csv", StartedAt: time.Now()}, recs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.Records(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	latest, err := s.Records(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, recs, latest)
}

func TestRuns(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.SaveRun(ctx, Run{Input: "a.txt", Output: "a.csv", StartedAt: time.Now()}, sampleRecords())
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, Run{Input: "b.txt", Output: "b.csv", StartedAt: time.Now()}, nil)
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b.txt", runs[0].Input)
	assert.Equal(t, 0, runs[0].Rows)
	assert.Equal(t, 4, runs[1].Rows)
	assert.False(t, runs[1].StartedAt.IsZero())
}

func TestCitySummaries(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.SaveRun(ctx, Run{Input: "in.txt", Output: "out.csv", StartedAt: time.Now()}, sampleRecords())
	require.NoError(t, err)

	got, err := s.CitySummaries(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []CitySummary{
		{City: "Bangalore", Purchases: 2, Priced: 2, Total: 105000},
		{City: "", Purchases: 1, Priced: 0, Total: 0},
		{City: "Pune", Purchases: 1, Priced: 0, Total: 0},
	}, got)
}

func TestQueriesWithoutRuns(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Records(ctx, 0)
	assert.ErrorIs(t, err, ErrNoRuns)

	_, err = s.CitySummaries(ctx, 0)
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "purchases.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, Run{Input: "in.txt", Output: "out.csv", StartedAt: time.Now()}, sampleRecords())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
