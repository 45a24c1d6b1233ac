package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"atlasgo/pkg/db"
	"atlasgo/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	d, err := db.Init(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	s := NewSQLiteStore(d)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLayout(id string, seed uint64) *model.Layout {
	return &model.Layout{
		Title:    "Plains",
		RunID:    id,
		Width:    960,
		Height:   600,
		Strategy: "anneal",
		Seed:     seed,
		CityLabels: []model.CityLabel{
			{Name: "Lincoln", AnchorX: 10, AnchorY: 20, Radius: 4, X: 16, Y: 22, Width: 30, Height: 11, Position: 0, PositionName: "right"},
		},
		Dropped: []model.DroppedCapital{{Name: "Omaha", Region: "NE", KeptBy: "Lincoln"}},
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Seeds use the full unsigned range.
	in := testLayout("run-1", math.MaxUint64-3)
	require.NoError(t, s.SaveLayout(ctx, in))

	got, err := s.GetLayout(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, in, got)

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, uint64(math.MaxUint64-3), runs[0].Seed)
	assert.Equal(t, 1, runs[0].CityLabels)
	assert.Equal(t, 1, runs[0].Dropped)
	assert.Equal(t, "Plains", runs[0].Title)
}

func TestSQLiteStore_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetLayout(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, s.SaveLayout(ctx, &model.Layout{}))
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		require.NoError(t, s.SaveLayout(ctx, testLayout(id, uint64(i))))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	// Replacing a run keeps a single record.
	require.NoError(t, s.SaveLayout(ctx, testLayout("a", 9)))
	runs, err = s.ListRuns(ctx, -1)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
