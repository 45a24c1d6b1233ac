package store

import (
	"context"
	"errors"
	"time"

	"atlasgo/pkg/model"
)

// ErrNotFound is returned when no run matches the requested id.
var ErrNotFound = errors.New("run not found")

// RunSummary is the listing view of an archived layout.
type RunSummary struct {
	ID           string
	Title        string
	Strategy     string
	Seed         uint64
	CityLabels   int
	RegionLabels int
	Dropped      int
	CreatedAt    time.Time
}

// RunStore archives finished layouts so a run can be inspected or
// reproduced from its seed later.
type RunStore interface {
	SaveLayout(ctx context.Context, l *model.Layout) error
	GetLayout(ctx context.Context, runID string) (*model.Layout, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	Close() error
}
