package store

import (
	"bytes"
	"compress/gzip"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"atlasgo/pkg/db"
	"atlasgo/pkg/model"
)

// SQLiteStore implements RunStore.
type SQLiteStore struct {
	db  *db.DB
	now func() time.Time
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(d *db.DB) *SQLiteStore {
	return &SQLiteStore{db: d, now: time.Now}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveLayout archives the layout under its run id. Saving the same id again
// replaces the earlier record.
func (s *SQLiteStore) SaveLayout(ctx context.Context, l *model.Layout) error {
	if l.RunID == "" {
		return errors.New("layout has no run id")
	}
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	blob, err := compress(data)
	if err != nil {
		return fmt.Errorf("failed to compress layout: %w", err)
	}

	query := `INSERT OR REPLACE INTO runs
		(id, title, strategy, seed, width, height, city_labels, region_labels, dropped, layout, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		l.RunID, l.Title, l.Strategy, int64(l.Seed), l.Width, l.Height,
		len(l.CityLabels), len(l.RegionLabels), len(l.Dropped), blob, s.now().Unix())
	return err
}

// GetLayout loads an archived layout.
func (s *SQLiteStore) GetLayout(ctx context.Context, runID string) (*model.Layout, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT layout FROM runs WHERE id = ?", runID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	data, err := decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("corrupt layout %s: %w", runID, err)
	}
	var l model.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("corrupt layout %s: %w", runID, err)
	}
	return &l, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 lists all.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, strategy, seed, city_labels, region_labels, dropped, created_at
		 FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var seed, created int64
		var title, strategy sql.NullString
		if err := rows.Scan(&r.ID, &title, &strategy, &seed, &r.CityLabels, &r.RegionLabels, &r.Dropped, &created); err != nil {
			return nil, err
		}
		r.Title = title.String
		r.Strategy = strategy.String
		r.Seed = uint64(seed)
		r.CreatedAt = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// --- Compression Pooling ---

var (
	gzipWriterPool = sync.Pool{
		New: func() interface{} {
			return gzip.NewWriter(io.Discard)
		},
	}
	bufferPool = sync.Pool{
		New: func() interface{} {
			return new(bytes.Buffer)
		},
	}
)

func compress(data []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	w := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(w)
	w.Reset(buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	// Must copy because buf is returned to pool
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
