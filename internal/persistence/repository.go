package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
)

var ErrNotFound = errors.New("chunk not found")

// Store is the chunk persistence contract.
type Store interface {
	Save(ctx context.Context, c *chunk.Chunk) error
	Load(ctx context.Context, seed int64, index int) (*chunk.Chunk, error)
	Delete(ctx context.Context, seed int64, index int) error
	List(ctx context.Context, seed int64) ([]Summary, error)
}

// Summary describes a saved chunk without decoding it.
type Summary struct {
	Index     int       `json:"index"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Bytes     int       `json:"bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository keeps chunks in the chunks table, one row per (seed, index).
type Repository struct {
	db      *sql.DB
	catalog *block.Catalog
}

func NewRepository(db *sql.DB, catalog *block.Catalog) *Repository {
	return &Repository{db: db, catalog: catalog}
}

func (r *Repository) Save(ctx context.Context, c *chunk.Chunk) error {
	doc, err := Encode(c)
	if err != nil {
		return fmt.Errorf("failed to encode chunk %d: %w", c.Index, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO chunks (seed, chunk_index, width, height, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (seed, chunk_index) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		c.Seed, c.Index, c.Width, c.Height, Compress(doc), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save chunk %d: %w", c.Index, err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context, seed int64, index int) (*chunk.Chunk, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM chunks WHERE seed = ? AND chunk_index = ?`, seed, index,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chunk %d: %w", index, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chunk %d: %w", index, err)
	}

	doc, err := Decompress(blob)
	if err != nil {
		return nil, err
	}
	return Decode(doc, r.catalog)
}

func (r *Repository) Delete(ctx context.Context, seed int64, index int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chunks WHERE seed = ? AND chunk_index = ?`, seed, index)
	if err != nil {
		return fmt.Errorf("failed to delete chunk %d: %w", index, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("chunk %d: %w", index, ErrNotFound)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, seed int64) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT chunk_index, width, height, length(data), updated_at
		FROM chunks WHERE seed = ? ORDER BY chunk_index`, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Index, &s.Width, &s.Height, &s.Bytes, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
