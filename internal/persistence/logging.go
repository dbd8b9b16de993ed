package persistence

import (
	"context"
	"time"

	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/charmbracelet/log"
)

// LoggingStore wraps a Store to add debug logging
type LoggingStore struct {
	Store
}

// NewLoggingStore creates a new LoggingStore instance
func NewLoggingStore(s Store) *LoggingStore {
	return &LoggingStore{Store: s}
}

// Helper function to log query execution
func (ls *LoggingStore) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// Save with logging
func (ls *LoggingStore) Save(ctx context.Context, c *chunk.Chunk) error {
	start := time.Now()
	log.Debug("Executing Save", "seed", c.Seed, "chunk_index", c.Index)

	err := ls.Store.Save(ctx, c)
	ls.logQuery("Save", start, err, c.Seed, c.Index)
	return err
}

// Load with logging
func (ls *LoggingStore) Load(ctx context.Context, seed int64, index int) (*chunk.Chunk, error) {
	start := time.Now()
	log.Debug("Executing Load", "seed", seed, "chunk_index", index)

	c, err := ls.Store.Load(ctx, seed, index)
	ls.logQuery("Load", start, err, seed, index)
	return c, err
}

// Delete with logging
func (ls *LoggingStore) Delete(ctx context.Context, seed int64, index int) error {
	start := time.Now()
	log.Debug("Executing Delete", "seed", seed, "chunk_index", index)

	err := ls.Store.Delete(ctx, seed, index)
	ls.logQuery("Delete", start, err, seed, index)
	return err
}

// List with logging
func (ls *LoggingStore) List(ctx context.Context, seed int64) ([]Summary, error) {
	start := time.Now()
	log.Debug("Executing List", "seed", seed)

	result, err := ls.Store.List(ctx, seed)
	ls.logQuery("List", start, err, seed)

	if err == nil {
		log.Debug("List result", "chunk_count", len(result), "seed", seed)
	}
	return result, err
}
