// Package sqldb persists the cross-run translation memory in SQL. The DSN
// picks the driver: postgres:// URLs use lib/pq, anything else is treated
// as a SQLite database path.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.MemoryStore = (*MemoryStore)(nil)

// MemoryStore implements driven.MemoryStore over database/sql.
type MemoryStore struct {
	db       *sql.DB
	postgres bool
}

// Open connects to the translation memory database and ensures the schema
// exists.
func Open(ctx context.Context, dsn string) (*MemoryStore, error) {
	driver := "sqlite"
	postgres := false
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
		postgres = true
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open translation memory: %w", err)
	}

	s := &MemoryStore{db: db, postgres: postgres}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrMemoryUnavailable, err)
	}
	return s, nil
}

func (s *MemoryStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS translation_memory (
			id          TEXT PRIMARY KEY,
			language    TEXT NOT NULL,
			source_hash TEXT NOT NULL,
			source      TEXT NOT NULL,
			processed   TEXT NOT NULL,
			created_at  BIGINT NOT NULL,
			UNIQUE (language, source_hash)
		)
	`)
	return err
}

// Add upserts one completed pair. A later pair for the same (language,
// source) overwrites the earlier processed text.
func (s *MemoryStore) Add(ctx context.Context, language, source, processed string) error {
	query := `
		INSERT INTO translation_memory (id, language, source_hash, source, processed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (language, source_hash) DO UPDATE SET
			processed = EXCLUDED.processed,
			created_at = EXCLUDED.created_at
	`
	_, err := s.db.ExecContext(ctx, s.rebind(query),
		uuid.NewString(),
		language,
		hashSource(source),
		source,
		processed,
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("memory add: %w", err)
	}
	return nil
}

// RecentPairs returns up to limit pairs for a language, most recent first.
func (s *MemoryStore) RecentPairs(ctx context.Context, language string, limit int) ([]domain.ReferencePair, error) {
	query := `
		SELECT source, processed
		FROM translation_memory
		WHERE language = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, s.rebind(query), language, limit)
	if err != nil {
		return nil, fmt.Errorf("memory query: %w", err)
	}
	defer rows.Close()

	var pairs []domain.ReferencePair
	for rows.Next() {
		var p domain.ReferencePair
		if err := rows.Scan(&p.Source, &p.Processed); err != nil {
			return nil, fmt.Errorf("memory scan: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("memory rows: %w", err)
	}
	return pairs, nil
}

// Close releases the connection pool.
func (s *MemoryStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into $n for the postgres driver.
func (s *MemoryStore) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hashSource(source string) string {
	sum := blake3.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
