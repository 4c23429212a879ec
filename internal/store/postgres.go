package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentsDDL = `
	CREATE TABLE IF NOT EXISTS documents (
	  key        TEXT PRIMARY KEY,
	  data       JSONB NOT NULL,
	  version    BIGINT NOT NULL,
	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// PostgresBackend stores the document as one JSONB row of the documents
// table. The version column drives the compare-and-swap.
type PostgresBackend struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresBackend returns a PostgresBackend using key (DefaultKey when empty).
func NewPostgresBackend(pool *pgxpool.Pool, key string) *PostgresBackend {
	if key == "" {
		key = DefaultKey
	}
	return &PostgresBackend{pool: pool, key: key}
}

// EnsureSchema creates the documents table if it does not exist.
func (p *PostgresBackend) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, documentsDDL); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (p *PostgresBackend) Load(ctx context.Context) (*Document, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE key = $1`,
		p.key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("select document %s: %w", p.key, err)
	}
	return Decode(data)
}

func (p *PostgresBackend) Save(ctx context.Context, doc *Document) error {
	data, version, err := nextRevision(doc)
	if err != nil {
		return err
	}

	var affected int64
	if doc.Version == 0 {
		tag, err := p.pool.Exec(ctx,
			`INSERT INTO documents (key, data, version)
			 VALUES ($1, $2::jsonb, $3)
			 ON CONFLICT (key) DO NOTHING`,
			p.key, string(data), version,
		)
		if err != nil {
			return fmt.Errorf("insert document %s: %w", p.key, err)
		}
		affected = tag.RowsAffected()
	} else {
		tag, err := p.pool.Exec(ctx,
			`UPDATE documents
			 SET data       = $1::jsonb,
			     version    = $2,
			     updated_at = NOW()
			 WHERE key = $3 AND version = $4`,
			string(data), version, p.key, doc.Version,
		)
		if err != nil {
			return fmt.Errorf("update document %s: %w", p.key, err)
		}
		affected = tag.RowsAffected()
	}

	if affected == 0 {
		return ErrVersionConflict
	}
	doc.Version = version
	return nil
}
