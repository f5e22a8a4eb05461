package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folio/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContactRepository stores contact documents as JSONB rows in PostgreSQL.
// The table is created by cmd/migrate (see migrations/).
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Insert writes doc as one JSONB row and returns the uuid generated by the
// database.
func (r *PgContactRepository) Insert(ctx context.Context, doc *model.ContactDocument) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding contact document: %w", err)
	}

	var id string
	err = r.pool.QueryRow(ctx,
		`INSERT INTO contact_documents (doc) VALUES ($1) RETURNING id::text`,
		body,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

// FindAll returns all documents in insertion order.
func (r *PgContactRepository) FindAll(ctx context.Context) ([]*model.ContactDocument, error) {
	rows, err := r.pool.Query(ctx, `SELECT doc FROM contact_documents ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*model.ContactDocument{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var d model.ContactDocument
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding contact document: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// Ping checks that the pool can reach the database.
func (r *PgContactRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
