package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/baasproxy/internal/model"
)

var _ model.DocumentStore = (*DocumentRepository)(nil)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// DocumentRepository stores schema-less documents as JSONB rows keyed by
// (collection, id).
type DocumentRepository struct {
	db querier
}

func NewDocumentRepository(db *Connection) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

func (r *DocumentRepository) Get(ctx context.Context, collection, id string) (model.Document, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`

	var raw []byte
	err := r.db.QueryRow(ctx, query, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Document{}, model.ErrNotFound
		}
		return model.Document{}, fmt.Errorf("failed to get document: %w", err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return model.Document{}, err
	}

	return model.Document{ID: id, Fields: fields}, nil
}

func (r *DocumentRepository) List(ctx context.Context, collection string) ([]model.Document, error) {
	query := `SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, model.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) Create(ctx context.Context, collection string, fields map[string]any) (model.Document, error) {
	id := uuid.NewString()
	if err := r.Set(ctx, collection, id, fields); err != nil {
		return model.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return model.Document{ID: id, Fields: fields}, nil
}

func (r *DocumentRepository) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	raw, err := encodeFields(fields)
	if err != nil {
		return err
	}

	query := `INSERT INTO documents (collection, id, data)
			  VALUES ($1, $2, $3::jsonb)
			  ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, collection, id, raw); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}

	return nil
}

// Update merges patch into the stored document with jsonb concatenation, which
// overwrites top-level keys and keeps the rest.
func (r *DocumentRepository) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	raw, err := encodeFields(patch)
	if err != nil {
		return err
	}

	query := `UPDATE documents SET data = data || $3::jsonb, updated_at = now()
			  WHERE collection = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, query, collection, id, raw)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	if _, err := r.db.Exec(ctx, query, collection, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

func encodeFields(fields map[string]any) ([]byte, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return raw, nil
}

func decodeFields(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return fields, nil
}
