package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/baasproxy/internal/model"
)

type fakeRow struct {
	raw []byte
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.raw
	return nil
}

// fakeQuerier records the last statement and returns canned results.
type fakeQuerier struct {
	row     fakeRow
	tag     pgconn.CommandTag
	execErr error

	lastSQL  string
	lastArgs []any
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}
func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return nil, errors.New("not supported")
}
func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.tag, f.execErr
}

func TestDocumentRepository_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		row     fakeRow
		want    model.Document
		wantIs  error
		wantErr string
	}{
		{
			name: "found",
			row:  fakeRow{raw: []byte(`{"title":"x","n":1}`)},
			want: model.Document{ID: "d1", Fields: map[string]any{"title": "x", "n": float64(1)}},
		},
		{name: "no rows", row: fakeRow{err: pgx.ErrNoRows}, wantIs: model.ErrNotFound},
		{name: "driver error", row: fakeRow{err: errors.New("conn reset")}, wantErr: "failed to get document"},
		{name: "corrupt json", row: fakeRow{raw: []byte(`{`)}, wantErr: "failed to decode document"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &DocumentRepository{db: &fakeQuerier{row: tt.row}}
			got, err := repo.Get(context.Background(), "items", "d1")
			switch {
			case tt.wantIs != nil:
				assert.ErrorIs(t, err, tt.wantIs)
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDocumentRepository_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tag     pgconn.CommandTag
		execErr error
		wantIs  error
		wantErr bool
	}{
		{name: "merged", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "missing document", tag: pgconn.NewCommandTag("UPDATE 0"), wantIs: model.ErrNotFound},
		{name: "driver error", execErr: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := &fakeQuerier{tag: tt.tag, execErr: tt.execErr}
			repo := &DocumentRepository{db: q}

			err := repo.Update(context.Background(), "items", "d1", map[string]any{"title": "y"})
			switch {
			case tt.wantIs != nil:
				assert.ErrorIs(t, err, tt.wantIs)
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Contains(t, q.lastSQL, "data || $3::jsonb")
				assert.Equal(t, []any{"items", "d1", []byte(`{"title":"y"}`)}, q.lastArgs)
			}
		})
	}
}

func TestDocumentRepository_Create_AssignsID(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := &DocumentRepository{db: q}

	doc, err := repo.Create(context.Background(), "items", map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, doc.ID, q.lastArgs[1])
	assert.Equal(t, map[string]any{"title": "x"}, doc.Fields)
}

func TestDocumentRepository_Delete_MissingIsNotAnError(t *testing.T) {
	repo := &DocumentRepository{db: &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 0")}}

	assert.NoError(t, repo.Delete(context.Background(), "items", "nope"))
}
