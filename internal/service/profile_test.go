package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/baasproxy/internal/mocks"
	"github.com/dtroode/baasproxy/internal/model"
	"github.com/dtroode/baasproxy/internal/testutil"
)

var testCaller = model.Caller{UserID: "uid-1", Token: "id-token"}

func newTestProfile(t *testing.T) (*Profile, *mocks.IdentityProvider, *mocks.DocumentStore) {
	identity := mocks.NewIdentityProvider(t)
	documents := mocks.NewDocumentStore(t)
	p := NewProfile(identity, documents, "users", testutil.MakeNoopLogger())
	p.now = func() time.Time { return fixedNow }

	return p, identity, documents
}

func TestProfile_Get(t *testing.T) {
	t.Parallel()

	account := model.Identity{ID: "uid-1", Email: "a@b.c", EmailVerified: true, DisplayName: "Display"}

	tests := []struct {
		name     string
		doc      model.Document
		docErr   error
		wantName string
		wantErr  bool
	}{
		{
			name:     "record name wins",
			doc:      model.Document{ID: "uid-1", Fields: map[string]any{"name": "Ann"}},
			wantName: "Ann",
		},
		{
			name:     "falls back to display name",
			doc:      model.Document{ID: "uid-1", Fields: map[string]any{"photoURL": "http://p"}},
			wantName: "Display",
		},
		{
			name:     "no record",
			docErr:   model.ErrNotFound,
			wantName: "Display",
		},
		{
			name:    "store failure",
			docErr:  errors.New("unavailable"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, identity, documents := newTestProfile(t)
			identity.On("GetAccount", mock.Anything, "id-token").Return(account, nil)
			documents.On("Get", mock.Anything, "users", "uid-1").Return(tt.doc, tt.docErr)

			view, err := p.Get(context.Background(), testCaller)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, account, view.Identity)
			assert.Equal(t, tt.wantName, view.Name)
		})
	}
}

func TestProfile_Get_NoCaller(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestProfile(t)

	_, err := p.Get(context.Background(), model.Caller{})
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestProfile_Get_AccountError(t *testing.T) {
	t.Parallel()

	p, identity, documents := newTestProfile(t)
	identity.On("GetAccount", mock.Anything, "id-token").Return(model.Identity{}, model.ErrUnauthorized)
	documents.On("Get", mock.Anything, "users", "uid-1").Return(model.Document{}, model.ErrNotFound).Maybe()

	_, err := p.Get(context.Background(), testCaller)
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestProfile_Update_ExistingRecordPhotoOnly(t *testing.T) {
	t.Parallel()

	p, identity, documents := newTestProfile(t)
	identity.On("GetAccount", mock.Anything, "id-token").Return(model.Identity{ID: "uid-1", Email: "a@b.c"}, nil)
	documents.On("Get", mock.Anything, "users", "uid-1").
		Return(model.Document{ID: "uid-1", Fields: map[string]any{"name": "Ann"}}, nil)
	documents.On("Update", mock.Anything, "users", "uid-1", map[string]any{
		"photoURL":  "http://p",
		"updatedAt": "2024-05-01T12:00:00Z",
	}).Return(nil)

	view, err := p.Update(context.Background(), testCaller, model.UpdateProfileParams{PhotoURL: "http://p"})
	require.NoError(t, err)
	assert.Empty(t, view.Name)
	identity.AssertNotCalled(t, "UpdateDisplayName", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfile_Update_DisplayNameOnly(t *testing.T) {
	t.Parallel()

	p, identity, documents := newTestProfile(t)
	identity.On("UpdateDisplayName", mock.Anything, "id-token", "Display").Return(nil)
	identity.On("GetAccount", mock.Anything, "id-token").Return(model.Identity{ID: "uid-1", Email: "a@b.c"}, nil)
	documents.On("Get", mock.Anything, "users", "uid-1").
		Return(model.Document{ID: "uid-1", Fields: map[string]any{"name": "Ann"}}, nil)
	documents.On("Update", mock.Anything, "users", "uid-1", map[string]any{
		"updatedAt": "2024-05-01T12:00:00Z",
	}).Return(nil)

	view, err := p.Update(context.Background(), testCaller, model.UpdateProfileParams{DisplayName: "Display"})
	require.NoError(t, err)
	assert.Equal(t, "Display", view.Name)
}

func TestProfile_Update_CreatesRecord(t *testing.T) {
	t.Parallel()

	p, identity, documents := newTestProfile(t)
	identity.On("UpdateDisplayName", mock.Anything, "id-token", "Ann").Return(nil)
	identity.On("GetAccount", mock.Anything, "id-token").Return(model.Identity{ID: "uid-1", Email: "a@b.c"}, nil)
	documents.On("Get", mock.Anything, "users", "uid-1").Return(model.Document{}, model.ErrNotFound)
	documents.On("Set", mock.Anything, "users", "uid-1", map[string]any{
		"name":      "Ann",
		"email":     "a@b.c",
		"createdAt": "2024-05-01T12:00:00Z",
	}).Return(nil)

	view, err := p.Update(context.Background(), testCaller, model.UpdateProfileParams{Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", view.Name)
	assert.Equal(t, "a@b.c", view.Identity.Email)
}

func TestProfile_Update_StoreFailure(t *testing.T) {
	t.Parallel()

	p, identity, documents := newTestProfile(t)
	identity.On("GetAccount", mock.Anything, "id-token").Return(model.Identity{ID: "uid-1"}, nil)
	documents.On("Get", mock.Anything, "users", "uid-1").Return(model.Document{}, errors.New("unavailable"))

	_, err := p.Update(context.Background(), testCaller, model.UpdateProfileParams{PhotoURL: "http://p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write profile record")
}

func TestProfile_Update_DisplayNameFailure(t *testing.T) {
	t.Parallel()

	p, identity, _ := newTestProfile(t)
	identity.On("UpdateDisplayName", mock.Anything, "id-token", "Ann").Return(model.ErrUnauthorized)

	_, err := p.Update(context.Background(), testCaller, model.UpdateProfileParams{Name: "Ann"})
	require.ErrorIs(t, err, model.ErrUnauthorized)
}
