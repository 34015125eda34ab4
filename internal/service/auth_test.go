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

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestAuth(t *testing.T) (*Auth, *mocks.IdentityProvider, *mocks.DocumentStore) {
	identity := mocks.NewIdentityProvider(t)
	documents := mocks.NewDocumentStore(t)
	a := NewAuth(identity, documents, "users", testutil.MakeNoopLogger())
	a.now = func() time.Time { return fixedNow }

	return a, identity, documents
}

func TestAuth_SignIn(t *testing.T) {
	t.Parallel()

	session := model.Session{
		Identity: model.Identity{ID: "uid-1", Email: "a@b.c"},
		IDToken:  "id-token",
	}

	tests := []struct {
		name       string
		credential model.Credential
		setup      func(*mocks.IdentityProvider)
		wantErr    error
	}{
		{
			name:       "success",
			credential: model.Credential{Email: " a@b.c ", Password: "secret1"},
			setup: func(m *mocks.IdentityProvider) {
				m.On("SignInWithPassword", mock.Anything, model.Credential{Email: "a@b.c", Password: "secret1"}).
					Return(session, nil)
			},
		},
		{
			name:       "missing password",
			credential: model.Credential{Email: "a@b.c"},
			setup:      func(*mocks.IdentityProvider) {},
			wantErr:    model.ErrCredentialsRequired,
		},
		{
			name:       "blank email",
			credential: model.Credential{Email: "   ", Password: "secret1"},
			setup:      func(*mocks.IdentityProvider) {},
			wantErr:    model.ErrCredentialsRequired,
		},
		{
			name:       "wrong password",
			credential: model.Credential{Email: "a@b.c", Password: "nope"},
			setup: func(m *mocks.IdentityProvider) {
				m.On("SignInWithPassword", mock.Anything, mock.Anything).
					Return(model.Session{}, model.ErrInvalidCredentials)
			},
			wantErr: model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, identity, _ := newTestAuth(t)
			tt.setup(identity)

			got, err := a.SignIn(context.Background(), tt.credential)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, session, got)
		})
	}
}

func TestAuth_SignUp_WithName(t *testing.T) {
	t.Parallel()

	a, identity, documents := newTestAuth(t)
	session := model.Session{Identity: model.Identity{ID: "uid-2", Email: "new@b.c"}, IDToken: "tok"}

	identity.On("CreateAccount", mock.Anything, model.Credential{Email: "new@b.c", Password: "secret1"}).
		Return(session, nil)
	documents.On("Set", mock.Anything, "users", "uid-2", map[string]any{
		"name":      "Ann",
		"email":     "new@b.c",
		"createdAt": "2024-05-01T12:00:00Z",
	}).Return(nil)

	res, err := a.SignUp(context.Background(), model.SignUpParams{
		Credential: model.Credential{Email: "new@b.c", Password: "secret1"},
		Name:       "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, session, res.Session)
	assert.Equal(t, "Ann", res.Name)
}

func TestAuth_SignUp_WithoutName(t *testing.T) {
	t.Parallel()

	a, identity, documents := newTestAuth(t)
	identity.On("CreateAccount", mock.Anything, mock.Anything).
		Return(model.Session{Identity: model.Identity{ID: "uid-3"}}, nil)

	res, err := a.SignUp(context.Background(), model.SignUpParams{
		Credential: model.Credential{Email: "x@b.c", Password: "secret1"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Name)
	documents.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_SignUp_EmailInUse(t *testing.T) {
	t.Parallel()

	a, identity, _ := newTestAuth(t)
	identity.On("CreateAccount", mock.Anything, mock.Anything).
		Return(model.Session{}, model.ErrEmailInUse)

	_, err := a.SignUp(context.Background(), model.SignUpParams{
		Credential: model.Credential{Email: "taken@b.c", Password: "secret1"},
		Name:       "Ann",
	})
	require.ErrorIs(t, err, model.ErrEmailInUse)
}

func TestAuth_SignUp_ProfileWriteFails(t *testing.T) {
	t.Parallel()

	a, identity, documents := newTestAuth(t)
	identity.On("CreateAccount", mock.Anything, mock.Anything).
		Return(model.Session{Identity: model.Identity{ID: "uid-4", Email: "a@b.c"}}, nil)
	documents.On("Set", mock.Anything, "users", "uid-4", mock.Anything).
		Return(errors.New("unavailable"))

	_, err := a.SignUp(context.Background(), model.SignUpParams{
		Credential: model.Credential{Email: "a@b.c", Password: "secret1"},
		Name:       "Ann",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store profile record")
}

func TestAuth_SignUp_MissingFields(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestAuth(t)

	_, err := a.SignUp(context.Background(), model.SignUpParams{Name: "Ann"})
	require.ErrorIs(t, err, model.ErrCredentialsRequired)
}

func TestAuth_SignUp_NameKeptVerbatim(t *testing.T) {
	t.Parallel()

	a, identity, documents := newTestAuth(t)
	identity.On("CreateAccount", mock.Anything, mock.Anything).
		Return(model.Session{Identity: model.Identity{ID: "uid-5", Email: "a@b.c"}}, nil)
	documents.On("Set", mock.Anything, "users", "uid-5", map[string]any{
		"name":      "  ",
		"email":     "a@b.c",
		"createdAt": "2024-05-01T12:00:00Z",
	}).Return(nil)

	res, err := a.SignUp(context.Background(), model.SignUpParams{
		Credential: model.Credential{Email: "a@b.c", Password: "secret1"},
		Name:       "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "  ", res.Name)
}
