package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/baasproxy/internal/model"
)

func TestManager_SetAndGetCaller(t *testing.T) {
	m := NewManager()
	caller := model.Caller{UserID: "uid-1", Token: "tok"}
	ctx := m.SetCallerToContext(stdctx.Background(), caller)

	got, ok := m.GetCallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, caller, got)
}

func TestManager_GetCaller_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetCallerFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetCaller_EmptyUserID(t *testing.T) {
	m := NewManager()
	ctx := m.SetCallerToContext(stdctx.Background(), model.Caller{Token: "tok"})
	_, ok := m.GetCallerFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_GetCaller_ForeignValue(t *testing.T) {
	m := NewManager()
	ctx := stdctx.WithValue(stdctx.Background(), "user_id", "uid-1")
	_, ok := m.GetCallerFromContext(ctx)
	assert.False(t, ok)
}
