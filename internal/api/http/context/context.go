package context

import (
	"context"

	"github.com/dtroode/baasproxy/internal/model"
)

type callerKey struct{}

// Manager stores the verified caller in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext returns a copy of ctx carrying caller.
//
// Parameters:
//   - ctx: The request context
//   - caller: The identity resolved from a verified bearer token
//
// Returns a new context with the caller attached.
func (m *Manager) SetCallerToContext(ctx context.Context, caller model.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCallerFromContext retrieves the caller stored by SetCallerToContext.
// A caller with an empty UserID is reported as absent.
func (m *Manager) GetCallerFromContext(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(model.Caller)
	if !ok || caller.UserID == "" {
		return model.Caller{}, false
	}

	return caller, true
}
