package model

import "context"

// Caller is the identity resolved from a verified bearer token.
type Caller struct {
	UserID string
	Token  string
}

type ContextManager interface {
	SetCallerToContext(ctx context.Context, caller Caller) context.Context
	GetCallerFromContext(ctx context.Context) (Caller, bool)
}
