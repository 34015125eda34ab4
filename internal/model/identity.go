package model

import (
	"context"
	"time"
)

// IdentityProvider is the external identity collaborator. Implementations
// return ErrInvalidCredentials, ErrInvalidEmail, ErrEmailInUse,
// ErrWeakPassword or ErrUnauthorized for the failures they recognise.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, credential Credential) (Session, error)
	CreateAccount(ctx context.Context, credential Credential) (Session, error)
	GetAccount(ctx context.Context, idToken string) (Identity, error)
	UpdateDisplayName(ctx context.Context, idToken string, displayName string) error
}

// Credential is an email/password pair supplied per request. It is never stored.
type Credential struct {
	Email    string
	Password string
}

// Identity is an account owned by the identity provider.
type Identity struct {
	ID            string
	Email         string
	EmailVerified bool
	DisplayName   string
}

// Session is the result of a successful sign-in or sign-up.
type Session struct {
	Identity     Identity
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

// SignUpParams are inputs for account creation.
type SignUpParams struct {
	Credential
	Name string
}

// SignUpResult is returned after an account is created.
type SignUpResult struct {
	Session Session
	Name    string
}
