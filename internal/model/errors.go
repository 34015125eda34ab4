package model

import "errors"

// Collaborator-reported error kinds. Adapters translate provider specific
// failures into these so callers never match on provider strings.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("weak password")
)

// ValidationError reports missing or malformed input detected before any
// collaborator call. Message is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation failures shared across endpoints.
var (
	ErrCredentialsRequired  = &ValidationError{Message: "Email and password are required"}
	ErrDocumentIDRequired   = &ValidationError{Message: "Document ID is required"}
	ErrInvalidDocumentID    = &ValidationError{Message: "Invalid document ID"}
	ErrInvalidCollection    = &ValidationError{Message: "Invalid collection name"}
	ErrCollectionNotAllowed = &ValidationError{Message: "Collection is not allowed"}
	ErrInvalidBody          = &ValidationError{Message: "Invalid request body"}
	ErrReservedField        = &ValidationError{Message: "Field _id is reserved"}
)
