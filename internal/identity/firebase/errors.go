package firebase

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/dtroode/baasproxy/internal/model"
)

// providerErrors maps identity service error identifiers to model error kinds.
var providerErrors = map[string]error{
	"EMAIL_NOT_FOUND":                model.ErrInvalidCredentials,
	"INVALID_PASSWORD":               model.ErrInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":      model.ErrInvalidCredentials,
	"USER_DISABLED":                  model.ErrInvalidCredentials,
	"INVALID_EMAIL":                  model.ErrInvalidEmail,
	"MISSING_EMAIL":                  model.ErrInvalidEmail,
	"EMAIL_EXISTS":                   model.ErrEmailInUse,
	"WEAK_PASSWORD":                  model.ErrWeakPassword,
	"INVALID_ID_TOKEN":               model.ErrUnauthorized,
	"TOKEN_EXPIRED":                  model.ErrUnauthorized,
	"USER_NOT_FOUND":                 model.ErrUnauthorized,
	"CREDENTIAL_TOO_OLD_LOGIN_AGAIN": model.ErrUnauthorized,
}

func translateError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		code := errorCode(apiErr.Message)
		if kind, ok := providerErrors[code]; ok {
			return fmt.Errorf("%s: %s: %w", op, code, kind)
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// errorCode extracts the identifier from messages like
// "WEAK_PASSWORD : Password should be at least 6 characters".
func errorCode(message string) string {
	code, _, _ := strings.Cut(strings.TrimSpace(message), " ")
	return strings.TrimSuffix(code, ":")
}
