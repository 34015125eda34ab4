package token

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuerPrefix     = "https://securetoken.google.com/"
	maxSubjectLength = 128
	defaultLeeway    = 5 * time.Second
)

var (
	ErrMissingKeyID   = errors.New("token has no key id")
	ErrUnknownKeyID   = errors.New("token key id is unknown")
	ErrInvalidSubject = errors.New("token subject is invalid")
)

// Claims represents identity provider ID token claims.
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	AuthTime      int64  `json:"auth_time,omitempty"`
}

// KeySource resolves token signing keys by key id.
type KeySource interface {
	PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Verifier validates RS256 ID tokens issued for a single project.
type Verifier struct {
	keys      KeySource
	projectID string
	leeway    time.Duration
	now       func() time.Time
}

// NewVerifier creates a Verifier for the given project.
func NewVerifier(projectID string, keys KeySource) *Verifier {
	return &Verifier{
		keys:      keys,
		projectID: projectID,
		leeway:    defaultLeeway,
		now:       time.Now,
	}
}

// GetUserID verifies the token and returns its subject.
func (v *Verifier) GetUserID(ctx context.Context, tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, ErrMissingKeyID
			}
			return v.keys.PublicKey(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse id token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("id token is invalid")
	}

	if claims.Subject == "" || len(claims.Subject) > maxSubjectLength {
		return "", ErrInvalidSubject
	}

	return claims.Subject, nil
}
