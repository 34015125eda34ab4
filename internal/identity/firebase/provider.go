package firebase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/dtroode/baasproxy/internal/model"
)

// Internal adapter interface to enable mocking without the identity service.
type relyingParty interface {
	VerifyPassword(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest) (*identitytoolkit.VerifyPasswordResponse, error)
	SignupNewUser(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest) (*identitytoolkit.SignupNewUserResponse, error)
	GetAccountInfo(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest) (*identitytoolkit.GetAccountInfoResponse, error)
	SetAccountInfo(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest) (*identitytoolkit.SetAccountInfoResponse, error)
}

type relyingPartyWrapper struct {
	rp *identitytoolkit.RelyingpartyService
}

func (w relyingPartyWrapper) VerifyPassword(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest) (*identitytoolkit.VerifyPasswordResponse, error) {
	return w.rp.VerifyPassword(req).Context(ctx).Do()
}
func (w relyingPartyWrapper) SignupNewUser(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest) (*identitytoolkit.SignupNewUserResponse, error) {
	return w.rp.SignupNewUser(req).Context(ctx).Do()
}
func (w relyingPartyWrapper) GetAccountInfo(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest) (*identitytoolkit.GetAccountInfoResponse, error) {
	return w.rp.GetAccountInfo(req).Context(ctx).Do()
}
func (w relyingPartyWrapper) SetAccountInfo(ctx context.Context, req *identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest) (*identitytoolkit.SetAccountInfoResponse, error) {
	return w.rp.SetAccountInfo(req).Context(ctx).Do()
}

var _ model.IdentityProvider = (*Provider)(nil)

// Provider implements model.IdentityProvider on top of the Identity Toolkit
// relying party API. Calls act on behalf of the end user, authenticated by
// API key and, where needed, the user's ID token.
type Provider struct {
	api relyingParty
}

// Options configures the identity service client.
type Options struct {
	APIKey string
	// Endpoint overrides the service base path, e.g. for a local emulator.
	Endpoint   string
	HTTPClient *http.Client
}

// New creates a Provider backed by the Identity Toolkit service.
func New(ctx context.Context, opts Options) (*Provider, error) {
	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	svc, err := identitytoolkit.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit service: %w", err)
	}

	return NewWithAPI(relyingPartyWrapper{rp: svc.Relyingparty}), nil
}

// NewWithAPI allows injecting a mockable API (used in tests).
func NewWithAPI(api relyingParty) *Provider {
	return &Provider{api: api}
}

// SignInWithPassword verifies the credential and returns a session.
func (p *Provider) SignInWithPassword(ctx context.Context, credential model.Credential) (model.Session, error) {
	resp, err := p.api.VerifyPassword(ctx, &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             credential.Email,
		Password:          credential.Password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return model.Session{}, translateError("verify password", err)
	}

	return model.Session{
		Identity: model.Identity{
			ID:          resp.LocalId,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    time.Duration(resp.ExpiresIn) * time.Second,
	}, nil
}

// CreateAccount registers a new email/password account and returns its session.
func (p *Provider) CreateAccount(ctx context.Context, credential model.Credential) (model.Session, error) {
	resp, err := p.api.SignupNewUser(ctx, &identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    credential.Email,
		Password: credential.Password,
	})
	if err != nil {
		return model.Session{}, translateError("sign up", err)
	}

	return model.Session{
		Identity: model.Identity{
			ID:          resp.LocalId,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    time.Duration(resp.ExpiresIn) * time.Second,
	}, nil
}

// GetAccount returns the account the ID token belongs to.
func (p *Provider) GetAccount(ctx context.Context, idToken string) (model.Identity, error) {
	resp, err := p.api.GetAccountInfo(ctx, &identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	})
	if err != nil {
		return model.Identity{}, translateError("get account info", err)
	}
	if len(resp.Users) == 0 || resp.Users[0] == nil {
		return model.Identity{}, fmt.Errorf("get account info: no user for token: %w", model.ErrUnauthorized)
	}

	u := resp.Users[0]
	return model.Identity{
		ID:            u.LocalId,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		DisplayName:   u.DisplayName,
	}, nil
}

// UpdateDisplayName sets the display name of the token's account.
func (p *Provider) UpdateDisplayName(ctx context.Context, idToken string, displayName string) error {
	_, err := p.api.SetAccountInfo(ctx, &identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest{
		IdToken:     idToken,
		DisplayName: displayName,
	})
	if err != nil {
		return translateError("set account info", err)
	}

	return nil
}
