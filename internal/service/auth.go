package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

type Auth struct {
	identity          model.IdentityProvider
	documents         model.DocumentStore
	profileCollection string
	logger            *logger.Logger
	now               func() time.Time
}

func NewAuth(
	identity model.IdentityProvider,
	documents model.DocumentStore,
	profileCollection string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		identity:          identity,
		documents:         documents,
		profileCollection: profileCollection,
		logger:            logger,
		now:               time.Now,
	}
}

func normalizeCredential(c model.Credential) (model.Credential, error) {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" || c.Password == "" {
		return model.Credential{}, model.ErrCredentialsRequired
	}

	return c, nil
}

// SignIn exchanges an email and password for a provider session.
func (a *Auth) SignIn(ctx context.Context, credential model.Credential) (model.Session, error) {
	credential, err := normalizeCredential(credential)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Debug("Auth service: signing in",
		"email", credential.Email)

	session, err := a.identity.SignInWithPassword(ctx, credential)
	if err != nil {
		a.logger.Info("Auth service: sign in rejected",
			"email", credential.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to sign in: %w", err)
	}

	a.logger.Info("Auth service: signed in",
		"user_id", session.Identity.ID)

	return session, nil
}

// SignUp creates an account and, when a name is given, its profile record.
func (a *Auth) SignUp(ctx context.Context, params model.SignUpParams) (model.SignUpResult, error) {
	credential, err := normalizeCredential(params.Credential)
	if err != nil {
		return model.SignUpResult{}, err
	}
	name := params.Name

	a.logger.Debug("Auth service: creating account",
		"email", credential.Email)

	session, err := a.identity.CreateAccount(ctx, credential)
	if err != nil {
		a.logger.Info("Auth service: sign up rejected",
			"email", credential.Email,
			"error", err.Error())
		return model.SignUpResult{}, fmt.Errorf("failed to create account: %w", err)
	}

	if name != "" {
		email := session.Identity.Email
		if email == "" {
			email = credential.Email
		}
		record := model.ProfileRecord{
			Name:      name,
			Email:     email,
			CreatedAt: a.now().UTC().Format(time.RFC3339),
		}

		err = a.documents.Set(ctx, a.profileCollection, session.Identity.ID, record.Fields())
		if err != nil {
			a.logger.Error("Auth service: failed to store profile record",
				"user_id", session.Identity.ID,
				"error", err.Error())
			return model.SignUpResult{}, fmt.Errorf("failed to store profile record: %w", err)
		}
	}

	a.logger.Info("Auth service: account created",
		"user_id", session.Identity.ID)

	return model.SignUpResult{Session: session, Name: name}, nil
}
