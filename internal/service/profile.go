package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

type Profile struct {
	identity   model.IdentityProvider
	documents  model.DocumentStore
	collection string
	logger     *logger.Logger
	now        func() time.Time
}

func NewProfile(
	identity model.IdentityProvider,
	documents model.DocumentStore,
	collection string,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		identity:   identity,
		documents:  documents,
		collection: collection,
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the caller's identity merged with the stored profile record.
func (p *Profile) Get(ctx context.Context, caller model.Caller) (model.ProfileView, error) {
	if caller.UserID == "" {
		return model.ProfileView{}, model.ErrUnauthorized
	}

	var (
		identity model.Identity
		record   model.ProfileRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		identity, err = p.identity.GetAccount(gctx, caller.Token)
		if err != nil {
			p.logger.Error("Profile service: failed to get account",
				"user_id", caller.UserID,
				"error", err.Error())
			return fmt.Errorf("failed to get account: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		record, err = p.record(gctx, caller.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.ProfileView{}, err
	}

	name := record.Name
	if name == "" {
		name = identity.DisplayName
	}

	return model.ProfileView{Identity: identity, Name: name}, nil
}

// Update changes the display name and merges the profile record. Only the
// fields present in params are written.
func (p *Profile) Update(ctx context.Context, caller model.Caller, params model.UpdateProfileParams) (model.ProfileView, error) {
	if caller.UserID == "" {
		return model.ProfileView{}, model.ErrUnauthorized
	}

	name := params.Name
	if name == "" {
		name = params.DisplayName
	}

	if name != "" {
		err := p.identity.UpdateDisplayName(ctx, caller.Token, name)
		if err != nil {
			p.logger.Error("Profile service: failed to update display name",
				"user_id", caller.UserID,
				"error", err.Error())
			return model.ProfileView{}, fmt.Errorf("failed to update display name: %w", err)
		}
	}

	identity, err := p.identity.GetAccount(ctx, caller.Token)
	if err != nil {
		p.logger.Error("Profile service: failed to get account",
			"user_id", caller.UserID,
			"error", err.Error())
		return model.ProfileView{}, fmt.Errorf("failed to get account: %w", err)
	}

	now := p.now().UTC().Format(time.RFC3339)

	_, err = p.documents.Get(ctx, p.collection, caller.UserID)
	switch {
	case err == nil:
		patch := map[string]any{model.ProfileFieldUpdatedAt: now}
		if params.Name != "" {
			patch[model.ProfileFieldName] = params.Name
		}
		if params.PhotoURL != "" {
			patch[model.ProfileFieldPhotoURL] = params.PhotoURL
		}
		err = p.documents.Update(ctx, p.collection, caller.UserID, patch)
	case errors.Is(err, model.ErrNotFound):
		record := model.ProfileRecord{
			Name:      name,
			Email:     identity.Email,
			PhotoURL:  params.PhotoURL,
			CreatedAt: now,
		}
		err = p.documents.Set(ctx, p.collection, caller.UserID, record.Fields())
	}
	if err != nil {
		p.logger.Error("Profile service: failed to write profile record",
			"user_id", caller.UserID,
			"error", err.Error())
		return model.ProfileView{}, fmt.Errorf("failed to write profile record: %w", err)
	}

	p.logger.Info("Profile service: profile updated",
		"user_id", caller.UserID)

	return model.ProfileView{Identity: identity, Name: name}, nil
}

func (p *Profile) record(ctx context.Context, userID string) (model.ProfileRecord, error) {
	doc, err := p.documents.Get(ctx, p.collection, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ProfileRecord{}, nil
	}
	if err != nil {
		p.logger.Error("Profile service: failed to get profile record",
			"user_id", userID,
			"error", err.Error())
		return model.ProfileRecord{}, fmt.Errorf("failed to get profile record: %w", err)
	}

	return model.ProfileRecordFromFields(doc.Fields), nil
}
