package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

type Documents struct {
	store             model.DocumentStore
	defaultCollection string
	allowed           map[string]struct{}
	logger            *logger.Logger
}

// NewDocuments creates the CRUD service. An empty allowed list accepts any
// well formed collection name.
func NewDocuments(
	store model.DocumentStore,
	defaultCollection string,
	allowed []string,
	logger *logger.Logger,
) *Documents {
	d := &Documents{
		store:             store,
		defaultCollection: defaultCollection,
		logger:            logger,
	}
	if len(allowed) > 0 {
		d.allowed = make(map[string]struct{}, len(allowed))
		for _, c := range allowed {
			d.allowed[strings.TrimSpace(c)] = struct{}{}
		}
	}

	return d
}

func validSegment(s string) bool {
	return s != "." && s != ".." && !strings.Contains(s, "/")
}

func (d *Documents) collection(name string) (string, error) {
	if name == "" {
		name = d.defaultCollection
	}
	if !validSegment(name) {
		return "", model.ErrInvalidCollection
	}
	if d.allowed != nil {
		if _, ok := d.allowed[name]; !ok {
			return "", model.ErrCollectionNotAllowed
		}
	}

	return name, nil
}

func documentID(id string) (string, error) {
	if id == "" {
		return "", model.ErrDocumentIDRequired
	}
	if !validSegment(id) {
		return "", model.ErrInvalidDocumentID
	}

	return id, nil
}

func (d *Documents) Get(ctx context.Context, collection, id string) (model.Document, error) {
	collection, err := d.collection(collection)
	if err != nil {
		return model.Document{}, err
	}
	if id, err = documentID(id); err != nil {
		return model.Document{}, err
	}

	doc, err := d.store.Get(ctx, collection, id)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

func (d *Documents) List(ctx context.Context, collection string) ([]model.Document, error) {
	collection, err := d.collection(collection)
	if err != nil {
		return nil, err
	}

	docs, err := d.store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []model.Document{}
	}

	return docs, nil
}

func (d *Documents) Create(ctx context.Context, collection string, fields map[string]any) (model.Document, error) {
	collection, err := d.collection(collection)
	if err != nil {
		return model.Document{}, err
	}
	if fields == nil {
		return model.Document{}, model.ErrInvalidBody
	}

	doc, err := d.store.Create(ctx, collection, fields)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	d.logger.Debug("Documents service: document created",
		"collection", collection,
		"id", doc.ID)

	return doc, nil
}

// Update merges the top-level keys of patch into the document and returns
// the document id with the patch, not the stored result.
func (d *Documents) Update(ctx context.Context, collection, id string, patch map[string]any) (model.Document, error) {
	collection, err := d.collection(collection)
	if err != nil {
		return model.Document{}, err
	}
	if id, err = documentID(id); err != nil {
		return model.Document{}, err
	}
	if patch == nil {
		return model.Document{}, model.ErrInvalidBody
	}

	if err := d.store.Update(ctx, collection, id, patch); err != nil {
		return model.Document{}, fmt.Errorf("failed to update document: %w", err)
	}

	return model.Document{ID: id, Fields: patch}, nil
}

func (d *Documents) Delete(ctx context.Context, collection, id string) error {
	collection, err := d.collection(collection)
	if err != nil {
		return err
	}
	if id, err = documentID(id); err != nil {
		return err
	}

	if err := d.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	d.logger.Debug("Documents service: document deleted",
		"collection", collection,
		"id", id)

	return nil
}
