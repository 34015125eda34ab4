// Package firestore provides the Cloud Firestore document store.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/baasproxy/internal/model"
)

var _ model.DocumentStore = (*Store)(nil)

// Store maps collections and documents one to one onto Firestore.
type Store struct {
	client *firestore.Client
}

// New connects to Firestore for projectID. An empty credentialsFile uses
// application default credentials; FIRESTORE_EMULATOR_HOST is honoured by the client.
func New(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Close releases the client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, collection, id string) (model.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return model.Document{}, translateError("get document", err)
	}

	return model.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]model.Document, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	docs := []model.Document{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, translateError("list documents", err)
		}
		docs = append(docs, model.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}

	return docs, nil
}

func (s *Store) Create(ctx context.Context, collection string, fields map[string]any) (model.Document, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, nonNil(fields))
	if err != nil {
		return model.Document{}, translateError("create document", err)
	}

	return model.Document{ID: ref.ID, Fields: fields}, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, nonNil(fields)); err != nil {
		return translateError("set document", err)
	}

	return nil
}

// Update writes only the top-level keys in patch. Firestore rejects updates
// of missing documents with NotFound.
func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	ref := s.client.Collection(collection).Doc(id)

	updates := fieldUpdates(patch)
	if len(updates) == 0 {
		if _, err := ref.Get(ctx); err != nil {
			return translateError("update document", err)
		}
		return nil
	}

	if _, err := ref.Update(ctx, updates); err != nil {
		return translateError("update document", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return translateError("delete document", err)
	}

	return nil
}

// fieldUpdates builds one update per top-level key. FieldPath keeps keys with
// dots from being read as nested paths.
func fieldUpdates(patch map[string]any) []firestore.Update {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: patch[k]})
	}

	return updates
}

func translateError(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return model.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func nonNil(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	return fields
}
