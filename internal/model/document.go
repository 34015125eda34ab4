package model

import "context"

// DocumentStore is the external document collaborator.
//
// Get and Update return ErrNotFound for a missing document. Delete of a missing
// document succeeds.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// Document is a schema-less record in a named collection.
type Document struct {
	ID     string
	Fields map[string]any
}

// Flatten returns fields with the document id under "id". The id always wins
// over a field of the same name.
func (d Document) Flatten() map[string]any {
	out := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["id"] = d.ID

	return out
}

// MergeFields applies patch on top of base and returns the result. Top-level
// keys present in patch overwrite, all other keys of base are kept.
func MergeFields(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}

	return out
}
