// Package mongo stores documents in MongoDB, one collection per document
// collection, with the document id as a string _id.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/baasproxy/internal/model"
)

const idField = "_id"

var _ model.DocumentStore = (*Store)(nil)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to uri and uses database name. Embedded documents decode as
// maps so they serialize back to JSON objects.
func New(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *Store) Get(ctx context.Context, collection, id string) (model.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{idField: id}).Decode(&raw)
	if err != nil {
		return model.Document{}, translateError("get document", err)
	}

	return toDocument(raw), nil
}

// List returns documents ordered by _id. Generated ids are ObjectID hex
// strings, so this is creation order for documents made by Create.
func (s *Store) List(ctx context.Context, collection string) ([]model.Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: idField, Value: 1}}))
	if err != nil {
		return nil, translateError("list documents", err)
	}

	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, translateError("list documents", err)
	}

	docs := make([]model.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}

	return docs, nil
}

func (s *Store) Create(ctx context.Context, collection string, fields map[string]any) (model.Document, error) {
	if err := checkReserved(fields); err != nil {
		return model.Document{}, err
	}

	id := primitive.NewObjectID().Hex()

	if _, err := s.db.Collection(collection).InsertOne(ctx, withID(id, fields)); err != nil {
		return model.Document{}, translateError("create document", err)
	}

	return model.Document{ID: id, Fields: fields}, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := checkReserved(fields); err != nil {
		return err
	}

	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{idField: id}, withID(id, fields),
		options.Replace().SetUpsert(true))
	if err != nil {
		return translateError("set document", err)
	}

	return nil
}

// Update applies patch with a single pipeline update so concurrent updates of
// other keys are not lost.
func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	if err := checkReserved(patch); err != nil {
		return err
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{idField: id}, mergePipeline(patch))
	if err != nil {
		return translateError("update document", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{idField: id}); err != nil {
		return translateError("delete document", err)
	}

	return nil
}

// mergePipeline sets every top-level key of patch with $setField, which
// treats keys literally, unlike $set which reads dots as paths.
func mergePipeline(patch map[string]any) mongo.Pipeline {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var root any = "$$ROOT"
	for _, k := range keys {
		root = bson.D{{Key: "$setField", Value: bson.D{
			{Key: "field", Value: bson.D{{Key: "$literal", Value: k}}},
			{Key: "input", Value: root},
			{Key: "value", Value: bson.D{{Key: "$literal", Value: patch[k]}}},
		}}}
	}

	return mongo.Pipeline{{{Key: "$replaceWith", Value: root}}}
}

// checkReserved rejects a caller-supplied _id, which would otherwise be
// dropped or overwritten by the document id.
func checkReserved(fields map[string]any) error {
	if _, ok := fields[idField]; ok {
		return model.ErrReservedField
	}

	return nil
}

func withID(id string, fields map[string]any) bson.M {
	doc := make(bson.M, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc[idField] = id

	return doc
}

func toDocument(raw bson.M) model.Document {
	id, _ := raw[idField].(string)
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != idField {
			fields[k] = normalize(v)
		}
	}

	return model.Document{ID: id, Fields: fields}
}

// normalize converts driver container types into plain maps and slices.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}

func translateError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.ErrNotFound
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}
