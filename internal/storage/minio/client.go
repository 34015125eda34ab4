package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/dtroode/baasproxy/internal/model"
)

const objectSuffix = ".json"

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}
func (w minioClientWrapper) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return w.c.ListObjects(ctx, bucketName, opts)
}

var _ model.DocumentStore = (*Client)(nil)

// Client stores each document as a JSON object at "<collection>/<id>.json".
type Client struct {
	api    minioAPI
	bucket string
}

// NewClient creates a new MinIO document store using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, bucket string) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{c: client}, bucket)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket string) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
	}

	err := c.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func objectKey(collection, id string) string {
	return collection + "/" + id + objectSuffix
}

func (c *Client) Get(ctx context.Context, collection, id string) (model.Document, error) {
	fields, err := c.read(ctx, objectKey(collection, id))
	if err != nil {
		return model.Document{}, err
	}

	return model.Document{ID: id, Fields: fields}, nil
}

// List returns the collection in key order. Ids created here are UUIDv7, so
// key order follows creation order.
func (c *Client) List(ctx context.Context, collection string) ([]model.Document, error) {
	prefix := collection + "/"

	docs := []model.Document{}
	for obj := range c.api.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, objectSuffix) {
			continue
		}

		fields, err := c.read(ctx, obj.Key)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// removed between listing and reading
				continue
			}
			return nil, err
		}
		id := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), objectSuffix)
		docs = append(docs, model.Document{ID: id, Fields: fields})
	}

	return docs, nil
}

func (c *Client) Create(ctx context.Context, collection string, fields map[string]any) (model.Document, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to generate document id: %w", err)
	}

	if err := c.Set(ctx, collection, id.String(), fields); err != nil {
		return model.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return model.Document{ID: id.String(), Fields: fields}, nil
}

func (c *Client) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	return c.write(ctx, objectKey(collection, id), fields)
}

// Update reads the object, merges patch into it and writes it back. Concurrent
// updates to one document are last-write-wins.
func (c *Client) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	key := objectKey(collection, id)

	current, err := c.read(ctx, key)
	if err != nil {
		return err
	}

	return c.write(ctx, key, model.MergeFields(current, patch))
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	err := c.api.RemoveObject(ctx, c.bucket, objectKey(collection, id), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (c *Client) read(ctx context.Context, key string) (map[string]any, error) {
	obj, err := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, objectError(err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, objectError(err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode object %s: %w", key, err)
	}

	return fields, nil
}

func (c *Client) write(ctx context.Context, key string, fields map[string]any) error {
	if fields == nil {
		fields = map[string]any{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = c.api.PutObject(ctx, c.bucket, key, bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

func objectError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return model.ErrNotFound
	}
	return fmt.Errorf("failed to get object: %w", err)
}
