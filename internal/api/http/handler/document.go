package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

// DocumentService defines generic document operations.
type DocumentService interface {
	Get(ctx context.Context, collection, id string) (model.Document, error)
	List(ctx context.Context, collection string) ([]model.Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (model.Document, error)
	Update(ctx context.Context, collection, id string, patch map[string]any) (model.Document, error)
	Delete(ctx context.Context, collection, id string) error
}

// Document handles the generic CRUD endpoint.
type Document struct {
	documentService DocumentService
	logger          *logger.Logger
}

// NewDocument creates a new Document handler.
func NewDocument(documentService DocumentService, logger *logger.Logger) *Document {
	return &Document{
		documentService: documentService,
		logger:          logger,
	}
}

func bindObject(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || fields == nil {
		return nil, false
	}

	return fields, true
}

// Get returns one document when id is given, otherwise the whole collection.
func (h *Document) Get(c *gin.Context) {
	collection, id := c.Query("collection"), c.Query("id")

	if id == "" {
		docs, err := h.documentService.List(c.Request.Context(), collection)
		if err != nil {
			writeError(c, h.logger, documentGetErrors, "Document handler: list documents failed", err,
				"collection", collection)
			return
		}

		out := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			out = append(out, doc.Flatten())
		}
		c.JSON(http.StatusOK, out)
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), collection, id)
	if err != nil {
		writeError(c, h.logger, documentGetErrors, "Document handler: get document failed", err,
			"collection", collection,
			"id", id)
		return
	}

	c.JSON(http.StatusOK, doc.Flatten())
}

// Create stores the request body as a new document.
func (h *Document) Create(c *gin.Context) {
	collection := c.Query("collection")

	fields, ok := bindObject(c)
	if !ok {
		writeError(c, h.logger, documentCreateErrors, "Document handler: invalid create body", model.ErrInvalidBody,
			"collection", collection)
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), collection, fields)
	if err != nil {
		writeError(c, h.logger, documentCreateErrors, "Document handler: create document failed", err,
			"collection", collection)
		return
	}

	c.JSON(http.StatusCreated, doc.Flatten())
}

// Update merges the request body into an existing document.
func (h *Document) Update(c *gin.Context) {
	collection, id := c.Query("collection"), c.Query("id")

	if id == "" {
		writeError(c, h.logger, documentUpdateErrors, "Document handler: update without id", model.ErrDocumentIDRequired,
			"collection", collection)
		return
	}

	patch, ok := bindObject(c)
	if !ok {
		writeError(c, h.logger, documentUpdateErrors, "Document handler: invalid update body", model.ErrInvalidBody,
			"collection", collection,
			"id", id)
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), collection, id, patch)
	if err != nil {
		writeError(c, h.logger, documentUpdateErrors, "Document handler: update document failed", err,
			"collection", collection,
			"id", id)
		return
	}

	c.JSON(http.StatusOK, doc.Flatten())
}

// Delete removes a document. Deleting a missing document succeeds.
func (h *Document) Delete(c *gin.Context) {
	collection, id := c.Query("collection"), c.Query("id")

	if id == "" {
		writeError(c, h.logger, documentDeleteErrors, "Document handler: delete without id", model.ErrDocumentIDRequired,
			"collection", collection)
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), collection, id); err != nil {
		writeError(c, h.logger, documentDeleteErrors, "Document handler: delete document failed", err,
			"collection", collection,
			"id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
