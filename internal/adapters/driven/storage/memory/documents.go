// Package memory provides in-memory implementations of the driven
// gateway ports. They back tests and demo wiring where no archive
// backend is reachable.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// pageSize matches the backend's fixed listing page size.
const pageSize = 10

// Ensure DocumentGateway implements the interface.
var _ driven.DocumentGateway = (*DocumentGateway)(nil)

// DocumentGateway is an in-memory implementation of
// driven.DocumentGateway.
type DocumentGateway struct {
	mu    sync.RWMutex
	docs  map[string]domain.Document
	files map[string][]byte
}

// NewDocumentGateway creates an empty in-memory archive collection.
func NewDocumentGateway() *DocumentGateway {
	return &DocumentGateway{
		docs:  make(map[string]domain.Document),
		files: make(map[string][]byte),
	}
}

// Seed inserts a document directly, for tests.
func (g *DocumentGateway) Seed(doc domain.Document) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.docs[doc.ID] = doc
}

// Get fetches one archive document by id.
func (g *DocumentGateway) Get(_ context.Context, id string) (*domain.Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	doc, ok := g.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List fetches one page of the archive collection.
func (g *DocumentGateway) List(_ context.Context, filter domain.DocumentFilter) (*domain.DocumentPage, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var matched []domain.Document
	for _, doc := range g.docs {
		if filter.LetterType != "" && doc.LetterType != filter.LetterType {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(doc.Subject), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(doc.Sender), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, doc)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	return &domain.DocumentPage{
		Documents: paginate(matched, page),
		Total:     len(matched),
		Page:      page,
	}, nil
}

// Create uploads a new archive document.
func (g *DocumentGateway) Create(_ context.Context, upload driven.DocumentUpload) (*domain.Document, error) {
	content, err := readAll(upload.File)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := uuid.NewString()
	doc := domain.Document{
		ID:           id,
		Sender:       upload.Sender,
		Subject:      upload.Subject,
		LetterType:   upload.LetterType,
		FileName:     upload.FileName,
		FileURL:      "memory://files/" + id,
		ResourceType: "raw",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	g.docs[id] = doc
	g.files[doc.FileURL] = content
	return &doc, nil
}

// Update modifies an existing archive document.
func (g *DocumentGateway) Update(_ context.Context, id string, upload driven.DocumentUpload) (*domain.Document, error) {
	var content []byte
	if upload.File != nil {
		var err error
		content, err = readAll(upload.File)
		if err != nil {
			return nil, err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	doc, ok := g.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	doc.Sender = upload.Sender
	doc.Subject = upload.Subject
	doc.LetterType = upload.LetterType
	doc.FileName = upload.FileName
	doc.UpdatedAt = time.Now()
	if content != nil {
		g.files[doc.FileURL] = content
	}
	g.docs[id] = doc
	return &doc, nil
}

// Delete removes an archive document.
func (g *DocumentGateway) Delete(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	doc, ok := g.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(g.files, doc.FileURL)
	delete(g.docs, id)
	return nil
}

// Download streams the stored file behind a file URL.
func (g *DocumentGateway) Download(_ context.Context, fileURL string) (io.ReadCloser, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	content, ok := g.files[fileURL]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", fileURL, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// paginate slices docs to one fixed-size page.
func paginate[T any](items []T, page int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// readAll drains an upload body.
func readAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("upload body: %w", domain.ErrInvalidInput)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload body: %w", err)
	}
	return content, nil
}
