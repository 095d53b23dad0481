package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure StaffDocumentGateway implements the interface.
var _ driven.StaffDocumentGateway = (*StaffDocumentGateway)(nil)

// StaffDocumentGateway is an in-memory implementation of
// driven.StaffDocumentGateway. The real backend derives the owner from
// the bearer token; here the owner is set with AuthAs.
type StaffDocumentGateway struct {
	mu    sync.RWMutex
	docs  map[string]domain.StaffDocument
	owner string
}

// NewStaffDocumentGateway creates an empty in-memory staff collection.
func NewStaffDocumentGateway() *StaffDocumentGateway {
	return &StaffDocumentGateway{
		docs: make(map[string]domain.StaffDocument),
	}
}

// AuthAs sets the owner recorded on subsequent creates.
func (g *StaffDocumentGateway) AuthAs(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.owner = userID
}

// Seed inserts a staff document directly, for tests.
func (g *StaffDocumentGateway) Seed(doc domain.StaffDocument) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.docs[doc.ID] = doc
}

// Get fetches one staff document by id.
func (g *StaffDocumentGateway) Get(_ context.Context, id string) (*domain.StaffDocument, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	doc, ok := g.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List fetches one page of the staff collection.
func (g *StaffDocumentGateway) List(_ context.Context, search string, page int) (*domain.StaffDocumentPage, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var matched []domain.StaffDocument
	for _, doc := range g.docs {
		if search != "" && !strings.Contains(strings.ToLower(doc.Subject), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, doc)
	}

	if page < 1 {
		page = 1
	}
	return &domain.StaffDocumentPage{
		Documents: paginate(matched, page),
		Total:     len(matched),
		Page:      page,
	}, nil
}

// Create uploads a new staff document.
func (g *StaffDocumentGateway) Create(_ context.Context, upload driven.StaffDocumentUpload) (*domain.StaffDocument, error) {
	if _, err := readAll(upload.File); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := uuid.NewString()
	doc := domain.StaffDocument{
		ID:           id,
		Subject:      upload.Subject,
		FileName:     upload.FileName,
		FileURL:      "memory://files/" + id,
		ResourceType: "raw",
		OwnerID:      g.owner,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	g.docs[id] = doc
	return &doc, nil
}

// Update modifies an existing staff document.
func (g *StaffDocumentGateway) Update(_ context.Context, id string, upload driven.StaffDocumentUpload) (*domain.StaffDocument, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, ok := g.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc.Subject = upload.Subject
	doc.FileName = upload.FileName
	doc.UpdatedAt = time.Now()
	g.docs[id] = doc
	return &doc, nil
}

// Delete removes a staff document.
func (g *StaffDocumentGateway) Delete(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(g.docs, id)
	return nil
}
