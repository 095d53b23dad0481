package driven

import (
	"context"
	"io"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// DocumentUpload carries a new or updated archive document and its file.
type DocumentUpload struct {
	// Sender is the originating party named on the letter.
	Sender string

	// Subject is the letter subject line.
	Subject string

	// LetterType classifies the letter.
	LetterType domain.LetterType

	// FileName is the name to store the file under.
	FileName string

	// File is the file content. May be nil on update when the stored
	// file is kept.
	File io.Reader
}

// DocumentGateway wraps the administrative archive collection endpoints.
// Implementations normalise the server's response envelopes into domain
// types and map HTTP failures onto domain errors.
type DocumentGateway interface {
	// Get fetches one archive document by id.
	// Returns domain.ErrNotFound when the collection has no such id.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List fetches one page of the archive collection.
	List(ctx context.Context, filter domain.DocumentFilter) (*domain.DocumentPage, error)

	// Create uploads a new archive document.
	Create(ctx context.Context, upload DocumentUpload) (*domain.Document, error)

	// Update modifies an existing archive document.
	Update(ctx context.Context, id string, upload DocumentUpload) (*domain.Document, error)

	// Delete removes an archive document.
	Delete(ctx context.Context, id string) error

	// Download streams the stored file behind a file URL.
	// The caller must close the reader.
	Download(ctx context.Context, fileURL string) (io.ReadCloser, error)
}

// StaffDocumentUpload carries a new or updated staff document and its file.
type StaffDocumentUpload struct {
	// Subject is the document subject line.
	Subject string

	// FileName is the name to store the file under.
	FileName string

	// File is the file content. May be nil on update.
	File io.Reader
}

// StaffDocumentGateway wraps the personal staff collection endpoints.
type StaffDocumentGateway interface {
	// Get fetches one staff document by id.
	// Returns domain.ErrNotFound when the collection has no such id.
	Get(ctx context.Context, id string) (*domain.StaffDocument, error)

	// List fetches one page of the staff collection.
	List(ctx context.Context, search string, page int) (*domain.StaffDocumentPage, error)

	// Create uploads a new staff document.
	Create(ctx context.Context, upload StaffDocumentUpload) (*domain.StaffDocument, error)

	// Update modifies an existing staff document.
	Update(ctx context.Context, id string, upload StaffDocumentUpload) (*domain.StaffDocument, error)

	// Delete removes a staff document.
	Delete(ctx context.Context, id string) error
}
