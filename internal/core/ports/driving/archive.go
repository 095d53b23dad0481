package driving

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// ArchiveService browses and mutates the two document collections.
type ArchiveService interface {
	// ListDocuments fetches one page of the administrative archive and
	// writes the result through to the offline cache.
	ListDocuments(ctx context.Context, filter domain.DocumentFilter) (*domain.DocumentPage, error)

	// ListDocumentsOffline reads the last cached archive snapshot.
	ListDocumentsOffline(ctx context.Context) ([]domain.Document, error)

	// GetDocument fetches one archive document.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// UploadDocument creates an archive document. Admin only.
	UploadDocument(ctx context.Context, viewer domain.Session, upload driven.DocumentUpload) (*domain.Document, error)

	// UpdateDocument modifies an archive document. Admin only.
	UpdateDocument(ctx context.Context, viewer domain.Session, id string, upload driven.DocumentUpload) (*domain.Document, error)

	// DeleteDocument removes an archive document. Admin only.
	DeleteDocument(ctx context.Context, viewer domain.Session, id string) error

	// ListStaffDocuments fetches one page of the staff collection and
	// writes the result through to the offline cache.
	ListStaffDocuments(ctx context.Context, search string, page int) (*domain.StaffDocumentPage, error)

	// ListStaffDocumentsOffline reads the last cached staff snapshot.
	ListStaffDocumentsOffline(ctx context.Context) ([]domain.StaffDocument, error)

	// GetStaffDocument fetches one staff document.
	GetStaffDocument(ctx context.Context, id string) (*domain.StaffDocument, error)

	// UploadStaffDocument creates a staff document.
	UploadStaffDocument(ctx context.Context, upload driven.StaffDocumentUpload) (*domain.StaffDocument, error)

	// UpdateStaffDocument modifies a staff document the viewer owns,
	// or any staff document for admins.
	UpdateStaffDocument(ctx context.Context, viewer domain.Session, id string, upload driven.StaffDocumentUpload) (*domain.StaffDocument, error)

	// DeleteStaffDocument removes a staff document the viewer owns,
	// or any staff document for admins.
	DeleteStaffDocument(ctx context.Context, viewer domain.Session, id string) error

	// Download saves the file behind a resolved document to destPath.
	Download(ctx context.Context, doc domain.ResolvedDocument, destPath string) error
}

// UserAdminService administers the user directory. Every operation is
// guarded client-side to admin sessions before any network call.
type UserAdminService interface {
	// List returns all accounts.
	List(ctx context.Context, viewer domain.Session) ([]domain.User, error)

	// Create adds an account.
	Create(ctx context.Context, viewer domain.Session, user driven.NewUser) (*domain.User, error)

	// Update modifies an account.
	Update(ctx context.Context, viewer domain.Session, id string, user driven.NewUser) (*domain.User, error)

	// Delete removes an account.
	Delete(ctx context.Context, viewer domain.Session, id string) error
}
