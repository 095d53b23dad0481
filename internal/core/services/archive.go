package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// Ensure ArchiveServiceImpl implements the interface.
var _ driving.ArchiveService = (*ArchiveServiceImpl)(nil)

// documentUploadRequest is validated before an archive upload is sent.
type documentUploadRequest struct {
	Sender     string `validate:"required"`
	Subject    string `validate:"required"`
	LetterType string `validate:"required,oneof=masuk keluar"`
	FileName   string `validate:"required"`
}

// staffUploadRequest is validated before a staff upload is sent.
type staffUploadRequest struct {
	Subject  string `validate:"required"`
	FileName string `validate:"required"`
}

// ArchiveServiceImpl browses and mutates the two document collections,
// writing successful list fetches through to the offline cache.
type ArchiveServiceImpl struct {
	documents driven.DocumentGateway
	staffDocs driven.StaffDocumentGateway
	cache     driven.ArchiveCache
}

// NewArchiveService creates an archive service. cache may be nil to
// disable offline snapshots.
func NewArchiveService(
	documents driven.DocumentGateway,
	staffDocs driven.StaffDocumentGateway,
	cache driven.ArchiveCache,
) *ArchiveServiceImpl {
	return &ArchiveServiceImpl{
		documents: documents,
		staffDocs: staffDocs,
		cache:     cache,
	}
}

// ListDocuments fetches one page of the administrative archive.
func (s *ArchiveServiceImpl) ListDocuments(ctx context.Context, filter domain.DocumentFilter) (*domain.DocumentPage, error) {
	if filter.LetterType != "" && !filter.LetterType.IsValid() {
		return nil, fmt.Errorf("letter type %q: %w", filter.LetterType, domain.ErrInvalidInput)
	}

	page, err := s.documents.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Snapshot unfiltered first pages only; a filtered page is a poor
	// offline representation of the archive.
	if s.cache != nil && filter.Search == "" && filter.LetterType == "" && filter.Page <= 1 {
		if err := s.cache.SaveDocuments(ctx, page.Documents); err != nil {
			logger.Debug("archive cache write failed: %v", err)
		}
	}
	return page, nil
}

// ListDocumentsOffline reads the last cached archive snapshot.
func (s *ArchiveServiceImpl) ListDocumentsOffline(ctx context.Context) ([]domain.Document, error) {
	if s.cache == nil {
		return nil, domain.ErrOfflineOnly
	}
	return s.cache.LoadDocuments(ctx)
}

// GetDocument fetches one archive document.
func (s *ArchiveServiceImpl) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("get document: %w", domain.ErrInvalidInput)
	}
	return s.documents.Get(ctx, id)
}

// UploadDocument creates an archive document. Admin only.
func (s *ArchiveServiceImpl) UploadDocument(
	ctx context.Context, viewer domain.Session, upload driven.DocumentUpload,
) (*domain.Document, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("upload document: %w", domain.ErrForbidden)
	}
	if err := validateDocumentUpload(upload, true); err != nil {
		return nil, err
	}
	return s.documents.Create(ctx, upload)
}

// UpdateDocument modifies an archive document. Admin only.
func (s *ArchiveServiceImpl) UpdateDocument(
	ctx context.Context, viewer domain.Session, id string, upload driven.DocumentUpload,
) (*domain.Document, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("update document: %w", domain.ErrForbidden)
	}
	if id == "" {
		return nil, fmt.Errorf("update document: %w", domain.ErrInvalidInput)
	}
	if err := validateDocumentUpload(upload, false); err != nil {
		return nil, err
	}
	return s.documents.Update(ctx, id, upload)
}

// DeleteDocument removes an archive document. Admin only.
func (s *ArchiveServiceImpl) DeleteDocument(ctx context.Context, viewer domain.Session, id string) error {
	if !viewer.IsAdmin() {
		return fmt.Errorf("delete document: %w", domain.ErrForbidden)
	}
	if id == "" {
		return fmt.Errorf("delete document: %w", domain.ErrInvalidInput)
	}
	return s.documents.Delete(ctx, id)
}

// ListStaffDocuments fetches one page of the staff collection.
func (s *ArchiveServiceImpl) ListStaffDocuments(ctx context.Context, search string, page int) (*domain.StaffDocumentPage, error) {
	result, err := s.staffDocs.List(ctx, search, page)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && search == "" && page <= 1 {
		if err := s.cache.SaveStaffDocuments(ctx, result.Documents); err != nil {
			logger.Debug("staff cache write failed: %v", err)
		}
	}
	return result, nil
}

// ListStaffDocumentsOffline reads the last cached staff snapshot.
func (s *ArchiveServiceImpl) ListStaffDocumentsOffline(ctx context.Context) ([]domain.StaffDocument, error) {
	if s.cache == nil {
		return nil, domain.ErrOfflineOnly
	}
	return s.cache.LoadStaffDocuments(ctx)
}

// GetStaffDocument fetches one staff document.
func (s *ArchiveServiceImpl) GetStaffDocument(ctx context.Context, id string) (*domain.StaffDocument, error) {
	if id == "" {
		return nil, fmt.Errorf("get staff document: %w", domain.ErrInvalidInput)
	}
	return s.staffDocs.Get(ctx, id)
}

// UploadStaffDocument creates a staff document owned by the caller.
func (s *ArchiveServiceImpl) UploadStaffDocument(
	ctx context.Context, upload driven.StaffDocumentUpload,
) (*domain.StaffDocument, error) {
	if err := validateStaffUpload(upload, true); err != nil {
		return nil, err
	}
	return s.staffDocs.Create(ctx, upload)
}

// UpdateStaffDocument modifies a staff document. Owners and admins
// only; mirrored client-side so a wrong caller fails before the
// network round-trip.
func (s *ArchiveServiceImpl) UpdateStaffDocument(
	ctx context.Context, viewer domain.Session, id string, upload driven.StaffDocumentUpload,
) (*domain.StaffDocument, error) {
	if err := s.checkStaffOwnership(ctx, viewer, id); err != nil {
		return nil, err
	}
	if err := validateStaffUpload(upload, false); err != nil {
		return nil, err
	}
	return s.staffDocs.Update(ctx, id, upload)
}

// DeleteStaffDocument removes a staff document. Owners and admins only.
func (s *ArchiveServiceImpl) DeleteStaffDocument(ctx context.Context, viewer domain.Session, id string) error {
	if err := s.checkStaffOwnership(ctx, viewer, id); err != nil {
		return err
	}
	return s.staffDocs.Delete(ctx, id)
}

// Download saves the file behind a resolved document to destPath.
// Both collections share the admin gateway's file transport.
func (s *ArchiveServiceImpl) Download(ctx context.Context, doc domain.ResolvedDocument, destPath string) error {
	fileURL := doc.FileURL()
	if fileURL == "" {
		return fmt.Errorf("document %s has no stored file: %w", doc.ID(), domain.ErrNotFound)
	}

	body, err := s.documents.Download(ctx, fileURL)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	return nil
}

// checkStaffOwnership allows admins and the document owner through.
func (s *ArchiveServiceImpl) checkStaffOwnership(ctx context.Context, viewer domain.Session, id string) error {
	if id == "" {
		return fmt.Errorf("staff document: %w", domain.ErrInvalidInput)
	}
	if viewer.IsAdmin() {
		return nil
	}

	doc, err := s.staffDocs.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.OwnerID != viewer.UserID {
		return fmt.Errorf("staff document %s: %w", id, domain.ErrForbidden)
	}
	return nil
}

// validateDocumentUpload checks an archive upload client-side.
// requireFile is true for creates; updates may keep the stored file.
func validateDocumentUpload(upload driven.DocumentUpload, requireFile bool) error {
	req := documentUploadRequest{
		Sender:     upload.Sender,
		Subject:    upload.Subject,
		LetterType: upload.LetterType.String(),
		FileName:   upload.FileName,
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("document upload: %w: %v", domain.ErrInvalidInput, err)
	}
	if requireFile && upload.File == nil {
		return fmt.Errorf("document upload: missing file: %w", domain.ErrInvalidInput)
	}
	return nil
}

// validateStaffUpload checks a staff upload client-side.
func validateStaffUpload(upload driven.StaffDocumentUpload, requireFile bool) error {
	req := staffUploadRequest{Subject: upload.Subject, FileName: upload.FileName}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("staff upload: %w: %v", domain.ErrInvalidInput, err)
	}
	if requireFile && upload.File == nil {
		return fmt.Errorf("staff upload: missing file: %w", domain.ErrInvalidInput)
	}
	return nil
}
