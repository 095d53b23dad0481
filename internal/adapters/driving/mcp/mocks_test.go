package mcp

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// mockArchiveService is a mock implementation of driving.ArchiveService.
type mockArchiveService struct {
	page      *domain.DocumentPage
	staffPage *domain.StaffDocumentPage
	err       error

	lastFilter domain.DocumentFilter
}

func (m *mockArchiveService) ListDocuments(_ context.Context, filter domain.DocumentFilter) (*domain.DocumentPage, error) {
	m.lastFilter = filter
	return m.page, m.err
}

func (m *mockArchiveService) ListDocumentsOffline(_ context.Context) ([]domain.Document, error) {
	return nil, m.err
}

func (m *mockArchiveService) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockArchiveService) UploadDocument(_ context.Context, _ domain.Session, _ driven.DocumentUpload) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockArchiveService) UpdateDocument(_ context.Context, _ domain.Session, _ string, _ driven.DocumentUpload) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockArchiveService) DeleteDocument(_ context.Context, _ domain.Session, _ string) error {
	return m.err
}

func (m *mockArchiveService) ListStaffDocuments(_ context.Context, _ string, _ int) (*domain.StaffDocumentPage, error) {
	return m.staffPage, m.err
}

func (m *mockArchiveService) ListStaffDocumentsOffline(_ context.Context) ([]domain.StaffDocument, error) {
	return nil, m.err
}

func (m *mockArchiveService) GetStaffDocument(_ context.Context, _ string) (*domain.StaffDocument, error) {
	return nil, m.err
}

func (m *mockArchiveService) UploadStaffDocument(_ context.Context, _ driven.StaffDocumentUpload) (*domain.StaffDocument, error) {
	return nil, m.err
}

func (m *mockArchiveService) UpdateStaffDocument(_ context.Context, _ domain.Session, _ string, _ driven.StaffDocumentUpload) (*domain.StaffDocument, error) {
	return nil, m.err
}

func (m *mockArchiveService) DeleteStaffDocument(_ context.Context, _ domain.Session, _ string) error {
	return m.err
}

func (m *mockArchiveService) Download(_ context.Context, _ domain.ResolvedDocument, _ string) error {
	return m.err
}

// mockResolver is a mock implementation of driving.DocumentResolver.
type mockResolver struct {
	resolved domain.ResolvedDocument
	err      error

	lastID   string
	lastHint domain.DocumentSource
}

func (m *mockResolver) Resolve(_ context.Context, id string, hint domain.DocumentSource) (domain.ResolvedDocument, error) {
	m.lastID = id
	m.lastHint = hint
	return m.resolved, m.err
}

func (m *mockResolver) ResolveLink(_ context.Context, _ string) (domain.ResolvedDocument, error) {
	return m.resolved, m.err
}

// mockOrderService is a mock implementation of driving.OrderService.
type mockOrderService struct {
	orders []domain.SuperiorOrder
	err    error

	lastViewer domain.Session
}

func (m *mockOrderService) Create(_ context.Context, _ domain.Session, _ string, _ []string) (*domain.OrderBatchResult, error) {
	return nil, m.err
}

func (m *mockOrderService) List(_ context.Context, viewer domain.Session) ([]domain.SuperiorOrder, error) {
	m.lastViewer = viewer
	return m.orders, m.err
}

func (m *mockOrderService) Delete(_ context.Context, _ domain.Session, _ string) error {
	return m.err
}
