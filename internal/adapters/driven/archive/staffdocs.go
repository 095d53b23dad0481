package archive

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure StaffDocumentGateway implements the interface.
var _ driven.StaffDocumentGateway = (*StaffDocumentGateway)(nil)

// StaffDocumentGateway wraps the personal staff collection endpoints.
// The backend scopes every call to the bearer token's owner.
type StaffDocumentGateway struct {
	client *Client
}

// NewStaffDocumentGateway creates a staff gateway over the shared client.
func NewStaffDocumentGateway(client *Client) *StaffDocumentGateway {
	return &StaffDocumentGateway{client: client}
}

// staffDocumentDTO is the backend's staff document shape.
type staffDocumentDTO struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	ResourceType string    `json:"resource_type"`
	OwnerID      string    `json:"owner_id"`
	OwnerName    string    `json:"owner_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (d staffDocumentDTO) toDomain() domain.StaffDocument {
	return domain.StaffDocument{
		ID:           d.ID,
		Subject:      d.Subject,
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		ResourceType: d.ResourceType,
		OwnerID:      d.OwnerID,
		OwnerName:    d.OwnerName,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type staffPageDTO struct {
	Data  []staffDocumentDTO `json:"data"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
}

// Get fetches one staff document by id.
func (g *StaffDocumentGateway) Get(ctx context.Context, id string) (*domain.StaffDocument, error) {
	var dto staffDocumentDTO
	err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/document_staff/" + url.PathEscape(id),
	}, &dto)
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// List fetches one page of the staff collection.
func (g *StaffDocumentGateway) List(ctx context.Context, search string, page int) (*domain.StaffDocumentPage, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}

	var dto staffPageDTO
	err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/document_staff",
		query:  query,
	}, &dto)
	if err != nil {
		return nil, err
	}

	result := &domain.StaffDocumentPage{
		Documents: make([]domain.StaffDocument, 0, len(dto.Data)),
		Total:     dto.Total,
		Page:      dto.Page,
	}
	if result.Page < 1 {
		result.Page = 1
	}
	for _, d := range dto.Data {
		result.Documents = append(result.Documents, d.toDomain())
	}
	return result, nil
}

// Create uploads a new staff document.
func (g *StaffDocumentGateway) Create(ctx context.Context, upload driven.StaffDocumentUpload) (*domain.StaffDocument, error) {
	var dto staffDocumentDTO
	err := g.client.doMultipart(ctx, http.MethodPost, "/document_staff",
		staffUploadFields(upload), "file", upload.FileName, upload.File, &dto)
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// Update modifies an existing staff document.
func (g *StaffDocumentGateway) Update(ctx context.Context, id string, upload driven.StaffDocumentUpload) (*domain.StaffDocument, error) {
	var dto staffDocumentDTO
	err := g.client.doMultipart(ctx, http.MethodPut, "/document_staff/"+url.PathEscape(id),
		staffUploadFields(upload), "file", upload.FileName, upload.File, &dto)
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// Delete removes a staff document.
func (g *StaffDocumentGateway) Delete(ctx context.Context, id string) error {
	return g.client.do(ctx, request{
		method: http.MethodDelete,
		path:   "/document_staff/" + url.PathEscape(id),
	}, nil)
}

func staffUploadFields(upload driven.StaffDocumentUpload) []multipartField {
	return []multipartField{
		{"subject", upload.Subject},
		{"file_name", upload.FileName},
	}
}
