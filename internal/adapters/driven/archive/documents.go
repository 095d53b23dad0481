package archive

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure DocumentGateway implements the interface.
var _ driven.DocumentGateway = (*DocumentGateway)(nil)

// DocumentGateway wraps the administrative archive endpoints.
type DocumentGateway struct {
	client *Client
}

// NewDocumentGateway creates a document gateway over the shared client.
func NewDocumentGateway(client *Client) *DocumentGateway {
	return &DocumentGateway{client: client}
}

// documentDTO is the backend's document shape.
type documentDTO struct {
	ID           string    `json:"id"`
	Sender       string    `json:"sender"`
	Subject      string    `json:"subject"`
	LetterType   string    `json:"letter_type"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	ResourceType string    `json:"resource_type"`
	OwnerID      string    `json:"owner_id"`
	OwnerName    string    `json:"owner_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (d documentDTO) toDomain() domain.Document {
	return domain.Document{
		ID:           d.ID,
		Sender:       d.Sender,
		Subject:      d.Subject,
		LetterType:   domain.LetterType(d.LetterType),
		FileName:     d.FileName,
		FileURL:      d.FileURL,
		ResourceType: d.ResourceType,
		OwnerID:      d.OwnerID,
		OwnerName:    d.OwnerName,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// documentPageDTO is the backend's paginated list envelope.
type documentPageDTO struct {
	Data  []documentDTO `json:"data"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
}

// Get fetches one archive document by id.
func (g *DocumentGateway) Get(ctx context.Context, id string) (*domain.Document, error) {
	var dto documentDTO
	err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/documents/" + url.PathEscape(id),
	}, &dto)
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// List fetches one page of the archive collection.
func (g *DocumentGateway) List(ctx context.Context, filter domain.DocumentFilter) (*domain.DocumentPage, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.LetterType != "" {
		query.Set("letter_type", filter.LetterType.String())
	}
	if filter.Page > 1 {
		query.Set("page", strconv.Itoa(filter.Page))
	}

	var dto documentPageDTO
	err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/documents",
		query:  query,
	}, &dto)
	if err != nil {
		return nil, err
	}

	page := &domain.DocumentPage{
		Documents: make([]domain.Document, 0, len(dto.Data)),
		Total:     dto.Total,
		Page:      dto.Page,
	}
	if page.Page < 1 {
		page.Page = 1
	}
	for _, d := range dto.Data {
		page.Documents = append(page.Documents, d.toDomain())
	}
	return page, nil
}

// Create uploads a new archive document.
func (g *DocumentGateway) Create(ctx context.Context, upload driven.DocumentUpload) (*domain.Document, error) {
	var dto documentDTO
	err := g.client.doMultipart(ctx, http.MethodPost, "/documents",
		uploadFields(upload), "file", upload.FileName, upload.File, &dto)
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// Update modifies an existing archive document. A nil file keeps the
// stored one.
func (g *DocumentGateway) Update(ctx context.Context, id string, upload driven.DocumentUpload) (*domain.Document, error) {
	var dto documentDTO
	err := g.client.doMultipart(ctx, http.MethodPut, "/documents/"+url.PathEscape(id),
		uploadFields(upload), "file", upload.FileName, upload.File, &dto)
	if err != nil {
		return nil, err
	}
	doc := dto.toDomain()
	return &doc, nil
}

// Delete removes an archive document.
func (g *DocumentGateway) Delete(ctx context.Context, id string) error {
	return g.client.do(ctx, request{
		method: http.MethodDelete,
		path:   "/documents/" + url.PathEscape(id),
	}, nil)
}

// Download streams the stored file behind a file URL.
func (g *DocumentGateway) Download(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	return g.client.download(ctx, fileURL)
}

func uploadFields(upload driven.DocumentUpload) []multipartField {
	return []multipartField{
		{"sender", upload.Sender},
		{"subject", upload.Subject},
		{"letter_type", upload.LetterType.String()},
		{"file_name", upload.FileName},
	}
}
