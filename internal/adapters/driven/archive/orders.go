package archive

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure OrderGateway implements the interface.
var _ driven.OrderGateway = (*OrderGateway)(nil)

// OrderGateway wraps the disposition resource.
type OrderGateway struct {
	client *Client
}

// NewOrderGateway creates an order gateway over the shared client.
func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

// orderDTO is the backend's disposition shape.
type orderDTO struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"document_id"`
	DocumentSubject string    `json:"document_subject"`
	TargetUserID    string    `json:"target_user_id"`
	TargetUserName  string    `json:"target_user_name"`
	CreatedAt       time.Time `json:"created_at"`
}

func (d orderDTO) toDomain() domain.SuperiorOrder {
	return domain.SuperiorOrder{
		ID:              d.ID,
		DocumentID:      d.DocumentID,
		DocumentSubject: d.DocumentSubject,
		TargetUserID:    d.TargetUserID,
		TargetUserName:  d.TargetUserName,
		CreatedAt:       d.CreatedAt,
	}
}

// batchResultDTO is the server's per-target acknowledgment.
type batchResultDTO struct {
	Created []orderDTO `json:"created"`
	Failed  []string   `json:"failed"`
}

// CreateBatch creates one order per target user in a single request.
func (g *OrderGateway) CreateBatch(ctx context.Context, documentID string, userIDs []string) (*domain.OrderBatchResult, error) {
	payload := struct {
		DocumentID string   `json:"document_id"`
		UserIDs    []string `json:"user_ids"`
	}{DocumentID: documentID, UserIDs: userIDs}

	var dto batchResultDTO
	if err := g.client.doJSON(ctx, http.MethodPost, "/superior-orders", payload, &dto); err != nil {
		return nil, err
	}

	result := &domain.OrderBatchResult{
		Created: make([]domain.SuperiorOrder, 0, len(dto.Created)),
		Failed:  dto.Failed,
	}
	for _, d := range dto.Created {
		result.Created = append(result.Created, d.toDomain())
	}
	return result, nil
}

// List fetches all orders visible to the bearer token.
func (g *OrderGateway) List(ctx context.Context) ([]domain.SuperiorOrder, error) {
	var dto struct {
		Data []orderDTO `json:"data"`
	}
	err := g.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/superior-orders",
	}, &dto)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.SuperiorOrder, 0, len(dto.Data))
	for _, d := range dto.Data {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

// Delete removes one order.
func (g *OrderGateway) Delete(ctx context.Context, orderID string) error {
	return g.client.do(ctx, request{
		method: http.MethodDelete,
		path:   "/superior-orders/" + url.PathEscape(orderID),
	}, nil)
}
