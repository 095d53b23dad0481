package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// Ensure OrderServiceImpl implements the interface.
var _ driving.OrderService = (*OrderServiceImpl)(nil)

// validate checks request structs before any network call is made.
var validate = validator.New()

// createOrderRequest is validated before the batch create is sent.
type createOrderRequest struct {
	DocumentID string   `validate:"required"`
	UserIDs    []string `validate:"required,min=1,dive,required"`
}

// OrderServiceImpl creates and queries dispositions with role-scoped
// visibility enforced client-side.
type OrderServiceImpl struct {
	orders    driven.OrderGateway
	documents driven.DocumentGateway
}

// NewOrderService creates an order service. documents may be nil, in
// which case the admin-collection membership check before create is
// skipped and left to the server.
func NewOrderService(orders driven.OrderGateway, documents driven.DocumentGateway) *OrderServiceImpl {
	return &OrderServiceImpl{
		orders:    orders,
		documents: documents,
	}
}

// Create issues one disposition per target user for an archive document.
func (s *OrderServiceImpl) Create(
	ctx context.Context, viewer domain.Session, documentID string, userIDs []string,
) (*domain.OrderBatchResult, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("create disposition: %w", domain.ErrForbidden)
	}

	req := createOrderRequest{DocumentID: documentID, UserIDs: userIDs}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("create disposition: %w: %v", domain.ErrInvalidInput, err)
	}

	// Dispositions only ever target the administrative collection.
	// Checking membership here turns a confusing server error into a
	// plain not-found before the batch is sent.
	if s.documents != nil {
		if _, err := s.documents.Get(ctx, documentID); err != nil {
			return nil, fmt.Errorf("disposition target %s: %w", documentID, err)
		}
	}

	result, err := s.orders.CreateBatch(ctx, documentID, userIDs)
	if err != nil {
		return nil, err
	}

	if result.PartialFailure() {
		logger.Warn("disposition batch for %s: %d of %d targets failed",
			documentID, len(result.Failed), len(userIDs))
	}

	return result, nil
}

// List returns the dispositions the viewer may see. The server's
// response is always post-filtered by viewer identity, even when the
// backend claims to have filtered already.
func (s *OrderServiceImpl) List(ctx context.Context, viewer domain.Session) ([]domain.SuperiorOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	if viewer.IsAdmin() {
		return orders, nil
	}

	visible := make([]domain.SuperiorOrder, 0, len(orders))
	for _, order := range orders {
		if order.TargetUserID == viewer.UserID {
			visible = append(visible, order)
		}
	}
	return visible, nil
}

// Delete cancels one disposition. Admin only.
func (s *OrderServiceImpl) Delete(ctx context.Context, viewer domain.Session, orderID string) error {
	if !viewer.IsAdmin() {
		return fmt.Errorf("delete disposition: %w", domain.ErrForbidden)
	}
	if orderID == "" {
		return fmt.Errorf("delete disposition: %w", domain.ErrInvalidInput)
	}
	return s.orders.Delete(ctx, orderID)
}
