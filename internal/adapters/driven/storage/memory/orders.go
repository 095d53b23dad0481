package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure OrderGateway implements the interface.
var _ driven.OrderGateway = (*OrderGateway)(nil)

// OrderGateway is an in-memory implementation of driven.OrderGateway.
type OrderGateway struct {
	mu     sync.RWMutex
	orders map[string]domain.SuperiorOrder

	// RejectUsers simulates per-target failures in a batch create.
	RejectUsers map[string]bool
}

// NewOrderGateway creates an empty in-memory disposition resource.
func NewOrderGateway() *OrderGateway {
	return &OrderGateway{
		orders: make(map[string]domain.SuperiorOrder),
	}
}

// CreateBatch creates one order per target user in a single call.
func (g *OrderGateway) CreateBatch(_ context.Context, documentID string, userIDs []string) (*domain.OrderBatchResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	result := &domain.OrderBatchResult{}
	for _, userID := range userIDs {
		if g.RejectUsers[userID] {
			result.Failed = append(result.Failed, userID)
			continue
		}
		order := domain.SuperiorOrder{
			ID:           uuid.NewString(),
			DocumentID:   documentID,
			TargetUserID: userID,
			CreatedAt:    time.Now(),
		}
		g.orders[order.ID] = order
		result.Created = append(result.Created, order)
	}
	return result, nil
}

// List returns every order, unfiltered. Role scoping is the caller's
// job, which is exactly what the order service must not trust.
func (g *OrderGateway) List(_ context.Context) ([]domain.SuperiorOrder, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	orders := make([]domain.SuperiorOrder, 0, len(g.orders))
	for _, order := range g.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

// Delete removes one order.
func (g *OrderGateway) Delete(_ context.Context, orderID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.orders[orderID]; !ok {
		return domain.ErrNotFound
	}
	delete(g.orders, orderID)
	return nil
}
