package driven

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// OrderGateway wraps the disposition ("superior order") resource.
type OrderGateway interface {
	// CreateBatch creates one order per target user for a document in a
	// single request. The result carries the server's per-target
	// acknowledgment; partial failures are reported, not dropped.
	CreateBatch(ctx context.Context, documentID string, userIDs []string) (*domain.OrderBatchResult, error)

	// List fetches all orders visible to the bearer token. The server
	// may return an unfiltered set; callers must post-filter by viewer.
	List(ctx context.Context) ([]domain.SuperiorOrder, error)

	// Delete removes one order.
	// Returns domain.ErrNotFound when the order no longer exists.
	Delete(ctx context.Context, orderID string) error
}
