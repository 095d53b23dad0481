package driving

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// OrderService creates and queries dispositions with role-scoped
// visibility.
type OrderService interface {
	// Create issues one disposition per target user for an archive
	// document. The target set must be non-empty; an empty set fails
	// with domain.ErrInvalidInput before any network call.
	Create(ctx context.Context, viewer domain.Session, documentID string, userIDs []string) (*domain.OrderBatchResult, error)

	// List returns the dispositions the viewer may see: all of them
	// for admins, only the viewer's own assignments for staff. The
	// filter is applied client-side even when the server has already
	// filtered.
	List(ctx context.Context, viewer domain.Session) ([]domain.SuperiorOrder, error)

	// Delete cancels one disposition. Admin only. Deleting an id that
	// no longer exists reports domain.ErrNotFound, which callers may
	// treat as non-fatal.
	Delete(ctx context.Context, viewer domain.Session, orderID string) error
}
