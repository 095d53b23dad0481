package driven

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// ArchiveCache stores the most recent successful list fetches so the
// CLI can show a snapshot while offline. The cache is display-only:
// the resolver never reads it, and misses are never cached.
type ArchiveCache interface {
	// SaveDocuments replaces the cached archive snapshot.
	SaveDocuments(ctx context.Context, docs []domain.Document) error

	// LoadDocuments returns the cached archive snapshot.
	LoadDocuments(ctx context.Context) ([]domain.Document, error)

	// SaveStaffDocuments replaces the cached staff snapshot.
	SaveStaffDocuments(ctx context.Context, docs []domain.StaffDocument) error

	// LoadStaffDocuments returns the cached staff snapshot.
	LoadStaffDocuments(ctx context.Context) ([]domain.StaffDocument, error)

	// SaveNotifications replaces the cached notification snapshot.
	SaveNotifications(ctx context.Context, set *domain.NotificationSet) error

	// LoadNotifications returns the cached notification snapshot.
	LoadNotifications(ctx context.Context) (*domain.NotificationSet, error)

	// Close releases the underlying storage.
	Close() error
}
