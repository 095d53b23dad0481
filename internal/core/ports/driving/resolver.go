package driving

import (
	"context"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// DocumentResolver locates a document id across the two collections.
type DocumentResolver interface {
	// Resolve determines which collection owns id and fetches it.
	// hint may name the collection the caller believes owns the
	// document; a wrong or missing hint costs at most one extra
	// network call. Returns domain.ErrNotFound only after both
	// collections definitively missed; transport and auth failures
	// propagate unchanged so the caller can tell "doesn't exist"
	// from "couldn't check".
	Resolve(ctx context.Context, id string, hint domain.DocumentSource) (domain.ResolvedDocument, error)

	// ResolveLink resolves a dashboard link such as
	// "/documents/D123?source=staff". The path names the id and the
	// query may carry an untrusted source hint.
	ResolveLink(ctx context.Context, link string) (domain.ResolvedDocument, error)
}
