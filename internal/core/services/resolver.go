package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.DocumentResolver = (*ResolverService)(nil)

// ResolverService locates a document id across the administrative and
// staff collections. Resolution is purely network-backed: misses are
// never cached, so a lookup racing a concurrent creation can succeed
// on the next attempt.
type ResolverService struct {
	documents driven.DocumentGateway
	staffDocs driven.StaffDocumentGateway
}

// NewResolverService creates a resolver over the two collections.
func NewResolverService(documents driven.DocumentGateway, staffDocs driven.StaffDocumentGateway) *ResolverService {
	return &ResolverService{
		documents: documents,
		staffDocs: staffDocs,
	}
}

// Resolve determines which collection owns id and fetches it.
//
// Priority order, short-circuiting on the first hit:
//  1. staff hint: try the staff collection; a miss falls through
//     because the hint may be stale or plain wrong.
//  2. the administrative collection.
//  3. the staff collection, unless step 1 already tried it.
//
// A correct hint costs one network call, anything else at most two.
func (s *ResolverService) Resolve(ctx context.Context, id string, hint domain.DocumentSource) (domain.ResolvedDocument, error) {
	if strings.TrimSpace(id) == "" {
		return domain.ResolvedDocument{}, fmt.Errorf("resolve: %w", domain.ErrInvalidInput)
	}

	triedStaff := false
	if hint == domain.SourceStaff {
		doc, err := s.staffDocs.Get(ctx, id)
		switch {
		case err == nil:
			return domain.ResolvedFromStaff(doc), nil
		case errors.Is(err, domain.ErrNotFound):
			logger.Debug("resolver: staff hint missed for %s, falling back", id)
			triedStaff = true
		default:
			return domain.ResolvedDocument{}, err
		}
	}

	doc, err := s.documents.Get(ctx, id)
	switch {
	case err == nil:
		return domain.ResolvedFromAdmin(doc), nil
	case errors.Is(err, domain.ErrNotFound):
		// Fall through to the staff collection.
	default:
		return domain.ResolvedDocument{}, err
	}

	if triedStaff {
		return domain.ResolvedDocument{}, fmt.Errorf("resolve %s: %w", id, domain.ErrNotFound)
	}

	staffDoc, err := s.staffDocs.Get(ctx, id)
	switch {
	case err == nil:
		return domain.ResolvedFromStaff(staffDoc), nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.ResolvedDocument{}, fmt.Errorf("resolve %s: %w", id, domain.ErrNotFound)
	default:
		return domain.ResolvedDocument{}, err
	}
}

// ResolveLink resolves a dashboard link such as
// "/documents/D123?source=staff". The trailing path segment names the
// id; the query may carry a source hint, which is treated as untrusted.
func (s *ResolverService) ResolveLink(ctx context.Context, link string) (domain.ResolvedDocument, error) {
	id, hint, err := parseDocumentLink(link)
	if err != nil {
		return domain.ResolvedDocument{}, err
	}
	return s.Resolve(ctx, id, hint)
}

// parseDocumentLink extracts the document id and optional source hint
// from a notification link.
func parseDocumentLink(link string) (string, domain.DocumentSource, error) {
	u, err := url.Parse(domain.NormalizeLink(link))
	if err != nil {
		return "", "", fmt.Errorf("parse link %q: %w", link, domain.ErrInvalidInput)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" || id == "dashboard" {
		return "", "", fmt.Errorf("link %q names no document: %w", link, domain.ErrInvalidInput)
	}

	// An invalid or absent hint degrades to the untagged lookup order.
	hint, ok := domain.ParseDocumentSource(u.Query().Get("source"))
	if !ok {
		// The path itself can disambiguate staff routes.
		if len(segments) >= 2 && segments[len(segments)-2] == "document-staff" {
			hint = domain.SourceStaff
		}
	}

	return id, hint, nil
}
