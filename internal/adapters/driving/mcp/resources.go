package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for arsip resources.
	uriScheme = "arsip://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the administrative archive.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "First page of the administrative archive",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Static resource for the staff collection.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document-staff",
		Name:        "document-staff",
		Description: "First page of the staff document collection",
		MIMEType:    "application/json",
	}, s.handleStaffDocumentsResource)

	// Template for one document, resolved across both collections.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "One document located across the administrative and staff collections",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleDocumentsResource returns the first archive page.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	page, err := s.ports.Archive.ListDocuments(ctx, domain.DocumentFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]DocumentOutput, len(page.Documents))
	for i := range page.Documents {
		doc := &page.Documents[i]
		infos[i] = DocumentOutput{
			ID:         doc.ID,
			Sender:     doc.Sender,
			Subject:    doc.Subject,
			LetterType: doc.LetterType.String(),
			FileName:   doc.FileName,
			Path:       "/dashboard/documents/" + doc.ID,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleStaffDocumentsResource returns the first staff page.
func (s *Server) handleStaffDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	page, err := s.ports.Archive.ListStaffDocuments(ctx, "", 1)
	if err != nil {
		return nil, fmt.Errorf("listing staff documents: %w", err)
	}

	type staffInfo struct {
		ID       string `json:"id"`
		Subject  string `json:"subject"`
		FileName string `json:"file_name,omitempty"`
		Owner    string `json:"owner,omitempty"`
		Path     string `json:"path"`
	}

	infos := make([]staffInfo, len(page.Documents))
	for i := range page.Documents {
		doc := &page.Documents[i]
		infos[i] = staffInfo{
			ID:       doc.ID,
			Subject:  doc.Subject,
			FileName: doc.FileName,
			Owner:    doc.OwnerName,
			Path:     "/dashboard/document-staff/" + doc.ID,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleDocumentResource resolves one document id.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	resolved, err := s.ports.Resolver.Resolve(ctx, docID, "")
	if err != nil {
		return nil, fmt.Errorf("resolving document: %w", err)
	}

	return jsonResource(req.Params.URI, ResolveOutput{
		ID:       resolved.ID(),
		Source:   resolved.Source.String(),
		Subject:  resolved.Subject(),
		FileName: resolved.FileName(),
		Path:     resolved.DetailPath(),
	})
}

// jsonResource wraps a value as a JSON resource result.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like arsip://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
