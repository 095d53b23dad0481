package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Query      string `json:"query,omitempty" jsonschema:"text matched against subject and sender"`
	LetterType string `json:"letter_type,omitempty" jsonschema:"restrict to one letter type, masuk or keluar"`
	Page       int    `json:"page,omitempty" jsonschema:"1-based page to fetch (default 1)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
}

// DocumentOutput represents one archive document.
type DocumentOutput struct {
	ID         string `json:"id"`
	Sender     string `json:"sender,omitempty"`
	Subject    string `json:"subject"`
	LetterType string `json:"letter_type,omitempty"`
	FileName   string `json:"file_name,omitempty"`
	Path       string `json:"path"`
}

// ResolveInput is the input schema for the resolve_document tool.
type ResolveInput struct {
	ID     string `json:"id" jsonschema:"the document id to locate"`
	Source string `json:"source,omitempty" jsonschema:"collection hint, document or staff; a wrong hint only costs one extra lookup"`
}

// ResolveOutput is the output schema for the resolve_document tool.
type ResolveOutput struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Subject  string `json:"subject"`
	FileName string `json:"file_name,omitempty"`
	Path     string `json:"path"`
}

// DispositionsOutput is the output schema for the list_dispositions tool.
type DispositionsOutput struct {
	Dispositions []DispositionOutput `json:"dispositions"`
	Count        int                 `json:"count"`
}

// DispositionOutput represents one disposition.
type DispositionOutput struct {
	ID              string `json:"id"`
	DocumentID      string `json:"document_id"`
	DocumentSubject string `json:"document_subject,omitempty"`
	TargetUserID    string `json:"target_user_id"`
	TargetUserName  string `json:"target_user_name,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search the administrative archive by subject, sender, and letter type",
	}, s.handleSearchDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_document",
		Description: "Locate a document id across the administrative and staff collections",
	}, s.handleResolveDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_dispositions",
		Description: "List dispositions visible to the signed-in user",
	}, s.handleListDispositions)
}

// handleSearchDocuments handles the search_documents tool invocation.
func (s *Server) handleSearchDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	filter := domain.DocumentFilter{
		Search: input.Query,
		Page:   input.Page,
	}
	if input.LetterType != "" {
		letterType := domain.LetterType(input.LetterType)
		if !letterType.IsValid() {
			return nil, SearchOutput{}, fmt.Errorf("%w: letter type %q", domain.ErrInvalidInput, input.LetterType)
		}
		filter.LetterType = letterType
	}

	page, err := s.ports.Archive.ListDocuments(ctx, filter)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Documents: make([]DocumentOutput, len(page.Documents)),
		Total:     page.Total,
		Page:      page.Page,
	}
	for i := range page.Documents {
		doc := &page.Documents[i]
		output.Documents[i] = DocumentOutput{
			ID:         doc.ID,
			Sender:     doc.Sender,
			Subject:    doc.Subject,
			LetterType: doc.LetterType.String(),
			FileName:   doc.FileName,
			Path:       "/dashboard/documents/" + doc.ID,
		}
	}

	return nil, output, nil
}

// handleResolveDocument handles the resolve_document tool invocation.
func (s *Server) handleResolveDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	var hint domain.DocumentSource
	if input.Source != "" {
		parsed, ok := domain.ParseDocumentSource(input.Source)
		if !ok {
			return nil, ResolveOutput{}, fmt.Errorf("%w: source %q", domain.ErrInvalidInput, input.Source)
		}
		hint = parsed
	}

	resolved, err := s.ports.Resolver.Resolve(ctx, input.ID, hint)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	return nil, ResolveOutput{
		ID:       resolved.ID(),
		Source:   resolved.Source.String(),
		Subject:  resolved.Subject(),
		FileName: resolved.FileName(),
		Path:     resolved.DetailPath(),
	}, nil
}

// handleListDispositions handles the list_dispositions tool invocation.
func (s *Server) handleListDispositions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, DispositionsOutput, error) {
	if s.ports.Orders == nil {
		return nil, DispositionsOutput{}, errors.New("disposition service not available")
	}

	orders, err := s.ports.Orders.List(ctx, s.ports.Viewer)
	if err != nil {
		return nil, DispositionsOutput{}, err
	}

	output := DispositionsOutput{
		Dispositions: make([]DispositionOutput, len(orders)),
		Count:        len(orders),
	}
	for i := range orders {
		output.Dispositions[i] = DispositionOutput{
			ID:              orders[i].ID,
			DocumentID:      orders[i].DocumentID,
			DocumentSubject: orders[i].DocumentSubject,
			TargetUserID:    orders[i].TargetUserID,
			TargetUserName:  orders[i].TargetUserName,
		}
	}

	return nil, output, nil
}
