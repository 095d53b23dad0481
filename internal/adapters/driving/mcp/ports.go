package mcp

import (
	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Archive browses the two document collections.
	Archive driving.ArchiveService

	// Resolver locates document ids across the two collections.
	Resolver driving.DocumentResolver

	// Orders queries dispositions.
	Orders driving.OrderService

	// Viewer is the signed-in session the server acts as. Disposition
	// visibility follows this session's role.
	Viewer domain.Session
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Archive == nil {
		return ErrMissingArchiveService
	}
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	// Orders is optional, the dispositions tool degrades without it.
	return nil
}
