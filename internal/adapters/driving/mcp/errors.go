// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the arsip client. It lets AI assistants browse the archive,
// resolve dual-source document references, and inspect dispositions.
package mcp

import "errors"

// ErrMissingArchiveService is returned when the archive service is not provided.
var ErrMissingArchiveService = errors.New("mcp: archive service is required")

// ErrMissingResolver is returned when the document resolver is not provided.
var ErrMissingResolver = errors.New("mcp: document resolver is required")
