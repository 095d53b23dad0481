// Package domain defines the core business entities for the arsip client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A letter in the administrative archive collection
//   - StaffDocument: A personal document uploaded by a staff member
//   - ResolvedDocument: A tagged union of the two collections
//   - SuperiorOrder: A disposition assigning a document to a staff member
//   - Notification: An inbox entry delivered to a signed-in user
//   - Session: The identity extracted from the bearer token
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
