// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentGateway: Administrative archive collection over HTTP
//   - StaffDocumentGateway: Personal staff collection over HTTP
//   - OrderGateway: Disposition resource over HTTP
//   - NotificationGateway: Notification feed over HTTP
//   - AuthGateway: Login/registration endpoints
//   - TokenStore: Bearer token persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - NotificationFeed: Live push channel. Without it, the poll loop is
//     the only refresh trigger.
//   - ArchiveCache: Offline snapshot storage. Without it, offline
//     listing is unavailable.
//   - UserGateway: User directory administration.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
