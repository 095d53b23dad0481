package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// For the resolver this is terminal: both collections were tried.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Raised client-side before any network call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the server rejected the bearer token.
	// Global policy: the session is cleared and the user must sign in
	// again, except during the login attempt itself.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the signed-in role may not perform the
	// operation (e.g. staff deleting a disposition).
	ErrForbidden = errors.New("forbidden")

	// ErrBadCredentials indicates a login attempt with a wrong
	// username or password.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrNoSession indicates no user is signed in.
	ErrNoSession = errors.New("not signed in")

	// ErrSessionExpired indicates the stored token is past its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrFeedClosed indicates the live notification feed was closed.
	// The feed is not reconnected; the poll loop bounds staleness.
	ErrFeedClosed = errors.New("notification feed closed")

	// ErrOfflineOnly indicates an operation needs the network but the
	// client is running with only the offline snapshot available.
	ErrOfflineOnly = errors.New("offline snapshot only")
)
