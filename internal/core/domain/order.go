package domain

import "time"

// SuperiorOrder is a disposition: an admin assigning one archive document
// to one staff member. Selecting k targets for a document creates k
// independent orders sharing the document id. An order is either active
// or deleted; there is no intermediate acknowledged state.
type SuperiorOrder struct {
	// ID is the unique identifier for the order.
	ID string

	// DocumentID references a document in the administrative collection.
	// Staff documents are never dispositioned.
	DocumentID string

	// DocumentSubject is the subject of the referenced document, if the
	// server included it in the listing.
	DocumentSubject string

	// TargetUserID is the staff member the document is assigned to.
	TargetUserID string

	// TargetUserName is the display name of the target, if known.
	TargetUserName string

	// CreatedAt is when the order was issued.
	CreatedAt time.Time
}

// OrderBatchResult is the server's acknowledgment of a batch create.
// When the server reports partial failure, Failed carries the user ids
// that did not get an order, surfaced to the caller as one aggregated
// warning rather than silently dropped.
type OrderBatchResult struct {
	// Created are the orders the server acknowledged.
	Created []SuperiorOrder

	// Failed are target user ids the server rejected.
	Failed []string
}

// PartialFailure returns true if some targets were rejected.
func (r OrderBatchResult) PartialFailure() bool {
	return len(r.Failed) > 0 && len(r.Created) > 0
}
