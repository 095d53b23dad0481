package domain

import "time"

// LetterType classifies a letter in the administrative collection.
type LetterType string

// Available letter types.
const (
	// LetterIncoming is a letter received by the organisation ("masuk").
	LetterIncoming LetterType = "masuk"

	// LetterOutgoing is a letter sent by the organisation ("keluar").
	LetterOutgoing LetterType = "keluar"
)

// IsValid returns true if the letter type is recognised.
func (t LetterType) IsValid() bool {
	return t == LetterIncoming || t == LetterOutgoing
}

// String returns the string representation.
func (t LetterType) String() string {
	return string(t)
}

// Document is a letter in the administrative archive collection.
// It is created by an admin and immutable except via explicit update.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Sender is the originating party named on the letter.
	Sender string

	// Subject is the letter subject line.
	Subject string

	// LetterType classifies the letter as incoming or outgoing.
	LetterType LetterType

	// FileName is the original name of the uploaded file.
	FileName string

	// FileURL is where the stored file can be downloaded from.
	FileURL string

	// ResourceType describes the stored file kind (e.g. "raw", "image").
	ResourceType string

	// OwnerID is a weak reference to the uploading user, display-only.
	OwnerID string

	// OwnerName is the display name of the uploading user, if known.
	OwnerName string

	// CreatedAt is when the document was archived.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// StaffDocument is a personal document in the staff collection.
// Structurally a subset of Document: it carries no sender or letter type.
// Deletable and editable only by its owner or an admin.
type StaffDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// Subject is the document subject line.
	Subject string

	// FileName is the original name of the uploaded file.
	FileName string

	// FileURL is where the stored file can be downloaded from.
	FileURL string

	// ResourceType describes the stored file kind.
	ResourceType string

	// OwnerID references the staff member who uploaded the document.
	OwnerID string

	// OwnerName is the display name of the owner, if known.
	OwnerName string

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// DocumentPage is one page of an archive listing.
type DocumentPage struct {
	// Documents are the entries on this page.
	Documents []Document

	// Total is the number of matching documents across all pages.
	Total int

	// Page is the 1-based page number.
	Page int
}

// StaffDocumentPage is one page of a staff collection listing.
type StaffDocumentPage struct {
	// Documents are the entries on this page.
	Documents []StaffDocument

	// Total is the number of matching documents across all pages.
	Total int

	// Page is the 1-based page number.
	Page int
}

// DocumentFilter narrows an archive listing.
type DocumentFilter struct {
	// Search matches against subject and sender. Empty means no filter.
	Search string

	// LetterType restricts to one letter type. Empty means both.
	LetterType LetterType

	// Page is the 1-based page to fetch. Zero means the first page.
	Page int
}
