package domain

// DocumentSource identifies which collection a resolved document came from.
type DocumentSource string

// Available document sources.
const (
	// SourceAdmin is the administrative archive collection.
	SourceAdmin DocumentSource = "document"

	// SourceStaff is the personal staff collection.
	SourceStaff DocumentSource = "staff"
)

// IsValid returns true if the source is recognised.
func (s DocumentSource) IsValid() bool {
	return s == SourceAdmin || s == SourceStaff
}

// String returns the string representation.
func (s DocumentSource) String() string {
	return string(s)
}

// ParseDocumentSource parses a source hint from a query value.
// Unknown or empty values yield ok=false, meaning "no usable hint".
func ParseDocumentSource(raw string) (DocumentSource, bool) {
	src := DocumentSource(raw)
	if !src.IsValid() {
		return "", false
	}
	return src, true
}

// ResolvedDocument is a tagged union over the two document collections.
// Exactly one of Admin or Staff is set, and Source always names the
// collection that actually returned the record, never the lookup hint.
type ResolvedDocument struct {
	// Source is the discriminant.
	Source DocumentSource

	// Admin is set when Source == SourceAdmin.
	Admin *Document

	// Staff is set when Source == SourceStaff.
	Staff *StaffDocument
}

// ResolvedFromAdmin wraps an administrative document.
func ResolvedFromAdmin(doc *Document) ResolvedDocument {
	return ResolvedDocument{Source: SourceAdmin, Admin: doc}
}

// ResolvedFromStaff wraps a staff document.
func ResolvedFromStaff(doc *StaffDocument) ResolvedDocument {
	return ResolvedDocument{Source: SourceStaff, Staff: doc}
}

// ID returns the identifier of the backing record.
func (r ResolvedDocument) ID() string {
	switch r.Source {
	case SourceAdmin:
		return r.Admin.ID
	case SourceStaff:
		return r.Staff.ID
	default:
		return ""
	}
}

// Subject returns the subject of the backing record.
func (r ResolvedDocument) Subject() string {
	switch r.Source {
	case SourceAdmin:
		return r.Admin.Subject
	case SourceStaff:
		return r.Staff.Subject
	default:
		return ""
	}
}

// FileName returns the stored file name of the backing record.
func (r ResolvedDocument) FileName() string {
	switch r.Source {
	case SourceAdmin:
		return r.Admin.FileName
	case SourceStaff:
		return r.Staff.FileName
	default:
		return ""
	}
}

// FileURL returns the download location of the backing record.
func (r ResolvedDocument) FileURL() string {
	switch r.Source {
	case SourceAdmin:
		return r.Admin.FileURL
	case SourceStaff:
		return r.Staff.FileURL
	default:
		return ""
	}
}

// DetailPath returns the dashboard route for viewing the document.
func (r ResolvedDocument) DetailPath() string {
	switch r.Source {
	case SourceAdmin:
		return "/dashboard/documents/" + r.Admin.ID
	case SourceStaff:
		return "/dashboard/document-staff/" + r.Staff.ID
	default:
		return "/dashboard"
	}
}
