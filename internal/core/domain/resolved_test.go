package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentSource(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   DocumentSource
		wantOK bool
	}{
		{name: "admin", raw: "document", want: SourceAdmin, wantOK: true},
		{name: "staff", raw: "staff", want: SourceStaff, wantOK: true},
		{name: "empty", raw: "", wantOK: false},
		{name: "unknown", raw: "archive", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDocumentSource(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolvedDocument_Admin(t *testing.T) {
	doc := &Document{
		ID:       "doc-1",
		Subject:  "Budget circular",
		FileName: "circular.pdf",
		FileURL:  "https://files.example/circular.pdf",
	}
	r := ResolvedFromAdmin(doc)

	assert.Equal(t, SourceAdmin, r.Source)
	assert.Equal(t, "doc-1", r.ID())
	assert.Equal(t, "Budget circular", r.Subject())
	assert.Equal(t, "circular.pdf", r.FileName())
	assert.Equal(t, "https://files.example/circular.pdf", r.FileURL())
	assert.Equal(t, "/dashboard/documents/doc-1", r.DetailPath())
	assert.Nil(t, r.Staff)
}

func TestResolvedDocument_Staff(t *testing.T) {
	doc := &StaffDocument{ID: "sd-1", Subject: "Leave request"}
	r := ResolvedFromStaff(doc)

	assert.Equal(t, SourceStaff, r.Source)
	assert.Equal(t, "sd-1", r.ID())
	assert.Equal(t, "Leave request", r.Subject())
	assert.Equal(t, "/dashboard/document-staff/sd-1", r.DetailPath())
	assert.Nil(t, r.Admin)
}

func TestLetterType_IsValid(t *testing.T) {
	assert.True(t, LetterIncoming.IsValid())
	assert.True(t, LetterOutgoing.IsValid())
	assert.False(t, LetterType("memo").IsValid())
}
