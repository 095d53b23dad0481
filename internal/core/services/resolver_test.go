package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsipkita/arsip-cli/internal/adapters/driven/storage/memory"
	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// countingDocuments wraps a document gateway and counts Get calls.
type countingDocuments struct {
	driven.DocumentGateway
	gets int
}

func (c *countingDocuments) Get(ctx context.Context, id string) (*domain.Document, error) {
	c.gets++
	return c.DocumentGateway.Get(ctx, id)
}

// countingStaffDocs wraps a staff gateway and counts Get calls.
type countingStaffDocs struct {
	driven.StaffDocumentGateway
	gets int
}

func (c *countingStaffDocs) Get(ctx context.Context, id string) (*domain.StaffDocument, error) {
	c.gets++
	return c.StaffDocumentGateway.Get(ctx, id)
}

// failingDocuments simulates a transport failure on every Get.
type failingDocuments struct {
	driven.DocumentGateway
	err error
}

func (f *failingDocuments) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, f.err
}

func newResolverFixture(t *testing.T) (*countingDocuments, *countingStaffDocs, *ResolverService) {
	t.Helper()
	docs := &countingDocuments{DocumentGateway: memory.NewDocumentGateway()}
	staff := &countingStaffDocs{StaffDocumentGateway: memory.NewStaffDocumentGateway()}
	return docs, staff, NewResolverService(docs, staff)
}

func TestResolver_AdminDocumentNoHint(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)
	seedAdmin(docs, "D1")

	got, err := resolver.Resolve(context.Background(), "D1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAdmin, got.Source)
	assert.Equal(t, "D1", got.ID())
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 0, staff.gets)
}

func TestResolver_StaffDocumentNoHint(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)
	seedStaff(staff, "S1")

	got, err := resolver.Resolve(context.Background(), "S1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStaff, got.Source)
	// Untagged: the admin collection is tried first, then staff.
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 1, staff.gets)
}

func TestResolver_CorrectHintIsOneCall(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)
	seedStaff(staff, "S1")

	got, err := resolver.Resolve(context.Background(), "S1", domain.SourceStaff)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStaff, got.Source)
	assert.Equal(t, 0, docs.gets)
	assert.Equal(t, 1, staff.gets)

	seedAdmin(docs, "D1")
	got, err = resolver.Resolve(context.Background(), "D1", domain.SourceAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAdmin, got.Source)
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 1, staff.gets)
}

func TestResolver_WrongHintFallsBack(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)
	seedAdmin(docs, "D1")

	// Staff hint for an admin document: staff miss, admin hit.
	got, err := resolver.Resolve(context.Background(), "D1", domain.SourceStaff)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceAdmin, got.Source,
		"discriminant must reflect the collection that answered, not the hint")
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 1, staff.gets)
}

func TestResolver_WrongAdminHintFindsStaff(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)
	seedStaff(staff, "S1")

	got, err := resolver.Resolve(context.Background(), "S1", domain.SourceAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStaff, got.Source)
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 1, staff.gets)
}

func TestResolver_ExhaustionIsNotFound(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)

	_, err := resolver.Resolve(context.Background(), "missing", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 1, staff.gets)

	// With a staff hint both collections are still tried exactly once.
	docs.gets, staff.gets = 0, 0
	_, err = resolver.Resolve(context.Background(), "missing", domain.SourceStaff)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 1, staff.gets)
}

func TestResolver_TransportErrorPropagates(t *testing.T) {
	transportErr := errors.New("connection refused")
	docs := &failingDocuments{err: transportErr}
	staff := memory.NewStaffDocumentGateway()
	staff.Seed(domain.StaffDocument{ID: "S1"})
	resolver := NewResolverService(docs, staff)

	// The admin collection could not be checked: the resolver must not
	// report NotFound, even though staff would have answered.
	_, err := resolver.Resolve(context.Background(), "S1", "")
	assert.ErrorIs(t, err, transportErr)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestResolver_EmptyID(t *testing.T) {
	_, _, resolver := newResolverFixture(t)
	_, err := resolver.Resolve(context.Background(), "  ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolver_ResolveLink(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)
	seedStaff(staff, "D123")

	// Wrong hint in the link: exists only in the staff collection.
	got, err := resolver.ResolveLink(context.Background(), "/documents/D123?source=document")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStaff, got.Source)
	assert.Equal(t, "/dashboard/document-staff/D123", got.DetailPath())
	assert.Equal(t, 1, docs.gets)
	assert.Equal(t, 1, staff.gets)
}

func TestResolver_ResolveLinkStaffRoute(t *testing.T) {
	docs, staff, resolver := newResolverFixture(t)
	seedStaff(staff, "S9")

	// The path shape itself carries the hint.
	got, err := resolver.ResolveLink(context.Background(), "/dashboard/document-staff/S9")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStaff, got.Source)
	assert.Equal(t, 0, docs.gets)
	assert.Equal(t, 1, staff.gets)
}

func TestResolver_ResolveLinkNoDocument(t *testing.T) {
	_, _, resolver := newResolverFixture(t)
	_, err := resolver.ResolveLink(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func seedAdmin(docs *countingDocuments, id string) {
	docs.DocumentGateway.(*memory.DocumentGateway).Seed(domain.Document{ID: id, Subject: "subject " + id})
}

func seedStaff(staff *countingStaffDocs, id string) {
	staff.StaffDocumentGateway.(*memory.StaffDocumentGateway).Seed(domain.StaffDocument{ID: id, Subject: "subject " + id})
}
