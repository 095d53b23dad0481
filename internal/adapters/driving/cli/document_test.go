package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentListCmd_Executes(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "Documents (page 1, 1 total)")
	assert.Contains(t, output, "D1")
	assert.Contains(t, output, "Undangan rapat koordinasi")
	assert.Contains(t, output, "Dinas Pendidikan")
}

func TestDocumentListCmd_RejectsBadType(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "document", "list", "--type", "rahasia")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentGetCmd_ResolvesAcrossCollections(t *testing.T) {
	setupTestServices(t)

	// S1 lives in the staff collection; no hint is given.
	output, err := executeCommand(t, "document", "get", "S1")

	require.NoError(t, err)
	assert.Contains(t, output, "Source:   staff")
	assert.Contains(t, output, "Laporan bulanan")
	assert.Contains(t, output, "/dashboard/document-staff/S1")
	assert.Contains(t, output, "Siti Rahma")
}

func TestDocumentGetCmd_WrongHintStillResolves(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "document", "get", "D1", "--source", "staff")

	require.NoError(t, err)
	assert.Contains(t, output, "Source:   document")
	assert.Contains(t, output, "Undangan rapat koordinasi")
}

func TestDocumentGetCmd_UnknownID(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "document", "get", "D404")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentUploadCmd_Executes(t *testing.T) {
	setupTestServices(t)

	path := filepath.Join(t.TempDir(), "surat.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	output, err := executeCommand(t, "document", "upload",
		"--sender", "Dinas Kesehatan",
		"--subject", "Surat edaran vaksinasi",
		"--type", "masuk",
		"--file", path)

	require.NoError(t, err)
	assert.Contains(t, output, "Uploaded")
	assert.Contains(t, output, "Surat edaran vaksinasi")
}

func TestDocumentUploadCmd_RequiresFile(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "document", "upload",
		"--sender", "Dinas Kesehatan",
		"--subject", "Surat edaran",
		"--type", "masuk",
		"--file", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file is required")
}

func TestDocumentUploadCmd_StaffForbidden(t *testing.T) {
	env := setupTestServices(t)
	env.auth.session.Role = domain.RoleStaff

	path := filepath.Join(t.TempDir(), "surat.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	_, err := executeCommand(t, "document", "upload",
		"--sender", "Dinas Kesehatan",
		"--subject", "Surat edaran",
		"--type", "masuk",
		"--file", path)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDocumentDeleteCmd_Executes(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "document", "delete", "D1")

	require.NoError(t, err)
	assert.Contains(t, output, "Deleted D1")

	_, err = executeCommand(t, "document", "get", "D1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStaffListCmd_Executes(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "staff", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "Staff documents (page 1, 1 total)")
	assert.Contains(t, output, "Laporan bulanan")
}

func TestStaffGetCmd_Executes(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "staff", "get", "S1")

	require.NoError(t, err)
	assert.Contains(t, output, "Subject: Laporan bulanan")
	assert.Contains(t, output, "Owner:   Siti Rahma")
}
