package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
)

func TestDispositionCmd_Use(t *testing.T) {
	assert.Equal(t, "disposition", dispositionCmd.Use)
}

func TestDispositionCreateCmd_Executes(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "disposition", "create",
		"--document", "D1", "--user", "U-staff", "--user", "U2")

	require.NoError(t, err)
	assert.Contains(t, output, "Created 2 disposition(s)")
}

func TestDispositionCreateCmd_EmptyTargets(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "disposition", "create", "--document", "D1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDispositionCreateCmd_UnknownDocument(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "disposition", "create",
		"--document", "D404", "--user", "U-staff")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDispositionCreateCmd_StaffForbidden(t *testing.T) {
	env := setupTestServices(t)
	env.auth.session.Role = domain.RoleStaff

	_, err := executeCommand(t, "disposition", "create",
		"--document", "D1", "--user", "U2")

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDispositionListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "disposition", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "No dispositions")
}

func TestDispositionListCmd_ShowsCreated(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "disposition", "create",
		"--document", "D1", "--user", "U-staff")
	require.NoError(t, err)

	output, err := executeCommand(t, "disposition", "list")

	require.NoError(t, err)
	// The memory gateway does not denormalize subject or target name,
	// so the listing must fall back to the raw ids.
	assert.Contains(t, output, "D1")
	assert.Contains(t, output, "U-staff")
}

func TestDispositionDeleteCmd_UnknownID(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "disposition", "delete", "O404")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
