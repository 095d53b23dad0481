package cli

import (
	"bytes"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/arsipkita/arsip-cli/internal/adapters/driven/storage/memory"
	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	svc "github.com/arsipkita/arsip-cli/internal/core/services"
)

// stubAuth implements driving.AuthService with a fixed session.
type stubAuth struct {
	session *domain.Session
	err     error

	loggedOut bool
}

func (a *stubAuth) Login(_ context.Context, _, _ string) (*domain.Session, error) {
	return a.session, a.err
}

func (a *stubAuth) Register(_ context.Context, _, _, _ string) (*domain.Session, error) {
	return a.session, a.err
}

func (a *stubAuth) Logout() error {
	a.loggedOut = true
	return a.err
}

func (a *stubAuth) Current() (*domain.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.session, nil
}

// stubConfig implements driven.ConfigStore in memory.
type stubConfig struct {
	values map[string]any
}

func newStubConfig() *stubConfig {
	return &stubConfig{values: make(map[string]any)}
}

func (c *stubConfig) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *stubConfig) GetString(key string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return ""
}

func (c *stubConfig) GetInt(key string) int {
	if v, ok := c.values[key].(int); ok {
		return v
	}
	return 0
}

func (c *stubConfig) GetBool(key string) bool {
	if v, ok := c.values[key].(bool); ok {
		return v
	}
	return false
}

func (c *stubConfig) Set(key string, value any) error {
	c.values[key] = value
	return nil
}

func (c *stubConfig) Delete(key string) error {
	delete(c.values, key)
	return nil
}

func (c *stubConfig) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// testEnv gives tests direct access to the wired gateways.
type testEnv struct {
	auth          *stubAuth
	config        *stubConfig
	documents     *memory.DocumentGateway
	staffDocs     *memory.StaffDocumentGateway
	orders        *memory.OrderGateway
	users         *memory.UserGateway
	notifications *memory.NotificationGateway
}

// setupTestServices wires memory-backed services into the command tree
// and restores the previous wiring when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		auth: &stubAuth{session: &domain.Session{
			UserID:   "U-admin",
			Name:     "Budi Santoso",
			Username: "budi",
			Role:     domain.RoleAdmin,
		}},
		config:        newStubConfig(),
		documents:     memory.NewDocumentGateway(),
		staffDocs:     memory.NewStaffDocumentGateway(),
		orders:        memory.NewOrderGateway(),
		users:         memory.NewUserGateway(),
		notifications: memory.NewNotificationGateway(),
	}

	env.documents.Seed(domain.Document{
		ID:         "D1",
		Sender:     "Dinas Pendidikan",
		Subject:    "Undangan rapat koordinasi",
		LetterType: domain.LetterIncoming,
		FileName:   "undangan.pdf",
		CreatedAt:  time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
	})
	env.staffDocs.Seed(domain.StaffDocument{
		ID:        "S1",
		Subject:   "Laporan bulanan",
		FileName:  "laporan.pdf",
		OwnerID:   "U-staff",
		OwnerName: "Siti Rahma",
	})
	env.users.Seed(domain.User{ID: "U-staff", Name: "Siti Rahma", Username: "siti", Role: domain.RoleStaff})

	resolver := svc.NewResolverService(env.documents, env.staffDocs)

	previous := services
	SetServices(&Services{
		Auth:     env.auth,
		Archive:  svc.NewArchiveService(env.documents, env.staffDocs, nil),
		Resolver: resolver,
		Orders:   svc.NewOrderService(env.orders, env.documents),
		Users:    svc.NewUserService(env.users),
		Notifications: func(session domain.Session) driving.NotificationCenter {
			return svc.NewNotificationService(env.notifications, resolver, session)
		},
		Config: env.config,
	})
	t.Cleanup(func() { services = previous })

	return env
}

// resetFlags restores every package-level flag to its default so one
// execution cannot leak values into the next.
func resetFlags() {
	verboseFlag = false

	documentListSearch = ""
	documentListType = ""
	documentListPage = 1
	documentListOffline = false
	documentGetSource = ""
	documentSender = ""
	documentSubject = ""
	documentType = ""
	documentFilePath = ""
	documentDownloadOut = ""
	documentDownloadSource = ""

	staffListSearch = ""
	staffListPage = 1
	staffListOffline = false
	staffSubject = ""
	staffFilePath = ""

	dispositionDocument = ""
	dispositionUsers = nil

	loginPassword = ""
	registerName = ""
	registerUsername = ""
	registerPassword = ""

	userName = ""
	userUsername = ""
	userPassword = ""
	userRole = "staff"
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
