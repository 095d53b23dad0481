package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// stubTokens is a TokenStore with a fixed token.
type stubTokens struct {
	token string
}

func (s *stubTokens) Save(token string) error { s.token = token; return nil }
func (s *stubTokens) Load() (string, error)   { return s.token, nil }
func (s *stubTokens) Clear() error            { s.token = ""; return nil }

func newTestClient(t *testing.T, handler http.Handler, token string, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, &stubTokens{token: token}, opts...)
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(documentDTO{ID: "D1"})
	})
	client := newTestClient(t, handler, "token-abc")

	_, err := NewDocumentGateway(client).Get(context.Background(), "D1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(tokenResponse{Token: "t"})
	})
	client := newTestClient(t, handler, "")

	_, err := NewAuthGateway(client).Login(context.Background(), "siti", "rahasia1")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_NotFoundMapping(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "document not found"})
	})
	client := newTestClient(t, handler, "token")

	_, err := NewDocumentGateway(client).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "document not found", apiErr.Message)
}

func TestClient_UnauthorizedFiresHook(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	hookFired := false
	client := newTestClient(t, handler, "stale-token", WithUnauthorizedHook(func() {
		hookFired = true
	}))

	_, err := NewDocumentGateway(client).Get(context.Background(), "D1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, hookFired)
}

func TestClient_LoginUnauthorizedIsBadCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	})
	hookFired := false
	client := newTestClient(t, handler, "", WithUnauthorizedHook(func() {
		hookFired = true
	}))

	_, err := NewAuthGateway(client).Login(context.Background(), "siti", "salah")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, hookFired, "a failed login is not a session expiry")
}

func TestClient_RateLimited(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRetryAfter, "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	limiter := NewRateLimiter()
	client := newTestClient(t, handler, "token", WithRateLimiter(limiter))

	_, err := NewDocumentGateway(client).Get(context.Background(), "D1")
	assert.True(t, IsRateLimited(err))

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), rateErr.RetryAt, 2*time.Second)
	assert.WithinDuration(t, rateErr.RetryAt, limiter.RetryAt(), time.Second)
}

func TestDocuments_ListQuery(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents", r.URL.Path)
		assert.Equal(t, "undangan", r.URL.Query().Get("search"))
		assert.Equal(t, "masuk", r.URL.Query().Get("letter_type"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(documentPageDTO{
			Data:  []documentDTO{{ID: "D1", Subject: "Undangan rapat", LetterType: "masuk"}},
			Total: 11,
			Page:  2,
		})
	})
	client := newTestClient(t, handler, "token")

	page, err := NewDocumentGateway(client).List(context.Background(), domain.DocumentFilter{
		Search: "undangan", LetterType: domain.LetterIncoming, Page: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Documents, 1)
	assert.Equal(t, domain.LetterIncoming, page.Documents[0].LetterType)
}

func TestDocuments_CreateMultipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Dinas Pendidikan", r.FormValue("sender"))
		assert.Equal(t, "masuk", r.FormValue("letter_type"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "undangan.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(content))

		json.NewEncoder(w).Encode(documentDTO{ID: "D1", Subject: r.FormValue("subject")})
	})
	client := newTestClient(t, handler, "token")

	doc, err := NewDocumentGateway(client).Create(context.Background(), driven.DocumentUpload{
		Sender:     "Dinas Pendidikan",
		Subject:    "Undangan rapat",
		LetterType: domain.LetterIncoming,
		FileName:   "undangan.pdf",
		File:       strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Undangan rapat", doc.Subject)
}

func TestNotifications_FetchNormalizesLinks(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"notifications": []notificationDTO{
				{ID: "N1", Message: "Disposisi baru", Link: "documents/D1"},
			},
			"unread_count": 1,
		})
	})
	client := newTestClient(t, handler, "token")

	set, err := NewNotificationGateway(client).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Notifications, 1)
	assert.Equal(t, "/dashboard/documents/D1", set.Notifications[0].Link)
	assert.Equal(t, 1, set.UnreadCount)
}

func TestNotifications_MarkReadWire(t *testing.T) {
	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, handler, "token")

	require.NoError(t, NewNotificationGateway(client).MarkRead(context.Background(), "N1"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/notifications/N1/read", gotPath)
}

func TestNotifications_MarkAllReadWire(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"updated_count": 3})
	})
	client := newTestClient(t, handler, "token")

	updated, err := NewNotificationGateway(client).MarkAllRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/notifications/read-all", gotPath)
	assert.Equal(t, 3, updated)
}

func TestStaffDocuments_GetWire(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(staffDocumentDTO{ID: "S1", Subject: "Laporan bulanan"})
	})
	client := newTestClient(t, handler, "token")

	doc, err := NewStaffDocumentGateway(client).Get(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, "/document_staff/S1", gotPath)
	assert.Equal(t, "Laporan bulanan", doc.Subject)
}

func TestOrders_CreateBatch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			DocumentID string   `json:"document_id"`
			UserIDs    []string `json:"user_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "D1", payload.DocumentID)
		assert.Len(t, payload.UserIDs, 2)

		json.NewEncoder(w).Encode(batchResultDTO{
			Created: []orderDTO{{ID: "O1", DocumentID: "D1", TargetUserID: "U1"}},
			Failed:  []string{"U2"},
		})
	})
	client := newTestClient(t, handler, "token")

	result, err := NewOrderGateway(client).CreateBatch(context.Background(), "D1", []string{"U1", "U2"})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Equal(t, []string{"U2"}, result.Failed)
	assert.True(t, result.PartialFailure())
}

func TestDocuments_Download(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/undangan.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4"))
	})
	client := newTestClient(t, mux, "token")

	body, err := NewDocumentGateway(client).Download(context.Background(), "/files/undangan.pdf")
	require.NoError(t, err)
	defer body.Close()
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	_, err = NewDocumentGateway(client).Download(context.Background(), "/files/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
