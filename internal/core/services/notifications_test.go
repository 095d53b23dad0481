package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsipkita/arsip-cli/internal/adapters/driven/storage/memory"
	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
)

// countingNotifications counts the network calls the service makes.
type countingNotifications struct {
	*memory.NotificationGateway
	fetches   int
	markReads int
	markAlls  int
}

func (c *countingNotifications) Fetch(ctx context.Context) (*domain.NotificationSet, error) {
	c.fetches++
	return c.NotificationGateway.Fetch(ctx)
}

func (c *countingNotifications) MarkRead(ctx context.Context, id string) error {
	c.markReads++
	return c.NotificationGateway.MarkRead(ctx, id)
}

func (c *countingNotifications) MarkAllRead(ctx context.Context) (int, error) {
	c.markAlls++
	return c.NotificationGateway.MarkAllRead(ctx)
}

// failingNotifications rejects mutations but serves fetches.
type failingNotifications struct {
	*memory.NotificationGateway
	err error
}

func (f *failingNotifications) MarkRead(_ context.Context, _ string) error { return f.err }

func (f *failingNotifications) MarkAllRead(_ context.Context) (int, error) { return 0, f.err }

// staticFeed is a push feed backed by a plain channel.
type staticFeed struct {
	ch chan struct{}
}

func (f *staticFeed) Connect(_ context.Context, _ string) (<-chan struct{}, error) {
	return f.ch, nil
}

var _ driven.NotificationFeed = (*staticFeed)(nil)

func emptyResolver() *ResolverService {
	return NewResolverService(memory.NewDocumentGateway(), memory.NewStaffDocumentGateway())
}

func unread(id, link string) domain.Notification {
	return domain.Notification{ID: id, UserID: "U-staff", Message: "Disposisi baru", Link: link}
}

func TestNotifications_RefreshReplacesSet(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	gateway.Seed(unread("N1", "/documents/D1"), unread("N2", "/documents/D2"))
	svc := NewNotificationService(gateway, emptyResolver(), staffSession)

	svc.Refresh(context.Background())
	snap := svc.Snapshot()
	assert.Len(t, snap.Notifications, 2)
	assert.Equal(t, 2, snap.UnreadCount)
	assert.Equal(t, 1, gateway.fetches)
}

func TestNotifications_RefreshFailureKeepsState(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	gateway.Seed(unread("N1", "/documents/D1"))
	svc := NewNotificationService(gateway, emptyResolver(), staffSession)
	svc.Refresh(context.Background())

	// A fetch failure must leave the last good state in place.
	broken := &failingFetch{err: errors.New("gateway timeout")}
	svc.gateway = broken
	svc.Refresh(context.Background())

	snap := svc.Snapshot()
	assert.Len(t, snap.Notifications, 1)
	assert.Equal(t, 1, snap.UnreadCount)
}

type failingFetch struct {
	driven.NotificationGateway
	err error
}

func (f *failingFetch) Fetch(_ context.Context) (*domain.NotificationSet, error) {
	return nil, f.err
}

func TestNotifications_MarkRead(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	gateway.Seed(unread("N1", "/documents/D1"), unread("N2", "/documents/D2"))
	svc := NewNotificationService(gateway, emptyResolver(), staffSession)
	svc.Refresh(context.Background())

	require.NoError(t, svc.MarkRead(context.Background(), "N1"))
	snap := svc.Snapshot()
	assert.True(t, snap.Notifications[0].IsRead)
	assert.Equal(t, domain.ReadStateConfirmed, snap.Notifications[0].ReadState)
	assert.Equal(t, 1, snap.UnreadCount)
	assert.Equal(t, 1, gateway.markReads)

	// Already read: idempotent and free.
	require.NoError(t, svc.MarkRead(context.Background(), "N1"))
	assert.Equal(t, 1, gateway.markReads)
	assert.Equal(t, 1, svc.Snapshot().UnreadCount)

	assert.ErrorIs(t, svc.MarkRead(context.Background(), "nope"), domain.ErrNotFound)
}

func TestNotifications_MarkReadRollback(t *testing.T) {
	serverErr := errors.New("500 internal server error")
	gateway := &failingNotifications{NotificationGateway: memory.NewNotificationGateway(), err: serverErr}
	gateway.Seed(unread("N1", "/documents/D1"))
	svc := NewNotificationService(gateway, emptyResolver(), staffSession)
	svc.Refresh(context.Background())

	err := svc.MarkRead(context.Background(), "N1")
	assert.ErrorIs(t, err, serverErr)

	// The optimistic flip must have been undone.
	snap := svc.Snapshot()
	assert.False(t, snap.Notifications[0].IsRead)
	assert.Equal(t, domain.ReadStateFailed, snap.Notifications[0].ReadState)
	assert.Equal(t, 1, snap.UnreadCount)
}

func TestNotifications_MarkAllRead(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	read := unread("N0", "/documents/D0")
	read.IsRead = true
	gateway.Seed(read, unread("N1", "/documents/D1"), unread("N2", "/documents/D2"))
	svc := NewNotificationService(gateway, emptyResolver(), staffSession)
	svc.Refresh(context.Background())

	require.NoError(t, svc.MarkAllRead(context.Background()))
	snap := svc.Snapshot()
	assert.Equal(t, 0, snap.UnreadCount)
	for _, n := range snap.Notifications {
		assert.True(t, n.IsRead)
	}
	assert.Equal(t, 1, gateway.markAlls)

	// Everything read: no second network call.
	require.NoError(t, svc.MarkAllRead(context.Background()))
	assert.Equal(t, 1, gateway.markAlls)
}

func TestNotifications_MarkAllReadRollback(t *testing.T) {
	serverErr := errors.New("503 service unavailable")
	gateway := &failingNotifications{NotificationGateway: memory.NewNotificationGateway(), err: serverErr}
	gateway.Seed(unread("N1", "/documents/D1"), unread("N2", "/documents/D2"))
	svc := NewNotificationService(gateway, emptyResolver(), staffSession)
	svc.Refresh(context.Background())

	err := svc.MarkAllRead(context.Background())
	assert.ErrorIs(t, err, serverErr)

	snap := svc.Snapshot()
	assert.Equal(t, 2, snap.UnreadCount)
	for _, n := range snap.Notifications {
		assert.False(t, n.IsRead)
		assert.Equal(t, domain.ReadStateFailed, n.ReadState)
	}
}

func TestNotifications_PollLoop(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	gateway.Seed(unread("N1", "/documents/D1"))
	svc := NewNotificationService(gateway, emptyResolver(), staffSession,
		WithPollInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Start(ctx))
	defer svc.Stop()

	assert.Equal(t, 1, svc.Snapshot().UnreadCount, "first fetch is synchronous")

	// The next tick picks up server-side changes.
	gateway.Seed(unread("N1", "/documents/D1"), unread("N2", "/documents/D2"))
	require.Eventually(t, func() bool {
		return svc.Snapshot().UnreadCount == 2
	}, time.Second, 5*time.Millisecond)
}

func TestNotifications_FeedSignalTriggersRefresh(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	gateway.Seed(unread("N1", "/documents/D1"))
	feed := &staticFeed{ch: make(chan struct{})}
	svc := NewNotificationService(gateway, emptyResolver(), staffSession,
		WithPollInterval(time.Hour), WithFeed(feed))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Start(ctx))
	defer svc.Stop()

	// With an hour-long poll interval, only the push signal can cause
	// the second fetch.
	gateway.Seed(unread("N1", "/documents/D1"), unread("N2", "/documents/D2"))
	feed.ch <- struct{}{}
	require.Eventually(t, func() bool {
		return svc.Snapshot().UnreadCount == 2
	}, time.Second, 5*time.Millisecond)

	sawToast := false
	for done := false; !done; {
		select {
		case ev := <-svc.Events():
			if ev.Kind == driving.EventToast {
				sawToast = true
				done = true
			}
		case <-time.After(time.Second):
			done = true
		}
	}
	assert.True(t, sawToast)
}

func TestNotifications_FeedCloseKeepsPolling(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	feed := &staticFeed{ch: make(chan struct{})}
	svc := NewNotificationService(gateway, emptyResolver(), staffSession,
		WithPollInterval(10*time.Millisecond), WithFeed(feed))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Start(ctx))
	defer svc.Stop()

	close(feed.ch)

	// Polling must survive the dead feed.
	gateway.Seed(unread("N1", "/documents/D1"))
	require.Eventually(t, func() bool {
		return svc.Snapshot().UnreadCount == 1
	}, time.Second, 5*time.Millisecond)

	sawFeedDown := false
	for done := false; !done; {
		select {
		case ev := <-svc.Events():
			if ev.Kind == driving.EventFeedDown {
				sawFeedDown = true
				done = true
			}
		case <-time.After(time.Second):
			done = true
		}
	}
	assert.True(t, sawFeedDown)
}

// blockingGateway hands control of each fetch to the test, so response
// ordering can be inverted deliberately.
type blockingGateway struct {
	driven.NotificationGateway
	calls chan chan *domain.NotificationSet
}

func (g *blockingGateway) Fetch(_ context.Context) (*domain.NotificationSet, error) {
	reply := make(chan *domain.NotificationSet)
	g.calls <- reply
	return <-reply, nil
}

func TestNotifications_StaleResponseDiscarded(t *testing.T) {
	gateway := &blockingGateway{calls: make(chan chan *domain.NotificationSet, 2)}
	svc := NewNotificationService(gateway, emptyResolver(), staffSession)
	ctx := context.Background()

	go svc.Refresh(ctx)
	first := <-gateway.calls

	go svc.Refresh(ctx)
	second := <-gateway.calls

	// The newer fetch completes first.
	second <- &domain.NotificationSet{
		Notifications: []domain.Notification{unread("fresh", "/documents/D2")},
		UnreadCount:   1,
	}
	require.Eventually(t, func() bool {
		snap := svc.Snapshot()
		return len(snap.Notifications) == 1 && snap.Notifications[0].ID == "fresh"
	}, time.Second, 5*time.Millisecond)

	// The older response arrives late and must be dropped.
	first <- &domain.NotificationSet{
		Notifications: []domain.Notification{unread("stale", "/documents/D1")},
		UnreadCount:   1,
	}
	time.Sleep(50 * time.Millisecond)
	snap := svc.Snapshot()
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, "fresh", snap.Notifications[0].ID)
}

func TestNotifications_EmitAfterStopIsDiscarded(t *testing.T) {
	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	svc := NewNotificationService(gateway, emptyResolver(), staffSession,
		WithPollInterval(time.Hour))
	require.NoError(t, svc.Start(context.Background()))
	svc.Stop()

	// Stop has closed the event channel; a late emit from a straggling
	// refresh must be dropped, not sent.
	assert.NotPanics(t, func() {
		svc.emit(driving.NotificationEvent{Kind: driving.EventToast})
	})

	// Draining terminates only because the channel is closed and the
	// late event never entered it.
	for event := range svc.Events() {
		assert.NotEqual(t, driving.EventToast, event.Kind)
	}
}

func TestNotifications_Open(t *testing.T) {
	docs := memory.NewDocumentGateway()
	staff := memory.NewStaffDocumentGateway()
	staff.Seed(domain.StaffDocument{ID: "S7", Subject: "Laporan bulanan"})
	resolver := NewResolverService(docs, staff)

	gateway := &countingNotifications{NotificationGateway: memory.NewNotificationGateway()}
	// The link claims the admin collection; only staff has the document.
	gateway.Seed(unread("N1", "/documents/S7?source=document"))
	svc := NewNotificationService(gateway, resolver, staffSession)
	svc.Refresh(context.Background())

	result, err := svc.Open(context.Background(), "N1")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStaff, result.Document.Source)
	assert.Equal(t, "/dashboard/document-staff/S7", result.Path)
	assert.True(t, result.Notification.IsRead, "opening marks the notification read")
	assert.Equal(t, 1, gateway.markReads)

	_, err = svc.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
