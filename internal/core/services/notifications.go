package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// DefaultPollInterval bounds notification staleness when the live feed
// is down or absent.
const DefaultPollInterval = 60 * time.Second

// eventBuffer is the size of the UI event channel. Slow UIs drop
// events rather than block the loop.
const eventBuffer = 16

// Ensure NotificationService implements the interface.
var _ driving.NotificationCenter = (*NotificationService)(nil)

// NotificationService keeps one user's notification set current.
//
// Refresh model: an immediate fetch on Start, a fixed-interval ticker
// for the lifetime of the session, and an eager re-fetch whenever the
// live feed signals. Fetches are full replacements and idempotent, so
// overlapping refreshes converge without merge logic; a generation
// counter discards responses that arrive after a newer fetch started.
type NotificationService struct {
	gateway  driven.NotificationGateway
	feed     driven.NotificationFeed
	resolver driving.DocumentResolver
	cache    driven.ArchiveCache
	session  domain.Session
	interval time.Duration

	mu  sync.Mutex
	set domain.NotificationSet
	gen uint64

	events  chan driving.NotificationEvent
	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

// NotificationOption configures the service.
type NotificationOption func(*NotificationService)

// WithPollInterval overrides the poll interval.
func WithPollInterval(d time.Duration) NotificationOption {
	return func(s *NotificationService) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithFeed attaches a live push feed. Without one the poll timer is
// the only refresh trigger.
func WithFeed(feed driven.NotificationFeed) NotificationOption {
	return func(s *NotificationService) {
		s.feed = feed
	}
}

// WithNotificationCache writes successful fetches through to the
// offline snapshot cache.
func WithNotificationCache(cache driven.ArchiveCache) NotificationOption {
	return func(s *NotificationService) {
		s.cache = cache
	}
}

// NewNotificationService creates a notification center for one session.
func NewNotificationService(
	gateway driven.NotificationGateway,
	resolver driving.DocumentResolver,
	session domain.Session,
	opts ...NotificationOption,
) *NotificationService {
	s := &NotificationService{
		gateway:  gateway,
		resolver: resolver,
		session:  session,
		interval: DefaultPollInterval,
		events:   make(chan driving.NotificationEvent, eventBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the refresh loop. The first fetch happens synchronously
// so callers see populated state; the ticker and feed listener then run
// until Stop or ctx cancellation.
func (s *NotificationService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.Refresh(ctx)

	var signals <-chan struct{}
	if s.feed != nil {
		var err error
		signals, err = s.feed.Connect(ctx, s.session.UserID)
		if err != nil {
			// The poll loop still bounds staleness; a dead feed is
			// logged, not fatal.
			logger.Warn("notification feed unavailable: %v", err)
			signals = nil
		}
	}

	s.wg.Add(1)
	go s.run(ctx, signals)
	return nil
}

// Stop cancels the poll timer, closes the live channel and the event
// stream.
func (s *NotificationService) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	close(s.events)
}

// run is the refresh loop.
func (s *NotificationService) run(ctx context.Context, signals <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Refresh(ctx)
		case _, ok := <-signals:
			if !ok {
				// Feed closed. No reconnect: polling is the
				// durability guarantee.
				logger.Warn("notification feed closed, polling continues")
				s.emit(driving.NotificationEvent{Kind: driving.EventFeedDown})
				signals = nil
				continue
			}
			s.emit(driving.NotificationEvent{Kind: driving.EventToast})
			s.Refresh(ctx)
		}
	}
}

// Refresh performs one fetch. Failures are swallowed into a log line:
// the notification bell fails soft and the next tick tries again.
func (s *NotificationService) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	set, err := s.gateway.Fetch(ctx)
	if err != nil {
		logger.Warn("notification fetch failed: %v", err)
		return
	}

	s.mu.Lock()
	if gen != s.gen {
		// A newer fetch started while this one was in flight.
		s.mu.Unlock()
		return
	}
	s.set = *set
	snapshot := s.set
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SaveNotifications(ctx, set); err != nil {
			logger.Debug("notification cache write failed: %v", err)
		}
	}

	s.emit(driving.NotificationEvent{Kind: driving.EventRefreshed, Set: snapshot})
}

// Snapshot returns the current notification state.
func (s *NotificationService) Snapshot() domain.NotificationSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.set
	out.Notifications = make([]domain.Notification, len(s.set.Notifications))
	copy(out.Notifications, s.set.Notifications)
	return out
}

// Events exposes the event stream for UIs.
func (s *NotificationService) Events() <-chan driving.NotificationEvent {
	return s.events
}

// MarkRead marks one notification read. The local flip is optimistic
// (pending) and rolled back if the server rejects the mutation, so
// local state never silently diverges in the read direction.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	if s.set.Notifications[idx].IsRead {
		// Idempotent: already read, nothing to send.
		s.mu.Unlock()
		return nil
	}

	s.set.Notifications[idx].IsRead = true
	s.set.Notifications[idx].ReadState = domain.ReadStatePending
	if s.set.UnreadCount > 0 {
		s.set.UnreadCount--
	}
	s.mu.Unlock()

	err := s.gateway.MarkRead(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	// The slice may have been replaced by a concurrent refresh; find
	// the entry again before reconciling.
	idx = s.indexOf(id)
	if idx < 0 {
		return err
	}

	if err != nil {
		s.set.Notifications[idx].IsRead = false
		s.set.Notifications[idx].ReadState = domain.ReadStateFailed
		s.set.UnreadCount++
		return err
	}

	s.set.Notifications[idx].ReadState = domain.ReadStateConfirmed
	return nil
}

// MarkAllRead marks every unread notification read. When nothing is
// unread this is a pure no-op with zero network calls.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	if s.set.UnreadCount == 0 {
		s.mu.Unlock()
		return nil
	}

	// Optimistic bulk flip, remembered for rollback.
	flipped := make([]int, 0, s.set.UnreadCount)
	for i := range s.set.Notifications {
		if !s.set.Notifications[i].IsRead {
			s.set.Notifications[i].IsRead = true
			s.set.Notifications[i].ReadState = domain.ReadStatePending
			flipped = append(flipped, i)
		}
	}
	prevUnread := s.set.UnreadCount
	s.set.UnreadCount = 0
	s.mu.Unlock()

	updated, err := s.gateway.MarkAllRead(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		for _, i := range flipped {
			if i < len(s.set.Notifications) {
				s.set.Notifications[i].IsRead = false
				s.set.Notifications[i].ReadState = domain.ReadStateFailed
			}
		}
		s.set.UnreadCount = prevUnread
		return err
	}

	for _, i := range flipped {
		if i < len(s.set.Notifications) {
			s.set.Notifications[i].ReadState = domain.ReadStateConfirmed
		}
	}
	logger.Debug("mark all read: server updated %d notifications", updated)
	return nil
}

// Open marks a notification read (when unread) and resolves its link
// through the document resolver, since the link itself carries no
// reliable source tag.
func (s *NotificationService) Open(ctx context.Context, id string) (*driving.OpenResult, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	notification := s.set.Notifications[idx]
	s.mu.Unlock()

	if !notification.IsRead {
		if err := s.MarkRead(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			// A failed mark-read should not block navigation.
			logger.Warn("mark read on open failed: %v", err)
		}
	}

	doc, err := s.resolver.ResolveLink(ctx, notification.Link)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if idx = s.indexOf(id); idx >= 0 {
		notification = s.set.Notifications[idx]
	}
	s.mu.Unlock()

	return &driving.OpenResult{
		Notification: notification,
		Document:     doc,
		Path:         doc.DetailPath(),
	}, nil
}

// indexOf returns the position of id in the current set, or -1.
// Caller must hold mu.
func (s *NotificationService) indexOf(id string) int {
	for i := range s.set.Notifications {
		if s.set.Notifications[i].ID == id {
			return i
		}
	}
	return -1
}

// emit delivers an event without blocking the loop. The lock is held
// across the send: Stop flips started under the same lock before it
// closes the channel, so a concurrent Stop can never close events
// between the check and the send.
func (s *NotificationService) emit(event driving.NotificationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}

	select {
	case s.events <- event:
	default:
		logger.Debug("notification event dropped: slow consumer")
	}
}
