// Package tui provides the interactive notification inbox built on
// Bubbletea. It renders the notification center's snapshot and applies
// read-state actions through the driving port.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arsipkita/arsip-cli/internal/adapters/driving/tui/keymap"
	"github.com/arsipkita/arsip-cli/internal/adapters/driving/tui/styles"
	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driving"
)

// centerEventMsg carries one event from the notification center's
// event stream into the Bubbletea loop.
type centerEventMsg struct {
	event driving.NotificationEvent
}

// eventsClosedMsg means the event stream ended, after Stop.
type eventsClosedMsg struct{}

// actionDoneMsg reports the outcome of a read-state action.
type actionDoneMsg struct {
	status string
	err    error
}

// Inbox is the notification inbox following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Inbox struct {
	// center is the driving port the inbox reads from and acts on.
	center driving.NotificationCenter

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the inbox keybindings.
	keys *keymap.KeyMap

	// set is the last snapshot received from the center.
	set domain.NotificationSet

	// selected is the index of the highlighted entry.
	selected int

	// scrollOffset is the first visible entry.
	scrollOffset int

	// toast is a transient status line, replaced on each event.
	toast string

	// feedDown reports that the live channel closed.
	feedDown bool

	// err holds the last action error.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the inbox has received its dimensions.
	ready bool
}

// Ensure Inbox implements tea.Model.
var _ tea.Model = (*Inbox)(nil)

// NewInbox creates an inbox over a started notification center.
func NewInbox(center driving.NotificationCenter) *Inbox {
	return &Inbox{
		center: center,
		styles: styles.DefaultStyles(),
		keys:   keymap.DefaultKeyMap(),
		set:    center.Snapshot(),
	}
}

// Init implements tea.Model.
func (m *Inbox) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("arsip - Notifications"),
		m.waitForEvent(),
	)
}

// waitForEvent returns a command that blocks on the center's event
// stream. Each delivered event re-arms the wait from Update.
func (m *Inbox) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.center.Events()
		if !ok {
			return eventsClosedMsg{}
		}
		return centerEventMsg{event: event}
	}
}

// Update implements tea.Model.
func (m *Inbox) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.adjustScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case centerEventMsg:
		return m.handleEvent(msg.event)

	case eventsClosedMsg:
		return m, tea.Quit

	case actionDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.toast = msg.status
		return m, nil
	}

	return m, nil
}

// handleEvent folds one notification center event into the model and
// re-arms the event wait.
func (m *Inbox) handleEvent(event driving.NotificationEvent) (tea.Model, tea.Cmd) {
	switch event.Kind {
	case driving.EventRefreshed:
		m.set = event.Set
		m.clampSelection()
	case driving.EventToast:
		m.toast = "New notification arrived"
	case driving.EventFeedDown:
		m.feedDown = true
	}
	return m, m.waitForEvent()
}

// handleKeyMsg handles key presses.
func (m *Inbox) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, m.keys.Quit):
		return m, tea.Quit

	case keymap.Matches(keyStr, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}

	case keymap.Matches(keyStr, m.keys.Down):
		if m.selected < len(m.set.Notifications)-1 {
			m.selected++
			m.adjustScroll()
		}

	case keymap.Matches(keyStr, m.keys.Open):
		if n, ok := m.current(); ok {
			return m, m.openNotification(n.ID)
		}

	case keymap.Matches(keyStr, m.keys.MarkRead):
		if n, ok := m.current(); ok {
			return m, m.markRead(n.ID)
		}

	case keymap.Matches(keyStr, m.keys.MarkAllRead):
		return m, m.markAllRead()

	case keymap.Matches(keyStr, m.keys.Refresh):
		return m, m.refresh()
	}

	return m, nil
}

// current returns the highlighted notification.
func (m *Inbox) current() (domain.Notification, bool) {
	if m.selected < 0 || m.selected >= len(m.set.Notifications) {
		return domain.Notification{}, false
	}
	return m.set.Notifications[m.selected], true
}

// openNotification returns a command that follows a notification link.
func (m *Inbox) openNotification(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.center.Open(context.Background(), id)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("Opened %s", result.Path)}
	}
}

// markRead returns a command that marks one notification read.
func (m *Inbox) markRead(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.center.MarkRead(context.Background(), id); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "Marked read"}
	}
}

// markAllRead returns a command that marks every notification read.
func (m *Inbox) markAllRead() tea.Cmd {
	return func() tea.Msg {
		if err := m.center.MarkAllRead(context.Background()); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "Marked all read"}
	}
}

// refresh returns a command that forces a fetch. The resulting state
// arrives through the event stream, not the command's message.
func (m *Inbox) refresh() tea.Cmd {
	return func() tea.Msg {
		m.center.Refresh(context.Background())
		return actionDoneMsg{status: "Refreshing"}
	}
}

// clampSelection keeps the highlight inside the current list.
func (m *Inbox) clampSelection() {
	if m.selected >= len(m.set.Notifications) {
		m.selected = len(m.set.Notifications) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.adjustScroll()
}

// adjustScroll keeps the selected entry visible.
func (m *Inbox) adjustScroll() {
	visible := m.visibleItemCount()
	if m.selected < m.scrollOffset {
		m.scrollOffset = m.selected
	} else if m.selected >= m.scrollOffset+visible {
		m.scrollOffset = m.selected - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// visibleItemCount returns how many entries fit on screen.
func (m *Inbox) visibleItemCount() int {
	// Reserve lines for title, banners, toast, help, and padding.
	reserved := 7
	available := m.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View implements tea.Model.
func (m *Inbox) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Notifications (%d unread)", m.set.UnreadCount)
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	if m.feedDown {
		b.WriteString(m.styles.Warning.Render("Live feed down, polling continues"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.set.Notifications) == 0 {
		b.WriteString(m.styles.Muted.Render("No notifications"))
		b.WriteString("\n")
	} else {
		m.renderList(&b)
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.toast != "" {
		b.WriteString(m.styles.Toast.Render(m.toast))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.helpLine()))
	b.WriteString("\n")

	return b.String()
}

// renderList renders the visible slice of the notification list.
func (m *Inbox) renderList(b *strings.Builder) {
	visible := m.visibleItemCount()
	end := m.scrollOffset + visible
	if end > len(m.set.Notifications) {
		end = len(m.set.Notifications)
	}

	for i := m.scrollOffset; i < end; i++ {
		n := m.set.Notifications[i]

		marker := "  "
		if !n.IsRead {
			marker = "● "
		}
		line := fmt.Sprintf("%s%s  %s", marker, n.CreatedAt.Format("02 Jan 15:04"), n.Message)
		if n.ReadState == domain.ReadStateFailed {
			line += " (mark-read failed)"
		}

		switch {
		case i == m.selected:
			b.WriteString(m.styles.Selected.Render(line))
		case !n.IsRead:
			b.WriteString(m.styles.Unread.Render(line))
		default:
			b.WriteString(m.styles.Muted.Render(line))
		}
		b.WriteString("\n")
	}
}

// helpLine renders the keybinding footer.
func (m *Inbox) helpLine() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " · ")
}
