package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/store"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent turns a store change into a single synchronous "entries
// changed" signal on the UI goroutine: the service reloads and publishes, and
// the calendar screen refreshes from its subscription.
func (m *Model) handleWatchEvent(ev store.Event) {
	m.logger.Debug("store changed", "type", ev.Type.String(), "date", ev.Date.String())
	if err := m.svc.Reload(m.ctx); err != nil {
		m.status = "ERR: reload " + err.Error()
		return
	}
	m.ensureVisible()
}
