package ui

import (
	"github.com/almonk/arbor/selection"
	"github.com/almonk/arbor/watcher"
	tea "github.com/charmbracelet/bubbletea"
)

type selectionMsg selection.Event

type documentChangedMsg struct{}

type watchErrorMsg struct{ err error }

func waitForSelection(ch <-chan selection.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return selectionMsg(ev)
	}
}

// waitForDocument blocks until the watcher reports a change or an error.
// It is re-issued after every message it produces.
func waitForDocument(w *watcher.Watcher, errs <-chan error) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Changed():
			return documentChangedMsg{}
		case err := <-errs:
			return watchErrorMsg{err: err}
		}
	}
}
