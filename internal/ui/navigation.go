package ui

import (
	"errors"

	"github.com/atomicstack/dotview/internal/logging"
	"github.com/atomicstack/dotview/internal/logging/events"
	uistate "github.com/atomicstack/dotview/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.errMsg = ""
	if m.mode == ModeInput && m.handleTextInput(keyMsg) {
		return nil
	}
	cmd, err := m.handleKey(keyMsg.String())
	if err != nil {
		m.fail(err)
	}
	return cmd
}

func (m *Model) fail(err error) {
	var unbound *NoKeybindingError
	if errors.As(err, &unbound) {
		events.UI.Unbound(unbound.Mode.String(), unbound.Key)
	} else {
		logging.Error(err)
	}
	m.forceClearInfo()
	m.errMsg = err.Error()
}

// handleKey runs the binding of key for the active mode. Errors leave the
// mode, tabs and views as they were unless the binding says otherwise.
func (m *Model) handleKey(key string) (tea.Cmd, error) {
	switch m.mode {
	case ModeInput:
		return m.handleInputKey(key)
	case ModePopup:
		if m.popupKind == PopupHelp {
			return m.handleHelpKey(key)
		}
		return m.handleTreeKey(key)
	default:
		return m.handleNavigateKey(key)
	}
}

func (m *Model) handleNavigateKey(key string) (tea.Cmd, error) {
	view := m.current()
	switch key {
	case "q", "ctrl+c":
		return tea.Quit, nil
	case "j", "down":
		m.moveCursor(func() bool { return view.Move(m.focus, 1) })
	case "k", "up":
		m.moveCursor(func() bool { return view.Move(m.focus, -1) })
	case "h", "left":
		m.setFocus(m.focus - 1)
	case "l", "right":
		m.setFocus(m.focus + 1)
	case "g", "home":
		m.moveCursor(func() bool { return view.Home(m.focus) })
	case "G", "end":
		m.moveCursor(func() bool { return view.End(m.focus) })
	case "pgup":
		m.moveCursor(func() bool { return view.Page(m.focus, -1, m.maxVisibleItems()) })
	case "pgdown":
		m.moveCursor(func() bool { return view.Page(m.focus, 1, m.maxVisibleItems()) })
	case "enter":
		if m.focus == uistate.FocusCurrent {
			return nil, m.jump(view.GoToMatch)
		}
		return nil, m.jump(func() error { return view.GoToAdjacent(m.focus) })
	case "tab":
		m.tabs.Next()
		events.Tabs.Select(m.tabs.Index())
		m.syncViewports()
	case "shift+tab":
		m.tabs.Previous()
		events.Tabs.Select(m.tabs.Index())
		m.syncViewports()
	case "c":
		return nil, m.closeTab()
	case "e":
		return m.exportCmd(""), nil
	case "x":
		return m.launchCmd(), nil
	case "n":
		return nil, m.jump(view.NextMatch)
	case "N":
		return nil, m.jump(view.PrevMatch)
	case "/":
		m.startInput(InputFuzzy)
	case "r":
		m.startInput(InputRegex)
	case ":":
		m.startInput(InputCommand)
	case "s":
		m.openPopup(PopupTree)
	case "?":
		m.openPopup(PopupHelp)
	case "y":
		return m.copyCmd(), nil
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return nil, m.openNeighbors(int(key[0] - '0'))
	default:
		return nil, &NoKeybindingError{Mode: m.mode, Key: key}
	}
	return nil, nil
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		m.syncViewports()
	}
}

// jump runs a selection change on the current view and brings the new
// selection into the viewport.
func (m *Model) jump(goTo func() error) error {
	if err := goTo(); err != nil {
		return err
	}
	view := m.current()
	if id, ok := view.Selected(); ok {
		events.UI.Goto(view.Title, id)
		if matches := view.Matches(); len(matches) > 0 && matches[view.MatchIndex()].ID == id {
			events.Search.Jump(view.MatchIndex(), len(matches), id)
		}
	}
	m.syncViewports()
	return nil
}

func (m *Model) open(view *uistate.View, kind string) {
	m.tabs.Open(view)
	m.focus = uistate.FocusCurrent
	events.Graph.Derive(kind, view.Title, view.Graph().Len())
	events.Tabs.Open(view.Title, m.tabs.Index(), m.tabs.Len())
	m.syncViewports()
}

func (m *Model) closeTab() error {
	title := m.current().Title
	if err := m.tabs.Close(); err != nil {
		return err
	}
	events.Tabs.Close(title, m.tabs.Index(), m.tabs.Len())
	m.syncViewports()
	return nil
}

func (m *Model) openNeighbors(depth int) error {
	view, err := m.current().Neighbors(m.ctx, depth)
	if err != nil {
		return err
	}
	m.open(view, "neighbors")
	return nil
}

func (m *Model) openFilter() error {
	view, err := m.current().Filter()
	if err != nil {
		return err
	}
	m.open(view, "filter")
	return nil
}

func (m *Model) openSubgraph() error {
	view, err := m.current().Subgraph()
	if err != nil {
		return err
	}
	m.open(view, "subgraph")
	return nil
}

func (m *Model) syncViewports() {
	view := m.current()
	rows := m.maxVisibleItems()
	for _, focus := range []uistate.Focus{uistate.FocusPrevs, uistate.FocusCurrent, uistate.FocusNexts} {
		view.List(focus).EnsureCursorVisible(rows)
	}
}
