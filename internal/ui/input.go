package ui

import (
	"unicode"

	"github.com/atomicstack/dotview/internal/logging/events"
	"github.com/atomicstack/dotview/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.input.Pos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) startInput(kind InputKind) {
	m.inputKind = kind
	before := m.input.Pos()
	m.input.Clear()
	m.noteFilterCursorChange(before)
	m.setMode(ModeInput)
	m.refreshSearch()
}

// handleTextInput owns the editing keys of the input buffer. Every
// recognised key is consumed, even when it changes nothing, so it never
// falls through to the mode bindings.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	before := m.input.Pos()
	changed := false
	edited := false
	switch msg.String() {
	case "ctrl+u":
		edited = m.input.Clear()
		if edited {
			events.Input.Cleared(m.inputKind.String())
		}
	case "ctrl+w":
		edited = m.input.DeleteWordBackward()
	case "ctrl+a":
		changed = m.input.MoveStart()
	case "ctrl+e":
		changed = m.input.MoveEnd()
	case "alt+b":
		changed = m.input.MoveWordBackward()
	case "alt+f":
		changed = m.input.MoveWordForward()
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			edited = m.input.DeleteBackward()
		case tea.KeyLeft:
			changed = m.input.MoveBackward()
		case tea.KeyRight:
			changed = m.input.MoveForward()
		case tea.KeySpace:
			edited = m.input.Insert(" ")
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return false
			}
			for _, r := range msg.Runes {
				if unicode.IsControl(r) {
					return false
				}
			}
			edited = m.input.Insert(string(msg.Runes))
		default:
			return false
		}
	}
	m.noteFilterCursorChange(before)
	if edited {
		m.forceClearInfo()
		events.Input.Edit(m.inputKind.String(), m.input.Text, m.input.Pos())
		m.refreshSearch()
	} else if changed {
		events.Input.Edit(m.inputKind.String(), m.input.Text, m.input.Pos())
	}
	return true
}

// refreshSearch re-evaluates the search query against the current view.
// Command input leaves the matches alone.
func (m *Model) refreshSearch() {
	kind, ok := m.inputKind.searchKind()
	if !ok {
		return
	}
	view := m.current()
	view.UpdateMatches(kind, m.input.Text)
	events.Search.Update(kind.String(), m.input.Text, len(view.Matches()))
}

func (m *Model) handleInputKey(key string) (tea.Cmd, error) {
	_, searching := m.inputKind.searchKind()
	switch key {
	case "ctrl+c":
		return tea.Quit, nil
	case "esc":
		m.leaveInput()
		return nil, nil
	case "enter":
		return m.submitInput()
	case "tab":
		m.autocomplete()
		return nil, nil
	case "up":
		if searching {
			return nil, m.jump(m.current().PrevMatch)
		}
	case "down":
		if searching {
			return nil, m.jump(m.current().NextMatch)
		}
	}
	return nil, &NoKeybindingError{Mode: m.mode, Key: key}
}

func (m *Model) leaveInput() {
	before := m.input.Pos()
	if m.input.Clear() {
		events.Input.Cleared(m.inputKind.String())
	}
	m.noteFilterCursorChange(before)
	m.refreshSearch()
	m.setMode(ModeNavigate)
}

// submitInput always returns to Navigate, except for the help command,
// which opens its popup. Failures are reported after the mode change.
func (m *Model) submitInput() (tea.Cmd, error) {
	text := m.input.Text
	before := m.input.Pos()
	m.input.Clear()
	m.noteFilterCursorChange(before)
	m.setMode(ModeNavigate)

	if _, searching := m.inputKind.searchKind(); searching {
		return nil, m.jump(m.current().GoToMatch)
	}
	cmd, err := command.Parse(text)
	if err != nil {
		return nil, err
	}
	return m.runCommand(cmd)
}

func (m *Model) autocomplete() {
	before := m.input.Text
	var (
		completed string
		ok        bool
	)
	if m.inputKind == InputCommand {
		completed, ok = command.Autocomplete(before)
	} else {
		completed, ok = m.current().Autocomplete(before)
	}
	if !ok || completed == before {
		return
	}
	pos := m.input.Pos()
	m.input.SetEnd(completed)
	m.noteFilterCursorChange(pos)
	events.Input.Autocomplete(m.inputKind.String(), before, completed)
	m.refreshSearch()
}

func (m *Model) promptLabel() string {
	switch m.inputKind {
	case InputRegex:
		return "regex» "
	case InputCommand:
		return ":"
	default:
		return "/"
	}
}

func (m *Model) promptPlaceholder() string {
	switch m.inputKind {
	case InputRegex:
		return "(pattern over node text)"
	case InputCommand:
		return "(filter, neighbors [depth], subgraph, export [name], xdot, help)"
	default:
		return "(type to search)"
	}
}

// filterPrompt renders the input line with its cursor. Outside Input mode
// it shows the last query so the highlights stay explained.
func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if m.mode != ModeInput {
		q := m.current().Query()
		if q.Key == "" {
			return ""
		}
		return render(styles.FilterPlaceholder, q.Kind.String()+": "+q.Key)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := render(styles.FilterPrompt, m.promptLabel())
	text := m.input.Text
	if text == "" {
		runes := []rune(m.promptPlaceholder())
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[:1]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := min(max(m.input.Pos(), 0), len(runes))
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
