package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/dotview/internal/export"
	"github.com/atomicstack/dotview/internal/logging/events"
	"github.com/atomicstack/dotview/internal/theme"
	"github.com/atomicstack/dotview/internal/ui/command"
	uistate "github.com/atomicstack/dotview/internal/ui/state"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const headerSeparator = " → "

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Width and Height pin the layout; zero follows the terminal.
	Width  int
	Height int

	ShowFooter bool
	Verbose    bool

	ExportDir string
	// Viewer is the external command that opens exported files.
	Viewer string

	// Clipboard overrides the system clipboard writer.
	Clipboard func(string) error
}

// Model implements the Bubble Tea model for the graph explorer.
type Model struct {
	tabs      *uistate.Tabs
	mode      Mode
	focus     uistate.Focus
	inputKind InputKind
	popupKind PopupKind
	input     uistate.Input

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	help      string
	helpWidth int

	handlers map[reflect.Type]msgHandler

	ctx       context.Context
	bus       *command.Bus
	exporter  export.Exporter
	launcher  export.Launcher
	clipboard func(string) error
}

// NewModel opens root as the first tab.
func NewModel(root *uistate.View, opts Options) *Model {
	exporter := export.Exporter{Dir: opts.ExportDir}
	m := &Model{
		tabs:       uistate.NewTabs(root),
		mode:       ModeNavigate,
		focus:      uistate.FocusCurrent,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		ctx:        context.Background(),
		bus:        command.New(),
		exporter:   exporter,
		launcher:   export.Launcher{Command: opts.Viewer, Exporter: exporter},
		clipboard:  opts.Clipboard,
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(actionResultMsg{}):   m.handleActionResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewports()
	return nil
}

// current returns the view of the selected tab.
func (m *Model) current() *uistate.View {
	return m.tabs.Current()
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	events.UI.Mode(m.mode.String(), mode.String())
	m.mode = mode
}

func (m *Model) setFocus(focus uistate.Focus) bool {
	if focus < uistate.FocusPrevs || focus > uistate.FocusNexts || focus == m.focus {
		return false
	}
	m.focus = focus
	events.UI.Focus(focus.String())
	return true
}

// Mode reports the active key table.
func (m *Model) Mode() Mode {
	return m.mode
}

// Focus reports the focused column.
func (m *Model) Focus() uistate.Focus {
	return m.focus
}

// Tabs exposes the tab stack.
func (m *Model) Tabs() *uistate.Tabs {
	return m.tabs
}

// InputText returns the input buffer.
func (m *Model) InputText() string {
	return m.input.Text
}

// Err returns the message shown in the status line.
func (m *Model) Err() string {
	return m.errMsg
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
