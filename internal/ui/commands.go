package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/dotview/internal/logging/events"
	"github.com/atomicstack/dotview/internal/ui/command"
	uistate "github.com/atomicstack/dotview/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// actionResultMsg reports the outcome of a side effect run through the bus.
type actionResultMsg struct {
	ID   string
	Info string
	Err  error
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResultMsg)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.fail(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}

// runCommand dispatches a parsed command line.
func (m *Model) runCommand(cmd command.Command) (tea.Cmd, error) {
	switch cmd.Name {
	case command.Filter:
		return nil, m.openFilter()
	case command.Neighbors:
		return nil, m.openNeighbors(cmd.Depth)
	case command.Subgraph:
		return nil, m.openSubgraph()
	case command.Export:
		return m.exportCmd(cmd.Arg), nil
	case command.Xdot:
		return m.launchCmd(), nil
	case command.Help:
		m.openPopup(PopupHelp)
		return nil, nil
	}
	return nil, fmt.Errorf("command %q is not wired", cmd.Name)
}

// exportCmd snapshots the current tab and writes it off the key path. An
// empty name exports under the tab title.
func (m *Model) exportCmd(name string) tea.Cmd {
	view := m.current()
	if name == "" {
		name = view.Title
	}
	data, err := view.Serialize()
	exporter := m.exporter
	return m.bus.Execute(m.ctx, command.Request{
		ID:    "export",
		Label: name,
		Handler: func(context.Context) tea.Msg {
			if err != nil {
				return actionResultMsg{ID: "export", Err: fmt.Errorf("serialize %s: %w", name, err)}
			}
			path, err := exporter.Export(name, data)
			if err != nil {
				return actionResultMsg{ID: "export", Err: err}
			}
			return actionResultMsg{ID: "export", Info: "Exported " + path}
		},
	})
}

func (m *Model) launchCmd() tea.Cmd {
	launcher := m.launcher
	return m.bus.Execute(m.ctx, command.Request{
		ID:    "xdot",
		Label: launcher.Command,
		Handler: func(context.Context) tea.Msg {
			if err := launcher.Launch(); err != nil {
				return actionResultMsg{ID: "xdot", Err: err}
			}
			return actionResultMsg{ID: "xdot", Info: "Opened " + launcher.Exporter.CurrentPath()}
		},
	})
}

func (m *Model) copyCmd() tea.Cmd {
	id, ok := m.current().List(m.focus).Selected()
	write := m.clipboard
	return m.bus.Execute(m.ctx, command.Request{
		ID:    "copy",
		Label: id,
		Handler: func(context.Context) tea.Msg {
			if !ok {
				return actionResultMsg{ID: "copy", Err: fmt.Errorf("copy: %w", uistate.ErrNothingSelected)}
			}
			if err := write(id); err != nil {
				return actionResultMsg{ID: "copy", Err: fmt.Errorf("clipboard: %w", err)}
			}
			return actionResultMsg{ID: "copy", Info: fmt.Sprintf("Copied %q", id)}
		},
	})
}
