package app

import (
	"errors"
	"fmt"

	"github.com/atomicstack/dotview/internal/dot"
	"github.com/atomicstack/dotview/internal/logging/events"
	"github.com/atomicstack/dotview/internal/ui"
	uistate "github.com/atomicstack/dotview/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// RootTitle names the tab holding the whole graph.
const RootTitle = "root"

// Config describes user-provided application options.
type Config struct {
	GraphPath  string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	ExportDir  string
	Viewer     string
}

// Run loads the graph and executes the Bubble Tea program.
func Run(cfg Config) (err error) {
	defer func() { events.App.Exit(err) }()
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// NewModel loads cfg.GraphPath and builds the UI model around it.
func NewModel(cfg Config) (*ui.Model, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("no graph file given")
	}
	g, err := dot.Load(cfg.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	events.Graph.Load(cfg.GraphPath, g.Len(), len(g.Edges()), len(g.Clusters()))
	root := uistate.NewView(RootTitle, g, dot.Serializer{})
	return ui.NewModel(root, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		ExportDir:  cfg.ExportDir,
		Viewer:     cfg.Viewer,
	}), nil
}
