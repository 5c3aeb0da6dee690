package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/dotview/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Action performs a side effect outside the key-handling path and reports
// its outcome as a message.
type Action func(ctx context.Context) tea.Msg

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Action
}

// Bus coordinates the execution of side-effecting actions such as exports,
// viewer launches and clipboard writes.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		if err := ctx.Err(); err != nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler(ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
