// Package ui contains the Bubble Tea program that explores a DOT graph.
// The Model type focuses on message orchestration, while dedicated helpers
// own key bindings, text input, popups, side effects and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry so each tea.Msg is handled by
//     a focused function.
//   - Key presses go through handleKey, a function of the active mode
//     (Navigate, Input or Popup), the focused column and the key name.
//     Text editing keys in Input mode are consumed first by
//     handleTextInput (internal/ui/input.go).
//   - Exports, viewer launches and clipboard writes run as tea.Cmd values
//     through the command bus (internal/ui/command) and report back as
//     actionResultMsg.
//
// State ownership:
//   - Tabs, views, column lists, matches and the cluster tree live in
//     internal/ui/state. The model only holds mode, focus, the input buffer
//     and transient status messages.
//   - Every error from a binding is shown in the status line; the model
//     never panics on user input.
package ui
