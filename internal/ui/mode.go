package ui

import (
	"fmt"

	"github.com/atomicstack/dotview/internal/search"
)

// Mode selects which key table is active.
type Mode int

const (
	ModeNavigate Mode = iota
	ModeInput
	ModePopup
)

func (m Mode) String() string {
	switch m {
	case ModeNavigate:
		return "navigate"
	case ModeInput:
		return "input"
	case ModePopup:
		return "popup"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// InputKind says what the input buffer is being typed for.
type InputKind int

const (
	InputFuzzy InputKind = iota
	InputRegex
	InputCommand
)

func (k InputKind) String() string {
	switch k {
	case InputFuzzy:
		return "fuzzy"
	case InputRegex:
		return "regex"
	case InputCommand:
		return "command"
	default:
		return fmt.Sprintf("input(%d)", int(k))
	}
}

// searchKind maps a search input onto its matcher.
func (k InputKind) searchKind() (search.Kind, bool) {
	switch k {
	case InputFuzzy:
		return search.Fuzzy, true
	case InputRegex:
		return search.Regex, true
	default:
		return 0, false
	}
}

// PopupKind says which popup covers the columns.
type PopupKind int

const (
	PopupTree PopupKind = iota
	PopupHelp
)

func (k PopupKind) String() string {
	if k == PopupHelp {
		return "help"
	}
	return "tree"
}

// NoKeybindingError is reported for a key that the active mode does not
// bind.
type NoKeybindingError struct {
	Mode Mode
	Key  string
}

func (e *NoKeybindingError) Error() string {
	return fmt.Sprintf("no binding for %q in %s mode", e.Key, e.Mode)
}
