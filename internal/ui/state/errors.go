package state

import (
	"errors"
	"fmt"

	"github.com/atomicstack/dotview/internal/graph"
)

var (
	// ErrNoSuchNode is returned when a view is asked to select an identifier
	// that is not in its current list.
	ErrNoSuchNode = fmt.Errorf("no such node in view: %w", graph.ErrUnknownNode)

	// ErrNothingSelected is returned when an operation needs a selection in
	// a list that is empty.
	ErrNothingSelected = errors.New("nothing selected")

	// ErrCannotCloseRoot is returned when closing the first tab.
	ErrCannotCloseRoot = errors.New("cannot close the root tab")
)
