package export

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atomicstack/dotview/internal/logging"
)

// ErrNoExport is returned when the viewer is asked to open an export that
// has not been written yet.
var ErrNoExport = errors.New("nothing exported yet")

// LaunchError reports a viewer process that could not be started.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %q: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Launcher opens the current export in an external viewer.
type Launcher struct {
	// Command is split on whitespace; the export path is appended as the
	// final argument.
	Command  string
	Exporter Exporter
}

// Launch starts the viewer without waiting for it. The child is reaped in
// the background and a non-zero exit is written to the log.
func (l Launcher) Launch() error {
	path := l.Exporter.CurrentPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoExport
		}
		return &IOError{Op: "stat", Path: path, Err: err}
	}
	fields := strings.Fields(l.Command)
	if len(fields) == 0 {
		return &LaunchError{Command: l.Command, Err: errors.New("no viewer configured")}
	}
	args := append(fields[1:len(fields):len(fields)], path)
	cmd := exec.Command(fields[0], args...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return &LaunchError{Command: l.Command, Err: err}
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Error(fmt.Errorf("viewer %q exited: %w", l.Command, err))
		}
	}()
	return nil
}
