// Package export writes view snapshots to disk as DOT files and hands them
// to an external viewer.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// CurrentName is the base name of the file that always mirrors the most
// recent export.
const CurrentName = "current"

const extension = ".dot"

// IOError reports a failed filesystem operation during export.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Exporter writes DOT documents into Dir.
type Exporter struct {
	Dir string
}

// Export writes data to <Dir>/<name>.dot and refreshes <Dir>/current.dot
// with the same content. The returned path is the named file.
func (e Exporter) Export(name string, data []byte) (string, error) {
	dir := e.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	path := filepath.Join(dir, FileName(name))
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	if path == e.CurrentPath() {
		return path, nil
	}
	if err := writeFile(e.CurrentPath(), data); err != nil {
		return "", err
	}
	return path, nil
}

// CurrentPath is the location of the most recent export.
func (e Exporter) CurrentPath() string {
	return filepath.Join(e.dir(), CurrentName+extension)
}

func (e Exporter) dir() string {
	if strings.TrimSpace(e.Dir) == "" {
		return "."
	}
	return e.Dir
}

// FileName turns a tab title into a file name. Path separators, spaces and
// other awkward characters become underscores.
func FileName(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), extension)
	clean := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '-', r == '.', r == '~', r == '+':
			return r
		default:
			return '_'
		}
	}, name)
	clean = strings.Trim(clean, ".")
	if clean == "" {
		clean = "graph"
	}
	return clean + extension
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dotview-*")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return &IOError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// IsIOError reports whether err carries an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
