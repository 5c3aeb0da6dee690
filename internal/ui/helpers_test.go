package ui

import (
	"testing"

	"github.com/atomicstack/dotview/internal/dot"
	"github.com/atomicstack/dotview/internal/testutil"
	uistate "github.com/atomicstack/dotview/internal/ui/state"
)

type clipboardStub struct {
	copied []string
	err    error
}

func (c *clipboardStub) write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

func newTestModel(t *testing.T, src string) (*Model, *clipboardStub) {
	t.Helper()
	return newTestModelWith(t, src, false)
}

// newVerboseTestModel reports action successes on the info line.
func newVerboseTestModel(t *testing.T, src string) (*Model, *clipboardStub) {
	t.Helper()
	return newTestModelWith(t, src, true)
}

func newTestModelWith(t *testing.T, src string, verbose bool) (*Model, *clipboardStub) {
	t.Helper()
	clip := &clipboardStub{}
	root := uistate.NewView("root", testutil.LoadGraph(t, src), dot.Serializer{})
	m := NewModel(root, Options{
		ExportDir: t.TempDir(),
		Viewer:    "true",
		Verbose:   verbose,
		Clipboard: clip.write,
	})
	return m, clip
}

func newTestHarness(t *testing.T, src string) *Harness {
	t.Helper()
	m, _ := newTestModel(t, src)
	return NewHarness(m)
}

func selected(t *testing.T, m *Model) string {
	t.Helper()
	id, ok := m.current().Selected()
	if !ok {
		t.Fatalf("expected a selection in tab %q", m.current().Title)
	}
	return id
}
