package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/dotview/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestViewShowsColumns(t *testing.T) {
	h := newTestHarness(t, testutil.Diamond)
	view := h.View()
	for _, want := range []string{"1 root", "root → A", "predecessors (0)", "nodes (4)", "successors (2)", "(none)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewShowsVicinity(t *testing.T) {
	h := newTestHarness(t, testutil.Diamond)
	h.Keys("2")
	view := h.View()
	for _, want := range []string{"1 root", "2 A~2", "center A", "+1", "+2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewShowsMatchStatus(t *testing.T) {
	h := newTestHarness(t, testutil.Greek)
	h.Keys("/")
	h.Type("al")
	if view := h.View(); !strings.Contains(view, "match 1/2") {
		t.Fatalf("expected match status:\n%s", view)
	}
	h.Keys("down")
	if view := h.View(); !strings.Contains(view, "match 2/2") {
		t.Fatalf("expected second match:\n%s", view)
	}
	h.Type("zz")
	if view := h.View(); !strings.Contains(view, `No matches for "alzz"`) {
		t.Fatalf("expected empty match status:\n%s", view)
	}
}

func TestViewShowsErrors(t *testing.T) {
	h := newTestHarness(t, testutil.Diamond)
	h.Keys("z")
	if view := h.View(); !strings.Contains(view, `Error: no binding for "z" in navigate mode`) {
		t.Fatalf("expected error status:\n%s", view)
	}
	h.Keys("j")
	if view := h.View(); strings.Contains(view, "Error:") {
		t.Fatalf("expected the next key to clear the error:\n%s", view)
	}
}

func TestViewShowsPrompt(t *testing.T) {
	h := newTestHarness(t, testutil.Diamond)
	h.Keys(":")
	h.Type("nei")
	if view := h.View(); !strings.Contains(view, "nei") {
		t.Fatalf("expected the input buffer in the prompt:\n%s", view)
	}
}

func TestViewFitsFixedSize(t *testing.T) {
	m, _ := newTestModel(t, testutil.Build)
	m.width, m.height = 40, 12
	m.fixedWidth, m.fixedHeight = true, true
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.width != 40 || m.height != 12 {
		t.Fatalf("expected fixed size to win, got %dx%d", m.width, m.height)
	}
	lines := strings.Split(h.View(), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 rows, got %d:\n%s", len(lines), h.View())
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 40 {
			t.Fatalf("row %d is %d cells wide: %q", i, w, line)
		}
	}
}

func TestViewFollowsWindowSize(t *testing.T) {
	h := newTestHarness(t, testutil.Build)
	h.Send(tea.WindowSizeMsg{Width: 60, Height: 10})
	m := h.Model()
	if m.width != 60 || m.height != 10 {
		t.Fatalf("expected window size to apply, got %dx%d", m.width, m.height)
	}
	if got := len(strings.Split(h.View(), "\n")); got != 10 {
		t.Fatalf("expected 10 rows, got %d", got)
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdef", 10, "abcdef"},
		{"abcdef", 4, "abc…"},
		{"abcdef", 1, "a"},
		{"abcdef", 0, ""},
	}
	for _, tc := range cases {
		if got := truncateText(tc.in, tc.width); got != tc.want {
			t.Fatalf("truncateText(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
