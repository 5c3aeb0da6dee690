package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/dotview/internal/testutil"
)

func TestTreePopupOpensSubgraph(t *testing.T) {
	h := newTestHarness(t, testutil.Build)
	m := h.Model()
	h.Keys("s")
	if m.Mode() != ModePopup || m.popupKind != PopupTree {
		t.Fatalf("expected tree popup, got %s/%s", m.Mode(), m.popupKind)
	}
	h.Keys("j", "l", "l", "enter")
	if m.Mode() != ModeNavigate {
		t.Fatalf("expected navigate mode after opening, got %s", m.Mode())
	}
	if m.current().Title != "cluster_core" {
		t.Fatalf("expected nested cluster tab, got %q", m.current().Title)
	}
	if got := m.current().Graph().Len(); got != 2 {
		t.Fatalf("expected core and io, got %d nodes", got)
	}
}

func TestTreePopupCollapseAndToggle(t *testing.T) {
	h := newTestHarness(t, testutil.Build)
	m := h.Model()
	h.Keys("s", "down", "right")
	if rows := m.current().Tree().Rows(); len(rows) != 3 {
		t.Fatalf("expected expanded cluster, got %d rows", len(rows))
	}
	h.Keys("space")
	if rows := m.current().Tree().Rows(); len(rows) != 2 {
		t.Fatalf("expected toggle to fold, got %d rows", len(rows))
	}
	h.Keys("left", "up", "esc")
	if m.Mode() != ModeNavigate || m.Tabs().Len() != 1 {
		t.Fatalf("expected esc to close without opening a tab")
	}
}

func TestTreePopupWithoutClusters(t *testing.T) {
	h := newTestHarness(t, testutil.Diamond)
	m := h.Model()
	h.Keys("s")
	if !strings.Contains(h.View(), "(no subgraphs)") {
		t.Fatalf("expected empty tree notice, got:\n%s", h.View())
	}
	h.Keys("enter")
	if m.Mode() != ModePopup {
		t.Fatalf("expected popup to stay open on failure")
	}
	if !strings.Contains(m.Err(), "nothing selected") {
		t.Fatalf("expected nothing selected error, got %q", m.Err())
	}
	_, err := m.handleKey("x")
	var unbound *NoKeybindingError
	if !errors.As(err, &unbound) || unbound.Mode != ModePopup {
		t.Fatalf("expected popup NoKeybindingError, got %v", err)
	}
	h.Keys("q")
	if h.Quit() || m.Mode() != ModeNavigate {
		t.Fatalf("expected q to close the popup, not quit")
	}
}

func TestTreePopupShowsStats(t *testing.T) {
	h := newTestHarness(t, testutil.Build)
	h.Keys("s")
	view := h.View()
	for _, want := range []string{"subgraphs", "application", "libraries", "nodes", "edges"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in popup:\n%s", want, view)
		}
	}
}

func TestHelpPopupIgnoresOtherKeys(t *testing.T) {
	h := newTestHarness(t, testutil.Diamond)
	m := h.Model()
	h.Keys("?")
	if m.Mode() != ModePopup || m.popupKind != PopupHelp {
		t.Fatalf("expected help popup")
	}
	if !strings.Contains(h.View(), "Navigate") {
		t.Fatalf("expected rendered help, got:\n%s", h.View())
	}
	h.Keys("j", "x", "enter", "2")
	if m.Mode() != ModePopup || m.Err() != "" || m.Tabs().Len() != 1 {
		t.Fatalf("expected help popup to swallow keys, got %s/%q", m.Mode(), m.Err())
	}
	h.Keys("esc")
	if m.Mode() != ModeNavigate {
		t.Fatalf("expected esc to close help")
	}
	h.Keys("?", "ctrl+c")
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit from help")
	}
}

func TestCommandHelpOpensPopup(t *testing.T) {
	h := newTestHarness(t, testutil.Diamond)
	m := h.Model()
	h.Keys(":")
	h.Type("help")
	h.Keys("enter")
	if m.Mode() != ModePopup || m.popupKind != PopupHelp {
		t.Fatalf("expected help popup from command, got %s", m.Mode())
	}
}
