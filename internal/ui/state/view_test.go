package state

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/dotview/internal/dot"
	"github.com/atomicstack/dotview/internal/graph"
	"github.com/atomicstack/dotview/internal/search"
	"github.com/atomicstack/dotview/internal/testutil"
)

func newTestView(t *testing.T, src string) *View {
	t.Helper()
	return NewView("root", testutil.LoadGraph(t, src), dot.Serializer{})
}

func matchIDs(v *View) []string {
	var ids []string
	for _, m := range v.Matches() {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestNewViewSelectsFirstInTopologicalOrder(t *testing.T) {
	v := newTestView(t, testutil.Diamond)
	id, ok := v.Selected()
	if !ok || id != "A" {
		t.Fatalf("expected A selected, got %q", id)
	}
	if got := v.List(FocusNexts).Items; !reflect.DeepEqual(got, []string{"B", "D"}) {
		t.Fatalf("unexpected nexts %v", got)
	}
	if v.List(FocusPrevs).Len() != 0 {
		t.Fatalf("expected no prevs for a root node")
	}
	if len(v.Matches()) != 4 {
		t.Fatalf("expected every node to match initially, got %d", len(v.Matches()))
	}
}

func TestGotoRecomputesAdjacency(t *testing.T) {
	v := newTestView(t, testutil.Diamond)
	if err := v.Goto("C"); err != nil {
		t.Fatalf("goto failed: %v", err)
	}
	if got := v.List(FocusPrevs).Items; !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("unexpected prevs %v", got)
	}
	if v.List(FocusNexts).Len() != 0 {
		t.Fatalf("expected no nexts for a sink")
	}

	err := v.Goto("Z")
	if !errors.Is(err, ErrNoSuchNode) || !errors.Is(err, graph.ErrUnknownNode) {
		t.Fatalf("expected ErrNoSuchNode wrapping ErrUnknownNode, got %v", err)
	}
	if id, _ := v.Selected(); id != "C" {
		t.Fatalf("expected selection unchanged after failure, got %q", id)
	}
}

func TestGoToAdjacent(t *testing.T) {
	v := newTestView(t, testutil.Diamond)
	if err := v.GoToAdjacent(FocusPrevs); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", err)
	}
	v.Move(FocusNexts, 1)
	if err := v.GoToAdjacent(FocusNexts); err != nil {
		t.Fatalf("goto adjacent failed: %v", err)
	}
	if id, _ := v.Selected(); id != "D" {
		t.Fatalf("expected D selected, got %q", id)
	}
}

func TestMoveCurrentRefreshesAdjacency(t *testing.T) {
	v := newTestView(t, testutil.Diamond)
	if !v.End(FocusCurrent) {
		t.Fatalf("expected movement to the last node")
	}
	id, _ := v.Selected()
	froms, _ := v.Graph().Froms(id)
	if !reflect.DeepEqual(v.List(FocusPrevs).Items, froms) {
		t.Fatalf("expected prevs of %s to be %v, got %v", id, froms, v.List(FocusPrevs).Items)
	}
	if !v.Home(FocusCurrent) {
		t.Fatalf("expected movement back to the first node")
	}
	if v.Page(FocusNexts, 1, 10) && v.List(FocusNexts).Cursor != 1 {
		t.Fatalf("expected page down to clamp to the last successor")
	}
}

func TestFuzzyMatchesKeepListOrderAndAutocomplete(t *testing.T) {
	v := newTestView(t, testutil.Greek)
	v.UpdateMatches(search.Fuzzy, "al")

	var want []string
	for _, id := range v.List(FocusCurrent).Items {
		if id == "alpha" || id == "alef" {
			want = append(want, id)
		}
	}
	if got := matchIDs(v); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected matches %v in list order, got %v", want, got)
	}
	if _, ok := v.Highlight("beta"); ok {
		t.Fatalf("expected beta excluded")
	}
	if h, ok := v.Highlight("alpha"); !ok || !reflect.DeepEqual(h, []int{0, 1}) {
		t.Fatalf("unexpected highlight %v", h)
	}
	got, ok := v.Autocomplete("al")
	if !ok || got != "al" {
		t.Fatalf("expected autocomplete to stop at the divergence, got %q/%v", got, ok)
	}
	got, ok = v.Autocomplete("alp")
	if !ok || got != "alpha" {
		t.Fatalf("expected alpha, got %q/%v", got, ok)
	}
	if _, ok := v.Autocomplete("be"); ok {
		t.Fatalf("expected trie to hold matches only")
	}
}

func TestRegexMatchesSerializedNodeText(t *testing.T) {
	v := newTestView(t, `digraph { a [shape=box]; b; a -> b; }`)
	v.UpdateMatches(search.Regex, `shape=box`)
	if got := matchIDs(v); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected only a, got %v", got)
	}
	v.UpdateMatches(search.Regex, `(`)
	if len(v.Matches()) != 0 {
		t.Fatalf("expected invalid pattern to match nothing")
	}
	if _, err := v.Filter(); !errors.Is(err, graph.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	v.ResetMatches()
	if len(v.Matches()) != 2 {
		t.Fatalf("expected reset to match everything")
	}
}

func TestMatchCursorCycles(t *testing.T) {
	v := newTestView(t, testutil.Greek)
	v.UpdateMatches(search.Fuzzy, "al")
	ids := matchIDs(v)
	if err := v.GoToMatch(); err != nil {
		t.Fatalf("goto match failed: %v", err)
	}
	if id, _ := v.Selected(); id != ids[0] {
		t.Fatalf("expected first match selected, got %q", id)
	}
	if err := v.NextMatch(); err != nil {
		t.Fatalf("next match failed: %v", err)
	}
	if id, _ := v.Selected(); id != ids[1] {
		t.Fatalf("expected second match selected, got %q", id)
	}
	v.NextMatch()
	if v.MatchIndex() != 0 {
		t.Fatalf("expected wrap to first match, got %d", v.MatchIndex())
	}
	v.PrevMatch()
	if v.MatchIndex() != 1 {
		t.Fatalf("expected wrap to last match, got %d", v.MatchIndex())
	}

	v.UpdateMatches(search.Fuzzy, "zzz")
	for _, step := range []func() error{v.GoToMatch, v.NextMatch, v.PrevMatch} {
		if err := step(); !errors.Is(err, ErrNothingSelected) {
			t.Fatalf("expected ErrNothingSelected, got %v", err)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	v := newTestView(t, testutil.Build)
	v.UpdateMatches(search.Fuzzy, "o")
	once, err := v.Filter()
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	once.UpdateMatches(search.Fuzzy, "o")
	twice, err := once.Filter()
	if err != nil {
		t.Fatalf("second filter failed: %v", err)
	}
	a, b := once.Graph().Nodes(), twice.Graph().Nodes()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical node sets, got %v and %v", a, b)
	}
	if once.Title != "fuzzy:o" {
		t.Fatalf("unexpected title %q", once.Title)
	}
}

func TestNeighborsView(t *testing.T) {
	v := newTestView(t, testutil.Diamond)
	nv, err := v.Neighbors(context.Background(), 1)
	if err != nil {
		t.Fatalf("neighbors failed: %v", err)
	}
	if nv.Title != "A~1" {
		t.Fatalf("unexpected title %q", nv.Title)
	}
	if id, _ := nv.Selected(); id != "A" {
		t.Fatalf("expected center selected, got %q", id)
	}
	if got := nv.Graph().Nodes(); !reflect.DeepEqual(got, []string{"A", "B", "D"}) {
		t.Fatalf("unexpected nodes %v", got)
	}
	if d, ok := nv.Vicinity("B"); !ok || d != 1 {
		t.Fatalf("expected B at +1, got %d/%v", d, ok)
	}
	if d, ok := nv.Vicinity("A"); !ok || d != 0 {
		t.Fatalf("expected center at 0, got %d/%v", d, ok)
	}
	if _, ok := v.Vicinity("B"); ok {
		t.Fatalf("expected plain views to carry no vicinity")
	}
	if v.Graph().Len() != 4 {
		t.Fatalf("expected parent view untouched")
	}
	data, err := nv.Serialize()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	if strings.Contains(string(data), "C") {
		t.Fatalf("expected C outside the neighborhood, got %s", data)
	}
}

func TestNeighborsOfIsolatedNode(t *testing.T) {
	v := newTestView(t, testutil.Build)
	if err := v.Goto("orphan"); err != nil {
		t.Fatalf("goto failed: %v", err)
	}
	if _, err := v.Neighbors(context.Background(), 3); !errors.Is(err, graph.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestSubgraphView(t *testing.T) {
	v := newTestView(t, testutil.Build)
	sv, err := v.Subgraph()
	if err != nil {
		t.Fatalf("subgraph failed: %v", err)
	}
	if sv.Title != "application" {
		t.Fatalf("unexpected title %q", sv.Title)
	}
	if got := sv.Graph().Nodes(); !reflect.DeepEqual(got, []string{"main", "cli"}) {
		t.Fatalf("unexpected nodes %v", got)
	}

	plain := newTestView(t, testutil.Diamond)
	if _, err := plain.Subgraph(); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", err)
	}
}
