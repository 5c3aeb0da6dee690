package state

import (
	"context"
	"fmt"

	"github.com/atomicstack/dotview/internal/graph"
	"github.com/atomicstack/dotview/internal/search"
)

// Focus names the column that receives cursor movement.
type Focus int

const (
	FocusPrevs Focus = iota
	FocusCurrent
	FocusNexts
)

func (f Focus) String() string {
	switch f {
	case FocusPrevs:
		return "prevs"
	case FocusCurrent:
		return "current"
	case FocusNexts:
		return "nexts"
	default:
		return "unknown"
	}
}

// View is one navigable window onto a graph: the topologically ordered
// current list, the predecessors and successors of its selection, the
// match list of the last query and the prefix index over those matches.
type View struct {
	Title string

	graph      *graph.Graph
	serializer graph.Serializer

	current *List
	prevs   *List
	nexts   *List

	query      search.Query
	matches    []search.Match
	highlights map[string][]int
	matchIdx   int
	trie       *search.Trie

	tree *Tree

	center   string
	vicinity map[string]int
}

// NewView derives a view over g. Every derived structure is rebuilt from
// g; nothing is shared with the view g came from.
func NewView(title string, g *graph.Graph, s graph.Serializer) *View {
	v := &View{
		Title:      title,
		graph:      g,
		serializer: s,
		current:    NewList(g.TopologicalOrder()),
		prevs:      NewList(nil),
		nexts:      NewList(nil),
		tree:       NewTree(g),
	}
	v.ResetMatches()
	v.refreshAdjacent()
	return v
}

// Graph returns the graph the view is built on.
func (v *View) Graph() *graph.Graph {
	return v.graph
}

// Tree returns the cluster hierarchy of the view's graph.
func (v *View) Tree() *Tree {
	return v.tree
}

// List returns the column for focus.
func (v *View) List(focus Focus) *List {
	switch focus {
	case FocusPrevs:
		return v.prevs
	case FocusNexts:
		return v.nexts
	default:
		return v.current
	}
}

// Selected returns the selection of the current list.
func (v *View) Selected() (string, bool) {
	return v.current.Selected()
}

// Center returns the anchor of a neighborhood view.
func (v *View) Center() (string, bool) {
	return v.center, v.vicinity != nil
}

// Vicinity returns the signed distance of id from the center of a
// neighborhood view.
func (v *View) Vicinity(id string) (int, bool) {
	if v.vicinity == nil {
		return 0, false
	}
	if id == v.center {
		return 0, true
	}
	d, ok := v.vicinity[id]
	return d, ok
}

// Goto selects id in the current list and recomputes its adjacency.
func (v *View) Goto(id string) error {
	if !v.current.Select(id) {
		return fmt.Errorf("%w: %s", ErrNoSuchNode, id)
	}
	v.refreshAdjacent()
	return nil
}

// GoToAdjacent follows the selection of the predecessor or successor
// column.
func (v *View) GoToAdjacent(focus Focus) error {
	id, ok := v.List(focus).Selected()
	if !ok {
		return fmt.Errorf("%s: %w", focus, ErrNothingSelected)
	}
	return v.Goto(id)
}

// GoToMatch selects the node under the match cursor.
func (v *View) GoToMatch() error {
	if len(v.matches) == 0 {
		return fmt.Errorf("match: %w", ErrNothingSelected)
	}
	return v.Goto(v.matches[v.matchIdx].ID)
}

// NextMatch advances the match cursor, wrapping around, and selects it.
func (v *View) NextMatch() error {
	return v.stepMatch(1)
}

// PrevMatch moves the match cursor back, wrapping around, and selects it.
func (v *View) PrevMatch() error {
	return v.stepMatch(-1)
}

func (v *View) stepMatch(delta int) error {
	n := len(v.matches)
	if n == 0 {
		return fmt.Errorf("match: %w", ErrNothingSelected)
	}
	v.matchIdx = ((v.matchIdx+delta)%n + n) % n
	return v.GoToMatch()
}

// UpdateMatches evaluates a query over the full current list and rebuilds
// the prefix index over the surviving identifiers.
func (v *View) UpdateMatches(kind search.Kind, key string) {
	v.query = search.NewQuery(kind, key)
	v.matches = search.MatchAll(v.current.Items, v.query, v.text)
	v.highlights = make(map[string][]int, len(v.matches))
	ids := make([]string, len(v.matches))
	for i, m := range v.matches {
		ids[i] = m.ID
		v.highlights[m.ID] = m.Highlight
	}
	v.trie = search.NewTrie(ids)
	v.matchIdx = 0
}

// ResetMatches makes every node a match with nothing highlighted.
func (v *View) ResetMatches() {
	v.UpdateMatches(v.query.Kind, "")
}

// Serialize renders the whole view graph as a document.
func (v *View) Serialize() ([]byte, error) {
	return v.serializer.Graph(v.graph)
}

func (v *View) text(id string) string {
	text, err := v.graph.SerializeNode(id, v.serializer)
	if err != nil {
		return id
	}
	return text
}

// Query returns the last evaluated query.
func (v *View) Query() search.Query {
	return v.query
}

// Matches returns the current match list in list order.
func (v *View) Matches() []search.Match {
	return v.matches
}

// MatchIndex returns the position of the match cursor.
func (v *View) MatchIndex() int {
	return v.matchIdx
}

// Highlight returns the rune positions to emphasise for id and whether id
// is a match at all.
func (v *View) Highlight(id string) ([]int, bool) {
	h, ok := v.highlights[id]
	return h, ok
}

// Autocomplete completes key against the current matches.
func (v *View) Autocomplete(key string) (string, bool) {
	return v.trie.Autocomplete(key)
}

// Filter derives a view restricted to the current matches.
func (v *View) Filter() (*View, error) {
	if len(v.matches) == 0 {
		return nil, fmt.Errorf("filter: %w", graph.ErrEmptyResult)
	}
	keep := make(map[string]struct{}, len(v.matches))
	for _, m := range v.matches {
		keep[m.ID] = struct{}{}
	}
	g, err := v.graph.Filter(func(id string) bool {
		_, ok := keep[id]
		return ok
	})
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	title := "filter"
	if v.query.Key != "" {
		title = fmt.Sprintf("%s:%s", v.query.Kind, v.query.Key)
	}
	return NewView(title, g, v.serializer), nil
}

// Subgraph derives a view restricted to the cluster selected in the tree.
func (v *View) Subgraph() (*View, error) {
	item, ok := v.tree.Selected()
	if !ok {
		return nil, fmt.Errorf("subgraph: %w", ErrNothingSelected)
	}
	g, err := v.graph.Subgraph(item.ClusterID)
	if err != nil {
		return nil, err
	}
	return NewView(item.Label, g, v.serializer), nil
}

// Neighbors derives a view over the bounded neighborhood of the selection.
func (v *View) Neighbors(ctx context.Context, depth int) (*View, error) {
	center, ok := v.current.Selected()
	if !ok {
		return nil, fmt.Errorf("neighbors: %w", ErrNothingSelected)
	}
	cg, err := graph.Neighborhood(ctx, v.graph, center, depth)
	if err != nil {
		return nil, err
	}
	nv := NewView(fmt.Sprintf("%s~%d", center, depth), cg.Graph(), v.serializer)
	nv.center = center
	nv.vicinity = make(map[string]int, len(cg.Nodes()))
	for _, id := range cg.Nodes() {
		nv.vicinity[id] = cg.Vicinity(id)
	}
	if err := nv.Goto(center); err != nil {
		return nil, err
	}
	return nv, nil
}

// Move shifts the cursor of the focused column. Moving the current list
// recomputes the adjacency columns.
func (v *View) Move(focus Focus, delta int) bool {
	return v.moved(focus, v.List(focus).MoveCursorBy(delta))
}

// Home jumps to the top of the focused column.
func (v *View) Home(focus Focus) bool {
	return v.moved(focus, v.List(focus).MoveCursorHome())
}

// End jumps to the bottom of the focused column.
func (v *View) End(focus Focus) bool {
	return v.moved(focus, v.List(focus).MoveCursorEnd())
}

// Page moves the focused column by whole pages.
func (v *View) Page(focus Focus, pages, pageSize int) bool {
	l := v.List(focus)
	changed := false
	for ; pages > 0; pages-- {
		changed = l.MoveCursorPageDown(pageSize) || changed
	}
	for ; pages < 0; pages++ {
		changed = l.MoveCursorPageUp(pageSize) || changed
	}
	return v.moved(focus, changed)
}

func (v *View) moved(focus Focus, changed bool) bool {
	if changed && focus == FocusCurrent {
		v.refreshAdjacent()
	}
	return changed
}

func (v *View) refreshAdjacent() {
	id, ok := v.current.Selected()
	if !ok {
		v.prevs.SetItems(nil)
		v.nexts.SetItems(nil)
		return
	}
	// the selection always comes from this graph
	froms, _ := v.graph.Froms(id)
	tos, _ := v.graph.Tos(id)
	v.prevs.SetItems(froms)
	v.nexts.SetItems(tos)
}
