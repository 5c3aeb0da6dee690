package state

import (
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/dotview/internal/graph"
)

// TreeItem is one cluster in the hierarchy arena.
type TreeItem struct {
	ClusterID string
	Label     string
	Parent    int
	Children  []int
	Depth     int
	Expanded  bool
	Stats     graph.Stats
}

// TreeRow is a visible line of the tree in display order.
type TreeRow struct {
	Item     int
	Path     []int
	Prefix   string
	Selected bool
}

// Tree is the cluster hierarchy of a graph. Items live in an arena; the
// cursor is a path of child indices from the top level, so it never holds
// a pointer into the arena.
type Tree struct {
	items []TreeItem
	roots []int
	path  []int
}

// NewTree flattens the cluster tree of g into an arena. Per-cluster
// statistics are computed in parallel and stored by arena index.
func NewTree(g *graph.Graph) *Tree {
	t := &Tree{}
	for _, c := range g.Clusters() {
		t.roots = append(t.roots, t.add(c, -1, 0))
	}
	stats := make([]graph.Stats, len(t.items))
	var eg errgroup.Group
	eg.SetLimit(8)
	for i := range t.items {
		id := t.items[i].ClusterID
		eg.Go(func() error {
			s, err := g.ClusterStats(id)
			if err != nil {
				return err
			}
			stats[i] = s
			return nil
		})
	}
	// every id came from g.Clusters, so lookups cannot fail
	_ = eg.Wait()
	for i := range t.items {
		t.items[i].Stats = stats[i]
	}
	if len(t.roots) > 0 {
		t.path = []int{0}
	}
	return t
}

func (t *Tree) add(c graph.Cluster, parent, depth int) int {
	idx := len(t.items)
	t.items = append(t.items, TreeItem{
		ClusterID: c.ID,
		Label:     clusterLabel(c),
		Parent:    parent,
		Depth:     depth,
	})
	for _, child := range c.Children {
		childIdx := t.add(child, idx, depth+1)
		t.items[idx].Children = append(t.items[idx].Children, childIdx)
	}
	return idx
}

func clusterLabel(c graph.Cluster) string {
	for _, a := range c.Attrs {
		if a.Key == "label" {
			if label := strings.Trim(a.Value, `"`); label != "" {
				return label
			}
		}
	}
	return c.ID
}

// Len reports the number of clusters in the arena.
func (t *Tree) Len() int {
	return len(t.items)
}

// Item returns the arena entry at idx.
func (t *Tree) Item(idx int) TreeItem {
	return t.items[idx]
}

// Path returns a copy of the cursor path.
func (t *Tree) Path() []int {
	return append([]int(nil), t.path...)
}

// Selected resolves the cursor path.
func (t *Tree) Selected() (TreeItem, bool) {
	idx, ok := t.resolve(t.path)
	if !ok {
		return TreeItem{}, false
	}
	return t.items[idx], true
}

// SelectPath moves the cursor to path if it resolves to a visible item.
func (t *Tree) SelectPath(path []int) bool {
	for _, row := range t.Rows() {
		if slices.Equal(row.Path, path) {
			t.path = append([]int(nil), path...)
			return true
		}
	}
	return false
}

func (t *Tree) resolve(path []int) (int, bool) {
	if len(path) == 0 {
		return 0, false
	}
	siblings := t.roots
	idx := -1
	for _, step := range path {
		if step < 0 || step >= len(siblings) {
			return 0, false
		}
		idx = siblings[step]
		siblings = t.items[idx].Children
	}
	return idx, true
}

// Rows lists the visible items in display order, honouring expansion.
func (t *Tree) Rows() []TreeRow {
	var rows []TreeRow
	var walk func(children []int, path []int, lines string)
	walk = func(children []int, path []int, lines string) {
		for i, idx := range children {
			p := append(append([]int(nil), path...), i)
			last := i == len(children)-1
			prefix := ""
			if len(path) > 0 {
				prefix = lines + branch(last)
			}
			rows = append(rows, TreeRow{Item: idx, Path: p, Prefix: prefix, Selected: slices.Equal(p, t.path)})
			if t.items[idx].Expanded {
				next := lines
				if len(path) > 0 {
					next += continuation(last)
				}
				walk(t.items[idx].Children, p, next)
			}
		}
	}
	walk(t.roots, nil, "")
	return rows
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func continuation(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

func (t *Tree) rowIndex(rows []TreeRow) int {
	for i, row := range rows {
		if row.Selected {
			return i
		}
	}
	return -1
}

// MoveDown moves the cursor to the next visible row.
func (t *Tree) MoveDown() bool {
	return t.moveBy(1)
}

// MoveUp moves the cursor to the previous visible row.
func (t *Tree) MoveUp() bool {
	return t.moveBy(-1)
}

func (t *Tree) moveBy(delta int) bool {
	rows := t.Rows()
	cur := t.rowIndex(rows)
	if cur < 0 {
		return false
	}
	next := cur + delta
	if next < 0 || next >= len(rows) {
		return false
	}
	t.path = rows[next].Path
	return true
}

// Expand opens the selected item; an already open item moves the cursor
// to its first child.
func (t *Tree) Expand() bool {
	idx, ok := t.resolve(t.path)
	if !ok || len(t.items[idx].Children) == 0 {
		return false
	}
	if !t.items[idx].Expanded {
		t.items[idx].Expanded = true
		return true
	}
	t.path = append(t.path, 0)
	return true
}

// Collapse closes the selected item, or moves to its parent when it is
// already closed.
func (t *Tree) Collapse() bool {
	idx, ok := t.resolve(t.path)
	if !ok {
		return false
	}
	if t.items[idx].Expanded {
		t.items[idx].Expanded = false
		return true
	}
	if len(t.path) > 1 {
		t.path = t.path[:len(t.path)-1]
		return true
	}
	return false
}

// Toggle flips the expansion of the selected item.
func (t *Tree) Toggle() bool {
	idx, ok := t.resolve(t.path)
	if !ok || len(t.items[idx].Children) == 0 {
		return false
	}
	t.items[idx].Expanded = !t.items[idx].Expanded
	return true
}
