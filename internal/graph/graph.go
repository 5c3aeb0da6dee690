// Package graph holds the immutable directed graph model that every view of
// the explorer is built on.
//
// A Graph is constructed once from a node list, an edge list and an optional
// cluster tree and is never mutated afterwards. Derivations (Filter,
// Subgraph, Neighborhood) always produce a fresh Graph by value copy, so a
// derived graph has no back-reference to the graph it came from.
package graph

import (
	"fmt"
	"sort"
)

// Attr is a single key/value attribute in DOT source form. Values keep their
// original quoting so serialization is lossless.
type Attr struct {
	Key   string
	Value string
}

// Node is a graph vertex identified by ID.
type Node struct {
	ID    string
	Attrs []Attr
}

// Edge is a directed edge between two node identifiers.
type Edge struct {
	From  string
	To    string
	Attrs []Attr
}

// Cluster is a structural subgraph. Nodes lists the identifiers declared
// directly inside the cluster; nested clusters carry their own members.
type Cluster struct {
	ID       string
	Attrs    []Attr
	Nodes    []string
	Children []Cluster
}

// Options carries graph-level metadata that only matters for serialization.
type Options struct {
	Strict       bool
	Undirected   bool
	Attrs        []Attr
	NodeDefaults []Attr
	EdgeDefaults []Attr
}

// Serializer renders graphs and nodes in their canonical textual form.
type Serializer interface {
	Graph(g *Graph) ([]byte, error)
	Node(n Node) string
}

// Graph is an immutable directed graph with forward and backward adjacency.
type Graph struct {
	id       string
	opts     Options
	order    []string
	nodes    map[string]Node
	edges    []Edge
	fwd      map[string][]string
	bwd      map[string][]string
	clusters []Cluster
	topo     []string
}

// New validates the supplied nodes and edges and builds the adjacency maps.
// Duplicate node declarations merge their attributes; edges referencing an
// undeclared node fail with ErrUnknownNode.
func New(id string, opts Options, nodes []Node, edges []Edge, clusters []Cluster) (*Graph, error) {
	g := &Graph{
		id:    id,
		opts:  cloneOptions(opts),
		order: make([]string, 0, len(nodes)),
		nodes: make(map[string]Node, len(nodes)),
		edges: make([]Edge, 0, len(edges)),
		fwd:   make(map[string][]string, len(nodes)),
		bwd:   make(map[string][]string, len(nodes)),
	}
	for _, n := range nodes {
		if existing, ok := g.nodes[n.ID]; ok {
			existing.Attrs = append(existing.Attrs, cloneAttrs(n.Attrs)...)
			g.nodes[n.ID] = existing
			continue
		}
		g.nodes[n.ID] = Node{ID: n.ID, Attrs: cloneAttrs(n.Attrs)}
		g.order = append(g.order, n.ID)
	}
	fwdSeen := make(map[[2]string]struct{}, len(edges))
	for _, e := range edges {
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge %s -> %s: %w: %s", e.From, e.To, ErrUnknownNode, e.From)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge %s -> %s: %w: %s", e.From, e.To, ErrUnknownNode, e.To)
		}
		g.edges = append(g.edges, Edge{From: e.From, To: e.To, Attrs: cloneAttrs(e.Attrs)})
		key := [2]string{e.From, e.To}
		if _, dup := fwdSeen[key]; dup {
			continue
		}
		fwdSeen[key] = struct{}{}
		g.fwd[e.From] = append(g.fwd[e.From], e.To)
		g.bwd[e.To] = append(g.bwd[e.To], e.From)
	}
	for id := range g.fwd {
		sort.Strings(g.fwd[id])
	}
	for id := range g.bwd {
		sort.Strings(g.bwd[id])
	}
	for _, c := range clusters {
		if err := g.validateCluster(c); err != nil {
			return nil, err
		}
	}
	g.clusters = cloneClusters(clusters)
	g.topo = g.sortTopologically()
	return g, nil
}

func (g *Graph) validateCluster(c Cluster) error {
	for _, id := range c.Nodes {
		if _, ok := g.nodes[id]; !ok {
			return fmt.Errorf("subgraph %s: %w: %s", c.ID, ErrUnknownNode, id)
		}
	}
	for _, child := range c.Children {
		if err := g.validateCluster(child); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the graph identifier.
func (g *Graph) ID() string {
	return g.id
}

// Options returns a copy of the graph-level metadata.
func (g *Graph) Options() Options {
	return cloneOptions(g.opts)
}

// Len reports the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Contains reports whether id is a node of g.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given identifier.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return Node{ID: n.ID, Attrs: cloneAttrs(n.Attrs)}, true
}

// Nodes returns all identifiers in declaration order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// Edges returns a copy of the edge list in declaration order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = Edge{From: e.From, To: e.To, Attrs: cloneAttrs(e.Attrs)}
	}
	return out
}

// Froms returns the predecessors of id ordered by identifier.
func (g *Graph) Froms(id string) ([]string, error) {
	if !g.Contains(id) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return append([]string(nil), g.bwd[id]...), nil
}

// Tos returns the successors of id ordered by identifier.
func (g *Graph) Tos(id string) ([]string, error) {
	if !g.Contains(id) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return append([]string(nil), g.fwd[id]...), nil
}

// TopologicalOrder returns every node in a deterministic order consistent
// with edge direction. The order is computed once at construction.
func (g *Graph) TopologicalOrder() []string {
	return append([]string(nil), g.topo...)
}

// Filter returns a new graph containing the nodes accepted by keep and the
// edges whose endpoints both survive.
func (g *Graph) Filter(keep func(id string) bool) (*Graph, error) {
	kept := make(map[string]struct{}, len(g.order))
	for _, id := range g.order {
		if keep(id) {
			kept[id] = struct{}{}
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyResult
	}
	return g.induced(g.id, kept)
}

// SerializeNode renders one node through the supplied serializer.
func (g *Graph) SerializeNode(id string, s Serializer) (string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return s.Node(n), nil
}

// induced copies the subgraph spanned by kept.
func (g *Graph) induced(id string, kept map[string]struct{}) (*Graph, error) {
	nodes := make([]Node, 0, len(kept))
	for _, nid := range g.order {
		if _, ok := kept[nid]; ok {
			nodes = append(nodes, g.nodes[nid])
		}
	}
	edges := make([]Edge, 0)
	for _, e := range g.edges {
		_, fromOK := kept[e.From]
		_, toOK := kept[e.To]
		if fromOK && toOK {
			edges = append(edges, e)
		}
	}
	clusters := pruneClusters(g.clusters, kept)
	return New(id, g.opts, nodes, edges, clusters)
}

func cloneAttrs(attrs []Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	return append([]Attr(nil), attrs...)
}

func cloneOptions(o Options) Options {
	return Options{
		Strict:       o.Strict,
		Undirected:   o.Undirected,
		Attrs:        cloneAttrs(o.Attrs),
		NodeDefaults: cloneAttrs(o.NodeDefaults),
		EdgeDefaults: cloneAttrs(o.EdgeDefaults),
	}
}
