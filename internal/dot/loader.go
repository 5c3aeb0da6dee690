// Package dot reads and writes Graphviz DOT source for the explorer's graph
// model on top of gonum's DOT parser and AST.
package dot

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/graph/formats/dot"
	"gonum.org/v1/gonum/graph/formats/dot/ast"

	"github.com/atomicstack/dotview/internal/graph"
)

// Load parses the DOT file at path.
func Load(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse builds a graph from the first graph declared in data.
func Parse(data []byte) (*graph.Graph, error) {
	file, err := dot.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	if len(file.Graphs) == 0 {
		return nil, fmt.Errorf("parse dot: no graph declared")
	}
	src := file.Graphs[0]
	b := newBuilder()
	b.opts.Strict = src.Strict
	b.opts.Undirected = !src.Directed
	root := &graph.Cluster{}
	b.stmts(src.Stmts, root, true)
	return graph.New(unquote(src.ID), b.opts, b.nodes, b.edges, root.Children)
}

type builder struct {
	opts  graph.Options
	nodes []graph.Node
	seen  map[string]struct{}
	edges []graph.Edge
}

func newBuilder() *builder {
	return &builder{seen: make(map[string]struct{})}
}

// stmts walks a statement list. Named subgraphs become child clusters of
// parent; anonymous ones contribute their members to parent directly.
func (b *builder) stmts(stmts []ast.Stmt, parent *graph.Cluster, top bool) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			id := b.node(s.Node.ID, attrs(s.Attrs))
			parent.Nodes = appendUnique(parent.Nodes, id)
		case *ast.EdgeStmt:
			b.edgeChain(s, parent)
		case *ast.AttrStmt:
			b.attrStmt(s, parent, top)
		case *ast.Attr:
			attr := graph.Attr{Key: s.Key, Value: s.Val}
			if top {
				b.opts.Attrs = append(b.opts.Attrs, attr)
			} else {
				parent.Attrs = append(parent.Attrs, attr)
			}
		case *ast.Subgraph:
			b.subgraph(s, parent)
		}
	}
}

func (b *builder) attrStmt(s *ast.AttrStmt, parent *graph.Cluster, top bool) {
	list := attrs(s.Attrs)
	switch s.Kind {
	case ast.GraphKind:
		if top {
			b.opts.Attrs = append(b.opts.Attrs, list...)
		} else {
			parent.Attrs = append(parent.Attrs, list...)
		}
	case ast.NodeKind:
		if top {
			b.opts.NodeDefaults = append(b.opts.NodeDefaults, list...)
		}
	case ast.EdgeKind:
		if top {
			b.opts.EdgeDefaults = append(b.opts.EdgeDefaults, list...)
		}
	}
}

// subgraph processes s and returns the identifiers of every node it
// contains, nested subgraphs included.
func (b *builder) subgraph(s *ast.Subgraph, parent *graph.Cluster) []string {
	if s.ID == "" {
		// layout-only attributes such as rank=same are dropped here
		anon := graph.Cluster{}
		b.stmts(s.Stmts, &anon, false)
		for _, id := range anon.Nodes {
			parent.Nodes = appendUnique(parent.Nodes, id)
		}
		parent.Children = append(parent.Children, anon.Children...)
		return members(anon)
	}
	id := unquote(s.ID)
	for i := range parent.Children {
		if parent.Children[i].ID == id {
			b.stmts(s.Stmts, &parent.Children[i], false)
			return members(parent.Children[i])
		}
	}
	child := graph.Cluster{ID: id}
	b.stmts(s.Stmts, &child, false)
	parent.Children = append(parent.Children, child)
	return members(child)
}

// edgeChain expands a -> b -> {c d} into individual edges.
func (b *builder) edgeChain(s *ast.EdgeStmt, parent *graph.Cluster) {
	list := attrs(s.Attrs)
	from := b.vertex(s.From, parent)
	for e := s.To; e != nil; e = e.To {
		to := b.vertex(e.Vertex, parent)
		for _, f := range from {
			for _, t := range to {
				b.edges = append(b.edges, graph.Edge{From: f, To: t, Attrs: append([]graph.Attr(nil), list...)})
			}
		}
		from = to
	}
}

func (b *builder) vertex(v ast.Vertex, parent *graph.Cluster) []string {
	switch v := v.(type) {
	case *ast.Node:
		id := b.node(v.ID, nil)
		parent.Nodes = appendUnique(parent.Nodes, id)
		return []string{id}
	case *ast.Subgraph:
		return b.subgraph(v, parent)
	}
	return nil
}

func (b *builder) node(raw string, list []graph.Attr) string {
	id := unquote(raw)
	if _, ok := b.seen[id]; !ok || len(list) > 0 {
		b.seen[id] = struct{}{}
		b.nodes = append(b.nodes, graph.Node{ID: id, Attrs: list})
	}
	return id
}

func attrs(in []*ast.Attr) []graph.Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]graph.Attr, 0, len(in))
	for _, a := range in {
		out = append(out, graph.Attr{Key: a.Key, Value: a.Val})
	}
	return out
}

func members(c graph.Cluster) []string {
	out := append([]string(nil), c.Nodes...)
	for _, child := range c.Children {
		out = append(out, members(child)...)
	}
	return out
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

// unquote strips DOT string quoting. HTML-like and bare identifiers are
// returned unchanged.
func unquote(id string) string {
	if len(id) < 2 || id[0] != '"' || id[len(id)-1] != '"' {
		return id
	}
	inner := id[1 : len(id)-1]
	inner = strings.ReplaceAll(inner, "\\\n", "")
	return strings.ReplaceAll(inner, `\"`, `"`)
}
