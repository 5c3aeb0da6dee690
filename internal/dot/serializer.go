package dot

import (
	"strings"
	"unicode"

	"gonum.org/v1/gonum/graph/formats/dot/ast"

	"github.com/atomicstack/dotview/internal/graph"
)

// Serializer renders graph values back to DOT source.
type Serializer struct{}

var _ graph.Serializer = Serializer{}

// Graph renders the whole graph, clusters included.
func (Serializer) Graph(g *graph.Graph) ([]byte, error) {
	opts := g.Options()
	out := &ast.Graph{
		Strict:   opts.Strict,
		Directed: !opts.Undirected,
		ID:       quote(g.ID()),
	}
	if len(opts.Attrs) > 0 {
		out.Stmts = append(out.Stmts, &ast.AttrStmt{Kind: ast.GraphKind, Attrs: astAttrs(opts.Attrs)})
	}
	if len(opts.NodeDefaults) > 0 {
		out.Stmts = append(out.Stmts, &ast.AttrStmt{Kind: ast.NodeKind, Attrs: astAttrs(opts.NodeDefaults)})
	}
	if len(opts.EdgeDefaults) > 0 {
		out.Stmts = append(out.Stmts, &ast.AttrStmt{Kind: ast.EdgeKind, Attrs: astAttrs(opts.EdgeDefaults)})
	}
	for _, c := range g.Clusters() {
		out.Stmts = append(out.Stmts, subgraph(c))
	}
	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		out.Stmts = append(out.Stmts, nodeStmt(n))
	}
	for _, e := range g.Edges() {
		out.Stmts = append(out.Stmts, &ast.EdgeStmt{
			From:  &ast.Node{ID: quote(e.From)},
			To:    &ast.Edge{Directed: !opts.Undirected, Vertex: &ast.Node{ID: quote(e.To)}},
			Attrs: astAttrs(e.Attrs),
		})
	}
	return []byte(out.String() + "\n"), nil
}

// Node renders a single node statement, e.g. `"a b" [shape=box]`.
func (Serializer) Node(n graph.Node) string {
	return nodeStmt(n).String()
}

func nodeStmt(n graph.Node) *ast.NodeStmt {
	return &ast.NodeStmt{Node: &ast.Node{ID: quote(n.ID)}, Attrs: astAttrs(n.Attrs)}
}

func subgraph(c graph.Cluster) *ast.Subgraph {
	sg := &ast.Subgraph{ID: quote(c.ID)}
	for _, a := range c.Attrs {
		sg.Stmts = append(sg.Stmts, &ast.Attr{Key: a.Key, Val: a.Value})
	}
	for _, child := range c.Children {
		sg.Stmts = append(sg.Stmts, subgraph(child))
	}
	for _, id := range c.Nodes {
		sg.Stmts = append(sg.Stmts, &ast.NodeStmt{Node: &ast.Node{ID: quote(id)}})
	}
	return sg
}

func astAttrs(in []graph.Attr) []*ast.Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]*ast.Attr, 0, len(in))
	for _, a := range in {
		out = append(out, &ast.Attr{Key: a.Key, Val: a.Value})
	}
	return out
}

var keywords = map[string]struct{}{
	"node": {}, "edge": {}, "graph": {}, "digraph": {}, "subgraph": {}, "strict": {},
}

// quote returns id in a form the DOT grammar accepts, quoting only when the
// bare form would not parse back to the same identifier.
func quote(id string) string {
	if id == "" {
		return ""
	}
	if isBareID(id) || isNumeral(id) || isHTML(id) {
		return id
	}
	return `"` + strings.ReplaceAll(id, `"`, `\"`) + `"`
}

func isBareID(id string) bool {
	if _, ok := keywords[strings.ToLower(id)]; ok {
		return false
	}
	for i, r := range id {
		switch {
		case r == '_', r >= 0x80, unicode.IsLetter(r) && r < 0x80:
		case unicode.IsDigit(r) && r < 0x80 && i > 0:
		default:
			return false
		}
	}
	return true
}

func isNumeral(id string) bool {
	s := strings.TrimPrefix(id, "-")
	if s == "" {
		return false
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func isHTML(id string) bool {
	return len(id) >= 2 && id[0] == '<' && id[len(id)-1] == '>'
}
