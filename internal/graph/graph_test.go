package graph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// testingT is satisfied by both *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

func mustGraph(t testingT, nodes []string, edges [][2]string, clusters ...Cluster) *Graph {
	t.Helper()
	ns := make([]Node, len(nodes))
	for i, id := range nodes {
		ns[i] = Node{ID: id}
	}
	es := make([]Edge, len(edges))
	for i, e := range edges {
		es[i] = Edge{From: e[0], To: e[1]}
	}
	g, err := New("G", Options{}, ns, es, clusters)
	require.NoError(t, err)
	return g
}

func diamond(t testingT) *Graph {
	return mustGraph(t,
		[]string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"A", "D"}},
	)
}

func TestNewRejectsEdgeToUnknownNode(t *testing.T) {
	_, err := New("G", Options{}, []Node{{ID: "a"}}, []Edge{{From: "a", To: "b"}}, nil)
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestNewRejectsClusterWithUnknownNode(t *testing.T) {
	_, err := New("G", Options{}, []Node{{ID: "a"}}, nil, []Cluster{{ID: "cluster_x", Nodes: []string{"zz"}}})
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestAdjacencyIsInverse(t *testing.T) {
	g := diamond(t)
	tos, err := g.Tos("A")
	require.NoError(t, err)
	require.Equal(t, []string{"B", "D"}, tos)

	froms, err := g.Froms("C")
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, froms)

	froms, err = g.Froms("A")
	require.NoError(t, err)
	require.Empty(t, froms)

	_, err = g.Tos("nope")
	require.ErrorIs(t, err, ErrUnknownNode)
	_, err = g.Froms("nope")
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestDuplicateEdgesCollapseInAdjacency(t *testing.T) {
	g := mustGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"a", "b"}})
	tos, err := g.Tos("a")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, tos)
	require.Len(t, g.Edges(), 2, "edge list keeps duplicates for serialization")
}

func TestContainsAndNode(t *testing.T) {
	g := diamond(t)
	require.True(t, g.Contains("A"))
	require.False(t, g.Contains("Z"))
	n, ok := g.Node("B")
	require.True(t, ok)
	require.Equal(t, "B", n.ID)
	require.Equal(t, 4, g.Len())
}

func TestTopologicalOrderIsValidLinearization(t *testing.T) {
	g := diamond(t)
	order := g.TopologicalOrder()
	require.Len(t, order, 4)
	assertLinearization(t, g, order)
	require.Equal(t, order, g.TopologicalOrder(), "order must be stable")
}

func TestTopologicalOrderHandlesCyclesAndSelfLoops(t *testing.T) {
	g := mustGraph(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}, {"c", "d"}, {"d", "d"}},
	)
	require.Equal(t, []string{"a", "b", "c", "d"}, g.TopologicalOrder())
}

func TestTopologicalOrderBreaksTiesByIdentifier(t *testing.T) {
	cases := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  []string
	}{
		{
			name:  "no edges",
			nodes: []string{"beta", "alpha", "alef"},
			want:  []string{"alef", "alpha", "beta"},
		},
		{
			name:  "last node constrains first",
			nodes: []string{"a", "b", "c", "d"},
			edges: [][2]string{{"d", "a"}},
			want:  []string{"b", "c", "d", "a"},
		},
		{
			name:  "first node constrains last",
			nodes: []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "d"}},
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name:  "shared target",
			nodes: []string{"x", "a", "z", "m"},
			edges: [][2]string{{"z", "a"}, {"m", "a"}},
			want:  []string{"m", "x", "z", "a"},
		},
		{
			name:  "diamond",
			nodes: []string{"A", "B", "C", "D"},
			edges: [][2]string{{"A", "B"}, {"B", "C"}, {"A", "D"}},
			want:  []string{"A", "B", "C", "D"},
		},
		{
			name:  "cycle keyed by smallest member",
			nodes: []string{"q", "p", "c", "b"},
			edges: [][2]string{{"q", "b"}, {"b", "q"}, {"q", "p"}},
			want:  []string{"b", "q", "c", "p"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGraph(t, tc.nodes, tc.edges)
			require.Equal(t, tc.want, g.TopologicalOrder())
		})
	}
}

func TestTopologicalOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := randomDAG(t)
		assertLinearization(t, g, g.TopologicalOrder())
	})
}

func TestFilterKeepsInducedEdges(t *testing.T) {
	g := diamond(t)
	sub, err := g.Filter(func(id string) bool { return id != "B" })
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "D"}, sub.Nodes())
	require.Equal(t, []Edge{{From: "A", To: "D"}}, sub.Edges())

	tos, err := g.Tos("A")
	require.NoError(t, err)
	require.Equal(t, []string{"B", "D"}, tos, "parent graph is untouched")
}

func TestFilterEmptyResult(t *testing.T) {
	g := diamond(t)
	_, err := g.Filter(func(string) bool { return false })
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestSubgraphByCluster(t *testing.T) {
	clusters := []Cluster{{
		ID:    "cluster_outer",
		Nodes: []string{"A"},
		Children: []Cluster{
			{ID: "cluster_inner", Nodes: []string{"B", "C"}},
		},
	}}
	g := mustGraph(t,
		[]string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"A", "D"}},
		clusters...,
	)

	sub, err := g.Subgraph("cluster_inner")
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C"}, sub.Nodes())
	require.Equal(t, []Edge{{From: "B", To: "C"}}, sub.Edges())

	outer, err := g.Subgraph("cluster_outer")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, outer.Nodes())

	stats, err := g.ClusterStats("cluster_outer")
	require.NoError(t, err)
	require.Equal(t, Stats{Subgraphs: 1, Nodes: 3, Edges: 2}, stats)

	_, err = g.Subgraph("cluster_missing")
	require.ErrorIs(t, err, ErrUnknownCluster)
}

func TestSubgraphEmptyCluster(t *testing.T) {
	g := mustGraph(t, []string{"A"}, nil, Cluster{ID: "cluster_empty"})
	_, err := g.Subgraph("cluster_empty")
	require.ErrorIs(t, err, ErrEmptyResult)
}

type stubSerializer struct{}

func (stubSerializer) Graph(*Graph) ([]byte, error) { return nil, errors.New("unused") }
func (stubSerializer) Node(n Node) string           { return fmt.Sprintf("node<%s>", n.ID) }

func TestSerializeNode(t *testing.T) {
	g := diamond(t)
	text, err := g.SerializeNode("A", stubSerializer{})
	require.NoError(t, err)
	require.Equal(t, "node<A>", text)
	_, err = g.SerializeNode("Z", stubSerializer{})
	require.ErrorIs(t, err, ErrUnknownNode)
}

func assertLinearization(t require.TestingT, g *Graph, order []string) {
	pos := positions(order)
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		require.Less(t, pos[e.From], pos[e.To], "edge %s -> %s out of order in %v", e.From, e.To, order)
	}
}

func positions(order []string) map[string]int {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	return pos
}

// randomDAG draws a graph whose edges only point from lower to higher
// rank, with ranks assigned to a shuffled set of identifiers.
func randomDAG(t *rapid.T) *Graph {
	n := rapid.IntRange(1, 12).Draw(t, "nodes")
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("n%02d", i)
	}
	ranked := rapid.Permutation(ids).Draw(t, "ranks")
	var edges [][2]string
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rapid.Bool().Draw(t, fmt.Sprintf("edge-%d-%d", i, j)) {
				edges = append(edges, [2]string{ranked[i], ranked[j]})
			}
		}
	}
	return mustGraph(t, ids, edges)
}
