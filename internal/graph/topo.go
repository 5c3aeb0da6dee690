package graph

import (
	"container/heap"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// sortTopologically runs Kahn's algorithm over the condensation of the
// graph. Among ready nodes the smallest identifier goes first. A cycle is
// collapsed into one component keyed by its smallest member and emitted
// with its members in identifier order.
func (g *Graph) sortTopologically() []string {
	if len(g.order) == 0 {
		return nil
	}
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	sort.Strings(ids)
	index := make(map[string]int64, len(ids))
	for i, id := range ids {
		index[id] = int64(i)
	}

	dg := simple.NewDirectedGraph()
	for i := range ids {
		dg.AddNode(simple.Node(int64(i)))
	}
	for from, tos := range g.fwd {
		for _, to := range tos {
			// simple.DirectedGraph rejects self loops; they never constrain the order.
			if from == to {
				continue
			}
			dg.SetEdge(simple.Edge{F: simple.Node(index[from]), T: simple.Node(index[to])})
		}
	}

	sccs := topo.TarjanSCC(dg)
	comps := make([][]string, len(sccs))
	compOf := make([]int, len(ids))
	for c, scc := range sccs {
		members := make([]string, 0, len(scc))
		for _, n := range scc {
			members = append(members, ids[n.ID()])
			compOf[n.ID()] = c
		}
		sort.Strings(members)
		comps[c] = members
	}

	succ := make([]map[int]struct{}, len(comps))
	indegree := make([]int, len(comps))
	for from, tos := range g.fwd {
		cf := compOf[index[from]]
		for _, to := range tos {
			ct := compOf[index[to]]
			if cf == ct {
				continue
			}
			if succ[cf] == nil {
				succ[cf] = make(map[int]struct{})
			}
			if _, seen := succ[cf][ct]; seen {
				continue
			}
			succ[cf][ct] = struct{}{}
			indegree[ct]++
		}
	}

	ready := &componentHeap{comps: comps}
	for c := range comps {
		if indegree[c] == 0 {
			ready.items = append(ready.items, c)
		}
	}
	heap.Init(ready)

	out := make([]string, 0, len(ids))
	for ready.Len() > 0 {
		c := heap.Pop(ready).(int)
		out = append(out, comps[c]...)
		for next := range succ[c] {
			indegree[next]--
			if indegree[next] == 0 {
				heap.Push(ready, next)
			}
		}
	}
	return out
}

// componentHeap is a min-heap of component indices ordered by each
// component's smallest identifier.
type componentHeap struct {
	comps [][]string
	items []int
}

func (h *componentHeap) Len() int { return len(h.items) }

func (h *componentHeap) Less(i, j int) bool {
	return h.comps[h.items[i]][0] < h.comps[h.items[j]][0]
}

func (h *componentHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *componentHeap) Push(x any) { h.items = append(h.items, x.(int)) }

func (h *componentHeap) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}
