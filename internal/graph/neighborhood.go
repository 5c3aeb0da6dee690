package graph

import (
	"context"
	"fmt"
	"sort"
)

// CenterGraph is the merged forward and backward neighborhood of a center
// node, bounded to Depth hops. Vicinity is negative on the predecessor side
// and positive on the successor side. The center itself is not part of the
// result set but anchors the resulting graph and the position index at
// vicinity 0.
type CenterGraph struct {
	Center string
	Depth  int

	vicinity  map[string]int
	graph     *Graph
	positions []string
	index     map[string]int
}

type direction int

const (
	forward direction = iota
	backward
)

// Neighborhood computes the bounded neighborhood of center in g.
// The context is checked each time a node is popped from a frontier.
func Neighborhood(ctx context.Context, g *Graph, center string, depth int) (*CenterGraph, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if !g.Contains(center) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, center)
	}
	fwd, err := explore(ctx, g, center, depth, forward)
	if err != nil {
		return nil, err
	}
	bwd, err := explore(ctx, g, center, depth, backward)
	if err != nil {
		return nil, err
	}
	merged := fwd.Merge(bwd)
	if len(merged.vicinity) == 0 {
		return nil, fmt.Errorf("neighbors of %s at depth %d: %w", center, depth, ErrEmptyResult)
	}
	if err := merged.build(g); err != nil {
		return nil, err
	}
	return merged, nil
}

// explore runs one bounded breadth-first search. Each level is expanded in
// identifier order so ties at the same distance are deterministic.
func explore(ctx context.Context, g *Graph, center string, depth int, dir direction) (*CenterGraph, error) {
	result := &CenterGraph{Center: center, Depth: depth, vicinity: make(map[string]int)}
	visited := map[string]struct{}{center: {}}
	frontier := []string{center}
	for distance := 0; distance < depth && len(frontier) > 0; distance++ {
		var next []string
		for _, id := range frontier {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			adjacent := g.fwd[id]
			if dir == backward {
				adjacent = g.bwd[id]
			}
			for _, n := range adjacent {
				if _, seen := visited[n]; seen {
					continue
				}
				visited[n] = struct{}{}
				next = append(next, n)
				if dir == backward {
					result.vicinity[n] = -(distance + 1)
				} else {
					result.vicinity[n] = distance + 1
				}
			}
		}
		sort.Strings(next)
		frontier = next
	}
	return result, nil
}

// Merge unions two neighborhoods computed for the same center and depth.
// Nodes present in both keep the successor-side (positive) vicinity.
// Merging neighborhoods of different centers or depths is a programming
// error and panics.
func (c *CenterGraph) Merge(other *CenterGraph) *CenterGraph {
	if c.Center != other.Center || c.Depth != other.Depth {
		panic(fmt.Sprintf("graph: merging neighborhood of %s/%d with %s/%d", c.Center, c.Depth, other.Center, other.Depth))
	}
	merged := &CenterGraph{
		Center:   c.Center,
		Depth:    c.Depth,
		vicinity: make(map[string]int, len(c.vicinity)+len(other.vicinity)),
	}
	for _, src := range []*CenterGraph{c, other} {
		for id, v := range src.vicinity {
			if existing, ok := merged.vicinity[id]; ok && existing > 0 {
				continue
			}
			merged.vicinity[id] = v
		}
	}
	return merged
}

// build materialises the resulting graph and the position index.
func (c *CenterGraph) build(g *Graph) error {
	kept := make(map[string]struct{}, len(c.vicinity)+1)
	kept[c.Center] = struct{}{}
	for id := range c.vicinity {
		kept[id] = struct{}{}
	}
	sub, err := g.induced(fmt.Sprintf("%s-%d", c.Center, c.Depth), kept)
	if err != nil {
		return err
	}
	c.graph = sub

	positions := make([]string, 0, len(kept))
	for id := range kept {
		positions = append(positions, id)
	}
	sort.Slice(positions, func(i, j int) bool {
		vi, vj := c.Vicinity(positions[i]), c.Vicinity(positions[j])
		if vi != vj {
			return vi < vj
		}
		return positions[i] < positions[j]
	})
	c.positions = positions
	c.index = make(map[string]int, len(positions))
	for i, id := range positions {
		c.index[id] = i
	}
	return nil
}

// Graph returns the subgraph spanned by the center and the result set.
func (c *CenterGraph) Graph() *Graph {
	return c.graph
}

// Nodes returns the result set (center excluded) in position order.
func (c *CenterGraph) Nodes() []string {
	out := make([]string, 0, len(c.vicinity))
	for _, id := range c.positions {
		if id != c.Center {
			out = append(out, id)
		}
	}
	return out
}

// Vicinity returns the signed distance of id from the center. The center
// and unknown identifiers report 0.
func (c *CenterGraph) Vicinity(id string) int {
	return c.vicinity[id]
}

// Contains reports whether id is part of the result set.
func (c *CenterGraph) Contains(id string) bool {
	_, ok := c.vicinity[id]
	return ok
}

// Len reports the number of indexed positions, the center included.
func (c *CenterGraph) Len() int {
	return len(c.positions)
}

// Position returns the distance-ordered position of id.
func (c *CenterGraph) Position(id string) (int, bool) {
	pos, ok := c.index[id]
	return pos, ok
}

// At returns the node at the given position.
func (c *CenterGraph) At(pos int) (string, bool) {
	if pos < 0 || pos >= len(c.positions) {
		return "", false
	}
	return c.positions[pos], true
}

// Prevs returns the predecessor-side nodes, farthest first.
func (c *CenterGraph) Prevs() []string {
	center := c.index[c.Center]
	return append([]string(nil), c.positions[:center]...)
}

// Nexts returns the successor-side nodes, nearest first.
func (c *CenterGraph) Nexts() []string {
	center := c.index[c.Center]
	return append([]string(nil), c.positions[center+1:]...)
}
