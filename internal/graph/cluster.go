package graph

import "fmt"

// Stats summarises the contents of a cluster including its descendants.
type Stats struct {
	Subgraphs int
	Nodes     int
	Edges     int
}

// Clusters returns a copy of the top-level cluster tree.
func (g *Graph) Clusters() []Cluster {
	return cloneClusters(g.clusters)
}

// Cluster returns the cluster with the given identifier.
func (g *Graph) Cluster(id string) (Cluster, bool) {
	c, ok := findCluster(g.clusters, id)
	if !ok {
		return Cluster{}, false
	}
	return cloneCluster(*c), true
}

// ClusterNodes returns every node of the cluster and its descendants, in
// graph declaration order.
func (g *Graph) ClusterNodes(id string) ([]string, error) {
	members, err := g.clusterMembers(id)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(members))
	for _, nid := range g.order {
		if _, ok := members[nid]; ok {
			out = append(out, nid)
		}
	}
	return out, nil
}

// ClusterStats counts the descendant clusters, member nodes and internal
// edges of a cluster.
func (g *Graph) ClusterStats(id string) (Stats, error) {
	c, ok := findCluster(g.clusters, id)
	if !ok {
		return Stats{}, fmt.Errorf("%w: %s", ErrUnknownCluster, id)
	}
	members := make(map[string]struct{})
	collectMembers(*c, members)
	stats := Stats{Subgraphs: countDescendants(*c), Nodes: len(members)}
	for _, e := range g.edges {
		_, fromOK := members[e.From]
		_, toOK := members[e.To]
		if fromOK && toOK {
			stats.Edges++
		}
	}
	return stats, nil
}

// Subgraph returns a new graph restricted to the members of the named
// cluster. Enclosing clusters survive, pruned to the kept members.
func (g *Graph) Subgraph(id string) (*Graph, error) {
	members, err := g.clusterMembers(id)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("subgraph %s: %w", id, ErrEmptyResult)
	}
	return g.induced(id, members)
}

func (g *Graph) clusterMembers(id string) (map[string]struct{}, error) {
	c, ok := findCluster(g.clusters, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCluster, id)
	}
	members := make(map[string]struct{})
	collectMembers(*c, members)
	return members, nil
}

func findCluster(clusters []Cluster, id string) (*Cluster, bool) {
	for i := range clusters {
		if clusters[i].ID == id {
			return &clusters[i], true
		}
		if c, ok := findCluster(clusters[i].Children, id); ok {
			return c, true
		}
	}
	return nil, false
}

func collectMembers(c Cluster, into map[string]struct{}) {
	for _, id := range c.Nodes {
		into[id] = struct{}{}
	}
	for _, child := range c.Children {
		collectMembers(child, into)
	}
}

func countDescendants(c Cluster) int {
	total := len(c.Children)
	for _, child := range c.Children {
		total += countDescendants(child)
	}
	return total
}

// pruneClusters drops members outside kept and clusters left without any
// members.
func pruneClusters(clusters []Cluster, kept map[string]struct{}) []Cluster {
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		nodes := make([]string, 0, len(c.Nodes))
		for _, id := range c.Nodes {
			if _, ok := kept[id]; ok {
				nodes = append(nodes, id)
			}
		}
		children := pruneClusters(c.Children, kept)
		if len(nodes) == 0 && len(children) == 0 {
			continue
		}
		out = append(out, Cluster{ID: c.ID, Attrs: cloneAttrs(c.Attrs), Nodes: nodes, Children: children})
	}
	return out
}

func cloneClusters(clusters []Cluster) []Cluster {
	if len(clusters) == 0 {
		return nil
	}
	out := make([]Cluster, len(clusters))
	for i, c := range clusters {
		out[i] = cloneCluster(c)
	}
	return out
}

func cloneCluster(c Cluster) Cluster {
	return Cluster{
		ID:       c.ID,
		Attrs:    cloneAttrs(c.Attrs),
		Nodes:    append([]string(nil), c.Nodes...),
		Children: cloneClusters(c.Children),
	}
}
