package events

import "github.com/atomicstack/dotview/internal/logging"

type GraphTracer struct{}

var Graph = GraphTracer{}

func (GraphTracer) Load(path string, nodes, edges, clusters int) {
	logging.Trace("graph.load", map[string]interface{}{
		"path":     path,
		"nodes":    nodes,
		"edges":    edges,
		"clusters": clusters,
	})
}

// Derive records a view derived from another, e.g. a filter or a
// neighborhood.
func (GraphTracer) Derive(kind, title string, nodes int) {
	logging.Trace("graph.derive", map[string]interface{}{"kind": kind, "title": title, "nodes": nodes})
}
