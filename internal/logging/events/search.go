package events

import "github.com/atomicstack/dotview/internal/logging"

type SearchTracer struct{}

var Search = SearchTracer{}

func (SearchTracer) Update(kind, key string, matches int) {
	logging.Trace("search.update", map[string]interface{}{"kind": kind, "key": key, "matches": matches})
}

func (SearchTracer) Jump(index, total int, node string) {
	logging.Trace("search.jump", map[string]interface{}{"index": index, "total": total, "node": node})
}
