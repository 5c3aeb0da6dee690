package events

import "github.com/atomicstack/dotview/internal/logging"

type TabsTracer struct{}

var Tabs = TabsTracer{}

func (TabsTracer) Open(title string, index, count int) {
	logging.Trace("tabs.open", map[string]interface{}{"title": title, "index": index, "count": count})
}

func (TabsTracer) Close(title string, index, count int) {
	logging.Trace("tabs.close", map[string]interface{}{"title": title, "index": index, "count": count})
}

func (TabsTracer) Select(index int) {
	logging.Trace("tabs.select", map[string]interface{}{"index": index})
}
