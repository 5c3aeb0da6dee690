package events

import "github.com/atomicstack/dotview/internal/logging"

type UITracer struct{}

type InputTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Input   = InputTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Mode(from, to string) {
	logging.Trace("ui.mode", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Focus(focus string) {
	logging.Trace("ui.focus", map[string]interface{}{"focus": focus})
}

func (UITracer) Goto(tab, node string) {
	logging.Trace("ui.goto", map[string]interface{}{"tab": tab, "node": node})
}

func (UITracer) Unbound(mode, key string) {
	logging.Trace("ui.unbound", map[string]interface{}{"mode": mode, "key": key})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (InputTracer) Cleared(kind string) {
	logging.Trace("input.clear", map[string]interface{}{"kind": kind})
}

func (InputTracer) Edit(kind, text string, pos int) {
	logging.Trace("input.edit", map[string]interface{}{"kind": kind, "text": text, "cursor": pos})
}

func (InputTracer) Autocomplete(kind, before, after string) {
	logging.Trace("input.autocomplete", map[string]interface{}{"kind": kind, "before": before, "after": after})
}

func (CommandTracer) Parse(input, name string, err error) {
	payload := map[string]interface{}{"input": input, "name": name}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.parse", payload)
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
