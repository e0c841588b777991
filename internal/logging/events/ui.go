package events

import "github.com/atomicstack/playctl/internal/logging"

type UITracer struct{}

type KeyTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Key     = KeyTracer{}
	Command = CommandTracer{}
)

func (UITracer) Event(kind string, detail interface{}) {
	logging.Trace("terminal.event", map[string]interface{}{"kind": kind, "detail": detail})
}

func (UITracer) Seek(column, width int, positionMS int64) {
	logging.Trace("mouse.seek", map[string]interface{}{"column": column, "width": width, "position_ms": positionMS})
}

func (UITracer) Page(kind string, depth int) {
	logging.Trace("ui.page", map[string]interface{}{"page": kind, "depth": depth})
}

func (UITracer) Popup(name string) {
	logging.Trace("ui.popup", map[string]interface{}{"popup": name})
}

func (KeyTracer) Restart(dropped, key string) {
	logging.Trace("key.restart", map[string]interface{}{"dropped": dropped, "key": key})
}

func (KeyTracer) Handled(sequence, handler string) {
	logging.Trace("key.handled", map[string]interface{}{"sequence": sequence, "handler": handler})
}

func (KeyTracer) Pending(sequence string) {
	logging.Trace("key.pending", map[string]interface{}{"sequence": sequence})
}

func (CommandTracer) Run(name, scope string) {
	logging.Trace("command.run", map[string]interface{}{"command": name, "scope": scope})
}

func (CommandTracer) Ignored(name, scope string) {
	logging.Trace("command.ignored", map[string]interface{}{"command": name, "scope": scope})
}
