package events

import "github.com/atomicstack/playctl/internal/logging"

type RequestTracer struct{}

type WatcherTracer struct{}

var (
	Request = RequestTracer{}
	Watcher = WatcherTracer{}
)

func (RequestTracer) Submit(id, request string) {
	logging.Trace("request.submit", map[string]interface{}{"id": id, "request": request})
}

func (RequestTracer) Start(id, request string) {
	logging.Trace("request.start", map[string]interface{}{"id": id, "request": request})
}

func (RequestTracer) Done(id, request string, elapsedMS int64) {
	logging.Trace("request.done", map[string]interface{}{"id": id, "request": request, "elapsed_ms": elapsedMS})
}

func (RequestTracer) Fail(id, request string, err error) {
	payload := map[string]interface{}{"id": id, "request": request}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("request.fail", payload)
}

func (WatcherTracer) NoPlayback(deviceID, deviceName string) {
	logging.Trace("watcher.no-playback", map[string]interface{}{"device": deviceID, "name": deviceName})
}

func (WatcherTracer) TrackEnded(trackID string, progressMS, durationMS int64) {
	logging.Trace("watcher.track-end", map[string]interface{}{
		"track":       trackID,
		"progress_ms": progressMS,
		"duration_ms": durationMS,
	})
}

func (WatcherTracer) Refresh() {
	logging.Trace("watcher.refresh", nil)
}
