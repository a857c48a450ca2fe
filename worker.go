package ringbus

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
)

// WorkerSpec declares one worker's handlers and subscriptions, the builder
// substitute for what a declarative macro would otherwise generate as a
// dedicated struct+impl pair per worker.
type WorkerSpec struct {
	Name     string
	Handlers []Handler
	router   *Router
}

// NewWorkerSpec starts a worker declaration. Call Route to subscribe a
// handler's reaction to a (source, message) pair before passing the spec to
// NewMessenger.
func NewWorkerSpec(name string, handlers ...Handler) *WorkerSpec {
	return &WorkerSpec{Name: name, Handlers: handlers, router: NewRouter()}
}

// Route subscribes fn to frames from source carrying messageID, for this
// worker only.
func (s *WorkerSpec) Route(source HandlerID, messageID MessageID, fn Reaction) *WorkerSpec {
	s.router.AddRoute(source, messageID, fn)
	return s
}

// Worker runs one WorkerSpec's read/route/on_loop loop on a single
// goroutine, pinned to an OS thread for the loop's lifetime as the closest
// Go analogue of "one OS thread per worker".
type Worker struct {
	spec     *WorkerSpec
	bus      MessageBus
	stop     *atomic.Bool
	log      *zap.Logger
	position uint64
}

func newWorker(spec *WorkerSpec, bus MessageBus, stop *atomic.Bool, log *zap.Logger) *Worker {
	return &Worker{spec: spec, bus: bus, stop: stop, log: log}
}

// Run executes the worker's on_start/read-route-loop/on_stop lifecycle
// until stop is observed. It returns once every handler's OnStop has run.
func (w *Worker) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for _, h := range w.spec.Handlers {
		h.OnStart(w.bus)
	}

	for !w.stop.Load() {
		header, payload, ok := w.bus.Read(w.position)
		if !ok {
			continue
		}
		w.spec.router.Route(header, payload, w.bus)
		w.position += uint64(FrameSize(int(header.Size)))

		for _, h := range w.spec.Handlers {
			h.OnLoop(w.bus)
		}
	}

	for _, h := range w.spec.Handlers {
		h.OnStop()
	}
	w.log.Debug("worker stopped", zap.String("worker", w.spec.Name))
}
