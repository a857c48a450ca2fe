package ringbus

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AsyncWorker is the cooperative-task variant of Worker: instead of running
// a handler reaction inline on the loop goroutine, it spawns one task per
// matching handler into a join set, the same structure
// examples/async/messenger.rs uses tokio::task::JoinSet for. Go's
// equivalent join set is an errgroup.Group, drained on shutdown so a stop
// request waits for in-flight reactions rather than abandoning them.
type AsyncWorker struct {
	spec     *WorkerSpec
	bus      *AsyncBus
	log      *zap.Logger
	position uint64
	group    *errgroup.Group
}

func newAsyncWorker(spec *WorkerSpec, bus *AsyncBus, log *zap.Logger) *AsyncWorker {
	return &AsyncWorker{spec: spec, bus: bus, log: log, group: &errgroup.Group{}}
}

// Run executes the worker until ctx is cancelled or the bus is stopped with
// no frame pending, then drains every in-flight reaction before returning.
func (w *AsyncWorker) Run(ctx context.Context) error {
	for _, h := range w.spec.Handlers {
		h.OnStart(w.bus)
	}

	for {
		header, payload, err := w.bus.AsyncRead(ctx, w.position)
		if err != nil {
			break
		}
		w.position += uint64(FrameSize(int(header.Size)))

		key := routeKey{source: header.Source, messageID: header.MessageID}
		for _, fn := range w.spec.router.routes[key] {
			fn := fn
			payload := payload
			w.group.Go(func() error {
				fn(payload, w.bus)
				return nil
			})
		}

		for _, h := range w.spec.Handlers {
			h.OnLoop(w.bus)
		}
	}

	err := w.group.Wait()
	for _, h := range w.spec.Handlers {
		h.OnStop()
	}
	w.log.Debug("async worker stopped", zap.String("worker", w.spec.Name))
	return err
}
