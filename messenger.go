package ringbus

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// JoinHandles lets a caller wait for every worker a Messenger spawned to
// finish, mirroring messenger.rs's JoinHandles wrapper around a Vec of
// std::thread::JoinHandle.
type JoinHandles struct {
	wg     sync.WaitGroup
	mu     sync.Mutex
	errs   error
	logger *zap.Logger
}

// Join blocks until every worker goroutine has returned, folding any
// recovered panics into a single combined error via multierr.
func (j *JoinHandles) Join() error {
	j.wg.Wait()
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.errs
}

func (j *JoinHandles) recordPanic(worker string, r any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	err := panicError{worker: worker, value: r}
	j.errs = multierr.Append(j.errs, err)
	j.logger.Error(err.Error())
}

type panicError struct {
	worker string
	value  any
}

func (p panicError) Error() string {
	return "ringbus: worker " + p.worker + " panicked: " + errorString(p.value)
}

func errorString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "non-error panic value"
}

// Messenger owns the shared Ring, its bus adapter, and one goroutine per
// declared worker, the Go realization of the generated Messenger struct the
// original macro produces: construction wires workers to the bus, Run
// spawns them, Stop asks them to exit, and the returned JoinHandles waits
// for that exit.
type Messenger struct {
	ring   *Ring
	bus    MessageBus
	specs  []*WorkerSpec
	stop   atomic.Bool
	logger *zap.Logger
}

// NewMessenger builds a supervisor over a fresh Ring sized and logged per
// opts, ready to run the given worker specs.
func NewMessenger(specs []*WorkerSpec, opts ...Option) (*Messenger, error) {
	cfg := defaultRingConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ring, err := NewRing(cfg.capacity)
	if err != nil {
		return nil, err
	}

	return &Messenger{
		ring:   ring,
		bus:    NewCondVarBus(NewBaseBus(ring)),
		specs:  specs,
		logger: cfg.logger,
	}, nil
}

// Bus exposes the underlying MessageBus, for callers that want a Writer
// outside of any registered handler (e.g. seeding the first message before
// Run).
func (m *Messenger) Bus() MessageBus { return m.bus }

// Run spawns one goroutine per worker spec and returns immediately with a
// JoinHandles the caller can wait on.
func (m *Messenger) Run() *JoinHandles {
	handles := &JoinHandles{logger: m.logger}
	handles.wg.Add(len(m.specs))

	for _, spec := range m.specs {
		spec := spec
		worker := newWorker(spec, m.bus, &m.stop, m.logger)
		go func() {
			defer handles.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					handles.recordPanic(spec.Name, r)
				}
			}()
			worker.Run()
		}()
	}
	return handles
}

// Stop requests every worker exit its loop after its current iteration and
// wakes any worker blocked on an empty bus.
func (m *Messenger) Stop() {
	m.stop.Store(true)
	m.bus.Stop()
}

// Close releases the ring's backing allocation. Call after JoinHandles.Join
// returns.
func (m *Messenger) Close() error {
	return m.ring.Close()
}

// AsyncMessenger is the cooperative-task counterpart to Messenger: it wires
// the same WorkerSpecs to an AsyncBus and runs each as an AsyncWorker instead
// of a Worker, so a caller can opt into the §4.2/§4.6 async variant without
// reaching into package-private constructors.
type AsyncMessenger struct {
	ring   *Ring
	bus    *AsyncBus
	specs  []*WorkerSpec
	logger *zap.Logger
}

// NewAsyncMessenger builds an AsyncMessenger over a fresh Ring sized and
// logged per opts, ready to run the given worker specs with AsyncWorker.
func NewAsyncMessenger(specs []*WorkerSpec, opts ...Option) (*AsyncMessenger, error) {
	cfg := defaultRingConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ring, err := NewRing(cfg.capacity)
	if err != nil {
		return nil, err
	}

	return &AsyncMessenger{
		ring:   ring,
		bus:    NewAsyncBus(NewBaseBus(ring)),
		specs:  specs,
		logger: cfg.logger,
	}, nil
}

// Bus exposes the underlying AsyncBus, for callers that want a Writer
// outside of any registered handler.
func (m *AsyncMessenger) Bus() *AsyncBus { return m.bus }

// Run spawns one AsyncWorker per spec under an errgroup.Group bound to ctx
// and returns immediately; call Wait to block for their completion.
func (m *AsyncMessenger) Run(ctx context.Context) *AsyncJoinHandles {
	group, ctx := errgroup.WithContext(ctx)
	handles := &AsyncJoinHandles{group: group, logger: m.logger}

	for _, spec := range m.specs {
		spec := spec
		worker := newAsyncWorker(spec, m.bus, m.logger)
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = panicError{worker: spec.Name, value: r}
					handles.logger.Error(err.Error())
				}
			}()
			return worker.Run(ctx)
		})
	}
	return handles
}

// Stop wakes every worker blocked on an empty bus; each AsyncWorker then
// exits once ctx is also done or no frame remains pending.
func (m *AsyncMessenger) Stop() {
	m.bus.Stop()
}

// Close releases the ring's backing allocation. Call after
// AsyncJoinHandles.Wait returns.
func (m *AsyncMessenger) Close() error {
	return m.ring.Close()
}

// AsyncJoinHandles lets a caller wait for every AsyncMessenger worker to
// finish, the errgroup-backed analogue of JoinHandles.
type AsyncJoinHandles struct {
	group  *errgroup.Group
	logger *zap.Logger
}

// Wait blocks until every worker goroutine has returned, surfacing the
// first real error or any recovered panic.
func (h *AsyncJoinHandles) Wait() error {
	return h.group.Wait()
}
