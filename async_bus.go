package ringbus

import (
	"context"
	"sync"
)

// AsyncBus wraps a MessageBus for cooperative, non-blocking-thread waiting,
// the Go analogue of async_message_bus.rs's tokio::sync::Notify wrapper.
// Go has no direct equivalent of Notify, so this uses the standard
// register-before-check pattern: a waiter captures the current generation's
// wake channel, re-checks for data, and only then waits on that channel.
// Because the channel is captured before the re-check, a write that lands
// between the check and the wait still closes the channel the waiter is
// already holding, so a wake is never missed.
type AsyncBus struct {
	inner MessageBus

	mu     sync.Mutex
	wakeCh chan struct{}
	stop   bool
}

// afterEmptyCheck is overridden by tests to inject a race; see AsyncRead.
var afterEmptyCheck = func() {}

// NewAsyncBus wraps inner for use with AsyncRead.
func NewAsyncBus(inner MessageBus) *AsyncBus {
	return &AsyncBus{inner: inner, wakeCh: make(chan struct{})}
}

// Write forwards to the inner bus, then wakes every current waiter by
// closing the generation's channel and rotating in a fresh one.
func (b *AsyncBus) Write(source, messageID uint16, payload []byte) error {
	if err := b.inner.Write(source, messageID, payload); err != nil {
		return err
	}
	b.wake()
	return nil
}

func (b *AsyncBus) wake() {
	b.mu.Lock()
	old := b.wakeCh
	b.wakeCh = make(chan struct{})
	b.mu.Unlock()
	close(old)
}

// Read satisfies Reader by delegating directly, without waiting.
func (b *AsyncBus) Read(position uint64) (Header, []byte, bool) {
	return b.inner.Read(position)
}

// Stop wakes every waiter permanently and marks the bus stopped; subsequent
// AsyncRead calls return ErrStopped instead of blocking once no frame is
// pending.
func (b *AsyncBus) Stop() {
	b.mu.Lock()
	b.stop = true
	b.mu.Unlock()
	b.wake()
	b.inner.Stop()
}

// AsyncRead waits for a frame to appear at position, for ctx to be
// cancelled, or for Stop to be called with nothing pending.
func (b *AsyncBus) AsyncRead(ctx context.Context, position uint64) (Header, []byte, error) {
	for {
		// Register before checking: capture the current generation's wake
		// channel (and the stop flag) before looking for data, so a write
		// that lands right after our check still closes the channel we're
		// about to select on. Checking first and registering after would
		// let such a write rotate in a fresh, unclosed channel underneath
		// us, and the wake would be missed until the next write or ctx
		// cancellation.
		b.mu.Lock()
		stopped := b.stop
		ch := b.wakeCh
		b.mu.Unlock()

		if header, payload, ok := b.inner.Read(position); ok {
			return header, payload, nil
		}
		if stopped {
			return Header{}, nil, ErrStopped
		}

		// No-op outside tests. Lets a test deterministically land a write
		// in the exact window between this empty check and the select
		// below, instead of relying on goroutine scheduling luck to
		// exercise it.
		afterEmptyCheck()

		select {
		case <-ch:
			continue
		case <-ctx.Done():
			return Header{}, nil, ctx.Err()
		}
	}
}
