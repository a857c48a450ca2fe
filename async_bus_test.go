package ringbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAsyncBusReadWaitsForWrite(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	bus := NewAsyncBus(NewBaseBus(ring))

	resultCh := make(chan error, 1)
	go func() {
		_, _, err := bus.AsyncRead(context.Background(), 0)
		resultCh <- err
	}()

	select {
	case <-resultCh:
		t.Fatal("AsyncRead returned before any write was published")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, bus.Write(1, 1, []byte{9}))

	select {
	case err := <-resultCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("AsyncRead never woke after write")
	}
}

// TestAsyncBusRegisterBeforeCheckNoMissedWakeup guards the resolved missed-
// wakeup race by driving a write into the exact window between a waiter's
// empty-check and its wait on the channel, via the afterEmptyCheck test
// hook, rather than hoping goroutine scheduling lands it there. A buggy
// implementation that captures the wake channel *after* the empty check
// (rather than before) would rotate in a fresh, unclosed channel once the
// injected write runs, and the waiter would then miss the already-
// published frame until the fallback timeout fires.
func TestAsyncBusRegisterBeforeCheckNoMissedWakeup(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	bus := NewAsyncBus(NewBaseBus(ring))

	defer func() { afterEmptyCheck = func() {} }()

	for i := 0; i < 50; i++ {
		fired := false
		afterEmptyCheck = func() {
			if fired {
				return
			}
			fired = true
			require.NoError(t, bus.Write(1, 1, []byte{byte(i)}))
		}

		resultCh := make(chan error, 1)
		go func() {
			_, _, err := bus.AsyncRead(context.Background(), uint64(i*FrameSize(1)))
			resultCh <- err
		}()

		select {
		case err := <-resultCh:
			require.NoError(t, err)
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("missed wakeup on iteration %d", i)
		}
	}
}

func TestAsyncBusContextCancellation(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	bus := NewAsyncBus(NewBaseBus(ring))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err = bus.AsyncRead(ctx, 0)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsyncBusStopReturnsErrStopped(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	bus := NewAsyncBus(NewBaseBus(ring))

	resultCh := make(chan error, 1)
	go func() {
		_, _, err := bus.AsyncRead(context.Background(), 0)
		resultCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	bus.Stop()

	select {
	case err := <-resultCh:
		require.ErrorIs(t, err, ErrStopped)
	case <-time.After(time.Second):
		t.Fatal("AsyncRead never woke after stop")
	}
}
