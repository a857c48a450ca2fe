package ringbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCondVarBusBlocksUntilWrite(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	bus := NewCondVarBus(NewBaseBus(ring))

	resultCh := make(chan bool, 1)
	go func() {
		_, _, ok := bus.Read(0)
		resultCh <- ok
	}()

	select {
	case <-resultCh:
		t.Fatal("read returned before any write was published")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, bus.Write(1, 1, []byte{9}))

	select {
	case ok := <-resultCh:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("read never woke after write")
	}
}

func TestCondVarBusStopWakesBlockedReader(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	bus := NewCondVarBus(NewBaseBus(ring))

	resultCh := make(chan bool, 1)
	go func() {
		_, _, ok := bus.Read(0)
		resultCh <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	bus.Stop()

	select {
	case ok := <-resultCh:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("read never woke after stop")
	}
}
