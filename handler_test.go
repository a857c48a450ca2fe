package ringbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedMsg struct {
	A uint32
	B uint32
}

func (m fixedMsg) Size() int { return 8 }
func (m fixedMsg) WriteInto(buf []byte) {
	putU32(buf[0:4], m.A)
	putU32(buf[4:8], m.B)
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func TestSendEncodedRoundTrip(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	require.NoError(t, SendEncoded(ring, 1, 2, fixedMsg{A: 7, B: 9}))

	header, payload, ok := ring.Read(0)
	require.True(t, ok)
	require.Equal(t, uint16(1), header.Source)
	require.Equal(t, uint16(2), header.MessageID)
	require.Equal(t, byte(7), payload[0])
	require.Equal(t, byte(9), payload[4])
}

type zeroCopyMsg struct {
	Val uint32
}

func TestSendZeroCopyAndCastMessage(t *testing.T) {
	ring, err := NewRing(4096)
	require.NoError(t, err)
	defer ring.Close()

	require.NoError(t, SendZeroCopy[zeroCopyMsg](ring, 1, 2, func(m *zeroCopyMsg) {
		m.Val = 123
	}))

	_, payload, ok := ring.Read(0)
	require.True(t, ok)
	got := CastMessage[zeroCopyMsg](payload)
	require.Equal(t, uint32(123), got.Val)
}

func TestNoopHandlerMethodsDoNothing(t *testing.T) {
	var h NoopHandler
	require.NotPanics(t, func() {
		h.OnStart(nil)
		h.OnLoop(nil)
		h.OnStop()
	})
}
