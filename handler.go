package ringbus

import "unsafe"

// Handler is the lifecycle contract every worker-owned handler implements.
// A handler's actual message reactions are registered separately with a
// Router (see WorkerSpec.Route), since Go has no way to key an interface
// method by the concrete message type the way Handle<M> does in the
// original trait design.
type Handler interface {
	OnStart(w Writer)
	OnLoop(w Writer)
	OnStop()
}

// NoopHandler gives every lifecycle hook a no-op body, so a handler only
// overrides the ones it cares about, the same trade Go makes wherever the
// original traits had default methods.
type NoopHandler struct{}

func (NoopHandler) OnStart(Writer) {}
func (NoopHandler) OnLoop(Writer)  {}
func (NoopHandler) OnStop()        {}

// Encodable is implemented by messages sent with SendEncoded: Size reports
// the wire length before any alignment padding, WriteInto serializes into a
// buffer of exactly that length.
type Encodable interface {
	Size() int
	WriteInto(buf []byte)
}

// SendEncoded serializes m via its Encodable methods and publishes it as
// coming from sourceID, matching traits::extended's Sender blanket impl.
func SendEncoded(w Writer, sourceID uint16, messageID uint16, m Encodable) error {
	buf := make([]byte, m.Size())
	m.WriteInto(buf)
	return w.Write(sourceID, messageID, buf)
}

// SendZeroCopy lets fill populate a trivially-copyable M and publishes the
// raw bytes of that value, skipping the encoding step SendEncoded needs.
// This mirrors
// traits::zero_copy's Sender, which hands the callback a raw pointer into
// the ring itself; since a Ring's Write already copies from a caller-owned
// slice rather than handing back ring memory, fill populates a local value
// of type M which is then reinterpreted as bytes for the copy.
func SendZeroCopy[M any](w Writer, sourceID uint16, messageID uint16, fill func(*M)) error {
	var m M
	fill(&m)
	size := int(unsafe.Sizeof(m))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&m)), size)
	return w.Write(sourceID, messageID, buf)
}

// CastMessage reinterprets a frame payload as *M without copying, for
// handlers that registered a zero-copy message type. The payload slice
// must have been produced by SendZeroCopy (or an equivalently laid out
// writer); the caller is responsible for matching messageID to M.
func CastMessage[M any](payload []byte) *M {
	return (*M)(unsafe.Pointer(unsafe.SliceData(payload)))
}
