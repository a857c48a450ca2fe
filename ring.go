package ringbus

import (
	"errors"
	"sync/atomic"
)

// ErrTooLarge is returned by Write when a frame, once header-aligned, would
// not fit inside the ring's addressable window.
var ErrTooLarge = errors.New("ringbus: frame larger than wrap window")

// ErrNotPowerOfTwo is returned by NewRing when the requested capacity isn't
// a power of two, which the wrap-window arithmetic below depends on.
var ErrNotPowerOfTwo = errors.New("ringbus: capacity must be a power of two")

// Ring is the lock-free multi-producer/multi-consumer framed circular
// buffer every Bus adapter sits on top of. A Write reserves space with a
// single atomic fetch-add, so concurrent writers never block each other's
// reservation; readers only ever observe a frame once its bytes are fully
// written, enforced by a CAS-published read head.
//
// Only half of the backing mapping (the "wrap window") is ever addressed by
// a position; the other half exists as slack so a frame starting near the
// end of the window is still written contiguously instead of being split
// across the wrap. Nothing stops a writer from overwriting frames a reader
// has not yet consumed: a reader more than half the capacity behind the
// writers sees torn, overwritten bytes.
type Ring struct {
	mem       *mmapRegion
	wrapSize  uint64
	writeHead atomic.Uint64
	readHead  atomic.Uint64
}

// NewRing allocates a ring backed by an anonymous mapping of the given
// capacity. capacity must be a power of two; half of it is the addressable
// wrap window.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	mem, err := newMmapRegion(capacity)
	if err != nil {
		return nil, err
	}
	return &Ring{mem: mem, wrapSize: uint64(capacity / 2)}, nil
}

// Close releases the backing mapping. The Ring must not be used afterward.
func (r *Ring) Close() error {
	return r.mem.Close()
}

// Write reserves len(payload) bytes (rounded up to word alignment) for a
// frame from handler source carrying message messageID, copies payload in,
// and publishes the frame for readers. Concurrent writers each get a
// disjoint reservation via fetch-add; the read head only advances once every
// byte of a frame is in place, so a slow writer never lets a reader observe
// a gap.
func (r *Ring) Write(source, messageID uint16, payload []byte) error {
	alignedSize := AlignUp(len(payload))
	frame := alignedHeaderSize + alignedSize
	if uint64(frame) > r.wrapSize {
		return ErrTooLarge
	}

	position := r.writeHead.Add(uint64(frame)) - uint64(frame)
	wrapped := position % r.wrapSize

	buf := r.mem.Bytes()
	clear(buf[wrapped : wrapped+uint64(frame)])
	putHeader(buf[wrapped:], Header{Source: source, MessageID: messageID, Size: uint16(alignedSize)})
	copy(buf[wrapped+uint64(alignedHeaderSize):], payload)

	// Publish in reservation order: spin until every writer ahead of us
	// (lower position) has already advanced the read head up to our position.
	for {
		cur := r.readHead.Load()
		if cur != position {
			continue
		}
		if r.readHead.CompareAndSwap(cur, position+uint64(frame)) {
			return nil
		}
	}
}

// Read returns the frame at position, or ok=false if no frame has been
// published there yet. Callers advance position by the frame's total size
// (alignedHeaderSize + int(header.Size)) to read the next frame.
func (r *Ring) Read(position uint64) (header Header, payload []byte, ok bool) {
	readHeadPosition := r.readHead.Load()
	if position >= readHeadPosition {
		return Header{}, nil, false
	}

	wrapped := position % r.wrapSize
	buf := r.mem.Bytes()
	header = getHeader(buf[wrapped:])
	start := wrapped + uint64(alignedHeaderSize)
	payload = buf[start : start+uint64(header.Size)]
	return header, payload, true
}

// FrameSize returns the total on-wire size (header + aligned payload) for a
// frame carrying a payload of n bytes, i.e. how far a reader should advance
// its position after consuming such a frame.
func FrameSize(n int) int {
	return alignedHeaderSize + AlignUp(n)
}
