package ringbus

import "unsafe"

// Header is the fixed framing record written ahead of every message payload
// in a Ring. It is packed little-endian, matching the wire layout a zero-copy
// reader expects: source (2) | messageID (2) | size (2).
type Header struct {
	Source    uint16
	MessageID uint16
	Size      uint16
}

const headerSize = int(unsafe.Sizeof(Header{}))

// wordSize is the alignment granularity frames are padded to, matching
// size_of::<usize>() in the original implementation.
const wordSize = int(unsafe.Sizeof(uintptr(0)))

// alignedHeaderSize is the header size rounded up to a word boundary, so
// payloads always start word-aligned regardless of header layout changes.
var alignedHeaderSize = AlignUp(headerSize)

// AlignUp rounds n up to the next multiple of wordSize. AlignUp(0) is 0.
func AlignUp(n int) int {
	if n == 0 {
		return 0
	}
	return ((n - 1) / wordSize + 1) * wordSize
}

func putHeader(buf []byte, h Header) {
	putU16(buf[0:2], h.Source)
	putU16(buf[2:4], h.MessageID)
	putU16(buf[4:6], h.Size)
}

func getHeader(buf []byte) Header {
	return Header{
		Source:    getU16(buf[0:2]),
		MessageID: getU16(buf[2:4]),
		Size:      getU16(buf[4:6]),
	}
}

func putU16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func getU16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
