//go:build linux || darwin

package ringbus

import "golang.org/x/sys/unix"

// mmapRegion is an anonymous, page-aligned, zero-initialized read/write
// mapping. It is freed exactly once via Close.
type mmapRegion struct {
	data []byte
}

func newMmapRegion(size int) (*mmapRegion, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &mmapRegion{data: data}, nil
}

func (m *mmapRegion) Bytes() []byte { return m.data }

func (m *mmapRegion) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}
