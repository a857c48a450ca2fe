//go:build !linux && !darwin

package ringbus

// mmapRegion falls back to a plain zero-initialized slice on platforms
// without an anonymous-mmap syscall wired up via golang.org/x/sys/unix.
// There is no third-party library in the retrieved pack offering a
// portable anonymous-mmap abstraction, so this fallback is stdlib-only;
// see DESIGN.md.
type mmapRegion struct {
	data []byte
}

func newMmapRegion(size int) (*mmapRegion, error) {
	return &mmapRegion{data: make([]byte, size)}, nil
}

func (m *mmapRegion) Bytes() []byte { return m.data }

func (m *mmapRegion) Close() error {
	m.data = nil
	return nil
}
