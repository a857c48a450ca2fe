package ringbus

import "go.uber.org/zap"

// ringConfig collects the tunables NewMessenger accepts via Option. Kept
// unexported; callers only ever see the Option constructors, matching
// framer's options.go split between the exported Option type and an
// unexported config struct.
type ringConfig struct {
	capacity int
	logger   *zap.Logger
}

func defaultRingConfig() ringConfig {
	return ringConfig{
		capacity: 1 << 20,
		logger:   zap.NewNop(),
	}
}

// Option configures a Messenger at construction time.
type Option func(*ringConfig)

// WithCapacity sets the ring's backing allocation size in bytes. It must be
// a power of two; NewMessenger returns ErrNotPowerOfTwo otherwise.
func WithCapacity(bytes int) Option {
	return func(c *ringConfig) { c.capacity = bytes }
}

// WithLogger attaches a zap logger the supervisor and its workers use for
// lifecycle events. The ring's hot path never logs regardless.
func WithLogger(l *zap.Logger) Option {
	return func(c *ringConfig) { c.logger = l }
}
