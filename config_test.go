package ringbus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity_bytes: 8192\nworkers:\n  - a\n  - b\n"), 0o644))

	cfg, err := LoadFileConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8192, cfg.CapacityBytes)
	require.Equal(t, []string{"a", "b"}, cfg.Workers)
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig()
	require.Greater(t, cfg.CapacityBytes, 0)
	require.NotEmpty(t, cfg.Workers)
}
