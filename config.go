package ringbus

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk declaration consumed by cmd/ringbusctl, mirroring
// the coordinator-style yaml config structs in the broader example corpus:
// a flat struct with yaml tags, no nesting beyond what the tool actually
// needs.
type FileConfig struct {
	CapacityBytes int      `yaml:"capacity_bytes"`
	Workers       []string `yaml:"workers"`
}

// DefaultFileConfig returns the configuration ringbusctl falls back to when
// no file is given.
func DefaultFileConfig() FileConfig {
	return FileConfig{CapacityBytes: 1 << 20, Workers: []string{"worker-a", "worker-b"}}
}

// LoadFileConfig reads and decodes a FileConfig from path.
func LoadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}
