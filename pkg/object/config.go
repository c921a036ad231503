package object

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ctsys/cts/pkg/compress"
)

// DefaultMaxObjectSize is the decompression ceiling applied to store reads
// when no configuration overrides it.
const DefaultMaxObjectSize = 64 << 20 // 64 MiB

// StoreConfig holds store-local settings.
type StoreConfig struct {
	// CompressionLevel is a preset name: none, fast, default, or best.
	CompressionLevel string `toml:"compression_level"`

	// MaxObjectSize bounds the decompressed size of any object read back
	// from disk, in bytes.
	MaxObjectSize int `toml:"max_object_size"`
}

// DefaultStoreConfig returns the settings used when no config file exists.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		CompressionLevel: compress.LevelName(compress.LevelDefault),
		MaxObjectSize:    DefaultMaxObjectSize,
	}
}

// LoadConfigFile reads a TOML store config. A missing file yields the
// defaults; a present file must parse and validate.
func LoadConfigFile(path string) (StoreConfig, error) {
	cfg := DefaultStoreConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultStoreConfig(), nil
		}
		return StoreConfig{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return StoreConfig{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}
	if _, err := compress.ParseLevel(cfg.CompressionLevel); err != nil {
		return StoreConfig{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.MaxObjectSize <= 0 {
		return StoreConfig{}, fmt.Errorf("load config: max_object_size must be positive, got %d", cfg.MaxObjectSize)
	}
	return cfg, nil
}

// WriteConfigFile atomically writes a TOML store config via temp + rename.
func WriteConfigFile(path string, cfg StoreConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}
