package hoard

import "path/filepath"

// Built-in extensions resolved before the custom table.
const (
	ExtJSON   = ".json"
	ExtYAML   = ".yaml"
	ExtBinary = ".bin"
)

// Resolve returns the codec for path. It never fails: built-in extensions
// are checked first, then custom mappings, then the binary codec.
func (c *Config) Resolve(path string) Codec {
	ext := filepath.Ext(path)
	switch ext {
	case ExtJSON:
		return c.json
	case ExtYAML:
		return c.yaml
	case ExtBinary, "":
		return c.binary
	}
	if codec, ok := c.extensions.lookup(ext); ok {
		return codec
	}
	return c.binary
}
