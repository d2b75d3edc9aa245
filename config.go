package hoard

import (
	"fmt"
	"strings"
)

// Config is the immutable set of codecs and transforms a Store runs with.
// Build one with NewConfig at startup and share it; nothing mutates it
// afterwards.
type Config struct {
	json   Codec
	yaml   Codec
	binary Codec

	extensions *extensionTable
	transforms []Transform
}

// Option configures a Config under construction.
type Option func(*Config) error

// WithCodecs sets the codecs behind the built-in extensions:
// .json, .yaml, and .bin / no extension (binary).
// The binary codec is also the fallback for unmapped extensions.
func WithCodecs(json, yaml, binary Codec) Option {
	return func(c *Config) error {
		if json == nil || yaml == nil || binary == nil {
			return fmt.Errorf("%w: built-in codecs must not be nil", ErrInvalidArgument)
		}
		c.json, c.yaml, c.binary = json, yaml, binary
		return nil
	}
}

// WithExtension maps one or more extensions to codec. Extensions are
// matched exactly, case included; a missing leading dot is added. The first
// mapping registered for an extension wins.
func WithExtension(codec Codec, extensions ...string) Option {
	return func(c *Config) error {
		if codec == nil {
			return fmt.Errorf("%w: extension codec must not be nil", ErrInvalidArgument)
		}
		if len(extensions) == 0 {
			return fmt.Errorf("%w: at least one extension is required", ErrInvalidArgument)
		}
		for _, ext := range extensions {
			ext = normalizeExtension(ext)
			if ext == "" {
				return fmt.Errorf("%w: extension must not be empty", ErrInvalidArgument)
			}
			c.extensions.add(ext, codec)
		}
		return nil
	}
}

// WithTransform appends t to the transform chain. Order of WithTransform
// calls is the order transforms run on write.
func WithTransform(t Transform) Option {
	return func(c *Config) error {
		if t == nil {
			return fmt.Errorf("%w: transform must not be nil", ErrInvalidArgument)
		}
		if !IsValidKind(t.Kind()) {
			return fmt.Errorf("%w: transform %s has unknown kind %q", ErrInvalidArgument, t.Name(), t.Kind())
		}
		c.transforms = append(c.transforms, t)
		return nil
	}
}

// WithTransforms appends each transform in order.
func WithTransforms(ts ...Transform) Option {
	return func(c *Config) error {
		for _, t := range ts {
			if err := WithTransform(t)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// NewConfig applies opts and validates the result. WithCodecs is required.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{extensions: newExtensionTable()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.json == nil || c.yaml == nil || c.binary == nil {
		return nil, fmt.Errorf("%w: built-in codecs are not configured (use WithCodecs)", ErrInvalidArgument)
	}
	return c, nil
}

// Transforms returns the configured transforms in registration order.
func (c *Config) Transforms() []Transform {
	out := make([]Transform, len(c.transforms))
	copy(out, c.transforms)
	return out
}

// Extensions returns the custom-mapped extensions in registration order.
func (c *Config) Extensions() []string {
	return c.extensions.extensions()
}

// CanEncrypt reports whether at least one cryptographic transform is
// configured.
func (c *Config) CanEncrypt() bool {
	for _, t := range c.transforms {
		if t.Kind() == KindCryptographic {
			return true
		}
	}
	return false
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
