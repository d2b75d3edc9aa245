// Package config loads the hoard command's configuration file.
//
// The file is YAML (.yaml, .yml) or JSON with comments (.json, .jsonc) and
// describes the transform chain and extra extension mappings:
//
//	compression: zstd
//	checksum:
//	  enabled: true
//	encryption:
//	  algorithm: xchacha20-poly1305
//	  key_file: ~/.config/hoard/key
//	extensions:
//	  .conf: yaml
//
// Transforms always run compression, then checksum, then encryption on
// write.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/zoobzio/hoard"
	"github.com/zoobzio/hoard/checksum"
	"github.com/zoobzio/hoard/compress"
	"github.com/zoobzio/hoard/defaults"
	"github.com/zoobzio/hoard/encrypt"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable consulted when no path is given.
const EnvConfig = "HOARD_CONFIG"

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// File is the on-disk configuration.
type File struct {
	Compression string            `yaml:"compression" json:"compression"`
	Checksum    Checksum          `yaml:"checksum" json:"checksum"`
	Encryption  *Encryption       `yaml:"encryption" json:"encryption"`
	Extensions  map[string]string `yaml:"extensions" json:"extensions"`
}

// Checksum configures the BLAKE3 integrity trailer.
type Checksum struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	KeyFile string `yaml:"key_file" json:"key_file"`
}

// Encryption configures the cryptographic transform.
type Encryption struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"`

	// Exactly one key source: a raw key file, or a passphrase read from the
	// named environment variable and stretched with Argon2id.
	KeyFile       string  `yaml:"key_file" json:"key_file"`
	PassphraseEnv string  `yaml:"passphrase_env" json:"passphrase_env"`
	Salt          string  `yaml:"salt" json:"salt"`
	Argon2        *Argon2 `yaml:"argon2" json:"argon2"`

	// Recipients are extra age public keys; only used with the age
	// algorithm.
	Recipients []string `yaml:"recipients" json:"recipients"`
}

// Argon2 overrides the default key derivation cost.
type Argon2 struct {
	Time    uint32 `yaml:"time" json:"time"`
	Memory  uint32 `yaml:"memory" json:"memory"`
	Threads uint8  `yaml:"threads" json:"threads"`
}

// Path returns explicit if set, otherwise the value of EnvConfig.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvConfig)
}

// Load reads and parses the file at path. An empty path yields an empty
// configuration.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext. Unknown fields are
// rejected.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &f, nil
}

// Options converts the configuration into store options, transforms first.
func (f *File) Options() ([]hoard.Option, error) {
	var opts []hoard.Option

	if f.Compression != "" {
		t, err := compress.ByName(f.Compression)
		if err != nil {
			return nil, err
		}
		opts = append(opts, hoard.WithTransform(t))
	}

	if f.Checksum.Enabled {
		t, err := f.Checksum.transform()
		if err != nil {
			return nil, err
		}
		opts = append(opts, hoard.WithTransform(t))
	}

	if f.Encryption != nil {
		t, err := f.Encryption.transform()
		if err != nil {
			return nil, err
		}
		opts = append(opts, hoard.WithTransform(t))
	}

	for _, ext := range slices.Sorted(maps.Keys(f.Extensions)) {
		name := f.Extensions[ext]
		codec, err := defaults.CodecByName(name)
		if err != nil {
			return nil, fmt.Errorf("extension %s: %w", ext, err)
		}
		opts = append(opts, hoard.WithExtension(codec, ext))
	}
	return opts, nil
}

func (c Checksum) transform() (hoard.Transform, error) {
	if c.KeyFile == "" {
		return checksum.New(), nil
	}
	key, err := os.ReadFile(expandHome(c.KeyFile))
	if err != nil {
		return nil, fmt.Errorf("reading checksum key: %w", err)
	}
	return checksum.NewKeyed(key)
}

func (e *Encryption) transform() (hoard.Transform, error) {
	keys, err := e.keySource()
	if err != nil {
		return nil, err
	}
	if e.Algorithm == encrypt.NameAge {
		return encrypt.Age(keys, e.Recipients...)
	}
	if len(e.Recipients) > 0 {
		return nil, fmt.Errorf("%w: recipients are only valid with the age algorithm", hoard.ErrInvalidArgument)
	}
	return encrypt.ByName(e.Algorithm, keys)
}

func (e *Encryption) keySource() (encrypt.KeySource, error) {
	switch {
	case e.KeyFile != "" && e.PassphraseEnv != "":
		return nil, fmt.Errorf("%w: key_file and passphrase_env are mutually exclusive", hoard.ErrInvalidArgument)
	case e.KeyFile != "":
		return encrypt.KeyFile(expandHome(e.KeyFile)), nil
	case e.PassphraseEnv != "":
		if e.Algorithm == encrypt.NameAge {
			return nil, fmt.Errorf("%w: the age algorithm needs an identity key_file", hoard.ErrInvalidArgument)
		}
		passphrase, ok := os.LookupEnv(e.PassphraseEnv)
		if !ok || passphrase == "" {
			return nil, fmt.Errorf("%w: environment variable %s is not set", hoard.ErrInvalidArgument, e.PassphraseEnv)
		}
		if e.Salt == "" {
			return nil, fmt.Errorf("%w: passphrase keys need a salt", hoard.ErrInvalidArgument)
		}
		return encrypt.PassphraseKey([]byte(passphrase), []byte(e.Salt), e.argon2Params()), nil
	default:
		return nil, fmt.Errorf("%w: encryption needs key_file or passphrase_env", hoard.ErrInvalidArgument)
	}
}

func (e *Encryption) argon2Params() encrypt.Argon2Params {
	params := encrypt.DefaultArgon2Params()
	if e.Argon2 == nil {
		return params
	}
	if e.Argon2.Time > 0 {
		params.Time = e.Argon2.Time
	}
	if e.Argon2.Memory > 0 {
		params.Memory = e.Argon2.Memory
	}
	if e.Argon2.Threads > 0 {
		params.Threads = e.Argon2.Threads
	}
	return params
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
