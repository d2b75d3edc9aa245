// Package checksum provides a BLAKE3 integrity transform for hoard.
//
// On write the transform appends a 32-byte BLAKE3 digest of the payload; on
// read it verifies and strips it. A keyed variant authenticates the payload
// with a 32-byte key instead of just detecting corruption.
package checksum

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
	"github.com/zoobzio/hoard"
)

// Name is the transform name reported in errors and events.
const Name = "blake3"

// Size is the length of the digest trailer.
const Size = 32

// KeySize is the required key length for NewKeyed.
const KeySize = 32

// Integrity errors.
var (
	ErrTruncated = errors.New("payload shorter than checksum trailer")
	ErrMismatch  = errors.New("checksum mismatch")
)

type blake3Transform struct {
	key []byte
}

// New returns an unkeyed BLAKE3 checksum transform.
func New() hoard.Transform {
	return &blake3Transform{}
}

// NewKeyed returns a keyed BLAKE3 transform. key must be KeySize bytes.
func NewKeyed(key []byte) (hoard.Transform, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: blake3 key must be %d bytes, got %d", hoard.ErrInvalidArgument, KeySize, len(key))
	}
	return &blake3Transform{key: append([]byte(nil), key...)}, nil
}

func (t *blake3Transform) Name() string     { return Name }
func (t *blake3Transform) Kind() hoard.Kind { return hoard.KindIntegrity }

func (t *blake3Transform) AfterSerialize(_ context.Context, data []byte) ([]byte, error) {
	sum, err := t.digest(data)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(data)+Size)
	out = append(out, data...)
	return append(out, sum...), nil
}

func (t *blake3Transform) BeforeDeserialize(_ context.Context, data []byte) ([]byte, error) {
	if len(data) < Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	payload, trailer := data[:len(data)-Size], data[len(data)-Size:]
	sum, err := t.digest(payload)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(sum, trailer) != 1 {
		return nil, ErrMismatch
	}
	return payload, nil
}

func (t *blake3Transform) digest(data []byte) ([]byte, error) {
	if t.key == nil {
		sum := blake3.Sum256(data)
		return sum[:], nil
	}
	hasher, err := blake3.NewKeyed(t.key)
	if err != nil {
		return nil, fmt.Errorf("blake3 keyed hash initialization failed: %w", err)
	}
	_, _ = hasher.Write(data)
	return hasher.Sum(nil), nil
}
