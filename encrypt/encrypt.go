// Package encrypt provides cryptographic transforms for hoard.
//
// Every transform here is hoard.KindCryptographic, so it only runs when a
// value is saved with SaveOptions.Encrypt and only reverses files that carry
// the storage signature.
//
// Key material is never held in ordinary heap memory between calls. A
// KeySource hands out a fresh *memguard.LockedBuffer per operation and the
// transform destroys it as soon as the cipher is constructed.
//
//	keys := encrypt.StaticKey(key)
//	cfg, err := hoard.NewConfig(
//		defaults.Codecs(),
//		hoard.WithTransform(compress.Zstd()),
//		hoard.WithTransform(encrypt.XChaCha20Poly1305(keys)),
//	)
package encrypt

import (
	"errors"
	"fmt"

	"github.com/zoobzio/hoard"
)

// Encryption errors.
var (
	ErrInvalidKeySize     = errors.New("invalid key size")
	ErrCiphertextShort    = errors.New("ciphertext too short")
	ErrDecryptionFailed   = errors.New("decryption failed")
	ErrUnsupportedVersion = errors.New("unsupported ciphertext version")
)

// Algorithm names accepted by ByName.
const (
	NameAESGCM   = "aes-gcm"
	NameXChaCha  = "xchacha20-poly1305"
	NameEnvelope = "envelope"
	NameAge      = "age"
)

// ByName returns the transform for an algorithm name, drawing keys from
// keys. For NameAge the key source must yield an age X25519 identity.
func ByName(name string, keys KeySource) (hoard.Transform, error) {
	if keys == nil {
		return nil, fmt.Errorf("%w: key source is required", hoard.ErrInvalidArgument)
	}
	switch name {
	case NameAESGCM:
		return AESGCM(keys), nil
	case NameXChaCha:
		return XChaCha20Poly1305(keys), nil
	case NameEnvelope:
		return Envelope(keys), nil
	case NameAge:
		return Age(keys)
	default:
		return nil, fmt.Errorf("%w: unknown encryption algorithm %q", hoard.ErrInvalidArgument, name)
	}
}
