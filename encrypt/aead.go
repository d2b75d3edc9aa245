package encrypt

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/zoobzio/hoard"
	"golang.org/x/crypto/chacha20poly1305"
)

// blobVersion leads every AEAD ciphertext and is authenticated as
// additional data, so a tampered version byte fails to open.
const blobVersion byte = 0x01

// aeadTransform seals payloads as
//
//	[version: 1 byte][nonce][ciphertext+tag]
type aeadTransform struct {
	name    string
	keys    KeySource
	newAEAD func(key []byte) (cipher.AEAD, error)
}

// AESGCM returns an AES-GCM transform. Keys must be 16, 24, or 32 bytes for
// AES-128, AES-192, or AES-256.
func AESGCM(keys KeySource) hoard.Transform {
	return &aeadTransform{name: NameAESGCM, keys: keys, newAEAD: newGCM}
}

// XChaCha20Poly1305 returns an XChaCha20-Poly1305 transform. Keys must be 32
// bytes. The 24-byte random nonce makes collisions negligible however many
// files share a key.
func XChaCha20Poly1305(keys KeySource) hoard.Transform {
	return &aeadTransform{name: NameXChaCha, keys: keys, newAEAD: newXChaCha}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func newXChaCha(key []byte) (cipher.AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKeySize, chacha20poly1305.KeySize, len(key))
	}
	return chacha20poly1305.NewX(key)
}

func (t *aeadTransform) Name() string     { return t.name }
func (t *aeadTransform) Kind() hoard.Kind { return hoard.KindCryptographic }

func (t *aeadTransform) AfterSerialize(ctx context.Context, plaintext []byte) ([]byte, error) {
	aead, err := t.cipher(ctx)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}

	out := make([]byte, 1+len(nonce), 1+len(nonce)+len(plaintext)+aead.Overhead())
	out[0] = blobVersion
	copy(out[1:], nonce)
	return aead.Seal(out, nonce, plaintext, out[:1]), nil
}

func (t *aeadTransform) BeforeDeserialize(ctx context.Context, blob []byte) ([]byte, error) {
	aead, err := t.cipher(ctx)
	if err != nil {
		return nil, err
	}

	nonceSize := aead.NonceSize()
	if len(blob) < 1+nonceSize+aead.Overhead() {
		return nil, ErrCiphertextShort
	}
	if blob[0] != blobVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, blob[0])
	}

	nonce, ciphertext := blob[1:1+nonceSize], blob[1+nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, blob[:1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// cipher builds the AEAD from a freshly opened key and destroys the key
// buffer before returning.
func (t *aeadTransform) cipher(ctx context.Context) (cipher.AEAD, error) {
	key, err := t.keys.Key(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining %s key: %w", t.name, err)
	}
	defer key.Destroy()
	return t.newAEAD(key.Bytes())
}
