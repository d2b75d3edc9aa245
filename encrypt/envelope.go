package encrypt

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"github.com/zoobzio/hoard"
)

// dataKeySize is the length of the per-file AES-256 data key.
const dataKeySize = 32

// envelopeTransform implements envelope encryption. A random data key is
// generated per file, encrypted with the master key, and prepended to the
// ciphertext:
//
//	[2 bytes key len][nonce+encrypted data key][nonce+encrypted payload]
type envelopeTransform struct {
	keys KeySource
}

// Envelope returns an envelope encryption transform. The master key comes
// from keys and must be 16, 24, or 32 bytes. Rotating the master key only
// requires re-wrapping data keys, never re-encrypting payloads.
func Envelope(keys KeySource) hoard.Transform {
	return &envelopeTransform{keys: keys}
}

func (t *envelopeTransform) Name() string     { return NameEnvelope }
func (t *envelopeTransform) Kind() hoard.Kind { return hoard.KindCryptographic }

func (t *envelopeTransform) AfterSerialize(ctx context.Context, plaintext []byte) ([]byte, error) {
	master, err := t.master(ctx)
	if err != nil {
		return nil, err
	}

	dataKey := memguard.NewBufferRandom(dataKeySize)
	defer dataKey.Destroy()

	dataGCM, err := newGCM(dataKey.Bytes())
	if err != nil {
		return nil, err
	}
	encryptedData, err := seal(dataGCM, plaintext)
	if err != nil {
		return nil, err
	}
	encryptedKey, err := seal(master, dataKey.Bytes())
	if err != nil {
		return nil, err
	}

	if len(encryptedKey) > 65535 {
		return nil, errors.New("encrypted key exceeds maximum length")
	}
	result := make([]byte, 2+len(encryptedKey)+len(encryptedData))
	binary.BigEndian.PutUint16(result, uint16(len(encryptedKey))) // #nosec G115 -- bounds checked above
	copy(result[2:], encryptedKey)
	copy(result[2+len(encryptedKey):], encryptedData)
	return result, nil
}

func (t *envelopeTransform) BeforeDeserialize(ctx context.Context, blob []byte) ([]byte, error) {
	if len(blob) < 2 {
		return nil, ErrCiphertextShort
	}
	keyLen := int(binary.BigEndian.Uint16(blob))
	if len(blob) < 2+keyLen {
		return nil, ErrCiphertextShort
	}

	master, err := t.master(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := open(master, blob[2:2+keyLen])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt data key: %w", ErrDecryptionFailed, err)
	}
	dataKey := memguard.NewBufferFromBytes(raw)
	defer dataKey.Destroy()

	dataGCM, err := newGCM(dataKey.Bytes())
	if err != nil {
		return nil, err
	}
	plaintext, err := open(dataGCM, blob[2+keyLen:])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt data: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

func (t *envelopeTransform) master(ctx context.Context) (cipher.AEAD, error) {
	key, err := t.keys.Key(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining envelope master key: %w", err)
	}
	defer key.Destroy()
	return newGCM(key.Bytes())
}

// seal encrypts plaintext under a random nonce and prepends the nonce.
func seal(aead cipher.AEAD, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func open(aead cipher.AEAD, sealed []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, ErrCiphertextShort
	}
	return aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
}
