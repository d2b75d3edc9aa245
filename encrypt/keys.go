package encrypt

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"
)

// KeySource supplies key material. Each call returns a new buffer owned by
// the caller, who must Destroy it.
type KeySource interface {
	Key(ctx context.Context) (*memguard.LockedBuffer, error)
}

// KeySourceFunc adapts a function to KeySource.
type KeySourceFunc func(ctx context.Context) (*memguard.LockedBuffer, error)

// Key calls f.
func (f KeySourceFunc) Key(ctx context.Context) (*memguard.LockedBuffer, error) {
	return f(ctx)
}

type enclaveKey struct {
	enclave *memguard.Enclave
}

// StaticKey seals a copy of key in an encrypted enclave. The caller's slice
// is left untouched.
func StaticKey(key []byte) KeySource {
	return &enclaveKey{enclave: memguard.NewEnclave(append([]byte(nil), key...))}
}

func (k *enclaveKey) Key(_ context.Context) (*memguard.LockedBuffer, error) {
	if k.enclave == nil {
		return nil, fmt.Errorf("%w: key is empty", ErrInvalidKeySize)
	}
	buf, err := k.enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("opening key enclave: %w", err)
	}
	return buf, nil
}

// KeyFile reads key material from path on every call. The file content is
// used verbatim.
func KeyFile(path string) KeySource {
	return KeySourceFunc(func(ctx context.Context) (*memguard.LockedBuffer, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: key file %s is empty", ErrInvalidKeySize, path)
		}
		return memguard.NewBufferFromBytes(data), nil
	})
}

// Argon2Params configures Argon2id key derivation.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id parameters with
// a 32-byte output, suitable for every cipher in this package.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
	}
}

type passphraseKey struct {
	passphrase *memguard.Enclave
	salt       []byte
	params     Argon2Params

	once    sync.Once
	derived *memguard.Enclave
	err     error
}

// PassphraseKey derives a key from passphrase and salt with Argon2id. The
// derivation runs once, on first use; the result is kept in an enclave.
// The same passphrase, salt and params always yield the same key, so the
// salt must be stored alongside whatever configuration names the
// passphrase.
func PassphraseKey(passphrase, salt []byte, params Argon2Params) KeySource {
	return &passphraseKey{
		passphrase: memguard.NewEnclave(append([]byte(nil), passphrase...)),
		salt:       append([]byte(nil), salt...),
		params:     params,
	}
}

func (k *passphraseKey) Key(ctx context.Context) (*memguard.LockedBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k.once.Do(k.derive)
	if k.err != nil {
		return nil, k.err
	}
	buf, err := k.derived.Open()
	if err != nil {
		return nil, fmt.Errorf("opening derived key enclave: %w", err)
	}
	return buf, nil
}

func (k *passphraseKey) derive() {
	switch {
	case k.passphrase == nil:
		k.err = fmt.Errorf("%w: passphrase is empty", ErrInvalidKeySize)
		return
	case len(k.salt) < 8:
		k.err = fmt.Errorf("%w: salt must be at least 8 bytes, got %d", ErrInvalidKeySize, len(k.salt))
		return
	case k.params.KeyLen == 0:
		k.err = fmt.Errorf("%w: argon2 key length is zero", ErrInvalidKeySize)
		return
	}

	pass, err := k.passphrase.Open()
	if err != nil {
		k.err = fmt.Errorf("opening passphrase enclave: %w", err)
		return
	}
	defer pass.Destroy()

	key := argon2.IDKey(pass.Bytes(), k.salt, k.params.Time, k.params.Memory, k.params.Threads, k.params.KeyLen)
	k.derived = memguard.NewEnclave(key)
}
