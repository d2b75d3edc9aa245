package encrypt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"github.com/zoobzio/hoard"
)

type ageTransform struct {
	identity   KeySource
	recipients []age.Recipient
}

// Age returns a transform that encrypts to the X25519 identity supplied by
// identity (an AGE-SECRET-KEY-1... string) plus any extra recipients
// (age1... public keys). Only the identity is needed to decrypt.
func Age(identity KeySource, recipients ...string) (hoard.Transform, error) {
	parsed := make([]age.Recipient, 0, len(recipients))
	for _, key := range recipients {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing recipient key %q: %w", hoard.ErrInvalidArgument, key, err)
		}
		parsed = append(parsed, recipient)
	}
	return &ageTransform{identity: identity, recipients: parsed}, nil
}

// GenerateAgeIdentity creates a new X25519 identity. It returns the identity
// sealed in a key source, and its public recipient string.
func GenerateAgeIdentity() (KeySource, string, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, "", fmt.Errorf("generating age identity: %w", err)
	}
	return StaticKey([]byte(identity.String())), identity.Recipient().String(), nil
}

func (t *ageTransform) Name() string     { return NameAge }
func (t *ageTransform) Kind() hoard.Kind { return hoard.KindCryptographic }

func (t *ageTransform) AfterSerialize(ctx context.Context, plaintext []byte) ([]byte, error) {
	identity, err := t.parseIdentity(ctx)
	if err != nil {
		return nil, err
	}

	recipients := make([]age.Recipient, 0, 1+len(t.recipients))
	recipients = append(recipients, identity.Recipient())
	recipients = append(recipients, t.recipients...)

	var buf bytes.Buffer
	writer, err := age.Encrypt(&buf, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	return buf.Bytes(), nil
}

func (t *ageTransform) BeforeDeserialize(ctx context.Context, ciphertext []byte) ([]byte, error) {
	identity, err := t.parseIdentity(ctx)
	if err != nil {
		return nil, err
	}

	reader, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted plaintext: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// parseIdentity opens the identity buffer only long enough to parse it.
func (t *ageTransform) parseIdentity(ctx context.Context) (*age.X25519Identity, error) {
	buf, err := t.identity.Key(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining age identity: %w", err)
	}
	defer buf.Destroy()

	identity, err := age.ParseX25519Identity(strings.TrimSpace(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing age identity: %w", err)
	}
	return identity, nil
}
