package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/zoobzio/hoard"
	"github.com/zoobzio/hoard/checksum"
	"github.com/zoobzio/hoard/compress"
	"github.com/zoobzio/hoard/encrypt"
	hoardtest "github.com/zoobzio/hoard/testing"
)

var extensions = []string{".json", ".yaml", ".yml", ".bin", "", ".xml", ".bson", ".cbor", ".msgpack", ".persisted"}

func cryptoTransforms(t *testing.T) map[string]hoard.Transform {
	t.Helper()
	identity, _, err := encrypt.GenerateAgeIdentity()
	if err != nil {
		t.Fatalf("GenerateAgeIdentity() error: %v", err)
	}
	age, err := encrypt.Age(identity)
	if err != nil {
		t.Fatalf("Age() error: %v", err)
	}
	keys := hoardtest.TestKeySource()
	return map[string]hoard.Transform{
		"aes-gcm":  encrypt.AESGCM(keys),
		"xchacha":  encrypt.XChaCha20Poly1305(keys),
		"envelope": encrypt.Envelope(keys),
		"age":      age,
	}
}

func TestRoundTrip_EveryCodecAndCipher(t *testing.T) {
	for cipherName, cipher := range cryptoTransforms(t) {
		for _, compression := range []string{compress.NameZstd, compress.NameSnappy, compress.NameLZ4, compress.NameGzip} {
			comp, err := compress.ByName(compression)
			if err != nil {
				t.Fatalf("ByName(%q) error: %v", compression, err)
			}
			store := hoardtest.Store(t, hoard.WithTransforms(comp, checksum.New(), cipher))

			for _, ext := range extensions {
				name := fmt.Sprintf("%s/%s/%q", cipherName, compression, ext)
				t.Run(name, func(t *testing.T) {
					path := filepath.Join(t.TempDir(), "record"+ext)
					want := hoardtest.SampleDocument()

					if _, err := store.Save(context.Background(), want, path, &hoard.SaveOptions{Encrypt: true}); err != nil {
						t.Fatalf("Save() error: %v", err)
					}
					if got := hoardtest.Load[hoardtest.Document](t, store, path); !got.Equal(want) {
						t.Errorf("round-trip = %+v, want %+v", got, want)
					}
				})
			}
		}
	}
}

func TestRoundTrip_PassphraseAcrossStores(t *testing.T) {
	params := encrypt.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32}
	salt := []byte("integration-salt")
	path := filepath.Join(t.TempDir(), "vault", "entry.json")

	writer := hoardtest.Store(t, hoard.WithTransform(
		encrypt.XChaCha20Poly1305(encrypt.PassphraseKey([]byte("open sesame"), salt, params)),
	))
	if _, err := writer.Save(context.Background(), hoardtest.SampleDocument(), path, &hoard.SaveOptions{Encrypt: true}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reader := hoardtest.Store(t, hoard.WithTransform(
		encrypt.XChaCha20Poly1305(encrypt.PassphraseKey([]byte("open sesame"), salt, params)),
	))
	if got := hoardtest.Load[hoardtest.Document](t, reader, path); !got.Equal(hoardtest.SampleDocument()) {
		t.Errorf("Load() = %+v", got)
	}

	wrong := hoardtest.Store(t, hoard.WithTransform(
		encrypt.XChaCha20Poly1305(encrypt.PassphraseKey([]byte("guess"), salt, params)),
	))
	obj, err := wrong.Get(context.Background(), path)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	defer obj.Close()
	_, err = hoard.MaterializeAs[hoardtest.Document](context.Background(), obj)
	if !errors.Is(err, hoard.ErrTransform) || !errors.Is(err, encrypt.ErrDecryptionFailed) {
		t.Errorf("MaterializeAs() with wrong passphrase error = %v, want ErrDecryptionFailed", err)
	}
}

func TestRoundTrip_MixedDirectory(t *testing.T) {
	store := hoardtest.Store(t,
		hoard.WithTransform(compress.Zstd()),
		hoard.WithTransform(encrypt.AESGCM(hoardtest.TestKeySource())),
	)
	dir := t.TempDir()

	for i, ext := range extensions {
		path := filepath.Join(dir, fmt.Sprintf("item-%02d%s", i, ext))
		if _, err := store.Save(context.Background(), hoardtest.SampleDocument(), path, &hoard.SaveOptions{Encrypt: i%2 == 1}); err != nil {
			t.Fatalf("Save(%q) error: %v", path, err)
		}
	}

	metas, err := store.List(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(metas) != len(extensions) {
		t.Fatalf("List() returned %d files, want %d", len(metas), len(extensions))
	}
	for i, meta := range metas {
		if meta.IsEncrypted != (i%2 == 1) {
			t.Errorf("%s: IsEncrypted = %v", meta.FullPath, meta.IsEncrypted)
		}
		if got := hoardtest.Load[hoardtest.Document](t, store, meta.FullPath); !got.Equal(hoardtest.SampleDocument()) {
			t.Errorf("%s: round-trip = %+v", meta.FullPath, got)
		}
	}

	for _, meta := range metas {
		if err := store.Delete(context.Background(), meta.FullPath); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory not empty after deleting everything: %d entries", len(entries))
	}
}
