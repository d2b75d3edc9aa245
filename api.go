// Package hoard provides a local-filesystem object store with pluggable
// serialization and reversible byte transforms.
//
// Values are saved by file path. The codec is chosen from the path's
// extension, the serialized bytes pass through an ordered chain of
// transforms (compression, integrity, encryption), and the result is
// written to disk. Reads return a lazy Object that carries metadata
// immediately and defers decoding until asked.
//
// # Pipeline
//
//	write:       value -> Codec.Marshal -> transforms (in order) -> [signature] -> file
//	list:        file -> signature detection -> Metadata
//	materialize: file -> signature detection -> transforms (reversed) -> Codec.Unmarshal -> value
//
// # Codec Resolution
//
// Built-in extensions are fixed:
//
//	.json    - JSON codec
//	.yaml    - YAML codec
//	.bin, "" - binary codec
//
// Any other extension is looked up in the table registered with
// WithExtension. Unmatched extensions fall back to the binary codec, so
// every path is readable and writable.
//
// # Transforms
//
// Transforms are tagged by Kind. KindCryptographic transforms run only when
// a save requests encryption, and on read only when the file carries the
// storage signature. All other kinds always run.
//
//	cfg, _ := hoard.NewConfig(
//	    hoard.WithCodecs(json.New(), yaml.New(), msgpack.New()),
//	    hoard.WithTransform(compress.Zstd()),
//	    hoard.WithTransform(encrypt.XChaCha20Poly1305(encrypt.StaticKey(key))),
//	)
//	store, _ := hoard.New(cfg)
//
//	meta, _ := store.Save(ctx, doc, "/data/doc.json", &hoard.SaveOptions{Encrypt: true})
//
//	obj, _ := store.Get(ctx, "/data/doc.json")
//	defer obj.Close()
//	doc, _ := hoard.MaterializeAs[Document](ctx, obj)
//
// # Providers
//
// Codec providers live in subpackages: json, yaml, msgpack, bson, xml, cbor.
// Transform providers: compress (zstd, snappy, lz4, gzip), checksum (BLAKE3)
// and encrypt (AES-GCM, envelope, XChaCha20-Poly1305, age). The defaults
// package assembles a ready-to-use configuration.
package hoard

import "context"

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Transform is a reversible byte-to-byte step applied between
// serialization and storage.
//
// AfterSerialize runs on write, in registration order. BeforeDeserialize
// runs on read, in reverse registration order, and must undo
// AfterSerialize exactly.
type Transform interface {
	// Name identifies the transform in errors and events (e.g., "zstd").
	Name() string

	// Kind tags the transform. Only KindCryptographic is gated on encryption.
	Kind() Kind

	// AfterSerialize transforms serialized bytes before they are written.
	AfterSerialize(ctx context.Context, data []byte) ([]byte, error)

	// BeforeDeserialize reverses AfterSerialize on bytes read from disk.
	BeforeDeserialize(ctx context.Context, data []byte) ([]byte, error)
}
