// Package compress provides reversible compression transforms for hoard.
//
// Every transform here is hoard.KindPlain: it always runs, whether or not
// the file is encrypted. Register compression before any cryptographic
// transform; ciphertext does not compress.
package compress

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zoobzio/hoard"
)

// Algorithm names accepted by ByName.
const (
	NameZstd   = "zstd"
	NameSnappy = "snappy"
	NameLZ4    = "lz4"
	NameGzip   = "gzip"
)

// zstdEncoder backs Zstd and zstdDecoder backs every zstd transform. Both
// are safe for concurrent use through EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

type transform struct {
	name       string
	compress   func([]byte) ([]byte, error)
	decompress func([]byte) ([]byte, error)
}

func (t *transform) Name() string     { return t.name }
func (t *transform) Kind() hoard.Kind { return hoard.KindPlain }

func (t *transform) AfterSerialize(_ context.Context, data []byte) ([]byte, error) {
	out, err := t.compress(data)
	if err != nil {
		return nil, fmt.Errorf("%s compress: %w", t.name, err)
	}
	return out, nil
}

func (t *transform) BeforeDeserialize(_ context.Context, data []byte) ([]byte, error) {
	out, err := t.decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", t.name, err)
	}
	return out, nil
}

// Zstd returns a zstd transform at the default level.
func Zstd() hoard.Transform {
	return zstdTransform(zstdEncoder)
}

// ZstdLevel returns a zstd transform at the given zstd level (1-22).
func ZstdLevel(level int) (hoard.Transform, error) {
	if level < 1 || level > 22 {
		return nil, fmt.Errorf("%w: zstd level must be between 1 and 22, got %d", hoard.ErrInvalidArgument, level)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return zstdTransform(enc), nil
}

func zstdTransform(enc *zstd.Encoder) hoard.Transform {
	return &transform{
		name: NameZstd,
		compress: func(data []byte) ([]byte, error) {
			return enc.EncodeAll(data, nil), nil
		},
		decompress: func(data []byte) ([]byte, error) {
			return zstdDecoder.DecodeAll(data, nil)
		},
	}
}

// Snappy returns a transform producing Snappy block format.
func Snappy() hoard.Transform {
	return &transform{
		name: NameSnappy,
		compress: func(data []byte) ([]byte, error) {
			return s2.EncodeSnappy(nil, data), nil
		},
		decompress: func(data []byte) ([]byte, error) {
			return s2.Decode(nil, data)
		},
	}
}

// LZ4 returns a transform producing LZ4 frames.
func LZ4() hoard.Transform {
	return &transform{
		name: NameLZ4,
		compress: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			w := lz4.NewWriter(&buf)
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		decompress: func(data []byte) ([]byte, error) {
			return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		},
	}
}

// Gzip returns a gzip transform at the given level, from
// gzip.HuffmanOnly to gzip.BestCompression.
func Gzip(level int) (hoard.Transform, error) {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		return nil, fmt.Errorf("%w: gzip level must be between %d and %d, got %d",
			hoard.ErrInvalidArgument, gzip.HuffmanOnly, gzip.BestCompression, level)
	}
	return &transform{
		name: NameGzip,
		compress: func(data []byte) ([]byte, error) {
			var buf bytes.Buffer
			w, err := gzip.NewWriterLevel(&buf, level)
			if err != nil {
				return nil, err
			}
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			if err := w.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		decompress: func(data []byte) ([]byte, error) {
			r, err := gzip.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			defer r.Close()
			return io.ReadAll(r)
		},
	}, nil
}

// ByName returns the transform for an algorithm name at its default level.
func ByName(name string) (hoard.Transform, error) {
	switch name {
	case NameZstd:
		return Zstd(), nil
	case NameSnappy:
		return Snappy(), nil
	case NameLZ4:
		return LZ4(), nil
	case NameGzip:
		return Gzip(gzip.DefaultCompression)
	default:
		return nil, fmt.Errorf("%w: unknown compression algorithm %q", hoard.ErrInvalidArgument, name)
	}
}
