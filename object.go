package hoard

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"
	"time"
)

// Object is the result of Store.Get. Metadata is available immediately;
// the payload is read, reverse-transformed and decoded only when the
// caller materializes it.
//
// An Object exclusively owns its open file. It can be materialized once;
// later attempts fail with ErrInvalidOperation. Close releases the file and
// is safe to call more than once. Materializing does not close the Object.
type Object struct {
	cfg    *Config
	meta   Metadata
	signed bool

	mu       sync.Mutex
	file     io.ReadCloser
	consumed bool
	closed   bool
}

func newObject(cfg *Config, file io.ReadCloser, meta Metadata, signed bool) *Object {
	return &Object{cfg: cfg, file: file, meta: meta, signed: signed}
}

// Metadata returns the object's metadata.
func (o *Object) Metadata() Metadata {
	return o.meta
}

// Close releases the underlying file.
func (o *Object) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	return o.file.Close()
}

// Raw returns the payload after the reverse transform chain, without
// decoding it. It consumes the Object.
func (o *Object) Raw(ctx context.Context) ([]byte, error) {
	res, err := o.payload(ctx)
	if err != nil {
		return nil, err
	}
	return res.data, nil
}

// Decode materializes the payload into v, which must be a non-nil pointer.
// It consumes the Object.
func (o *Object) Decode(ctx context.Context, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: decode target must be a non-nil pointer, got %T", ErrInvalidArgument, v)
	}
	return o.decode(ctx, v, rv.Elem().Type().String())
}

// MaterializeAs decodes obj into a new T. It consumes the Object.
func MaterializeAs[T any](ctx context.Context, obj *Object) (T, error) {
	var out T
	err := obj.decode(ctx, &out, reflect.TypeFor[T]().String())
	return out, err
}

func (o *Object) decode(ctx context.Context, v any, typeName string) (err error) {
	start := time.Now()
	codec := o.cfg.Resolve(o.meta.FullPath)

	var res chainResult
	defer func() {
		emitMaterializeComplete(ctx, o.meta.FullPath, codec.ContentType(), typeName, time.Since(start), res, err)
	}()

	res, err = o.payload(ctx)
	if err != nil {
		return err
	}
	if uerr := codec.Unmarshal(res.data, v); uerr != nil {
		return newCodecError(ErrUnmarshal, codec.ContentType(), uerr)
	}
	return nil
}

// payload reads the remaining file content and runs the reverse chain.
func (o *Object) payload(ctx context.Context) (chainResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case o.closed:
		return chainResult{}, fmt.Errorf("%w: object %s is closed", ErrInvalidOperation, o.meta.FullPath)
	case o.consumed:
		return chainResult{}, fmt.Errorf("%w: object %s has already been materialized", ErrInvalidOperation, o.meta.FullPath)
	}
	o.consumed = true

	if o.signed && !o.cfg.CanEncrypt() {
		return chainResult{}, fmt.Errorf("%w: cannot deserialize an encrypted stream without a decrypting transform", ErrInvalidOperation)
	}

	if err := ctx.Err(); err != nil {
		return chainResult{}, err
	}
	data, err := io.ReadAll(o.file)
	if err != nil {
		return chainResult{}, ioError("read", o.meta.FullPath, err)
	}

	res, err := reverse(ctx, o.cfg.transforms, data, o.signed)
	if err != nil {
		return res, err
	}
	if o.signed && res.crypto == 0 {
		return res, fmt.Errorf("%w: cannot deserialize an encrypted stream without a decrypting transform", ErrInvalidOperation)
	}
	return res, nil
}
