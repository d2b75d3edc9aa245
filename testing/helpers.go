// Package testing provides test utilities for hoard.
package testing

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/hoard"
	"github.com/zoobzio/hoard/defaults"
	"github.com/zoobzio/hoard/encrypt"
)

// TestKey returns a valid 32-byte key for testing.
func TestKey() []byte {
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestKeySource returns TestKey sealed in a key source.
func TestKeySource() encrypt.KeySource {
	return encrypt.StaticKey(TestKey())
}

// Store returns a Store built from the default configuration plus opts.
func Store(tb testing.TB, opts ...hoard.Option) *hoard.Store {
	tb.Helper()
	store, err := defaults.New(opts...)
	if err != nil {
		tb.Fatalf("defaults.New() error: %v", err)
	}
	return store
}

// Load opens path and materializes it as T, closing the object.
func Load[T any](tb testing.TB, store *hoard.Store, path string) T {
	tb.Helper()
	obj, err := store.Get(context.Background(), path)
	if err != nil {
		tb.Fatalf("Get(%q) error: %v", path, err)
	}
	defer obj.Close()
	v, err := hoard.MaterializeAs[T](context.Background(), obj)
	if err != nil {
		tb.Fatalf("MaterializeAs(%q) error: %v", path, err)
	}
	return v
}

// Document is a test type every codec in this module can round-trip.
type Document struct {
	ID      string    `json:"id" yaml:"id" xml:"id" bson:"id" cbor:"id"`
	Name    string    `json:"name" yaml:"name" xml:"name" bson:"name" cbor:"name"`
	Tags    []string  `json:"tags" yaml:"tags" xml:"tag" bson:"tags" cbor:"tags"`
	Count   int       `json:"count" yaml:"count" xml:"count" bson:"count" cbor:"count"`
	Created time.Time `json:"created" yaml:"created" xml:"created" bson:"created" cbor:"created"`
}

// SampleDocument returns a populated Document. Created has whole-second
// precision so that every codec preserves it.
func SampleDocument() Document {
	return Document{
		ID:      "doc-1",
		Name:    "Quarterly report",
		Tags:    []string{"finance", "q3"},
		Count:   42,
		Created: time.Date(2024, 9, 30, 17, 0, 0, 0, time.UTC),
	}
}

// Equal reports whether d and o hold the same data. Times are compared by
// instant, not location.
func (d Document) Equal(o Document) bool {
	return d.ID == o.ID &&
		d.Name == o.Name &&
		slices.Equal(d.Tags, o.Tags) &&
		d.Count == o.Count &&
		d.Created.Equal(o.Created)
}

// xorTransform flips every byte with a fixed key. It is its own inverse.
type xorTransform struct {
	name string
	key  byte
	kind hoard.Kind
}

// XOR returns a reversible transform of the given kind that XORs every byte
// with key. Useful for exercising the chain without real crypto.
func XOR(name string, key byte, kind hoard.Kind) hoard.Transform {
	return &xorTransform{name: name, key: key, kind: kind}
}

func (x *xorTransform) Name() string     { return x.name }
func (x *xorTransform) Kind() hoard.Kind { return x.kind }

func (x *xorTransform) AfterSerialize(_ context.Context, data []byte) ([]byte, error) {
	return x.apply(data), nil
}

func (x *xorTransform) BeforeDeserialize(_ context.Context, data []byte) ([]byte, error) {
	return x.apply(data), nil
}

func (x *xorTransform) apply(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ x.key
	}
	return out
}

// ErrInjected is returned by Failing transforms by default.
var ErrInjected = errors.New("injected failure")

type failingTransform struct {
	name string
	kind hoard.Kind
	err  error
}

// Failing returns a transform of the given kind that fails both directions
// with err, or ErrInjected when err is nil.
func Failing(name string, kind hoard.Kind, err error) hoard.Transform {
	if err == nil {
		err = ErrInjected
	}
	return &failingTransform{name: name, kind: kind, err: err}
}

func (f *failingTransform) Name() string     { return f.name }
func (f *failingTransform) Kind() hoard.Kind { return f.kind }

func (f *failingTransform) AfterSerialize(context.Context, []byte) ([]byte, error) {
	return nil, f.err
}

func (f *failingTransform) BeforeDeserialize(context.Context, []byte) ([]byte, error) {
	return nil, f.err
}

// Recorder collects the order in which recording transforms run.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// Calls returns the recorded calls as "name:after" or "name:before".
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

type recordingTransform struct {
	hoard.Transform
	rec *Recorder
}

// Record wraps t so every call is appended to rec before delegating.
func Record(rec *Recorder, t hoard.Transform) hoard.Transform {
	return &recordingTransform{Transform: t, rec: rec}
}

func (r *recordingTransform) AfterSerialize(ctx context.Context, data []byte) ([]byte, error) {
	r.rec.record(r.Name() + ":after")
	return r.Transform.AfterSerialize(ctx, data)
}

func (r *recordingTransform) BeforeDeserialize(ctx context.Context, data []byte) ([]byte, error) {
	r.rec.record(r.Name() + ":before")
	return r.Transform.BeforeDeserialize(ctx, data)
}
