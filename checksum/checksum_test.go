package checksum

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/zeebo/blake3"
	"github.com/zoobzio/hoard"
)

var testKey = bytes.Repeat([]byte{0x42}, KeySize)

func TestRoundTrip(t *testing.T) {
	keyed, err := NewKeyed(testKey)
	if err != nil {
		t.Fatalf("NewKeyed() error: %v", err)
	}

	for _, tr := range []hoard.Transform{New(), keyed} {
		for _, input := range [][]byte{{}, []byte("payload"), bytes.Repeat([]byte{1}, 4096)} {
			sealed, err := tr.AfterSerialize(context.Background(), input)
			if err != nil {
				t.Fatalf("AfterSerialize() error: %v", err)
			}
			if len(sealed) != len(input)+Size {
				t.Errorf("len(sealed) = %d, want %d", len(sealed), len(input)+Size)
			}
			opened, err := tr.BeforeDeserialize(context.Background(), sealed)
			if err != nil {
				t.Fatalf("BeforeDeserialize() error: %v", err)
			}
			if !bytes.Equal(opened, input) {
				t.Errorf("round-trip mismatch: got %q, want %q", opened, input)
			}
		}
	}
}

func TestTrailerIsBLAKE3(t *testing.T) {
	data := []byte("hoard")
	sealed, err := New().AfterSerialize(context.Background(), data)
	if err != nil {
		t.Fatalf("AfterSerialize() error: %v", err)
	}
	want := blake3.Sum256(data)
	if !bytes.Equal(sealed[len(data):], want[:]) {
		t.Errorf("trailer = %x, want %x", sealed[len(data):], want)
	}
}

func TestKeyedDiffersFromUnkeyed(t *testing.T) {
	keyed, _ := NewKeyed(testKey)
	data := []byte("hoard")
	a, _ := New().AfterSerialize(context.Background(), data)
	b, _ := keyed.AfterSerialize(context.Background(), data)
	if bytes.Equal(a, b) {
		t.Error("keyed and unkeyed trailers should differ")
	}
	if _, err := New().BeforeDeserialize(context.Background(), b); !errors.Is(err, ErrMismatch) {
		t.Errorf("unkeyed verify of keyed trailer error = %v, want ErrMismatch", err)
	}
}

func TestBeforeDeserialize_Tampered(t *testing.T) {
	sealed, _ := New().AfterSerialize(context.Background(), []byte("important"))
	sealed[0] ^= 0x01
	if _, err := New().BeforeDeserialize(context.Background(), sealed); !errors.Is(err, ErrMismatch) {
		t.Errorf("error = %v, want ErrMismatch", err)
	}
}

func TestBeforeDeserialize_Truncated(t *testing.T) {
	if _, err := New().BeforeDeserialize(context.Background(), make([]byte, Size-1)); !errors.Is(err, ErrTruncated) {
		t.Errorf("error = %v, want ErrTruncated", err)
	}
}

func TestNewKeyed_InvalidKey(t *testing.T) {
	if _, err := NewKeyed([]byte("short")); !errors.Is(err, hoard.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestKind(t *testing.T) {
	if New().Kind() != hoard.KindIntegrity {
		t.Errorf("Kind() = %q, want %q", New().Kind(), hoard.KindIntegrity)
	}
}
