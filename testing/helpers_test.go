package testing

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/zoobzio/hoard"
)

func TestTestKey(t *testing.T) {
	if len(TestKey()) != 32 {
		t.Errorf("TestKey() length = %d, want 32", len(TestKey()))
	}
}

func TestTestKeySource(t *testing.T) {
	buf, err := TestKeySource().Key(context.Background())
	if err != nil {
		t.Fatalf("Key() error: %v", err)
	}
	defer buf.Destroy()
	if !bytes.Equal(buf.Bytes(), TestKey()) {
		t.Error("TestKeySource() should yield TestKey()")
	}
}

func TestXOR_Reversible(t *testing.T) {
	x := XOR("x", 0x5a, hoard.KindPlain)
	in := []byte("hoard")
	out, _ := x.AfterSerialize(context.Background(), in)
	if bytes.Equal(out, in) {
		t.Fatal("XOR should change the data")
	}
	back, _ := x.BeforeDeserialize(context.Background(), out)
	if !bytes.Equal(back, in) {
		t.Errorf("round-trip = %q, want %q", back, in)
	}
}

func TestFailing(t *testing.T) {
	f := Failing("f", hoard.KindPlain, nil)
	if _, err := f.AfterSerialize(context.Background(), nil); !errors.Is(err, ErrInjected) {
		t.Errorf("error = %v, want ErrInjected", err)
	}
}

func TestRecord(t *testing.T) {
	var rec Recorder
	r := Record(&rec, XOR("a", 1, hoard.KindPlain))
	_, _ = r.AfterSerialize(context.Background(), []byte("x"))
	_, _ = r.BeforeDeserialize(context.Background(), []byte("x"))
	if got, want := rec.Calls(), []string{"a:after", "a:before"}; !slices.Equal(got, want) {
		t.Errorf("Calls() = %v, want %v", got, want)
	}
	rec.Reset()
	if len(rec.Calls()) != 0 {
		t.Error("Reset() should clear calls")
	}
}

func TestDocument_Equal(t *testing.T) {
	a := SampleDocument()
	b := SampleDocument()
	b.Created = b.Created.Local()
	if !a.Equal(b) {
		t.Error("documents at the same instant should be equal")
	}
	b.Tags = []string{"other"}
	if a.Equal(b) {
		t.Error("documents with different tags should differ")
	}
}

func TestStoreAndLoad(t *testing.T) {
	store := Store(t)
	path := filepath.Join(t.TempDir(), "doc.json")
	if _, err := store.Save(context.Background(), SampleDocument(), path, &hoard.SaveOptions{}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if got := Load[Document](t, store, path); !got.Equal(SampleDocument()) {
		t.Errorf("Load() = %+v", got)
	}
}
