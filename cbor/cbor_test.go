package cbor

import (
	"bytes"
	"testing"
	"time"
)

func TestContentType(t *testing.T) {
	if got := New().ContentType(); got != "application/cbor" {
		t.Errorf("ContentType() = %q, want %q", got, "application/cbor")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type record struct {
		Name    string    `cbor:"name"`
		Value   int       `cbor:"value"`
		Created time.Time `cbor:"created"`
	}

	original := record{Name: "test", Value: 42, Created: time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored record
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored.Name != original.Name || restored.Value != original.Value {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
	if !restored.Created.Equal(original.Created) {
		t.Errorf("Created = %v, want %v", restored.Created, original.Created)
	}
}

func TestMarshalCanonicalOrder(t *testing.T) {
	data, err := New().Marshal(map[string]int{"b": 1, "a": 2})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := []byte{0xa2, 0x61, 'a', 0x02, 0x61, 'b', 0x01}
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal() = %x, want %x", data, want)
	}
}

func TestMarshalTimeAsText(t *testing.T) {
	data, err := New().Marshal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if major := data[0] >> 5; major != 3 {
		t.Errorf("major type = %d, want 3 (text string)", major)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v map[string]any
	if err := New().Unmarshal([]byte{0xff}, &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestUnmarshalInterfaceMap(t *testing.T) {
	c := New()
	data, err := c.Marshal(map[string]any{"name": "test"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var v any
	if err := c.Unmarshal(data, &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("Unmarshal() into any = %T, want map[string]any", v)
	}
	if m["name"] != "test" {
		t.Errorf("name = %v, want test", m["name"])
	}
}
