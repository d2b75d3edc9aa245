package bson

import (
	"testing"
)

func TestContentType(t *testing.T) {
	if got := New().ContentType(); got != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", got, "application/bson")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type record struct {
		Name  string   `bson:"name"`
		Value int      `bson:"value"`
		Tags  []string `bson:"tags"`
	}

	original := record{Name: "test", Value: 42, Tags: []string{"a", "b"}}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored record
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored.Name != original.Name || restored.Value != original.Value || len(restored.Tags) != 2 {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshalNonDocument(t *testing.T) {
	for _, v := range []any{"scalar", 42, []int{1, 2}} {
		if _, err := New().Marshal(v); err == nil {
			t.Errorf("Marshal(%T) should return error", v)
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"text", []byte("invalid bson")},
		{"short", []byte{0x05, 0x00}},
		{"bad length", []byte{0xff, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct{}
			if err := New().Unmarshal(tt.input, &v); err == nil {
				t.Error("Unmarshal(invalid) should return error")
			}
		})
	}
}
