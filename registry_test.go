package hoard

import (
	"slices"
	"testing"
)

func TestExtensionTable_FirstWins(t *testing.T) {
	first := &stubCodec{contentType: "first"}
	second := &stubCodec{contentType: "second"}

	table := newExtensionTable()
	if !table.add(".x", first) {
		t.Fatal("first add should take effect")
	}
	if table.add(".x", second) {
		t.Error("second add for the same extension should be ignored")
	}

	got, ok := table.lookup(".x")
	if !ok || got != first {
		t.Errorf("lookup(.x) = %v, %v; want first codec", got, ok)
	}
}

func TestExtensionTable_ExactMatch(t *testing.T) {
	table := newExtensionTable()
	table.add(".Data", &stubCodec{})

	if _, ok := table.lookup(".data"); ok {
		t.Error("lookup should be case-sensitive")
	}
	if _, ok := table.lookup(".Data"); !ok {
		t.Error("lookup(.Data) should succeed")
	}
}

func TestExtensionTable_Order(t *testing.T) {
	table := newExtensionTable()
	for _, ext := range []string{".c", ".a", ".b", ".a"} {
		table.add(ext, &stubCodec{})
	}
	if got, want := table.extensions(), []string{".c", ".a", ".b"}; !slices.Equal(got, want) {
		t.Errorf("extensions() = %v, want %v", got, want)
	}
}
