package hoard

// extensionEntry binds one file extension to a codec.
type extensionEntry struct {
	extension string
	codec     Codec
}

// extensionTable is an ordered extension -> codec lookup built once at
// configuration time. The first registration for an extension wins; later
// registrations for the same extension are ignored.
type extensionTable struct {
	entries []extensionEntry
	index   map[string]int
}

func newExtensionTable() *extensionTable {
	return &extensionTable{index: make(map[string]int)}
}

// add registers codec for extension unless the extension is already bound.
// It reports whether the registration took effect.
func (t *extensionTable) add(extension string, codec Codec) bool {
	if _, exists := t.index[extension]; exists {
		return false
	}
	t.index[extension] = len(t.entries)
	t.entries = append(t.entries, extensionEntry{extension: extension, codec: codec})
	return true
}

// lookup returns the codec bound to extension, if any.
func (t *extensionTable) lookup(extension string) (Codec, bool) {
	i, ok := t.index[extension]
	if !ok {
		return nil, false
	}
	return t.entries[i].codec, true
}

// extensions returns the registered extensions in registration order.
func (t *extensionTable) extensions() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.extension
	}
	return out
}
