// Package json provides a JSON codec for hoard.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/hoard"
)

// ContentType is the MIME type reported by the codec.
const ContentType = "application/json"

type jsonCodec struct {
	prefix string
	indent string
}

// New returns a JSON codec that writes compact output.
func New() hoard.Codec {
	return &jsonCodec{}
}

// NewIndented returns a JSON codec that writes indented output.
func NewIndented(prefix, indent string) hoard.Codec {
	return &jsonCodec{prefix: prefix, indent: indent}
}

func (c *jsonCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as JSON. HTML characters are not escaped.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.prefix != "" || c.indent != "" {
		enc.SetIndent(c.prefix, c.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
