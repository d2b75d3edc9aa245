// Package yaml provides a YAML codec for hoard.
package yaml

import (
	"bytes"

	"github.com/zoobzio/hoard"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct {
	indent int
}

// New returns a YAML codec indenting with two spaces.
func New() hoard.Codec {
	return &yamlCodec{indent: 2}
}

// ContentType returns the same MIME type the store reports for .yaml files.
func (c *yamlCodec) ContentType() string {
	return hoard.YAMLMimeType
}

// Marshal encodes v as a single YAML document.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
