// Package xml provides an XML codec for hoard. Output starts with the
// standard XML declaration.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/hoard"
)

// ContentType is the MIME type reported by the codec.
const ContentType = "application/xml"

type xmlCodec struct{}

// New returns an XML codec.
func New() hoard.Codec {
	return &xmlCodec{}
}

func (c *xmlCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as an XML document.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body))
	out = append(out, xml.Header...)
	return append(out, body...), nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
