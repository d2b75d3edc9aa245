// Package msgpack provides a MessagePack codec for hoard. It is the binary
// codec the store falls back to for unknown extensions.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/hoard"
)

// ContentType is the MIME type reported by the codec.
const ContentType = "application/msgpack"

// msgpackCodec honours json struct tags when a field has no msgpack tag, so
// the same type round-trips identically under the JSON and binary codecs.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() hoard.Codec {
	return &msgpackCodec{}
}

func (c *msgpackCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
