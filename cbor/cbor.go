// Package cbor provides a CBOR (RFC 8949) codec for hoard.
//
// Maps are written in canonical key order and times as RFC 3339 strings with
// nanoseconds, so equal values always encode to equal bytes. Maps decoded
// into an interface value use string keys.
package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/zoobzio/hoard"
)

// ContentType is the MIME type reported by the codec.
const ContentType = "application/cbor"

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// New returns a CBOR codec.
func New() hoard.Codec {
	enc, err := cbor.EncOptions{
		Sort: cbor.SortCanonical,
		Time: cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic("cbor: invalid encoding options: " + err.Error())
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: invalid decoding options: " + err.Error())
	}
	return &cborCodec{enc: enc, dec: dec}
}

func (c *cborCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as CBOR.
func (c *cborCodec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (c *cborCodec) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
