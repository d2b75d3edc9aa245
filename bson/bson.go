// Package bson provides a BSON codec for hoard.
//
// BSON documents must be structs or maps at the top level; scalars and
// slices fail to marshal.
package bson

import (
	"fmt"

	"github.com/zoobzio/hoard"
	"go.mongodb.org/mongo-driver/bson"
)

// ContentType is the MIME type reported by the codec.
const ContentType = "application/bson"

type bsonCodec struct{}

// New returns a BSON codec.
func New() hoard.Codec {
	return &bsonCodec{}
}

func (c *bsonCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("bson: %T is not a document: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes a BSON document into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	if err := bson.Raw(data).Validate(); err != nil {
		return err
	}
	return bson.Unmarshal(data, v)
}
