// Package defaults assembles the standard hoard configuration from the
// codec providers in this module.
//
// Built-ins: JSON for .json, YAML for .yaml, MessagePack for .bin, files
// without an extension and anything unmapped. Extension table: .yml (YAML),
// .xml, .bson, .cbor and .msgpack.
package defaults

import (
	"fmt"
	"strings"

	"github.com/zoobzio/hoard"
	"github.com/zoobzio/hoard/bson"
	"github.com/zoobzio/hoard/cbor"
	"github.com/zoobzio/hoard/json"
	"github.com/zoobzio/hoard/msgpack"
	"github.com/zoobzio/hoard/xml"
	"github.com/zoobzio/hoard/yaml"
)

// Codecs returns the option installing the built-in codecs.
func Codecs() hoard.Option {
	return hoard.WithCodecs(json.New(), yaml.New(), msgpack.New())
}

// Extensions returns the options for the default extension table.
func Extensions() []hoard.Option {
	return []hoard.Option{
		hoard.WithExtension(yaml.New(), ".yml"),
		hoard.WithExtension(xml.New(), ".xml"),
		hoard.WithExtension(bson.New(), ".bson"),
		hoard.WithExtension(cbor.New(), ".cbor"),
		hoard.WithExtension(msgpack.New(), ".msgpack", ".mpk"),
	}
}

// Codec names accepted by CodecByName.
const (
	CodecJSON    = "json"
	CodecYAML    = "yaml"
	CodecMsgpack = "msgpack"
	CodecXML     = "xml"
	CodecBSON    = "bson"
	CodecCBOR    = "cbor"
)

// CodecByName returns a new codec for a provider name. Names are matched
// case-insensitively.
func CodecByName(name string) (hoard.Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CodecJSON:
		return json.New(), nil
	case CodecYAML:
		return yaml.New(), nil
	case CodecMsgpack:
		return msgpack.New(), nil
	case CodecXML:
		return xml.New(), nil
	case CodecBSON:
		return bson.New(), nil
	case CodecCBOR:
		return cbor.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown codec %q", hoard.ErrInvalidArgument, name)
	}
}

// Config builds a Config from the defaults and extra.
//
// extra is applied after Codecs and before Extensions, so it may replace the
// built-in codecs and its extension mappings take precedence over the
// defaults. Transforms come only from extra, in the order given.
func Config(extra ...hoard.Option) (*hoard.Config, error) {
	opts := make([]hoard.Option, 0, 1+len(extra)+5)
	opts = append(opts, Codecs())
	opts = append(opts, extra...)
	opts = append(opts, Extensions()...)
	return hoard.NewConfig(opts...)
}

// New returns a Store running with Config(extra...).
func New(extra ...hoard.Option) (*hoard.Store, error) {
	cfg, err := Config(extra...)
	if err != nil {
		return nil, err
	}
	return hoard.New(cfg)
}
