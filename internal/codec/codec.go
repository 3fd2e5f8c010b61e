// Package codec encodes and decodes host-bridge frames.
//
// The host speaks JSON on text frames. Binary frames carry the same
// records encoded as CBOR, which keeps large snapshots (skin previews,
// long log histories) compact on the wire. Both codecs decode nested
// records as map[string]any so callers never see CBOR-specific map types.
package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Codec is a frame encoding.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Codec names accepted by ByName.
const (
	NameJSON = "json"
	NameCBOR = "cbor"
)

var (
	// JSON is the default text-frame codec.
	JSON Codec = jsonCodec{}
	// CBOR is the binary-frame codec.
	CBOR Codec = cborCodec{}
)

// ByName resolves a codec from its configured name. An empty name means JSON.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameJSON:
		return JSON, nil
	case NameCBOR:
		return CBOR, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q (allowed: json, cbor)", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return NameJSON }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Sorted keys make identical envelopes produce identical frames.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

func (cborCodec) Name() string { return NameCBOR }

func (cborCodec) Marshal(v any) ([]byte, error) { return encMode.Marshal(v) }

func (cborCodec) Unmarshal(data []byte, v any) error { return decMode.Unmarshal(data, v) }
