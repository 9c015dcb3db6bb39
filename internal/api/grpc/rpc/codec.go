// Package rpc declares the bookshelf gRPC services, their wire messages and
// clients. Messages travel as JSON through a codec registered under the
// "json" content subtype.
package rpc

import (
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype served by Codec.
const CodecName = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Codec marshals messages with json-iterator.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}

// CallOption selects the JSON codec for a client call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
