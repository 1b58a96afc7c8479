package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of StreakService calls.
const CodecName = "json"

// jsonCodec marshals StreakService messages as JSON. The messages are plain
// structs, so grpc's default proto codec cannot encode them; clients select
// this codec with the "json" content-subtype and the server picks it from
// the request's content type.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
