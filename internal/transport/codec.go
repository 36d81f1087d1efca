package transport

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// ContentSubtype selects the JSON codec on gRPC calls, as in application/grpc+json.
const ContentSubtype = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return ContentSubtype }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
