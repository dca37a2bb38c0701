package codec

import (
	jsoniter "github.com/json-iterator/go"
)

// json mirrors encoding/json behaviour, including map key ordering and HTML escaping.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONCodec encodes values as JSON.
type JSONCodec[T any] struct{}

// Encode marshals v to JSON.
func (c *JSONCodec[T]) Encode(v T) ([]byte, error) {
	return json.Marshal(v)
}

// ContentType returns "application/json".
func (c *JSONCodec[T]) ContentType() string {
	return "application/json"
}

// NewJSONCodec creates a new JSONCodec for values of type T.
func NewJSONCodec[T any]() *JSONCodec[T] {
	return &JSONCodec[T]{}
}
