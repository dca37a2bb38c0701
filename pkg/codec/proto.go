package codec

import (
	"errors"

	"google.golang.org/protobuf/proto"
)

// ErrNilMessage is returned when encoding a nil protobuf message.
var ErrNilMessage = errors.New("codec: nil proto message")

// protoMarshal is a package variable so tests can substitute it.
var protoMarshal = proto.Marshal

// ProtoCodec encodes protobuf messages in their binary wire format.
type ProtoCodec[T proto.Message] struct{}

// Encode marshals msg with proto.Marshal.
func (c *ProtoCodec[T]) Encode(msg T) ([]byte, error) {
	if any(msg) == nil || !msg.ProtoReflect().IsValid() {
		return nil, ErrNilMessage
	}
	return protoMarshal(msg)
}

// ContentType returns "application/x-protobuf".
func (c *ProtoCodec[T]) ContentType() string {
	return "application/x-protobuf"
}

// NewProtoCodec creates a new ProtoCodec for messages of type T.
func NewProtoCodec[T proto.Message]() *ProtoCodec[T] {
	return &ProtoCodec[T]{}
}
