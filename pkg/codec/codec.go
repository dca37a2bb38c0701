// Package codec provides encoders that turn reply values into response bodies.
package codec

// Encoder serializes values of type T for a response body.
type Encoder[T any] interface {
	// Encode converts v to its wire format.
	Encode(v T) ([]byte, error)

	// ContentType returns the media type of the encoded output.
	ContentType() string
}
