package avro

import (
	"fmt"
	"sync"

	"github.com/linkedin/goavro/v2"
)

// Codec wraps a goavro codec for thread-safe encoding and decoding.
type Codec struct {
	codec *goavro.Codec
	mu    sync.Mutex
}

// NewCodec builds a codec from an Avro schema string.
func NewCodec(schema string) (*Codec, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("create avro codec: %w", err)
	}
	return &Codec{codec: codec}, nil
}

// EncodeNative converts a Go native map to Avro binary format.
func (c *Codec) EncodeNative(native interface{}) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	binary, err := c.codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("encode to avro binary: %w", err)
	}
	return binary, nil
}

// DecodeNative converts Avro binary data back into a Go native value.
func (c *Codec) DecodeNative(data []byte) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	native, _, err := c.codec.NativeFromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("decode avro binary: %w", err)
	}
	return native, nil
}
