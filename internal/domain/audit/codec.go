package audit

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressionAlgo specifies the compression applied to stored changes.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the change-set size above which payloads are compressed.
const DefaultCompressThreshold = 10 * 1024

// Codec compresses large change sets with zstd. Safe for concurrent use.
type Codec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int
}

// NewCodec creates a codec compressing payloads larger than threshold bytes.
func NewCodec(threshold int) (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	if threshold <= 0 {
		threshold = DefaultCompressThreshold
	}
	return &Codec{encoder: encoder, decoder: decoder, threshold: threshold}, nil
}

// Encode returns the payload to store and the algorithm used.
func (c *Codec) Encode(changes []byte) ([]byte, CompressionAlgo) {
	if len(changes) <= c.threshold {
		return changes, CompressionNone
	}
	return c.encoder.EncodeAll(changes, nil), CompressionZstd
}

// Decode reverses Encode.
func (c *Codec) Decode(payload []byte, algo CompressionAlgo) ([]byte, error) {
	if algo != CompressionZstd {
		return payload, nil
	}
	out, err := c.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress changes: %w", err)
	}
	return out, nil
}
