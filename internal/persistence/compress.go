package persistence

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// Compress zstd-encodes a chunk document.
func Compress(doc []byte) []byte {
	return encoder.EncodeAll(doc, make([]byte, 0, len(doc)/4))
}

// Decompress reverses Compress.
func Decompress(blob []byte) ([]byte, error) {
	out, err := decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk: %w", err)
	}
	return out, nil
}
