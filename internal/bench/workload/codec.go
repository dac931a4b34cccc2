// Package workload provides the CPU-bound work units the benchmark runs
// while holding semaphore permits: compression round trips over a
// generated payload.
package workload

import (
	"bytes"
	"errors"
)

// Codec - interface for data compression and decompression.
type Codec interface {
	// Compress - compresses input data ([]byte).
	Compress(data []byte) ([]byte, error)
	// Decompress - decompresses data produced by Compress.
	Decompress(data []byte) ([]byte, error)
}

// CodecType - type of compression used for the workload.
type CodecType string

const (
	Gzip  CodecType = "gzip"
	Zstd  CodecType = "zstd"
	Bzip2 CodecType = "bzip2"
	Flate CodecType = "flate"
)

// New - creates a new codec for the given type.
func New(ct CodecType) (Codec, error) {
	switch ct {
	case Gzip:
		return new(GzipCodec), nil
	case Zstd:
		return new(ZstdCodec), nil
	case Bzip2:
		return new(Bzip2Codec), nil
	case Flate:
		return new(FlateCodec), nil
	}

	return nil, errors.New("unsupported codec type")
}

// RoundTrip - compresses and decompresses payload with c and verifies the
// result matches the input.
func RoundTrip(c Codec, payload []byte) error {
	compressed, err := c.Compress(payload)
	if err != nil {
		return err
	}

	restored, err := c.Decompress(compressed)
	if err != nil {
		return err
	}

	if !bytes.Equal(payload, restored) {
		return errors.New("payload corrupted in round trip")
	}

	return nil
}
