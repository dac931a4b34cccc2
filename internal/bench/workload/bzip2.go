package workload

import (
	"bytes"
	"compress/bzip2"
	"io"

	libzip "github.com/dsnet/compress/bzip2"
)

// Bzip2Codec - compression via dsnet/compress, decompression via the
// stdlib bzip2 reader.
type Bzip2Codec struct{}

func (b *Bzip2Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	config := libzip.WriterConfig{
		Level: libzip.BestCompression,
	}

	writer, err := libzip.NewWriter(&buf, &config)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (b *Bzip2Codec) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(bzip2.NewReader(bytes.NewReader(data)))
}
