package textio

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// Codec encodes and decodes whole file bodies.
type Codec interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

var codecs = map[string]Codec{}

// Register associates a codec with a file extension such as ".gz".
func Register(ext string, c Codec) {
	codecs[strings.ToLower(ext)] = c
}

func init() {
	Register(".gz", gzipCodec{})
	Register(".bz2", bzip2Codec{})
}

// CodecFor returns the codec for the file extension of url, or the identity
// codec when the extension is not registered.
func CodecFor(url string) Codec {
	if c, ok := codecs[strings.ToLower(path.Ext(url))]; ok {
		return c
	}
	return plainCodec{}
}

type plainCodec struct{}

func (plainCodec) Name() string                       { return "plain" }
func (plainCodec) Encode(data []byte) ([]byte, error) { return data, nil }
func (plainCodec) Decode(data []byte) ([]byte, error) { return data, nil }

type gzipCodec struct{}

func (gzipCodec) Name() string { return "gzip" }

func (gzipCodec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		gw.Close()
		return nil, fmt.Errorf("writing gzip data: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decode(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gr.Close()

	out, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("reading gzip data: %w", err)
	}
	return out, nil
}

type bzip2Codec struct{}

func (bzip2Codec) Name() string { return "bzip2" }

func (bzip2Codec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: 9})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 writer: %w", err)
	}
	if _, err := bw.Write(data); err != nil {
		bw.Close()
		return nil, fmt.Errorf("writing bzip2 data: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("closing bzip2 writer: %w", err)
	}
	return buf.Bytes(), nil
}

func (bzip2Codec) Decode(data []byte) ([]byte, error) {
	br, err := bzip2.NewReader(bytes.NewReader(data), &bzip2.ReaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	defer br.Close()

	out, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("reading bzip2 data: %w", err)
	}
	return out, nil
}
