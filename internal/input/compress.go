package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// MaxDecompressedSize caps decompressed output.
const MaxDecompressedSize = 256 << 20

var ErrTooLarge = errors.New("input: decompressed payload too large")

// Compression names a payload compression.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionAuto
	CompressionGzip
	CompressionZlib
	CompressionZstd
	CompressionBrotli
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionAuto:
		return "auto"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	case CompressionBrotli:
		return "brotli"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// ParseCompression parses the names returned by Compression.String.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "identity":
		return CompressionNone, nil
	case "auto":
		return CompressionAuto, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zlib", "deflate":
		return CompressionZlib, nil
	case "zstd":
		return CompressionZstd, nil
	case "brotli", "br":
		return CompressionBrotli, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Sniff guesses the compression of data from its magic number. Brotli has
// none and is never reported.
func Sniff(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case len(data) >= 2 && data[0]&0x0f == 8 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0:
		return CompressionZlib
	default:
		return CompressionNone
	}
}

// Decompress inflates data. With CompressionAuto a sniffed format that fails
// to inflate leaves data unchanged, since raw protobuf can start with the
// same bytes as a zlib header.
func Decompress(data []byte, c Compression) ([]byte, error) {
	if c == CompressionAuto {
		sniffed := Sniff(data)
		if sniffed == CompressionNone {
			return data, nil
		}
		out, err := Decompress(data, sniffed)
		if err != nil {
			return data, nil
		}
		return out, nil
	}

	var (
		r   io.Reader
		err error
	)
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			defer zr.Close()
			r = zr
		}
	case CompressionZlib:
		var zr io.ReadCloser
		zr, err = zlib.NewReader(bytes.NewReader(data))
		if err == nil {
			defer zr.Close()
			r = zr
		}
	case CompressionZstd:
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderMaxMemory(MaxDecompressedSize))
		if err == nil {
			defer zr.Close()
			r = zr
		}
	case CompressionBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown compression %d", int(c))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}

	out, err := io.ReadAll(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	if len(out) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}
	return out, nil
}
