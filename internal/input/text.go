// Package input turns captured payloads (text dumps, compressed bodies, gRPC
// streams) into the raw protobuf bytes the decoder expects.
package input

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Format is the textual form of the input.
type Format int

const (
	FormatAuto Format = iota
	FormatBinary
	FormatHex
	FormatBase64
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatBinary:
		return "binary"
	case FormatHex:
		return "hex"
	case FormatBase64:
		return "base64"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "binary", "raw":
		return FormatBinary, nil
	case "hex":
		return FormatHex, nil
	case "base64", "b64":
		return FormatBase64, nil
	default:
		return 0, fmt.Errorf("unknown input format %q", s)
	}
}

// Detect reports the textual form of data: hex when the trimmed input is only
// hex digits, then base64 when it decodes as such, and binary otherwise.
func Detect(data []byte) Format {
	if looksLikeHex(data) {
		if _, err := decodeHex(data); err == nil {
			return FormatHex
		}
	}
	if looksLikeBase64(data) {
		if _, err := decodeBase64(data); err == nil {
			return FormatBase64
		}
	}
	return FormatBinary
}

// DecodeText converts data from the given format to raw bytes. FormatAuto
// uses the format reported by Detect.
func DecodeText(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatBinary:
		return data, nil
	case FormatHex:
		return decodeHex(data)
	case FormatBase64:
		return decodeBase64(data)
	case FormatAuto:
		return DecodeText(data, Detect(data))
	default:
		return nil, fmt.Errorf("unknown input format %d", int(format))
	}
}

func stripSpace(data []byte) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(data))
}

func decodeHex(data []byte) ([]byte, error) {
	s := stripSpace(data)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.ReplaceAll(s, ":", "")
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return out, nil
}

func decodeBase64(data []byte) ([]byte, error) {
	s := stripSpace(data)
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if out, err := enc.DecodeString(s); err == nil {
			return out, nil
		}
	}
	return nil, fmt.Errorf("decode base64 input: not valid base64")
}

func looksLikeHex(data []byte) bool {
	s := stripSpace(data)
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func looksLikeBase64(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	for _, c := range trimmed {
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		case c == '+', c == '/', c == '-', c == '_', c == '=':
		case c == '\n', c == '\r', c == ' ', c == '\t':
		default:
			return false
		}
	}
	return true
}
