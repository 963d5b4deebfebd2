package document

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// BytesEncoding selects how payloads that are neither a message nor UTF-8
// text are rendered. It never affects parsing.
type BytesEncoding int

const (
	BytesBase64    BytesEncoding = iota // standard alphabet, padded
	BytesBase64URL                      // URL alphabet, padded
	BytesHex                            // lowercase hex
	BytesArray                          // array of byte values
	BytesLossy                          // UTF-8 with invalid sequences replaced by U+FFFD
)

// DefaultBytesEncoding is used by the zero Options.
const DefaultBytesEncoding = BytesBase64

func (e BytesEncoding) String() string {
	switch e {
	case BytesBase64:
		return "base64"
	case BytesBase64URL:
		return "base64url"
	case BytesHex:
		return "hex"
	case BytesArray:
		return "array"
	case BytesLossy:
		return "lossy"
	default:
		return fmt.Sprintf("BytesEncoding(%d)", int(e))
	}
}

// ParseBytesEncoding parses the names returned by BytesEncoding.String.
func ParseBytesEncoding(s string) (BytesEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "base64":
		return BytesBase64, nil
	case "base64url":
		return BytesBase64URL, nil
	case "hex":
		return BytesHex, nil
	case "array", "bytearray":
		return BytesArray, nil
	case "lossy":
		return BytesLossy, nil
	default:
		return 0, fmt.Errorf("unknown bytes encoding %q", s)
	}
}

func (e BytesEncoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *BytesEncoding) UnmarshalText(text []byte) error {
	v, err := ParseBytesEncoding(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Render converts raw bytes into their document form.
func (e BytesEncoding) Render(data []byte) interface{} {
	switch e {
	case BytesBase64URL:
		return base64.URLEncoding.EncodeToString(data)
	case BytesHex:
		return hex.EncodeToString(data)
	case BytesArray:
		out := make([]interface{}, len(data))
		for i, b := range data {
			out[i] = int(b)
		}
		return out
	case BytesLossy:
		return strings.ToValidUTF8(string(data), "\uFFFD")
	default:
		return base64.StdEncoding.EncodeToString(data)
	}
}

// IntegerFormat selects how integer bits are rendered.
type IntegerFormat int

const (
	IntegersUnsigned IntegerFormat = iota
	IntegersSigned                 // two's complement
	IntegersZigZag                 // zigzag for varints, two's complement for fixed values
)

func (f IntegerFormat) String() string {
	switch f {
	case IntegersUnsigned:
		return "unsigned"
	case IntegersSigned:
		return "signed"
	case IntegersZigZag:
		return "zigzag"
	default:
		return fmt.Sprintf("IntegerFormat(%d)", int(f))
	}
}

// ParseIntegerFormat parses the names returned by IntegerFormat.String.
func ParseIntegerFormat(s string) (IntegerFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unsigned":
		return IntegersUnsigned, nil
	case "signed":
		return IntegersSigned, nil
	case "zigzag":
		return IntegersZigZag, nil
	default:
		return 0, fmt.Errorf("unknown integer format %q", s)
	}
}

func (f IntegerFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *IntegerFormat) UnmarshalText(text []byte) error {
	v, err := ParseIntegerFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
