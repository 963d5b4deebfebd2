// Package infer recovers a field structure from protobuf wire format bytes
// without a schema. Scalars are decoded from their wire type, and
// length-delimited payloads are classified as a nested message, a UTF-8
// string or raw bytes, in that order of preference.
package infer

import (
	"math"

	"github.com/anirudhraja/rawpb/wire"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInteger Kind = iota + 1 // varint, raw unsigned bits
	KindFloat32
	KindFloat64
	KindFixed32 // fixed32 kept as an integer
	KindFixed64 // fixed64 kept as an integer
	KindString
	KindBytes
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindFixed32:
		return "fixed32"
	case KindFixed64:
		return "fixed64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindMessage:
		return "message"
	default:
		return "invalid"
	}
}

// Value is one decoded field value. Numeric kinds keep the raw wire bits so
// signed or zigzag readings can be chosen when rendering.
type Value struct {
	Kind   Kind
	Offset int // absolute offset of the value (payload start for length-delimited)

	bits    uint64
	text    string
	raw     []byte
	message *Message
}

func IntegerValue(v uint64, offset int) Value {
	return Value{Kind: KindInteger, Offset: offset, bits: v}
}

func Float32Value(bits uint32, offset int) Value {
	return Value{Kind: KindFloat32, Offset: offset, bits: uint64(bits)}
}

func Float64Value(bits uint64, offset int) Value {
	return Value{Kind: KindFloat64, Offset: offset, bits: bits}
}

func Fixed32Value(bits uint32, offset int) Value {
	return Value{Kind: KindFixed32, Offset: offset, bits: uint64(bits)}
}

func Fixed64Value(bits uint64, offset int) Value {
	return Value{Kind: KindFixed64, Offset: offset, bits: bits}
}

func StringValue(s string, offset int) Value {
	return Value{Kind: KindString, Offset: offset, text: s}
}

// BytesValue wraps data without copying it.
func BytesValue(data []byte, offset int) Value {
	return Value{Kind: KindBytes, Offset: offset, raw: data}
}

func MessageValue(m *Message, offset int) Value {
	return Value{Kind: KindMessage, Offset: offset, message: m}
}

// WireType returns the wire type the value was read from.
func (v Value) WireType() wire.WireType {
	switch v.Kind {
	case KindInteger:
		return wire.WireVarint
	case KindFloat32, KindFixed32:
		return wire.WireFixed32
	case KindFloat64, KindFixed64:
		return wire.WireFixed64
	default:
		return wire.WireBytes
	}
}

// Uint64 returns the raw bits of a numeric value.
func (v Value) Uint64() uint64 { return v.bits }

// Int64 returns the bits as a two's complement integer, sign-extending
// 32-bit fixed values.
func (v Value) Int64() int64 {
	if v.Kind == KindFixed32 || v.Kind == KindFloat32 {
		return int64(int32(uint32(v.bits)))
	}
	return int64(v.bits)
}

// ZigZag returns the bits decoded as a zigzag varint.
func (v Value) ZigZag() int64 { return wire.DecodeZigZag64(v.bits) }

func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.bits)) }

func (v Value) Float64() float64 {
	if v.Kind == KindFloat32 || v.Kind == KindFixed32 {
		return float64(v.Float32())
	}
	return math.Float64frombits(v.bits)
}

// Text returns the content of a string value.
func (v Value) Text() string { return v.text }

// Bytes returns the payload of a bytes value. The slice aliases the input buffer.
func (v Value) Bytes() []byte { return v.raw }

// Message returns the nested message of a message value.
func (v Value) Message() *Message { return v.message }
