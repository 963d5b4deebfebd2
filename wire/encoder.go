package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Encoder appends wire format fields to a buffer. It performs no validation
// so tests can build malformed input as easily as well-formed input.
type Encoder struct {
	buf []byte
}

// NewEncoder creates a new wire format encoder
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0),
	}
}

// Bytes returns the encoded bytes
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// EncodeTag appends a field tag
func (e *Encoder) EncodeTag(fieldNumber FieldNumber, wireType WireType) *Encoder {
	e.buf = protowire.AppendVarint(e.buf, uint64(MakeTag(fieldNumber, wireType)))
	return e
}

// EncodeVarint appends a raw varint
func (e *Encoder) EncodeVarint(v uint64) *Encoder {
	e.buf = protowire.AppendVarint(e.buf, v)
	return e
}

// EncodeFixed32 appends a raw little-endian 32-bit value
func (e *Encoder) EncodeFixed32(v uint32) *Encoder {
	e.buf = protowire.AppendFixed32(e.buf, v)
	return e
}

// EncodeFixed64 appends a raw little-endian 64-bit value
func (e *Encoder) EncodeFixed64(v uint64) *Encoder {
	e.buf = protowire.AppendFixed64(e.buf, v)
	return e
}

// EncodeRaw appends bytes verbatim
func (e *Encoder) EncodeRaw(data []byte) *Encoder {
	e.buf = append(e.buf, data...)
	return e
}

// FIELD HELPERS

// Varint appends a varint field
func (e *Encoder) Varint(fieldNumber FieldNumber, v uint64) *Encoder {
	return e.EncodeTag(fieldNumber, WireVarint).EncodeVarint(v)
}

// Sint64 appends a zigzag-encoded varint field
func (e *Encoder) Sint64(fieldNumber FieldNumber, v int64) *Encoder {
	return e.Varint(fieldNumber, EncodeZigZag64(v))
}

// Float appends a float as a fixed32 field
func (e *Encoder) Float(fieldNumber FieldNumber, v float32) *Encoder {
	return e.EncodeTag(fieldNumber, WireFixed32).EncodeFixed32(math.Float32bits(v))
}

// Double appends a double as a fixed64 field
func (e *Encoder) Double(fieldNumber FieldNumber, v float64) *Encoder {
	return e.EncodeTag(fieldNumber, WireFixed64).EncodeFixed64(math.Float64bits(v))
}

// Fixed32 appends a fixed32 field
func (e *Encoder) Fixed32(fieldNumber FieldNumber, v uint32) *Encoder {
	return e.EncodeTag(fieldNumber, WireFixed32).EncodeFixed32(v)
}

// Fixed64 appends a fixed64 field
func (e *Encoder) Fixed64(fieldNumber FieldNumber, v uint64) *Encoder {
	return e.EncodeTag(fieldNumber, WireFixed64).EncodeFixed64(v)
}

// BytesField appends a length-delimited field
func (e *Encoder) BytesField(fieldNumber FieldNumber, data []byte) *Encoder {
	e.EncodeTag(fieldNumber, WireBytes)
	e.buf = protowire.AppendBytes(e.buf, data)
	return e
}

// StringField appends a length-delimited string field
func (e *Encoder) StringField(fieldNumber FieldNumber, s string) *Encoder {
	e.EncodeTag(fieldNumber, WireBytes)
	e.buf = protowire.AppendString(e.buf, s)
	return e
}

// Message appends a nested message field whose content is written by fn
func (e *Encoder) Message(fieldNumber FieldNumber, fn func(*Encoder)) *Encoder {
	nested := NewEncoder()
	fn(nested)
	return e.BytesField(fieldNumber, nested.Bytes())
}
