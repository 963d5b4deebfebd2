package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint     WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64    WireType = 1 // fixed64, sfixed64, double
	WireBytes      WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireStartGroup WireType = 3 // deprecated, unsupported
	WireEndGroup   WireType = 4 // deprecated, unsupported
	WireFixed32    WireType = 5 // fixed32, sfixed32, float
)

// Supported reports whether values of this wire type can be decoded.
func (w WireType) Supported() bool {
	switch w {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
		return true
	default:
		return false
	}
}

func (w WireType) String() string {
	switch w {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireStartGroup:
		return "start_group"
	case WireEndGroup:
		return "end_group"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wire_type(%d)", int32(w))
	}
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

const (
	MinValidNumber FieldNumber = FieldNumber(protowire.MinValidNumber)
	MaxValidNumber FieldNumber = FieldNumber(protowire.MaxValidNumber)

	FirstReservedNumber FieldNumber = FieldNumber(protowire.FirstReservedNumber)
	LastReservedNumber  FieldNumber = FieldNumber(protowire.LastReservedNumber)
)

// IsValid reports whether n can appear on the wire.
func (n FieldNumber) IsValid() bool {
	return n >= MinValidNumber && n <= MaxValidNumber
}

// IsReserved reports whether n falls in the range reserved for the protobuf
// implementation (19000 to 19999).
func (n FieldNumber) IsReserved() bool {
	return n >= FirstReservedNumber && n <= LastReservedNumber
}

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type. Field numbers that
// overflow int32 are clamped to -1 so IsValid rejects them.
func ParseTag(tag Tag) (FieldNumber, WireType) {
	num := uint64(tag >> 3)
	if num > uint64(MaxValidNumber) {
		return -1, WireType(tag & 0x7)
	}
	return FieldNumber(num), WireType(tag & 0x7)
}
