package infer

import (
	"fmt"
	"math"

	"github.com/anirudhraja/rawpb/wire"
)

// Magnitude windows inside which fixed-width bits are read as floats under FixedAuto.
const (
	minPlausibleFloat32 = 1e-6
	maxPlausibleFloat32 = 1e10
	minPlausibleFloat64 = 1e-10
	maxPlausibleFloat64 = 1e15
)

// decodeValue reads the value following a tag of the given wire type.
func (p *parser) decodeValue(d *wire.Decoder, wireType wire.WireType, depth int) (Value, error) {
	offset := d.Offset()

	switch wireType {
	case wire.WireVarint:
		v, err := d.DecodeVarint()
		if err != nil {
			return Value{}, err
		}
		return IntegerValue(v, offset), nil
	case wire.WireFixed32:
		bits, err := d.DecodeFixed32()
		if err != nil {
			return Value{}, err
		}
		return p.fixed32(bits, offset), nil
	case wire.WireFixed64:
		bits, err := d.DecodeFixed64()
		if err != nil {
			return Value{}, err
		}
		return p.fixed64(bits, offset), nil
	case wire.WireBytes:
		payload, payloadOffset, err := d.DecodeRawBytes()
		if err != nil {
			return Value{}, err
		}
		return p.guess(payload, payloadOffset, depth)
	default:
		return Value{}, fmt.Errorf("%w: %s", wire.ErrUnsupportedWireType, wireType)
	}
}

func (p *parser) fixed32(bits uint32, offset int) Value {
	switch p.fixed {
	case FixedFloat:
		return Float32Value(bits, offset)
	case FixedInteger:
		return Fixed32Value(bits, offset)
	}
	if plausible(float64(math.Float32frombits(bits)), minPlausibleFloat32, maxPlausibleFloat32) {
		return Float32Value(bits, offset)
	}
	return Fixed32Value(bits, offset)
}

func (p *parser) fixed64(bits uint64, offset int) Value {
	switch p.fixed {
	case FixedFloat:
		return Float64Value(bits, offset)
	case FixedInteger:
		return Fixed64Value(bits, offset)
	}
	if plausible(math.Float64frombits(bits), minPlausibleFloat64, maxPlausibleFloat64) {
		return Float64Value(bits, offset)
	}
	return Fixed64Value(bits, offset)
}

func plausible(f, lo, hi float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	a := math.Abs(f)
	return a > lo && a < hi
}
