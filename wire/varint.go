package wire

// MaxVarintLen is the longest varint encoding of a 64-bit value.
const MaxVarintLen = 10

// VarintDecoder handles varint decoding operations
type VarintDecoder struct {
	decoder *Decoder
}

// NewVarintDecoder creates a new varint decoder
func NewVarintDecoder(d *Decoder) *VarintDecoder {
	return &VarintDecoder{decoder: d}
}

// DECODER METHODS

// DecodeVarint decodes a varint from the current position. A varint running
// past the end of the buffer is truncated input; one longer than ten bytes,
// or whose tenth byte overflows 64 bits, is malformed.
func (vd *VarintDecoder) DecodeVarint() (uint64, error) {
	d := vd.decoder
	start := d.pos

	var result uint64
	for i := 0; i < MaxVarintLen; i++ {
		if d.pos >= len(d.buf) {
			d.pos = start
			return 0, d.truncated(start, i+1, "varint")
		}

		b := d.buf[d.pos]
		d.pos++

		if i == MaxVarintLen-1 && b > 1 {
			d.pos = start
			return 0, newDecodeError(KindMalformedVarint, d.base+start, "varint exceeds 64 bits")
		}

		result |= uint64(b&0x7F) << (7 * uint(i))

		// If MSB is not set, we're done
		if b&0x80 == 0 {
			return result, nil
		}
	}

	d.pos = start
	return 0, newDecodeError(KindMalformedVarint, d.base+start, "varint longer than %d bytes", MaxVarintLen)
}

// UTILITY FUNCTIONS

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// Convenience methods for direct access

// DecodeVarint - convenience method for main decoder
func (d *Decoder) DecodeVarint() (uint64, error) {
	vd := NewVarintDecoder(d)
	return vd.DecodeVarint()
}
