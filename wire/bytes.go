package wire

// BytesDecoder handles length-delimited bytes decoding operations
type BytesDecoder struct {
	decoder *Decoder
}

// NewBytesDecoder creates a new bytes decoder
func NewBytesDecoder(d *Decoder) *BytesDecoder {
	return &BytesDecoder{decoder: d}
}

// DecodeRawBytes decodes a length prefix and returns the payload without
// copying, together with the payload's absolute offset. The returned slice
// shares the decoder's buffer. On error the cursor does not move.
func (bd *BytesDecoder) DecodeRawBytes() ([]byte, int, error) {
	d := bd.decoder
	start := d.pos

	length, err := d.DecodeVarint()
	if err != nil {
		return nil, 0, err
	}

	if length > uint64(len(d.buf)-d.pos) {
		have := len(d.buf) - d.pos
		d.pos = start
		return nil, 0, newDecodeError(KindTruncatedInput, d.base+start, "length-delimited field declares %d bytes, have %d", length, have)
	}

	offset := d.base + d.pos
	data := d.buf[d.pos : d.pos+int(length)]
	d.pos += int(length)

	return data, offset, nil
}

// DecodeRawBytes - convenience method for main decoder
func (d *Decoder) DecodeRawBytes() ([]byte, int, error) {
	bd := NewBytesDecoder(d)
	return bd.DecodeRawBytes()
}
