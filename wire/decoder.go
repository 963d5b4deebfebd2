package wire

// Decoder is a bounds-checked cursor over a protobuf wire format buffer.
// Offsets reported in errors are relative to the top-level buffer: a decoder
// for a nested payload is created with the payload's absolute start.
type Decoder struct {
	buf  []byte
	pos  int
	base int
}

// NewDecoder creates a new wire format decoder
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf: data,
		pos: 0,
	}
}

// NewDecoderAt creates a decoder for data that starts at offset base of the
// enclosing buffer.
func NewDecoderAt(data []byte, base int) *Decoder {
	return &Decoder{
		buf:  data,
		pos:  0,
		base: base,
	}
}

// Offset returns the absolute position of the cursor.
func (d *Decoder) Offset() int {
	return d.base + d.pos
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF reports whether every byte has been consumed.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// NextTag reads the next field tag. Group markers, undefined wire types and
// field numbers outside 1..2^29-1 are rejected; on error the cursor does not
// move.
func (d *Decoder) NextTag() (FieldNumber, WireType, error) {
	start := d.pos
	raw, err := d.DecodeVarint()
	if err != nil {
		return 0, 0, err
	}

	fieldNumber, wireType := ParseTag(Tag(raw))
	if !fieldNumber.IsValid() {
		d.pos = start
		return 0, 0, newDecodeError(KindInvalidFieldNumber, d.base+start, "tag %#x has field number %d", raw, raw>>3)
	}
	if !wireType.Supported() {
		d.pos = start
		return 0, 0, newDecodeError(KindUnsupportedWireType, d.base+start, "field %d uses %s", fieldNumber, wireType)
	}

	return fieldNumber, wireType, nil
}

func (d *Decoder) truncated(start, need int, what string) *DecodeError {
	return newDecodeError(KindTruncatedInput, d.base+start, "%s needs %d bytes, have %d", what, need, len(d.buf)-start)
}
