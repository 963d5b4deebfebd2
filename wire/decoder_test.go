package wire

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestDecoder_Varint(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint64
		kind     ErrorKind
	}{
		{name: "zero", input: []byte{0x00}, expected: 0},
		{name: "one", input: []byte{0x01}, expected: 1},
		{name: "300", input: []byte{0xac, 0x02}, expected: 300},
		{
			name:     "max_uint64",
			input:    []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
			expected: math.MaxUint64,
		},
		{name: "empty", input: []byte{}, kind: KindTruncatedInput},
		{name: "continuation_at_end", input: []byte{0x80}, kind: KindTruncatedInput},
		{name: "incomplete_sequence", input: []byte{0xff, 0xff}, kind: KindTruncatedInput},
		{
			name:  "tenth_byte_overflows",
			input: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02},
			kind:  KindMalformedVarint,
		},
		{
			name:  "eleven_bytes",
			input: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
			kind:  KindMalformedVarint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(tt.input)
			got, err := d.DecodeVarint()
			if tt.kind != 0 {
				if KindOf(err) != tt.kind {
					t.Fatalf("expected %v, got %v", tt.kind, err)
				}
				if d.Offset() != 0 {
					t.Errorf("cursor moved to %d on error", d.Offset())
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeVarint failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
			if !d.EOF() {
				t.Errorf("expected all input consumed, %d bytes left", d.Remaining())
			}
		})
	}
}

func TestDecoder_NextTag(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		number   FieldNumber
		wireType WireType
		kind     ErrorKind
	}{
		{name: "varint_field_1", input: []byte{0x08}, number: 1, wireType: WireVarint},
		{name: "fixed32_field_1", input: []byte{0x0d}, number: 1, wireType: WireFixed32},
		{name: "bytes_field_5", input: []byte{0x2a}, number: 5, wireType: WireBytes},
		{name: "fixed64_field_6", input: []byte{0x31}, number: 6, wireType: WireFixed64},
		{name: "two_byte_tag", input: []byte{0xc2, 0x3e}, number: 1000, wireType: WireBytes},
		{name: "max_field_number", input: NewEncoder().EncodeTag(MaxValidNumber, WireVarint).Bytes(), number: MaxValidNumber, wireType: WireVarint},
		{name: "field_zero", input: []byte{0x00}, kind: KindInvalidFieldNumber},
		{name: "field_zero_bytes", input: []byte{0x02}, kind: KindInvalidFieldNumber},
		{name: "field_number_too_large", input: NewEncoder().EncodeVarint(uint64(MaxValidNumber+1) << 3).Bytes(), kind: KindInvalidFieldNumber},
		{name: "start_group", input: []byte{0x0b}, kind: KindUnsupportedWireType},
		{name: "end_group", input: []byte{0x0c}, kind: KindUnsupportedWireType},
		{name: "wire_type_6", input: []byte{0x0e}, kind: KindUnsupportedWireType},
		{name: "wire_type_7", input: []byte{0x0f}, kind: KindUnsupportedWireType},
		{name: "truncated_tag", input: []byte{0x80}, kind: KindTruncatedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(tt.input)
			number, wireType, err := d.NextTag()
			if tt.kind != 0 {
				if KindOf(err) != tt.kind {
					t.Fatalf("expected %v, got %v", tt.kind, err)
				}
				if d.Offset() != 0 {
					t.Errorf("cursor moved to %d on error", d.Offset())
				}
				return
			}
			if err != nil {
				t.Fatalf("NextTag failed: %v", err)
			}
			if number != tt.number || wireType != tt.wireType {
				t.Errorf("expected (%d, %s), got (%d, %s)", tt.number, tt.wireType, number, wireType)
			}
		})
	}
}

func TestDecoder_Fixed(t *testing.T) {
	t.Run("fixed32", func(t *testing.T) {
		d := NewDecoder([]byte{0x1c, 0x00, 0x00, 0x00})
		v, err := d.DecodeFixed32()
		if err != nil {
			t.Fatalf("DecodeFixed32 failed: %v", err)
		}
		if v != 28 {
			t.Errorf("expected 28, got %d", v)
		}
	})

	t.Run("fixed64", func(t *testing.T) {
		d := NewDecoder([]byte{0xba, 0x32, 0xa9, 0x6c, 0xc1, 0x02, 0x00, 0x00})
		v, err := d.DecodeFixed64()
		if err != nil {
			t.Fatalf("DecodeFixed64 failed: %v", err)
		}
		if v != 3029774971578 {
			t.Errorf("expected 3029774971578, got %d", v)
		}
	})

	t.Run("float_bits", func(t *testing.T) {
		data := NewEncoder().EncodeFixed32(math.Float32bits(3.5)).EncodeFixed64(math.Float64bits(-2.25)).Bytes()
		d := NewDecoder(data)
		f32, err := d.DecodeFixed32()
		if err != nil {
			t.Fatalf("DecodeFixed32 failed: %v", err)
		}
		f64, err := d.DecodeFixed64()
		if err != nil {
			t.Fatalf("DecodeFixed64 failed: %v", err)
		}
		if math.Float32frombits(f32) != 3.5 || math.Float64frombits(f64) != -2.25 {
			t.Errorf("unexpected floats %v %v", math.Float32frombits(f32), math.Float64frombits(f64))
		}
	})

	t.Run("truncated", func(t *testing.T) {
		d := NewDecoderAt([]byte{0x01, 0x02, 0x03}, 40)
		if _, err := d.DecodeFixed32(); !errors.Is(err, ErrTruncatedInput) {
			t.Fatalf("expected ErrTruncatedInput, got %v", err)
		}
		_, err := d.DecodeFixed64()
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected *DecodeError, got %T", err)
		}
		if de.Offset != 40 {
			t.Errorf("expected offset 40, got %d", de.Offset)
		}
	})
}

func TestDecoder_Bytes(t *testing.T) {
	t.Run("payload_offset", func(t *testing.T) {
		d := NewDecoderAt([]byte{0x03, 'a', 'b', 'c', 0x00}, 10)
		data, offset, err := d.DecodeRawBytes()
		if err != nil {
			t.Fatalf("DecodeRawBytes failed: %v", err)
		}
		if string(data) != "abc" {
			t.Errorf("expected abc, got %q", data)
		}
		if offset != 11 {
			t.Errorf("expected offset 11, got %d", offset)
		}

		empty, offset, err := d.DecodeRawBytes()
		if err != nil {
			t.Fatalf("DecodeRawBytes failed: %v", err)
		}
		if len(empty) != 0 || offset != 15 {
			t.Errorf("expected empty payload at 15, got %q at %d", empty, offset)
		}
		if !d.EOF() {
			t.Error("expected EOF")
		}
	})

	t.Run("declared_length_exceeds_input", func(t *testing.T) {
		d := NewDecoderAt([]byte{0x05, 'a'}, 7)
		_, _, err := d.DecodeRawBytes()
		if !errors.Is(err, ErrTruncatedInput) {
			t.Fatalf("expected ErrTruncatedInput, got %v", err)
		}
		var de *DecodeError
		if !errors.As(err, &de) || de.Offset != 7 {
			t.Errorf("expected offset 7, got %v", err)
		}
		if d.Offset() != 7 {
			t.Errorf("cursor moved to %d on error", d.Offset())
		}
	})

	t.Run("huge_length", func(t *testing.T) {
		data := NewEncoder().EncodeVarint(math.MaxUint64).EncodeRaw([]byte("x")).Bytes()
		d := NewDecoder(data)
		if _, _, err := d.DecodeRawBytes(); !errors.Is(err, ErrTruncatedInput) {
			t.Fatalf("expected ErrTruncatedInput, got %v", err)
		}
	})
}

func TestDecoder_EncoderRoundTrip(t *testing.T) {
	data := NewEncoder().
		Varint(1, 150).
		Sint64(2, -3).
		Fixed32(3, 7).
		Fixed64(4, 9).
		StringField(5, "hi").
		Message(6, func(e *Encoder) { e.Varint(1, 1) }).
		Bytes()

	type field struct {
		number   FieldNumber
		wireType WireType
	}
	var got []field
	d := NewDecoder(data)
	for !d.EOF() {
		number, wireType, err := d.NextTag()
		if err != nil {
			t.Fatalf("NextTag failed: %v", err)
		}
		got = append(got, field{number, wireType})
		switch wireType {
		case WireVarint:
			v, err := d.DecodeVarint()
			if err != nil {
				t.Fatalf("DecodeVarint failed: %v", err)
			}
			if number == 2 && DecodeZigZag64(v) != -3 {
				t.Errorf("expected zigzag -3, got %d", DecodeZigZag64(v))
			}
		case WireFixed32:
			_, err = d.DecodeFixed32()
		case WireFixed64:
			_, err = d.DecodeFixed64()
		case WireBytes:
			_, _, err = d.DecodeRawBytes()
		}
		if err != nil {
			t.Fatalf("field %d: %v", number, err)
		}
	}

	expected := []field{
		{1, WireVarint},
		{2, WireVarint},
		{3, WireFixed32},
		{4, WireFixed64},
		{5, WireBytes},
		{6, WireBytes},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestZigZag(t *testing.T) {
	tests := []struct {
		encoded uint64
		decoded int64
	}{
		{0, 0},
		{1, -1},
		{2, 1},
		{3, -2},
		{4294967294, 2147483647},
		{4294967295, -2147483648},
		{math.MaxUint64, math.MinInt64},
	}

	for _, tt := range tests {
		if got := DecodeZigZag64(tt.encoded); got != tt.decoded {
			t.Errorf("DecodeZigZag64(%d) = %d, want %d", tt.encoded, got, tt.decoded)
		}
		if got := EncodeZigZag64(tt.decoded); got != tt.encoded {
			t.Errorf("EncodeZigZag64(%d) = %d, want %d", tt.decoded, got, tt.encoded)
		}
	}
}

func TestFieldNumber(t *testing.T) {
	tests := []struct {
		number   FieldNumber
		valid    bool
		reserved bool
	}{
		{0, false, false},
		{1, true, false},
		{18999, true, false},
		{19000, true, true},
		{19999, true, true},
		{20000, true, false},
		{MaxValidNumber, true, false},
		{MaxValidNumber + 1, false, false},
		{-1, false, false},
	}
	for _, tt := range tests {
		if got := tt.number.IsValid(); got != tt.valid {
			t.Errorf("%d.IsValid() = %v, want %v", tt.number, got, tt.valid)
		}
		if got := tt.number.IsReserved(); got != tt.reserved {
			t.Errorf("%d.IsReserved() = %v, want %v", tt.number, got, tt.reserved)
		}
	}
}
