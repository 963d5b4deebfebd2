package document

import (
	"reflect"
	"testing"
)

func TestBytesEncoding_Render(t *testing.T) {
	data := []byte{'o', 'k', 0xff}
	tests := []struct {
		encoding BytesEncoding
		expected interface{}
	}{
		{BytesBase64, "b2v/"},
		{BytesBase64URL, "b2v_"},
		{BytesHex, "6f6bff"},
		{BytesArray, []interface{}{111, 107, 255}},
		{BytesLossy, "ok\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.encoding.String(), func(t *testing.T) {
			if got := tt.encoding.Render(data); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, got)
			}
		})
	}

	if got := BytesArray.Render(nil); !reflect.DeepEqual(got, []interface{}{}) {
		t.Errorf("empty array rendering: %#v", got)
	}
}

func TestParseBytesEncoding(t *testing.T) {
	tests := []struct {
		input    string
		expected BytesEncoding
		wantErr  bool
	}{
		{"", BytesBase64, false},
		{"base64", BytesBase64, false},
		{"BASE64URL", BytesBase64URL, false},
		{" hex ", BytesHex, false},
		{"array", BytesArray, false},
		{"bytearray", BytesArray, false},
		{"lossy", BytesLossy, false},
		{"stfu8", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBytesEncoding(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestIntegerFormat_Text(t *testing.T) {
	for _, f := range []IntegerFormat{IntegersUnsigned, IntegersSigned, IntegersZigZag} {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var got IntegerFormat
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if got != f {
			t.Errorf("expected %s, got %s", f, got)
		}
	}
	var f IntegerFormat
	if err := f.UnmarshalText([]byte("octal")); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
