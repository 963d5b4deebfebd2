package input

import (
	"bytes"
	"testing"
)

func TestDecodeText(t *testing.T) {
	raw := []byte{0x08, 0x96, 0x01, 0x12, 0x02, 'h', 'i'}

	tests := []struct {
		name     string
		input    string
		format   Format
		expected []byte
		wantErr  bool
	}{
		{name: "hex", input: "0896011202 6869\n", format: FormatHex, expected: raw},
		{name: "hex_prefixed", input: "0x08:96:01:12:02:68:69", format: FormatHex, expected: raw},
		{name: "hex_invalid", input: "zz", format: FormatHex, wantErr: true},
		{name: "base64", input: "CJYBEgJoaQ==", format: FormatBase64, expected: raw},
		{name: "base64_unpadded", input: "CJYBEgJoaQ", format: FormatBase64, expected: raw},
		{name: "base64_url", input: "_w", format: FormatBase64, expected: []byte{0xff}},
		{name: "base64_invalid", input: "!!!", format: FormatBase64, wantErr: true},
		{name: "binary", input: string(raw), format: FormatBinary, expected: raw},
		{name: "auto_hex", input: "08960112026869\n", format: FormatAuto, expected: raw},
		{name: "auto_base64", input: "CJYBEgJoaQ==\n", format: FormatAuto, expected: raw},
		{name: "auto_binary", input: string(raw), format: FormatAuto, expected: raw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText([]byte(tt.input), tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %x", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeText failed: %v", err)
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("expected %x, got %x", tt.expected, got)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"0896011202 6869\n", FormatHex},
		{"CJYBEgJoaQ==", FormatBase64},
		{"hi", FormatBase64},
		{"abc", FormatBase64},
		{"\x08\x96\x01", FormatBinary},
		{"", FormatBinary},
	}
	for _, tt := range tests {
		if got := Detect([]byte(tt.input)); got != tt.expected {
			t.Errorf("Detect(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":       FormatAuto,
		"auto":   FormatAuto,
		"RAW":    FormatBinary,
		"binary": FormatBinary,
		"hex":    FormatHex,
		"b64":    FormatBase64,
	}
	for input, expected := range tests {
		got, err := ParseFormat(input)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", input, err)
		}
		if got != expected {
			t.Errorf("ParseFormat(%q) = %s, want %s", input, got, expected)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
