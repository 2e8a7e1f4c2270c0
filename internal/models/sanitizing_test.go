package models

import "testing"

func TestDecodeSourceText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("print('hi')\n"), "print('hi')\n"},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n"},
		{"utf8 bom", []byte("\xEF\xBB\xBFx = 1"), "x = 1"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'o', 0, 'k', 0}, "ok"},
		{"windows-1252", []byte("caf\xE9 \x93q\x94"), "café “q”"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeSourceText(tt.in); got != tt.want {
				t.Errorf("DecodeSourceText() = %q, want %q", got, tt.want)
			}
		})
	}
}
