package models

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeSourceText converts a solution file to UTF-8 text with LF line endings.
// Files with a BOM are decoded accordingly, valid UTF-8 is taken as is and
// anything else is read as Windows-1252.
func DecodeSourceText(data []byte) string {
	var text string
	switch {
	case bytes.HasPrefix(data, bomUTF8), bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(decoder, data)
		if err != nil {
			text = strings.ToValidUTF8(string(data), "�")
		} else {
			text = string(out)
		}
	case utf8.Valid(data):
		text = string(data)
	default:
		out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			// Last resort: return as UTF-8 with replacement chars
			text = strings.ToValidUTF8(string(data), "�")
		} else {
			text = string(out)
		}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
