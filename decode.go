package repel

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// DecodePrompt turns raw prompt bytes into text. Invalid UTF-8 is replaced
// with U+FFFD, so decoding never fails.
func DecodePrompt(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(decoded)
}

func decodePromptString(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return DecodePrompt([]byte(s))
}
