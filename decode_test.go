package repel

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecodePrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      []byte
		expected string
	}{
		{name: "ascii", raw: []byte("> "), expected: "> "},
		{name: "utf-8", raw: []byte("入力> "), expected: "入力> "},
		{name: "empty", raw: nil, expected: ""},
		{name: "invalid byte", raw: []byte("a\xffb"), expected: "a�b"},
		{name: "two invalid bytes", raw: []byte("\xff\xfe> "), expected: "��> "},
		{name: "latin-1 prompt", raw: []byte("caf\xe9> "), expected: "caf�> "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DecodePrompt(tt.raw)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
			assert.Equal(t, tt.expected, decodePromptString(string(tt.raw)))
		})
	}
}

func TestDecodePromptAlwaysValid(t *testing.T) {
	t.Parallel()

	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}
	assert.True(t, utf8.ValidString(DecodePrompt(raw)))
	assert.True(t, utf8.ValidString(decodePromptString(string(raw[128:]))))
}
