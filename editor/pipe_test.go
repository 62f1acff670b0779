package editor

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeReaderReadLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello\n", expected: []string{"hello"}},
		{name: "crlf", input: "hello\r\n", expected: []string{"hello"}},
		{name: "unterminated last line", input: "a\nb", expected: []string{"a", "b"}},
		{name: "blank line", input: "\n\n", expected: []string{"", ""}},
		{name: "invalid utf-8 is replaced", input: "a\xffb\n", expected: []string{"a�b"}},
		{name: "empty stream", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newPipeReader(strings.NewReader(tt.input), nil)
			var got []string
			for {
				line, err := p.readLine("> ")
				if errors.Is(err, ErrEOF) {
					break
				}
				require.NoError(t, err)
				got = append(got, line)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPipeReaderDoesNotReadAhead(t *testing.T) {
	t.Parallel()

	input := bytes.NewReader([]byte("first\nsecond\n"))
	p := newPipeReader(input, nil)

	line, err := p.readLine("")
	require.NoError(t, err)
	assert.Equal(t, "first", line)
	assert.Equal(t, len("second\n"), input.Len(), "bytes after the newline must stay in the stream")

	// A second reader on the same stream picks up where the first stopped
	line, err = newPipeReader(input, nil).readLine("")
	require.NoError(t, err)
	assert.Equal(t, "second", line)
}

func TestPipeReaderPrompt(t *testing.T) {
	t.Parallel()

	var prompt bytes.Buffer
	p := newPipeReader(strings.NewReader("x\n"), &prompt)
	_, err := p.readLine("$ ")
	require.NoError(t, err)
	assert.Equal(t, "$ ", prompt.String())
}

type errReader struct{ err error }

func (r errReader) Read(_ []byte) (int, error) {
	return 0, r.err
}

func TestPipeReaderErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := newPipeReader(errReader{err: boom}, nil).readLine("")
	assert.ErrorIs(t, err, boom)

	_, err = newPipeReader(strings.NewReader("x\n"), failingWriter{}).readLine("> ")
	assert.Error(t, err)

	_, err = newPipeReader(errReader{err: io.ErrUnexpectedEOF}, nil).readLine("")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
