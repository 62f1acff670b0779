package editor

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// pipeReader reads lines from a non-interactive input such as a pipe or a
// redirected file. It reads one byte at a time so that nothing past the
// newline is consumed: a later Editor on the same stream sees the rest.
type pipeReader struct {
	input  io.Reader
	prompt io.Writer // nil when the prompt should not be shown
	buf    [1]byte
}

func newPipeReader(input io.Reader, prompt io.Writer) *pipeReader {
	return &pipeReader{input: input, prompt: prompt}
}

// readLine returns the next line without its line terminator.
// An exhausted stream yields ErrEOF; a final line without a newline is
// returned as a normal line.
func (p *pipeReader) readLine(prefix string) (string, error) {
	if p.prompt != nil && prefix != "" {
		if _, err := io.WriteString(p.prompt, prefix); err != nil {
			return "", err
		}
	}

	var line bytes.Buffer
	for {
		n, err := p.input.Read(p.buf[:])
		if n > 0 {
			if p.buf[0] == '\n' {
				return finishPipeLine(line.Bytes()), nil
			}
			line.WriteByte(p.buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if line.Len() == 0 {
					return "", ErrEOF
				}
				return finishPipeLine(line.Bytes()), nil
			}
			return "", err
		}
	}
}

func finishPipeLine(b []byte) string {
	b = bytes.TrimSuffix(b, []byte{'\r'})
	decoded, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(decoded)
}
