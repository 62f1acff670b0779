package repel

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestWriteResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outcome  Outcome
		capacity int
		wantCode int
		wantBuf  string
	}{
		{name: "abc into 10", outcome: Submitted("abc"), capacity: 10, wantCode: 3, wantBuf: "abc*******"},
		{name: "nine bytes into 10", outcome: Submitted("123456789"), capacity: 10, wantCode: 9, wantBuf: "123456789*"},
		{name: "ten bytes into 10", outcome: Submitted("1234567890"), capacity: 10, wantCode: CodeOverflow, wantBuf: "**********"},
		{name: "overflow with small capacity", outcome: Submitted("abcdefghij"), capacity: 5, wantCode: CodeOverflow, wantBuf: "**********"},
		{name: "empty line", outcome: Submitted(""), capacity: 10, wantCode: 0, wantBuf: "**********"},
		{name: "zero capacity", outcome: Submitted(""), capacity: 0, wantCode: CodeOverflow, wantBuf: "**********"},
		{name: "negative capacity", outcome: Submitted("a"), capacity: -5, wantCode: CodeOverflow, wantBuf: "**********"},
		{name: "end of input", outcome: Outcome{Kind: KindEndOfInput}, capacity: 10, wantCode: CodeEndOfInput, wantBuf: "**********"},
		{name: "interrupted", outcome: Outcome{Kind: KindInterrupted}, capacity: 10, wantCode: CodeInterrupted, wantBuf: "**********"},
		{name: "resized", outcome: Outcome{Kind: KindResized}, capacity: 10, wantCode: CodeResized, wantBuf: "**********"},
		{name: "other failure", outcome: Outcome{Kind: KindOtherFailure}, capacity: 10, wantCode: CodeOtherFailure, wantBuf: "**********"},
		{name: "session failure", outcome: Outcome{Kind: KindSessionFailure}, capacity: 10, wantCode: CodeSessionFailure, wantBuf: "**********"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := bytes.Repeat([]byte("*"), 10)
			code := WriteResult(tt.outcome, unsafe.Pointer(&buf[0]), tt.capacity)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantBuf, string(buf))
		})
	}
}

func TestWriteResultNeverPassesCapacity(t *testing.T) {
	t.Parallel()

	// The buffer handed over is a prefix of a larger allocation so that a
	// write past capacity would show up in the guard bytes.
	const capacity = 8
	for n := 0; n <= capacity+2; n++ {
		backing := bytes.Repeat([]byte("#"), capacity+4)
		line := string(bytes.Repeat([]byte("a"), n))

		code := WriteResult(Submitted(line), unsafe.Pointer(&backing[0]), capacity)
		if n < capacity {
			assert.Equal(t, n, code)
			assert.Equal(t, line, string(backing[:n]))
			assert.Equal(t, string(bytes.Repeat([]byte("#"), capacity+4-n)), string(backing[n:]))
		} else {
			assert.Equal(t, CodeOverflow, code)
			assert.Equal(t, string(bytes.Repeat([]byte("#"), capacity+4)), string(backing))
		}
	}
}

func TestWriteResultNilBuffer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeOverflow, WriteResult(Submitted("abc"), nil, 10))
	assert.Equal(t, CodeOverflow, WriteResult(Submitted(""), nil, 10))
	assert.Equal(t, CodeEndOfInput, WriteResult(Outcome{Kind: KindEndOfInput}, nil, 10))
}
