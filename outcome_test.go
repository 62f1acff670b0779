package repel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		outcome     Outcome
		capacity    int
		wantCode    int
		wantPayload []byte
	}{
		{name: "fits", outcome: Submitted("abc"), capacity: 10, wantCode: 3, wantPayload: []byte("abc")},
		{name: "one byte spare", outcome: Submitted("abc"), capacity: 4, wantCode: 3, wantPayload: []byte("abc")},
		{name: "exactly capacity overflows", outcome: Submitted("abc"), capacity: 3, wantCode: CodeOverflow},
		{name: "longer than capacity", outcome: Submitted("abcdefghij"), capacity: 5, wantCode: CodeOverflow},
		{name: "empty line", outcome: Submitted(""), capacity: 1, wantCode: 0, wantPayload: []byte{}},
		{name: "empty line zero capacity", outcome: Submitted(""), capacity: 0, wantCode: CodeOverflow},
		{name: "negative capacity", outcome: Submitted("a"), capacity: -1, wantCode: CodeOverflow},
		{name: "multibyte counts bytes", outcome: Submitted("日本"), capacity: 6, wantCode: CodeOverflow},
		{name: "multibyte fits", outcome: Submitted("日本"), capacity: 7, wantCode: 6, wantPayload: []byte("日本")},
		{name: "end of input", outcome: Outcome{Kind: KindEndOfInput}, capacity: 10, wantCode: CodeEndOfInput},
		{name: "interrupted", outcome: Outcome{Kind: KindInterrupted}, capacity: 10, wantCode: CodeInterrupted},
		{name: "resized", outcome: Outcome{Kind: KindResized}, capacity: 10, wantCode: CodeResized},
		{name: "other failure", outcome: Outcome{Kind: KindOtherFailure}, capacity: 10, wantCode: CodeOtherFailure},
		{name: "session failure", outcome: Outcome{Kind: KindSessionFailure}, capacity: 10, wantCode: CodeSessionFailure},
		{name: "failure ignores stray line", outcome: Outcome{Kind: KindInterrupted, Line: "x"}, capacity: 10, wantCode: CodeInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, payload := tt.outcome.Encode(tt.capacity)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantCode < 0 {
				assert.Nil(t, payload)
				return
			}
			assert.Equal(t, tt.wantPayload, payload)
			assert.Len(t, payload, code)
		})
	}
}

func TestCodesAreDistinct(t *testing.T) {
	t.Parallel()

	codes := []int{CodeOverflow, CodeEndOfInput, CodeInterrupted, CodeResized, CodeOtherFailure, CodeSessionFailure}
	seen := make(map[int]bool)
	for _, c := range codes {
		assert.Negative(t, c)
		assert.False(t, seen[c], "code %d used twice", c)
		seen[c] = true
	}
}

func TestOutcomeCopyInto(t *testing.T) {
	t.Parallel()

	t.Run("copies without terminator", func(t *testing.T) {
		t.Parallel()

		dst := []byte("xxxxxxxxxx")
		n := Submitted("abc").CopyInto(dst)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abcxxxxxxx", string(dst))
	})

	t.Run("negative codes leave dst untouched", func(t *testing.T) {
		t.Parallel()

		for _, o := range []Outcome{
			Submitted("abcdefghij"),
			{Kind: KindEndOfInput},
			{Kind: KindInterrupted},
			{Kind: KindResized},
			{Kind: KindOtherFailure},
			{Kind: KindSessionFailure},
		} {
			dst := []byte("untouched")
			n := o.CopyInto(dst[:5])
			assert.Negative(t, n, "kind %s", o.Kind)
			assert.Equal(t, "untouched", string(dst), "kind %s", o.Kind)
		}
	})

	t.Run("nil dst", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, CodeOverflow, Submitted("").CopyInto(nil))
	})
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "submitted", KindSubmitted.String())
	assert.Equal(t, "end of input", KindEndOfInput.String())
	assert.Equal(t, "session failure", KindSessionFailure.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
