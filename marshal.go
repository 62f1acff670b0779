package repel

import "unsafe"

// WriteResult encodes o for a caller-owned buffer of capacity bytes and, when
// the line fits, copies exactly its bytes to buf without a terminator.
//
// This is the only place that writes through a foreign pointer. A nil buf is
// treated as a zero-capacity buffer. The caller must guarantee that buf
// points at least capacity writable bytes.
func WriteResult(o Outcome, buf unsafe.Pointer, capacity int) int {
	if buf == nil {
		capacity = 0
	}
	code, payload := o.Encode(capacity)
	if code <= 0 {
		return code
	}
	// code < capacity holds here, so the slice stays inside the buffer
	dst := unsafe.Slice((*byte)(buf), code)
	copy(dst, payload)
	return code
}
