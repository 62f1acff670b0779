package repel

// Kind identifies how a read ended.
type Kind int

const (
	// KindSubmitted means the user accepted a line.
	KindSubmitted Kind = iota
	// KindEndOfInput means the input stream ended before a line was submitted.
	KindEndOfInput
	// KindInterrupted means the user pressed the interrupt key.
	KindInterrupted
	// KindResized means the terminal window changed size during the read.
	KindResized
	// KindOtherFailure covers every other editor error.
	KindOtherFailure
	// KindSessionFailure means no editing session could be created.
	KindSessionFailure
)

// Result codes returned across the C boundary. Non-negative values are byte
// counts of a submitted line.
const (
	CodeOverflow       = -1
	CodeEndOfInput     = -2
	CodeInterrupted    = -3
	CodeResized        = -4
	CodeOtherFailure   = -5
	CodeSessionFailure = -6
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSubmitted:
		return "submitted"
	case KindEndOfInput:
		return "end of input"
	case KindInterrupted:
		return "interrupted"
	case KindResized:
		return "resized"
	case KindOtherFailure:
		return "other failure"
	case KindSessionFailure:
		return "session failure"
	}
	return "unknown"
}

// code maps a non-submitted kind onto its result code.
func (k Kind) code() int {
	switch k {
	case KindEndOfInput:
		return CodeEndOfInput
	case KindInterrupted:
		return CodeInterrupted
	case KindResized:
		return CodeResized
	case KindSessionFailure:
		return CodeSessionFailure
	}
	return CodeOtherFailure
}

// Outcome is the result of one read. Line is set only for KindSubmitted.
type Outcome struct {
	Kind Kind
	Line string
	Err  error // cause of a failure kind, for logging only
}

// Submitted returns the outcome of a submitted line.
func Submitted(line string) Outcome {
	return Outcome{Kind: KindSubmitted, Line: line}
}

// Encode maps the outcome onto a result code for a buffer of the given
// capacity. The payload is non-nil only when code is non-negative, and then
// holds exactly code bytes.
//
// A line fits only when its byte length is strictly less than capacity, so a
// caller can always append its own terminator.
func (o Outcome) Encode(capacity int) (code int, payload []byte) {
	if o.Kind != KindSubmitted {
		return o.Kind.code(), nil
	}
	if capacity <= 0 || len(o.Line) >= capacity {
		return CodeOverflow, nil
	}
	return len(o.Line), []byte(o.Line)
}

// CopyInto encodes the outcome for len(dst) and copies the line into dst when
// it fits. dst is left untouched for every negative code.
func (o Outcome) CopyInto(dst []byte) int {
	code, payload := o.Encode(len(dst))
	if code < 0 {
		return code
	}
	return copy(dst, payload)
}
