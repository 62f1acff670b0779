package editor

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// defaultDevice is the controlling terminal opened by New.
// go-tty ignores the path on Windows and opens the console instead.
const defaultDevice = "/dev/tty"

// WindowSize is the terminal size reported after a resize.
type WindowSize struct {
	Width  int
	Height int
}

// terminalInterface abstracts terminal operations for testability.
//
// Implementations:
//   - realTerminal: go-tty for input, size and resize notifications, x/term for raw mode
//   - mockTerminal (tests): scripted input and resize events
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore the settings saved by SetRaw
	Size() (width, height int, err error) // Terminal dimensions with safe fallbacks
	ReadRune() (rune, int, error)         // Read a single Unicode character from input
	Resized() <-chan WindowSize           // Window size changes; nil if unsupported
	Output() io.Writer                    // Where the editor draws
	Close() error                         // Release the device; safe to call twice
}

// realTerminal implements terminalInterface on top of a terminal device.
type realTerminal struct {
	tty           *tty.TTY
	output        io.Writer
	closed        bool
	fd            int
	originalState *term.State
	resized       chan WindowSize
}

// newRealTerminal opens device and starts listening for window size changes.
func newRealTerminal(device string) (*realTerminal, error) {
	t, err := tty.OpenDevice(device)
	if err != nil {
		return nil, err
	}

	// Fail here, before any prompt is drawn, if the device has no terminal state
	if _, err := term.GetState(int(t.Input().Fd())); err != nil {
		t.Close()
		return nil, err
	}

	rt := &realTerminal{
		tty: t,
		// colorable passes the file through untouched outside Windows
		output:  colorable.NewColorable(t.Output()),
		fd:      int(t.Input().Fd()),
		resized: make(chan WindowSize, 1),
	}
	go rt.forwardResize(t.SIGWINCH())
	return rt, nil
}

// forwardResize relays go-tty notifications until the tty is closed, keeping
// only the newest size when nobody is reading.
func (t *realTerminal) forwardResize(ws <-chan tty.WINSIZE) {
	for size := range ws {
		ev := WindowSize{Width: size.W, Height: size.H}
		select {
		case t.resized <- ev:
		default:
			select {
			case <-t.resized:
			default:
			}
			select {
			case t.resized <- ev:
			default:
			}
		}
	}
}

func (t *realTerminal) SetRaw() error {
	if !term.IsTerminal(t.fd) {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.originalState = state
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.originalState)
	// Reset the state so that SetRaw can capture a fresh baseline next time
	t.originalState = nil
	return err
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Resized() <-chan WindowSize {
	return t.resized
}

func (t *realTerminal) Output() io.Writer {
	return t.output
}

func (t *realTerminal) Close() error {
	// Prevent double-close which causes panic on Windows
	if t.closed {
		return nil
	}
	t.closed = true
	restoreErr := t.Restore()
	in := t.tty.Input()
	err := t.tty.Close()
	// go-tty leaves the input side open; closing it unblocks a pending read.
	if in != nil && in != os.Stdin {
		in.Close()
	}
	if err != nil {
		return err
	}
	return restoreErr
}
