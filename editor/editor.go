package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/mattn/go-isatty"
)

// Common errors
var (
	// ErrEOF is returned when the input stream ends or the user presses Ctrl+D on an empty line
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
	// ErrResized is returned when the terminal window changes size during a read
	ErrResized = errors.New("window resized")
	// ErrClosed is returned by reads on a closed Editor
	ErrClosed = errors.New("editor closed")
)

// unsupportedTerminals cannot interpret the escape sequences the editor
// draws with; stdin is then read as plain lines.
var unsupportedTerminals = []string{"dumb", "cons25", "emacs"}

// Config holds the configuration for an Editor.
type Config struct {
	ColorScheme  *ColorScheme // Colors for prefix and input (nil for no color)
	KeyMap       *KeyMap      // Key bindings (nil for default)
	MaxHistory   int          // In-memory history entries (default: 1000)
	KillRingSize int          // Kill ring entries (default: 16)
	Logger       *slog.Logger // Diagnostics (nil discards)
}

// Option represents a configuration option for an Editor
type Option func(*Config)

// WithColorScheme sets the color scheme. Passing nil disables color.
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithKeyMap sets the key bindings
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithMaxHistory limits the number of lines kept in the session history
func WithMaxHistory(maxEntries int) Option {
	return func(c *Config) {
		c.MaxHistory = maxEntries
	}
}

// WithKillRingSize limits the number of killed texts available to yank
func WithKillRingSize(size int) Option {
	return func(c *Config) {
		c.KillRingSize = size
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Editor is an interactive line editor bound to the process's terminal.
//
// An Editor is not safe for concurrent use. Reads may be repeated on one
// Editor; the history and kill ring then carry over between them.
type Editor struct {
	config   Config
	terminal terminalInterface
	pipe     *pipeReader // set when stdin is not an interactive terminal
	renderer *renderer
	keyMap   *KeyMap
	history  *history
	kills    *killRing
	logger   *slog.Logger

	buffer     []rune
	cursor     int
	lastAction KeyAction
	yankStart  int
	yankEnd    int

	keys       chan keyEvent
	readerOnce sync.Once
	done       chan struct{}
	closed     bool
}

type keyEvent struct {
	r   rune
	err error
}

// New creates an Editor reading from the process's standard input.
//
// When stdin is a terminal the controlling terminal is opened for raw,
// interactive editing. Otherwise, or when TERM names a terminal that cannot
// handle escape sequences, lines are read from stdin as they are.
//
// Example:
//
//	e, err := editor.New(editor.WithMaxHistory(100))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer e.Close()
//
//	line, err := e.ReadLine("> ")
//	if errors.Is(err, editor.ErrEOF) {
//		return
//	}
func New(options ...Option) (*Editor, error) {
	config := Config{
		ColorScheme: ThemeDefault,
	}
	for _, option := range options {
		option(&config)
	}

	if !stdinIsTerminal() || unsupportedTerminal(os.Getenv("TERM")) {
		var prompt io.Writer
		if isatty.IsTerminal(os.Stdout.Fd()) {
			prompt = os.Stdout
		}
		return newWithPipe(config, os.Stdin, prompt), nil
	}

	terminal, err := newRealTerminal(defaultDevice)
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}
	return newWithTerminal(config, terminal), nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func unsupportedTerminal(name string) bool {
	name = strings.ToLower(name)
	for _, t := range unsupportedTerminals {
		if name == t {
			return true
		}
	}
	return false
}

func newEditor(config Config) *Editor {
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Editor{
		config:  config,
		keyMap:  config.KeyMap,
		history: newHistory(config.MaxHistory),
		kills:   newKillRing(config.KillRingSize),
		logger:  config.Logger,
		done:    make(chan struct{}),
	}
}

func newWithTerminal(config Config, terminal terminalInterface) *Editor {
	e := newEditor(config)
	e.terminal = terminal
	e.renderer = newRenderer(terminal.Output(), config.ColorScheme, func() int {
		w, _, _ := terminal.Size()
		return w
	})
	return e
}

func newWithPipe(config Config, input io.Reader, prompt io.Writer) *Editor {
	e := newEditor(config)
	e.pipe = newPipeReader(input, prompt)
	return e
}

// Interactive reports whether the Editor edits on a terminal rather than
// reading plain lines.
func (e *Editor) Interactive() bool {
	return e.terminal != nil
}

// ReadLine displays prompt and returns the line the user submits.
func (e *Editor) ReadLine(prompt string) (string, error) {
	return e.ReadLineWithContext(context.Background(), prompt)
}

// ReadLineWithContext displays prompt and blocks until the user submits a
// line or the read ends. The returned error is ErrEOF, ErrInterrupted,
// ErrResized, the context's error, or a wrapped terminal failure.
//
// The context is only observed in interactive mode.
func (e *Editor) ReadLineWithContext(ctx context.Context, prompt string) (string, error) {
	if e.closed {
		return "", ErrClosed
	}
	if e.pipe != nil {
		line, err := e.pipe.readLine(prompt)
		if err == nil {
			e.history.add(line)
		}
		return line, err
	}

	if err := e.terminal.SetRaw(); err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if err := e.terminal.Restore(); err != nil {
			e.logger.Warn("failed to restore terminal state", "error", err)
		}
	}()

	e.startReader()
	e.buffer = []rune{}
	e.cursor = 0
	e.lastAction = ActionNone
	hist := newHistoryCursor(e.history)

	if err := e.render(prompt); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	for {
		r, err := e.nextRune(ctx)
		if err != nil {
			return "", e.abort(prompt, err)
		}

		var action KeyAction
		if r == '\x1b' {
			seq, err := e.readEscapeSequence(ctx)
			if err != nil {
				return "", e.abort(prompt, err)
			}
			action = e.keyMap.GetSequenceAction(seq)
		} else {
			action = e.keyMap.GetAction(r)
		}

		switch action {
		case ActionSubmit:
			line := string(e.buffer)
			if err := e.renderer.finish(prompt, e.buffer, ""); err != nil {
				return "", fmt.Errorf("failed to render: %w", err)
			}
			e.history.add(line)
			return line, nil

		case ActionInterrupt:
			if err := e.renderer.finish(prompt, e.buffer, "^C"); err != nil {
				e.logger.Debug("failed to render interrupt", "error", err)
			}
			return "", ErrInterrupted

		case ActionEOFOrDelete:
			if len(e.buffer) == 0 {
				if err := e.renderer.finish(prompt, e.buffer, ""); err != nil {
					e.logger.Debug("failed to render end of input", "error", err)
				}
				return "", ErrEOF
			}
			e.deleteRange(e.cursor, e.cursor+1)

		case ActionMoveLeft:
			if e.cursor > 0 {
				e.cursor--
			}

		case ActionMoveRight:
			if e.cursor < len(e.buffer) {
				e.cursor++
			}

		case ActionMoveHome:
			e.cursor = 0

		case ActionMoveEnd:
			e.cursor = len(e.buffer)

		case ActionMoveWordLeft:
			e.cursor = e.findWordBoundary(-1)

		case ActionMoveWordRight:
			e.cursor = e.findWordBoundary(1)

		case ActionBackspace:
			if e.cursor > 0 {
				e.deleteRange(e.cursor-1, e.cursor)
				e.cursor--
			}

		case ActionDeleteChar:
			e.deleteRange(e.cursor, e.cursor+1)

		case ActionKillToEnd:
			e.kill(e.cursor, len(e.buffer), false)

		case ActionKillToStart:
			e.kill(0, e.cursor, true)

		case ActionKillWordBack:
			e.kill(e.findWordBoundary(-1), e.cursor, true)

		case ActionKillWordForward:
			e.kill(e.cursor, e.findWordBoundary(1), false)

		case ActionYank:
			if text, ok := e.kills.yank(); ok {
				e.yankStart = e.cursor
				e.insertText(text)
				e.yankEnd = e.cursor
			}

		case ActionYankPop:
			if e.lastAction != ActionYank && e.lastAction != ActionYankPop {
				break
			}
			if text, ok := e.kills.rotate(); ok {
				e.deleteRange(e.yankStart, e.yankEnd)
				e.cursor = e.yankStart
				e.insertText(text)
				e.yankEnd = e.cursor
			}

		case ActionTranspose:
			e.transpose()

		case ActionClearScreen:
			if err := e.renderer.clearScreen(); err != nil {
				return "", fmt.Errorf("failed to clear screen: %w", err)
			}

		case ActionHistoryPrev:
			if entry, ok := hist.prev(string(e.buffer)); ok {
				e.setBuffer(entry)
			}

		case ActionHistoryNext:
			if entry, ok := hist.next(); ok {
				e.setBuffer(entry)
			}

		default:
			if r == '\x1b' || !unicode.IsPrint(r) {
				// Unbound control characters and sequences are ignored
				break
			}
			e.insertRune(r)
			hist.reset()
		}
		e.lastAction = action

		if err := e.render(prompt); err != nil {
			return "", fmt.Errorf("failed to render: %w", err)
		}
	}
}

// abort ends an interrupted read: the line is left on screen and the
// error is mapped onto the package's sentinels.
func (e *Editor) abort(prompt string, err error) error {
	if ferr := e.renderer.finish(prompt, e.buffer, ""); ferr != nil {
		e.logger.Debug("failed to finish line", "error", ferr)
	}
	switch {
	case errors.Is(err, io.EOF):
		return ErrEOF
	case errors.Is(err, ErrResized), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("failed to read input: %w", err)
}

// AddHistory adds a line to the session history
func (e *Editor) AddHistory(line string) {
	e.history.add(line)
}

// History returns a copy of the session history, oldest first
func (e *Editor) History() []string {
	return e.history.snapshot()
}

// Close releases the terminal. It's safe to call Close multiple times.
func (e *Editor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	close(e.done)
	if e.terminal != nil {
		return e.terminal.Close()
	}
	return nil
}

// startReader launches the goroutine that pulls keys off the terminal.
// A single reader serves every read on the Editor so that no key is
// consumed by a goroutine left over from an earlier read.
func (e *Editor) startReader() {
	e.readerOnce.Do(func() {
		e.keys = make(chan keyEvent)
		go e.readKeys()
	})
}

func (e *Editor) readKeys() {
	defer close(e.keys)
	for {
		r, _, err := e.terminal.ReadRune()
		select {
		case e.keys <- keyEvent{r: r, err: err}:
		case <-e.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// nextRune waits for a key, a window resize, or cancellation.
func (e *Editor) nextRune(ctx context.Context) (rune, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case size := <-e.terminal.Resized():
		e.logger.Debug("terminal resized", "width", size.Width, "height", size.Height)
		return 0, ErrResized
	case ev, ok := <-e.keys:
		if !ok {
			return 0, io.EOF
		}
		return ev.r, ev.err
	}
}

// readEscapeSequence reads what follows an ESC. CSI and SS3 sequences are
// read up to their final byte; anything else is an Alt+<key> chord and is
// returned as that single key.
func (e *Editor) readEscapeSequence(ctx context.Context) (string, error) {
	r, err := e.nextRune(ctx)
	if err != nil {
		return "", err
	}
	if r != '[' && r != 'O' {
		return string(r), nil
	}
	seq := []rune{r}
	for range 16 {
		r, err := e.nextRune(ctx)
		if err != nil {
			return "", err
		}
		seq = append(seq, r)
		if r >= 0x40 && r <= 0x7e {
			break
		}
	}
	return string(seq), nil
}

func (e *Editor) render(prompt string) error {
	return e.renderer.render(prompt, e.buffer, e.cursor)
}

func (e *Editor) insertRune(r rune) {
	e.buffer = append(e.buffer[:e.cursor], append([]rune{r}, e.buffer[e.cursor:]...)...)
	e.cursor++
}

func (e *Editor) insertText(text string) {
	runes := []rune(text)
	e.buffer = append(e.buffer[:e.cursor], append(runes, e.buffer[e.cursor:]...)...)
	e.cursor += len(runes)
}

func (e *Editor) setBuffer(text string) {
	e.buffer = []rune(text)
	e.cursor = len(e.buffer)
}

// deleteRange removes buffer[start:end], clamped to the buffer.
func (e *Editor) deleteRange(start, end int) {
	start = max(start, 0)
	end = min(end, len(e.buffer))
	if start >= end {
		return
	}
	e.buffer = append(e.buffer[:start], e.buffer[end:]...)
}

// kill moves buffer[start:end] into the kill ring and leaves the cursor at
// start. Kills directly following another kill extend the same entry.
func (e *Editor) kill(start, end int, backward bool) {
	if start >= end {
		return
	}
	e.kills.kill(string(e.buffer[start:end]), e.lastAction.isKill(), backward)
	e.deleteRange(start, end)
	e.cursor = start
}

// transpose swaps the characters around the cursor; at the end of the line
// it swaps the last two.
func (e *Editor) transpose() {
	if len(e.buffer) < 2 || e.cursor == 0 {
		return
	}
	if e.cursor == len(e.buffer) {
		e.buffer[e.cursor-2], e.buffer[e.cursor-1] = e.buffer[e.cursor-1], e.buffer[e.cursor-2]
		return
	}
	e.buffer[e.cursor-1], e.buffer[e.cursor] = e.buffer[e.cursor], e.buffer[e.cursor-1]
	e.cursor++
}

// findWordBoundary returns the start of the next word (direction > 0) or the
// start of the previous word (direction < 0) relative to the cursor.
func (e *Editor) findWordBoundary(direction int) int {
	if direction > 0 {
		pos := e.cursor
		for pos < len(e.buffer) && !isWordChar(e.buffer[pos]) {
			pos++
		}
		for pos < len(e.buffer) && isWordChar(e.buffer[pos]) {
			pos++
		}
		return pos
	}
	pos := e.cursor
	for pos > 0 && !isWordChar(e.buffer[pos-1]) {
		pos--
	}
	for pos > 0 && isWordChar(e.buffer[pos-1]) {
		pos--
	}
	return pos
}

// isWordChar reports whether r belongs to a word: letters, digits and underscore.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
