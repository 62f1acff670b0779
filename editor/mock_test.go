package editor

import (
	"bytes"
	"io"
	"sync"
)

// mockTerminal implements terminalInterface for tests.
//
// It replays a fixed input sequence. Once the input is used up it either
// reports io.EOF or, with blockAtEnd set, blocks until Close so that tests
// can deliver a resize event while a read is pending.
type mockTerminal struct {
	input        []rune
	inputPos     int
	rawMode      bool
	terminalSize [2]int
	blockAtEnd   bool
	readErr      error // returned instead of io.EOF when set
	resized      chan WindowSize
	output       *bytes.Buffer

	mu       sync.Mutex
	closed   chan struct{}
	closeErr error
	closes   int
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
		resized:      make(chan WindowSize, 1),
		output:       &bytes.Buffer{},
		closed:       make(chan struct{}),
	}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	m.mu.Lock()
	if m.inputPos < len(m.input) {
		r := m.input[m.inputPos]
		m.inputPos++
		m.mu.Unlock()
		return r, 1, nil
	}
	m.mu.Unlock()

	if m.blockAtEnd {
		<-m.closed
		return 0, 0, io.EOF
	}
	if m.readErr != nil {
		return 0, 0, m.readErr
	}
	return 0, 0, io.EOF
}

func (m *mockTerminal) Resized() <-chan WindowSize {
	return m.resized
}

func (m *mockTerminal) Output() io.Writer {
	return m.output
}

func (m *mockTerminal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	if m.closes == 1 {
		close(m.closed)
	}
	return m.closeErr
}

// consumed reports how many input runes have been read.
func (m *mockTerminal) consumed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inputPos
}

func newTestEditor(input string, options ...Option) (*Editor, *mockTerminal) {
	config := Config{ColorScheme: nil}
	for _, option := range options {
		option(&config)
	}
	terminal := newMockTerminal(input)
	return newWithTerminal(config, terminal), terminal
}
