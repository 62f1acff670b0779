package editor

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderer redraws the prompt line after every edit.
//
// The whole line is rewritten on each call: the cursor is moved back to the
// first row the previous frame used, everything below it is cleared, and the
// prefix and input are written again. Positions are measured in terminal
// cells so that wide characters wrap and place the cursor correctly.
type renderer struct {
	output      io.Writer
	colorScheme *ColorScheme // nil disables color
	width       func() int
	cursorRow   int  // row of the cursor relative to the first row of the frame
	wrapped     bool // the last frame ended exactly on the margin
}

// newRenderer creates a new renderer. width reports the terminal width in cells.
func newRenderer(output io.Writer, colorScheme *ColorScheme, width func() int) *renderer {
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
		width:       width,
	}
}

// render draws prefix followed by input with the cursor at rune index cursor.
func (r *renderer) render(prefix string, input []rune, cursor int) error {
	width := r.columns()
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(input) {
		cursor = len(input)
	}

	var b strings.Builder
	if r.cursorRow > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", r.cursorRow)
	}
	b.WriteString("\r\x1b[J")
	r.writeColored(&b, prefix, func(cs *ColorScheme) Color { return cs.Prefix })
	r.writeColored(&b, string(input), func(cs *ColorScheme) Color { return cs.Input })

	prefixWidth := runewidth.StringWidth(prefix)
	endWidth := prefixWidth + runewidth.StringWidth(string(input))
	cursorWidth := prefixWidth + runewidth.StringWidth(string(input[:cursor]))

	// A line that ends exactly on the margin leaves the terminal in its
	// pending-wrap state; step onto the next row so row arithmetic holds.
	r.wrapped = endWidth > 0 && endWidth%width == 0
	if r.wrapped {
		b.WriteString("\r\n")
	}

	endRow := endWidth / width
	cursorRow, cursorCol := cursorWidth/width, cursorWidth%width
	if up := endRow - cursorRow; up > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", up)
	}
	b.WriteString("\r")
	if cursorCol > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", cursorCol)
	}

	r.cursorRow = cursorRow
	_, err := io.WriteString(r.output, b.String())
	return err
}

// finish draws the final state with the cursor at the end and moves to a
// fresh line, so the caller's next output starts below the prompt.
func (r *renderer) finish(prefix string, input []rune, suffix string) error {
	if err := r.render(prefix, input, len(input)); err != nil {
		return err
	}
	r.cursorRow = 0
	if r.wrapped && suffix == "" {
		return nil
	}
	_, err := io.WriteString(r.output, suffix+"\r\n")
	return err
}

// clearScreen wipes the terminal and homes the cursor.
func (r *renderer) clearScreen() error {
	r.cursorRow = 0
	_, err := io.WriteString(r.output, "\x1b[H\x1b[2J")
	return err
}

func (r *renderer) writeColored(b *strings.Builder, text string, pick func(*ColorScheme) Color) {
	if text == "" {
		return
	}
	if r.colorScheme == nil {
		b.WriteString(text)
		return
	}
	b.WriteString(pick(r.colorScheme).ToANSI())
	b.WriteString(text)
	b.WriteString(Reset())
}

// columns returns the terminal width, falling back to 80 so the row
// arithmetic never divides by zero.
func (r *renderer) columns() int {
	if r.width == nil {
		return 80
	}
	if w := r.width(); w > 0 {
		return w
	}
	return 80
}
