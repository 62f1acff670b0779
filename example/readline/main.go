// Package main drives the read_line boundary the way a foreign caller would:
// one call per line, a fixed buffer, and a switch over the result code.
package main

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/nao1215/repel"
)

func main() {
	buf := make([]byte, 64)

	fmt.Println("repel example")
	fmt.Println("Type 'exit' or press Ctrl+D to exit")
	fmt.Println()

	for {
		n := repel.ReadLineRaw(context.Background(), ">>> ", unsafe.Pointer(&buf[0]), len(buf))
		switch n {
		case repel.CodeOverflow:
			fmt.Printf("line too long for a %d byte buffer\n", len(buf))
			continue
		case repel.CodeEndOfInput:
			fmt.Println("Goodbye!")
			return
		case repel.CodeInterrupted:
			fmt.Println("interrupted")
			continue
		case repel.CodeResized:
			// The line in progress is lost; ask again
			continue
		case repel.CodeOtherFailure, repel.CodeSessionFailure:
			fmt.Printf("read_line failed with code %d\n", n)
			return
		}

		line := string(buf[:n])
		if line == "exit" {
			fmt.Println("Goodbye!")
			return
		}
		fmt.Printf("You typed: %s\n", line)
	}
}
