// librepel exports repel's line reader as a C shared library.
//
// Build:
//
//	go build -buildmode=c-shared -o librepel.so ./cmd/librepel
//
// The build also writes librepel.h with the declaration
//
//	int read_line(char* prompt, char* buffer, int bufferCapacity);
package main

import "C"

import (
	"context"
	"unsafe"

	"github.com/nao1215/repel"
)

// read_line shows prompt, reads one line and copies it into buffer without a
// terminator. See package repel for the result codes.
//
//export read_line
func read_line(prompt *C.char, buffer *C.char, bufferCapacity C.int) C.int {
	var p string
	if prompt != nil {
		p = C.GoString(prompt)
	}
	return C.int(repel.ReadLineRaw(context.Background(), p, unsafe.Pointer(buffer), int(bufferCapacity)))
}

func main() {}
