// Package repel reads one line of user input per call on behalf of programs
// written in other languages.
//
// The C entry point lives in cmd/librepel:
//
//	int read_line(const char *prompt, char *buffer, int buffer_capacity);
//
// Each call decodes the prompt, opens a fresh editing session (see the
// editor package), reads exactly one line and closes the session again.
// Nothing is kept between calls.
//
// Result codes:
//
//	>= 0  the line was copied to buffer; the value is its length in bytes
//	-1    the line needs buffer_capacity bytes or more (nothing written)
//	-2    end of input
//	-3    interrupted (Ctrl+C)
//	-4    the terminal was resized
//	-5    any other editor failure
//	-6    no editing session could be created
//
// The buffer is written only for non-negative results, never beyond the
// returned length, and never NUL-terminated.
//
// Go programs can use a Reader directly:
//
//	r := repel.NewReader()
//	out := r.ReadLine(context.Background(), "> ")
//	if out.Kind == repel.KindSubmitted {
//		fmt.Println(out.Line)
//	}
//
// Configuration is read on every call from $REPEL_CONFIG or
// repel/config.toml in the user's config directory, and can be overridden
// with REPEL_THEME, REPEL_LOG_FILE, REPEL_LOG_LEVEL and NO_COLOR.
package repel
