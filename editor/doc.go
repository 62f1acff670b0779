// Package editor is the interactive line editor behind repel.
//
// It reads one line at a time from the process's terminal with emacs-style
// editing: cursor and word movement, a kill ring with yank and yank-pop,
// transposition, and an in-memory history that lives as long as the Editor.
// When standard input is not a terminal, lines are read from it unedited.
//
// Quick Start:
//
//	e, err := editor.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer e.Close()
//
//	for {
//		line, err := e.ReadLine(">>> ")
//		if errors.Is(err, editor.ErrEOF) {
//			break
//		}
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(line)
//	}
//
// Terminating conditions:
//
//   - editor.ErrEOF: the input ended, or Ctrl+D on an empty line
//   - editor.ErrInterrupted: Ctrl+C
//   - editor.ErrResized: the terminal window changed size while reading
//   - context.Canceled / context.DeadlineExceeded: from ReadLineWithContext
//
// Any other error wraps the terminal failure that caused it.
//
// Thread Safety:
//
// Editor instances are not thread-safe, and two Editors reading the same
// terminal at once will steal keys from each other.
package editor
