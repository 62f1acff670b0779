package repel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/nao1215/repel/editor"
)

// errPanic marks a panic recovered from the line editor.
var errPanic = errors.New("line editor panicked")

// LineReader is one editing session. Each read creates a LineReader, reads
// exactly one line with it and closes it.
type LineReader interface {
	ReadLineWithContext(ctx context.Context, prompt string) (string, error)
	Close() error
}

// SessionFactory creates the editing session for one read.
type SessionFactory func(cfg *Config, logger *slog.Logger) (LineReader, error)

// NewSession is the default SessionFactory. It opens an editor on the
// process's standard input.
func NewSession(cfg *Config, logger *slog.Logger) (LineReader, error) {
	e, err := editor.New(
		editor.WithColorScheme(cfg.colorScheme()),
		editor.WithMaxHistory(cfg.MaxHistory),
		editor.WithKillRingSize(cfg.KillRingSize),
		editor.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Reader performs single-line reads. The zero value is not usable; create
// one with NewReader. A Reader keeps no state between reads.
type Reader struct {
	newSession SessionFactory
	config     *Config
	logger     *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithSessionFactory replaces the function that creates editing sessions.
func WithSessionFactory(f SessionFactory) Option {
	return func(r *Reader) {
		r.newSession = f
	}
}

// WithConfig fixes the configuration instead of loading it on every read.
func WithConfig(cfg *Config) Option {
	return func(r *Reader) {
		r.config = cfg
	}
}

// WithLogger sets the logger instead of building one from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// NewReader creates a Reader.
func NewReader(options ...Option) *Reader {
	r := &Reader{newSession: NewSession}
	for _, option := range options {
		option(r)
	}
	return r
}

// ReadLineRaw reads one line with a new default Reader and writes the result
// to a caller-owned buffer. See Reader.ReadLineRaw.
func ReadLineRaw(ctx context.Context, prompt string, buf unsafe.Pointer, capacity int) int {
	return NewReader().ReadLineRaw(ctx, prompt, buf, capacity)
}

// ReadLineRaw reads one line and writes it to buf, which must have room for
// capacity bytes. It returns the number of bytes written, or one of the
// negative Code values, in which case buf is not touched.
func (r *Reader) ReadLineRaw(ctx context.Context, prompt string, buf unsafe.Pointer, capacity int) int {
	return r.read(ctx, prompt, func(o Outcome) int {
		return WriteResult(o, buf, capacity)
	})
}

// ReadLine reads one line and returns how the read ended.
func (r *Reader) ReadLine(ctx context.Context, prompt string) Outcome {
	var outcome Outcome
	r.read(ctx, prompt, func(o Outcome) int {
		outcome = o
		code, _ := o.Encode(len(o.Line) + 1)
		return code
	})
	return outcome
}

// read runs one session from construction to teardown and hands the outcome
// to encode while the session's logger is still open.
func (r *Reader) read(ctx context.Context, prompt string, encode func(Outcome) int) int {
	cfg, cfgErr := r.loadConfig()

	logger, closer := r.openLogger(cfg)
	defer func() { _ = closer.Close() }()
	logger = withSession(logger)
	if cfgErr != nil {
		logger.Warn("invalid configuration, using defaults", "path", ConfigPath(), "error", cfgErr)
	}

	outcome := r.run(ctx, cfg, logger, decodePromptString(prompt))
	code := encode(outcome)

	if outcome.Err != nil {
		logger.Warn("read failed", "kind", outcome.Kind.String(), "code", code, "error", outcome.Err)
	} else {
		logger.Debug("read finished", "kind", outcome.Kind.String(), "code", code)
	}
	return code
}

func (r *Reader) run(ctx context.Context, cfg *Config, logger *slog.Logger, prompt string) Outcome {
	session, err := r.openSession(cfg, logger)
	if err != nil {
		return Outcome{Kind: KindSessionFailure, Err: fmt.Errorf("failed to create session: %w", err)}
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close session", "error", err)
		}
	}()

	line, err := readSession(ctx, session, prompt)
	return classify(line, err)
}

func (r *Reader) loadConfig() (*Config, error) {
	if r.config != nil {
		return r.config, nil
	}
	cfg, err := LoadConfig()
	if err != nil {
		fallback := DefaultConfig()
		fallback.ApplyEnvOverrides()
		if fallback.Validate() != nil {
			fallback = DefaultConfig()
		}
		return fallback, err
	}
	return cfg, nil
}

func (r *Reader) openLogger(cfg *Config) (*slog.Logger, io.Closer) {
	if r.logger != nil {
		return r.logger, nopCloser{}
	}
	logger, closer, err := newLogger(cfg)
	if err != nil {
		return slog.New(slog.DiscardHandler), nopCloser{}
	}
	return logger, closer
}

func (r *Reader) openSession(cfg *Config, logger *slog.Logger) (session LineReader, err error) {
	defer func() {
		if v := recover(); v != nil {
			session, err = nil, fmt.Errorf("%w: %v", errPanic, v)
		}
	}()
	session, err = r.newSession(cfg, logger)
	if err == nil && session == nil {
		err = errors.New("session factory returned no session")
	}
	return session, err
}

func readSession(ctx context.Context, session LineReader, prompt string) (line string, err error) {
	defer func() {
		if v := recover(); v != nil {
			line, err = "", fmt.Errorf("%w: %v", errPanic, v)
		}
	}()
	return session.ReadLineWithContext(ctx, prompt)
}

// classify maps the editor's result onto an Outcome.
func classify(line string, err error) Outcome {
	switch {
	case err == nil:
		return Submitted(line)
	case errors.Is(err, editor.ErrEOF), errors.Is(err, io.EOF):
		return Outcome{Kind: KindEndOfInput}
	case errors.Is(err, editor.ErrInterrupted):
		return Outcome{Kind: KindInterrupted}
	case errors.Is(err, editor.ErrResized):
		return Outcome{Kind: KindResized}
	}
	return Outcome{Kind: KindOtherFailure, Err: err}
}
