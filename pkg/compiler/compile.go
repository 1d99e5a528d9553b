package compiler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
)

// Options configures a compilation. The zero value is ready to use.
type Options struct {
	// Logger receives debug records for declarations and, with Trace, for
	// every production entered. Nil discards them.
	Logger *slog.Logger
	Trace  bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Outcome classifies how a compilation ended.
type Outcome int

const (
	Success     Outcome = iota
	ExtraTokens         // a full program was followed by more input
	ParseFailed         // syntax error
	Fatal               // lexical, semantic or internal error
)

// Message is the line the command-line driver prints for the outcome.
func (o Outcome) Message() string {
	switch o {
	case Success:
		return "Parsing succeeded!"
	case ExtraTokens:
		return "Extra tokens found at the end of program!"
	case ParseFailed:
		return "Parsing failed"
	}
	return "Translation aborted"
}

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case ExtraTokens:
		return "extra tokens"
	case ParseFailed:
		return "parse failed"
	}
	return "fatal"
}

// Result is what a single compilation produced.
type Result struct {
	Assembly string
	Outcome  Outcome
	Symbols  *SymbolTable
}

// Compile translates src with a fresh State. The assembly is whatever was
// emitted before translation stopped, so it is only complete on Success.
// The returned error is nil exactly when the outcome is Success.
func Compile(src string, opts Options) (*Result, error) {
	var out bytes.Buffer
	res, err := translate(src, &out, opts)
	res.Assembly = out.String()
	return res, err
}

// Check parses and type-checks src without keeping any output.
func Check(src string, opts Options) (*Result, error) {
	return translate(src, io.Discard, opts)
}

func translate(src string, w io.Writer, opts Options) (*Result, error) {
	state := NewState(w)
	tr := NewTranslator(NewLexer(src), state, opts)
	res := &Result{Symbols: state.Symbols}

	err := tr.ParseProgram()
	switch {
	case err == nil && tr.DoneWithInput():
		res.Outcome = Success
		return res, nil
	case err == nil:
		res.Outcome = ExtraTokens
		return res, &ExtraTokensError{Found: tr.Lookahead()}
	}

	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		res.Outcome = ParseFailed
	} else {
		res.Outcome = Fatal
	}
	return res, err
}
