// Package feedback renders translator errors for people: a header, the file
// position, and the offending source line with a caret under the column.
package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"trupl/pkg/compiler"
)

// Error classification constants
const (
	LexicalError  = "lexical error"
	SyntaxError   = "syntax error"
	SemanticError = "semantic error"
	InternalError = "internal error"
)

// Error is a rendered-on-demand diagnostic. Line and Col are 1-based; a zero
// Line means the position is unknown and no excerpt is printed.
type Error struct {
	Classification string
	Filename       string
	Lines          []string
	Line, Col      int
	Width          int
	Description    string
}

// FromCompile classifies err and attaches the position it carries.
func FromCompile(filename, src string, err error) Error {
	e := Error{
		Classification: classify(err),
		Filename:       filename,
		Lines:          strings.Split(src, "\n"),
		Description:    err.Error(),
		Width:          1,
	}
	if line, col, ok := compiler.Position(err); ok {
		e.Line, e.Col = line, col
	}
	if n := lexemeWidth(err); n > 1 {
		e.Width = n
	}
	return e
}

func classify(err error) string {
	var (
		lex      *compiler.LexError
		syntax   *compiler.SyntaxError
		extra    *compiler.ExtraTokensError
		semantic *compiler.SemanticError
	)
	switch {
	case errors.As(err, &lex):
		return LexicalError
	case errors.As(err, &syntax), errors.As(err, &extra):
		return SyntaxError
	case errors.As(err, &semantic):
		return fmt.Sprintf("%s (%s)", SemanticError, semantic.Kind)
	}
	return InternalError
}

func lexemeWidth(err error) int {
	var (
		syntax   *compiler.SyntaxError
		extra    *compiler.ExtraTokensError
		semantic *compiler.SemanticError
	)
	switch {
	case errors.As(err, &syntax):
		return len(syntax.Found.Lexeme)
	case errors.As(err, &extra):
		return len(extra.Found.Lexeme)
	case errors.As(err, &semantic):
		return len(semantic.At.Lexeme)
	}
	return 0
}

// Make renders the message in the form:
//
//	error: <classification>
//	  --> <filename>:<line>:<col>
//	   |
//	 3 | <offending line>
//	   |     ^^^ <description>
func (e Error) Make(withColor bool) string {
	redBold := color.New(color.FgRed, color.Bold)
	red := color.New(color.FgRed)
	blue := color.New(color.FgBlue)
	if !withColor {
		for _, c := range []*color.Color{redBold, red, blue} {
			c.DisableColor()
		}
	}

	lines := []string{redBold.Sprintf("error: %s", e.Classification)}

	if e.Line <= 0 || e.Line > len(e.Lines) {
		lines = append(lines, fmt.Sprintf("  %s %s", blue.Sprint("-->"), e.Filename))
		lines = append(lines, red.Sprint(e.Description))
		return strings.Join(lines, "\n")
	}

	margin := len(fmt.Sprint(e.Line))
	pad := strings.Repeat(" ", margin)

	lines = append(lines, fmt.Sprintf(" %s%s %s:%d:%d", pad, blue.Sprint("-->"), e.Filename, e.Line, e.Col))
	lines = append(lines, blue.Sprintf(" %s |", pad))

	src := strings.TrimRight(e.Lines[e.Line-1], "\r")
	lines = append(lines, fmt.Sprintf(" %s %s %s", blue.Sprint(e.Line), blue.Sprint("|"), src))

	col := e.Col
	if col < 1 {
		col = 1
	}
	underline := red.Sprint(strings.Repeat("^", e.Width))
	lines = append(lines, fmt.Sprintf(" %s %s %s%s %s",
		pad, blue.Sprint("|"), leadingWhitespace(src, col-1), underline, red.Sprint(e.Description)))

	return strings.Join(lines, "\n")
}

// leadingWhitespace returns n columns of padding, keeping the tabs of src.
func leadingWhitespace(src string, n int) string {
	var sb strings.Builder
	for i, r := range []rune(src) {
		if i >= n {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	for i := len([]rune(src)); i < n; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}
