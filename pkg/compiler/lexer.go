package compiler

// keywords maps source text to its keyword token. "or" and "and" are
// operators that happen to be spelled like words.
var keywords = map[string]Token{
	"program":   {Kind: KEYWORD, Attr: PROGRAM},
	"procedure": {Kind: KEYWORD, Attr: PROCEDURE},
	"int":       {Kind: KEYWORD, Attr: INT},
	"bool":      {Kind: KEYWORD, Attr: BOOL},
	"begin":     {Kind: KEYWORD, Attr: BEGIN},
	"end":       {Kind: KEYWORD, Attr: END},
	"if":        {Kind: KEYWORD, Attr: IF},
	"then":      {Kind: KEYWORD, Attr: THEN},
	"else":      {Kind: KEYWORD, Attr: ELSE},
	"while":     {Kind: KEYWORD, Attr: WHILE},
	"loop":      {Kind: KEYWORD, Attr: LOOP},
	"print":     {Kind: KEYWORD, Attr: PRINT},
	"not":       {Kind: KEYWORD, Attr: NOT},
	"or":        {Kind: ADDOP, Attr: OR},
	"and":       {Kind: MULOP, Attr: AND},
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // 1-based column of the next rune
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func isSpace(r rune) bool  { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isIdPart(r rune) bool { return isLower(r) || isDigit(r) }

// skipBlanks discards whitespace and '#' comments.
func (l *Lexer) skipBlanks() {
	for l.pos < len(l.src) {
		switch r := l.peek(); {
		case isSpace(r):
			l.advance()
		case r == '#':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// NextToken scans and returns the next token. Once the input is exhausted it
// returns EOF on every call.
func (l *Lexer) NextToken() (Token, error) {
	l.skipBlanks()
	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Line: line, Col: col}, nil
	}

	r := l.peek()
	switch {
	case isLower(r):
		start := l.pos
		for l.pos < len(l.src) && isIdPart(l.peek()) {
			l.advance()
		}
		lexeme := string(l.src[start:l.pos])
		tok := Token{Kind: IDENTIFIER, Lexeme: lexeme, Line: line, Col: col}
		if kw, ok := keywords[lexeme]; ok {
			tok.Kind, tok.Attr = kw.Kind, kw.Attr
		}
		return tok, nil

	case isDigit(r):
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.advance()
		}
		return Token{Kind: NUMBER, Lexeme: string(l.src[start:l.pos]), Line: line, Col: col}, nil
	}

	l.advance()
	tok := Token{Lexeme: string(r), Line: line, Col: col}
	switch r {
	case ';':
		tok.Kind, tok.Attr = PUNCT, SEMICOLON
	case ',':
		tok.Kind, tok.Attr = PUNCT, COMMA
	case '(':
		tok.Kind, tok.Attr = PUNCT, LPAREN
	case ')':
		tok.Kind, tok.Attr = PUNCT, RPAREN
	case ':':
		tok.Kind, tok.Attr = PUNCT, COLON
		if l.peek() == '=' {
			l.advance()
			tok.Attr, tok.Lexeme = ASSIGN, ":="
		}
	case '=':
		tok.Kind, tok.Attr = RELOP, EQUALS
	case '<':
		tok.Kind, tok.Attr = RELOP, LESS
		switch l.peek() {
		case '>':
			l.advance()
			tok.Attr, tok.Lexeme = NOT_EQ, "<>"
		case '=':
			l.advance()
			tok.Attr, tok.Lexeme = LESS_EQ, "<="
		}
	case '>':
		tok.Kind, tok.Attr = RELOP, GREATER
		if l.peek() == '=' {
			l.advance()
			tok.Attr, tok.Lexeme = GREATER_EQ, ">="
		}
	case '+':
		tok.Kind, tok.Attr = ADDOP, PLUS
	case '-':
		tok.Kind, tok.Attr = ADDOP, MINUS
	case '*':
		tok.Kind, tok.Attr = MULOP, STAR
	case '/':
		tok.Kind, tok.Attr = MULOP, SLASH
	default:
		return Token{}, &LexError{Char: r, Line: line, Col: col}
	}
	return tok, nil
}

// Lex tokenizes src completely. The returned slice always ends with EOF.
func Lex(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}
