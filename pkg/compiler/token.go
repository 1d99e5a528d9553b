package compiler

import "fmt"

// Kind identifies the category of a lexed token.
type Kind int

const (
	EOF Kind = iota // sentinel: end of input

	IDENTIFIER // variable / procedure / program name
	NUMBER     // decimal integer literal
	KEYWORD
	PUNCT
	RELOP
	ADDOP
	MULOP
)

var kindNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "ID",
	NUMBER:     "NUM",
	KEYWORD:    "KEYWORD",
	PUNCT:      "PUNC",
	RELOP:      "RELOP",
	ADDOP:      "ADDOP",
	MULOP:      "MULOP",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Attr refines a token's Kind. Identifiers, numbers and EOF carry NO_ATTR;
// their payload lives in Token.Lexeme.
type Attr int

const (
	NO_ATTR Attr = iota

	// Keywords
	PROGRAM   // "program"
	PROCEDURE // "procedure"
	INT       // "int"
	BOOL      // "bool"
	BEGIN     // "begin"
	END       // "end"
	IF        // "if"
	THEN      // "then"
	ELSE      // "else"
	WHILE     // "while"
	LOOP      // "loop"
	PRINT     // "print"
	NOT       // "not"

	// Punctuation
	SEMICOLON // ;
	COLON     // :
	COMMA     // ,
	ASSIGN    // :=
	LPAREN    // (
	RPAREN    // )

	// Relational operators
	EQUALS     // =
	NOT_EQ     // <>
	GREATER    // >
	GREATER_EQ // >=
	LESS       // <
	LESS_EQ    // <=

	// Additive operators
	PLUS  // +
	MINUS // -
	OR    // or

	// Multiplicative operators
	STAR  // *
	SLASH // /
	AND   // and
)

// attrText is the source spelling of each attribute; used for diagnostics.
var attrText = [...]string{
	NO_ATTR:    "",
	PROGRAM:    "program",
	PROCEDURE:  "procedure",
	INT:        "int",
	BOOL:       "bool",
	BEGIN:      "begin",
	END:        "end",
	IF:         "if",
	THEN:       "then",
	ELSE:       "else",
	WHILE:      "while",
	LOOP:       "loop",
	PRINT:      "print",
	NOT:        "not",
	SEMICOLON:  ";",
	COLON:      ":",
	COMMA:      ",",
	ASSIGN:     ":=",
	LPAREN:     "(",
	RPAREN:     ")",
	EQUALS:     "=",
	NOT_EQ:     "<>",
	GREATER:    ">",
	GREATER_EQ: ">=",
	LESS:       "<",
	LESS_EQ:    "<=",
	PLUS:       "+",
	MINUS:      "-",
	OR:         "or",
	STAR:       "*",
	SLASH:      "/",
	AND:        "and",
}

func (a Attr) String() string {
	if int(a) >= 0 && int(a) < len(attrText) {
		return attrText[a]
	}
	return fmt.Sprintf("Attr(%d)", int(a))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind   Kind
	Attr   Attr
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Col    int    // 1-based column of the first character
}

// Is reports whether t has the given kind and attribute.
func (t Token) Is(k Kind, a Attr) bool {
	return t.Kind == k && t.Attr == a
}

// String renders the token the way diagnostics quote it, e.g. KEYWORD:begin,
// ID:foo, NUM:10 or EOF.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case IDENTIFIER, NUMBER:
		return t.Kind.String() + ":" + t.Lexeme
	}
	return t.Kind.String() + ":" + t.Attr.String()
}

// TokenSource is the pull interface the Translator reads from. End of input is
// reported as an EOF token, repeatedly if asked again.
type TokenSource interface {
	NextToken() (Token, error)
}

// SliceSource replays a fixed token slice, then EOF forever.
type SliceSource struct {
	tokens []Token
	pos    int
}

func NewSliceSource(tokens []Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

func (s *SliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.tokens) {
		return Token{Kind: EOF}, nil
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}
