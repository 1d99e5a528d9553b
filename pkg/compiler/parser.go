package compiler

import (
	"io"
	"log/slog"
	"strconv"
)

// ExternalScope holds the program name, so top-level variables may reuse it.
const ExternalScope = "_EXTERNAL"

// State is everything one compilation mutates. A fresh State per run keeps
// label numbering and register assignment identical across runs.
type State struct {
	Symbols   *SymbolTable
	Registers *RegisterPool
	Emitter   *Emitter
}

// NewState returns an empty State whose emitter writes to w.
func NewState(w io.Writer) *State {
	return &State{
		Symbols:   NewSymbolTable(),
		Registers: NewRegisterPool(),
		Emitter:   NewEmitter(w),
	}
}

// value is the result of an expression production. op moves from a register
// to a spill temporary if its register is taken back.
type value struct {
	op  Operand
	typ ExprType
	at  Token // first token of the expression
}

// Translator parses TruPL and emits TrAL in a single pass.
//
// Grammar:
//
//	program        = "program" ID ";" declList block ";"
//	declList       = (identList ":" type ";")* (procDecl ";")*
//	procDecl       = "procedure" ID "(" [formals] ")" (identList ":" type ";")* block
//	formals        = identList ":" type (";" identList ":" type)*
//	block          = "begin" (stmt ";" | ";") (stmt ";")* "end"
//	stmt           = ifStmt | whileStmt | "print" expr | ID (":=" expr | "(" [exprList] ")")
//	ifStmt         = "if" expr "then" block ["else" block]
//	whileStmt      = "while" expr "loop" block
//	expr           = simpleExpr [relop simpleExpr]
//	simpleExpr     = term (addop term)*
//	term           = factor (mulop factor)*
//	factor         = ID | NUM | "(" expr ")" | ("+" | "-" | "not") factor
type Translator struct {
	src       TokenSource
	lookahead Token

	syms *SymbolTable
	regs *RegisterPool
	emit *Emitter
	live []*value // register-resident values, oldest first

	program string // name of the top-level scope
	scope   string // scope new declarations go into

	log   *slog.Logger
	trace bool
}

// NewTranslator reads tokens from src and mutates state.
func NewTranslator(src TokenSource, state *State, opts Options) *Translator {
	return &Translator{
		src:   src,
		syms:  state.Symbols,
		regs:  state.Registers,
		emit:  state.Emitter,
		scope: ExternalScope,
		log:   opts.logger(),
		trace: opts.Trace,
	}
}

// ParseProgram recognises one complete program. It returns a *SyntaxError
// for the first syntax mismatch, or the fatal *LexError, *SemanticError or
// *InternalError that stopped translation.
func (t *Translator) ParseProgram() error {
	return t.run(func() error {
		t.advance()
		if err := t.parseProgram(); err != nil {
			return err
		}
		return t.emit.Err()
	})
}

// run is the single recovery point for fatal errors raised by fail.
func (t *Translator) run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fatal)
			if !ok {
				panic(r)
			}
			err = f.err
		}
	}()
	return fn()
}

// DoneWithInput reports whether the lookahead is EOF.
func (t *Translator) DoneWithInput() bool {
	return t.lookahead.Kind == EOF
}

// Lookahead returns the current unconsumed token.
func (t *Translator) Lookahead() Token { return t.lookahead }

func (t *Translator) fail(err error) {
	panic(fatal{err: err})
}

func (t *Translator) advance() {
	tok, err := t.src.NextToken()
	if err != nil {
		t.fail(err)
	}
	t.lookahead = tok
}

func (t *Translator) at(k Kind, a Attr) bool {
	return t.lookahead.Is(k, a)
}

func (t *Translator) syntax(expected string) error {
	return &SyntaxError{Expected: expected, Found: t.lookahead}
}

// expect consumes the lookahead if it is k/a, otherwise it reports what was
// wanted. Nothing is consumed on mismatch.
func (t *Translator) expect(k Kind, a Attr) (Token, error) {
	if !t.at(k, a) {
		return t.lookahead, t.syntax(Token{Kind: k, Attr: a}.String())
	}
	tok := t.lookahead
	t.advance()
	return tok, nil
}

func (t *Translator) expectID() (Token, error) {
	if t.lookahead.Kind != IDENTIFIER {
		return t.lookahead, t.syntax(IDENTIFIER.String())
	}
	tok := t.lookahead
	t.advance()
	return tok, nil
}

func (t *Translator) enter(production string) {
	if t.trace {
		t.log.Debug("enter", "production", production, "lookahead", t.lookahead.String())
	}
}

// declare installs tok in scope, failing if the pair already exists.
func (t *Translator) declare(tok Token, scope string, typ ExprType, position int) {
	if t.syms.IsDeclared(tok.Lexeme, scope) {
		t.fail(alreadyDeclared(tok.Lexeme, tok))
	}
	t.syms.InstallParam(tok.Lexeme, scope, typ, position)
	t.log.Debug("install", "id", tok.Lexeme, "scope", scope, "position", position, "type", typ.String())
}

// suppress runs fn with code generation sent to a scratch emitter and
// register pool, so fn is fully checked but leaves no trace in the output or
// in the label counter.
func (t *Translator) suppress(fn func() error) error {
	emit, regs, live := t.emit, t.regs, t.live
	t.emit, t.regs, t.live = NewEmitter(io.Discard), NewRegisterPool(), nil
	defer func() { t.emit, t.regs, t.live = emit, regs, live }()
	return fn()
}

// ---------------------------------------------------------------------------
// Declarations

// PROGRAM -> program id ; DECL_LIST BLOCK ;
func (t *Translator) parseProgram() error {
	t.enter("PROGRAM")
	if !t.at(KEYWORD, PROGRAM) {
		return t.syntax("PROGRAM")
	}
	t.advance()
	name, err := t.expectID()
	if err != nil {
		return err
	}
	t.declare(name, ExternalScope, ProgramName, NoPosition)
	t.program, t.scope = name.Lexeme, name.Lexeme
	if _, err := t.expect(PUNCT, SEMICOLON); err != nil {
		return err
	}

	t.emit.Label("_" + t.program)

	if err := t.parseVariableDeclList(); err != nil {
		return err
	}
	if err := t.parseProcedureDeclList(); err != nil {
		return err
	}
	if err := t.parseBlock(); err != nil {
		return err
	}
	if _, err := t.expect(PUNCT, SEMICOLON); err != nil {
		return err
	}

	t.emit.Halt()
	for _, id := range t.syms.Storage(t.program) {
		t.emit.Data(id, 1)
	}
	for _, tmp := range t.emit.Spills() {
		t.emit.Data(tmp, 1)
	}
	return nil
}

// VARIABLE_DECL_LIST -> VARIABLE_DECL ; VARIABLE_DECL_LIST | λ
func (t *Translator) parseVariableDeclList() error {
	t.enter("VARIABLE_DECL_LIST")
	for t.lookahead.Kind == IDENTIFIER {
		if err := t.parseVariableDecl(); err != nil {
			return err
		}
		if _, err := t.expect(PUNCT, SEMICOLON); err != nil {
			return err
		}
	}
	if !t.at(KEYWORD, PROCEDURE) && !t.at(KEYWORD, BEGIN) {
		return t.syntax("VARIABLE_DECL_LIST")
	}
	return nil
}

// VARIABLE_DECL -> IDENTIFIER_LIST : STANDARD_TYPE
func (t *Translator) parseVariableDecl() error {
	t.enter("VARIABLE_DECL")
	err := t.parseIdentifierList(func(tok Token) {
		t.declare(tok, t.scope, Unknown, NoPosition)
	})
	if err != nil {
		return err
	}
	if _, err := t.expect(PUNCT, COLON); err != nil {
		return err
	}
	return t.parseStandardType()
}

// IDENTIFIER_LIST -> id IDENTIFIER_LIST_PRM
// IDENTIFIER_LIST_PRM -> , id IDENTIFIER_LIST_PRM | λ
func (t *Translator) parseIdentifierList(install func(Token)) error {
	t.enter("IDENTIFIER_LIST")
	for {
		tok, err := t.expectID()
		if err != nil {
			return err
		}
		install(tok)
		if !t.at(PUNCT, COMMA) {
			break
		}
		t.advance()
	}
	if !t.at(PUNCT, COLON) {
		return t.syntax("IDENTIFIER_LIST_PRM")
	}
	return nil
}

// STANDARD_TYPE -> int | bool
func (t *Translator) parseStandardType() error {
	t.enter("STANDARD_TYPE")
	var typ ExprType
	switch {
	case t.at(KEYWORD, INT):
		typ = Int
	case t.at(KEYWORD, BOOL):
		typ = Bool
	default:
		return t.syntax("STANDARD_TYPE")
	}
	t.advance()
	n := t.syms.PatchUnknown(typ)
	t.log.Debug("patch", "type", typ.String(), "entries", n)
	return nil
}

// PROCEDURE_DECL_LIST -> PROCEDURE_DECL ; PROCEDURE_DECL_LIST | λ
func (t *Translator) parseProcedureDeclList() error {
	t.enter("PROCEDURE_DECL_LIST")
	for t.at(KEYWORD, PROCEDURE) {
		if err := t.parseProcedureDecl(); err != nil {
			return err
		}
		if _, err := t.expect(PUNCT, SEMICOLON); err != nil {
			return err
		}
	}
	if !t.at(KEYWORD, BEGIN) {
		return t.syntax("PROCEDURE_DECL_LIST")
	}
	return nil
}

// PROCEDURE_DECL -> procedure id ( PROCEDURE_ARGS ) VARIABLE_DECL_LIST BLOCK
//
// The procedure's own name goes into the enclosing scope; its formals,
// locals and body live in a scope named after it. Bodies are checked but
// not lowered.
func (t *Translator) parseProcedureDecl() error {
	t.enter("PROCEDURE_DECL")
	t.advance() // procedure
	name, err := t.expectID()
	if err != nil {
		return err
	}
	t.declare(name, t.scope, ProcedureName, NoPosition)

	outer := t.scope
	t.scope = name.Lexeme
	defer func() { t.scope = outer }()

	if _, err := t.expect(PUNCT, LPAREN); err != nil {
		return err
	}
	if err := t.parseProcedureArgs(); err != nil {
		return err
	}
	if _, err := t.expect(PUNCT, RPAREN); err != nil {
		return err
	}
	if err := t.parseVariableDeclList(); err != nil {
		return err
	}
	return t.suppress(t.parseBlock)
}

// PROCEDURE_ARGS -> FORMAL_PARM_LIST | λ
func (t *Translator) parseProcedureArgs() error {
	t.enter("PROCEDURE_ARGS")
	switch {
	case t.lookahead.Kind == IDENTIFIER:
		return t.parseFormalParmList()
	case t.at(PUNCT, RPAREN):
		return nil
	}
	return t.syntax("PROCEDURE_ARGS")
}

// FORMAL_PARM_LIST -> id IDENTIFIER_LIST_PRM : STANDARD_TYPE FORMAL_PARM_LIST_HAT
// FORMAL_PARM_LIST_HAT -> ; FORMAL_PARM_LIST | λ
func (t *Translator) parseFormalParmList() error {
	t.enter("FORMAL_PARM_LIST")
	position := 0
	install := func(tok Token) {
		t.declare(tok, t.scope, Unknown, position)
		position++
	}
	for {
		if err := t.parseIdentifierList(install); err != nil {
			return err
		}
		if _, err := t.expect(PUNCT, COLON); err != nil {
			return err
		}
		if err := t.parseStandardType(); err != nil {
			return err
		}
		switch {
		case t.at(PUNCT, SEMICOLON):
			t.advance()
		case t.at(PUNCT, RPAREN):
			return nil
		default:
			return t.syntax("FORMAL_PARM_LIST_HAT")
		}
	}
}

// ---------------------------------------------------------------------------
// Statements

// BLOCK -> begin STMT_LIST end
func (t *Translator) parseBlock() error {
	t.enter("BLOCK")
	if _, err := t.expect(KEYWORD, BEGIN); err != nil {
		return err
	}
	if err := t.parseStmtList(); err != nil {
		return err
	}
	_, err := t.expect(KEYWORD, END)
	return err
}

func (t *Translator) atStmt() bool {
	return t.lookahead.Kind == IDENTIFIER ||
		t.at(KEYWORD, IF) || t.at(KEYWORD, WHILE) || t.at(KEYWORD, PRINT)
}

// STMT_LIST -> STMT ; STMT_LIST_PRM | ; STMT_LIST_PRM
// STMT_LIST_PRM -> STMT ; STMT_LIST_PRM | λ
func (t *Translator) parseStmtList() error {
	t.enter("STMT_LIST")
	switch {
	case t.atStmt():
		if err := t.parseStmt(); err != nil {
			return err
		}
		if _, err := t.expect(PUNCT, SEMICOLON); err != nil {
			return err
		}
	case t.at(PUNCT, SEMICOLON):
		t.advance()
	default:
		return t.syntax("STMT_LIST")
	}
	for t.atStmt() {
		if err := t.parseStmt(); err != nil {
			return err
		}
		if _, err := t.expect(PUNCT, SEMICOLON); err != nil {
			return err
		}
	}
	if !t.at(KEYWORD, END) {
		return t.syntax("STMT_LIST_PRM")
	}
	return nil
}

// STMT -> IF_STMT | WHILE_STMT | PRINT_STMT | id ADHOC_AS_PC_TAIL
func (t *Translator) parseStmt() error {
	t.enter("STMT")
	switch {
	case t.at(KEYWORD, IF):
		return t.parseIfStmt()
	case t.at(KEYWORD, WHILE):
		return t.parseWhileStmt()
	case t.at(KEYWORD, PRINT):
		return t.parsePrintStmt()
	case t.lookahead.Kind == IDENTIFIER:
		id := t.lookahead
		t.advance()
		return t.parseAdhocTail(id)
	}
	return t.syntax("STMT")
}

// ADHOC_AS_PC_TAIL -> := EXPR | ( EXPR_LIST )
func (t *Translator) parseAdhocTail(id Token) error {
	t.enter("ADHOC_AS_PC_TAIL")
	switch {
	case t.at(PUNCT, ASSIGN):
		if !t.syms.IsDeclared(id.Lexeme, t.scope) {
			t.fail(notDeclared(id.Lexeme, id))
		}
		t.advance()
		v, err := t.parseExpr()
		if err != nil {
			return err
		}
		if want := t.syms.Type(id.Lexeme, t.scope); v.typ != want {
			t.fail(typeMismatch(want, v.typ, v.at))
		}
		r := t.materialize(v)
		t.emit.Move(Memory(id.Lexeme), r)
		t.release(v)
		return nil

	case t.at(PUNCT, LPAREN):
		if !t.syms.IsDeclared(id.Lexeme, t.scope) {
			t.fail(notDeclared(id.Lexeme, id))
		}
		if callee := t.syms.Type(id.Lexeme, t.program); callee != ProcedureName {
			t.fail(typeMismatch(ProcedureName, callee, id))
		}
		t.advance()
		err := t.suppress(func() error { return t.parseExprList(id.Lexeme) })
		if err != nil {
			return err
		}
		_, err = t.expect(PUNCT, RPAREN)
		return err
	}
	return t.syntax("ADHOC_AS_PC_TAIL")
}

// IF_STMT -> if EXPR then BLOCK IF_STMT_HAT
// IF_STMT_HAT -> else BLOCK | λ
func (t *Translator) parseIfStmt() error {
	t.enter("IF_STMT")
	t.advance() // if
	cond, err := t.parseExpr()
	if err != nil {
		return err
	}
	if cond.typ != Bool {
		t.fail(typeMismatch(Bool, cond.typ, cond.at))
	}
	if _, err := t.expect(KEYWORD, THEN); err != nil {
		return err
	}

	r := t.materialize(cond)
	elseLabel := t.emit.NewLabel("else")
	doneLabel := t.emit.NewLabel("if_done")
	t.emit.CondBranch(BREZ, r, elseLabel)
	t.release(cond)

	if err := t.parseBlock(); err != nil {
		return err
	}
	t.emit.Branch(doneLabel)
	t.emit.Label(elseLabel)

	switch {
	case t.at(KEYWORD, ELSE):
		t.advance()
		if err := t.parseBlock(); err != nil {
			return err
		}
	case t.at(PUNCT, SEMICOLON):
	default:
		return t.syntax("IF_STMT_HAT")
	}
	t.emit.Label(doneLabel)
	return nil
}

// WHILE_STMT -> while EXPR loop BLOCK
func (t *Translator) parseWhileStmt() error {
	t.enter("WHILE_STMT")
	t.advance() // while
	condLabel := t.emit.NewLabel("while_cond")
	doneLabel := t.emit.NewLabel("while_done")
	t.emit.Label(condLabel)

	cond, err := t.parseExpr()
	if err != nil {
		return err
	}
	if cond.typ != Bool {
		t.fail(typeMismatch(Bool, cond.typ, cond.at))
	}
	if _, err := t.expect(KEYWORD, LOOP); err != nil {
		return err
	}
	r := t.materialize(cond)
	t.emit.CondBranch(BREZ, r, doneLabel)
	t.release(cond)

	if err := t.parseBlock(); err != nil {
		return err
	}
	t.emit.Branch(condLabel)
	t.emit.Label(doneLabel)
	return nil
}

// PRINT_STMT -> print EXPR
func (t *Translator) parsePrintStmt() error {
	t.enter("PRINT_STMT")
	t.advance() // print
	v, err := t.parseExpr()
	if err != nil {
		return err
	}
	if !v.typ.IsScalar() {
		t.fail(printTypeMismatch(v.typ, v.at))
	}
	r := t.materialize(v)
	t.emit.OneAddr(OUTB, r)
	t.release(v)
	return nil
}

func (t *Translator) atExpr() bool {
	switch t.lookahead.Kind {
	case IDENTIFIER, NUMBER:
		return true
	}
	return t.at(PUNCT, LPAREN) || t.at(ADDOP, PLUS) || t.at(ADDOP, MINUS) || t.at(KEYWORD, NOT)
}

// EXPR_LIST -> ACTUAL_PARM_LIST | λ
// ACTUAL_PARM_LIST -> EXPR ACTUAL_PARM_LIST_HAT
// ACTUAL_PARM_LIST_HAT -> , EXPR ACTUAL_PARM_LIST_HAT | λ
//
// Each actual is checked against the callee's formal at the same position.
// Surplus actuals meet GARBAGE_T and fail; missing ones go unnoticed.
func (t *Translator) parseExprList(callee string) error {
	t.enter("EXPR_LIST")
	if t.at(PUNCT, RPAREN) {
		return nil
	}
	if !t.atExpr() {
		return t.syntax("EXPR_LIST")
	}
	for position := 0; ; position++ {
		v, err := t.parseExpr()
		if err != nil {
			return err
		}
		if want := t.syms.TypeAt(callee, position); v.typ != want {
			t.fail(typeMismatch(want, v.typ, v.at))
		}
		t.release(v)
		if !t.at(PUNCT, COMMA) {
			break
		}
		t.advance()
	}
	if !t.at(PUNCT, RPAREN) {
		return t.syntax("ACTUAL_PARM_LIST_HAT")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Expressions

// EXPR -> SIMPLE_EXPR EXPR_HAT
// EXPR_HAT -> relop SIMPLE_EXPR | λ
func (t *Translator) parseExpr() (*value, error) {
	t.enter("EXPR")
	left, err := t.parseSimpleExpr()
	if err != nil {
		return nil, err
	}
	if t.lookahead.Kind != RELOP {
		return left, nil
	}
	op := t.lookahead.Attr
	t.advance()
	right, err := t.parseSimpleExpr()
	if err != nil {
		return nil, err
	}
	t.checkOperands(Int, left, right)
	t.relational(op, left, right)
	return left, nil
}

// SIMPLE_EXPR -> TERM SIMPLE_EXPR_PRM
// SIMPLE_EXPR_PRM -> addop TERM SIMPLE_EXPR_PRM | λ
func (t *Translator) parseSimpleExpr() (*value, error) {
	t.enter("SIMPLE_EXPR")
	left, err := t.parseTerm()
	if err != nil {
		return nil, err
	}
	for t.lookahead.Kind == ADDOP {
		op := t.lookahead.Attr
		t.advance()
		right, err := t.parseTerm()
		if err != nil {
			return nil, err
		}
		switch op {
		case PLUS:
			t.checkOperands(Int, left, right)
			t.combine(ADD, left, right)
		case MINUS:
			t.checkOperands(Int, left, right)
			t.combine(SUB, left, right)
		case OR:
			t.checkOperands(Bool, left, right)
			r := t.combine(ADD, left, right)
			done := t.emit.NewLabel("done")
			t.emit.CondBranch(BREZ, r, done)
			t.emit.Move(r, Immediate(1))
			t.emit.Label(done)
		}
	}
	return left, nil
}

// TERM -> FACTOR TERM_PRM
// TERM_PRM -> mulop FACTOR TERM_PRM | λ
func (t *Translator) parseTerm() (*value, error) {
	t.enter("TERM")
	left, err := t.parseFactor()
	if err != nil {
		return nil, err
	}
	for t.lookahead.Kind == MULOP {
		op := t.lookahead.Attr
		t.advance()
		right, err := t.parseFactor()
		if err != nil {
			return nil, err
		}
		switch op {
		case STAR:
			t.checkOperands(Int, left, right)
			t.combine(MUL, left, right)
		case SLASH:
			t.checkOperands(Int, left, right)
			t.combine(DIV, left, right)
		case AND:
			t.checkOperands(Bool, left, right)
			t.combine(MUL, left, right)
		}
	}
	return left, nil
}

// FACTOR -> id | num | ( EXPR ) | SIGN FACTOR
// SIGN -> + | - | not
func (t *Translator) parseFactor() (*value, error) {
	t.enter("FACTOR")
	start := t.lookahead
	switch {
	case start.Kind == IDENTIFIER:
		if !t.syms.IsDeclared(start.Lexeme, t.scope) {
			t.fail(notDeclared(start.Lexeme, start))
		}
		t.advance()
		return &value{op: Memory(start.Lexeme), typ: t.syms.Type(start.Lexeme, t.scope), at: start}, nil

	case start.Kind == NUMBER:
		n, err := strconv.Atoi(start.Lexeme)
		if err != nil {
			t.fail(&InternalError{Err: err})
		}
		t.advance()
		return &value{op: Immediate(n), typ: Int, at: start}, nil

	case t.at(PUNCT, LPAREN):
		t.advance()
		v, err := t.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := t.expect(PUNCT, RPAREN); err != nil {
			return nil, err
		}
		v.at = start
		return v, nil

	case t.at(ADDOP, PLUS), t.at(ADDOP, MINUS), t.at(KEYWORD, NOT):
		t.advance()
		v, err := t.parseFactor()
		if err != nil {
			return nil, err
		}
		switch start.Attr {
		case PLUS:
			t.checkOperands(Int, v)
		case MINUS:
			t.checkOperands(Int, v)
			t.emit.OneAddr(NEG, t.materialize(v))
		case NOT:
			t.checkOperands(Bool, v)
			t.emit.OneAddr(NOTI, t.materialize(v))
		}
		v.at = start
		return v, nil
	}
	return nil, t.syntax("FACTOR")
}

// checkOperands fails on the first operand whose type is not want.
func (t *Translator) checkOperands(want ExprType, vs ...*value) {
	for _, v := range vs {
		if v.typ != want {
			t.fail(typeMismatch(want, v.typ, v.at))
		}
	}
}

// ---------------------------------------------------------------------------
// Code generation

// materialize makes sure v is in a register and returns it.
func (t *Translator) materialize(v *value) Register {
	if r, ok := v.op.(Register); ok {
		return r
	}
	r := t.allocate()
	t.emit.Move(r, v.op)
	v.op = r
	t.live = append(t.live, v)
	return r
}

// allocate returns a free register, spilling the most recently loaded value
// when the pool is empty.
func (t *Translator) allocate() Register {
	if !t.regs.Available() && len(t.live) > 0 {
		t.spill(t.live[len(t.live)-1])
	}
	r, err := t.regs.Allocate()
	if err != nil {
		t.fail(&InternalError{Err: err})
	}
	return r
}

func (t *Translator) spill(v *value) {
	r := v.op.(Register)
	tmp := t.emit.NewSpill()
	t.emit.Move(tmp, r)
	t.release(v)
	v.op = tmp
}

// release frees v's register, if it holds one.
func (t *Translator) release(v *value) {
	r, ok := v.op.(Register)
	if !ok {
		return
	}
	if err := t.regs.Free(r); err != nil {
		t.fail(&InternalError{Err: err})
	}
	for i := len(t.live) - 1; i >= 0; i-- {
		if t.live[i] == v {
			t.live = append(t.live[:i], t.live[i+1:]...)
			break
		}
	}
}

// combine emits inst left, right with the result in left's register.
// Callers check operand types beforehand.
func (t *Translator) combine(inst Inst, left, right *value) Register {
	r := t.materialize(left)
	t.emit.TwoAddr(inst, r, right.op)
	t.release(right)
	return r
}

// relational lowers a comparison to a subtraction and sign tests that leave
// 1 or 0 in left's register.
func (t *Translator) relational(op Attr, left, right *value) {
	r := t.combine(SUB, left, right)
	left.typ = Bool

	falseLabel := t.emit.NewLabel("false")
	doneLabel := t.emit.NewLabel("done")
	var branches []Inst
	switch op {
	case EQUALS:
		branches = []Inst{BRNE, BRPO}
	case NOT_EQ:
		branches = []Inst{BREZ}
	case GREATER:
		branches = []Inst{BRNE, BREZ}
	case GREATER_EQ:
		branches = []Inst{BRNE}
	case LESS:
		branches = []Inst{BREZ, BRPO}
	case LESS_EQ:
		branches = []Inst{BRPO}
	}
	for _, b := range branches {
		t.emit.CondBranch(b, r, falseLabel)
	}
	t.emit.Move(r, Immediate(1))
	t.emit.Branch(doneLabel)
	t.emit.Label(falseLabel)
	t.emit.Move(r, Immediate(0))
	t.emit.Label(doneLabel)
}
