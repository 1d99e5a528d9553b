package compiler

import (
	"fmt"
	"strings"
)

// ExprType is the type attached to every symbol and every expression.
type ExprType int

const (
	Int ExprType = iota
	Bool
	ProgramName
	ProcedureName
	Unknown // declared but its type has not been read yet
	NoType  // statements and other untyped constructs
	Garbage // result of a failed lookup
)

var exprTypeNames = [...]string{
	Int:           "INT_T",
	Bool:          "BOOL_T",
	ProgramName:   "PROGRAM_T",
	ProcedureName: "PROCEDURE_T",
	Unknown:       "UNKNOWN_T",
	NoType:        "NO_T",
	Garbage:       "GARBAGE_T",
}

func (t ExprType) String() string {
	if int(t) >= 0 && int(t) < len(exprTypeNames) {
		return exprTypeNames[t]
	}
	return fmt.Sprintf("ExprType(%d)", int(t))
}

// IsScalar reports whether values of this type can live in memory and be
// printed.
func (t ExprType) IsScalar() bool {
	return t == Int || t == Bool
}

// NoPosition marks an entry that is not a formal parameter.
const NoPosition = -1

// Entry is one row of the symbol table.
type Entry struct {
	ID       string
	Scope    string
	Position int // 0-based index among the procedure's formals, or NoPosition
	Type     ExprType
}

// SymbolTable is a flat, append-only list of declarations keyed by the
// (identifier, scope) pair. Scopes are named after the program or procedure
// that owns them; there is no nesting.
type SymbolTable struct {
	entries []Entry
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Install appends a non-parameter entry. Callers check IsDeclared first.
func (s *SymbolTable) Install(id, scope string, typ ExprType) {
	s.InstallParam(id, scope, typ, NoPosition)
}

// InstallParam appends an entry with an explicit formal-parameter position.
func (s *SymbolTable) InstallParam(id, scope string, typ ExprType, position int) {
	s.entries = append(s.entries, Entry{ID: id, Scope: scope, Position: position, Type: typ})
}

func (s *SymbolTable) IsDeclared(id, scope string) bool {
	_, ok := s.lookup(id, scope)
	return ok
}

// Type returns the type of id in scope, or Garbage when it is absent.
func (s *SymbolTable) Type(id, scope string) ExprType {
	if e, ok := s.lookup(id, scope); ok {
		return e.Type
	}
	return Garbage
}

// TypeAt returns the type of the formal parameter at position in the
// procedure named scope, or Garbage when there is none.
func (s *SymbolTable) TypeAt(scope string, position int) ExprType {
	for _, e := range s.entries {
		if e.Scope == scope && e.Position == position {
			return e.Type
		}
	}
	return Garbage
}

// PatchUnknown rewrites every Unknown entry to typ and reports how many
// entries changed.
func (s *SymbolTable) PatchUnknown(typ ExprType) int {
	n := 0
	for i := range s.entries {
		if s.entries[i].Type == Unknown {
			s.entries[i].Type = typ
			n++
		}
	}
	return n
}

func (s *SymbolTable) lookup(id, scope string) (Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id && e.Scope == scope {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the table in installation order.
func (s *SymbolTable) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Storage returns the identifiers in scope that need a data word, in
// installation order.
func (s *SymbolTable) Storage(scope string) []string {
	var names []string
	for _, e := range s.entries {
		if e.Scope == scope && e.Position == NoPosition && e.Type.IsScalar() {
			names = append(names, e.ID)
		}
	}
	return names
}

func (s *SymbolTable) Len() int { return len(s.entries) }

// String returns a dump of the table in installation order.
func (s *SymbolTable) String() string {
	if len(s.entries) == 0 {
		return "Symbols: (empty)\n"
	}
	var sb strings.Builder
	sb.WriteString("Symbols:\n")
	for _, e := range s.entries {
		fmt.Fprintf(&sb, "  %-20s  Scope: %-12s Position: %2d  Type: %s\n", e.ID, e.Scope, e.Position, e.Type)
	}
	return sb.String()
}
