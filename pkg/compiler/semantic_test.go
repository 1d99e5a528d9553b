package compiler

import (
	"errors"
	"testing"
)

func TestSemanticValidPrograms(t *testing.T) {
	programs := map[string]string{
		"PrintConstant": "program foo0; begin print 10; end;",
		"PrintVariable": "program foo1; i: int; begin print i; end;",
		"ProcedureCall": "program foo2; " +
			"procedure add(a: int; b: int) begin print(a + b); end; " +
			"begin add(1, 2); end;",
		"Arithmetic": "program foo3; a, b: int; begin a := 1; b := a + 1; print(a + b); end;",
		"ParametersShadowGlobals": "program foo4; a, b: int; " +
			"procedure max(a, b: int) begin " +
			"if (a > b) then begin print a; end else begin print b; end; end; " +
			"begin a := 1; b := 2; max(a, b); end; ",
		"LocalsShadowGlobals": "program foo5; a, c: int; " +
			"procedure increment(a: int) c: int; begin c := 1; a := a + c; print a; end; " +
			"begin a := 0; increment(a); c := 1; increment(c); end; ",
		"Conditions": "program foo6; a: bool; b: int; begin " +
			"while (a) loop begin print a; end; " +
			"while (b = 1) loop begin print b; end; " +
			"if (not a) then begin print a; end; " +
			"if (b < 1) then begin print b; end; end;",
		"NestedControl": "program foo7; a: bool; b: int; begin " +
			"while (a or (b > 1)) loop begin " +
			"if not a then begin print(b > 1); end " +
			"else begin if b = 0 then begin print a; end; end; end; end; ",
		"ProcedureLocals": "program foo8; a, b, c, d: int; m, n, p, q: bool; " +
			"procedure bar() a, b, c, d: int; m, n, p, q: bool; begin " +
			"print(a + b + c + d); print(m and n and not p or q); end; " +
			"begin bar(); end; ",
		"MissingActualsUnchecked": "program foo9; " +
			"procedure two(a, b: int) begin print a; end; " +
			"begin two(1); end;",
		"TopLevelCall": "program p; procedure foo(a: int) begin print a; end; begin foo(10); end;",
	}
	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			res, err := Check(src, Options{})
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if res.Outcome != Success {
				t.Errorf("Outcome = %s, want success", res.Outcome)
			}
		})
	}
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind SemanticKind
		msg  string
	}{
		{
			name: "DuplicateGlobal",
			src:  "program foo; a: int; a: bool; begin print(a); end;",
			kind: AlreadyDeclared,
			msg:  "The identifier a has already been declared.",
		},
		{
			name: "DuplicateInOneList",
			src:  "program foo; a, b, a: int; begin print(a); end;",
			kind: AlreadyDeclared,
			msg:  "The identifier a has already been declared.",
		},
		{
			name: "DuplicateParameter",
			src:  "program foo; procedure p(x: int; x: bool) begin print 1; end; begin p(1, 0 = 0); end;",
			kind: AlreadyDeclared,
			msg:  "The identifier x has already been declared.",
		},
		{
			name: "LocalClashesWithParameter",
			src:  "program foo; procedure p(x: int) x: int; begin print x; end; begin p(1); end;",
			kind: AlreadyDeclared,
			msg:  "The identifier x has already been declared.",
		},
		{
			name: "ProcedureClashesWithGlobal",
			src:  "program foo; p: int; procedure p() begin print 1; end; begin p(); end;",
			kind: AlreadyDeclared,
			msg:  "The identifier p has already been declared.",
		},
		{
			name: "UndeclaredInPrint",
			src:  "program foo; begin print(a); end;",
			kind: NotDeclared,
			msg:  "The identifier a has not been declared.",
		},
		{
			name: "UndeclaredAssignmentTarget",
			src:  "program foo; begin a := 1; end;",
			kind: NotDeclared,
			msg:  "The identifier a has not been declared.",
		},
		{
			name: "UndeclaredProcedure",
			src:  "program foo; begin bar(); end;",
			kind: NotDeclared,
			msg:  "The identifier bar has not been declared.",
		},
		{
			name: "CallSiblingProcedure",
			src:  "program p; procedure bar() begin print 1; end; procedure foo() begin bar(); end; begin foo(); end;",
			kind: NotDeclared,
			msg:  "The identifier bar has not been declared.",
		},
		{
			name: "GlobalNotVisibleInProcedure",
			src:  "program foo; g: int; procedure p() begin print g; end; begin p(); end;",
			kind: NotDeclared,
			msg:  "The identifier g has not been declared.",
		},
		{
			name: "RecursiveCall",
			src:  "program p; procedure foo(a: int) begin foo(10); end; begin foo(10); end;",
			kind: NotDeclared,
			msg:  "The identifier foo has not been declared.",
		},
		{
			name: "IntCondition",
			src:  "program foo; begin if 1 then begin print(1); end; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected BOOL_T found INT_T.",
		},
		{
			name: "IntLoopCondition",
			src:  "program foo; begin while 1 loop begin print(1); end; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected BOOL_T found INT_T.",
		},
		{
			name: "BoolInSum",
			src:  "program foo; begin print((1 + (1 = 1))); end; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected INT_T found BOOL_T.",
		},
		{
			name: "IntInConjunction",
			src:  "program foo; begin print(((1 = 1) and 1)); end;",
			kind: TypeMismatch,
			msg:  "Type error: expected BOOL_T found INT_T.",
		},
		{
			name: "IntInIfConjunction",
			src:  "program foo; begin if (1 = 1) and 2 then begin print(1); end; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected BOOL_T found INT_T.",
		},
		{
			name: "NotOnInt",
			src:  "program foo; a: int; begin print not a; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected BOOL_T found INT_T.",
		},
		{
			name: "NegateBool",
			src:  "program foo; a: bool; begin print -a; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected INT_T found BOOL_T.",
		},
		{
			name: "CompareBools",
			src:  "program foo; a, b: bool; begin print a < b; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected INT_T found BOOL_T.",
		},
		{
			name: "AssignBoolToInt",
			src:  "program foo; a: int; begin a := 1 = 1; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected INT_T found BOOL_T.",
		},
		{
			name: "AssignToProcedure",
			src:  "program foo; procedure p() begin print 1; end; begin p := 1; end;",
			kind: TypeMismatch,
			msg:  "Type error: expected PROCEDURE_T found INT_T.",
		},
		{
			name: "CallVariable",
			src:  "program foo; a: int; begin a(1); end;",
			kind: TypeMismatch,
			msg:  "Type error: expected PROCEDURE_T found INT_T.",
		},
		{
			name: "ActualTypeMismatch",
			src:  "program foo; procedure increment(a: int) begin print(a + 1); end; begin increment(1 = 2); end;",
			kind: TypeMismatch,
			msg:  "Type error: expected INT_T found BOOL_T.",
		},
		{
			name: "TooManyActuals",
			src:  "program foo; procedure one(a: int) begin print a; end; begin one(1, 2); end;",
			kind: TypeMismatch,
			msg:  "Type error: expected GARBAGE_T found INT_T.",
		},
		{
			name: "PrintProcedure",
			src:  "program foo; procedure bar() begin print 1; end; begin print(bar); end;",
			kind: TypeMismatch,
			msg:  "Type error: expected INT_T or BOOL_T, found PROCEDURE_T.",
		},
		{
			name: "ErrorInsideProcedureBody",
			src:  "program foo; procedure p(x: int) begin if x then begin print x; end; end; begin p(1); end;",
			kind: TypeMismatch,
			msg:  "Type error: expected BOOL_T found INT_T.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compile(tt.src, Options{})
			var semErr *SemanticError
			if !errors.As(err, &semErr) {
				t.Fatalf("got %v, want *SemanticError", err)
			}
			if semErr.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", semErr.Kind, tt.kind)
			}
			if semErr.Error() != tt.msg {
				t.Errorf("message = %q, want %q", semErr.Error(), tt.msg)
			}
			if res.Outcome != Fatal {
				t.Errorf("Outcome = %s, want fatal", res.Outcome)
			}
		})
	}
}

func TestSemanticErrorPosition(t *testing.T) {
	src := "program foo;\nbegin\n  print zed;\nend;"
	_, err := Compile(src, Options{})
	line, col, ok := Position(err)
	if !ok || line != 3 || col != 9 {
		t.Errorf("Position = %d:%d (%v), want 3:9", line, col, ok)
	}
}

func TestDeclarationsPatchTypes(t *testing.T) {
	res, err := Check("program foo; a, b: int; c: bool; procedure p(x, y: bool; z: int) w: int; begin print w; end; begin print a; end;", Options{})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	syms := res.Symbols
	tests := []struct {
		id, scope string
		want      ExprType
	}{
		{"foo", ExternalScope, ProgramName},
		{"a", "foo", Int},
		{"b", "foo", Int},
		{"c", "foo", Bool},
		{"p", "foo", ProcedureName},
		{"x", "p", Bool},
		{"y", "p", Bool},
		{"z", "p", Int},
		{"w", "p", Int},
	}
	for _, tt := range tests {
		if got := syms.Type(tt.id, tt.scope); got != tt.want {
			t.Errorf("Type(%s, %s) = %s, want %s", tt.id, tt.scope, got, tt.want)
		}
	}
	for pos, want := range []ExprType{Bool, Bool, Int, Garbage} {
		if got := syms.TypeAt("p", pos); got != want {
			t.Errorf("TypeAt(p, %d) = %s, want %s", pos, got, want)
		}
	}
	for _, e := range syms.Entries() {
		if e.Type == Unknown {
			t.Errorf("entry %+v left Unknown", e)
		}
	}
}
