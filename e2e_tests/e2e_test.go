package main

import (
	"strings"
	"testing"

	"trupl/pkg/asm"
	"trupl/pkg/compiler"
	"trupl/pkg/cpu"
)

func TestCompilerAndCPU(t *testing.T) {
	// 1. Define TruPL source
	source := `program collatz;
	n, steps: int;
	procedure trace(v: int; odd: bool)
		scratch: int;
	begin
		scratch := v;
		if odd then begin print scratch; end;
	end;
begin
	n := 27;
	steps := 0;
	while n <> 1 loop
	begin
		if n / 2 * 2 = n then
		begin
			n := n / 2;
		end
		else
		begin
			trace(n, not (n / 2 * 2 = n));
			n := 3 * n + 1;
		end;
		steps := steps + 1;
	end;
	print steps;
end;
`

	// 2. Translate
	res, err := compiler.Compile(source, compiler.Options{})
	if err != nil {
		t.Fatalf("Translation failed: %v", err)
	}
	if res.Outcome != compiler.Success {
		t.Fatalf("Outcome = %s", res.Outcome)
	}

	t.Logf("Generated Assembly:\n%s", res.Assembly)

	// 3. Assemble
	prog, sourceMap, err := asm.Assemble(res.Assembly)
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}

	// 4. Instantiate CPU and load code
	var out strings.Builder
	vm := cpu.NewCPU()
	vm.Output = &out
	vm.Load(prog)

	// 5. Run
	if err := vm.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 6. Assertions

	// 27 takes 111 steps to reach 1; the call prints nothing.
	if out.String() != "111\n" {
		t.Errorf("Expected output %q, got %q", "111\n", out.String())
	}

	// Variables live in the data segment under their own names.
	addr := prog.Symbols["steps"]
	if addr.Mode != cpu.ModeMem {
		t.Fatalf("steps is not a data label: %v", addr)
	}
	if got, _ := vm.ReadMem(addr.Value); got != 111 {
		t.Errorf("Expected steps = 111, got %d", got)
	}
	if got, _ := vm.ReadMem(prog.Symbols["n"].Value); got != 1 {
		t.Errorf("Expected n = 1, got %d", got)
	}

	// Procedure locals get no storage.
	if _, ok := prog.Symbols["scratch"]; ok {
		t.Error("procedure local scratch should not be allocated")
	}

	// The entry label is the first instruction and maps to line 1.
	if prog.Symbols["_collatz"] != cpu.Code(0) {
		t.Errorf("entry label = %v", prog.Symbols["_collatz"])
	}
	if sourceMap[0] != 2 {
		t.Errorf("first instruction maps to line %d, want 2", sourceMap[0])
	}

	// The last instruction executed was halt.
	if !vm.Halted || prog.Code[vm.PC-1].Op != cpu.OpHALT {
		t.Errorf("machine stopped at pc %d without halting", vm.PC)
	}
}

func TestFailedTranslationIsNotAssembled(t *testing.T) {
	res, err := compiler.Compile("program p; a: int; begin a := 1; print a and a; end;", compiler.Options{})
	if err == nil {
		t.Fatal("expected a type error")
	}
	// Data directives come last, so partial output names storage it never
	// declares and the assembler rejects it.
	_, _, err = asm.Assemble(res.Assembly)
	if err == nil || !strings.Contains(err.Error(), "undefined data label 'a'") {
		t.Errorf("expected undefined data label error, got %v", err)
	}
}
