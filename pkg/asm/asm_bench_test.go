package asm

import (
	"fmt"
	"strings"
	"testing"
)

// smallProgram is a short counting loop.
const smallProgram = `_count:
		move R0, #10
		move n, R0
_while_cond0:
		move R0, n
		brez R0, _while_done1
		outb R0
		sub R0, #1
		move n, R0
		brun _while_cond0
_while_done1:
		halt
n:		data 1
`

// largeProgram is a long straight-line block with many data labels.
var largeProgram = func() string {
	var sb strings.Builder
	sb.WriteString("_big:\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "\t\tmove R0, v%d\n\t\tadd R0, #%d\n\t\tmove v%d, R0\n", i, i, (i+1)%500)
	}
	sb.WriteString("\t\thalt\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "v%d:\t\tdata 1\n", i)
	}
	return sb.String()
}()

func BenchmarkAssemble_Small(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(smallProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble_Large(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(largeProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}
