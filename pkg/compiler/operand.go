package compiler

import "strconv"

// Operand is one of Immediate, Register or Memory.
type Operand interface {
	String() string
	isOperand()
}

// Immediate is a literal constant, rendered #n.
type Immediate int

// Register is a machine register, rendered Rn.
type Register int

// Memory is a named memory location: a variable or a spill temporary.
type Memory string

func (i Immediate) String() string { return "#" + strconv.Itoa(int(i)) }
func (r Register) String() string  { return "R" + strconv.Itoa(int(r)) }
func (m Memory) String() string    { return string(m) }

func (Immediate) isOperand() {}
func (Register) isOperand()  {}
func (Memory) isOperand()    {}

// Inst is a TrAL mnemonic.
type Inst int

const (
	MOVE Inst = iota
	ADD
	SUB
	MUL
	DIV
	NEG
	NOTI // bitwise/logical not; NOT is the keyword attribute
	LEA
	BRUN
	BREZ
	BRPO
	BRNE
	OUTB
	HALT
)

var instNames = [...]string{
	MOVE: "move",
	ADD:  "add",
	SUB:  "sub",
	MUL:  "mul",
	DIV:  "div",
	NEG:  "neg",
	NOTI: "not",
	LEA:  "lea",
	BRUN: "brun",
	BREZ: "brez",
	BRPO: "brpo",
	BRNE: "brne",
	OUTB: "outb",
	HALT: "halt",
}

func (i Inst) String() string {
	if int(i) >= 0 && int(i) < len(instNames) {
		return instNames[i]
	}
	return "Inst(" + strconv.Itoa(int(i)) + ")"
}
