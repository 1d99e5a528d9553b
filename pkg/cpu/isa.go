package cpu

import "fmt"

// Opcode is a TrAL instruction.
type Opcode uint8

const (
	OpMOVE Opcode = iota
	OpADD
	OpSUB
	OpMUL
	OpDIV
	OpNEG
	OpNOT
	OpLEA
	OpBRUN
	OpBREZ
	OpBRPO
	OpBRNE
	OpOUTB
	OpHALT
)

var opNames = [...]string{
	OpMOVE: "move",
	OpADD:  "add",
	OpSUB:  "sub",
	OpMUL:  "mul",
	OpDIV:  "div",
	OpNEG:  "neg",
	OpNOT:  "not",
	OpLEA:  "lea",
	OpBRUN: "brun",
	OpBREZ: "brez",
	OpBRPO: "brpo",
	OpBRNE: "brne",
	OpOUTB: "outb",
	OpHALT: "halt",
}

func (o Opcode) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", int(o))
}

// Lookup returns the opcode for a mnemonic.
func Lookup(mnemonic string) (Opcode, bool) {
	for i, name := range opNames {
		if name == mnemonic {
			return Opcode(i), true
		}
	}
	return 0, false
}

// Mode says how an operand's Value is interpreted.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeReg       // Value is a register number
	ModeImm       // Value is the constant itself
	ModeMem       // Value is a data address
	ModeCode      // Value is an instruction index
)

type Operand struct {
	Mode  Mode
	Value int
}

func Reg(n int) Operand  { return Operand{Mode: ModeReg, Value: n} }
func Imm(v int) Operand  { return Operand{Mode: ModeImm, Value: v} }
func Mem(a int) Operand  { return Operand{Mode: ModeMem, Value: a} }
func Code(i int) Operand { return Operand{Mode: ModeCode, Value: i} }

func (o Operand) String() string {
	switch o.Mode {
	case ModeReg:
		return fmt.Sprintf("R%d", o.Value)
	case ModeImm:
		return fmt.Sprintf("#%d", o.Value)
	case ModeMem:
		return fmt.Sprintf("[%d]", o.Value)
	case ModeCode:
		return fmt.Sprintf("@%d", o.Value)
	}
	return "-"
}

// Instruction is one decoded TrAL instruction. Unused operands are ModeNone.
type Instruction struct {
	Op   Opcode
	A, B Operand
}

func (i Instruction) String() string {
	switch {
	case i.A.Mode == ModeNone:
		return i.Op.String()
	case i.B.Mode == ModeNone:
		return i.Op.String() + " " + i.A.String()
	}
	return i.Op.String() + " " + i.A.String() + ", " + i.B.String()
}

// Program is an assembled TrAL program: code and the size of the data
// segment it addresses.
type Program struct {
	Code     []Instruction
	DataSize int
	// Symbols maps every label to its code index or data address.
	Symbols map[string]Operand
}
