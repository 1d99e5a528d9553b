package asm

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"trupl/pkg/cpu"
)

type operandClass uint8

const (
	classReg    operandClass = iota // Rn
	classDest                       // Rn or data label
	classSource                     // Rn, #imm or data label
	classMem                        // data label
	classCode                       // code label
)

var signatures = map[cpu.Opcode][]operandClass{
	cpu.OpMOVE: {classDest, classSource},
	cpu.OpADD:  {classReg, classSource},
	cpu.OpSUB:  {classReg, classSource},
	cpu.OpMUL:  {classReg, classSource},
	cpu.OpDIV:  {classReg, classSource},
	cpu.OpNEG:  {classReg},
	cpu.OpNOT:  {classReg},
	cpu.OpLEA:  {classReg, classMem},
	cpu.OpBRUN: {classCode},
	cpu.OpBREZ: {classReg, classCode},
	cpu.OpBRPO: {classReg, classCode},
	cpu.OpBRNE: {classReg, classCode},
	cpu.OpOUTB: {classReg},
	cpu.OpHALT: {},
}

const dataDirective = "data"

// Assembler turns TrAL text into a cpu.Program. Code labels resolve to
// instruction indices and data labels to word addresses.
type Assembler struct {
	code map[string]int
	data map[string]int
}

type parsedLine struct {
	lineNo   int
	labels   []string
	mnemonic string
	operands []string
}

func NewAssembler() *Assembler {
	return &Assembler{
		code: make(map[string]int),
		data: make(map[string]int),
	}
}

// Assemble assembles code with a fresh Assembler. The returned source map
// takes an instruction index to its 1-based source line.
func Assemble(code string) (*cpu.Program, map[int]int, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) (*cpu.Program, map[int]int, error) {
	lines := strings.Split(code, "\n")

	dataSize, err := a.pass1(lines)
	if err != nil {
		return nil, nil, err
	}

	prog, sourceMap, err := a.pass2(lines)
	if err != nil {
		return nil, nil, err
	}
	prog.DataSize = dataSize
	prog.Symbols = a.symbols()
	return prog, sourceMap, nil
}

func (a *Assembler) pass1(lines []string) (int, error) {
	var index, address int
	var pending []string

	bind := func(table map[string]int, at int) {
		for _, lbl := range pending {
			table[lbl] = at
		}
		pending = pending[:0]
	}

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return 0, err
		}

		for _, lbl := range p.labels {
			if a.defined(lbl) || slices.Contains(pending, lbl) {
				return 0, fmt.Errorf("duplicate label '%s' on line %d", lbl, lineNo)
			}
			pending = append(pending, lbl)
		}

		if p.mnemonic == "" {
			continue
		}

		if p.mnemonic == dataDirective {
			size, err := parseSize(p.operands, lineNo)
			if err != nil {
				return 0, err
			}
			if len(pending) == 0 {
				return 0, fmt.Errorf("data without a label on line %d", lineNo)
			}
			bind(a.data, address)
			address += size
			continue
		}

		if _, ok := cpu.Lookup(p.mnemonic); !ok {
			return 0, fmt.Errorf("unknown instruction on line %d: %s", lineNo, p.mnemonic)
		}
		bind(a.code, index)
		index++
	}

	// Trailing labels mark the end of the code.
	bind(a.code, index)
	return address, nil
}

func (a *Assembler) pass2(lines []string) (*cpu.Program, map[int]int, error) {
	prog := &cpu.Program{}
	sourceMap := make(map[int]int)

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, nil, err
		}

		if p.mnemonic == "" || p.mnemonic == dataDirective {
			continue
		}

		opcode, _ := cpu.Lookup(p.mnemonic)
		sig := signatures[opcode]
		if len(p.operands) != len(sig) {
			return nil, nil, fmt.Errorf("%s expects %d operands on line %d", p.mnemonic, len(sig), lineNo)
		}

		instr := cpu.Instruction{Op: opcode}
		for n, class := range sig {
			op, err := a.parseOperand(p.operands[n], class, lineNo)
			if err != nil {
				return nil, nil, err
			}
			if n == 0 {
				instr.A = op
			} else {
				instr.B = op
			}
		}

		sourceMap[len(prog.Code)] = lineNo
		prog.Code = append(prog.Code, instr)
	}

	return prog, sourceMap, nil
}

func (a *Assembler) parseOperand(token string, class operandClass, lineNo int) (cpu.Operand, error) {
	switch {
	case isRegister(token):
		if class != classReg && class != classDest && class != classSource {
			return cpu.Operand{}, fmt.Errorf("register '%s' not allowed here on line %d", token, lineNo)
		}
		n, err := parseRegister(token, lineNo)
		return cpu.Reg(n), err

	case strings.HasPrefix(token, "#"):
		if class != classSource {
			return cpu.Operand{}, fmt.Errorf("immediate '%s' not allowed here on line %d", token, lineNo)
		}
		return parseImmediate(token, lineNo)
	}

	if !isIdentifier(token) {
		return cpu.Operand{}, fmt.Errorf("invalid operand '%s' on line %d", token, lineNo)
	}

	if class == classCode {
		idx, ok := a.code[token]
		if !ok {
			return cpu.Operand{}, fmt.Errorf("undefined code label '%s' on line %d", token, lineNo)
		}
		return cpu.Code(idx), nil
	}

	if class == classReg {
		return cpu.Operand{}, fmt.Errorf("expected register, got '%s' on line %d", token, lineNo)
	}
	addr, ok := a.data[token]
	if !ok {
		return cpu.Operand{}, fmt.Errorf("undefined data label '%s' on line %d", token, lineNo)
	}
	return cpu.Mem(addr), nil
}

func (a *Assembler) defined(label string) bool {
	_, inCode := a.code[label]
	_, inData := a.data[label]
	return inCode || inData
}

func (a *Assembler) symbols() map[string]cpu.Operand {
	syms := make(map[string]cpu.Operand, len(a.code)+len(a.data))
	for name, idx := range a.code {
		syms[name] = cpu.Code(idx)
	}
	for name, addr := range a.data {
		syms[name] = cpu.Mem(addr)
	}
	return syms
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw))
	if line == "" {
		return p, nil
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			break
		}

		beforeColon := strings.TrimSpace(line[:colon])
		if beforeColon == "" {
			return p, fmt.Errorf("invalid label on line %d", lineNo)
		}

		if strings.ContainsAny(beforeColon, " \t") {
			break
		}

		if !isIdentifier(beforeColon) {
			return p, fmt.Errorf("invalid label '%s' on line %d", beforeColon, lineNo)
		}

		p.labels = append(p.labels, beforeColon)
		line = strings.TrimSpace(line[colon+1:])
		if line == "" {
			return p, nil
		}
	}

	fields := strings.Fields(normalizeInstructionText(line))
	if len(fields) == 0 {
		return p, nil
	}

	p.mnemonic = strings.ToLower(fields[0])
	if len(fields) > 1 {
		p.operands = fields[1:]
	}

	return p, nil
}

func stripComments(line string) string {
	semicolon := strings.Index(line, ";")
	doubleSlash := strings.Index(line, "//")

	cut := -1
	if semicolon >= 0 {
		cut = semicolon
	}
	if doubleSlash >= 0 && (cut == -1 || doubleSlash < cut) {
		cut = doubleSlash
	}
	if cut >= 0 {
		return line[:cut]
	}
	return line
}

func normalizeInstructionText(line string) string {
	return strings.ReplaceAll(line, ",", " ")
}

func isRegister(token string) bool {
	if len(token) < 2 || token[0] != 'R' {
		return false
	}
	for _, r := range token[1:] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func parseRegister(token string, lineNo int) (int, error) {
	n, err := strconv.Atoi(token[1:])
	if err != nil || n >= cpu.NumRegisters {
		return 0, fmt.Errorf("invalid register '%s' on line %d", token, lineNo)
	}
	return n, nil
}

func parseImmediate(token string, lineNo int) (cpu.Operand, error) {
	v, err := strconv.Atoi(token[1:])
	if err != nil {
		return cpu.Operand{}, fmt.Errorf("invalid immediate '%s' on line %d", token, lineNo)
	}
	return cpu.Imm(v), nil
}

func parseSize(operands []string, lineNo int) (int, error) {
	if len(operands) != 1 {
		return 0, fmt.Errorf("data expects exactly one operand on line %d", lineNo)
	}
	size, err := strconv.Atoi(operands[0])
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("invalid data size on line %d: %s", lineNo, operands[0])
	}
	return size, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}
