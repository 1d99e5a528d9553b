package cpu

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// NumRegisters matches the register bank the compiler allocates from.
const NumRegisters = 4

// DefaultMaxSteps is the limit Run applies when MaxSteps is zero.
const DefaultMaxSteps = 10_000_000

var (
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrDivideByZero   = errors.New("division by zero")
	ErrBadAddress     = errors.New("memory address out of range")
	ErrBadPC          = errors.New("program counter out of range")
	ErrBadInstruction = errors.New("malformed instruction")
)

// CPU executes TrAL programs. Memory is word addressed and separate from
// code.
type CPU struct {
	Regs [NumRegisters]int

	PC     int
	Halted bool
	Steps  int

	Code   []Instruction
	Memory []int

	// MaxSteps limits Run; zero means DefaultMaxSteps.
	MaxSteps int

	// Output receives one decimal line per outb. If nil, os.Stdout is used.
	Output io.Writer
}

func NewCPU() *CPU {
	return &CPU{}
}

// Load resets the machine and installs p.
func (c *CPU) Load(p *Program) {
	c.Regs = [NumRegisters]int{}
	c.PC = 0
	c.Halted = false
	c.Steps = 0
	c.Code = p.Code
	c.Memory = make([]int, p.DataSize)
}

func (c *CPU) outputSink() io.Writer {
	if c.Output != nil {
		return c.Output
	}
	return os.Stdout
}

// ReadMem returns the word at addr.
func (c *CPU) ReadMem(addr int) (int, error) {
	if addr < 0 || addr >= len(c.Memory) {
		return 0, fmt.Errorf("%w: %d", ErrBadAddress, addr)
	}
	return c.Memory[addr], nil
}

// WriteMem stores val at addr.
func (c *CPU) WriteMem(addr, val int) error {
	if addr < 0 || addr >= len(c.Memory) {
		return fmt.Errorf("%w: %d", ErrBadAddress, addr)
	}
	c.Memory[addr] = val
	return nil
}

func (c *CPU) reg(op Operand) (*int, error) {
	if op.Mode != ModeReg || op.Value < 0 || op.Value >= NumRegisters {
		return nil, fmt.Errorf("%w: expected register, got %s", ErrBadInstruction, op)
	}
	return &c.Regs[op.Value], nil
}

// load reads a source operand.
func (c *CPU) load(op Operand) (int, error) {
	switch op.Mode {
	case ModeReg:
		r, err := c.reg(op)
		if err != nil {
			return 0, err
		}
		return *r, nil
	case ModeImm:
		return op.Value, nil
	case ModeMem:
		return c.ReadMem(op.Value)
	}
	return 0, fmt.Errorf("%w: cannot read %s", ErrBadInstruction, op)
}

// store writes a destination operand.
func (c *CPU) store(op Operand, val int) error {
	switch op.Mode {
	case ModeReg:
		r, err := c.reg(op)
		if err != nil {
			return err
		}
		*r = val
		return nil
	case ModeMem:
		return c.WriteMem(op.Value, val)
	}
	return fmt.Errorf("%w: cannot write %s", ErrBadInstruction, op)
}

func (c *CPU) jump(op Operand) error {
	if op.Mode != ModeCode {
		return fmt.Errorf("%w: branch target %s", ErrBadInstruction, op)
	}
	c.PC = op.Value
	return nil
}

// Step executes one instruction. A halted CPU does nothing.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}
	if c.PC < 0 || c.PC >= len(c.Code) {
		c.Halted = true
		return fmt.Errorf("%w: %d", ErrBadPC, c.PC)
	}

	instr := c.Code[c.PC]
	c.PC++
	c.Steps++

	if err := c.execute(instr); err != nil {
		c.Halted = true
		return fmt.Errorf("pc %d (%s): %w", c.PC-1, instr, err)
	}
	return nil
}

func (c *CPU) execute(instr Instruction) error {
	switch instr.Op {
	case OpHALT:
		c.Halted = true
		return nil

	case OpMOVE:
		v, err := c.load(instr.B)
		if err != nil {
			return err
		}
		return c.store(instr.A, v)

	case OpADD, OpSUB, OpMUL, OpDIV:
		dst, err := c.reg(instr.A)
		if err != nil {
			return err
		}
		v, err := c.load(instr.B)
		if err != nil {
			return err
		}
		switch instr.Op {
		case OpADD:
			*dst += v
		case OpSUB:
			*dst -= v
		case OpMUL:
			*dst *= v
		case OpDIV:
			if v == 0 {
				return ErrDivideByZero
			}
			*dst /= v
		}
		return nil

	case OpNEG:
		r, err := c.reg(instr.A)
		if err != nil {
			return err
		}
		*r = -*r
		return nil

	case OpNOT:
		r, err := c.reg(instr.A)
		if err != nil {
			return err
		}
		if *r == 0 {
			*r = 1
		} else {
			*r = 0
		}
		return nil

	case OpLEA:
		r, err := c.reg(instr.A)
		if err != nil {
			return err
		}
		if instr.B.Mode != ModeMem {
			return fmt.Errorf("%w: lea needs a memory operand", ErrBadInstruction)
		}
		*r = instr.B.Value
		return nil

	case OpBRUN:
		return c.jump(instr.A)

	case OpBREZ, OpBRPO, OpBRNE:
		r, err := c.reg(instr.A)
		if err != nil {
			return err
		}
		take := false
		switch instr.Op {
		case OpBREZ:
			take = *r == 0
		case OpBRPO:
			take = *r > 0
		case OpBRNE:
			take = *r < 0
		}
		if take {
			return c.jump(instr.B)
		}
		return nil

	case OpOUTB:
		r, err := c.reg(instr.A)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.outputSink(), "%d\n", *r)
		return err
	}
	return fmt.Errorf("%w: opcode %d", ErrBadInstruction, instr.Op)
}

// Run executes until halt, an error, or the step limit.
func (c *CPU) Run() error {
	limit := c.MaxSteps
	if limit <= 0 {
		limit = DefaultMaxSteps
	}
	for !c.Halted {
		if c.Steps >= limit {
			return fmt.Errorf("%w (%d)", ErrStepLimit, limit)
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
