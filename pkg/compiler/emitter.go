package compiler

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Emitter writes TrAL text and owns the counter shared by every generated
// label and spill temporary, so each name it hands out is unique.
type Emitter struct {
	w       io.Writer
	err     error
	counter int
	spills  []string
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Err returns the first write error, if any.
func (e *Emitter) Err() error { return e.err }

// NewLabel returns a fresh label. An empty prefix yields _L<n>.
func (e *Emitter) NewLabel(prefix string) string {
	if prefix == "" {
		prefix = "L"
	}
	name := "_" + prefix + strconv.Itoa(e.counter)
	e.counter++
	return name
}

// NewSpill returns a fresh spill temporary and records it for SpillData.
func (e *Emitter) NewSpill() Memory {
	name := e.NewLabel("spill")
	e.spills = append(e.spills, name)
	return Memory(name)
}

// Spills returns the spill temporaries created so far.
func (e *Emitter) Spills() []string { return e.spills }

func (e *Emitter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s+"\n")
}

func (e *Emitter) inst(i Inst, ops ...Operand) {
	var sb strings.Builder
	sb.WriteString("\t\t")
	sb.WriteString(i.String())
	for n, op := range ops {
		if n == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(op.String())
	}
	e.line(sb.String())
}

// Label places name at the current position.
func (e *Emitter) Label(name string) { e.line(name + ":") }

// Move emits move dst, src.
func (e *Emitter) Move(dst, src Operand) { e.inst(MOVE, dst, src) }

// TwoAddr emits a two-operand instruction such as add R0, b.
func (e *Emitter) TwoAddr(i Inst, r Register, src Operand) { e.inst(i, r, src) }

// OneAddr emits a one-operand instruction such as neg R0 or outb R0.
func (e *Emitter) OneAddr(i Inst, r Register) { e.inst(i, r) }

// Branch emits an unconditional jump.
func (e *Emitter) Branch(target string) { e.inst(BRUN, Memory(target)) }

// CondBranch emits brez, brpo or brne on r.
func (e *Emitter) CondBranch(i Inst, r Register, target string) {
	e.inst(i, r, Memory(target))
}

func (e *Emitter) Halt() { e.inst(HALT) }

// Data reserves size words under name. The padding between the label and
// the directive depends on the label's length.
func (e *Emitter) Data(name string, size int) {
	pad := " "
	switch {
	case len(name) < 7:
		pad = "\t\t"
	case len(name) < 15:
		pad = "\t"
	}
	e.line(fmt.Sprintf("%s:%sdata %d", name, pad, size))
}
