package compiler

import (
	"errors"
	"fmt"
)

const (
	// NumRegisters is the size of the TrAL register bank.
	NumRegisters = 4
	// ReservedRegister is never handed out by the pool.
	ReservedRegister Register = NumRegisters - 1
)

var (
	ErrNoFreeRegister       = errors.New("no free register")
	ErrRegisterNotAllocated = errors.New("register is not allocated")
)

// RegisterPool tracks which general-purpose registers are in use.
// Allocation always returns the lowest-numbered free register.
type RegisterPool struct {
	inUse [NumRegisters]bool
}

func NewRegisterPool() *RegisterPool {
	p := &RegisterPool{}
	p.inUse[ReservedRegister] = true
	return p
}

// Allocate claims the lowest free register.
func (p *RegisterPool) Allocate() (Register, error) {
	for i, used := range p.inUse {
		if !used {
			p.inUse[i] = true
			return Register(i), nil
		}
	}
	return 0, ErrNoFreeRegister
}

// Free returns r to the pool.
func (p *RegisterPool) Free(r Register) error {
	if r < 0 || int(r) >= NumRegisters || r == ReservedRegister {
		return fmt.Errorf("%w: %s", ErrRegisterNotAllocated, r)
	}
	if !p.inUse[r] {
		return fmt.Errorf("%w: %s", ErrRegisterNotAllocated, r)
	}
	p.inUse[r] = false
	return nil
}

// Available reports whether Allocate would succeed.
func (p *RegisterPool) Available() bool {
	for _, used := range p.inUse {
		if !used {
			return true
		}
	}
	return false
}

func (p *RegisterPool) InUse(r Register) bool {
	return r >= 0 && int(r) < NumRegisters && p.inUse[r]
}
