package compiler

import (
	"errors"
	"testing"
)

func TestRegisterPool(t *testing.T) {
	t.Run("LowestFirst", func(t *testing.T) {
		p := NewRegisterPool()
		for want := Register(0); want < ReservedRegister; want++ {
			r, err := p.Allocate()
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			if r != want {
				t.Errorf("Allocate = %s, want %s", r, want)
			}
		}
	})

	t.Run("ReservedNeverOffered", func(t *testing.T) {
		p := NewRegisterPool()
		if !p.InUse(ReservedRegister) {
			t.Fatal("reserved register must start in use")
		}
		for i := 0; i < NumRegisters-1; i++ {
			if _, err := p.Allocate(); err != nil {
				t.Fatalf("Allocate %d: %v", i, err)
			}
		}
		if p.Available() {
			t.Error("pool should be exhausted")
		}
		if _, err := p.Allocate(); !errors.Is(err, ErrNoFreeRegister) {
			t.Errorf("Allocate on empty pool: got %v, want ErrNoFreeRegister", err)
		}
		if err := p.Free(ReservedRegister); !errors.Is(err, ErrRegisterNotAllocated) {
			t.Errorf("freeing the reserved register: got %v", err)
		}
	})

	t.Run("FreeReuses", func(t *testing.T) {
		p := NewRegisterPool()
		r0, _ := p.Allocate()
		r1, _ := p.Allocate()
		if err := p.Free(r0); err != nil {
			t.Fatalf("Free: %v", err)
		}
		r, _ := p.Allocate()
		if r != r0 {
			t.Errorf("Allocate after Free = %s, want %s", r, r0)
		}
		if !p.InUse(r1) {
			t.Errorf("%s should still be in use", r1)
		}
	})

	t.Run("DoubleFree", func(t *testing.T) {
		p := NewRegisterPool()
		r, _ := p.Allocate()
		if err := p.Free(r); err != nil {
			t.Fatalf("Free: %v", err)
		}
		if err := p.Free(r); !errors.Is(err, ErrRegisterNotAllocated) {
			t.Errorf("double free: got %v, want ErrRegisterNotAllocated", err)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		p := NewRegisterPool()
		if err := p.Free(Register(9)); err == nil {
			t.Error("freeing R9 should fail")
		}
		if p.InUse(Register(-1)) {
			t.Error("InUse(-1) should be false")
		}
	})
}
