package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegStoreTakeOrder(t *testing.T) {
	rs := NewRegStore(ScratchRegs)
	// Take pops from the high end: r11 first, then r10.
	assert.Equal(t, "%r11", rs.Take(false).String())
	assert.Equal(t, "%r10", rs.Take(false).String())
}

func TestRegStoreUntakeResorts(t *testing.T) {
	rs := NewRegStore(ScratchRegs)
	r11 := rs.Take(false)
	rcx := rs.TakeByName("rcx", false)
	rs.Untake(r11)
	rs.Untake(rcx)
	assert.Equal(t, "%r11", rs.Take(false).String(), "untaken registers must re-sort into place")
}

func TestRegStoreTakeByName(t *testing.T) {
	rs := NewRegStore(ScratchRegs)
	rax := rs.TakeByName("rax", true)
	assert.Equal(t, "%rax", rax.String())
	assert.PanicsWithError(t, "internal error: register rax is not free", func() {
		rs.TakeByName("rax", false)
	})
}

func TestRegStoreExhaustionPanics(t *testing.T) {
	rs := NewRegStore(ScratchRegs)
	for i := 0; i < ScratchRegs.Len(); i++ {
		rs.Take(false)
	}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*NoVacantRegError)
		assert.True(t, ok, "expected NoVacantRegError, got %v", r)
	}()
	rs.Take(false)
}

func TestRegStoreClobbers(t *testing.T) {
	rs := NewRegStore(ScratchRegs)
	assert.Empty(t, rs.Clobbers())

	rs.Take(true)
	rs.TakeByName("rcx", true)
	rs.TakeByName("rax", false)
	rs.SetModeByName("rdx", true)
	assert.Equal(t, []string{"rdx", "rcx", "r11"}, rs.Clobbers())
}

func TestRegStoreFreeSnapshot(t *testing.T) {
	rs := NewRegStore(ScratchRegs)
	before := rs.Free()
	reg := rs.Take(true)
	assert.Len(t, rs.Free(), len(before)-1)
	rs.Untake(reg)
	assert.Equal(t, before, rs.Free())
}
