// Completion: 100% - register pool complete
package main

import "sort"

// RegStore hands out registers from a pool of free indices and records every
// register written to, for clobber reporting. The free list stays sorted
// ascending; Take pops from the high end.
type RegStore struct {
	freeIndices []int
	writes      map[int]bool
}

func NewRegStore(regList *RegList) *RegStore {
	rs := &RegStore{writes: make(map[int]bool)}
	for _, name := range regList.Names() {
		rs.freeIndices = append(rs.freeIndices, AllRegs.IndexByName(name))
	}
	sort.Ints(rs.freeIndices)
	return rs
}

func (rs *RegStore) setMode(index int, write bool) {
	if write {
		rs.writes[index] = true
	}
}

// SetModeByName marks a register as written without taking it.
func (rs *RegStore) SetModeByName(name string, write bool) {
	rs.setMode(AllRegs.IndexByName(name), write)
}

// Take removes and returns the highest-indexed free register.
func (rs *RegStore) Take(write bool) RealReg {
	if len(rs.freeIndices) == 0 {
		panic(&NoVacantRegError{})
	}
	last := len(rs.freeIndices) - 1
	reg := RealReg{Index: rs.freeIndices[last]}
	rs.freeIndices = rs.freeIndices[:last]
	rs.setMode(reg.Index, write)
	return reg
}

// Untake returns a register to the pool.
func (rs *RegStore) Untake(reg RealReg) {
	rs.freeIndices = append(rs.freeIndices, reg.Index)
	sort.Ints(rs.freeIndices)
}

func (rs *RegStore) TakeByIndex(index int, write bool) RealReg {
	for i, free := range rs.freeIndices {
		if free == index {
			rs.freeIndices = append(rs.freeIndices[:i], rs.freeIndices[i+1:]...)
			rs.setMode(index, write)
			return RealReg{Index: index}
		}
	}
	panic(internalErrorf("register %s is not free", AllRegs.NameByIndex(index)))
}

func (rs *RegStore) TakeByName(name string, write bool) RealReg {
	return rs.TakeByIndex(AllRegs.IndexByName(name), write)
}

// Clobbers lists the names of all registers written to so far, in index order.
func (rs *RegStore) Clobbers() []string {
	indices := make([]int, 0, len(rs.writes))
	for index := range rs.writes {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	names := make([]string, len(indices))
	for i, index := range indices {
		names[i] = AllRegs.NameByIndex(index)
	}
	return names
}

// Free returns a copy of the free index set, for pool balance checks.
func (rs *RegStore) Free() []int {
	return append([]int(nil), rs.freeIndices...)
}
