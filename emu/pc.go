package emu

// ProgramCounter holds the index of the current instruction. It counts
// instructions, not bytes: the increment is 1 and branch offsets are added
// without shifting.
type ProgramCounter struct {
	value uint32
}

// Value returns the current instruction index.
func (p *ProgramCounter) Value() uint32 {
	return p.value
}

// Next computes the following instruction index without committing it.
func (p *ProgramCounter) Next(branchTaken bool, simm uint32) uint32 {
	next := p.value + 1
	if branchTaken {
		next += simm
	}
	return next
}

// Commit latches next as the new value.
func (p *ProgramCounter) Commit(next uint32) {
	p.value = next
}

// Reset sets the counter back to 0.
func (p *ProgramCounter) Reset() {
	p.value = 0
}
