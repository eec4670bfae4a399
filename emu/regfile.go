package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 32

// RegFile represents the general-purpose register file.
// Reads are combinational; writes are committed by the datapath at the end
// of a cycle.
type RegFile struct {
	// X holds the 32 word registers. X[0] stays 0 only because writes to
	// it are dropped.
	X [NumRegs]uint32
}

// ReadReg reads a register value. Index 0 is not special-cased.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	return r.X[reg&(NumRegs-1)]
}

// WriteReg writes a value to a register. Writes to register 0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	reg &= NumRegs - 1
	if reg == 0 {
		return
	}
	r.X[reg] = value
}

// Snapshot returns a copy of all registers.
func (r *RegFile) Snapshot() [NumRegs]uint32 {
	return r.X
}
