package emu

// Snapshot is a read-only copy of the architectural state between cycles.
type Snapshot struct {
	PC        uint32
	Cycles    uint64
	Registers [NumRegs]uint32

	// Memory holds the non-zero data memory words, keyed by address.
	Memory map[uint32]uint32
}

// Snapshot captures the current state. It has no side effects.
func (e *Emulator) Snapshot() Snapshot {
	return Snapshot{
		PC:        e.pc.Value(),
		Cycles:    e.cycles,
		Registers: e.regFile.Snapshot(),
		Memory:    e.dmem.NonZero(),
	}
}
