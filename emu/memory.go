package emu

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/mem/mem"
)

// WordSize is the number of bytes in a memory word.
const WordSize = 4

// DefaultDataMemoryWords is the data memory capacity used when none is
// configured.
const DefaultDataMemoryWords = 1 << 16

// storageUnitWords keeps the backing storage a whole number of 4 KB units.
const storageUnitWords = 4096 / WordSize

// DataMemory is a word-addressed store. Address n is the n-th word; there is
// no byte addressing and no alignment check.
type DataMemory struct {
	words   uint32
	storage *mem.Storage

	// written holds every address stored to, so inspection never touches
	// storage units that were never allocated.
	written map[uint32]struct{}
}

// NewDataMemory creates a zero-initialized data memory holding words words.
func NewDataMemory(words uint32) *DataMemory {
	if words == 0 {
		words = DefaultDataMemoryWords
	}

	units := (uint64(words) + storageUnitWords - 1) / storageUnitWords

	return &DataMemory{
		words:   words,
		storage: mem.NewStorage(units * storageUnitWords * WordSize),
		written: make(map[uint32]struct{}),
	}
}

// Size returns the capacity in words.
func (m *DataMemory) Size() uint32 {
	return m.words
}

// InRange reports whether addr is a valid word index.
func (m *DataMemory) InRange(addr uint32) bool {
	return addr < m.words
}

func (m *DataMemory) check(addr uint32) error {
	if !m.InRange(addr) {
		return errors.Wrapf(ErrAddressOutOfRange,
			"data memory word 0x%X (size %d)", addr, m.words)
	}
	return nil
}

// Read returns the word at addr.
func (m *DataMemory) Read(addr uint32) (uint32, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}

	data, err := m.storage.Read(uint64(addr)*WordSize, WordSize)
	if err != nil {
		return 0, errors.Wrapf(err, "read data memory word 0x%X", addr)
	}

	return binary.LittleEndian.Uint32(data), nil
}

// Write stores value at addr.
func (m *DataMemory) Write(addr, value uint32) error {
	if err := m.check(addr); err != nil {
		return err
	}

	var buf [WordSize]byte
	binary.LittleEndian.PutUint32(buf[:], value)

	if err := m.storage.Write(uint64(addr)*WordSize, buf[:]); err != nil {
		return errors.Wrapf(err, "write data memory word 0x%X", addr)
	}
	m.written[addr] = struct{}{}

	return nil
}

// Words returns a copy of the whole memory. It reads every storage unit,
// so prefer NonZero for inspecting large memories.
func (m *DataMemory) Words() []uint32 {
	data, err := m.storage.Read(0, uint64(m.words)*WordSize)
	if err != nil {
		// The range never exceeds the storage capacity.
		panic(errors.Wrap(err, "dump data memory"))
	}

	out := make([]uint32, m.words)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*WordSize:])
	}
	return out
}

// NonZero returns every word that holds a non-zero value, keyed by address.
// Only addresses that have been written are read.
func (m *DataMemory) NonZero() map[uint32]uint32 {
	out := make(map[uint32]uint32)
	for addr := range m.written {
		v, err := m.Read(addr)
		if err != nil {
			// Written addresses were range-checked by Write.
			panic(err)
		}
		if v != 0 {
			out[addr] = v
		}
	}
	return out
}

// InstructionMemory is the read-only, word-indexed program store.
type InstructionMemory struct {
	words []uint32
}

// NewInstructionMemory creates an instruction memory holding program,
// starting at index 0.
func NewInstructionMemory(program []uint32) *InstructionMemory {
	words := make([]uint32, len(program))
	copy(words, program)
	return &InstructionMemory{words: words}
}

// Len returns the number of loaded instructions.
func (m *InstructionMemory) Len() int {
	return len(m.words)
}

// Fetch returns the instruction word at index pc.
func (m *InstructionMemory) Fetch(pc uint32) (uint32, error) {
	if uint64(pc) >= uint64(len(m.words)) {
		return 0, errors.Wrapf(ErrAddressOutOfRange,
			"instruction fetch at %d (program length %d)", pc, len(m.words))
	}
	return m.words[pc], nil
}
