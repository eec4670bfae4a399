// Package emu provides the single-cycle datapath: control unit, ALU,
// register file, memories, program counter and the per-cycle orchestration.
package emu

import "github.com/pkg/errors"

var (
	// ErrUnsupportedOpcode is returned by Step under PolicyFail when the
	// (op, func) pair has no control mapping.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")

	// ErrAddressOutOfRange is returned when a fetch, load or store indexes
	// past the end of its memory.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrMaxCycles is returned once the configured cycle limit is reached.
	ErrMaxCycles = errors.New("max cycles reached")
)
