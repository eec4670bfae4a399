package emu

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/sarchlab/scsim/config"
	"github.com/sarchlab/scsim/insts"
)

// UnsupportedPolicy decides what happens to an instruction that has no
// control mapping.
type UnsupportedPolicy uint8

// Unsupported-instruction policies.
const (
	// PolicyNoop executes it with the zero control bundle: nothing is
	// written and the PC advances by one.
	PolicyNoop UnsupportedPolicy = iota
	// PolicyFail stops with ErrUnsupportedOpcode and commits nothing.
	PolicyFail
)

// StepResult describes one executed cycle.
type StepResult struct {
	// Cycle is the number of the cycle, starting at 0.
	Cycle uint64

	// PC is the instruction index that was fetched.
	PC uint32

	// NextPC is the instruction index committed for the next cycle.
	NextPC uint32

	// Inst is the decoded instruction.
	Inst *insts.Instruction

	// Control holds the signals generated for Inst.
	Control ControlSignals

	// Supported is false when Inst had no control mapping.
	Supported bool

	// ALU is the ALU output, including the equality flag.
	ALU ALUResult

	// BranchTaken is Control.Branch AND ALU.Equal.
	BranchTaken bool

	// Err is set if the cycle could not complete. Nothing is committed in
	// that case.
	Err error
}

// writeBack is the set of commits computed during a cycle.
type writeBack struct {
	memWrite bool
	memAddr  uint32
	memData  uint32

	regWrite bool
	regDest  uint8
	regData  uint32
}

// Emulator is the single-cycle datapath. It owns the register file, the
// memories and the program counter, and advances them one cycle per Step.
type Emulator struct {
	regFile *RegFile
	dmem    *DataMemory
	imem    *InstructionMemory
	pc      ProgramCounter

	decoder *insts.Decoder
	control *ControlUnit
	alu     *ALU

	logger zerolog.Logger

	// Configuration
	policy      UnsupportedPolicy
	dmemWords   uint32
	initialRegs map[uint8]uint32

	// Execution state
	cycles    uint64
	maxCycles uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithDataMemorySize sets the data memory capacity in words.
func WithDataMemorySize(words uint32) EmulatorOption {
	return func(e *Emulator) {
		e.dmemWords = words
	}
}

// WithUnsupportedPolicy sets how unrecognized instructions are handled.
func WithUnsupportedPolicy(policy UnsupportedPolicy) EmulatorOption {
	return func(e *Emulator) {
		e.policy = policy
	}
}

// WithMaxCycles sets the maximum number of cycles to execute.
// A value of 0 means no limit.
func WithMaxCycles(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxCycles = max
	}
}

// WithLogger sets the logger receiving per-cycle traces at debug level.
func WithLogger(logger zerolog.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithRegisters seeds register values applied at creation and on Reset.
func WithRegisters(values map[uint8]uint32) EmulatorOption {
	return func(e *Emulator) {
		if e.initialRegs == nil {
			e.initialRegs = make(map[uint8]uint32, len(values))
		}
		for reg, v := range values {
			e.initialRegs[reg] = v
		}
	}
}

// WithConfig applies a simulator configuration.
func WithConfig(cfg *config.Config) EmulatorOption {
	return func(e *Emulator) {
		e.dmemWords = cfg.DataMemoryWords
		e.maxCycles = cfg.MaxCycles
		if cfg.Strict() {
			e.policy = PolicyFail
		} else {
			e.policy = PolicyNoop
		}
		WithRegisters(cfg.InitialRegisters)(e)
	}
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder:   insts.NewDecoder(),
		control:   NewControlUnit(),
		alu:       NewALU(),
		logger:    zerolog.Nop(),
		policy:    PolicyNoop,
		dmemWords: DefaultDataMemoryWords,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.imem = NewInstructionMemory(nil)
	e.resetState()

	return e
}

// resetState recreates the register file and data memory and clears the
// PC and cycle count.
func (e *Emulator) resetState() {
	e.regFile = &RegFile{}
	for reg, v := range e.initialRegs {
		e.regFile.X[reg&(NumRegs-1)] = v
	}

	e.dmem = NewDataMemory(e.dmemWords)
	e.pc.Reset()
	e.cycles = 0
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// DataMemory returns the emulator's data memory.
func (e *Emulator) DataMemory() *DataMemory {
	return e.dmem
}

// InstructionMemory returns the loaded program.
func (e *Emulator) InstructionMemory() *InstructionMemory {
	return e.imem
}

// PC returns the index of the next instruction to execute.
func (e *Emulator) PC() uint32 {
	return e.pc.Value()
}

// Cycles returns the number of completed cycles.
func (e *Emulator) Cycles() uint64 {
	return e.cycles
}

// LoadProgram installs program at instruction index 0 and resets the PC.
// Registers and data memory are left as they are.
func (e *Emulator) LoadProgram(program []uint32) {
	e.imem = NewInstructionMemory(program)
	e.pc.Reset()
}

// Reset restores the state the emulator had right after creation, keeping
// the loaded program.
func (e *Emulator) Reset() {
	e.resetState()
}

// Halted reports whether the PC has left the loaded program.
func (e *Emulator) Halted() bool {
	return uint64(e.pc.Value()) >= uint64(e.imem.Len())
}

// Step executes exactly one clock cycle.
func (e *Emulator) Step() StepResult {
	if e.maxCycles > 0 && e.cycles >= e.maxCycles {
		return StepResult{
			Cycle: e.cycles,
			PC:    e.pc.Value(),
			Err:   errors.Wrapf(ErrMaxCycles, "limit %d", e.maxCycles),
		}
	}

	result := e.evaluate()
	if result.Err != nil {
		e.logger.Debug().
			Uint64("cycle", result.Cycle).
			Uint32("pc", result.PC).
			Err(result.Err).
			Msg("cycle aborted")
		return result
	}

	e.trace(&result)

	return result
}

// evaluate runs the combinational part of the cycle and then commits.
// Every read happens before any commit.
func (e *Emulator) evaluate() StepResult {
	pc := e.pc.Value()
	result := StepResult{Cycle: e.cycles, PC: pc}

	// 1. Fetch
	word, err := e.imem.Fetch(pc)
	if err != nil {
		result.Err = err
		return result
	}

	// 2. Decode
	inst := e.decoder.Decode(word)
	result.Inst = inst

	// 3. Control
	ctrl, ok := e.control.Generate(inst.Op, inst.Func)
	result.Control = ctrl
	result.Supported = ok
	if !ok && e.policy == PolicyFail {
		result.Err = errors.Wrapf(ErrUnsupportedOpcode,
			"op=0x%02X func=0x%02X at pc %d", inst.Op, inst.Func, pc)
		return result
	}

	// 4. Register read and operand select
	data0 := e.regFile.ReadReg(inst.Rs)
	data1 := e.regFile.ReadReg(inst.Rt)

	operand := data1
	if ctrl.ALUSrc != ALUSrcReg {
		operand = inst.SImm
	}

	// 5. Execute
	result.ALU = e.alu.Evaluate(data0, operand, ctrl.ALUOp)

	// 6. Write-back selection
	wb, err := e.writeBack(inst, ctrl, result.ALU.Value, data1)
	if err != nil {
		result.Err = err
		return result
	}

	// 7. Branch resolution
	result.BranchTaken = ctrl.Branch && result.ALU.Equal
	result.NextPC = e.pc.Next(result.BranchTaken, inst.SImm)

	// 8. Clock edge
	e.commit(wb, result.NextPC)

	return result
}

// writeBack selects what the clock edge will write. A memory write and a
// register write never occur in the same cycle.
func (e *Emulator) writeBack(
	inst *insts.Instruction,
	ctrl ControlSignals,
	aluOut, data1 uint32,
) (writeBack, error) {
	var wb writeBack

	if ctrl.MemWrite {
		if !e.dmem.InRange(aluOut) {
			return wb, errors.Wrapf(ErrAddressOutOfRange,
				"store to data memory word 0x%X (size %d)", aluOut, e.dmem.Size())
		}
		wb.memWrite = true
		wb.memAddr = aluOut
		wb.memData = data1
		return wb, nil
	}

	if !ctrl.RegWrite {
		return wb, nil
	}

	dataToReg := aluOut
	if ctrl.MemToReg {
		v, err := e.dmem.Read(aluOut)
		if err != nil {
			return wb, errors.Wrap(err, "load")
		}
		dataToReg = v
	}

	dest := inst.Rt
	if ctrl.RegDst {
		dest = inst.Rd
	}

	if dest == 0 {
		return wb, nil
	}

	wb.regWrite = true
	wb.regDest = dest
	wb.regData = dataToReg
	return wb, nil
}

// commit applies the cycle's writes and latches the next PC.
func (e *Emulator) commit(wb writeBack, nextPC uint32) {
	if wb.memWrite {
		if err := e.dmem.Write(wb.memAddr, wb.memData); err != nil {
			// The address was range-checked before the edge.
			panic(err)
		}
	}

	if wb.regWrite {
		e.regFile.WriteReg(wb.regDest, wb.regData)
	}

	e.pc.Commit(nextPC)
	e.cycles++
}

// RunCycles executes exactly n cycles, stopping early on the first error.
func (e *Emulator) RunCycles(n uint64) error {
	for i := uint64(0); i < n; i++ {
		if result := e.Step(); result.Err != nil {
			return result.Err
		}
	}
	return nil
}

// Run executes cycles until the PC leaves the loaded program, an error
// occurs, or ctx is cancelled. Leaving the program is a normal halt and
// returns nil.
func (e *Emulator) Run(ctx context.Context) error {
	for !e.Halted() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if result := e.Step(); result.Err != nil {
			return result.Err
		}
	}

	e.logger.Debug().
		Uint64("cycles", e.cycles).
		Uint32("pc", e.pc.Value()).
		Msg("halted")

	return nil
}
