package emu

import "fmt"

// trace logs a committed cycle.
func (e *Emulator) trace(r *StepResult) {
	ev := e.logger.Debug()
	if !ev.Enabled() {
		return
	}

	ev.Uint64("cycle", r.Cycle).
		Uint32("pc", r.PC).
		Str("word", fmt.Sprintf("0x%08X", r.Inst.Raw)).
		Str("inst", r.Inst.String()).
		Str("ctrl", fmt.Sprintf("0x%03X", r.Control.Pack())).
		Bool("supported", r.Supported).
		Str("alu", fmt.Sprintf("0x%08X", r.ALU.Value)).
		Bool("zero", r.ALU.Equal).
		Bool("taken", r.BranchTaken).
		Uint32("next_pc", r.NextPC).
		Msg("commit")
}
