package emu

import "github.com/sarchlab/scsim/insts"

// ALUSrc selects the ALU's second operand. It is a 2-bit field in the
// packed control word; every non-zero value selects the immediate.
type ALUSrc uint8

// ALU operand sources.
const (
	ALUSrcReg ALUSrc = 0 // register-file value of rt
	ALUSrcImm ALUSrc = 1 // sign-extended immediate
)

// ALUOp is the 3-bit ALU operation selector.
type ALUOp uint8

// ALU operation codes. ADD, ADDI, LW and SW each carry their own code, but
// 0, 2, 6 and 7 all drive the adder.
const (
	ALUOpAdd    ALUOp = 0
	ALUOpAnd    ALUOp = 1
	ALUOpAddImm ALUOp = 2
	ALUOpShl16  ALUOp = 3
	ALUOpOr     ALUOp = 4
	ALUOpSlt    ALUOp = 5
	ALUOpAddrLd ALUOp = 6
	ALUOpAddrSt ALUOp = 7
)

const (
	aluOpMask  ALUOp  = 0x7
	aluSrcMask ALUSrc = 0x3
)

// ControlSignals configures the datapath for one instruction.
type ControlSignals struct {
	RegDst   bool // destination is rd (true) or rt (false)
	Branch   bool
	RegWrite bool
	ALUSrc   ALUSrc
	MemWrite bool
	MemToReg bool // write-back value comes from data memory
	ALUOp    ALUOp
}

// Bit positions in the packed 10-bit control word.
const (
	ctrlRegDstBit   = 9
	ctrlBranchBit   = 8
	ctrlRegWriteBit = 7
	ctrlALUSrcShift = 5
	ctrlMemWriteBit = 4
	ctrlMemToRegBit = 3
)

// Pack encodes the signals into the 10-bit control word
// reg_dst | branch | regwrite | alu_src[1:0] | mem_write | mem_to_reg | alu_op[2:0].
func (c ControlSignals) Pack() uint16 {
	var w uint16
	if c.RegDst {
		w |= 1 << ctrlRegDstBit
	}
	if c.Branch {
		w |= 1 << ctrlBranchBit
	}
	if c.RegWrite {
		w |= 1 << ctrlRegWriteBit
	}
	w |= uint16(c.ALUSrc&aluSrcMask) << ctrlALUSrcShift
	if c.MemWrite {
		w |= 1 << ctrlMemWriteBit
	}
	if c.MemToReg {
		w |= 1 << ctrlMemToRegBit
	}
	w |= uint16(c.ALUOp & aluOpMask)
	return w
}

// UnpackControl decodes a packed control word.
func UnpackControl(w uint16) ControlSignals {
	return ControlSignals{
		RegDst:   w&(1<<ctrlRegDstBit) != 0,
		Branch:   w&(1<<ctrlBranchBit) != 0,
		RegWrite: w&(1<<ctrlRegWriteBit) != 0,
		ALUSrc:   ALUSrc(w>>ctrlALUSrcShift) & aluSrcMask,
		MemWrite: w&(1<<ctrlMemWriteBit) != 0,
		MemToReg: w&(1<<ctrlMemToRegBit) != 0,
		ALUOp:    ALUOp(w) & aluOpMask,
	}
}

// ControlUnit maps (op, func) to control signals.
type ControlUnit struct{}

// NewControlUnit creates a new ControlUnit.
func NewControlUnit() *ControlUnit {
	return &ControlUnit{}
}

// Generate returns the control signals for an instruction. ok is false when
// the pair is not in the table, in which case the zero bundle is returned:
// no register write, no memory write, no branch.
func (cu *ControlUnit) Generate(op, funct uint8) (ctrl ControlSignals, ok bool) {
	switch op {
	case insts.OpRType:
		return cu.generateRType(funct)
	case insts.OpADDI:
		return ControlSignals{RegWrite: true, ALUSrc: ALUSrcImm, ALUOp: ALUOpAddImm}, true
	case insts.OpLUI:
		return ControlSignals{RegWrite: true, ALUSrc: ALUSrcImm, ALUOp: ALUOpShl16}, true
	case insts.OpORI:
		return ControlSignals{RegWrite: true, ALUSrc: ALUSrcImm, ALUOp: ALUOpOr}, true
	case insts.OpLW:
		return ControlSignals{
			RegWrite: true,
			ALUSrc:   ALUSrcImm,
			MemToReg: true,
			ALUOp:    ALUOpAddrLd,
		}, true
	case insts.OpSW:
		return ControlSignals{ALUSrc: ALUSrcImm, MemWrite: true, ALUOp: ALUOpAddrSt}, true
	case insts.OpBEQ:
		return ControlSignals{Branch: true, ALUSrc: ALUSrcReg, ALUOp: ALUOpAdd}, true
	}
	return ControlSignals{}, false
}

// generateRType handles op == 0, where func picks the ALU operation.
func (cu *ControlUnit) generateRType(funct uint8) (ControlSignals, bool) {
	ctrl := ControlSignals{RegDst: true, RegWrite: true, ALUSrc: ALUSrcReg}

	switch funct {
	case insts.FuncADD:
		ctrl.ALUOp = ALUOpAdd
	case insts.FuncAND:
		ctrl.ALUOp = ALUOpAnd
	case insts.FuncSLT:
		ctrl.ALUOp = ALUOpSlt
	default:
		return ControlSignals{}, false
	}
	return ctrl, true
}
