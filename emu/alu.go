package emu

// ALUResult is the output of one ALU evaluation.
type ALUResult struct {
	// Value is the result of the selected operation.
	Value uint32

	// Equal is set when the two operands are equal. It comes from a
	// separate comparator and does not depend on the selected operation.
	Equal bool
}

// ALU implements the datapath's arithmetic and logic operations.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Evaluate applies op to op0 (rs) and op1 (rt or the immediate).
// Sums wrap modulo 2^32; there is no overflow detection.
func (a *ALU) Evaluate(op0, op1 uint32, op ALUOp) ALUResult {
	return ALUResult{
		Value: a.compute(op0, op1, op),
		Equal: op0 == op1,
	}
}

func (a *ALU) compute(op0, op1 uint32, op ALUOp) uint32 {
	switch op & aluOpMask {
	case ALUOpAnd:
		return op0 & op1
	case ALUOpShl16:
		// LUI: only the second operand matters.
		return op1 << 16
	case ALUOpOr:
		return op0 | op1
	case ALUOpSlt:
		if int32(op0) < int32(op1) {
			return 1
		}
		return 0
	default:
		// ALUOpAdd, ALUOpAddImm, ALUOpAddrLd, ALUOpAddrSt
		return op0 + op1
	}
}
