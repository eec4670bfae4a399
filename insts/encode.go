package insts

import "fmt"

// EncodeR builds an R-type word: op=0 | rs | rt | rd | shamt=0 | funct.
func EncodeR(funct, rs, rt, rd uint8) uint32 {
	return uint32(rs&0x1F)<<21 |
		uint32(rt&0x1F)<<16 |
		uint32(rd&0x1F)<<11 |
		uint32(funct&0x3F)
}

// EncodeI builds an I-type word: op | rs | rt | imm16.
// imm is truncated to its low 16 bits, so negative offsets can be passed
// as int32.
func EncodeI(op, rs, rt uint8, imm int32) uint32 {
	return uint32(op&0x3F)<<26 |
		uint32(rs&0x1F)<<21 |
		uint32(rt&0x1F)<<16 |
		uint32(uint16(imm))
}

// ADD encodes add rd, rs, rt.
func ADD(rd, rs, rt uint8) uint32 { return EncodeR(FuncADD, rs, rt, rd) }

// AND encodes and rd, rs, rt.
func AND(rd, rs, rt uint8) uint32 { return EncodeR(FuncAND, rs, rt, rd) }

// SLT encodes slt rd, rs, rt.
func SLT(rd, rs, rt uint8) uint32 { return EncodeR(FuncSLT, rs, rt, rd) }

// ADDI encodes addi rt, rs, imm.
func ADDI(rt, rs uint8, imm int32) uint32 { return EncodeI(OpADDI, rs, rt, imm) }

// ORI encodes ori rt, rs, imm.
func ORI(rt, rs uint8, imm int32) uint32 { return EncodeI(OpORI, rs, rt, imm) }

// LUI encodes lui rt, imm.
func LUI(rt uint8, imm int32) uint32 { return EncodeI(OpLUI, 0, rt, imm) }

// LW encodes lw rt, offset(base).
func LW(rt uint8, offset int32, base uint8) uint32 { return EncodeI(OpLW, base, rt, offset) }

// SW encodes sw rt, offset(base).
func SW(rt uint8, offset int32, base uint8) uint32 { return EncodeI(OpSW, base, rt, offset) }

// BEQ encodes beq rs, rt, offset. The offset counts instructions.
func BEQ(rs, rt uint8, offset int32) uint32 { return EncodeI(OpBEQ, rs, rt, offset) }

// Mnemonic returns the lower-case instruction name, or "unknown" when the
// (op, func) pair is outside the supported set.
func (i *Instruction) Mnemonic() string {
	switch i.Op {
	case OpRType:
		switch i.Func {
		case FuncADD:
			return "add"
		case FuncAND:
			return "and"
		case FuncSLT:
			return "slt"
		}
	case OpADDI:
		return "addi"
	case OpORI:
		return "ori"
	case OpLUI:
		return "lui"
	case OpLW:
		return "lw"
	case OpSW:
		return "sw"
	case OpBEQ:
		return "beq"
	}
	return "unknown"
}

// String renders the instruction in assembly syntax.
func (i *Instruction) String() string {
	m := i.Mnemonic()

	switch m {
	case "add", "and", "slt":
		return fmt.Sprintf("%s $%d, $%d, $%d", m, i.Rd, i.Rs, i.Rt)
	case "addi", "ori":
		return fmt.Sprintf("%s $%d, $%d, %d", m, i.Rt, i.Rs, i.Offset())
	case "lui":
		return fmt.Sprintf("lui $%d, 0x%X", i.Rt, i.Imm)
	case "lw", "sw":
		return fmt.Sprintf("%s $%d, %d($%d)", m, i.Rt, i.Offset(), i.Rs)
	case "beq":
		return fmt.Sprintf("beq $%d, $%d, %d", i.Rs, i.Rt, i.Offset())
	}
	return fmt.Sprintf(".word 0x%08X", i.Raw)
}
