// Package insts provides instruction definitions and decoding for the
// 32-bit load/store subset executed by scsim.
//
// Every 32-bit word decodes. Fields are pulled from fixed bit ranges:
//   - op   [31:26]
//   - rs   [25:21]
//   - rt   [20:16]
//   - rd   [15:11]
//   - func [5:0]
//   - imm  [15:0], always sign-extended before use
//
// Supported instructions: ADD, AND, SLT (R-type, op 0), and ADDI, LUI, ORI,
// LW, SW, BEQ (I-type).
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x20010005) // addi $1, $0, 5
//	fmt.Printf("Op: %d, Rs: %d, Rt: %d, Imm: %d\n", inst.Op, inst.Rs, inst.Rt, inst.Imm)
package insts
