package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scsim/emu"
	"github.com/sarchlab/scsim/insts"
)

var _ = Describe("ControlUnit", func() {
	var cu *emu.ControlUnit

	BeforeEach(func() {
		cu = emu.NewControlUnit()
	})

	DescribeTable("control table",
		func(op, funct uint8, expected emu.ControlSignals, packed uint16) {
			ctrl, ok := cu.Generate(op, funct)

			Expect(ok).To(BeTrue())
			Expect(ctrl).To(Equal(expected))
			Expect(ctrl.Pack()).To(Equal(packed))
		},
		Entry("ADD", insts.OpRType, insts.FuncADD,
			emu.ControlSignals{RegDst: true, RegWrite: true, ALUSrc: emu.ALUSrcReg, ALUOp: emu.ALUOpAdd},
			uint16(0x280)),
		Entry("AND", insts.OpRType, insts.FuncAND,
			emu.ControlSignals{RegDst: true, RegWrite: true, ALUSrc: emu.ALUSrcReg, ALUOp: emu.ALUOpAnd},
			uint16(0x281)),
		Entry("SLT", insts.OpRType, insts.FuncSLT,
			emu.ControlSignals{RegDst: true, RegWrite: true, ALUSrc: emu.ALUSrcReg, ALUOp: emu.ALUOpSlt},
			uint16(0x285)),
		Entry("ADDI", insts.OpADDI, uint8(0),
			emu.ControlSignals{RegWrite: true, ALUSrc: emu.ALUSrcImm, ALUOp: emu.ALUOpAddImm},
			uint16(0x0A2)),
		Entry("LUI", insts.OpLUI, uint8(0),
			emu.ControlSignals{RegWrite: true, ALUSrc: emu.ALUSrcImm, ALUOp: emu.ALUOpShl16},
			uint16(0x0A3)),
		Entry("ORI", insts.OpORI, uint8(0),
			emu.ControlSignals{RegWrite: true, ALUSrc: emu.ALUSrcImm, ALUOp: emu.ALUOpOr},
			uint16(0x0A4)),
		Entry("LW", insts.OpLW, uint8(0),
			emu.ControlSignals{RegWrite: true, ALUSrc: emu.ALUSrcImm, MemToReg: true, ALUOp: emu.ALUOpAddrLd},
			uint16(0x0AE)),
		Entry("SW", insts.OpSW, uint8(0),
			emu.ControlSignals{ALUSrc: emu.ALUSrcImm, MemWrite: true, ALUOp: emu.ALUOpAddrSt},
			uint16(0x037)),
		Entry("BEQ", insts.OpBEQ, uint8(0),
			emu.ControlSignals{Branch: true, ALUSrc: emu.ALUSrcReg, ALUOp: emu.ALUOpAdd},
			uint16(0x100)),
	)

	It("should ignore func for I-type opcodes", func() {
		a, _ := cu.Generate(insts.OpADDI, 0x00)
		b, _ := cu.Generate(insts.OpADDI, 0x2A)
		Expect(a).To(Equal(b))
	})

	DescribeTable("unrecognized pairs yield the zero bundle",
		func(op, funct uint8) {
			ctrl, ok := cu.Generate(op, funct)

			Expect(ok).To(BeFalse())
			Expect(ctrl).To(BeZero())
			Expect(ctrl.Pack()).To(Equal(uint16(0)))
		},
		Entry("SUB (R-type func 0x22)", uint8(0), uint8(0x22)),
		Entry("R-type func 0", uint8(0), uint8(0)),
		Entry("ANDI", uint8(0x0C), uint8(0)),
		Entry("BNE", uint8(0x05), uint8(0)),
		Entry("J", uint8(0x02), uint8(0)),
		Entry("op 0x3F", uint8(0x3F), uint8(0x3F)),
	)

	It("should never assert mem_write together with regwrite", func() {
		for op := 0; op < 64; op++ {
			for funct := 0; funct < 64; funct++ {
				ctrl, _ := cu.Generate(uint8(op), uint8(funct))
				Expect(ctrl.MemWrite && ctrl.RegWrite).To(BeFalse())
			}
		}
	})

	Describe("UnpackControl", func() {
		It("should invert Pack for every table entry", func() {
			for op := 0; op < 64; op++ {
				for _, funct := range []uint8{insts.FuncADD, insts.FuncAND, insts.FuncSLT} {
					ctrl, _ := cu.Generate(uint8(op), funct)
					Expect(emu.UnpackControl(ctrl.Pack())).To(Equal(ctrl))
				}
			}
		})

		It("should decode the reference words", func() {
			ctrl := emu.UnpackControl(0x2AE)

			Expect(ctrl.RegDst).To(BeTrue())
			Expect(ctrl.RegWrite).To(BeTrue())
			Expect(ctrl.ALUSrc).To(Equal(emu.ALUSrcImm))
			Expect(ctrl.MemToReg).To(BeTrue())
			Expect(ctrl.ALUOp).To(Equal(emu.ALUOpAddrLd))
		})
	})
})
