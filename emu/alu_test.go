package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scsim/emu"
)

var _ = Describe("ALU", func() {
	var alu *emu.ALU

	BeforeEach(func() {
		alu = emu.NewALU()
	})

	DescribeTable("Evaluate",
		func(a, b uint32, op emu.ALUOp, expected uint32) {
			Expect(alu.Evaluate(a, b, op).Value).To(Equal(expected))
		},
		Entry("add", uint32(5), uint32(7), emu.ALUOpAdd, uint32(12)),
		Entry("add wraps", uint32(0xFFFFFFFF), uint32(2), emu.ALUOpAdd, uint32(1)),
		Entry("add (addi code)", uint32(10), uint32(0xFFFFFFFF), emu.ALUOpAddImm, uint32(9)),
		Entry("add (load code)", uint32(0x100), uint32(4), emu.ALUOpAddrLd, uint32(0x104)),
		Entry("add (store code)", uint32(0x100), uint32(0xFFFFFFFC), emu.ALUOpAddrSt, uint32(0xFC)),
		Entry("and", uint32(0xF0F0), uint32(0xFF00), emu.ALUOpAnd, uint32(0xF000)),
		Entry("or", uint32(0xF0F0), uint32(0x0F0F), emu.ALUOpOr, uint32(0xFFFF)),
		Entry("shl16 ignores the first operand", uint32(0xDEAD), uint32(0x1234), emu.ALUOpShl16, uint32(0x12340000)),
		Entry("shl16 drops the upper half", uint32(0), uint32(0xFFFF8000), emu.ALUOpShl16, uint32(0x80000000)),
		Entry("slt true", uint32(3), uint32(4), emu.ALUOpSlt, uint32(1)),
		Entry("slt false", uint32(4), uint32(3), emu.ALUOpSlt, uint32(0)),
		Entry("slt equal", uint32(4), uint32(4), emu.ALUOpSlt, uint32(0)),
		Entry("slt is signed", uint32(0xFFFFFFFF), uint32(1), emu.ALUOpSlt, uint32(1)),
		Entry("slt is signed (reverse)", uint32(1), uint32(0x80000000), emu.ALUOpSlt, uint32(0)),
	)

	It("should compute the equality flag for every operation", func() {
		for op := emu.ALUOp(0); op < 8; op++ {
			Expect(alu.Evaluate(9, 9, op).Equal).To(BeTrue())
			Expect(alu.Evaluate(9, 8, op).Equal).To(BeFalse())
		}
	})

	It("should set the equality flag even when the result is non-zero", func() {
		r := alu.Evaluate(6, 6, emu.ALUOpAdd)
		Expect(r.Value).To(Equal(uint32(12)))
		Expect(r.Equal).To(BeTrue())
	})
})
