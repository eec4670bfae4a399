package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scsim/insts"
)

var _ = Describe("Encoder", func() {
	DescribeTable("should produce the reference words",
		func(word, expected uint32) {
			Expect(word).To(Equal(expected))
		},
		Entry("add $3, $1, $2", insts.ADD(3, 1, 2), uint32(0x00221820)),
		Entry("and $2, $3, $4", insts.AND(2, 3, 4), uint32(0x00641024)),
		Entry("slt $8, $9, $10", insts.SLT(8, 9, 10), uint32(0x012A402A)),
		Entry("addi $1, $0, 5", insts.ADDI(1, 0, 5), uint32(0x20010005)),
		Entry("addi $1, $0, -1", insts.ADDI(1, 0, -1), uint32(0x2001FFFF)),
		Entry("ori $5, $5, 0x8000", insts.ORI(5, 5, 0x8000), uint32(0x34A58000)),
		Entry("lui $7, 0x1234", insts.LUI(7, 0x1234), uint32(0x3C071234)),
		Entry("lw $4, 0($0)", insts.LW(4, 0, 0), uint32(0x8C040000)),
		Entry("sw $3, 0($0)", insts.SW(3, 0, 0), uint32(0xAC030000)),
		Entry("beq $0, $0, 2", insts.BEQ(0, 0, 2), uint32(0x10000002)),
	)

	DescribeTable("should disassemble",
		func(word uint32, text string) {
			Expect(insts.NewDecoder().Decode(word).String()).To(Equal(text))
		},
		Entry(nil, insts.ADD(3, 1, 2), "add $3, $1, $2"),
		Entry(nil, insts.ADDI(2, 0, -7), "addi $2, $0, -7"),
		Entry(nil, insts.LUI(1, 0xABCD), "lui $1, 0xABCD"),
		Entry(nil, insts.LW(4, 8, 29), "lw $4, 8($29)"),
		Entry(nil, insts.SW(3, -4, 2), "sw $3, -4($2)"),
		Entry(nil, insts.BEQ(1, 2, -3), "beq $1, $2, -3"),
		Entry(nil, uint32(0xFC000000), ".word 0xFC000000"),
	)
})
