package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scsim/emu"
	"github.com/sarchlab/scsim/insts"
)

var _ = Describe("ProgramCounter", func() {
	var pc emu.ProgramCounter

	BeforeEach(func() {
		pc = emu.ProgramCounter{}
	})

	It("should start at 0", func() {
		Expect(pc.Value()).To(Equal(uint32(0)))
	})

	It("should advance by one word when not branching", func() {
		Expect(pc.Next(false, 100)).To(Equal(uint32(1)))
	})

	It("should add the unshifted offset when branching", func() {
		pc.Commit(10)
		Expect(pc.Next(true, 2)).To(Equal(uint32(13)))
	})

	It("should branch backwards with a negative offset", func() {
		pc.Commit(10)
		Expect(pc.Next(true, insts.SignExtend16(0xFFFD))).To(Equal(uint32(8)))
	})

	It("should not change until Commit", func() {
		_ = pc.Next(true, 5)
		Expect(pc.Value()).To(Equal(uint32(0)))

		pc.Commit(6)
		Expect(pc.Value()).To(Equal(uint32(6)))

		pc.Reset()
		Expect(pc.Value()).To(Equal(uint32(0)))
	})
})
