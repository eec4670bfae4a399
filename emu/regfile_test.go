package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scsim/emu"
)

var _ = Describe("RegFile", func() {
	var rf *emu.RegFile

	BeforeEach(func() {
		rf = &emu.RegFile{}
	})

	It("should start zeroed", func() {
		Expect(rf.Snapshot()).To(Equal([emu.NumRegs]uint32{}))
	})

	It("should write and read back registers 1-31", func() {
		for r := uint8(1); r < emu.NumRegs; r++ {
			rf.WriteReg(r, uint32(r)*100)
		}
		for r := uint8(1); r < emu.NumRegs; r++ {
			Expect(rf.ReadReg(r)).To(Equal(uint32(r) * 100))
		}
	})

	It("should drop writes to register 0", func() {
		rf.WriteReg(0, 42)
		Expect(rf.ReadReg(0)).To(Equal(uint32(0)))
	})

	It("should not guard reads of register 0", func() {
		rf.X[0] = 7
		Expect(rf.ReadReg(0)).To(Equal(uint32(7)))
	})

	It("should return a copy from Snapshot", func() {
		rf.WriteReg(3, 9)
		snap := rf.Snapshot()
		rf.WriteReg(3, 10)
		Expect(snap[3]).To(Equal(uint32(9)))
	})
})
