package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/sarchlab/scsim/emu"
	"github.com/sarchlab/scsim/insts"
)

var _ = Describe("Trace logging", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("should log every committed cycle at debug level", func() {
		logger := zerolog.New(buf).Level(zerolog.DebugLevel)
		e := emu.NewEmulator(emu.WithLogger(logger))
		e.LoadProgram([]uint32{insts.ADDI(1, 0, 5), insts.BEQ(0, 0, 0)})

		Expect(e.RunCycles(2)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring(`"inst":"addi $1, $0, 5"`))
		Expect(out).To(ContainSubstring(`"ctrl":"0x0A2"`))
		Expect(out).To(ContainSubstring(`"inst":"beq $0, $0, 0"`))
		Expect(out).To(ContainSubstring(`"taken":true`))
		Expect(out).To(ContainSubstring(`"message":"commit"`))
	})

	It("should log aborted cycles with the error", func() {
		logger := zerolog.New(buf).Level(zerolog.DebugLevel)
		e := emu.NewEmulator(emu.WithLogger(logger))

		Expect(e.Step().Err).To(MatchError(emu.ErrAddressOutOfRange))

		Expect(buf.String()).To(ContainSubstring(`"message":"cycle aborted"`))
	})

	It("should stay silent above debug level", func() {
		logger := zerolog.New(buf).Level(zerolog.InfoLevel)
		e := emu.NewEmulator(emu.WithLogger(logger))
		e.LoadProgram([]uint32{insts.ADDI(1, 0, 5)})

		Expect(e.RunCycles(1)).To(Succeed())

		Expect(buf.Len()).To(BeZero())
	})
})
