package verify

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sarchlab/scsim/emu"
)

// ErrMismatch is returned by Check when the state differs from the
// expectation.
var ErrMismatch = errors.New("state mismatch")

// Check compares snap against exp. On mismatch the returned error carries a
// unified diff of the checked values.
func Check(exp *Expectation, snap emu.Snapshot) error {
	if diff := Diff(exp, snap); diff != "" {
		return errors.Wrapf(ErrMismatch, "\n%s", diff)
	}
	return nil
}

// Diff returns a unified diff between the expected values and the
// corresponding values in snap, or "" if they all match.
func Diff(exp *Expectation, snap emu.Snapshot) string {
	expected, actual := render(exp, snap)
	if expected == actual {
		return ""
	}

	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	return diff
}

// render writes the checked keys twice: once with expected values and once
// with the values found in snap.
func render(exp *Expectation, snap emu.Snapshot) (string, string) {
	var want, got strings.Builder

	line := func(key string, w, g uint32) {
		fmt.Fprintf(&want, "%s = 0x%08X\n", key, w)
		fmt.Fprintf(&got, "%s = 0x%08X\n", key, g)
	}

	if exp.PC != nil {
		line("pc", *exp.PC, snap.PC)
	}

	regs := make([]int, 0, len(exp.Registers))
	for r := range exp.Registers {
		regs = append(regs, int(r))
	}
	sort.Ints(regs)
	for _, r := range regs {
		line(fmt.Sprintf("$%d", r), exp.Registers[uint8(r)], snap.Registers[r])
	}

	for _, addr := range sortedAddrs(exp.Memory) {
		line(fmt.Sprintf("mem[%d]", addr), exp.Memory[addr], snap.Memory[addr])
	}

	return want.String(), got.String()
}

// Dump writes a human-readable listing of the state: the PC, every
// register, and the non-zero data memory words.
func Dump(w io.Writer, snap emu.Snapshot) error {
	var b strings.Builder

	fmt.Fprintf(&b, "pc = %d\n", snap.PC)
	fmt.Fprintf(&b, "cycles = %d\n", snap.Cycles)

	for r := 0; r < emu.NumRegs; r += 4 {
		for c := r; c < r+4; c++ {
			if c > r {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "$%-2d = 0x%08X", c, snap.Registers[c])
		}
		b.WriteByte('\n')
	}

	for _, addr := range sortedAddrs(snap.Memory) {
		fmt.Fprintf(&b, "mem[%d] = 0x%08X\n", addr, snap.Memory[addr])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sortedAddrs(m map[uint32]uint32) []uint32 {
	addrs := make([]uint32, 0, len(m))
	for a := range m {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
