// Package verify checks simulator state against expected values.
//
// An expectation file lists the values a run must end with, one per line:
//
//	# comment
//	pc = 5
//	$3 = 12
//	mem[0] = 0xC
//
// Values are decimal (negative values are taken as two's complement) or
// 0x-prefixed hexadecimal. Registers and memory words that are not listed
// are not checked.
package verify

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadExpectation is returned for lines that cannot be parsed.
var ErrBadExpectation = errors.New("bad expectation")

// Expectation holds the values a run is expected to end with.
type Expectation struct {
	PC        *uint32
	Registers map[uint8]uint32
	Memory    map[uint32]uint32
}

// NewExpectation returns an empty Expectation.
func NewExpectation() *Expectation {
	return &Expectation{
		Registers: make(map[uint8]uint32),
		Memory:    make(map[uint32]uint32),
	}
}

// LoadExpectation reads an expectation file.
func LoadExpectation(path string) (*Expectation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open expectation file")
	}
	defer func() { _ = f.Close() }()

	exp, err := ParseExpectation(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return exp, nil
}

// ParseExpectation reads expectations from r.
func ParseExpectation(r io.Reader) (*Expectation, error) {
	exp := NewExpectation()
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		text := scanner.Text()
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if err := exp.parseLine(text); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read expectations")
	}

	return exp, nil
}

func (e *Expectation) parseLine(text string) error {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return errors.Wrapf(ErrBadExpectation, "%q: missing '='", text)
	}
	key = strings.ToLower(strings.TrimSpace(key))

	v, err := parseValue(strings.TrimSpace(value))
	if err != nil {
		return errors.Wrapf(ErrBadExpectation, "%q: %v", text, err)
	}

	switch {
	case key == "pc":
		e.PC = &v

	case strings.HasPrefix(key, "$"):
		reg, err := strconv.ParseUint(key[1:], 10, 8)
		if err != nil || reg > 31 {
			return errors.Wrapf(ErrBadExpectation, "%q: bad register", text)
		}
		e.Registers[uint8(reg)] = v

	case strings.HasPrefix(key, "mem[") && strings.HasSuffix(key, "]"):
		addr, err := parseValue(key[len("mem[") : len(key)-1])
		if err != nil {
			return errors.Wrapf(ErrBadExpectation, "%q: bad address", text)
		}
		e.Memory[addr] = v

	default:
		return errors.Wrapf(ErrBadExpectation, "%q: unknown target", text)
	}

	return nil
}

func parseValue(s string) (uint32, error) {
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, err
		}
		return uint32(int32(v)), nil
	}

	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
