// Package loader provides program-image loading for scsim.
//
// A program image is text with one 32-bit instruction word per line, written
// in hexadecimal. Words are placed at consecutive instruction indices starting
// at 0. Blank lines and comments starting with '#' or "//" are skipped, and a
// leading "0x" is accepted.
package loader

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedImage is returned for lines that are not a single hexadecimal
// word of at most 32 bits.
var ErrMalformedImage = errors.New("malformed program image")

// MaxHexDigits is the widest word a line may hold.
const MaxHexDigits = 8

// Program represents a loaded program image ready for execution.
type Program struct {
	// Words holds the instruction words in load order.
	Words []uint32
	// Source is the path the image was read from, if any.
	Source string
	// Lines maps each word to its 1-based line in the source.
	Lines []int
}

// Len returns the number of instruction words.
func (p *Program) Len() int {
	return len(p.Words)
}

// Load reads a program image from a file.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open program image")
	}
	defer func() { _ = f.Close() }()

	prog, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	prog.Source = path
	return prog, nil
}

// Parse reads a program image from r.
func Parse(r io.Reader) (*Program, error) {
	prog := &Program{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		text := stripComment(scanner.Text())
		if text == "" {
			continue
		}

		word, err := parseWord(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}

		prog.Words = append(prog.Words, word)
		prog.Lines = append(prog.Lines, lineNo)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read program image")
	}

	return prog, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func parseWord(text string) (uint32, error) {
	digits := text
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	if digits == "" {
		return 0, errors.Wrapf(ErrMalformedImage, "%q: no digits", text)
	}

	if len(strings.TrimLeft(digits, "0")) > MaxHexDigits {
		return 0, errors.Wrapf(ErrMalformedImage, "%q: wider than 32 bits", text)
	}

	for _, c := range digits {
		if !isHexDigit(c) {
			return 0, errors.Wrapf(ErrMalformedImage, "%q: not hexadecimal", text)
		}
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedImage, "%q: %v", text, err)
	}

	return uint32(v), nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}
