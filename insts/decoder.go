package insts

// Opcode values, bits [31:26].
const (
	OpRType uint8 = 0x00
	OpBEQ   uint8 = 0x04
	OpADDI  uint8 = 0x08
	OpORI   uint8 = 0x0D
	OpLUI   uint8 = 0x0F
	OpLW    uint8 = 0x23
	OpSW    uint8 = 0x2B
)

// Function codes for R-type instructions, bits [5:0].
const (
	FuncADD uint8 = 0x20
	FuncAND uint8 = 0x24
	FuncSLT uint8 = 0x2A
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatR Format = iota // op == 0, disambiguated by func
	FormatI               // everything else
)

// Instruction represents a decoded instruction word.
type Instruction struct {
	Raw uint32 // The undecoded word

	Op   uint8 // Primary opcode
	Rs   uint8 // First source register
	Rt   uint8 // Second source register, or destination for I-type
	Rd   uint8 // Destination register for R-type
	Func uint8 // Function code

	Imm  uint16 // Raw 16-bit immediate
	SImm uint32 // Imm sign-extended to 32 bits
}

// Format reports whether the instruction uses the R or I encoding.
func (i *Instruction) Format() Format {
	if i.Op == OpRType {
		return FormatR
	}
	return FormatI
}

// Offset returns the sign-extended immediate as a signed value.
func (i *Instruction) Offset() int32 {
	return int32(i.SImm)
}

// Decoder decodes machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word. It never fails: unknown
// opcodes still produce their fields and are resolved by the control unit.
func (d *Decoder) Decode(word uint32) *Instruction {
	imm := uint16(word & 0xFFFF) // bits [15:0]

	return &Instruction{
		Raw:  word,
		Op:   uint8((word >> 26) & 0x3F), // bits [31:26]
		Rs:   uint8((word >> 21) & 0x1F), // bits [25:21]
		Rt:   uint8((word >> 16) & 0x1F), // bits [20:16]
		Rd:   uint8((word >> 11) & 0x1F), // bits [15:11]
		Func: uint8(word & 0x3F),         // bits [5:0]
		Imm:  imm,
		SImm: SignExtend16(imm),
	}
}

// SignExtend16 sign-extends a 16-bit value to 32 bits.
// Logical immediates (ORI) go through here too; there is no zero-extending
// immediate mode.
func SignExtend16(v uint16) uint32 {
	return uint32(int32(int16(v)))
}
