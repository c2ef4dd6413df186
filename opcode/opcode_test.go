package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableHas151Entries(t *testing.T) {
	assert.Len(t, table, 151)
}

func TestDecodeInvalidByteIsRejected(t *testing.T) {
	// 0xFF is never assigned in the 6502 table.
	_, ok := Decode(0xFF)
	assert.False(t, ok)
}

func TestDecodeKnownOpcodes(t *testing.T) {
	cases := []struct {
		b    byte
		want Instruction
	}{
		{0x69, Instruction{ADC, Immediate, 2}},
		{0x7D, Instruction{ADC, AbsoluteX, 4}},
		{0x9D, Instruction{STA, AbsoluteX, 5}},
		{0x00, Instruction{BRK, Implied, 7}},
		{0x6C, Instruction{JMP, Indirect, 5}},
	}
	for _, c := range cases {
		got, ok := Decode(c.b)
		assert.True(t, ok, "0x%02X should decode", c.b)
		assert.Equal(t, c.want, got, "0x%02X", c.b)
	}
}

// legalModes enumerates the permitted (mnemonic, mode) pairs per spec.md §6's
// opcode map, used to check that every table entry stays within them.
var legalModes = map[Mnemonic]map[Mode]bool{
	ADC: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	AND: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	ASL: modes(Accumulator, ZeroPage, ZeroPageX, Absolute, AbsoluteX),
	BCC: modes(Relative), BCS: modes(Relative), BEQ: modes(Relative), BMI: modes(Relative),
	BNE: modes(Relative), BPL: modes(Relative), BVC: modes(Relative), BVS: modes(Relative),
	BIT: modes(ZeroPage, Absolute),
	BRK: modes(Implied),
	CLC: modes(Implied), CLD: modes(Implied), CLI: modes(Implied), CLV: modes(Implied),
	SEC: modes(Implied), SED: modes(Implied), SEI: modes(Implied),
	CMP: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	CPX: modes(Immediate, ZeroPage, Absolute),
	CPY: modes(Immediate, ZeroPage, Absolute),
	DEC: modes(ZeroPage, ZeroPageX, Absolute, AbsoluteX),
	DEX: modes(Implied), DEY: modes(Implied),
	EOR: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	INC: modes(ZeroPage, ZeroPageX, Absolute, AbsoluteX),
	INX: modes(Implied), INY: modes(Implied),
	JMP: modes(Absolute, Indirect),
	JSR: modes(Absolute),
	LDA: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	LDX: modes(Immediate, ZeroPage, ZeroPageY, Absolute, AbsoluteY),
	LDY: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX),
	LSR: modes(Accumulator, ZeroPage, ZeroPageX, Absolute, AbsoluteX),
	NOP: modes(Implied),
	ORA: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	PHA: modes(Implied), PHP: modes(Implied), PLA: modes(Implied), PLP: modes(Implied),
	ROL: modes(Accumulator, ZeroPage, ZeroPageX, Absolute, AbsoluteX),
	ROR: modes(Accumulator, ZeroPage, ZeroPageX, Absolute, AbsoluteX),
	RTI: modes(Implied), RTS: modes(Implied),
	SBC: modes(Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	STA: modes(ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY),
	STX: modes(ZeroPage, ZeroPageY, Absolute),
	STY: modes(ZeroPage, ZeroPageX, Absolute),
	TAX: modes(Implied), TAY: modes(Implied), TSX: modes(Implied),
	TXA: modes(Implied), TXS: modes(Implied), TYA: modes(Implied),
}

func modes(ms ...Mode) map[Mode]bool {
	out := make(map[Mode]bool, len(ms))
	for _, m := range ms {
		out[m] = true
	}
	return out
}

// TestEveryOpcodeDecodesToALegalModeForItsMnemonic verifies spec.md §8
// property 1: for all 256 bytes, a legal decode has a mode within the
// mnemonic's permitted mode set.
func TestEveryOpcodeDecodesToALegalModeForItsMnemonic(t *testing.T) {
	for b := 0; b < 256; b++ {
		inst, ok := Decode(byte(b))
		if !ok {
			continue
		}
		legal, known := legalModes[inst.Mnemonic]
		if assert.True(t, known, "0x%02X: no legal-mode set registered for mnemonic %s", b, inst.Mnemonic) {
			assert.True(t, legal[inst.Mode], "0x%02X: mode %s not permitted for %s", b, inst.Mode, inst.Mnemonic)
		}
	}
}

func TestModeStringer(t *testing.T) {
	assert.Equal(t, "AbsoluteX", AbsoluteX.String())
	assert.Equal(t, "Unknown", Mode(999).String())
}
