// Package status packs and unpacks the 6502 processor status register (P).
//
// 7654 3210
// NV1B DIZC
//
// Bit 5 is unused and always reads as 1. Bit 4 (B) is not a real latch: it is
// synthesized as 1 when the byte is pushed by BRK or PHP, and as 0 when pushed
// by a hardware interrupt (NMI). On PLP/RTI, bits 4 and 5 of the popped byte
// are discarded; the receiver's own B/unused state is left alone.
package status

import "nesemu/mask"

const (
	maskC byte = 1 << 0
	maskZ byte = 1 << 1
	maskI byte = 1 << 2
	maskD byte = 1 << 3
	maskB byte = 1 << 4
	maskU byte = 1 << 5
	maskV byte = 1 << 6
	maskN byte = 1 << 7
)

// Register holds the six architectural flags plus the synthesized B bit.
type Register struct {
	Negative  bool // N
	Overflow  bool // V
	B         bool // set on BRK/PHP push, clear on hardware interrupt push
	Decimal   bool // D; settable/clearable, never consulted by ADC/SBC
	Interrupt bool // I, disable interrupts
	Zero      bool // Z
	Carry     bool // C
}

// ToByte packs the seven flags into a single byte with bit 5 (unused) always
// set, per the NV1B DIZC layout.
func (r Register) ToByte() byte {
	var b byte
	if r.Carry {
		b = mask.Set(b, 8, 1)
	}
	if r.Zero {
		b = mask.Set(b, 7, 1)
	}
	if r.Interrupt {
		b = mask.Set(b, 6, 1)
	}
	if r.Decimal {
		b = mask.Set(b, 5, 1)
	}
	if r.B {
		b = mask.Set(b, 4, 1)
	}
	b = mask.Set(b, 3, 1) // unused bit, always 1 on externalization
	if r.Overflow {
		b = mask.Set(b, 2, 1)
	}
	if r.Negative {
		b = mask.Set(b, 1, 1)
	}
	return b
}

// SetFromByte unpacks b into the receiver. When maskBD is true (the PLP/RTI
// path) bits 4 and 5 of b are ignored and the receiver's current B value is
// kept, matching the 6502's behavior of never truly storing those two bits.
func (r *Register) SetFromByte(b byte, maskBD bool) {
	r.Carry = b&maskC != 0
	r.Zero = b&maskZ != 0
	r.Interrupt = b&maskI != 0
	r.Decimal = b&maskD != 0
	r.Overflow = b&maskV != 0
	r.Negative = b&maskN != 0
	if !maskBD {
		r.B = b&maskB != 0
	}
}

// SetNZ is the shared NZ-flag helper used after arithmetic/logical/transfer
// operations: Z is set when result is zero, N mirrors result's bit 7.
func (r *Register) SetNZ(result byte) {
	r.Zero = result == 0
	r.Negative = result&0x80 != 0
}
