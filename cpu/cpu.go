// Package cpu implements the MOS 6502 (2A03) decoder, addressing-mode
// resolver and execution engine: the part of the system that turns a byte
// stream in a bus.Bus into architectural state transitions and a cycle
// count.
package cpu

import (
	"fmt"

	"nesemu/bus"
	"nesemu/opcode"
	"nesemu/status"
)

// DecodeError reports an undocumented opcode byte encountered at PC. It is
// fatal by construction: it means the byte stream is corrupt or the decode
// table has a gap, not a recoverable architectural condition.
type DecodeError struct {
	Byte byte
	PC   uint16
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("cpu: invalid opcode 0x%02X at PC=0x%04X", e.Byte, e.PC)
}

// ModeMismatchError reports an addressing mode outside a mnemonic's legal
// set reaching the executor. The opcode table is the single source of
// truth for (mnemonic, mode) pairs, so this should be unreachable in
// practice; it exists as a defensive backstop for the shift/rotate family,
// which is decoded once but dispatched on two different operand paths
// (accumulator vs. memory).
type ModeMismatchError struct {
	Mnemonic opcode.Mnemonic
	Mode     opcode.Mode
}

func (e ModeMismatchError) Error() string {
	return fmt.Sprintf("cpu: mode %s not legal for %s", e.Mode, e.Mnemonic)
}

// CPU holds the 6502's architectural registers. The zero value is the
// power-up state described in spec.md §3: all registers zero, all status
// flags clear.
type CPU struct {
	A, X, Y byte
	SP      byte
	PC      uint16
	P       status.Register
}

// New returns a CPU in its zero power-up state.
func New() *CPU {
	return &CPU{}
}

// FetchInstruction reads the byte at PC and advances PC by one, wrapping
// modulo 65536.
func (c *CPU) FetchInstruction(b *bus.Bus) byte {
	v := b.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16(b *bus.Bus) uint16 {
	lo := c.FetchInstruction(b)
	hi := c.FetchInstruction(b)
	return uint16(hi)<<8 | uint16(lo)
}

// Resolve computes the effective address for the nine addressing modes that
// go through indirection or indexing (spec.md §4.4). Accumulator, Implied,
// Immediate and Relative operands are fetched directly by their
// instructions and never reach this function.
func (c *CPU) Resolve(mode opcode.Mode, b *bus.Bus) (addr uint16, pageCrossed bool) {
	switch mode {
	case opcode.Absolute:
		return c.fetch16(b), false

	case opcode.AbsoluteX:
		base := c.fetch16(b)
		eff := base + uint16(c.X)
		return eff, (base & 0xFF00) != (eff & 0xFF00)

	case opcode.AbsoluteY:
		base := c.fetch16(b)
		eff := base + uint16(c.Y)
		return eff, (base & 0xFF00) != (eff & 0xFF00)

	case opcode.Indirect:
		ptr := c.fetch16(b)
		lo := b.Read(ptr)
		hi := b.Read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF)) // page-wrap bug, mandatory
		return uint16(hi)<<8 | uint16(lo), false

	case opcode.IndirectX:
		zp := c.FetchInstruction(b)
		ptr := uint16(zp+c.X) & 0xFF
		lo := b.Read(ptr)
		hi := b.Read((ptr + 1) & 0xFF)
		return uint16(hi)<<8 | uint16(lo), false

	case opcode.IndirectY:
		zp := c.FetchInstruction(b)
		lo := b.Read(uint16(zp))
		hi := b.Read(uint16(zp+1) & 0xFF)
		base := uint16(hi)<<8 | uint16(lo)
		eff := base + uint16(c.Y)
		return eff, (base & 0xFF00) != (eff & 0xFF00)

	case opcode.ZeroPage:
		return uint16(c.FetchInstruction(b)), false

	case opcode.ZeroPageX:
		return uint16(c.FetchInstruction(b)+c.X) & 0xFF, false

	case opcode.ZeroPageY:
		return uint16(c.FetchInstruction(b)+c.Y) & 0xFF, false

	default:
		panic(fmt.Sprintf("cpu: Resolve called with non-indexed mode %s", mode))
	}
}

// Step runs one fetch-decode-execute cycle and returns the cycles charged.
func (c *CPU) Step(b *bus.Bus) (uint64, error) {
	pc0 := c.PC
	opByte := c.FetchInstruction(b)
	inst, ok := opcode.Decode(opByte)
	if !ok {
		return 0, DecodeError{Byte: opByte, PC: pc0}
	}
	cycles := uint64(inst.Cycles)
	extra, err := c.execute(inst, b)
	if err != nil {
		return 0, err
	}
	return cycles + extra, nil
}

// stackAddr returns the absolute address of the current top-of-stack byte.
func stackAddr(sp byte) uint16 {
	return 0x0100 + uint16(sp)
}

func (c *CPU) push(b *bus.Bus, v byte) {
	b.Write(stackAddr(c.SP), v)
	c.SP--
}

func (c *CPU) pop(b *bus.Bus) byte {
	c.SP++
	return b.Read(stackAddr(c.SP))
}

// NMI implements the synthesized non-maskable interrupt entry the driver
// invokes on the vblank/NMI-enable boundary: push PC high then low, push P
// with B clear and the unused bit set, set I, then load PC from the NMI
// vector. Costs 7 cycles.
func (c *CPU) NMI(b *bus.Bus) uint64 {
	c.push(b, byte(c.PC>>8))
	c.push(b, byte(c.PC))
	saved := c.P
	saved.B = false
	c.push(b, saved.ToByte())
	c.P.Interrupt = true
	c.PC = b.NMIVector()
	return 7
}
