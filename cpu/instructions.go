package cpu

import (
	"nesemu/bus"
	"nesemu/opcode"
)

// operand fetches the value and, where applicable, the effective address for
// a decoded instruction. Implied carries neither. Accumulator returns A with
// accum=true so the writer path knows to store back into the register
// instead of memory. Immediate fetches the operand byte and carries no
// address. Relative is handled inline by the branch instructions, since it
// needs no reusable effective address.
func (c *CPU) operand(mode opcode.Mode, b *bus.Bus) (value byte, addr uint16, accum bool, crossed bool) {
	switch mode {
	case opcode.Implied:
		return 0, 0, false, false
	case opcode.Accumulator:
		return c.A, 0, true, false
	case opcode.Immediate:
		return c.FetchInstruction(b), 0, false, false
	default:
		a, cr := c.Resolve(mode, b)
		return b.Read(a), a, false, cr
	}
}

func (c *CPU) writeBack(accum bool, addr uint16, v byte, b *bus.Bus) {
	if accum {
		c.A = v
		return
	}
	b.Write(addr, v)
}

// execute dispatches a decoded instruction and returns any cycles beyond the
// table's base count (page-cross and branch-taken penalties).
func (c *CPU) execute(inst opcode.Instruction, b *bus.Bus) (uint64, error) {
	m, mode := inst.Mnemonic, inst.Mode

	switch m {
	case opcode.ASL, opcode.LSR, opcode.ROL, opcode.ROR:
		switch mode {
		case opcode.Accumulator, opcode.ZeroPage, opcode.ZeroPageX, opcode.Absolute, opcode.AbsoluteX:
		default:
			return 0, ModeMismatchError{Mnemonic: m, Mode: mode}
		}
	}

	switch m {
	case opcode.ADC:
		v, _, _, crossed := c.operand(mode, b)
		c.adc(v)
		return extraIf(crossed), nil
	case opcode.SBC:
		v, _, _, crossed := c.operand(mode, b)
		c.adc(^v)
		return extraIf(crossed), nil

	case opcode.AND:
		v, _, _, crossed := c.operand(mode, b)
		c.A &= v
		c.P.SetNZ(c.A)
		return extraIf(crossed), nil
	case opcode.ORA:
		v, _, _, crossed := c.operand(mode, b)
		c.A |= v
		c.P.SetNZ(c.A)
		return extraIf(crossed), nil
	case opcode.EOR:
		v, _, _, crossed := c.operand(mode, b)
		c.A ^= v
		c.P.SetNZ(c.A)
		return extraIf(crossed), nil

	case opcode.BIT:
		v, _, _, _ := c.operand(mode, b)
		c.P.Zero = (c.A & v) == 0
		c.P.Overflow = v&0x40 != 0
		c.P.Negative = v&0x80 != 0
		return 0, nil

	case opcode.CMP:
		v, _, _, crossed := c.operand(mode, b)
		c.compare(c.A, v)
		return extraIf(crossed), nil
	case opcode.CPX:
		v, _, _, _ := c.operand(mode, b)
		c.compare(c.X, v)
		return 0, nil
	case opcode.CPY:
		v, _, _, _ := c.operand(mode, b)
		c.compare(c.Y, v)
		return 0, nil

	case opcode.ASL:
		v, addr, accum, _ := c.operand(mode, b)
		c.P.Carry = v&0x80 != 0
		v <<= 1
		c.P.SetNZ(v)
		c.writeBack(accum, addr, v, b)
		return 0, nil
	case opcode.LSR:
		v, addr, accum, _ := c.operand(mode, b)
		c.P.Carry = v&0x01 != 0
		v >>= 1
		c.P.SetNZ(v)
		c.writeBack(accum, addr, v, b)
		return 0, nil
	case opcode.ROL:
		v, addr, accum, _ := c.operand(mode, b)
		oldCarry := c.P.Carry
		c.P.Carry = v&0x80 != 0
		v <<= 1
		if oldCarry {
			v |= 0x01
		}
		c.P.SetNZ(v)
		c.writeBack(accum, addr, v, b)
		return 0, nil
	case opcode.ROR:
		v, addr, accum, _ := c.operand(mode, b)
		oldCarry := c.P.Carry
		c.P.Carry = v&0x01 != 0
		v >>= 1
		if oldCarry {
			v |= 0x80
		}
		c.P.SetNZ(v)
		c.writeBack(accum, addr, v, b)
		return 0, nil

	case opcode.INC:
		v, addr, _, _ := c.operand(mode, b)
		v++
		c.P.SetNZ(v)
		b.Write(addr, v)
		return 0, nil
	case opcode.DEC:
		v, addr, _, _ := c.operand(mode, b)
		v--
		c.P.SetNZ(v)
		b.Write(addr, v)
		return 0, nil
	case opcode.INX:
		c.X++
		c.P.SetNZ(c.X)
		return 0, nil
	case opcode.INY:
		c.Y++
		c.P.SetNZ(c.Y)
		return 0, nil
	case opcode.DEX:
		c.X--
		c.P.SetNZ(c.X)
		return 0, nil
	case opcode.DEY:
		c.Y--
		c.P.SetNZ(c.Y)
		return 0, nil

	case opcode.LDA:
		v, _, _, crossed := c.operand(mode, b)
		c.A = v
		c.P.SetNZ(c.A)
		return extraIf(crossed), nil
	case opcode.LDX:
		v, _, _, crossed := c.operand(mode, b)
		c.X = v
		c.P.SetNZ(c.X)
		return extraIf(crossed), nil
	case opcode.LDY:
		v, _, _, crossed := c.operand(mode, b)
		c.Y = v
		c.P.SetNZ(c.Y)
		return extraIf(crossed), nil

	case opcode.STA:
		addr, _ := c.Resolve(mode, b)
		b.Write(addr, c.A)
		return 0, nil
	case opcode.STX:
		addr, _ := c.Resolve(mode, b)
		b.Write(addr, c.X)
		return 0, nil
	case opcode.STY:
		addr, _ := c.Resolve(mode, b)
		b.Write(addr, c.Y)
		return 0, nil

	case opcode.TAX:
		c.X = c.A
		c.P.SetNZ(c.X)
		return 0, nil
	case opcode.TAY:
		c.Y = c.A
		c.P.SetNZ(c.Y)
		return 0, nil
	case opcode.TXA:
		c.A = c.X
		c.P.SetNZ(c.A)
		return 0, nil
	case opcode.TYA:
		c.A = c.Y
		c.P.SetNZ(c.A)
		return 0, nil
	case opcode.TSX:
		c.X = c.SP
		c.P.SetNZ(c.X)
		return 0, nil
	case opcode.TXS:
		c.SP = c.X
		return 0, nil

	case opcode.CLC:
		c.P.Carry = false
		return 0, nil
	case opcode.SEC:
		c.P.Carry = true
		return 0, nil
	case opcode.CLI:
		c.P.Interrupt = false
		return 0, nil
	case opcode.SEI:
		c.P.Interrupt = true
		return 0, nil
	case opcode.CLD:
		c.P.Decimal = false
		return 0, nil
	case opcode.SED:
		c.P.Decimal = true
		return 0, nil
	case opcode.CLV:
		c.P.Overflow = false
		return 0, nil

	case opcode.NOP:
		return 0, nil

	case opcode.PHA:
		c.push(b, c.A)
		return 0, nil
	case opcode.PHP:
		saved := c.P
		saved.B = true
		c.push(b, saved.ToByte())
		return 0, nil
	case opcode.PLA:
		c.A = c.pop(b)
		c.P.SetNZ(c.A)
		return 0, nil
	case opcode.PLP:
		c.P.SetFromByte(c.pop(b), true)
		return 0, nil

	case opcode.JMP:
		addr, _ := c.Resolve(mode, b)
		c.PC = addr
		return 0, nil
	case opcode.JSR:
		addr, _ := c.Resolve(mode, b)
		ret := c.PC - 1
		c.push(b, byte(ret>>8))
		c.push(b, byte(ret))
		c.PC = addr
		return 0, nil
	case opcode.RTS:
		lo := c.pop(b)
		hi := c.pop(b)
		c.PC = uint16(hi)<<8 | uint16(lo)
		c.PC++
		return 0, nil

	case opcode.BRK:
		c.PC++ // skip the padding byte
		c.push(b, byte(c.PC>>8))
		c.push(b, byte(c.PC))
		saved := c.P
		saved.B = true
		c.push(b, saved.ToByte())
		c.P.Interrupt = true
		c.PC = b.IRQVector()
		return 0, nil
	case opcode.RTI:
		c.P.SetFromByte(c.pop(b), true)
		lo := c.pop(b)
		hi := c.pop(b)
		c.PC = uint16(hi)<<8 | uint16(lo)
		return 0, nil

	case opcode.BCC:
		return c.branch(!c.P.Carry, b), nil
	case opcode.BCS:
		return c.branch(c.P.Carry, b), nil
	case opcode.BEQ:
		return c.branch(c.P.Zero, b), nil
	case opcode.BNE:
		return c.branch(!c.P.Zero, b), nil
	case opcode.BMI:
		return c.branch(c.P.Negative, b), nil
	case opcode.BPL:
		return c.branch(!c.P.Negative, b), nil
	case opcode.BVC:
		return c.branch(!c.P.Overflow, b), nil
	case opcode.BVS:
		return c.branch(c.P.Overflow, b), nil

	default:
		return 0, ModeMismatchError{Mnemonic: m, Mode: mode}
	}
}

func extraIf(crossed bool) uint64 {
	if crossed {
		return 1
	}
	return 0
}

// adc implements both ADC and SBC (the latter by passing ^operand), since
// they share the same binary-mode add-with-carry datapath.
func (c *CPU) adc(v byte) {
	sum := uint16(c.A) + uint16(v)
	if c.P.Carry {
		sum++
	}
	result := byte(sum)
	c.P.Overflow = (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.P.Carry = sum > 0xFF
	c.A = result
	c.P.SetNZ(c.A)
}

// compare implements CMP/CPX/CPY: subtract without storing, set C/Z/N as if
// by SBC with carry forced in.
func (c *CPU) compare(reg, v byte) {
	result := reg - v
	c.P.Carry = reg >= v
	c.P.SetNZ(result)
}

// branch implements the eight relative-branch mnemonics: always consumes the
// signed offset byte, adds a cycle when taken, and one more when the branch
// crosses a page boundary.
func (c *CPU) branch(take bool, b *bus.Bus) uint64 {
	offset := int8(c.FetchInstruction(b))
	if !take {
		return 0
	}
	old := c.PC
	c.PC = uint16(int32(c.PC) + int32(offset))
	extra := uint64(1)
	if old&0xFF00 != c.PC&0xFF00 {
		extra++
	}
	return extra
}
