package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToByteAssertsUnusedBit(t *testing.T) {
	var r Register
	assert.Equal(t, byte(0x20), r.ToByte())
}

func TestToByteAllFlags(t *testing.T) {
	r := Register{Negative: true, Overflow: true, B: true, Decimal: true, Interrupt: true, Zero: true, Carry: true}
	assert.Equal(t, byte(0xFF), r.ToByte())
}

func TestRoundTripOverAllFlagCombinations(t *testing.T) {
	// property 2: set_from_byte(to_byte(P)) == P on the seven defined bits
	for bits := 0; bits < 256; bits++ {
		b := byte(bits)
		var r Register
		r.SetFromByte(b, false)
		var r2 Register
		r2.SetFromByte(r.ToByte(), false)
		assert.Equal(t, r, r2, "round trip mismatch for input 0x%02x", b)
	}
}

func TestSetFromByteMasksBAndUnusedOnPLPPath(t *testing.T) {
	r := Register{B: true}
	r.SetFromByte(0x00, true) // PLP/RTI: bits 4,5 ignored
	assert.True(t, r.B, "B must be left untouched when maskBD is true")

	r2 := Register{B: false}
	r2.SetFromByte(0xFF, true)
	assert.False(t, r2.B, "B must still be left untouched (not forced true) when maskBD is true")
}

func TestSetFromByteHonorsBWhenNotMasked(t *testing.T) {
	var r Register
	r.SetFromByte(0x10, false) // BRK/PHP path: B bit present in byte
	assert.True(t, r.B)
}

func TestSetNZ(t *testing.T) {
	var r Register
	r.SetNZ(0)
	assert.True(t, r.Zero)
	assert.False(t, r.Negative)

	r.SetNZ(0x80)
	assert.False(t, r.Zero)
	assert.True(t, r.Negative)

	r.SetNZ(0x42)
	assert.False(t, r.Zero)
	assert.False(t, r.Negative)
}
