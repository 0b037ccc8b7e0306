package core_engine

import (
	"testing"

	"example.com/h8-tiny/core_engine/devices"
)

func testSystem() *System {
	s := NewSystem()
	s.SetLogger(devices.NopLogger)
	return s
}

func checkFlags(t *testing.T, s *System, c, z, v, n bool) {
	t.Helper()
	if got := s.cpu.CCR.has(FlagC); got != c {
		t.Errorf("C = %v, want %v", got, c)
	}
	if got := s.cpu.CCR.has(FlagZ); got != z {
		t.Errorf("Z = %v, want %v", got, z)
	}
	if got := s.cpu.CCR.has(FlagV); got != v {
		t.Errorf("V = %v, want %v", got, v)
	}
	if got := s.cpu.CCR.has(FlagN); got != n {
		t.Errorf("N = %v, want %v", got, n)
	}
}

func TestAddByteFlags(t *testing.T) {
	tests := []struct {
		name       string
		dst, src   uint8
		want       uint8
		c, z, v, n bool
		h          bool
	}{
		{"small", 10, 5, 15, false, false, false, false, false},
		{"carry and zero", 0xFF, 0x01, 0x00, true, true, false, false, true},
		{"wrap", 0xFF, 0x02, 0x01, true, false, false, false, true},
		{"signed overflow", 0x7F, 0x01, 0x80, false, false, true, true, true},
		{"negative plus negative", 0x80, 0x80, 0x00, true, true, true, false, false},
		{"half carry", 0x0F, 0x01, 0x10, false, false, false, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSystem()
			got := s.addb(tc.dst, tc.src)
			if got != tc.want {
				t.Errorf("addb(%#x, %#x) = %#x, want %#x", tc.dst, tc.src, got, tc.want)
			}
			checkFlags(t, s, tc.c, tc.z, tc.v, tc.n)
			if gotH := s.cpu.CCR.has(FlagH); gotH != tc.h {
				t.Errorf("H = %v, want %v", gotH, tc.h)
			}
		})
	}
}

func TestSubByteFlags(t *testing.T) {
	tests := []struct {
		name       string
		dst, src   uint8
		want       uint8
		c, z, v, n bool
	}{
		{"simple", 7, 3, 4, false, false, false, false},
		{"underflow", 1, 2, 0xFF, true, false, false, true},
		{"zero", 5, 5, 0, false, true, false, false},
		{"signed overflow", 0x80, 0x01, 0x7F, false, false, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSystem()
			got := s.subb(tc.dst, tc.src)
			if got != tc.want {
				t.Errorf("subb(%#x, %#x) = %#x, want %#x", tc.dst, tc.src, got, tc.want)
			}
			checkFlags(t, s, tc.c, tc.z, tc.v, tc.n)
		})
	}
}

func TestCmpDiscardsResult(t *testing.T) {
	s := testSystem()
	if got := s.cmpb(1, 2); got != 1 {
		t.Errorf("cmpb returned %#x, want the untouched destination", got)
	}
	checkFlags(t, s, true, false, false, true)
}

func TestAddxZeroRetention(t *testing.T) {
	s := testSystem()

	// With Z set and a zero result, Z must survive.
	s.cpu.CCR.set(FlagZ, true)
	s.cpu.CCR.set(FlagC, false)
	if got := s.addx(0, 0); got != 0 {
		t.Fatalf("addx(0, 0) = %#x", got)
	}
	if !s.cpu.CCR.has(FlagZ) {
		t.Error("Z should be retained for a zero result")
	}

	// A non-zero result always clears Z.
	s.cpu.CCR.set(FlagZ, true)
	s.addx(1, 0)
	if s.cpu.CCR.has(FlagZ) {
		t.Error("Z should clear for a non-zero result")
	}

	// The carry participates in the sum.
	s.cpu.CCR.set(FlagC, true)
	if got := s.addx(0x10, 0x01); got != 0x12 {
		t.Errorf("addx with carry = %#x, want 0x12", got)
	}
}

func TestSubxBorrow(t *testing.T) {
	s := testSystem()
	s.cpu.CCR.set(FlagC, true)
	if got := s.subx(0x10, 0x01); got != 0x0E {
		t.Errorf("subx with borrow = %#x, want 0x0E", got)
	}
}

func TestAddsSubsLeaveFlags(t *testing.T) {
	s := testSystem()
	s.cpu.SetRL(2, 0xFFFFFFFF)
	s.cpu.CCR = FlagC | FlagZ | FlagV | FlagN | FlagH
	before := s.cpu.CCR

	s.adds(2, 1)
	if got := s.cpu.RL(2); got != 0 {
		t.Errorf("ADDS wrapped to %#x, want 0", got)
	}
	s.subs(2, 4)
	if got := s.cpu.RL(2); got != 0xFFFFFFFC {
		t.Errorf("SUBS gave %#x", got)
	}
	if s.cpu.CCR != before {
		t.Error("ADDS/SUBS must not touch the condition codes")
	}
}

func TestDivxuByte(t *testing.T) {
	s := testSystem()

	// 358 / 2: quotient 179 in the low byte, remainder 0 in the high byte.
	got := s.divxuB(358, 2)
	if got&0xFF != 179 || got>>8 != 0 {
		t.Errorf("divxuB(358, 2) = %#x", got)
	}
	if s.cpu.CCR.has(FlagZ) {
		t.Error("Z should be clear for a non-zero divisor")
	}

	// Remainder lands in the high byte.
	got = s.divxuB(7, 2)
	if got&0xFF != 3 || got>>8 != 1 {
		t.Errorf("divxuB(7, 2) = %#x", got)
	}
}

func TestDivxuWordByZero(t *testing.T) {
	s := testSystem()
	if got := s.divxuW(999, 0); got != 999 {
		t.Errorf("division by zero changed the destination: %#x", got)
	}
	if !s.cpu.CCR.has(FlagZ) {
		t.Error("Z must be set on a zero divisor")
	}
}

func TestDivxsSigned(t *testing.T) {
	s := testSystem()
	got := s.divxsB(uint16(0xFFF9), 2) // -7 / 2 = -3 rem -1
	if int8(got&0xFF) != -3 || int8(got>>8) != -1 {
		t.Errorf("divxsB(-7, 2) = %#x", got)
	}
	if !s.cpu.CCR.has(FlagN) {
		t.Error("N should reflect the negative quotient")
	}
}

func TestMulx(t *testing.T) {
	s := testSystem()
	if got := mulxuB(0x1234, 3); got != 0x34*3 {
		t.Errorf("mulxuB = %#x", got)
	}
	if got := mulxuW(0xABCD1000, 0x10); got != 0x10000 {
		t.Errorf("mulxuW = %#x", got)
	}
	if got := s.mulxsB(uint16(0x00FE), 3); got != uint16(0xFFFA) { // -2 * 3
		t.Errorf("mulxsB = %#x", got)
	}
	if !s.cpu.CCR.has(FlagN) {
		t.Error("N should be set for a negative product")
	}
}

func TestShifts(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(*System, uint32, uint) uint32
		v     uint32
		want  uint32
		carry bool
	}{
		{"shal 0x55", (*System).shal, 0x55, 0xAA, false},
		{"shal 0x80", (*System).shal, 0x80, 0x00, true},
		{"shar 0x80", (*System).shar, 0x80, 0xC0, false},
		{"shar 0x01", (*System).shar, 0x01, 0x00, true},
		{"shll msb out", (*System).shll, 0x81, 0x02, true},
		{"shlr lsb out", (*System).shlr, 0x03, 0x01, true},
		{"rotl", (*System).rotl, 0x80, 0x01, true},
		{"rotr", (*System).rotr, 0x01, 0x80, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSystem()
			got := tc.fn(s, tc.v, 8)
			if got != tc.want {
				t.Errorf("got %#x, want %#x", got, tc.want)
			}
			if c := s.cpu.CCR.has(FlagC); c != tc.carry {
				t.Errorf("C = %v, want %v", c, tc.carry)
			}
		})
	}
}

func TestRotateThroughCarry(t *testing.T) {
	s := testSystem()
	s.cpu.CCR.set(FlagC, true)
	if got := s.rotxl(0x7F, 8); got != 0xFF {
		t.Errorf("rotxl = %#x, want 0xFF", got)
	}
	if s.cpu.CCR.has(FlagC) {
		t.Error("C should pick up the bit rotated out (0)")
	}

	s.cpu.CCR.set(FlagC, true)
	if got := s.rotxr(0x02, 8); got != 0x81 {
		t.Errorf("rotxr = %#x, want 0x81", got)
	}
	if s.cpu.CCR.has(FlagC) {
		t.Error("C should pick up bit 0 (0)")
	}
}

func TestBitManipulation(t *testing.T) {
	if got := bset(0x00, 2); got != 0x04 {
		t.Errorf("bset(0, #2) = %#x, want 0x04", got)
	}
	if got := bclr(0x04, 1); got != 0x04 {
		t.Errorf("bclr(0x04, #1) = %#x, want 0x04", got)
	}
	if got := bnot(0x04, 2); got != 0x00 {
		t.Errorf("bnot(0x04, #2) = %#x, want 0x00", got)
	}

	s := testSystem()
	s.btst(0x04, 2)
	if s.cpu.CCR.has(FlagZ) {
		t.Error("btst of a set bit should clear Z")
	}
	s.btst(0x04, 1)
	if !s.cpu.CCR.has(FlagZ) {
		t.Error("btst of a clear bit should set Z")
	}

	s.cpu.CCR.set(FlagC, true)
	if got := s.bst(0x00, 3); got != 0x08 {
		t.Errorf("bst with C=1 = %#x", got)
	}
	if got := s.bist(0xFF, 3); got != 0xF7 {
		t.Errorf("bist with C=1 = %#x", got)
	}
	s.cpu.CCR.set(FlagC, false)
	if got := s.bst(0xFF, 3); got != 0xF7 {
		t.Errorf("bst with C=0 = %#x", got)
	}

	s.bld(0x08, 3)
	if !s.cpu.CCR.has(FlagC) {
		t.Error("bld should load the bit into C")
	}
	s.bild(0x08, 3)
	if s.cpu.CCR.has(FlagC) {
		t.Error("bild should load the complement")
	}
}

func TestExtendOps(t *testing.T) {
	s := testSystem()
	if got := s.extuW(0xABCD); got != 0x00CD {
		t.Errorf("extuW = %#x", got)
	}
	if s.cpu.CCR.has(FlagN) {
		t.Error("EXTU clears N")
	}
	if got := s.extsW(0x0080); got != 0xFF80 {
		t.Errorf("extsW = %#x", got)
	}
	if !s.cpu.CCR.has(FlagN) {
		t.Error("EXTS takes N from the source sign bit")
	}
	if got := s.extsL(0x00008000); got != 0xFFFF8000 {
		t.Errorf("extsL = %#x", got)
	}
	if got := s.extuL(0xFFFF8000); got != 0x00008000 {
		t.Errorf("extuL = %#x", got)
	}
}

func TestDaa(t *testing.T) {
	// 0x19 + 0x28 = 0x41, DAA -> 0x47
	s := testSystem()
	r := s.addb(0x19, 0x28)
	if got := s.daa(r); got != 0x47 {
		t.Errorf("daa after 19+28 = %#x, want 0x47", got)
	}

	// 0x91 + 0x82 = 0x13 with carry, DAA -> 0x73 and C stays set
	s = testSystem()
	r = s.addb(0x91, 0x82)
	if got := s.daa(r); got != 0x73 {
		t.Errorf("daa after 91+82 = %#x, want 0x73", got)
	}
	if !s.cpu.CCR.has(FlagC) {
		t.Error("daa should keep C for a decimal carry")
	}
}

func TestRegisterViews(t *testing.T) {
	var c CPU
	c.SetRL(3, 0x01234567)
	if c.RW(3) != 0x4567 || c.RW(3|0x8) != 0x0123 {
		t.Errorf("word views: R=%#x E=%#x", c.RW(3), c.RW(3|0x8))
	}
	if c.RB(3) != 0x45 || c.RB(3|0x8) != 0x67 {
		t.Errorf("byte views: RH=%#x RL=%#x", c.RB(3), c.RB(3|0x8))
	}
	c.SetRB(3|0x8, 0xAA)
	c.SetRB(3, 0xBB)
	c.SetRW(3|0x8, 0xCCDD)
	if c.RL(3) != 0xCCDDBBAA {
		t.Errorf("composed register = %#x, want 0xCCDDBBAA", c.RL(3))
	}
}
