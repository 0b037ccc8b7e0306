package core_engine

import "testing"

// The handler tables and register constants must agree on the documented
// byte-exact layout.
func TestRegionLayout(t *testing.T) {
	if RegionIO1Size != 0xE0 {
		t.Errorf("I/O region 1 size = %#x, want 0xE0", RegionIO1Size)
	}
	if RegionIO2Size != 0x80 {
		t.Errorf("I/O region 2 size = %#x, want 0x80", RegionIO2Size)
	}
	s := testSystem()
	if len(s.vmem) != 0x10000 {
		t.Errorf("address space = %#x bytes, want 0x10000", len(s.vmem))
	}

	addrs := map[string]uint32{
		"SSCRH": 0xF0E0,
		"SSSR":  0xF0E4,
		"SSRDR": 0xF0E9,
		"SSTDR": 0xF0EB,
		"SMR3":  0xFF98,
		"TMWD":  0xFFB0,
		"AMR":   0xFFBE,
		"ADSR":  0xFFBF,
		"PDR1":  0xFFD4,
		"PDR3":  0xFFD6,
		"PDR8":  0xFFDB,
		"PDR9":  0xFFDC,
		"PDRB":  0xFFDE,
	}
	got := map[string]uint32{
		"SSCRH": RegSSCRH, "SSSR": RegSSSR, "SSRDR": RegSSRDR,
		"SSTDR": RegSSTDR, "SMR3": RegSMR3, "TMWD": RegTMWD,
		"AMR": RegAMR, "ADSR": RegADSR, "PDR1": RegPDR1,
		"PDR3": RegPDR3, "PDR8": RegPDR8, "PDR9": RegPDR9, "PDRB": RegPDRB,
	}
	for name, want := range addrs {
		if got[name] != want {
			t.Errorf("%s = %#x, want %#x", name, got[name], want)
		}
	}
}

func TestIOSlotMapping(t *testing.T) {
	tests := []struct {
		addr uint32
		slot int
		ok   bool
	}{
		{RegionIO1, 0, true},
		{RegSSSR, 0xC4, true},
		{RegionIO1 + RegionIO1Size - 1, 0xDF, true},
		{RegionIO2, 0xE0, true},
		{RegTMWD, 0xE0 + 0x30, true},
		{0xFFFF, 0x15F, true},
		{RegionIO1 - 1, 0, false},
		{RegionIO1 + RegionIO1Size, 0, false},
		{0x0000, 0, false},
		{0x8000, 0, false},
	}
	for _, tc := range tests {
		slot, ok := ioSlot(tc.addr)
		if ok != tc.ok || (ok && slot != tc.slot) {
			t.Errorf("ioSlot(%#x) = %d, %v; want %d, %v", tc.addr, slot, ok, tc.slot, tc.ok)
		}
	}
}

func TestPeekPoke(t *testing.T) {
	s := testSystem()
	for _, addr := range []uint32{0x0000, 0x0050, 0x8000, RegionRAM, 0xFFFF} {
		s.PokeB(addr, 0x5A)
		if got := s.PeekB(addr); got != 0x5A {
			t.Errorf("peek after poke at %#x = %#x", addr, got)
		}
	}

	s.PokeB(0x8000, 0x12)
	s.PokeB(0x8001, 0x34)
	if got := s.PeekW(0x8000); got != 0x1234 {
		t.Errorf("PeekW composes %#x, want big-endian 0x1234", got)
	}
	s.PokeL(0x8100, 0xDEADBEEF)
	if s.PeekB(0x8100) != 0xDE || s.PeekB(0x8103) != 0xEF {
		t.Error("PokeL should store high byte first")
	}
	if got := s.PeekL(0x8100); got != 0xDEADBEEF {
		t.Errorf("PeekL = %#x", got)
	}
}

func TestBulkTransfer(t *testing.T) {
	s := testSystem()
	data := []byte{1, 2, 3, 4}

	// RAM accepts plain writes.
	if n := s.Write(data, RegionRAM, false); n != len(data) {
		t.Errorf("write into RAM = %d bytes", n)
	}

	// ROM refuses without force.
	if n := s.Write(data, 0x0100, false); n != 0 {
		t.Errorf("write into ROM without force = %d bytes, want 0", n)
	}
	if n := s.Write(data, 0x0100, true); n != len(data) {
		t.Errorf("forced write into ROM = %d bytes", n)
	}

	var out [4]byte
	if n := s.Read(out[:], 0x0100); n != 4 || out != [4]byte{1, 2, 3, 4} {
		t.Errorf("read back %v (%d bytes)", out, n)
	}

	// Transfers clip at the end of the address space.
	if n := s.Write(data, 0xFFFE, true); n != 2 {
		t.Errorf("clipped write = %d bytes, want 2", n)
	}
	if n := s.Read(out[:], 0xFFFE); n != 2 {
		t.Errorf("clipped read = %d bytes, want 2", n)
	}
	if n := s.Read(out[:], 0x10000); n != 0 {
		t.Errorf("out-of-range read = %d bytes, want 0", n)
	}
}

func TestROMStoreDiscarded(t *testing.T) {
	s := testSystem()
	s.PokeB(0x0100, 0xAB)
	s.writeB(0x0100, 0x00)
	if got := s.PeekB(0x0100); got != 0xAB {
		t.Errorf("program store reached ROM: %#x", got)
	}

	// RAM stores go through.
	s.writeB(RegionRAM+0x10, 0x77)
	if got := s.PeekB(RegionRAM + 0x10); got != 0x77 {
		t.Errorf("RAM store lost: %#x", got)
	}
}

func TestUnmappedIOReadsRawCell(t *testing.T) {
	s := testSystem()
	s.PokeB(0xF030, 0x42) // inside region 1, no handler
	if got := s.readB(0xF030); got != 0x42 {
		t.Errorf("unhandled register read = %#x, want the raw cell", got)
	}
	s.writeB(0xF030, 0x24)
	if got := s.PeekB(0xF030); got != 0x24 {
		t.Errorf("unhandled register write = %#x, want stored", got)
	}
}
