package core_engine

// opFunc decodes the remainder of the instruction on the data bus and
// executes it. The high byte of the first instruction word selects the
// handler; multi-word opcodes fetch their extension words themselves.
type opFunc func(*System)

var opTable [256]opFunc

func init() {
	single := map[uint8]opFunc{
		0x00: op00, 0x01: op01, 0x02: op02, 0x03: op03,
		0x04: op04, 0x05: op05, 0x06: op06, 0x07: op07,
		0x08: op08, 0x09: op09, 0x0A: op0a, 0x0B: op0b,
		0x0C: op0c, 0x0D: op0d, 0x0E: op0e, 0x0F: op0f,
		0x10: op10, 0x11: op11, 0x12: op12, 0x13: op13,
		0x14: op14, 0x15: op15, 0x16: op16, 0x17: op17,
		0x18: op18, 0x19: op19, 0x1A: op1a, 0x1B: op1b,
		0x1C: op1c, 0x1D: op1d, 0x1E: op1e, 0x1F: op1f,
		0x50: op50, 0x51: op51, 0x52: op52, 0x53: op53,
		0x54: op54, 0x55: op55, 0x58: op58, 0x59: op59,
		0x5A: op5a, 0x5B: op5b, 0x5C: op5c, 0x5D: op5d,
		0x5E: op5e,
		0x60: op60, 0x61: op61, 0x62: op62, 0x63: op63,
		0x64: op64, 0x65: op65, 0x66: op66, 0x67: op67,
		0x68: op68, 0x69: op69, 0x6A: op6a, 0x6B: op6b,
		0x6C: op6c, 0x6D: op6d, 0x6E: op6e, 0x6F: op6f,
		0x70: op70, 0x71: op71, 0x72: op72, 0x73: op73,
		0x77: op77, 0x78: op78, 0x79: op79, 0x7A: op7a,
		0x7D: op7d, 0x7E: op7e, 0x7F: op7f,
	}
	for a, fn := range single {
		opTable[a] = fn
	}

	// Opcodes with the destination register unrolled into the low nibble
	// of the high byte.
	for i := 0; i < 16; i++ {
		opTable[0x20+i] = op2x // MOV.B @aa:8, Rd
		opTable[0x30+i] = op3x // MOV.B Rs, @aa:8
		opTable[0x40+i] = op4x // Bcc d:8
		opTable[0x80+i] = op8x // ADD.B #xx:8, Rd
		opTable[0x90+i] = op9x // ADDX #xx:8, Rd
		opTable[0xA0+i] = opax // CMP.B #xx:8, Rd
		opTable[0xB0+i] = opbx // SUBX #xx:8, Rd
		opTable[0xC0+i] = opcx // OR.B #xx:8, Rd
		opTable[0xD0+i] = opdx // XOR.B #xx:8, Rd
		opTable[0xE0+i] = opex // AND.B #xx:8, Rd
		opTable[0xF0+i] = opfx // MOV.B #xx:8, Rd
	}
}

// condition evaluates one of the sixteen Bcc branch conditions.
func (s *System) condition(cc uint8) bool {
	c := s.cpu.CCR.has(FlagC)
	v := s.cpu.CCR.has(FlagV)
	z := s.cpu.CCR.has(FlagZ)
	n := s.cpu.CCR.has(FlagN)
	switch cc & 0xF {
	case 0x0: // BRA
		return true
	case 0x1: // BRN
		return false
	case 0x2: // BHI
		return !(c || z)
	case 0x3: // BLS
		return c || z
	case 0x4: // BCC (BHS)
		return !c
	case 0x5: // BCS (BLO)
		return c
	case 0x6: // BNE
		return !z
	case 0x7: // BEQ
		return z
	case 0x8: // BVC
		return !v
	case 0x9: // BVS
		return v
	case 0xA: // BPL
		return !n
	case 0xB: // BMI
		return n
	case 0xC: // BGE
		return n == v
	case 0xD: // BLT
		return n != v
	case 0xE: // BGT
		return !(z || n != v)
	}
	// BLE
	return z || n != v
}

// bsr pushes the 16-bit return address and branches by offset.
func (s *System) bsr(offset int32) {
	sp := s.cpu.RL(7) - 2
	s.cpu.SetRL(7, sp)
	s.writeW(sp&aptrMask, uint16(s.cpu.PC))
	s.cpu.PC = uint32(int32(s.cpu.PC) + offset)
}

// jsr pushes the 16-bit return address and jumps to target.
func (s *System) jsr(target uint32) {
	sp := s.cpu.RL(7) - 2
	s.cpu.SetRL(7, sp)
	s.writeW(sp&aptrMask, uint16(s.cpu.PC))
	s.cpu.PC = target
}

func op00(s *System) {
	// NOP
}

// op01 dispatches the prefix-extended long-word, CCR and signed
// multiply/divide instructions on the second byte of the first word.
func op01(s *System) {
	switch s.dbus.b {
	case 0x00:
		s.fetch()
		switch s.dbus.a {
		case 0x69:
			if s.dbus.bh&0x8 != 0 {
				// MOV.L ERs, @ERd
				addr := s.er(s.dbus.bh & 0x7)
				v := s.PeekL(addr)
				s.writeL(addr, s.movl(v, s.cpu.RL(s.dbus.bl)))
			} else {
				// MOV.L @ERs, ERd
				s.cpu.SetRL(s.dbus.bl, s.movl(0, s.readL(s.er(s.dbus.bh))))
			}
		case 0x6B:
			switch s.dbus.bh {
			case 0x0:
				// MOV.L @aa:16, ERd
				erd := s.dbus.bl
				s.fetch()
				s.cpu.SetRL(erd, s.movl(0, s.readL(aa16(s.dbus.bits))))
			case 0x2:
				// MOV.L @aa:24, ERd
				s.fail(ErrUnimplementedOpcode)
			case 0x8:
				// MOV.L ERs, @aa:16
				ers := s.dbus.bl
				s.fetch()
				addr := aa16(s.dbus.bits)
				v := s.PeekL(addr)
				s.writeL(addr, s.movl(v, s.cpu.RL(ers)))
			case 0xA:
				// MOV.L ERs, @aa:24
				s.fail(ErrUnimplementedOpcode)
			default:
				s.fail(ErrMalformedOpcode)
			}
		case 0x6D:
			if s.dbus.bh&0x8 != 0 {
				// MOV.L ERs, @-ERd
				addr := s.erpd(s.dbus.bh&0x7, 4)
				v := s.PeekL(addr)
				s.writeL(addr, s.movl(v, s.cpu.RL(s.dbus.bl)))
			} else {
				// MOV.L @ERs+, ERd
				s.cpu.SetRL(s.dbus.bl, s.movl(0, s.readL(s.erpi(s.dbus.bh, 4))))
			}
		case 0x6F:
			sd := s.dbus
			s.fetch()
			if sd.bh&0x8 != 0 {
				// MOV.L ERs, @(d:16, ERd)
				addr := s.erd16(sd.bh&0x7, s.dbus.bits)
				v := s.PeekL(addr)
				s.writeL(addr, s.movl(v, s.cpu.RL(sd.bl)))
			} else {
				// MOV.L @(d:16, ERs), ERd
				s.cpu.SetRL(sd.bl, s.movl(0, s.readL(s.erd16(sd.bh, s.dbus.bits))))
			}
		case 0x78:
			// MOV.L with 24-bit displacement
			s.fail(ErrUnimplementedOpcode)
		default:
			s.fail(ErrMalformedOpcode)
		}
	case 0x40:
		s.fetch()
		switch s.dbus.a {
		case 0x69:
			if s.dbus.bh&0x8 != 0 {
				// STC.W CCR, @ERd
				s.writeB(s.er(s.dbus.bh&0x7), uint8(s.cpu.CCR))
			} else {
				// LDC.W @ERs, CCR
				s.cpu.CCR = CCR(s.readB(s.er(s.dbus.bh)))
			}
		default:
			// Remaining STC/LDC addressing forms
			s.fail(ErrUnimplementedOpcode)
		}
	case 0x80:
		// SLEEP: cooperative halt observed by the outer loop
		s.sleep = true
	case 0xC0:
		s.fetch()
		switch s.dbus.a {
		case 0x50:
			// MULXS.B Rs, Rd
			s.cpu.SetRW(s.dbus.bl, s.mulxsB(s.cpu.RW(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
		case 0x52:
			// MULXS.W Rs, ERd
			s.cpu.SetRL(s.dbus.bl, s.mulxsW(s.cpu.RL(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
		default:
			s.fail(ErrMalformedOpcode)
		}
	case 0xD0:
		s.fetch()
		switch s.dbus.a {
		case 0x51:
			// DIVXS.B Rs, Rd
			s.cpu.SetRW(s.dbus.bl, s.divxsB(s.cpu.RW(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
		case 0x53:
			// DIVXS.W Rs, ERd
			s.cpu.SetRL(s.dbus.bl, s.divxsW(s.cpu.RL(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
		default:
			s.fail(ErrMalformedOpcode)
		}
	case 0xF0:
		s.fetch()
		switch s.dbus.a {
		case 0x64:
			// OR.L ERs, ERd
			s.cpu.SetRL(s.dbus.bl, s.orl(s.cpu.RL(s.dbus.bl), s.cpu.RL(s.dbus.bh)))
		case 0x65:
			// XOR.L ERs, ERd
			s.cpu.SetRL(s.dbus.bl, s.xorl(s.cpu.RL(s.dbus.bl), s.cpu.RL(s.dbus.bh)))
		case 0x66:
			// AND.L ERs, ERd
			s.cpu.SetRL(s.dbus.bl, s.andl(s.cpu.RL(s.dbus.bl), s.cpu.RL(s.dbus.bh)))
		default:
			s.fail(ErrMalformedOpcode)
		}
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op02(s *System) {
	// STC CCR, Rd
	s.cpu.SetRB(s.dbus.bl, uint8(s.cpu.CCR))
}

func op03(s *System) {
	// LDC Rs, CCR
	s.cpu.CCR = CCR(s.cpu.RB(s.dbus.bl))
}

func op04(s *System) {
	// ORC #xx:8, CCR
	s.cpu.CCR |= CCR(s.dbus.b)
}

func op05(s *System) {
	// XORC #xx:8, CCR
	s.cpu.CCR ^= CCR(s.dbus.b)
}

func op06(s *System) {
	// ANDC #xx:8, CCR
	s.cpu.CCR &= CCR(s.dbus.b)
}

func op07(s *System) {
	// LDC #xx:8, CCR
	s.cpu.CCR = CCR(s.dbus.b)
}

func op08(s *System) {
	// ADD.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.addb(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op09(s *System) {
	// ADD.W Rs, Rd
	s.cpu.SetRW(s.dbus.bl, s.addw(s.cpu.RW(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op0a(s *System) {
	switch {
	case s.dbus.bh == 0x0:
		// INC.B Rd
		s.cpu.SetRB(s.dbus.bl, s.addb(s.cpu.RB(s.dbus.bl), 1))
	case s.dbus.bh&0x8 != 0:
		// ADD.L ERs, ERd
		s.cpu.SetRL(s.dbus.bl, s.addl(s.cpu.RL(s.dbus.bl), s.cpu.RL(s.dbus.bh)))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op0b(s *System) {
	switch s.dbus.bh {
	case 0x0:
		// ADDS #1, ERd
		s.adds(s.dbus.bl, 1)
	case 0x5:
		// INC.W #1, Rd
		s.cpu.SetRW(s.dbus.bl, s.addw(s.cpu.RW(s.dbus.bl), 1))
	case 0x7:
		// INC.L #1, ERd
		s.cpu.SetRL(s.dbus.bl, s.addl(s.cpu.RL(s.dbus.bl), 1))
	case 0x8:
		// ADDS #2, ERd
		s.adds(s.dbus.bl, 2)
	case 0x9:
		// ADDS #4, ERd
		s.adds(s.dbus.bl, 4)
	case 0xD:
		// INC.W #2, Rd
		s.cpu.SetRW(s.dbus.bl, s.addw(s.cpu.RW(s.dbus.bl), 2))
	case 0xF:
		// INC.L #2, ERd
		s.cpu.SetRL(s.dbus.bl, s.addl(s.cpu.RL(s.dbus.bl), 2))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op0c(s *System) {
	// MOV.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.movb(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op0d(s *System) {
	// MOV.W Rs, Rd
	s.cpu.SetRW(s.dbus.bl, s.movw(s.cpu.RW(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op0e(s *System) {
	// ADDX.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.addx(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op0f(s *System) {
	switch {
	case s.dbus.bh == 0x0:
		// DAA Rd
		s.cpu.SetRB(s.dbus.bl, s.daa(s.cpu.RB(s.dbus.bl)))
	case s.dbus.bh&0x8 != 0:
		// MOV.L ERs, ERd
		s.cpu.SetRL(s.dbus.bl, s.movl(s.cpu.RL(s.dbus.bl), s.cpu.RL(s.dbus.bh)))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op10(s *System) {
	switch s.dbus.bh {
	case 0x0:
		// SHLL.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.shll(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x1:
		// SHLL.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.shll(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0x3:
		// SHLL.L ERd
		s.cpu.SetRL(s.dbus.bl, s.shll(s.cpu.RL(s.dbus.bl), 32))
	case 0x8:
		// SHAL.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.shal(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x9:
		// SHAL.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.shal(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0xB:
		// SHAL.L ERd
		s.cpu.SetRL(s.dbus.bl, s.shal(s.cpu.RL(s.dbus.bl), 32))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op11(s *System) {
	switch s.dbus.bh {
	case 0x0:
		// SHLR.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.shlr(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x1:
		// SHLR.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.shlr(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0x3:
		// SHLR.L ERd
		s.cpu.SetRL(s.dbus.bl, s.shlr(s.cpu.RL(s.dbus.bl), 32))
	case 0x8:
		// SHAR.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.shar(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x9:
		// SHAR.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.shar(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0xB:
		// SHAR.L ERd
		s.cpu.SetRL(s.dbus.bl, s.shar(s.cpu.RL(s.dbus.bl), 32))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op12(s *System) {
	switch s.dbus.bh {
	case 0x0:
		// ROTXL.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.rotxl(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x1:
		// ROTXL.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.rotxl(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0x3:
		// ROTXL.L ERd
		s.cpu.SetRL(s.dbus.bl, s.rotxl(s.cpu.RL(s.dbus.bl), 32))
	case 0x8:
		// ROTL.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.rotl(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x9:
		// ROTL.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.rotl(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0xB:
		// ROTL.L ERd
		s.cpu.SetRL(s.dbus.bl, s.rotl(s.cpu.RL(s.dbus.bl), 32))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op13(s *System) {
	switch s.dbus.bh {
	case 0x0:
		// ROTXR.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.rotxr(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x1:
		// ROTXR.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.rotxr(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0x3:
		// ROTXR.L ERd
		s.cpu.SetRL(s.dbus.bl, s.rotxr(s.cpu.RL(s.dbus.bl), 32))
	case 0x8:
		// ROTR.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.rotr(uint32(s.cpu.RB(s.dbus.bl)), 8)))
	case 0x9:
		// ROTR.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.rotr(uint32(s.cpu.RW(s.dbus.bl)), 16)))
	case 0xB:
		// ROTR.L ERd
		s.cpu.SetRL(s.dbus.bl, s.rotr(s.cpu.RL(s.dbus.bl), 32))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op14(s *System) {
	// OR.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.orb(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op15(s *System) {
	// XOR.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.xorb(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op16(s *System) {
	// AND.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.andb(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op17(s *System) {
	switch s.dbus.bh {
	case 0x0:
		// NOT.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.notCore(uint32(s.cpu.RB(s.dbus.bl)), 0xFF, 0x80)))
	case 0x1:
		// NOT.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.notCore(uint32(s.cpu.RW(s.dbus.bl)), 0xFFFF, 0x8000)))
	case 0x3:
		// NOT.L ERd
		s.cpu.SetRL(s.dbus.bl, s.notCore(s.cpu.RL(s.dbus.bl), 0xFFFFFFFF, 0x80000000))
	case 0x5:
		// EXTU.W Rd
		s.cpu.SetRW(s.dbus.bl, s.extuW(s.cpu.RW(s.dbus.bl)))
	case 0x7:
		// EXTU.L ERd
		s.cpu.SetRL(s.dbus.bl, s.extuL(s.cpu.RL(s.dbus.bl)))
	case 0x8:
		// NEG.B Rd
		s.cpu.SetRB(s.dbus.bl, uint8(s.negCore(uint32(s.cpu.RB(s.dbus.bl)), 0xFF, 0x80)))
	case 0x9:
		// NEG.W Rd
		s.cpu.SetRW(s.dbus.bl, uint16(s.negCore(uint32(s.cpu.RW(s.dbus.bl)), 0xFFFF, 0x8000)))
	case 0xB:
		// NEG.L ERd
		s.cpu.SetRL(s.dbus.bl, s.negCore(s.cpu.RL(s.dbus.bl), 0xFFFFFFFF, 0x80000000))
	case 0xD:
		// EXTS.W Rd
		s.cpu.SetRW(s.dbus.bl, s.extsW(s.cpu.RW(s.dbus.bl)))
	case 0xF:
		// EXTS.L ERd
		s.cpu.SetRL(s.dbus.bl, s.extsL(s.cpu.RL(s.dbus.bl)))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op18(s *System) {
	// SUB.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.subb(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op19(s *System) {
	// SUB.W Rs, Rd
	s.cpu.SetRW(s.dbus.bl, s.subw(s.cpu.RW(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op1a(s *System) {
	switch {
	case s.dbus.bh == 0x0:
		// DEC.B Rd
		s.cpu.SetRB(s.dbus.bl, s.subb(s.cpu.RB(s.dbus.bl), 1))
	case s.dbus.bh&0x8 != 0:
		// SUB.L ERs, ERd
		s.cpu.SetRL(s.dbus.bl, s.subl(s.cpu.RL(s.dbus.bl), s.cpu.RL(s.dbus.bh)))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op1b(s *System) {
	switch s.dbus.bh {
	case 0x0:
		// SUBS #1, ERd
		s.subs(s.dbus.bl, 1)
	case 0x5:
		// DEC.W #1, Rd
		s.cpu.SetRW(s.dbus.bl, s.subw(s.cpu.RW(s.dbus.bl), 1))
	case 0x7:
		// DEC.L #1, ERd
		s.cpu.SetRL(s.dbus.bl, s.subl(s.cpu.RL(s.dbus.bl), 1))
	case 0x8:
		// SUBS #2, ERd
		s.subs(s.dbus.bl, 2)
	case 0x9:
		// SUBS #4, ERd
		s.subs(s.dbus.bl, 4)
	case 0xD:
		// DEC.W #2, Rd
		s.cpu.SetRW(s.dbus.bl, s.subw(s.cpu.RW(s.dbus.bl), 2))
	case 0xF:
		// DEC.L #2, ERd
		s.cpu.SetRL(s.dbus.bl, s.subl(s.cpu.RL(s.dbus.bl), 2))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op1c(s *System) {
	// CMP.B Rs, Rd
	s.cmpb(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh))
}

func op1d(s *System) {
	// CMP.W Rs, Rd
	s.cmpw(s.cpu.RW(s.dbus.bl), s.cpu.RW(s.dbus.bh))
}

func op1e(s *System) {
	// SUBX.B Rs, Rd
	s.cpu.SetRB(s.dbus.bl, s.subx(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op1f(s *System) {
	switch {
	case s.dbus.bh == 0x0:
		// DAS Rd
		s.fail(ErrUnimplementedOpcode)
	case s.dbus.bh&0x8 != 0:
		// CMP.L ERs, ERd
		s.cmpl(s.cpu.RL(s.dbus.bl), s.cpu.RL(s.dbus.bh))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op2x(s *System) {
	// MOV.B @aa:8, Rd
	s.cpu.SetRB(s.dbus.al, s.movb(0, s.readB(aa8(s.dbus.b))))
}

func op3x(s *System) {
	// MOV.B Rs, @aa:8
	addr := aa8(s.dbus.b)
	s.writeB(addr, s.movb(s.PeekB(addr), s.cpu.RB(s.dbus.al)))
}

func op4x(s *System) {
	// Bcc d:8
	if s.condition(s.dbus.al) {
		s.cpu.PC = uint32(int32(s.cpu.PC) + int32(int8(s.dbus.b)))
	}
}

func op50(s *System) {
	// MULXU.B Rs, Rd
	s.cpu.SetRW(s.dbus.bl, mulxuB(s.cpu.RW(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op51(s *System) {
	// DIVXU.B Rs, Rd
	s.cpu.SetRW(s.dbus.bl, s.divxuB(s.cpu.RW(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op52(s *System) {
	// MULXU.W Rs, ERd
	s.cpu.SetRL(s.dbus.bl, mulxuW(s.cpu.RL(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op53(s *System) {
	// DIVXU.W Rs, ERd
	s.cpu.SetRL(s.dbus.bl, s.divxuW(s.cpu.RL(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op54(s *System) {
	// RTS
	sp := s.cpu.RL(7)
	s.cpu.PC = uint32(s.readW(sp & aptrMask))
	s.cpu.SetRL(7, sp+2)
}

func op55(s *System) {
	// BSR d:8
	s.bsr(int32(int8(s.dbus.b)))
}

func op58(s *System) {
	// Bcc d:16
	cc := s.dbus.bh
	s.fetch()
	if s.condition(cc) {
		s.cpu.PC = uint32(int32(s.cpu.PC) + int32(int16(s.dbus.bits)))
	}
}

func op59(s *System) {
	// JMP @ERs
	s.cpu.PC = aa24(s.cpu.RL(s.dbus.bh))
}

func op5a(s *System) {
	// JMP @aa:24
	high := uint32(s.dbus.b) << 16
	s.fetch()
	s.cpu.PC = aa24(high | uint32(s.dbus.bits))
}

func op5b(s *System) {
	// JMP @aa:8
	s.cpu.PC = aa8(s.dbus.b)
}

func op5c(s *System) {
	// BSR d:16
	s.fetch()
	s.bsr(int32(int16(s.dbus.bits)))
}

func op5d(s *System) {
	// JSR @ERs
	s.jsr(s.er(s.dbus.bh))
}

func op5e(s *System) {
	// JSR @aa:24
	high := uint32(s.dbus.b) << 16
	s.fetch()
	s.jsr(aa24(high | uint32(s.dbus.bits)))
}

func op60(s *System) {
	// BSET Rs, Rd
	s.cpu.SetRB(s.dbus.bl, bset(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op61(s *System) {
	// BNOT Rs, Rd
	s.cpu.SetRB(s.dbus.bl, bnot(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op62(s *System) {
	// BCLR Rs, Rd
	s.cpu.SetRB(s.dbus.bl, bclr(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh)))
}

func op63(s *System) {
	// BTST Rs, Rd
	s.btst(s.cpu.RB(s.dbus.bl), s.cpu.RB(s.dbus.bh))
}

func op64(s *System) {
	// OR.W Rs, Rd
	s.cpu.SetRW(s.dbus.bl, s.orw(s.cpu.RW(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op65(s *System) {
	// XOR.W Rs, Rd
	s.cpu.SetRW(s.dbus.bl, s.xorw(s.cpu.RW(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op66(s *System) {
	// AND.W Rs, Rd
	s.cpu.SetRW(s.dbus.bl, s.andw(s.cpu.RW(s.dbus.bl), s.cpu.RW(s.dbus.bh)))
}

func op67(s *System) {
	if s.dbus.b&0x80 != 0 {
		// BIST #xx:3, Rd
		s.cpu.SetRB(s.dbus.bl, s.bist(s.cpu.RB(s.dbus.bl), s.dbus.bh&0x7))
	} else {
		// BST #xx:3, Rd
		s.cpu.SetRB(s.dbus.bl, s.bst(s.cpu.RB(s.dbus.bl), s.dbus.bh))
	}
}

func op68(s *System) {
	if s.dbus.bh&0x8 != 0 {
		// MOV.B Rs, @ERd
		addr := s.er(s.dbus.bh & 0x7)
		s.writeB(addr, s.movb(s.PeekB(addr), s.cpu.RB(s.dbus.bl)))
	} else {
		// MOV.B @ERs, Rd
		s.cpu.SetRB(s.dbus.bl, s.movb(0, s.readB(s.er(s.dbus.bh))))
	}
}

func op69(s *System) {
	if s.dbus.bh&0x8 != 0 {
		// MOV.W Rs, @ERd
		addr := s.er(s.dbus.bh & 0x7)
		s.writeW(addr, s.movw(s.PeekW(addr), s.cpu.RW(s.dbus.bl)))
	} else {
		// MOV.W @ERs, Rd
		s.cpu.SetRW(s.dbus.bl, s.movw(0, s.readW(s.er(s.dbus.bh))))
	}
}

func op6a(s *System) {
	first := s.dbus
	s.fetch()
	switch first.bh {
	case 0x0:
		// MOV.B @aa:16, Rd
		s.cpu.SetRB(first.bl, s.movb(0, s.readB(aa16(s.dbus.bits))))
	case 0x2:
		// MOV.B @aa:24, Rd
		s.fail(ErrUnimplementedOpcode)
	case 0x4:
		// MOVFPE @aa:16, Rd
		s.fail(ErrUnimplementedOpcode)
	case 0x8:
		// MOV.B Rs, @aa:16
		addr := aa16(s.dbus.bits)
		s.writeB(addr, s.movb(s.PeekB(addr), s.cpu.RB(first.bl)))
	case 0xA:
		// MOV.B Rs, @aa:24
		s.fail(ErrUnimplementedOpcode)
	case 0xC:
		// MOVFPE Rs, @aa:16
		s.fail(ErrUnimplementedOpcode)
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op6b(s *System) {
	first := s.dbus
	s.fetch()
	switch first.bh {
	case 0x0:
		// MOV.W @aa:16, Rd
		s.cpu.SetRW(first.bl, s.movw(0, s.readW(aa16(s.dbus.bits))))
	case 0x2:
		// MOV.W @aa:24, Rd
		s.fail(ErrUnimplementedOpcode)
	case 0x8:
		// MOV.W Rs, @aa:16
		addr := aa16(s.dbus.bits)
		s.writeW(addr, s.movw(s.PeekW(addr), s.cpu.RW(first.bl)))
	case 0xA:
		// MOV.W Rs, @aa:24
		s.fail(ErrUnimplementedOpcode)
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op6c(s *System) {
	if s.dbus.bh&0x8 != 0 {
		// MOV.B Rs, @-ERd
		addr := s.erpd(s.dbus.bh&0x7, 1)
		s.writeB(addr, s.movb(s.PeekB(addr), s.cpu.RB(s.dbus.bl)))
	} else {
		// MOV.B @ERs+, Rd
		s.cpu.SetRB(s.dbus.bl, s.movb(0, s.readB(s.erpi(s.dbus.bh, 1))))
	}
}

func op6d(s *System) {
	if s.dbus.bh&0x8 != 0 {
		// MOV.W Rs, @-ERd
		addr := s.erpd(s.dbus.bh&0x7, 2)
		s.writeW(addr, s.movw(s.PeekW(addr), s.cpu.RW(s.dbus.bl)))
	} else {
		// MOV.W @ERs+, Rd
		s.cpu.SetRW(s.dbus.bl, s.movw(0, s.readW(s.erpi(s.dbus.bh, 2))))
	}
}

func op6e(s *System) {
	first := s.dbus
	s.fetch()
	if first.bh&0x8 != 0 {
		// MOV.B Rs, @(d:16, ERd)
		addr := s.erd16(first.bh&0x7, s.dbus.bits)
		s.writeB(addr, s.movb(s.PeekB(addr), s.cpu.RB(first.bl)))
	} else {
		// MOV.B @(d:16, ERs), Rd
		s.cpu.SetRB(first.bl, s.movb(0, s.readB(s.erd16(first.bh, s.dbus.bits))))
	}
}

func op6f(s *System) {
	first := s.dbus
	s.fetch()
	if first.bh&0x8 != 0 {
		// MOV.W Rs, @(d:16, ERd)
		addr := s.erd16(first.bh&0x7, s.dbus.bits)
		s.writeW(addr, s.movw(s.PeekW(addr), s.cpu.RW(first.bl)))
	} else {
		// MOV.W @(d:16, ERs), Rd
		s.cpu.SetRW(first.bl, s.movw(0, s.readW(s.erd16(first.bh, s.dbus.bits))))
	}
}

func op70(s *System) {
	// BSET #xx:3, Rd
	s.cpu.SetRB(s.dbus.bl, bset(s.cpu.RB(s.dbus.bl), s.dbus.bh))
}

func op71(s *System) {
	// BNOT #xx:3, Rd
	s.cpu.SetRB(s.dbus.bl, bnot(s.cpu.RB(s.dbus.bl), s.dbus.bh))
}

func op72(s *System) {
	// BCLR #xx:3, Rd
	s.cpu.SetRB(s.dbus.bl, bclr(s.cpu.RB(s.dbus.bl), s.dbus.bh))
}

func op73(s *System) {
	// BTST #xx:3, Rd
	s.btst(s.cpu.RB(s.dbus.bl), s.dbus.bh)
}

func op77(s *System) {
	if s.dbus.bh&0x8 != 0 {
		// BILD #xx:3, Rd
		s.bild(s.cpu.RB(s.dbus.bl), s.dbus.bh&0x7)
	} else {
		// BLD #xx:3, Rd
		s.bld(s.cpu.RB(s.dbus.bl), s.dbus.bh)
	}
}

// op78 handles the byte and word moves with a 24-bit displacement.
func op78(s *System) {
	ers := s.dbus.bh
	s.fetch()
	op, reg := s.dbus.a, s.dbus.bl
	mode := s.dbus.bh
	disp := s.fetchLong() & 0x00FFFFFF
	switch {
	case op == 0x6A && mode == 0x2:
		// MOV.B @(d:24, ERs), Rd
		s.cpu.SetRB(reg, s.movb(0, s.readB(s.erd24(ers, disp))))
	case op == 0x6A && mode == 0xA:
		// MOV.B Rs, @(d:24, ERd)
		addr := s.erd24(ers, disp)
		s.writeB(addr, s.movb(s.PeekB(addr), s.cpu.RB(reg)))
	case op == 0x6B && mode == 0x2:
		// MOV.W @(d:24, ERs), Rd
		s.cpu.SetRW(reg, s.movw(0, s.readW(s.erd24(ers, disp))))
	case op == 0x6B && mode == 0xA:
		// MOV.W Rs, @(d:24, ERd)
		addr := s.erd24(ers, disp)
		s.writeW(addr, s.movw(s.PeekW(addr), s.cpu.RW(reg)))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op79(s *System) {
	first := s.dbus
	s.fetch()
	imm := s.dbus.bits
	switch first.bh {
	case 0x0:
		// MOV.W #xx:16, Rd
		s.cpu.SetRW(first.bl, s.movw(0, imm))
	case 0x1:
		// ADD.W #xx:16, Rd
		s.cpu.SetRW(first.bl, s.addw(s.cpu.RW(first.bl), imm))
	case 0x2:
		// CMP.W #xx:16, Rd
		s.cmpw(s.cpu.RW(first.bl), imm)
	case 0x3:
		// SUB.W #xx:16, Rd
		s.cpu.SetRW(first.bl, s.subw(s.cpu.RW(first.bl), imm))
	case 0x4:
		// OR.W #xx:16, Rd
		s.cpu.SetRW(first.bl, s.orw(s.cpu.RW(first.bl), imm))
	case 0x5:
		// XOR.W #xx:16, Rd
		s.cpu.SetRW(first.bl, s.xorw(s.cpu.RW(first.bl), imm))
	case 0x6:
		// AND.W #xx:16, Rd
		s.cpu.SetRW(first.bl, s.andw(s.cpu.RW(first.bl), imm))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op7a(s *System) {
	imm := s.fetchLong()
	switch s.dbus.bh {
	case 0x0:
		// MOV.L #xx:32, ERd
		s.cpu.SetRL(s.dbus.bl, s.movl(0, imm))
	case 0x1:
		// ADD.L #xx:32, ERd
		s.cpu.SetRL(s.dbus.bl, s.addl(s.cpu.RL(s.dbus.bl), imm))
	case 0x2:
		// CMP.L #xx:32, ERd
		s.cmpl(s.cpu.RL(s.dbus.bl), imm)
	case 0x3:
		// SUB.L #xx:32, ERd
		s.cpu.SetRL(s.dbus.bl, s.subl(s.cpu.RL(s.dbus.bl), imm))
	case 0x4:
		// OR.L #xx:32, ERd
		s.cpu.SetRL(s.dbus.bl, s.orl(s.cpu.RL(s.dbus.bl), imm))
	case 0x5:
		// XOR.L #xx:32, ERd
		s.cpu.SetRL(s.dbus.bl, s.xorl(s.cpu.RL(s.dbus.bl), imm))
	case 0x6:
		// AND.L #xx:32, ERd
		s.cpu.SetRL(s.dbus.bl, s.andl(s.cpu.RL(s.dbus.bl), imm))
	default:
		s.fail(ErrMalformedOpcode)
	}
}

// rmwB applies a byte-sized read-modify-write at addr: the destination is
// peeked, transformed, then written through the output handlers.
func (s *System) rmwB(addr uint32, fn func(uint8) uint8) {
	s.writeB(addr, fn(s.PeekB(addr)))
}

func op7d(s *System) {
	first := s.dbus
	s.fetch()
	addr := s.er(first.bh)
	switch s.dbus.ah {
	case 0x6:
		switch s.dbus.al {
		case 0x0:
			// BSET Rs, @ERd
			bit := s.cpu.RB(s.dbus.bh)
			s.rmwB(addr, func(v uint8) uint8 { return bset(v, bit) })
		case 0x1:
			// BNOT Rs, @ERd
			bit := s.cpu.RB(s.dbus.bh)
			s.rmwB(addr, func(v uint8) uint8 { return bnot(v, bit) })
		case 0x2:
			// BCLR Rs, @ERd
			bit := s.cpu.RB(s.dbus.bh)
			s.rmwB(addr, func(v uint8) uint8 { return bclr(v, bit) })
		case 0x7:
			if s.dbus.bh&0x8 != 0 {
				// BIST #xx:3, @ERd
				bit := s.dbus.bh & 0x7
				s.rmwB(addr, func(v uint8) uint8 { return s.bist(v, bit) })
			} else {
				// BST #xx:3, @ERd
				bit := s.dbus.bh
				s.rmwB(addr, func(v uint8) uint8 { return s.bst(v, bit) })
			}
		default:
			s.fail(ErrMalformedOpcode)
		}
	case 0x7:
		bit := s.dbus.bh
		switch s.dbus.al {
		case 0x0:
			// BSET #xx:3, @ERd
			s.rmwB(addr, func(v uint8) uint8 { return bset(v, bit) })
		case 0x1:
			// BNOT #xx:3, @ERd
			s.rmwB(addr, func(v uint8) uint8 { return bnot(v, bit) })
		case 0x2:
			// BCLR #xx:3, @ERd
			s.rmwB(addr, func(v uint8) uint8 { return bclr(v, bit) })
		default:
			s.fail(ErrMalformedOpcode)
		}
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op7e(s *System) {
	first := s.dbus
	s.fetch()
	switch {
	case s.dbus.ah == 0x6 && s.dbus.al == 0x3:
		// BTST Rs, @aa:8
		s.fail(ErrUnimplementedOpcode)
	case s.dbus.ah == 0x7:
		switch s.dbus.al {
		case 0x3, 0x4, 0x5, 0x6:
			// BTST/BOR/BXOR/BAND #xx:3, @aa:8
			s.fail(ErrUnimplementedOpcode)
		case 0x7:
			if s.dbus.bh&0x8 != 0 {
				// BILD #xx:3, @aa:8
				s.bild(s.readB(aa8(first.b)), s.dbus.bh&0x7)
			} else {
				// BLD #xx:3, @aa:8
				s.bld(s.readB(aa8(first.b)), s.dbus.bh)
			}
		default:
			s.fail(ErrMalformedOpcode)
		}
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op7f(s *System) {
	first := s.dbus
	s.fetch()
	addr := aa8(first.b)
	switch s.dbus.ah {
	case 0x6:
		switch s.dbus.al {
		case 0x0:
			// BSET Rs, @aa:8
			bit := s.cpu.RB(s.dbus.bh)
			s.rmwB(addr, func(v uint8) uint8 { return bset(v, bit) })
		case 0x1:
			// BNOT Rs, @aa:8
			bit := s.cpu.RB(s.dbus.bh)
			s.rmwB(addr, func(v uint8) uint8 { return bnot(v, bit) })
		case 0x2:
			// BCLR Rs, @aa:8
			bit := s.cpu.RB(s.dbus.bh)
			s.rmwB(addr, func(v uint8) uint8 { return bclr(v, bit) })
		case 0x7:
			if s.dbus.bh&0x8 != 0 {
				// BIST #xx:3, @aa:8
				bit := s.dbus.bh & 0x7
				s.rmwB(addr, func(v uint8) uint8 { return s.bist(v, bit) })
			} else {
				// BST #xx:3, @aa:8
				bit := s.dbus.bh
				s.rmwB(addr, func(v uint8) uint8 { return s.bst(v, bit) })
			}
		default:
			s.fail(ErrMalformedOpcode)
		}
	case 0x7:
		bit := s.dbus.bh
		switch s.dbus.al {
		case 0x0:
			// BSET #xx:3, @aa:8
			s.rmwB(addr, func(v uint8) uint8 { return bset(v, bit) })
		case 0x1:
			// BNOT #xx:3, @aa:8
			s.rmwB(addr, func(v uint8) uint8 { return bnot(v, bit) })
		case 0x2:
			// BCLR #xx:3, @aa:8
			s.rmwB(addr, func(v uint8) uint8 { return bclr(v, bit) })
		default:
			s.fail(ErrMalformedOpcode)
		}
	default:
		s.fail(ErrMalformedOpcode)
	}
}

func op8x(s *System) {
	// ADD.B #xx:8, Rd
	s.cpu.SetRB(s.dbus.al, s.addb(s.cpu.RB(s.dbus.al), s.dbus.b))
}

func op9x(s *System) {
	// ADDX #xx:8, Rd
	s.cpu.SetRB(s.dbus.al, s.addx(s.cpu.RB(s.dbus.al), s.dbus.b))
}

func opax(s *System) {
	// CMP.B #xx:8, Rd
	s.cmpb(s.cpu.RB(s.dbus.al), s.dbus.b)
}

func opbx(s *System) {
	// SUBX #xx:8, Rd
	s.cpu.SetRB(s.dbus.al, s.subx(s.cpu.RB(s.dbus.al), s.dbus.b))
}

func opcx(s *System) {
	// OR.B #xx:8, Rd
	s.cpu.SetRB(s.dbus.al, s.orb(s.cpu.RB(s.dbus.al), s.dbus.b))
}

func opdx(s *System) {
	// XOR.B #xx:8, Rd
	s.cpu.SetRB(s.dbus.al, s.xorb(s.cpu.RB(s.dbus.al), s.dbus.b))
}

func opex(s *System) {
	// AND.B #xx:8, Rd
	s.cpu.SetRB(s.dbus.al, s.andb(s.cpu.RB(s.dbus.al), s.dbus.b))
}

func opfx(s *System) {
	// MOV.B #xx:8, Rd
	s.cpu.SetRB(s.dbus.al, s.movb(0, s.dbus.b))
}
