package core_engine

import "fmt"

// Disassemble decodes the instruction at addr into assembler text and
// returns it with the instruction length in bytes. Unknown encodings decode
// as raw words so a listing never derails.
func (s *System) Disassemble(addr uint32) (string, uint32) {
	w := s.PeekW(addr)
	a, b := uint8(w>>8), uint8(w)
	ah, al, bh, bl := a>>4, a&0xF, b>>4, b&0xF

	rb := func(n uint8) string {
		if n&0x8 != 0 {
			return fmt.Sprintf("r%dl", n&0x7)
		}
		return fmt.Sprintf("r%dh", n&0x7)
	}
	rw := func(n uint8) string {
		if n&0x8 != 0 {
			return fmt.Sprintf("e%d", n&0x7)
		}
		return fmt.Sprintf("r%d", n&0x7)
	}
	rl := func(n uint8) string { return fmt.Sprintf("er%d", n&0x7) }
	ext := func(off uint32) uint16 { return s.PeekW(addr + off) }

	switch ah {
	case 0x0:
		switch al {
		case 0x0:
			return "nop", 2
		case 0x1:
			return s.disasmPrefix01(addr, b)
		case 0x2:
			return fmt.Sprintf("stc ccr, %s", rb(bl)), 2
		case 0x3:
			return fmt.Sprintf("ldc %s, ccr", rb(bl)), 2
		case 0x4:
			return fmt.Sprintf("orc #0x%02x, ccr", b), 2
		case 0x5:
			return fmt.Sprintf("xorc #0x%02x, ccr", b), 2
		case 0x6:
			return fmt.Sprintf("andc #0x%02x, ccr", b), 2
		case 0x7:
			return fmt.Sprintf("ldc #0x%02x, ccr", b), 2
		case 0x8:
			return fmt.Sprintf("add.b %s, %s", rb(bh), rb(bl)), 2
		case 0x9:
			return fmt.Sprintf("add.w %s, %s", rw(bh), rw(bl)), 2
		case 0xA:
			if bh == 0 {
				return fmt.Sprintf("inc.b %s", rb(bl)), 2
			}
			return fmt.Sprintf("add.l %s, %s", rl(bh), rl(bl)), 2
		case 0xB:
			return disasmIncGroup("add", "inc", bh, rw(bl), rl(bl)), 2
		case 0xC:
			return fmt.Sprintf("mov.b %s, %s", rb(bh), rb(bl)), 2
		case 0xD:
			return fmt.Sprintf("mov.w %s, %s", rw(bh), rw(bl)), 2
		case 0xE:
			return fmt.Sprintf("addx %s, %s", rb(bh), rb(bl)), 2
		case 0xF:
			if bh == 0 {
				return fmt.Sprintf("daa %s", rb(bl)), 2
			}
			return fmt.Sprintf("mov.l %s, %s", rl(bh), rl(bl)), 2
		}
	case 0x1:
		switch al {
		case 0x0, 0x1, 0x2, 0x3:
			return disasmShift(al, bh, rb(bl), rw(bl), rl(bl)), 2
		case 0x4:
			return fmt.Sprintf("or.b %s, %s", rb(bh), rb(bl)), 2
		case 0x5:
			return fmt.Sprintf("xor.b %s, %s", rb(bh), rb(bl)), 2
		case 0x6:
			return fmt.Sprintf("and.b %s, %s", rb(bh), rb(bl)), 2
		case 0x7:
			return disasmUnary(bh, rb(bl), rw(bl), rl(bl)), 2
		case 0x8:
			return fmt.Sprintf("sub.b %s, %s", rb(bh), rb(bl)), 2
		case 0x9:
			return fmt.Sprintf("sub.w %s, %s", rw(bh), rw(bl)), 2
		case 0xA:
			if bh == 0 {
				return fmt.Sprintf("dec.b %s", rb(bl)), 2
			}
			return fmt.Sprintf("sub.l %s, %s", rl(bh), rl(bl)), 2
		case 0xB:
			return disasmIncGroup("sub", "dec", bh, rw(bl), rl(bl)), 2
		case 0xC:
			return fmt.Sprintf("cmp.b %s, %s", rb(bh), rb(bl)), 2
		case 0xD:
			return fmt.Sprintf("cmp.w %s, %s", rw(bh), rw(bl)), 2
		case 0xE:
			return fmt.Sprintf("subx %s, %s", rb(bh), rb(bl)), 2
		case 0xF:
			if bh == 0 {
				return fmt.Sprintf("das %s", rb(bl)), 2
			}
			return fmt.Sprintf("cmp.l %s, %s", rl(bh), rl(bl)), 2
		}
	case 0x2:
		return fmt.Sprintf("mov.b @0x%04x:8, %s", 0xFF00|uint32(b), rb(al)), 2
	case 0x3:
		return fmt.Sprintf("mov.b %s, @0x%04x:8", rb(al), 0xFF00|uint32(b)), 2
	case 0x4:
		return fmt.Sprintf("%s .%+d", bccMnemonic(al), int8(b)+2), 2
	case 0x5:
		switch al {
		case 0x0, 0x1, 0x2, 0x3:
			return disasmMulDiv(al, bh, bl), 2
		case 0x4:
			return "rts", 2
		case 0x5:
			return fmt.Sprintf("bsr .%+d", int8(b)+2), 2
		case 0x6:
			return "rte", 2
		case 0x7:
			return fmt.Sprintf("trapa #%d", bh&0x3), 2
		case 0x8:
			return fmt.Sprintf("%s .%+d", bccMnemonic(bh), int16(ext(2))+4), 4
		case 0x9:
			return fmt.Sprintf("jmp @%s", rl(bh)), 2
		case 0xA:
			return fmt.Sprintf("jmp @0x%06x:24", uint32(b)<<16|uint32(ext(2))), 4
		case 0xB:
			return fmt.Sprintf("jmp @0x%04x:8", 0xFF00|uint32(b)), 2
		case 0xC:
			return fmt.Sprintf("bsr .%+d", int16(ext(2))+4), 4
		case 0xD:
			return fmt.Sprintf("jsr @%s", rl(bh)), 2
		case 0xE:
			return fmt.Sprintf("jsr @0x%06x:24", uint32(b)<<16|uint32(ext(2))), 4
		}
	case 0x6:
		switch al {
		case 0x0:
			return fmt.Sprintf("bset %s, %s", rb(bh), rb(bl)), 2
		case 0x1:
			return fmt.Sprintf("bnot %s, %s", rb(bh), rb(bl)), 2
		case 0x2:
			return fmt.Sprintf("bclr %s, %s", rb(bh), rb(bl)), 2
		case 0x3:
			return fmt.Sprintf("btst %s, %s", rb(bh), rb(bl)), 2
		case 0x4:
			return fmt.Sprintf("or.w %s, %s", rw(bh), rw(bl)), 2
		case 0x5:
			return fmt.Sprintf("xor.w %s, %s", rw(bh), rw(bl)), 2
		case 0x6:
			return fmt.Sprintf("and.w %s, %s", rw(bh), rw(bl)), 2
		case 0x7:
			if b&0x80 != 0 {
				return fmt.Sprintf("bist #%d, %s", bh&0x7, rb(bl)), 2
			}
			return fmt.Sprintf("bst #%d, %s", bh, rb(bl)), 2
		case 0x8:
			if bh&0x8 != 0 {
				return fmt.Sprintf("mov.b %s, @%s", rb(bl), rl(bh)), 2
			}
			return fmt.Sprintf("mov.b @%s, %s", rl(bh), rb(bl)), 2
		case 0x9:
			if bh&0x8 != 0 {
				return fmt.Sprintf("mov.w %s, @%s", rw(bl), rl(bh)), 2
			}
			return fmt.Sprintf("mov.w @%s, %s", rl(bh), rw(bl)), 2
		case 0xA:
			return disasmAbs16(s, addr, "b", bh, rb(bl))
		case 0xB:
			return disasmAbs16(s, addr, "w", bh, rw(bl))
		case 0xC:
			if bh&0x8 != 0 {
				return fmt.Sprintf("mov.b %s, @-%s", rb(bl), rl(bh)), 2
			}
			return fmt.Sprintf("mov.b @%s+, %s", rl(bh), rb(bl)), 2
		case 0xD:
			if bh&0x8 != 0 {
				return fmt.Sprintf("mov.w %s, @-%s", rw(bl), rl(bh)), 2
			}
			return fmt.Sprintf("mov.w @%s+, %s", rl(bh), rw(bl)), 2
		case 0xE:
			if bh&0x8 != 0 {
				return fmt.Sprintf("mov.b %s, @(%d:16, %s)", rb(bl), int16(ext(2)), rl(bh)), 4
			}
			return fmt.Sprintf("mov.b @(%d:16, %s), %s", int16(ext(2)), rl(bh), rb(bl)), 4
		case 0xF:
			if bh&0x8 != 0 {
				return fmt.Sprintf("mov.w %s, @(%d:16, %s)", rw(bl), int16(ext(2)), rl(bh)), 4
			}
			return fmt.Sprintf("mov.w @(%d:16, %s), %s", int16(ext(2)), rl(bh), rw(bl)), 4
		}
	case 0x7:
		switch al {
		case 0x0:
			return fmt.Sprintf("bset #%d, %s", bh, rb(bl)), 2
		case 0x1:
			return fmt.Sprintf("bnot #%d, %s", bh, rb(bl)), 2
		case 0x2:
			return fmt.Sprintf("bclr #%d, %s", bh, rb(bl)), 2
		case 0x3:
			return fmt.Sprintf("btst #%d, %s", bh, rb(bl)), 2
		case 0x7:
			if bh&0x8 != 0 {
				return fmt.Sprintf("bild #%d, %s", bh&0x7, rb(bl)), 2
			}
			return fmt.Sprintf("bld #%d, %s", bh, rb(bl)), 2
		case 0x8:
			return disasmDisp24(s, addr, bh)
		case 0x9:
			return disasmImmWord(bh, rw(bl), ext(2)), 4
		case 0xA:
			imm := uint32(ext(2))<<16 | uint32(ext(4))
			return disasmImmLong(bh, rl(bl), imm), 6
		case 0xD, 0xE, 0xF:
			return disasmBitMemory(s, addr, al, b)
		}
	case 0x8:
		return fmt.Sprintf("add.b #0x%02x, %s", b, rb(al)), 2
	case 0x9:
		return fmt.Sprintf("addx #0x%02x, %s", b, rb(al)), 2
	case 0xA:
		return fmt.Sprintf("cmp.b #0x%02x, %s", b, rb(al)), 2
	case 0xB:
		return fmt.Sprintf("subx #0x%02x, %s", b, rb(al)), 2
	case 0xC:
		return fmt.Sprintf("or.b #0x%02x, %s", b, rb(al)), 2
	case 0xD:
		return fmt.Sprintf("xor.b #0x%02x, %s", b, rb(al)), 2
	case 0xE:
		return fmt.Sprintf("and.b #0x%02x, %s", b, rb(al)), 2
	case 0xF:
		return fmt.Sprintf("mov.b #0x%02x, %s", b, rb(al)), 2
	}
	return fmt.Sprintf(".word 0x%04x", w), 2
}

func (s *System) disasmPrefix01(addr uint32, b uint8) (string, uint32) {
	next := s.PeekW(addr + 2)
	na, nb := uint8(next>>8), uint8(next)
	nbh, nbl := nb>>4, nb&0xF
	rl := func(n uint8) string { return fmt.Sprintf("er%d", n&0x7) }

	switch b {
	case 0x00:
		switch na {
		case 0x69:
			if nbh&0x8 != 0 {
				return fmt.Sprintf("mov.l %s, @%s", rl(nbl), rl(nbh)), 4
			}
			return fmt.Sprintf("mov.l @%s, %s", rl(nbh), rl(nbl)), 4
		case 0x6B:
			aa := s.PeekW(addr + 4)
			if nbh&0x8 != 0 {
				return fmt.Sprintf("mov.l %s, @0x%04x:16", rl(nbl), aa), 6
			}
			return fmt.Sprintf("mov.l @0x%04x:16, %s", aa, rl(nbl)), 6
		case 0x6D:
			if nbh&0x8 != 0 {
				return fmt.Sprintf("mov.l %s, @-%s", rl(nbl), rl(nbh)), 4
			}
			return fmt.Sprintf("mov.l @%s+, %s", rl(nbh), rl(nbl)), 4
		case 0x6F:
			d := int16(s.PeekW(addr + 4))
			if nbh&0x8 != 0 {
				return fmt.Sprintf("mov.l %s, @(%d:16, %s)", rl(nbl), d, rl(nbh)), 6
			}
			return fmt.Sprintf("mov.l @(%d:16, %s), %s", d, rl(nbh), rl(nbl)), 6
		}
	case 0x40:
		if na == 0x69 {
			if nbh&0x8 != 0 {
				return fmt.Sprintf("stc.w ccr, @%s", rl(nbh)), 4
			}
			return fmt.Sprintf("ldc.w @%s, ccr", rl(nbh)), 4
		}
	case 0x80:
		return "sleep", 2
	case 0xC0:
		switch na {
		case 0x50:
			return fmt.Sprintf("mulxs.b r%dh, r%d", nbh&0x7, nbl&0x7), 4
		case 0x52:
			return fmt.Sprintf("mulxs.w r%d, %s", nbh&0x7, rl(nbl)), 4
		}
	case 0xD0:
		switch na {
		case 0x51:
			return fmt.Sprintf("divxs.b r%dh, r%d", nbh&0x7, nbl&0x7), 4
		case 0x53:
			return fmt.Sprintf("divxs.w r%d, %s", nbh&0x7, rl(nbl)), 4
		}
	case 0xF0:
		switch na {
		case 0x64:
			return fmt.Sprintf("or.l %s, %s", rl(nbh), rl(nbl)), 4
		case 0x65:
			return fmt.Sprintf("xor.l %s, %s", rl(nbh), rl(nbl)), 4
		case 0x66:
			return fmt.Sprintf("and.l %s, %s", rl(nbh), rl(nbl)), 4
		}
	}
	return fmt.Sprintf(".word 0x01%02x", b), 2
}

func bccMnemonic(cc uint8) string {
	return [...]string{
		"bra", "brn", "bhi", "bls", "bcc", "bcs", "bne", "beq",
		"bvc", "bvs", "bpl", "bmi", "bge", "blt", "bgt", "ble",
	}[cc&0xF]
}

func disasmIncGroup(opAdj, opInc string, bh uint8, w, l string) string {
	switch bh {
	case 0x0:
		return fmt.Sprintf("%ss #1, %s", opAdj, l)
	case 0x5:
		return fmt.Sprintf("%s.w #1, %s", opInc, w)
	case 0x7:
		return fmt.Sprintf("%s.l #1, %s", opInc, l)
	case 0x8:
		return fmt.Sprintf("%ss #2, %s", opAdj, l)
	case 0x9:
		return fmt.Sprintf("%ss #4, %s", opAdj, l)
	case 0xD:
		return fmt.Sprintf("%s.w #2, %s", opInc, w)
	case 0xF:
		return fmt.Sprintf("%s.l #2, %s", opInc, l)
	}
	return fmt.Sprintf(".invalid %s/%s", opAdj, opInc)
}

func disasmShift(al, bh uint8, b, w, l string) string {
	names := [4][2]string{
		{"shll", "shal"},
		{"shlr", "shar"},
		{"rotxl", "rotl"},
		{"rotxr", "rotr"},
	}
	name := names[al][bh>>3]
	switch bh & 0x7 {
	case 0x0:
		return fmt.Sprintf("%s.b %s", name, b)
	case 0x1:
		return fmt.Sprintf("%s.w %s", name, w)
	case 0x3:
		return fmt.Sprintf("%s.l %s", name, l)
	}
	return fmt.Sprintf(".invalid %s", name)
}

func disasmUnary(bh uint8, b, w, l string) string {
	switch bh {
	case 0x0:
		return "not.b " + b
	case 0x1:
		return "not.w " + w
	case 0x3:
		return "not.l " + l
	case 0x5:
		return "extu.w " + w
	case 0x7:
		return "extu.l " + l
	case 0x8:
		return "neg.b " + b
	case 0x9:
		return "neg.w " + w
	case 0xB:
		return "neg.l " + l
	case 0xD:
		return "exts.w " + w
	case 0xF:
		return "exts.l " + l
	}
	return ".invalid unary"
}

func disasmMulDiv(al, bh, bl uint8) string {
	switch al {
	case 0x0:
		return fmt.Sprintf("mulxu.b r%dh, r%d", bh&0x7, bl&0x7)
	case 0x1:
		return fmt.Sprintf("divxu.b r%dh, r%d", bh&0x7, bl&0x7)
	case 0x2:
		return fmt.Sprintf("mulxu.w r%d, er%d", bh&0x7, bl&0x7)
	}
	return fmt.Sprintf("divxu.w r%d, er%d", bh&0x7, bl&0x7)
}

func disasmAbs16(s *System, addr uint32, size string, bh uint8, reg string) (string, uint32) {
	aa := s.PeekW(addr + 2)
	switch bh {
	case 0x0:
		return fmt.Sprintf("mov.%s @0x%04x:16, %s", size, aa, reg), 4
	case 0x8:
		return fmt.Sprintf("mov.%s %s, @0x%04x:16", size, reg, aa), 4
	}
	return fmt.Sprintf(".word 0x6%s", size), 2
}

func disasmImmWord(bh uint8, reg string, imm uint16) string {
	ops := []string{"mov", "add", "cmp", "sub", "or", "xor", "and"}
	if int(bh) < len(ops) {
		return fmt.Sprintf("%s.w #0x%04x, %s", ops[bh], imm, reg)
	}
	return ".invalid imm.w"
}

func disasmImmLong(bh uint8, reg string, imm uint32) string {
	ops := []string{"mov", "add", "cmp", "sub", "or", "xor", "and"}
	if int(bh) < len(ops) {
		return fmt.Sprintf("%s.l #0x%08x, %s", ops[bh], imm, reg)
	}
	return ".invalid imm.l"
}

func disasmDisp24(s *System, addr uint32, ers uint8) (string, uint32) {
	next := s.PeekW(addr + 2)
	na, nb := uint8(next>>8), uint8(next)
	mode, reg := nb>>4, nb&0xF
	disp := uint32(s.PeekW(addr+4))<<16 | uint32(s.PeekW(addr+6))
	disp &= 0x00FFFFFF

	var size, regName string
	switch na {
	case 0x6A:
		size = "b"
		if reg&0x8 != 0 {
			regName = fmt.Sprintf("r%dl", reg&0x7)
		} else {
			regName = fmt.Sprintf("r%dh", reg&0x7)
		}
	case 0x6B:
		size = "w"
		if reg&0x8 != 0 {
			regName = fmt.Sprintf("e%d", reg&0x7)
		} else {
			regName = fmt.Sprintf("r%d", reg&0x7)
		}
	default:
		return fmt.Sprintf(".word 0x78%x0", ers), 2
	}

	switch mode {
	case 0x2:
		return fmt.Sprintf("mov.%s @(0x%06x:24, er%d), %s", size, disp, ers&0x7, regName), 8
	case 0xA:
		return fmt.Sprintf("mov.%s %s, @(0x%06x:24, er%d)", size, regName, disp, ers&0x7), 8
	}
	return fmt.Sprintf(".word 0x78%x0", ers), 2
}

func disasmBitMemory(s *System, addr uint32, al uint8, b uint8) (string, uint32) {
	next := s.PeekW(addr + 2)
	na, nb := uint8(next>>8), uint8(next)
	nah, nal := na>>4, na&0xF
	bit := nb >> 4

	var target string
	switch al {
	case 0xD, 0xE:
		if al == 0xD {
			target = fmt.Sprintf("@er%d", (b>>4)&0x7)
		} else {
			target = fmt.Sprintf("@0x%04x:8", 0xFF00|uint32(b))
		}
	case 0xF:
		target = fmt.Sprintf("@0x%04x:8", 0xFF00|uint32(b))
	}

	ops := map[uint8]string{0x0: "bset", 0x1: "bnot", 0x2: "bclr"}
	switch nah {
	case 0x6:
		if op, ok := ops[nal]; ok {
			return fmt.Sprintf("%s r%dh, %s", op, bit&0x7, target), 4
		}
		if nal == 0x7 {
			if bit&0x8 != 0 {
				return fmt.Sprintf("bist #%d, %s", bit&0x7, target), 4
			}
			return fmt.Sprintf("bst #%d, %s", bit, target), 4
		}
	case 0x7:
		if op, ok := ops[nal]; ok {
			return fmt.Sprintf("%s #%d, %s", op, bit&0x7, target), 4
		}
		if nal == 0x7 {
			if bit&0x8 != 0 {
				return fmt.Sprintf("bild #%d, %s", bit&0x7, target), 4
			}
			return fmt.Sprintf("bld #%d, %s", bit, target), 4
		}
	}
	return fmt.Sprintf(".word 0x7%x%02x", al, b), 2
}
