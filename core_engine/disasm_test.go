package core_engine

import "testing"

func TestDisassemble(t *testing.T) {
	tests := []struct {
		name  string
		code  []byte
		want  string
		bytes uint32
	}{
		{"nop", []byte{0x00, 0x00}, "nop", 2},
		{"mov.b imm", []byte{0xF8, 0x42}, "mov.b #0x42, r0l", 2},
		{"add.b reg", []byte{0x08, 0x18}, "add.b r1h, r0l", 2},
		{"add.w reg", []byte{0x09, 0x92}, "add.w e1, r2", 2},
		{"add.l reg", []byte{0x0A, 0x92}, "add.l er1, er2", 2},
		{"inc.b", []byte{0x0A, 0x08}, "inc.b r0l", 2},
		{"adds", []byte{0x0B, 0x91}, "adds #4, er1", 2},
		{"daa", []byte{0x0F, 0x08}, "daa r0l", 2},
		{"mov.l reg", []byte{0x0F, 0xA3}, "mov.l er2, er3", 2},
		{"shll.b", []byte{0x10, 0x08}, "shll.b r0l", 2},
		{"shar.w", []byte{0x11, 0x91}, "shar.w r1", 2},
		{"rotxl.l", []byte{0x12, 0x32}, "rotxl.l er2", 2},
		{"exts.w", []byte{0x17, 0xD1}, "exts.w r1", 2},
		{"neg.b", []byte{0x17, 0x88}, "neg.b r0l", 2},
		{"subx imm", []byte{0xB9, 0x01}, "subx #0x01, r1l", 2},
		{"mov abs8 load", []byte{0x2A, 0x34}, "mov.b @0xff34:8, r2l", 2},
		{"mov abs8 store", []byte{0x3A, 0x34}, "mov.b r2l, @0xff34:8", 2},
		{"bra", []byte{0x40, 0x10}, "bra .+18", 2},
		{"bne", []byte{0x46, 0xFE}, "bne .+0", 2},
		{"bcc16", []byte{0x58, 0x40, 0x01, 0x00}, "bcc .+260", 4},
		{"mulxu.b", []byte{0x50, 0x23}, "mulxu.b r2h, r3", 2},
		{"divxu.w", []byte{0x53, 0x12}, "divxu.w r1, er2", 2},
		{"rts", []byte{0x54, 0x70}, "rts", 2},
		{"jmp reg", []byte{0x59, 0x20}, "jmp @er2", 2},
		{"jmp abs24", []byte{0x5A, 0x00, 0x01, 0x90}, "jmp @0x000190:24", 4},
		{"jsr abs24", []byte{0x5E, 0x00, 0x02, 0x00}, "jsr @0x000200:24", 4},
		{"btst reg", []byte{0x63, 0x18}, "btst r1h, r0l", 2},
		{"mov ind load", []byte{0x68, 0x18}, "mov.b @er1, r0l", 2},
		{"mov ind store", []byte{0x68, 0xA8}, "mov.b r0l, @er2", 2},
		{"mov postinc", []byte{0x6C, 0x18}, "mov.b @er1+, r0l", 2},
		{"mov predec", []byte{0x6C, 0x98}, "mov.b r0l, @-er1", 2},
		{"mov disp16", []byte{0x6E, 0x18, 0x00, 0x04}, "mov.b @(4:16, er1), r0l", 4},
		{"mov abs16", []byte{0x6A, 0x08, 0xF7, 0x90}, "mov.b @0xf790:16, r0l", 4},
		{"bset imm", []byte{0x70, 0x28}, "bset #2, r0l", 2},
		{"bld", []byte{0x77, 0x30}, "bld #3, r0h", 2},
		{"mov.w imm", []byte{0x79, 0x03, 0x12, 0x34}, "mov.w #0x1234, r3", 4},
		{"add.l imm", []byte{0x7A, 0x12, 0x00, 0x00, 0x00, 0x10}, "add.l #0x00000010, er2", 6},
		{"bset abs8", []byte{0x7F, 0x40, 0x70, 0x20}, "bset #2, @0xff40:8", 4},
		{"bld abs8", []byte{0x7E, 0x40, 0x77, 0x20}, "bld #2, @0xff40:8", 4},
		{"sleep", []byte{0x01, 0x80}, "sleep", 2},
		{"mov.l push", []byte{0x01, 0x00, 0x6D, 0xF3}, "mov.l er3, @-er7", 4},
		{"mov.l pop", []byte{0x01, 0x00, 0x6D, 0x74}, "mov.l @er7+, er4", 4},
		{"mov.l abs16", []byte{0x01, 0x00, 0x6B, 0x82, 0xF7, 0xA0}, "mov.l er2, @0xf7a0:16", 6},
		{"mulxs.b", []byte{0x01, 0xC0, 0x50, 0x23}, "mulxs.b r2h, r3", 4},
		{"divxs.w", []byte{0x01, 0xD0, 0x53, 0x12}, "divxs.w r1, er2", 4},
		{"and.l", []byte{0x01, 0xF0, 0x66, 0x12}, "and.l er1, er2", 4},
		{"ldc.w", []byte{0x01, 0x40, 0x69, 0x10}, "ldc.w @er1, ccr", 4},
		{"mov disp24", []byte{0x78, 0x10, 0x6A, 0x28, 0x00, 0x00, 0x00, 0x20},
			"mov.b @(0x000020:24, er1), r0l", 8},
		{"unknown", []byte{0x7C, 0x00}, ".word 0x7c00", 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSystem()
			s.Write(tc.code, 0x100, true)
			got, n := s.Disassemble(0x100)
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
			if n != tc.bytes {
				t.Errorf("length = %d, want %d", n, tc.bytes)
			}
		})
	}
}
