package core_engine

import "example.com/h8-tiny/core_engine/devices"

// ioSlots covers I/O region 1 followed by I/O region 2 in the handler
// dispatch tables.
const ioSlots = RegionIO1Size + RegionIO2Size

// inFunc is invoked on byte reads of a mapped register. It may rewrite the
// stored byte before the read completes.
type inFunc func(s *System, b *byte)

// outFunc is invoked on byte writes of a mapped register, receiving the
// current cell and the incoming value. Handlers decide what is stored.
type outFunc func(s *System, b *byte, value byte)

// ioSlot maps an address onto the dispatch tables, or returns false for
// addresses outside both I/O regions.
func ioSlot(addr uint32) (int, bool) {
	switch {
	case addr >= RegionIO1 && addr < RegionIO1+RegionIO1Size:
		return int(addr - RegionIO1), true
	case addr >= RegionIO2 && addr < RegionIO2+RegionIO2Size:
		return int(addr - RegionIO2 + RegionIO1Size), true
	}
	return 0, false
}

func (s *System) mapIn(addr uint32, fn inFunc) {
	slot, ok := ioSlot(addr)
	if !ok {
		panic("register address outside the I/O regions")
	}
	s.ioIn[slot] = fn
}

func (s *System) mapOut(addr uint32, fn outFunc) {
	slot, ok := ioSlot(addr)
	if !ok {
		panic("register address outside the I/O regions")
	}
	s.ioOut[slot] = fn
}

// find returns the raw cell backing an address.
func (s *System) find(addr uint32) *byte {
	if s.prof != nil {
		s.prof.Reads[addr&0xFFFF]++
	}
	return &s.vmem[addr&0xFFFF]
}

// byteIn reads a byte after the input handler, if any, has run.
func (s *System) byteIn(addr uint32) byte {
	b := s.find(addr)
	if slot, ok := ioSlot(addr & 0xFFFF); ok {
		if in := s.ioIn[slot]; in != nil {
			in(s, b)
		} else {
			s.logf(devices.LogDebug, devices.LogSYS, "read of unhandled register %04X", addr&0xFFFF)
		}
	}
	return *b
}

// byteOut writes a byte through the output handler, if any. Writes below
// the first I/O region target ROM and are discarded.
func (s *System) byteOut(addr uint32, value byte) {
	addr &= 0xFFFF
	if addr < RegionIO1 {
		s.logf(devices.LogWarn, devices.LogCPU, "store of %02X to read-only %04X", value, addr)
		return
	}
	if s.prof != nil {
		s.prof.Writes[addr]++
	}
	b := &s.vmem[addr]
	if slot, ok := ioSlot(addr); ok {
		if out := s.ioOut[slot]; out != nil {
			out(s, b, value)
			return
		}
		s.logf(devices.LogDebug, devices.LogSYS, "write of %02X to unhandled register %04X", value, addr)
	}
	*b = value
}

func (s *System) readB(addr uint32) uint8 { return s.byteIn(addr) }

func (s *System) writeB(addr uint32, value uint8) { s.byteOut(addr, value) }

// readW reads a word from explicit big-endian memory, high byte first.
func (s *System) readW(addr uint32) uint16 {
	return uint16(s.byteIn(addr))<<8 | uint16(s.byteIn(addr+1))
}

func (s *System) writeW(addr uint32, value uint16) {
	s.byteOut(addr, uint8(value>>8))
	s.byteOut(addr+1, uint8(value))
}

func (s *System) readL(addr uint32) uint32 {
	return uint32(s.byteIn(addr))<<24 | uint32(s.byteIn(addr+1))<<16 |
		uint32(s.byteIn(addr+2))<<8 | uint32(s.byteIn(addr+3))
}

func (s *System) writeL(addr uint32, value uint32) {
	s.byteOut(addr, uint8(value>>24))
	s.byteOut(addr+1, uint8(value>>16))
	s.byteOut(addr+2, uint8(value>>8))
	s.byteOut(addr+3, uint8(value))
}

// Find returns a mutable reference to the raw cell backing an address, for
// host tooling that patches memory in place.
func (s *System) Find(addr uint32) *byte {
	return &s.vmem[addr&0xFFFF]
}

// PeekB reads a raw byte, bypassing handlers. Host tooling access.
func (s *System) PeekB(addr uint32) uint8 { return s.vmem[addr&0xFFFF] }

// PokeB stores a raw byte, bypassing handlers and ROM protection.
func (s *System) PokeB(addr uint32, value uint8) { s.vmem[addr&0xFFFF] = value }

// PeekW reads a raw big-endian word.
func (s *System) PeekW(addr uint32) uint16 {
	return uint16(s.PeekB(addr))<<8 | uint16(s.PeekB(addr+1))
}

// PokeW stores a raw big-endian word.
func (s *System) PokeW(addr uint32, value uint16) {
	s.PokeB(addr, uint8(value>>8))
	s.PokeB(addr+1, uint8(value))
}

// PeekL reads a raw big-endian long.
func (s *System) PeekL(addr uint32) uint32 {
	return uint32(s.PeekW(addr))<<16 | uint32(s.PeekW(addr+2))
}

// PokeL stores a raw big-endian long.
func (s *System) PokeL(addr uint32, value uint32) {
	s.PokeW(addr, uint16(value>>16))
	s.PokeW(addr+2, uint16(value))
}

// Read copies memory into buffer starting at address, clipping at the end
// of the address space. It does not run I/O handlers. Returns the number of
// bytes copied.
func (s *System) Read(buffer []byte, address uint32) int {
	if address >= AddrSpaceSize {
		return 0
	}
	return copy(buffer, s.vmem[address:])
}

// Write copies buffer into memory starting at address. Without force only
// the RAM window accepts data; with force any address does, which is how
// the host loads ROM images. It does not run I/O handlers. Returns the
// number of bytes copied.
func (s *System) Write(buffer []byte, address uint32, force bool) int {
	if address >= AddrSpaceSize {
		return 0
	}
	if force {
		return copy(s.vmem[address:], buffer)
	}
	if address < RegionRAM || address >= RegionRAMEnd {
		return 0
	}
	n := int(RegionRAMEnd - address)
	if n > len(buffer) {
		n = len(buffer)
	}
	return copy(s.vmem[address:], buffer[:n])
}
