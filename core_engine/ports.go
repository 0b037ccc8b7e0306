package core_engine

import "example.com/h8-tiny/core_engine/devices"

// pinIn binds one input callback to its device.
type pinIn struct {
	fn  devices.PinInFunc
	dev *devices.Device
}

// pinOut binds one output callback to its device.
type pinOut struct {
	fn  devices.PinOutFunc
	dev *devices.Device
}

// portPins is the per-port dispatch table filled in from the preset's
// hookups during system init.
type portPins struct {
	ins  [6]pinIn
	outs [6]pinOut
}

// portInfo describes the usable bits of each port data register.
type portInfo struct {
	addr uint32
	pins int
	base uint // bit position of pin 0
}

var portTable = map[devices.Port]portInfo{
	devices.Port1: {RegPDR1, 3, 0},
	devices.Port3: {RegPDR3, 3, 0},
	devices.Port8: {RegPDR8, 3, 2}, // pins occupy bits 2-4
	devices.Port9: {RegPDR9, 4, 0},
	devices.PortB: {RegPDRB, 6, 0},
}

// bindPorts installs the PDR handlers. PDRB is input-only; stores to it are
// discarded.
func (s *System) bindPorts() {
	for port, info := range portTable {
		port, info := port, info
		s.mapIn(info.addr, func(s *System, b *byte) {
			s.pdrIn(port, info, b)
		})
		if port == devices.PortB {
			s.mapOut(info.addr, func(s *System, b *byte, value byte) {})
			continue
		}
		s.mapOut(info.addr, func(s *System, b *byte, value byte) {
			s.pdrOut(port, info, b, value)
		})
	}
}

// pdrIn assembles the byte read from a port data register: every bit with
// an input callback is freshly driven by its device, bits without one keep
// their stored value.
func (s *System) pdrIn(port devices.Port, info portInfo, b *byte) {
	v := *b
	for i := 0; i < info.pins; i++ {
		e := s.pins[port].ins[i]
		if e.fn == nil {
			continue
		}
		bit := byte(1) << (info.base + uint(i))
		v &^= bit
		if e.fn(e.dev) {
			v |= bit
		}
	}
	*b = v
}

// pdrOut forwards each pin's new level to its output callback, then stores
// the written value.
func (s *System) pdrOut(port devices.Port, info portInfo, b *byte, value byte) {
	for i := 0; i < info.pins; i++ {
		e := s.pins[port].outs[i]
		if e.fn == nil {
			continue
		}
		e.fn(e.dev, value>>(info.base+uint(i))&1 != 0)
	}
	*b = value
}
