package core_engine

import "example.com/h8-tiny/core_engine/devices"

// SCI3 in its IrDA role. Only the byte-level transmit and receive buffers
// are modelled; modulation, framing and baud timing are not. Bytes written
// to TDR3 accumulate in the TX buffer until the firmware ends transmission
// by clearing the TE bit, at which point the buffer is flushed through the
// host link.

// IRBufferLen bounds both directions of the infrared buffer.
const IRBufferLen = 8

type irBuffer struct {
	rx    [IRBufferLen]byte
	rxLen int
	tx    [IRBufferLen]byte
	txLen int
}

// IRLink carries finalized infrared frames to and from the host front-end.
type IRLink interface {
	// Transmit sends a finalized TX buffer. Reports whether the frame was
	// accepted.
	Transmit(data []byte) bool
}

// SetIRLink installs the host's infrared transport. A nil link leaves
// transmissions logged and dropped.
func (s *System) SetIRLink(link IRLink) { s.irLink = link }

// IRReceive injects received infrared bytes into the RX buffer. Returns
// the number of bytes accepted.
func (s *System) IRReceive(data []byte) int {
	n := copy(s.ir.rx[s.ir.rxLen:], data)
	s.ir.rxLen += n
	return n
}

func (s *System) bindSCI3() {
	s.mapOut(RegTDR3, tdr3Out)
	s.mapIn(RegRDR3, rdr3In)
	s.mapIn(RegSSR3, ssr3In)
	s.mapOut(RegSSR3, ssr3Out)
	s.mapOut(RegSCR3, scr3Out)
}

func tdr3Out(s *System, b *byte, value byte) {
	if s.ir.txLen >= IRBufferLen {
		s.logf(devices.LogWarn, devices.LogIR, "TX buffer overrun, dropping %02X", value)
	} else {
		s.ir.tx[s.ir.txLen] = value
		s.ir.txLen++
	}
	*b = value
}

func rdr3In(s *System, b *byte) {
	if s.ir.rxLen == 0 {
		return
	}
	*b = s.ir.rx[0]
	copy(s.ir.rx[:], s.ir.rx[1:s.ir.rxLen])
	s.ir.rxLen--
}

// SSR3 reads show transmission always complete and reception ready when
// the RX buffer holds data.
func ssr3In(s *System, b *byte) {
	*b |= SSR3tdre | SSR3tend
	if s.ir.rxLen > 0 {
		*b |= SSR3rdrf
	} else {
		*b &^= SSR3rdrf
	}
}

func ssr3Out(s *System, b *byte, value byte) {
	for _, flag := range [...]byte{SSR3tend, SSR3per, SSR3fer, SSR3oer, SSR3rdrf, SSR3tdre} {
		if value&flag == 0 {
			*b &^= flag
		}
	}
}

// Clearing TE finalizes the TX buffer and hands it to the link.
func scr3Out(s *System, b *byte, value byte) {
	te := *b&SCR3te != 0
	*b = value
	if te && value&SCR3te == 0 {
		s.irTransmit()
	}
}

func (s *System) irTransmit() {
	if s.ir.txLen == 0 {
		return
	}
	frame := s.ir.tx[:s.ir.txLen]
	if s.irLink != nil && s.irLink.Transmit(frame) {
		s.logf(devices.LogInfo, devices.LogIR, "transmitted %d bytes", s.ir.txLen)
	} else {
		s.logf(devices.LogWarn, devices.LogIR, "unimplemented transmit: %d -> % X", s.ir.txLen, frame)
	}
	s.ir.txLen = 0
}
