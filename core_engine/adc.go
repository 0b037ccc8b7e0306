package core_engine

import "example.com/h8-tiny/core_engine/devices"

// A/D converter. Conversions are instantaneous: setting the start flag
// immediately latches the hooked-up producer's value into ADRR and shows
// the conversion complete.

// adcHookup binds a channel's value producer to its device.
type adcHookup struct {
	fn  devices.ADCFunc
	dev *devices.Device
}

func (s *System) bindADC() {
	s.mapOut(RegAMR, amrOut)
	s.mapIn(RegADSR, adsrIn)
	s.mapOut(RegADSR, adsrOut)
}

// 17.3.2 A/D Mode Register (AMR)
// A write that selects a valid analog channel updates only the channel
// nibble; anything else updates only the clock and trigger bits.
func amrOut(s *System, b *byte, value byte) {
	ch := value & AMRChannelMask
	if ch >= ADCChannelAN0 && ch <= ADCChannelAN5 {
		*b = *b&AMRClockMask | ch
	} else {
		*b = *b&AMRChannelMask | value&AMRClockMask
	}
}

// 17.3.3 A/D Start Register (ADSR)
// The start flag reads back clear: conversions always appear finished.
func adsrIn(s *System, b *byte) {
	*b &^= ADSRadsf
}

func adsrOut(s *System, b *byte, value byte) {
	if value&ADSRadsf != 0 {
		s.convert()
	}
	*b = value &^ ADSRadsf
}

// convert runs one conversion on the currently selected channel.
func (s *System) convert() {
	ch := s.vmem[RegAMR] & AMRChannelMask
	if ch < ADCChannelAN0 || ch > ADCChannelAN5 {
		s.logf(devices.LogWarn, devices.LogSYS, "A/D start with no channel selected")
		return
	}
	hook := s.adc[ch-ADCChannelAN0]
	if hook.fn == nil {
		s.logf(devices.LogWarn, devices.LogSYS, "A/D start on unhooked channel AN%d", ch-ADCChannelAN0)
		return
	}
	s.PokeW(RegADRR, hook.fn(hook.dev))
}
