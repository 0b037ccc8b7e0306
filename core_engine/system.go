// Package core_engine emulates the H8/300H-tiny microcontroller at the
// heart of the NTR-027, NTR-031 and NTR-032 products: the CPU core, the
// 64 KiB address space with its memory-mapped peripheral registers, and
// the wiring that connects the on-chip ports and serial unit to the
// external devices each product carries.
package core_engine

import (
	"fmt"

	"example.com/h8-tiny/core_engine/devices"
)

// InstructionsPerFrame is the Run budget: roughly one sixtieth of a second
// of execution at the core clock, assuming the firmware's typical
// instruction mix. Callers compute wall-clock pacing themselves.
const InstructionsPerFrame = 16384

// Profile collects optional execution statistics in the style of the
// hardware's debug builds: a heat map of reads, writes and executed
// addresses plus a retired-instruction count.
type Profile struct {
	Instructions uint64
	Reads        [AddrSpaceSize]uint32
	Writes       [AddrSpaceSize]uint32
	Executes     [AddrSpaceSize]uint32
}

// System owns the complete machine state: CPU, address space, the I/O
// handler dispatch tables and the devices materialised from the selected
// preset. It is not safe for concurrent use; the host serialises all calls
// with Step.
type System struct {
	cpu  CPU
	dbus instruction
	vmem [AddrSpaceSize]byte

	errorCode ErrorCode
	errorLine string

	ioIn  [ioSlots]inFunc
	ioOut [ioSlots]outFunc

	devices []*devices.Device
	preset  *Preset

	pins map[devices.Port]*portPins
	adc  [6]adcHookup

	ir     irBuffer
	irLink IRLink

	// Whether SLEEP mode is currently active. The outer loop observes it
	// as a cooperative halt.
	sleep bool

	logf  devices.LogFunc
	alloc devices.Allocator
	prof  *Profile
}

// NewSystem creates a machine with no devices attached. Call SystemInit to
// select a product preset, load a ROM with Write(force), then Init.
func NewSystem() *System {
	s := &System{
		logf:  devices.StdLogger,
		alloc: devices.HeapAllocator{},
		pins:  make(map[devices.Port]*portPins),
	}
	for port := range portTable {
		s.pins[port] = &portPins{}
	}
	s.bindPorts()
	s.bindSSU()
	s.bindADC()
	s.bindSCI3()
	return s
}

// SetLogger installs the log sink. A nil sink silences the system and all
// devices created after the call.
func (s *System) SetLogger(fn devices.LogFunc) {
	if fn == nil {
		fn = devices.NopLogger
	}
	s.logf = fn
}

// SetAllocator substitutes the allocator used for device buffers. Must be
// called before SystemInit.
func (s *System) SetAllocator(a devices.Allocator) {
	if a != nil {
		s.alloc = a
	}
}

// EnableProfiling attaches a fresh profile; false detaches it.
func (s *System) EnableProfiling(on bool) {
	if on {
		s.prof = &Profile{}
	} else {
		s.prof = nil
	}
}

// Profiling returns the attached profile, or nil.
func (s *System) Profiling() *Profile { return s.prof }

// CPU exposes the register state for host tooling.
func (s *System) CPU() *CPU { return &s.cpu }

// ErrorCode reports the fault that froze execution, if any.
func (s *System) ErrorCode() ErrorCode { return s.errorCode }

// ErrorLine is the source-location hint recorded with the fault.
func (s *System) ErrorLine() string { return s.errorLine }

// Sleeping reports whether the CPU executed SLEEP and awaits a wake.
func (s *System) Sleeping() bool { return s.sleep }

// Wake clears the sleep state.
func (s *System) Wake() { s.sleep = false }

// Preset returns the preset selected by SystemInit, or nil.
func (s *System) Preset() *Preset { return s.preset }

// Devices lists the devices materialised by SystemInit.
func (s *System) Devices() []*devices.Device { return s.devices }

// FindDevice returns the first device of the given type, or nil.
func (s *System) FindDevice(id devices.ID) *devices.Device {
	for _, d := range s.devices {
		if d.Type == id {
			return d
		}
	}
	return nil
}

// SystemInit selects a product preset, materialises its devices and binds
// their pin, A/DC and SSU dispatches.
func (s *System) SystemInit(id SystemID) error {
	preset := presetFor(id)
	if preset == nil {
		return fmt.Errorf("unknown system id %d", id)
	}
	s.preset = preset
	cfg := devices.Config{Log: s.logf, Alloc: s.alloc}

	for i := range preset.ADC {
		hookup := &preset.ADC[i]
		if hookup.Type == devices.DeviceInvalid || hookup.Channel >= len(s.adc) {
			continue
		}
		dev := devices.New(hookup.Type, cfg)
		if dev == nil {
			return fmt.Errorf("preset %q: no device model for type %d", preset.Title, hookup.Type)
		}
		s.devices = append(s.devices, dev)
		s.adc[hookup.Channel] = adcHookup{fn: hookup.Producer, dev: dev}
	}

	for i := range preset.PDR {
		hookup := &preset.PDR[i]
		if hookup.Type == devices.DeviceInvalid {
			continue
		}
		// One device per type; later hookups for the same type add pins to
		// the device created by the first.
		dev := s.FindDevice(hookup.Type)
		if dev == nil {
			dev = devices.New(hookup.Type, cfg)
			if dev == nil {
				return fmt.Errorf("preset %q: no device model for type %d", preset.Title, hookup.Type)
			}
			s.devices = append(s.devices, dev)
		}
		dev.Port = hookup.Port

		pins, ok := s.pins[hookup.Port]
		if !ok {
			continue
		}
		for pin := 0; pin < len(hookup.PinIns); pin++ {
			if fn := hookup.PinIns[pin]; fn != nil {
				dev.PinIns[pin] = fn
				pins.ins[pin] = pinIn{fn: fn, dev: dev}
			}
			if fn := hookup.PinOuts[pin]; fn != nil {
				dev.PinOuts[pin] = fn
				pins.outs[pin] = pinOut{fn: fn, dev: dev}
			}
		}
	}
	return nil
}

// Init applies the power-on defaults and loads the program entry point
// from the reset vector. The vector fetch goes through the handler path
// like any other word read.
func (s *System) Init() {
	s.cpu.CCR |= FlagI

	s.vmem[RegSSSR] = resetSSSR

	s.vmem[RegGRA] = 0xFF
	s.vmem[RegGRA+1] = 0xFF
	s.vmem[RegGRB] = 0xFF
	s.vmem[RegGRB+1] = 0xFF
	s.vmem[RegGRC] = 0xFF
	s.vmem[RegGRC+1] = 0xFF
	s.vmem[RegGRD] = 0xFF
	s.vmem[RegGRD+1] = 0xFF

	s.vmem[RegBRR3] = 0xFF
	s.vmem[RegTDR3] = 0xFF
	s.vmem[RegSSR3] = resetSSR3

	s.vmem[RegTMWD] = resetTMWD
	s.vmem[RegTCSRWD1] = resetTCSRWD1

	s.vmem[RegADSR] = resetADSR

	s.cpu.PC = uint32(s.readW(0))
}

// Step runs the next instruction. A recorded fault freezes the machine;
// SLEEP parks it until the host calls Wake.
func (s *System) Step() {
	if s.errorCode != ErrNone || s.sleep {
		return
	}
	if s.cpu.PC > 0xFFFF || s.cpu.PC&1 != 0 {
		s.fail(ErrBadPC)
		return
	}
	pc := s.cpu.PC
	s.fetch()

	fn := opTable[s.dbus.a]
	if fn == nil {
		s.logf(devices.LogError, devices.LogCPU, "undefined opcode %02X%02X at %04X",
			s.dbus.a, s.dbus.b, pc)
		s.fail(ErrUnimplementedOpcode)
		return
	}
	fn(s)

	if s.errorCode != ErrNone {
		s.logf(devices.LogError, devices.LogCPU, "system error: %s at %s",
			s.errorCode, s.errorLine)
		return
	}
	if s.prof != nil {
		s.prof.Instructions++
		s.prof.Executes[pc&0xFFFF]++
	}
}

// Run executes one frame budget of instructions, stopping early on a
// fault or on SLEEP.
func (s *System) Run() {
	for i := 0; i < InstructionsPerFrame; i++ {
		if s.errorCode != ErrNone || s.sleep {
			return
		}
		s.Step()
	}
}
