package core_engine

import "example.com/h8-tiny/core_engine/devices"

// SystemID selects one of the supported product presets.
type SystemID int

const (
	SystemInvalid SystemID = iota
	SystemNTR027
	SystemNTR031
	SystemNTR032
)

// Limits carried over from the hardware tables: how many ROMs and port
// associations one preset may declare.
const (
	CRC32Max  = 4
	HookupMax = 32
)

// ADCHookup routes an analog channel to a device's value producer.
type ADCHookup struct {
	Type     devices.ID
	Channel  int // 0-based analog channel, AN0..AN5
	Producer devices.ADCFunc
}

// PDRHookup routes up to six pins of one port to a device's callbacks.
type PDRHookup struct {
	Type    devices.ID
	Port    devices.Port
	PinIns  [6]devices.PinInFunc
	PinOuts [6]devices.PinOutFunc
}

// Preset is the immutable description of one supported product: accepted
// ROM checksums plus the A/D and port hookups system init materialises.
type Preset struct {
	Title  string
	System SystemID
	CRC32  []uint32
	ADC    []ADCHookup
	PDR    []PDRHookup
}

// MatchesROM reports whether a ROM image checksum appears in the preset's
// accepted list. Mismatches are host policy, not an init failure.
func (p *Preset) MatchesROM(crc uint32) bool {
	for _, want := range p.CRC32 {
		if want == crc {
			return true
		}
	}
	return false
}

var systemPresets = []Preset{
	{
		Title:  "NTR-027",
		System: SystemNTR027,
		CRC32:  []uint32{0x82341b9f},
		ADC: []ADCHookup{
			// Two single-axis sensors used for step counting.
			{Type: devices.DeviceAccelerometerX, Channel: 0, Producer: devices.ADCFuzz},
			{Type: devices.DeviceAccelerometerY, Channel: 1, Producer: devices.ADCFuzz},
			{Type: devices.DeviceBattery, Channel: 2, Producer: devices.ADCGet},
		},
		PDR: []PDRHookup{
			{
				Type:    devices.DeviceFactoryControl,
				Port:    devices.Port1,
				PinIns:  [6]devices.PinInFunc{0: devices.FactoryControlIn},
				PinOuts: [6]devices.PinOutFunc{2: devices.FactoryControlOut},
			},
			{
				Type: devices.DeviceLED,
				Port: devices.Port8,
				PinOuts: [6]devices.PinOutFunc{
					0: devices.LEDOnOut,
					1: devices.LEDColorOut,
				},
			},
			{
				Type:    devices.DeviceEEPROM8K,
				Port:    devices.Port9,
				PinOuts: [6]devices.PinOutFunc{0: devices.EEPROMSelect},
			},
			{
				Type:   devices.Device1Button,
				Port:   devices.PortB,
				PinIns: [6]devices.PinInFunc{0: devices.ButtonIn0},
			},
		},
	},
	{
		Title:  "NTR-031",
		System: SystemNTR031,
		CRC32:  []uint32{0x64b40d8d, 0x9321792f},
		ADC: []ADCHookup{
			{Type: devices.DeviceBattery, Channel: 2, Producer: devices.ADCGet},
		},
		PDR: []PDRHookup{
			{
				Type:    devices.DeviceSPIBus,
				Port:    devices.Port8,
				PinOuts: [6]devices.PinOutFunc{1: devices.SPIBusSelect},
			},
			// Not actually used in normal operation.
			{
				Type:   devices.Device1Button,
				Port:   devices.PortB,
				PinIns: [6]devices.PinInFunc{0: devices.ButtonIn0},
			},
		},
	},
	{
		Title:  "NTR-032",
		System: SystemNTR032,
		CRC32:  []uint32{0xd4a05446},
		ADC: []ADCHookup{
			{Type: devices.DeviceBattery, Channel: 2, Producer: devices.ADCGet},
		},
		PDR: []PDRHookup{
			{
				Type: devices.DeviceLCD,
				Port: devices.Port1,
				PinOuts: [6]devices.PinOutFunc{
					0: devices.LCDSelect,
					1: devices.LCDMode,
				},
			},
			{
				Type:    devices.DeviceEEPROM64K,
				Port:    devices.Port1,
				PinOuts: [6]devices.PinOutFunc{2: devices.EEPROMSelect},
			},
			{
				Type:    devices.DeviceBMA150,
				Port:    devices.Port9,
				PinOuts: [6]devices.PinOutFunc{0: devices.BMA150Select},
			},
			{
				Type: devices.Device3Button,
				Port: devices.PortB,
				PinIns: [6]devices.PinInFunc{
					0: devices.ButtonIn0,
					1: devices.ButtonIn1,
					2: devices.ButtonIn2,
				},
			},
			// Driven from timer W rather than an I/O port; materialised so
			// the host can inspect it, but no pins to bind.
			{Type: devices.DeviceBuzzer, Port: devices.PortInvalid},
		},
	},
}

func presetFor(id SystemID) *Preset {
	for i := range systemPresets {
		if systemPresets[i].System == id {
			return &systemPresets[i]
		}
	}
	return nil
}

// PresetForROM finds the preset whose checksum list contains crc, for
// hosts that auto-detect the product from the ROM image.
func PresetForROM(crc uint32) *Preset {
	for i := range systemPresets {
		if systemPresets[i].MatchesROM(crc) {
			return &systemPresets[i]
		}
	}
	return nil
}
