package devices

// Factory test line levels.
const (
	factoryControlTest   = false
	factoryControlNoTest = true
)

// NewFactoryControl constructs the factory test controller stub. On real
// hardware pulling its line low at boot starts a self test; the emulated
// line is fixed at "no test".
func NewFactoryControl(cfg Config) *Device {
	cfg = cfg.fill()
	d := &Device{
		Type: DeviceFactoryControl,
		Name: "Factory control",
		logf: cfg.Log,
	}
	return d
}

func FactoryControlIn(d *Device) bool {
	return factoryControlNoTest
}

// FactoryControlOut is a stub; the firmware toggles this line around A/D
// sampling ("set for sum of eight A/D conversions").
func FactoryControlOut(d *Device, level bool) {}

// NewSPIBus constructs the NTR-031 cartridge SPI connector. Nothing sits on
// the far side; selected transfers are logged and otherwise ignored.
func NewSPIBus(cfg Config) *Device {
	cfg = cfg.fill()
	d := &Device{
		Type: DeviceSPIBus,
		Name: "SPI bus connector",
		logf: cfg.Log,
	}
	d.SSUOut = spiBusSSUOut
	return d
}

// SPIBusSelect is the active-low chip select for the cartridge connector.
func SPIBusSelect(d *Device, level bool) {
	d.Selected = !level
}

func spiBusSSUOut(d *Device, b *byte, value byte) bool {
	if !d.Selected {
		return false
	}
	d.Logf(LogWarn, LogSSU, "SPI bus transfer with nothing attached: %02X", value)
	*b = value
	return true
}
