package devices

// ADCValueState backs the generic A/D sources: a 16-bit value that is
// either host-set or advanced by a small linear-congruential generator for
// sources that only need plausible noise.
type ADCValueState struct {
	Value uint16
}

// NewAccelerometer constructs one axis of the 2-axis analog accelerometer.
func NewAccelerometer(cfg Config, id ID) *Device {
	cfg = cfg.fill()
	name := "Analog accelerometer (X)"
	if id == DeviceAccelerometerY {
		name = "Analog accelerometer (Y)"
	}
	return &Device{
		Type:  id,
		Name:  name,
		State: &ADCValueState{},
		logf:  cfg.Log,
	}
}

// NewBattery constructs the battery level source, defaulting to a healthy
// cell.
func NewBattery(cfg Config) *Device {
	cfg = cfg.fill()
	return &Device{
		Type:  DeviceBattery,
		Name:  "CR2032 battery",
		State: &ADCValueState{Value: 0x0100},
		logf:  cfg.Log,
	}
}

// ADCSet stores a host-provided conversion value.
func ADCSet(d *Device, value uint16) {
	if s, ok := d.State.(*ADCValueState); ok {
		s.Value = value
	}
}

// ADCGet returns the host-set value.
func ADCGet(d *Device) uint16 {
	return d.State.(*ADCValueState).Value
}

// ADCFuzz advances the source's value with a linear-congruential step and
// returns it, masked to the converter's left-aligned 10-bit format.
func ADCFuzz(d *Device) uint16 {
	s := d.State.(*ADCValueState)
	s.Value = uint16((uint32(s.Value)*1103515245 + 12345) & 0xFFC0)
	return s.Value
}

// Fixed conversion results.

func ADCHalf(d *Device) uint16 { return 0x03E0 }
func ADCMax(d *Device) uint16  { return 0xFFC0 }
func ADCZero(d *Device) uint16 { return 0x0000 }
