package devices

import "bytes"

// BMA150 register file offsets. The three acceleration axes are 16-bit
// little-endian cells holding a 10-bit reading plus a "new data" flag in
// the top bit of the high byte.
const (
	bma150RegChipID = 0x00
	bma150RegXLow   = 0x02
	bma150RegXHigh  = 0x03
	bma150RegYLow   = 0x04
	bma150RegYHigh  = 0x05
	bma150RegZLow   = 0x06
	bma150RegZHigh  = 0x07

	// Registers below this address are read-only over SPI.
	bma150FirstWritable = 0x0A

	bma150NewData = 0x80
)

const (
	bma150Writing = 0
	bma150Reading = 1
)

// BMA150State models the sensor's 128-byte register file and the running
// four-wire SPI transaction.
type BMA150State struct {
	Data [0x80]byte

	// First byte of a transaction: bit 7 selects read mode, bits 6..0 are
	// the register address.
	Mode byte
	Addr byte

	// Bytes received since chip select, or since the last single-byte
	// register write.
	Count uint32
}

// NewBMA150 constructs the acceleration sensor with the manufacturer
// defaults loaded into its control and status registers.
func NewBMA150(cfg Config) *Device {
	cfg = cfg.fill()
	b := &BMA150State{}

	// 3. Global Memory Map - Figure 1
	b.Data[0x00] = 0x02
	b.Data[0x0B] = 0x03
	b.Data[0x0C] = 20
	b.Data[0x0D] = 150
	b.Data[0x0E] = 160
	b.Data[0x0F] = 150
	b.Data[0x12] = 162
	b.Data[0x13] = 13
	b.Data[0x14] = 0x0E
	b.Data[0x15] = 0x80
	b.Data[0x2B] = 0x03
	b.Data[0x2C] = 20
	b.Data[0x2D] = 150
	b.Data[0x2E] = 160
	b.Data[0x2F] = 150
	b.Data[0x32] = 162
	b.Data[0x33] = 13
	b.Data[0x34] = 0x0E
	b.Data[0x35] = 0x80

	d := &Device{
		Type:  DeviceBMA150,
		Name:  "Bosch BMA150 Triaxial digital acceleration sensor",
		State: b,
		logf:  cfg.Log,
	}
	d.SSUIn = bma150SSUIn
	d.SSUOut = bma150SSUOut
	d.Save = bma150Save
	d.Load = bma150Load
	return d
}

// BMA150Select is the active-low chip select callback.
func BMA150Select(d *Device, level bool) {
	b := d.State.(*BMA150State)
	d.Selected = !level
	if !d.Selected {
		b.Count = 0
	}
}

// 4.1.1 Four-wire SPI interface - Figure 7
func bma150SSUIn(d *Device, dst *byte) bool {
	b := d.State.(*BMA150State)
	if !d.Selected {
		return false
	}
	if b.Mode != bma150Reading || b.Count < 2 {
		return false
	}
	addr := (int(b.Addr) + int(b.Count) - 2) & 0x7F
	*dst = b.Data[addr]

	// Reading either byte of an axis retires its "new data" flag.
	switch addr {
	case bma150RegXLow, bma150RegXHigh:
		b.Data[bma150RegXHigh] &^= bma150NewData
	case bma150RegYLow, bma150RegYHigh:
		b.Data[bma150RegYHigh] &^= bma150NewData
	case bma150RegZLow, bma150RegZHigh:
		b.Data[bma150RegZHigh] &^= bma150NewData
	}

	d.Logf(LogDebug, LogSSU, "BMA150 read 0x%02X -> %02X", addr, *dst)
	return true
}

// 4.1.1 Four-wire SPI interface - Figure 6
func bma150SSUOut(d *Device, dst *byte, value byte) bool {
	b := d.State.(*BMA150State)
	if !d.Selected {
		return false
	}

	// RW pulled down mid-read: this byte starts a new command.
	if b.Mode == bma150Reading && value&0x80 == 0 {
		b.Count = 0
	}

	if b.Count == 0 {
		b.Mode = value >> 7
		b.Addr = value & 0x7F
	} else if b.Mode == bma150Writing {
		if b.Addr >= bma150FirstWritable {
			d.Logf(LogDebug, LogSSU, "BMA150 write 0x%02X -> %02X", b.Addr, value)
			b.Data[b.Addr] = value
		} else {
			d.Logf(LogWarn, LogSSU,
				"BMA150 attempted write to read-only address %02X", b.Addr)
		}
		// Each register write is a complete command.
		b.Count = 0
		*dst = value
		return true
	}
	b.Count++

	*dst = value
	return true
}

// BMA150SetAxis sets the 10-bit acceleration readings and flags all three
// axes as holding new data. Host-side input injection.
func BMA150SetAxis(d *Device, x, y, z uint16) {
	if d == nil || d.Type != DeviceBMA150 {
		return
	}
	b := d.State.(*BMA150State)
	set := func(low int, v uint16) {
		b.Data[low] = byte(v)
		b.Data[low+1] = byte(v>>8)&0x03 | bma150NewData
	}
	set(bma150RegXLow, x)
	set(bma150RegYLow, y)
	set(bma150RegZLow, z)
}

func bma150Save(d *Device, w *bytes.Buffer) bool {
	b := d.State.(*BMA150State)
	w.Write(b.Data[:])
	w.WriteByte(b.Mode)
	w.WriteByte(b.Addr)
	w.WriteByte(byte(b.Count))
	return true
}

func bma150Load(d *Device, r *bytes.Reader) bool {
	b := d.State.(*BMA150State)
	if _, err := r.Read(b.Data[:]); err != nil {
		return false
	}
	mode, err := r.ReadByte()
	if err != nil {
		return false
	}
	addr, err := r.ReadByte()
	if err != nil {
		return false
	}
	count, err := r.ReadByte()
	if err != nil {
		return false
	}
	b.Mode, b.Addr, b.Count = mode, addr, uint32(count)
	return true
}
