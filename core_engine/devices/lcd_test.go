package devices_test

import (
	"testing"

	"example.com/h8-tiny/core_engine/devices"
)

func newLCD(t *testing.T) *devices.Device {
	t.Helper()
	d := devices.NewLCD(devices.Config{Log: devices.NopLogger})
	if d == nil {
		t.Fatal("NewLCD returned nil")
	}
	devices.LCDSelect(d, false)
	return d
}

func TestLCDStatusRead(t *testing.T) {
	d := newLCD(t)
	devices.LCDMode(d, false)
	got := readByte(d)
	if got&0x1F != 0x08 {
		t.Errorf("chip id = %#x, want 0x08", got&0x1F)
	}
	if got&0x40 == 0 {
		t.Error("display should report on after power-up")
	}

	stream(d, 0xAE) // display off
	if readByte(d)&0x40 != 0 {
		t.Error("0xAE should clear the on flag")
	}
	stream(d, 0xAF)
	if readByte(d)&0x40 == 0 {
		t.Error("0xAF should set the on flag")
	}
}

func TestLCDCursorCommands(t *testing.T) {
	d := newLCD(t)
	l := d.State.(*devices.LCDState)
	devices.LCDMode(d, false)

	stream(d, 0xB3)       // page 3
	stream(d, 0x15, 0x04) // column 0x54
	if l.Y != 24 {
		t.Errorf("Y = %d, want 24", l.Y)
	}
	if l.X != 0x54 {
		t.Errorf("X = %#x, want 0x54", l.X)
	}
}

func TestLCDDataPath(t *testing.T) {
	d := newLCD(t)
	l := d.State.(*devices.LCDState)

	devices.LCDMode(d, false)
	stream(d, 0xB1, 0x02) // page 1, column 2

	devices.LCDMode(d, true)
	stream(d, 0xAA, 0x55) // both bytes of the (2, page 1) cell

	cell := (1*devices.LCDWidth + 2) * 2
	if l.VRAM[cell] != 0xAA || l.VRAM[cell+1] != 0x55 {
		t.Fatalf("cell = %02X %02X, want AA 55", l.VRAM[cell], l.VRAM[cell+1])
	}
	if l.X != 3 {
		t.Fatalf("X = %d, the second byte should advance the column", l.X)
	}

	// Reads replay the framebuffer with the same two-phase cursor.
	devices.LCDMode(d, false)
	stream(d, 0xB1, 0x02)
	devices.LCDMode(d, true)
	if got := readByte(d); got != 0xAA {
		t.Fatalf("first data read = %#x", got)
	}
	if got := readByte(d); got != 0x55 {
		t.Fatalf("second data read = %#x", got)
	}
}

func TestLCDColumnWrap(t *testing.T) {
	d := newLCD(t)
	l := d.State.(*devices.LCDState)
	devices.LCDMode(d, false)
	stream(d, 0xB0, 0x17, 0x0F) // column 127
	devices.LCDMode(d, true)
	stream(d, 0x01, 0x02)
	if l.X != 0 {
		t.Fatalf("X = %d, want wrap to 0", l.X)
	}
}

func TestLCDTwoByteCommands(t *testing.T) {
	d := newLCD(t)
	l := d.State.(*devices.LCDState)
	devices.LCDMode(d, false)

	stream(d, 0x42, 0x35) // start line
	if l.StartLine != 0x35 {
		t.Errorf("start line = %#x", l.StartLine)
	}
	stream(d, 0x81, 0x2A) // contrast, six bits
	if l.Contrast != 0x2A {
		t.Errorf("contrast = %#x", l.Contrast)
	}
	stream(d, 0x8A, 0x07) // light gray palette entry
	if l.PaletteModes[devices.LCDPaletteLightGray] != 0x07 {
		t.Errorf("palette = %v", l.PaletteModes)
	}
	stream(d, 0x48, 0x3F) // multiplex ratio
	if l.MultiplexRatio != 0x3F {
		t.Errorf("multiplex ratio = %#x", l.MultiplexRatio)
	}
}

func TestLCDModalCommands(t *testing.T) {
	d := newLCD(t)
	l := d.State.(*devices.LCDState)
	devices.LCDMode(d, false)

	stream(d, 0xA7)
	if !l.InverseDisplay {
		t.Error("0xA7 should enable inverse display")
	}
	stream(d, 0xA5)
	if !l.AllOn {
		t.Error("0xA5 should force all pixels on")
	}
	stream(d, 0xC8)
	if !l.YFlip {
		t.Error("0xC8 should enable the y flip")
	}
	stream(d, 0xA1)
	if !l.XFlip {
		t.Error("0xA1 should enable the segment remap")
	}
}

func TestLCDRender(t *testing.T) {
	d := newLCD(t)
	l := d.State.(*devices.LCDState)

	// Pixel (0, 0): low plane bit only -> shade 1; pixel (1, 0): both
	// planes -> shade 3.
	l.VRAM[0] = 0x01
	l.VRAM[2] = 0x01
	l.VRAM[3] = 0x01

	out := make([]byte, devices.LCDWidth*devices.LCDHeight)
	devices.LCDRender(d, out)
	if out[0] != 1 {
		t.Errorf("pixel (0,0) = %d, want shade 1", out[0])
	}
	if out[1] != 3 {
		t.Errorf("pixel (1,0) = %d, want shade 3", out[1])
	}
	if out[2] != 0 {
		t.Errorf("pixel (2,0) = %d, want white", out[2])
	}

	l.InverseDisplay = true
	devices.LCDRender(d, out)
	if out[2] != 3 {
		t.Errorf("inverse display should darken white pixels, got %d", out[2])
	}
}
