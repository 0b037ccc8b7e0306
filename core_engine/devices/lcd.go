package devices

import "bytes"

// LCD geometry. The framebuffer holds two bytes per column per 8-row page:
// byte 0 carries the low bit plane of the column slice, byte 1 the high bit
// plane, giving four shades per pixel.
const (
	LCDWidth  = 128
	LCDHeight = 64

	lcdPages    = LCDHeight / 8
	lcdVRAMSize = lcdPages * LCDWidth * 2
)

// Palette slots configured by commands 0x88..0x8F.
const (
	LCDPaletteWhite = iota
	LCDPaletteLightGray
	LCDPaletteDarkGray
	LCDPaletteBlack
	lcdPaletteSize
)

// LCDState models the display controller: framebuffer, cursor, command
// decoder and the parameter registers the firmware programs at boot.
type LCDState struct {
	VRAM [lcdVRAMSize]byte

	// High selects the data path, low the command path. Driven by a port
	// pin, not by the serial stream.
	DataMode bool

	Command    byte
	SecondByte bool

	// Cursor. X is the column and wraps at 128; Y is the top row of the
	// current page. Phase selects byte 0 or byte 1 of the (x, y) cell.
	X, Y  byte
	Phase byte

	IconEnable         bool
	AllOn              bool
	InverseDisplay     bool
	PowerSave          bool
	PowerSaveModeSleep bool
	XFlip, YFlip       bool

	StartLine      byte
	DisplayOffset  byte
	MultiplexRatio byte
	Contrast       byte
	NLineInversion byte
	IRRRatio       byte
	PowerControl   byte
	Bias           byte
	DCDCFactor     byte
	PWMFRC         byte

	PaletteModes [lcdPaletteSize]byte

	Status byte
}

const (
	lcdStatusID = 0x08 // hardcoded chip id in the low five bits
	lcdStatusOn = 0x40
)

// NewLCD constructs the display with the controller reporting on.
func NewLCD(cfg Config) *Device {
	cfg = cfg.fill()
	d := &Device{
		Type:  DeviceLCD,
		Name:  "128x64 LCD device",
		State: &LCDState{Status: lcdStatusID | lcdStatusOn},
		logf:  cfg.Log,
	}
	d.SSUIn = lcdSSUIn
	d.SSUOut = lcdSSUOut
	d.Save = lcdSave
	d.Load = lcdLoad
	return d
}

// LCDSelect is the active-low chip select callback.
func LCDSelect(d *Device, level bool) {
	l := d.State.(*LCDState)
	d.Selected = !level
	if !d.Selected {
		l.Phase = 0
		l.SecondByte = false
	}
}

// LCDMode drives the command/data pin: high selects the data path.
func LCDMode(d *Device, level bool) {
	d.State.(*LCDState).DataMode = level
}

func (l *LCDState) cell() int {
	page := int(l.Y) / 8 % lcdPages
	return (page*LCDWidth + int(l.X)%LCDWidth) * 2
}

func lcdSSUIn(d *Device, dst *byte) bool {
	l := d.State.(*LCDState)
	if !d.Selected {
		return false
	}
	if !l.DataMode {
		*dst = l.Status
		return true
	}
	*dst = l.VRAM[l.cell()+int(l.Phase)]
	l.advance()
	return true
}

func lcdSSUOut(d *Device, dst *byte, value byte) bool {
	l := d.State.(*LCDState)
	if !d.Selected {
		return false
	}
	if l.DataMode {
		l.VRAM[l.cell()+int(l.Phase)] = value
		l.advance()
	} else {
		l.writeCommand(d, value)
	}
	*dst = value
	return true
}

// advance toggles between the two bytes of the current cell and steps the
// column after the second one, wrapping at the right edge.
func (l *LCDState) advance() {
	l.Phase ^= 1
	if l.Phase == 0 {
		l.X = (l.X + 1) % LCDWidth
	}
}

// takesParameter reports whether a command opcode is followed by one
// parameter byte.
func takesParameter(cmd byte) bool {
	return (cmd >= 0x40 && cmd <= 0x4F) ||
		(cmd >= 0x80 && cmd <= 0x8F) ||
		cmd >= 0xF0
}

func (l *LCDState) writeCommand(d *Device, value byte) {
	if l.SecondByte {
		l.writeParameter(value)
		l.SecondByte = false
		return
	}

	l.Command = value
	if takesParameter(value) {
		l.SecondByte = true
		return
	}

	switch {
	case value <= 0x0F:
		// Set column address bits 0-3
		l.X = l.X&0x70 | value
	case value <= 0x17:
		// Set column address bits 4-6
		l.X = l.X&0x0F | (value&0x07)<<4
	case value >= 0x20 && value <= 0x27:
		l.IRRRatio = value & 0x07
	case value >= 0x28 && value <= 0x2F:
		l.PowerControl = value & 0x07
	case value >= 0x50 && value <= 0x57:
		l.Bias = value & 0x07
	case value >= 0x64 && value <= 0x67:
		l.DCDCFactor = value & 0x03
	case value >= 0x90 && value <= 0x97:
		l.PWMFRC = value & 0x07
	case value == 0xA0:
		l.XFlip = false
	case value == 0xA1:
		l.XFlip = true
	case value == 0xA2:
		l.IconEnable = false
	case value == 0xA3:
		l.IconEnable = true
	case value == 0xA4:
		l.AllOn = false
	case value == 0xA5:
		l.AllOn = true
	case value == 0xA6:
		l.InverseDisplay = false
	case value == 0xA7:
		l.InverseDisplay = true
	case value == 0xA8:
		l.PowerSaveModeSleep = false
	case value == 0xA9:
		l.PowerSaveModeSleep = true
	case value == 0xAB:
		// Internal oscillator on; nothing to model.
	case value == 0xAE:
		l.Status &^= lcdStatusOn
	case value == 0xAF:
		l.Status |= lcdStatusOn
	case value >= 0xB0 && value <= 0xBF:
		l.Y = (value & 0x0F) * 8
		l.Phase = 0
	case value >= 0xC0 && value <= 0xC7:
		l.YFlip = false
	case value >= 0xC8 && value <= 0xCF:
		l.YFlip = true
	case value == 0xE1:
		l.PowerSave = false
	case value == 0xE2:
		// Software reset: programmable parameters back to defaults, display
		// contents untouched.
		vram := l.VRAM
		*l = LCDState{Status: l.Status, DataMode: l.DataMode}
		l.VRAM = vram
	default:
		d.Logf(LogDebug, LogLCD, "ignored command %02X", value)
	}
}

func (l *LCDState) writeParameter(value byte) {
	switch {
	case l.Command <= 0x43:
		l.StartLine = value & 0x7F
	case l.Command <= 0x47:
		l.DisplayOffset = value & 0x3F
	case l.Command <= 0x4B:
		l.MultiplexRatio = value
	case l.Command <= 0x4F:
		l.NLineInversion = value
	case l.Command == 0x81:
		l.Contrast = value & 0x3F
	case l.Command == 0x88 || l.Command == 0x89:
		l.PaletteModes[LCDPaletteWhite] = value & 0x0F
	case l.Command == 0x8A || l.Command == 0x8B:
		l.PaletteModes[LCDPaletteLightGray] = value & 0x0F
	case l.Command == 0x8C || l.Command == 0x8D:
		l.PaletteModes[LCDPaletteDarkGray] = value & 0x0F
	case l.Command == 0x8E || l.Command == 0x8F:
		l.PaletteModes[LCDPaletteBlack] = value & 0x0F
	}
}

// LCDRender decodes the framebuffer into one shade index (0 white .. 3
// black) per pixel, row-major 128x64. dst must hold LCDWidth*LCDHeight
// bytes.
func LCDRender(d *Device, dst []byte) {
	l := d.State.(*LCDState)
	for y := 0; y < LCDHeight; y++ {
		page, bit := y/8, uint(y%8)
		for x := 0; x < LCDWidth; x++ {
			cell := (page*LCDWidth + x) * 2
			shade := (l.VRAM[cell]>>bit)&1 | (l.VRAM[cell+1]>>bit)&1<<1
			if l.AllOn {
				shade = 3
			}
			if l.InverseDisplay {
				shade = 3 - shade
			}
			dst[y*LCDWidth+x] = shade
		}
	}
}

func lcdSave(d *Device, w *bytes.Buffer) bool {
	l := d.State.(*LCDState)
	w.Write(l.VRAM[:])
	flags := byte(0)
	for i, b := range []bool{l.DataMode, l.SecondByte, l.IconEnable, l.AllOn,
		l.InverseDisplay, l.PowerSave, l.PowerSaveModeSleep, l.XFlip} {
		if b {
			flags |= 1 << i
		}
	}
	w.Write([]byte{
		flags, boolByte(l.YFlip), l.Command, l.X, l.Y, l.Phase,
		l.StartLine, l.DisplayOffset, l.MultiplexRatio, l.Contrast,
		l.NLineInversion, l.IRRRatio, l.PowerControl, l.Bias,
		l.DCDCFactor, l.PWMFRC,
		l.PaletteModes[0], l.PaletteModes[1], l.PaletteModes[2],
		l.PaletteModes[3], l.Status,
	})
	return true
}

func lcdLoad(d *Device, r *bytes.Reader) bool {
	l := d.State.(*LCDState)
	if _, err := r.Read(l.VRAM[:]); err != nil {
		return false
	}
	var rest [21]byte
	if _, err := r.Read(rest[:]); err != nil {
		return false
	}
	flags := rest[0]
	l.DataMode = flags&0x01 != 0
	l.SecondByte = flags&0x02 != 0
	l.IconEnable = flags&0x04 != 0
	l.AllOn = flags&0x08 != 0
	l.InverseDisplay = flags&0x10 != 0
	l.PowerSave = flags&0x20 != 0
	l.PowerSaveModeSleep = flags&0x40 != 0
	l.XFlip = flags&0x80 != 0
	l.YFlip = rest[1] != 0
	l.Command, l.X, l.Y, l.Phase = rest[2], rest[3], rest[4], rest[5]
	l.StartLine, l.DisplayOffset, l.MultiplexRatio, l.Contrast = rest[6], rest[7], rest[8], rest[9]
	l.NLineInversion, l.IRRRatio, l.PowerControl, l.Bias = rest[10], rest[11], rest[12], rest[13]
	l.DCDCFactor, l.PWMFRC = rest[14], rest[15]
	copy(l.PaletteModes[:], rest[16:20])
	l.Status = rest[20]
	return true
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
