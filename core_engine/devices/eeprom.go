package devices

import (
	"bytes"
	"encoding/binary"
)

// Serial EEPROM command opcodes, first byte of every transaction.
const (
	eepromCmdWRSR  = 0x01 // Write status register
	eepromCmdWRITE = 0x02 // Write data, two address bytes then N data bytes
	eepromCmdREAD  = 0x03 // Read data, two address bytes then N dummy bytes
	eepromCmdWRDI  = 0x04 // Clear write-enable latch
	eepromCmdRDSR  = 0x05 // Read status register
	eepromCmdWREN  = 0x06 // Set write-enable latch
)

// Status register bits.
const (
	EEPROMStatusWIP  = 0x01 // Write in progress
	EEPROMStatusWEL  = 0x02 // Write-enable latch
	EEPROMStatusBP0  = 0x04 // Block protect 0
	EEPROMStatusBP1  = 0x08 // Block protect 1
	EEPROMStatusSRWD = 0x80 // Status register write disable
)

// EEPROMState is the model state of a serial EEPROM clocked by SSU bytes.
type EEPROMState struct {
	Data []byte

	// Running transaction state. Pos counts the bytes of the current
	// command since chip select was asserted; the single-byte WREN and WRDI
	// commands leave it at zero. Addr is the current data address and
	// post-increments on every data byte of a READ or WRITE sequence.
	Opcode byte
	Addr   uint16
	Pos    uint32
	Status byte
}

// NewEEPROM constructs an EEPROM device of the given capacity. Capacity
// must be a power of two; addresses wrap at the device size.
func NewEEPROM(cfg Config, size int, id ID) *Device {
	cfg = cfg.fill()
	name := "8KB EEPROM device"
	if id == DeviceEEPROM64K {
		name = "64KB EEPROM device"
	}
	d := &Device{
		Type:  id,
		Name:  name,
		State: &EEPROMState{Data: cfg.Alloc.Alloc(size, false)},
		logf:  cfg.Log,
	}
	d.SSUIn = eepromSSUIn
	d.SSUOut = eepromSSUOut
	d.Save = eepromSave
	d.Load = eepromLoad
	return d
}

// EEPROMSelect is the chip-select pin callback. The select line is active
// low; deasserting it aborts any in-progress command.
func EEPROMSelect(d *Device, level bool) {
	e := d.State.(*EEPROMState)
	d.Selected = !level
	if !d.Selected {
		e.Pos = 0
		e.Addr = 0
	}
}

func eepromSSUIn(d *Device, b *byte) bool {
	e := d.State.(*EEPROMState)
	if !d.Selected {
		return false
	}
	switch e.Opcode {
	case eepromCmdREAD:
		if e.Pos < 3 {
			return false
		}
		*b = e.Data[int(e.Addr)&(len(e.Data)-1)]
		e.Addr++
		return true
	case eepromCmdRDSR:
		if e.Pos < 2 {
			return false
		}
		*b = e.Status
		return true
	}
	*b = 0
	return true
}

func eepromSSUOut(d *Device, b *byte, value byte) bool {
	e := d.State.(*EEPROMState)
	if !d.Selected {
		return false
	}
	if e.Pos == 0 {
		e.Opcode = value
		switch value {
		case eepromCmdWREN:
			// Single-byte command; the next byte starts a new one.
			e.Status |= EEPROMStatusWEL
			*b = value
			return true
		case eepromCmdWRDI:
			e.Status &^= EEPROMStatusWEL
			*b = value
			return true
		case eepromCmdWRSR, eepromCmdWRITE, eepromCmdREAD, eepromCmdRDSR:
		default:
			d.Logf(LogWarn, LogEEP, "unknown command %02X", value)
		}
		e.Pos++
		*b = value
		return true
	}

	switch e.Opcode {
	case eepromCmdWRSR:
		if e.Status&EEPROMStatusWEL != 0 {
			e.Status = value &^ EEPROMStatusWIP
		} else {
			d.Logf(LogWarn, LogEEP, "WRSR without write enable")
		}
	case eepromCmdWRITE:
		switch e.Pos {
		case 1:
			e.Addr = uint16(value) << 8
		case 2:
			e.Addr |= uint16(value)
		default:
			if e.Status&EEPROMStatusWEL != 0 {
				e.Data[int(e.Addr)&(len(e.Data)-1)] = value
			} else {
				d.Logf(LogWarn, LogEEP, "write to %04X without write enable", e.Addr)
			}
			e.Addr++
		}
	case eepromCmdREAD:
		switch e.Pos {
		case 1:
			e.Addr = uint16(value) << 8
		case 2:
			e.Addr |= uint16(value)
		}
		// Further bytes are don't-cares clocking data out.
	}
	e.Pos++
	*b = value
	return true
}

func eepromSave(d *Device, w *bytes.Buffer) bool {
	e := d.State.(*EEPROMState)
	w.Write(e.Data)
	w.WriteByte(e.Opcode)
	binary.Write(w, binary.BigEndian, e.Addr)
	binary.Write(w, binary.BigEndian, e.Pos)
	w.WriteByte(e.Status)
	return true
}

func eepromLoad(d *Device, r *bytes.Reader) bool {
	e := d.State.(*EEPROMState)
	if _, err := r.Read(e.Data); err != nil {
		return false
	}
	op, err := r.ReadByte()
	if err != nil {
		return false
	}
	e.Opcode = op
	if err := binary.Read(r, binary.BigEndian, &e.Addr); err != nil {
		return false
	}
	if err := binary.Read(r, binary.BigEndian, &e.Pos); err != nil {
		return false
	}
	st, err := r.ReadByte()
	if err != nil {
		return false
	}
	e.Status = st
	return true
}
