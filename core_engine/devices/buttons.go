package devices

import "bytes"

// ButtonsState holds the host-injected button levels. A pressed button
// drives its pin high.
type ButtonsState struct {
	Buttons [3]bool
	Count   int
}

// NewButtons constructs a one- or three-button input device.
func NewButtons(cfg Config, count int) *Device {
	cfg = cfg.fill()
	id, name := Device1Button, "1-button input device"
	if count == 3 {
		id, name = Device3Button, "3-button input device"
	}
	d := &Device{
		Type:  id,
		Name:  name,
		State: &ButtonsState{Count: count},
		logf:  cfg.Log,
	}
	d.Save = buttonsSave
	d.Load = buttonsLoad
	return d
}

func ButtonIn0(d *Device) bool { return d.State.(*ButtonsState).Buttons[0] }
func ButtonIn1(d *Device) bool { return d.State.(*ButtonsState).Buttons[1] }
func ButtonIn2(d *Device) bool { return d.State.(*ButtonsState).Buttons[2] }

// Buttons exposes the mutable button state for host input injection.
func Buttons(d *Device) *ButtonsState {
	if d == nil {
		return nil
	}
	b, _ := d.State.(*ButtonsState)
	return b
}

func buttonsSave(d *Device, w *bytes.Buffer) bool {
	b := d.State.(*ButtonsState)
	w.Write([]byte{boolByte(b.Buttons[0]), boolByte(b.Buttons[1]), boolByte(b.Buttons[2])})
	return true
}

func buttonsLoad(d *Device, r *bytes.Reader) bool {
	b := d.State.(*ButtonsState)
	var raw [3]byte
	if _, err := r.Read(raw[:]); err != nil {
		return false
	}
	for i := range b.Buttons {
		b.Buttons[i] = raw[i] != 0
	}
	return true
}
