package devices

import "bytes"

// LEDColor is the combined state of the two LED control pins.
type LEDColor int

const (
	LEDOff LEDColor = iota
	LEDRed
	LEDGreen
)

// LEDState holds the raw pin levels and the state derived from them.
type LEDState struct {
	On    bool
	Green bool
	State LEDColor
}

// NewLED constructs the bicolor LED.
func NewLED(cfg Config) *Device {
	cfg = cfg.fill()
	d := &Device{
		Type:  DeviceLED,
		Name:  "LED device",
		State: &LEDState{},
		logf:  cfg.Log,
	}
	d.Save = ledSave
	d.Load = ledLoad
	return d
}

func (l *LEDState) update() {
	switch {
	case !l.On:
		l.State = LEDOff
	case l.Green:
		l.State = LEDGreen
	default:
		l.State = LEDRed
	}
}

// LEDOnOut drives the enable pin.
func LEDOnOut(d *Device, level bool) {
	l := d.State.(*LEDState)
	l.On = level
	l.update()
}

// LEDColorOut drives the color pin: high is green, low is red.
func LEDColorOut(d *Device, level bool) {
	l := d.State.(*LEDState)
	l.Green = level
	l.update()
}

func ledSave(d *Device, w *bytes.Buffer) bool {
	l := d.State.(*LEDState)
	w.Write([]byte{boolByte(l.On), boolByte(l.Green)})
	return true
}

func ledLoad(d *Device, r *bytes.Reader) bool {
	l := d.State.(*LEDState)
	var raw [2]byte
	if _, err := r.Read(raw[:]); err != nil {
		return false
	}
	l.On = raw[0] != 0
	l.Green = raw[1] != 0
	l.update()
	return true
}
