package frontend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	core "example.com/h8-tiny/core_engine"
	"example.com/h8-tiny/core_engine/devices"
)

// The four LCD shades, white through black.
var lcdShades = [4]color.RGBA{
	{0xB8, 0xC8, 0xA0, 0xFF},
	{0x88, 0x98, 0x78, 0xFF},
	{0x50, 0x60, 0x48, 0xFF},
	{0x20, 0x28, 0x18, 0xFF},
}

// ebitenDisplay renders the LCD framebuffer into a window and maps keys
// onto the product's buttons: left/right arrows for the side buttons and
// enter or space for the main one.
type ebitenDisplay struct {
	cfg    Config
	screen *ebiten.Image
	pixels []byte
	shades []byte
	frames uint64
}

func (d *ebitenDisplay) Run() error {
	d.screen = ebiten.NewImage(devices.LCDWidth, devices.LCDHeight)
	d.pixels = make([]byte, devices.LCDWidth*devices.LCDHeight*4)
	d.shades = make([]byte, devices.LCDWidth*devices.LCDHeight)
	ebiten.SetWindowSize(devices.LCDWidth*d.cfg.Scale, devices.LCDHeight*d.cfg.Scale)
	ebiten.SetWindowTitle(d.cfg.Title)
	return ebiten.RunGame(d)
}

func (d *ebitenDisplay) Update() error {
	s := d.cfg.System
	d.pollButtons()

	// Keep the RTC registers tracking the host clock.
	if d.frames%60 == 0 {
		s.SetRTCCurrent(0)
	}
	d.frames++

	if s.Sleeping() {
		// Any button press wakes the core.
		if buttonsPressed() {
			s.Wake()
		}
		return nil
	}
	s.Run()
	if code := s.ErrorCode(); code != core.ErrNone {
		return fmt.Errorf("machine fault: %v at %s", code, s.ErrorLine())
	}
	return nil
}

func (d *ebitenDisplay) pollButtons() {
	var dev *devices.Device
	if dev = d.cfg.System.FindDevice(devices.Device3Button); dev == nil {
		dev = d.cfg.System.FindDevice(devices.Device1Button)
	}
	b := devices.Buttons(dev)
	if b == nil {
		return
	}
	b.Buttons[0] = ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeySpace)
	if b.Count == 3 {
		b.Buttons[1] = ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
		b.Buttons[2] = ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	}
}

func buttonsPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEnter) ||
		ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowRight)
}

func (d *ebitenDisplay) Draw(screen *ebiten.Image) {
	lcd := d.cfg.System.FindDevice(devices.DeviceLCD)
	if lcd == nil {
		screen.Fill(lcdShades[0])
		return
	}
	devices.LCDRender(lcd, d.shades)
	for i, shade := range d.shades {
		c := lcdShades[shade&3]
		d.pixels[i*4+0] = c.R
		d.pixels[i*4+1] = c.G
		d.pixels[i*4+2] = c.B
		d.pixels[i*4+3] = c.A
	}
	d.screen.WritePixels(d.pixels)

	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(d.screen, op)
}

func (d *ebitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return devices.LCDWidth, devices.LCDHeight
}
