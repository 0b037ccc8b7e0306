package frontend

import (
	"fmt"
	"time"

	core "example.com/h8-tiny/core_engine"
)

// headlessDisplay paces the core at sixty frames per second without any
// window, for scripted runs and CI.
type headlessDisplay struct {
	cfg Config
}

func (d *headlessDisplay) Run() error {
	s := d.cfg.System
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for frame := 0; d.cfg.MaxFrames == 0 || frame < d.cfg.MaxFrames; frame++ {
		<-ticker.C
		if frame%60 == 0 {
			s.SetRTCCurrent(0)
		}
		if s.Sleeping() {
			continue
		}
		s.Run()
		if code := s.ErrorCode(); code != core.ErrNone {
			return fmt.Errorf("machine fault: %v at %s", code, s.ErrorLine())
		}
	}
	return nil
}
