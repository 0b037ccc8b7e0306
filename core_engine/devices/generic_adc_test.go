package devices_test

import (
	"testing"

	"example.com/h8-tiny/core_engine/devices"
)

func TestADCConstants(t *testing.T) {
	d := devices.NewBattery(devices.Config{Log: devices.NopLogger})
	if got := devices.ADCHalf(d); got != 0x03E0 {
		t.Errorf("half = %#x", got)
	}
	if got := devices.ADCMax(d); got != 0xFFC0 {
		t.Errorf("max = %#x", got)
	}
	if got := devices.ADCZero(d); got != 0 {
		t.Errorf("zero = %#x", got)
	}
}

func TestADCSetGet(t *testing.T) {
	d := devices.NewBattery(devices.Config{Log: devices.NopLogger})
	if got := devices.ADCGet(d); got != 0x0100 {
		t.Errorf("default battery level = %#x", got)
	}
	devices.ADCSet(d, 0x03C0)
	if got := devices.ADCGet(d); got != 0x03C0 {
		t.Errorf("after set = %#x", got)
	}
}

func TestADCFuzzIsDeterministic(t *testing.T) {
	a := devices.NewAccelerometer(devices.Config{Log: devices.NopLogger}, devices.DeviceAccelerometerX)
	b := devices.NewAccelerometer(devices.Config{Log: devices.NopLogger}, devices.DeviceAccelerometerX)

	for i := 0; i < 16; i++ {
		va, vb := devices.ADCFuzz(a), devices.ADCFuzz(b)
		if va != vb {
			t.Fatalf("step %d: %#x != %#x", i, va, vb)
		}
		if va&0x3F != 0 {
			t.Fatalf("fuzz value %#x not left-aligned to 10 bits", va)
		}
	}
}
