package hexbin

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/q0jt/go-hexbin/hexbin/config"
	"github.com/q0jt/go-hexbin/hexbin/config/device"
)

var testLayouts = &config.Layouts{
	Layouts: map[device.Device]*config.MemoryLayout{
		device.ATmega8:    {FlashSize: 0x2000, BootLoaderAddr: 0x1800, PageSize: 64},
		device.ATmega328P: {FlashSize: 0x8000, BootLoaderAddr: 0x7000, PageSize: 128},
	},
}

func TestFindLayout(t *testing.T) {
	dev, layout, err := findLayout(testLayouts, "atmega328p")
	if err != nil {
		t.Fatal(err)
	}
	if dev != device.ATmega328P || layout.BootLoaderAddr != 0x7000 {
		t.Errorf("findLayout = %v %+v", dev, layout)
	}
	if _, _, err := findLayout(testLayouts, "ATmega2560"); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("unknown device: err = %v, want ErrUnknownDevice", err)
	}
}

func TestCheckProgramSize(t *testing.T) {
	layout := testLayouts.Layouts[device.ATmega8]
	if err := CheckProgramSize(device.ATmega8, layout, 0x1800); err != nil {
		t.Errorf("full app area: %v", err)
	}
	err := CheckProgramSize(device.ATmega8, layout, 0x1801)
	var serr *ProgramSizeError
	if !errors.As(err, &serr) {
		t.Fatalf("oversized: err = %v, want *ProgramSizeError", err)
	}
	if serr.AppArea != 0x1800 || serr.Device != "ATmega8" {
		t.Errorf("ProgramSizeError = %+v", serr)
	}
	if err := CheckProgramSize(device.ATmega8, layout, 0); !errors.Is(err, ErrInvalidProgramSize) {
		t.Errorf("zero size: err = %v, want ErrInvalidProgramSize", err)
	}
	if got := ProgramSizeFor(layout); got != 0x1800 {
		t.Errorf("ProgramSizeFor = %#x, want 0x1800", got)
	}
}

func TestLookupLayout(t *testing.T) {
	if _, err := exec.LookPath("pkl"); err != nil {
		t.Skip("pkl not installed")
	}
	dev, layout, err := LookupLayout(context.Background(), "../pkl/config.pkl", "ATmega328P")
	if err != nil {
		t.Fatal(err)
	}
	if dev != device.ATmega328P || layout.AppAreaSize() != 0x7000 {
		t.Errorf("LookupLayout = %v %+v", dev, layout)
	}
}
