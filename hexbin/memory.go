package hexbin

import (
	"context"
	"fmt"
	"strings"

	"github.com/q0jt/go-hexbin/hexbin/config"
	"github.com/q0jt/go-hexbin/hexbin/config/device"
)

// DefaultLayoutsPath is where the device table lives in a source checkout.
const DefaultLayoutsPath = "pkl/config.pkl"

func loadLayouts(ctx context.Context, path string) (*config.Layouts, error) {
	layouts, err := config.LoadFromPath(ctx, path)
	if err != nil {
		return nil, err
	}
	return layouts, nil
}

// LookupLayout evaluates the Pkl device table at path and returns the memory
// layout registered for name. Device names match case-insensitively.
func LookupLayout(ctx context.Context, path, name string) (device.Device, *config.MemoryLayout, error) {
	layouts, err := loadLayouts(ctx, path)
	if err != nil {
		return "", nil, err
	}
	return findLayout(layouts, name)
}

func findLayout(layouts *config.Layouts, name string) (device.Device, *config.MemoryLayout, error) {
	for dev, layout := range layouts.Layouts {
		if !strings.EqualFold(string(dev), name) {
			continue
		}
		return dev, layout, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
}

// CheckProgramSize reports whether an image of size bytes fits the
// application area of the device.
func CheckProgramSize(dev device.Device, layout *config.MemoryLayout, size int) error {
	if size <= 0 {
		return ErrInvalidProgramSize
	}
	if area := layout.AppAreaSize(); uint64(size) > uint64(area) {
		return &ProgramSizeError{Device: dev.String(), Size: size, AppArea: area}
	}
	return nil
}

// ProgramSizeFor returns the image size that fills the device's whole
// application area.
func ProgramSizeFor(layout *config.MemoryLayout) int {
	return int(layout.AppAreaSize())
}
