package hexbin

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProgramSize = errors.New("invalid program size")
	ErrUnknownDevice      = errors.New("device is not registered")
)

// UsageError reports bad command-line input.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("usage: %s: %v", e.Message, e.Err)
	}
	return "usage: " + e.Message
}

func (e *UsageError) Unwrap() error { return e.Err }

// InputReadError indicates the hex file could not be read.
type InputReadError struct {
	Path string
	Err  error
}

func (e *InputReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *InputReadError) Unwrap() error { return e.Err }

// OutputWriteError indicates the binary image could not be created or written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write output: %v", e.Err)
	}
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// MalformedRecordError is returned by strict conversions only.
type MalformedRecordError struct {
	Err error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: %v", e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// OverlapError indicates a record starting below the write cursor.
type OverlapError struct {
	Record  int
	Address int
	Cursor  int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("record %d at 0x%04X overlaps data already written up to 0x%04X",
		e.Record, e.Address, e.Cursor)
}

// ProgramSizeError indicates an image that does not fit the target's
// application area.
type ProgramSizeError struct {
	Device  string
	Size    int
	AppArea uint32
}

func (e *ProgramSizeError) Error() string {
	return fmt.Sprintf("program size %d exceeds the %d byte application area of %s",
		e.Size, e.AppArea, e.Device)
}
