package hexbin

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/golang/glog"
	"github.com/marcinbor85/gohex"
)

// ParseIntelHex parses well-formed Intel HEX and returns its data segments
// in address order.
func ParseIntelHex(input []byte) ([]gohex.DataSegment, error) {
	mem, err := parseIntelHex(input)
	if err != nil {
		return nil, err
	}
	return mem.GetDataSegments(), nil
}

func parseIntelHex(input []byte) (*gohex.Memory, error) {
	// gohex reads lines without trimming carriage returns.
	input = bytes.ReplaceAll(input, []byte("\r\n"), []byte("\n"))
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(bytes.NewReader(input)); err != nil {
		return nil, &MalformedRecordError{Err: err}
	}
	return mem, nil
}

func convertStrict(w io.Writer, input []byte, size int, cfg Config, sum *Summary) error {
	// gohex renders with 32-bit sizes.
	if uint64(size) > math.MaxUint32 {
		return fmt.Errorf("%w: strict mode images are limited to %d bytes", ErrInvalidProgramSize, uint64(math.MaxUint32))
	}
	mem, err := parseIntelHex(input)
	if err != nil {
		return err
	}
	for _, s := range SplitRecords(input) {
		if _, ok := ParseRecord(s); ok {
			sum.Records++
		}
	}

	var end int
	for _, segment := range mem.GetDataSegments() {
		start := int(segment.Address)
		stop := start + len(segment.Data)
		glog.V(2).Infof("segment 0x%08X: %d bytes", segment.Address, len(segment.Data))
		if stop > end {
			end = stop
		}
		sum.DataBytes += overlap(start, stop, 0, size)
	}
	if end >= size {
		sum.Truncated = true
		end = size
	}
	sum.GapBytes = end - sum.DataBytes
	sum.FillBytes = size - end

	b := mem.ToBinary(0, uint32(size), cfg.FillByte)
	if _, err := w.Write(b); err != nil {
		return &OutputWriteError{Err: err}
	}
	if cfg.Progress != nil {
		cfg.Progress(Progress{Record: sum.Records, Written: size, Total: size})
	}
	return nil
}

// overlap returns the length of the intersection of [a0,a1) and [b0,b1).
func overlap(a0, a1, b0, b1 int) int {
	lo, hi := max(a0, b0), min(a1, b1)
	if hi < lo {
		return 0
	}
	return hi - lo
}
