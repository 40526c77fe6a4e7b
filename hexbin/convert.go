package hexbin

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/golang/glog"
)

// errSizeReached stops a conversion once programSize bytes are out.
var errSizeReached = errors.New("program size reached")

type converter struct {
	cfg  Config
	w    *bufio.Writer
	size int

	// cursor is the next offset the records expect to be written.
	cursor  int
	written int
	sum     *Summary
}

// Convert writes a programSize byte image built from the hex input to w.
//
// Records are placed in input order. Address gaps and the space after the
// last record are padded with the fill byte. The conversion stops as soon as
// programSize bytes have been written, even in the middle of a record. The
// output is flushed on every return path. A zero programSize yields an
// empty image; a negative one is rejected.
func Convert(w io.Writer, input []byte, programSize int, opts ...Option) (*Summary, error) {
	if programSize < 0 {
		return nil, ErrInvalidProgramSize
	}
	cfg := newConfig(opts)
	d := newDigest()
	sum := &Summary{ProgramSize: programSize}
	if programSize == 0 {
		d.fill(sum)
		return sum, nil
	}
	bw := bufio.NewWriter(io.MultiWriter(w, d))

	var err error
	if cfg.Strict {
		err = convertStrict(bw, input, programSize, cfg, sum)
	} else {
		c := &converter{cfg: cfg, w: bw, size: programSize, sum: sum}
		err = c.run(SplitRecords(input))
	}
	if errors.Is(err, errSizeReached) {
		glog.V(1).Infof("output %d bytes, stopping", programSize)
		sum.Truncated = true
		err = nil
	}
	if ferr := bw.Flush(); ferr != nil && err == nil {
		err = &OutputWriteError{Err: ferr}
	}
	if err != nil {
		return nil, err
	}
	d.fill(sum)
	return sum, nil
}

// HexToBinary returns the programSize byte image built from the hex input.
func HexToBinary(input []byte, programSize int, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if programSize > 0 {
		buf.Grow(programSize)
	}
	if _, err := Convert(&buf, input, programSize, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertFile converts the hex file at inPath into a binary image at outPath.
// The output file is closed on every path; a failed close is reported when
// nothing failed before it.
func ConvertFile(inPath, outPath string, programSize int, opts ...Option) (sum *Summary, err error) {
	if programSize < 0 {
		return nil, ErrInvalidProgramSize
	}
	b, err := os.ReadFile(inPath)
	if err != nil {
		return nil, &InputReadError{Path: inPath, Err: err}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, &OutputWriteError{Path: outPath, Err: err}
	}
	defer func() {
		cerr := f.Close()
		if cerr != nil && err == nil {
			sum, err = nil, &OutputWriteError{Path: outPath, Err: cerr}
		}
	}()
	sum, err = Convert(f, b, programSize, opts...)
	var werr *OutputWriteError
	if errors.As(err, &werr) && werr.Path == "" {
		werr.Path = outPath
	}
	return sum, err
}

func (c *converter) run(records []string) error {
	n := 0
	for _, s := range records {
		rec, ok := ParseRecord(s)
		if !ok {
			continue
		}
		n++
		c.sum.Records++
		glog.V(2).Infof("record %d: %d bytes at 0x%04X type %02X, cursor 0x%04X",
			n, rec.ByteCount, rec.Address, rec.Type, c.cursor)
		if err := c.place(n, rec); err != nil {
			return err
		}
		if c.cfg.Progress != nil {
			c.cfg.Progress(Progress{Record: n, Written: c.written, Total: c.size})
		}
	}
	return c.fillTail()
}

func (c *converter) place(n int, rec Record) error {
	switch {
	case rec.Address > c.cursor:
		glog.V(1).Infof("filling %d bytes before 0x%04X", rec.Address-c.cursor, rec.Address)
		for c.cursor < rec.Address {
			c.cursor++
			if err := c.put(c.cfg.FillByte, &c.sum.GapBytes); err != nil {
				return err
			}
		}
	case rec.Address < c.cursor && c.cfg.Overlap == OverlapReject:
		if rec.ByteCount > 0 {
			return &OverlapError{Record: n, Address: rec.Address, Cursor: c.cursor}
		}
		// Nothing to place and the cursor must not move back.
		return nil
	}

	// The cursor covers the whole record even if the size cap cuts it short.
	c.cursor = rec.End()
	for _, b := range rec.Data {
		if err := c.put(b, &c.sum.DataBytes); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) fillTail() error {
	if c.written < c.size {
		glog.V(1).Infof("%d bytes written, %d remaining", c.written, c.size-c.written)
	}
	for c.written < c.size {
		err := c.put(c.cfg.FillByte, &c.sum.FillBytes)
		if err != nil && !errors.Is(err, errSizeReached) {
			return err
		}
	}
	return nil
}

// put writes one byte and counts it in n. It returns errSizeReached once
// the image is complete.
func (c *converter) put(b byte, n *int) error {
	if err := c.w.WriteByte(b); err != nil {
		return &OutputWriteError{Err: err}
	}
	c.written++
	*n++
	if c.written >= c.size {
		return errSizeReached
	}
	return nil
}
