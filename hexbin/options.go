package hexbin

import (
	"fmt"
	"strings"
)

// FillByte pads every part of the image that no record writes.
const FillByte byte = 0xFF

// AddressSpace is the largest image the record pass can place: record
// addresses are 16 bits and extended address records are not interpreted.
// Strict mode has no such limit.
const AddressSpace = 0x10000

// OverlapPolicy decides what happens to a record whose address lies below
// the write cursor.
type OverlapPolicy int

const (
	// OverlapReject fails the conversion with an *OverlapError.
	OverlapReject OverlapPolicy = iota
	// OverlapAppend writes the record at the current output position and
	// moves the cursor back to its end, as makefirmware.php did.
	OverlapAppend
)

func (p OverlapPolicy) String() string {
	switch p {
	case OverlapReject:
		return "reject"
	case OverlapAppend:
		return "append"
	}
	return fmt.Sprintf("OverlapPolicy(%d)", int(p))
}

// ParseOverlapPolicy is the inverse of OverlapPolicy.String.
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch strings.ToLower(s) {
	case "reject":
		return OverlapReject, nil
	case "append":
		return OverlapAppend, nil
	}
	return 0, fmt.Errorf("unknown overlap policy %q", s)
}

// Progress is reported after each record.
type Progress struct {
	Record  int
	Written int
	Total   int
}

// ProgressCallback receives Progress updates.
type ProgressCallback func(Progress)

// Config holds the conversion settings.
type Config struct {
	// FillByte pads gaps and the tail of the image
	FillByte byte

	// Overlap decides how records below the cursor are handled
	Overlap OverlapPolicy

	// Strict parses the input as well-formed Intel HEX and fails on any
	// malformed record instead of decoding it best-effort
	Strict bool

	// Progress is called after each record (optional)
	Progress ProgressCallback
}

func defaultConfig() Config {
	return Config{
		FillByte: FillByte,
		Overlap:  OverlapReject,
	}
}

// Option is a functional option for configuring a conversion.
type Option func(*Config)

// WithFillByte sets the byte used for gaps and trailing space.
func WithFillByte(b byte) Option {
	return func(c *Config) {
		c.FillByte = b
	}
}

// WithOverlapPolicy sets how records below the cursor are handled.
func WithOverlapPolicy(p OverlapPolicy) Option {
	return func(c *Config) {
		c.Overlap = p
	}
}

// WithStrict enables strict Intel HEX parsing.
//
// In strict mode checksums are verified, an end of file record is required
// and extended linear address records are honoured.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.Strict = strict
	}
}

// WithProgress sets a callback invoked after every record.
func WithProgress(cb ProgressCallback) Option {
	return func(c *Config) {
		c.Progress = cb
	}
}

func newConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
