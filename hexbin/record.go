package hexbin

import "strings"

const (
	recordMark = ":"

	// Character offsets inside a record, counted after the colon.
	countOffset   = 0
	addressOffset = 2
	typeOffset    = 6
	dataOffset    = 8

	// Records of this length or shorter carry nothing usable.
	minRecordLen = 2
)

// Record is one colon-delimited unit of the input.
type Record struct {
	ByteCount int
	Address   int
	// Type is kept for diagnostics only, every record is treated as data.
	Type byte
	Data []byte
}

// End returns the offset just past the span the record claims.
func (r Record) End() int {
	return r.Address + r.ByteCount
}

// SplitRecords splits the input on the record mark. The first element holds
// whatever precedes the first colon and is normally empty.
func SplitRecords(input []byte) []string {
	return strings.Split(string(input), recordMark)
}

// ParseRecord decodes the text that follows a colon. It reports false for
// text too short to be a record. Decoding never fails: see hexValue.
func ParseRecord(s string) (Record, bool) {
	if len(s) <= minRecordLen {
		return Record{}, false
	}
	r := Record{
		ByteCount: int(hexValue(field(s, countOffset, 2))),
		Address:   int(hexValue(field(s, addressOffset, 4))),
		Type:      byte(hexValue(field(s, typeOffset, 2))),
	}
	r.Data = make([]byte, r.ByteCount)
	for i := range r.Data {
		r.Data[i] = byte(hexValue(field(s, dataOffset+2*i, 2)))
	}
	return r, true
}

// field returns up to n characters of s starting at off, clipped to the end
// of s.
func field(s string, off, n int) string {
	if off >= len(s) {
		return ""
	}
	if off+n > len(s) {
		return s[off:]
	}
	return s[off : off+n]
}

// hexValue decodes s leniently: characters that are not hex digits are
// skipped and the empty string is 0.
func hexValue(s string) uint32 {
	var v uint32
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			continue
		}
		v = v<<4 | uint32(d)
	}
	return v
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
