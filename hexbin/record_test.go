package hexbin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHexValue(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"00", 0},
		{"FF", 0xFF},
		{"ff", 0xFF},
		{"aB", 0xAB},
		{"1234", 0x1234},
		{"1G", 0x1},
		{"zz", 0},
		{"0x1F", 0x1F},
		{"\r\n", 0},
	}
	for _, tt := range tests {
		if got := hexValue(tt.in); got != tt.want {
			t.Errorf("hexValue(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestField(t *testing.T) {
	tests := []struct {
		s      string
		off, n int
		want   string
	}{
		{"0123456789", 2, 4, "2345"},
		{"0123456789", 8, 4, "89"},
		{"0123456789", 10, 2, ""},
		{"01", 8, 2, ""},
	}
	for _, tt := range tests {
		if got := field(tt.s, tt.off, tt.n); got != tt.want {
			t.Errorf("field(%q, %d, %d) = %q, want %q", tt.s, tt.off, tt.n, got, tt.want)
		}
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Record
		ok   bool
	}{
		{"empty", "", Record{}, false},
		{"two chars", "02", Record{}, false},
		{
			name: "data",
			in:   "02000000AABB00\n",
			want: Record{ByteCount: 2, Address: 0, Type: 0, Data: []byte{0xAA, 0xBB}},
			ok:   true,
		},
		{
			name: "address and type",
			in:   "0112340155EE",
			want: Record{ByteCount: 1, Address: 0x1234, Type: 1, Data: []byte{0x55}},
			ok:   true,
		},
		{
			name: "eof record",
			in:   "00000001FF\r\n",
			want: Record{ByteCount: 0, Address: 0, Type: 1, Data: []byte{}},
			ok:   true,
		},
		{
			name: "missing data decodes as zero",
			in:   "04000000AB",
			want: Record{ByteCount: 4, Data: []byte{0xAB, 0, 0, 0}},
			ok:   true,
		},
		{
			name: "non hex characters skipped",
			in:   "02000000zA1B",
			want: Record{ByteCount: 2, Data: []byte{0x0A, 0x1B}},
			ok:   true,
		},
		{
			name: "three chars",
			in:   "01\n",
			want: Record{ByteCount: 1, Data: []byte{0}},
			ok:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRecord(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseRecord(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRecord(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestRecordEnd(t *testing.T) {
	r := Record{ByteCount: 0x10, Address: 0xFFF8}
	if got := r.End(); got != 0x10008 {
		t.Errorf("End() = %#x, want 0x10008", got)
	}
}

func TestSplitRecords(t *testing.T) {
	got := SplitRecords([]byte(":0100000011EE\n:00000001FF\n"))
	want := []string{"", "0100000011EE\n", "00000001FF\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitRecords mismatch (-want +got):\n%s", diff)
	}
}
