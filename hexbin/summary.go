package hexbin

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"os"
	"path/filepath"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var errDigestMismatch = errors.New("image digest mismatch")

// Summary describes a finished conversion.
type Summary struct {
	ProgramSize int
	Records     int
	// DataBytes were taken from records
	DataBytes int
	// GapBytes padded address gaps between records
	GapBytes int
	// FillBytes padded the space after the last record
	FillBytes int
	// Truncated is set when the size cap ended the conversion
	Truncated bool
	CRC32     uint32
	SHA256    []byte
}

func (s *Summary) String() string {
	str := fmt.Sprintf("%d bytes: %d records, %d data, %d gap, %d fill, crc32 %08x",
		s.ProgramSize, s.Records, s.DataBytes, s.GapBytes, s.FillBytes, s.CRC32)
	if s.Truncated {
		str += " (truncated)"
	}
	return str
}

func (s *Summary) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"programSize": s.ProgramSize,
		"records":     s.Records,
		"dataBytes":   s.DataBytes,
		"gapBytes":    s.GapBytes,
		"fillBytes":   s.FillBytes,
		"truncated":   s.Truncated,
		"crc32":       fmt.Sprintf("%08x", s.CRC32),
		"sha256":      hex.EncodeToString(s.SHA256),
	})
}

// MarshalJSON encodes the summary as a google.protobuf.Struct in protobuf JSON.
func (s *Summary) MarshalJSON() ([]byte, error) {
	st, err := s.toStruct()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(st)
}

// WriteSummary stores the summary at name. A .json name gets protobuf JSON,
// anything else the protobuf wire format of a google.protobuf.Struct.
func (s *Summary) WriteSummary(name string) error {
	st, err := s.toStruct()
	if err != nil {
		return err
	}
	var b []byte
	if filepath.Ext(name) == ".json" {
		b, err = protojson.MarshalOptions{Multiline: true}.Marshal(st)
	} else {
		b, err = proto.Marshal(st)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(name, b, 0666)
}

// ReadSummary loads a summary stored by WriteSummary.
func ReadSummary(name string) (*Summary, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var st structpb.Struct
	if filepath.Ext(name) == ".json" {
		err = protojson.Unmarshal(b, &st)
	} else {
		err = proto.Unmarshal(b, &st)
	}
	if err != nil {
		return nil, err
	}
	return summaryFromStruct(&st)
}

func summaryFromStruct(st *structpb.Struct) (*Summary, error) {
	f := st.GetFields()
	num := func(k string) int { return int(f[k].GetNumberValue()) }
	s := &Summary{
		ProgramSize: num("programSize"),
		Records:     num("records"),
		DataBytes:   num("dataBytes"),
		GapBytes:    num("gapBytes"),
		FillBytes:   num("fillBytes"),
		Truncated:   f["truncated"].GetBoolValue(),
	}
	crc, err := strconv.ParseUint(f["crc32"].GetStringValue(), 16, 32)
	if err != nil {
		return nil, fmt.Errorf("crc32: %w", err)
	}
	s.CRC32 = uint32(crc)
	sha, err := hex.DecodeString(f["sha256"].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("sha256: %w", err)
	}
	s.SHA256 = sha
	return s, nil
}

// Verify checks that b is the image the summary was produced for.
func (s *Summary) Verify(b []byte) error {
	if len(b) != s.ProgramSize {
		return fmt.Errorf("image is %d bytes, want %d", len(b), s.ProgramSize)
	}
	if crc32.ChecksumIEEE(b) != s.CRC32 || !bytes.Equal(sha256Sum(b), s.SHA256) {
		return errDigestMismatch
	}
	return nil
}

// VerifyFile reads the image at name and checks it against the summary.
func (s *Summary) VerifyFile(name string) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return &InputReadError{Path: name, Err: err}
	}
	return s.Verify(b)
}

func sha256Sum(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

// digest hashes the image as it is written.
type digest struct {
	crc hash.Hash32
	sha hash.Hash
}

func newDigest() *digest {
	return &digest{crc: crc32.NewIEEE(), sha: sha256.New()}
}

func (d *digest) Write(p []byte) (int, error) {
	d.crc.Write(p)
	d.sha.Write(p)
	return len(p), nil
}

func (d *digest) fill(s *Summary) {
	s.CRC32 = d.crc.Sum32()
	s.SHA256 = d.sha.Sum(nil)
}
