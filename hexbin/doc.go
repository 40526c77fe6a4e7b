// Package hexbin converts firmware in the colon-delimited Intel HEX record
// format into a fixed-size raw binary image for device programming.
//
// The default conversion is a single left-to-right pass over the records.
// Only the byte count, address and data fields are interpreted; the record
// type is decoded for diagnostics and the checksum is ignored. Fields are
// decoded leniently: characters that are not hex digits are skipped and a
// field cut off by the end of the record decodes from what is left. A
// malformed record therefore never aborts the run.
//
//	img, err := hexbin.HexToBinary(hexText, 0x7000)
//
// Gaps between records and the space after the last one are padded with
// 0xFF, and the image is cut at exactly the requested size, possibly in the
// middle of a record.
//
// WithStrict switches to a validating parser that checks record checksums,
// requires the end of file record and honours extended linear addresses.
package hexbin
