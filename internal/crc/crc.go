// Package crc computes masked CRC-32 checksum using Castagnoli's polynomial.
package crc

import (
	"hash/crc32"
	"strconv"
)

const maskDelta = 0xa282ead8

var table = crc32.MakeTable(crc32.Castagnoli)

// CRC is a CRC-32 checksum computed using Castagnoli's polynomial.
type CRC struct {
	// Saved as a field to avoid accidentally storing an unmasked value.
	checksum uint32
}

// New computes checksum using given bytes.
func New(b []byte) CRC {
	return CRC{crc32.Checksum(b, table)}
}

// Update extends c with given bytes, as if they were appended to bytes
// that produced c.
func Update(c CRC, b []byte) CRC {
	return CRC{crc32.Update(c.checksum, table, b)}
}

// Raw returns the unmasked checksum value.
func (c CRC) Raw() uint32 {
	return c.checksum
}

// Value returns a masked checksum value suitable for storage.
//
// Computing the checksum of a string that contains embedded checksums
// is problematic, so stored checksums are rotated and offset.
func (c CRC) Value() uint32 {
	return (c.checksum>>15 | c.checksum<<17) + maskDelta
}

// Unmask recovers the raw checksum from a value returned by Value.
func Unmask(masked uint32) uint32 {
	rot := masked - maskDelta
	return rot>>17 | rot<<15
}

// String implements fmt.Stringer.
func (c CRC) String() string {
	return strconv.FormatUint(uint64(c.Value()), 10)
}
