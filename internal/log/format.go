// Package log implements the block framed record log.
//
// A log is a sequence of 32KiB blocks, the tail of the file may be a partial
// block. Each block holds a sequence of physical records:
//
//	block  := record* trailer?
//	record :=
//	  checksum: uint32     // masked crc32c of type and data[]; little-endian
//	  length:   uint16     // little-endian
//	  type:     uint8      // one of Full, First, Middle, Last
//	  data:     uint8[length]
//
// A record never starts within the last six bytes of a block. Those bytes
// form the trailer, which consists of zero bytes and is skipped by readers.
package log

import (
	"encoding/binary"
	"strconv"

	"github.com/kezhuw/wal/internal/crc"
)

// RecordType tags the position of a physical record within its logical
// record.
type RecordType uint8

// Record types.
const (
	// zeroType is reserved for preallocated files.
	zeroType RecordType = 0

	FullType   RecordType = 1
	FirstType  RecordType = 2
	MiddleType RecordType = 3
	LastType   RecordType = 4

	MaxRecordType = LastType
)

const (
	BlockSize  = 32 * 1024 // 32KiB
	HeaderSize = 4 + 2 + 1 // checksum, length, type
)

// Valid reports whether t is one of the four fragment types.
func (t RecordType) Valid() bool {
	return t >= FullType && t <= MaxRecordType
}

func (t RecordType) String() string {
	switch t {
	case FullType:
		return "FULL"
	case FirstType:
		return "FIRST"
	case MiddleType:
		return "MIDDLE"
	case LastType:
		return "LAST"
	case zeroType:
		return "ZERO"
	}
	return "RecordType(" + strconv.Itoa(int(t)) + ")"
}

// recordType classifies a fragment by whether it opens and/or closes its
// logical record.
func recordType(first, last bool) RecordType {
	switch {
	case first && last:
		return FullType
	case first:
		return FirstType
	case last:
		return LastType
	default:
		return MiddleType
	}
}

type header [HeaderSize]byte

func (h *header) checksum() uint32 {
	return binary.LittleEndian.Uint32(h[:4])
}

func (h *header) length() int {
	return int(binary.LittleEndian.Uint16(h[4:6]))
}

func (h *header) recordType() RecordType {
	return RecordType(h[6])
}

func (h *header) encode(typ RecordType, length int, sum uint32) {
	binary.LittleEndian.PutUint32(h[:4], sum)
	binary.LittleEndian.PutUint16(h[4:6], uint16(length))
	h[6] = byte(typ)
}

// trailer holds zero bytes used to pad a block tail that cannot fit a header.
var trailer [HeaderSize - 1]byte

// typeChecksums caches the checksum of every type byte, so that emitting a
// fragment only extends it over the payload.
var typeChecksums [MaxRecordType + 1]crc.CRC

func init() {
	var buf [1]byte
	for i := range typeChecksums {
		buf[0] = byte(i)
		typeChecksums[i] = crc.New(buf[:])
	}
}
