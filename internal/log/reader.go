package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/kezhuw/wal/internal/crc"
)

var (
	ErrIncompleteRecord = errors.New("wal: incomplete log record")
	ErrMismatchChecksum = errors.New("wal: corrupt log record: mismatch checksum")
)

// Reporter is told about bytes dropped while resynchronizing after a
// partially written record.
type Reporter func(dropped int, reason error)

// Reader reads logical records written by Writer.
type Reader struct {
	r        io.Reader
	err      error
	reporter Reporter
	buf      [BlockSize]byte
	block    []byte
	offset   int64 // Points after last record read.
}

// NewReader creates a log reader to read from r. r must be in start of a
// block. reporter may be nil.
func NewReader(r io.Reader, reporter Reporter) *Reader {
	return &Reader{r: r, reporter: reporter}
}

// Offset returns an offset points after last successfully read record.
func (r *Reader) Offset() int64 {
	return r.offset
}

func (r *Reader) report(dropped int, reason error) {
	if r.reporter != nil && dropped > 0 {
		r.reporter(dropped, reason)
	}
}

// ReadRecord reads next logical record and appends it to b. It returns
// io.EOF if there are no more records.
//
// A record left open by a failed write is dropped once a later record
// starts. An open record at end of log yields ErrIncompleteRecord.
func (r *Reader) ReadRecord(b []byte) ([]byte, error) {
	start := len(b)
	block := r.block
	middle := false
	offset := r.offset
	for {
		if len(block) < HeaderSize {
			if r.err != nil {
				return b[:start], r.err
			}
			offset += int64(len(block))
			if !middle {
				r.offset = offset
			}
			block = r.readBlock()
			if len(block) < HeaderSize {
				if r.err == io.EOF && (len(block) != 0 || middle) {
					r.block = nil
					return b[:start], ErrIncompleteRecord
				}
				return b[:start], r.err
			}
		}

		var head header
		copy(head[:], block)
		length, typ := head.length(), head.recordType()
		if head == (header{}) {
			// Zero filled tail of a preallocated block.
			offset += int64(len(block))
			block = nil
			continue
		}
		span := HeaderSize + length
		if span > len(block) {
			if r.err == io.EOF {
				r.skipBlock(offset, block, start, b, nil)
				return b[:start], ErrIncompleteRecord
			}
			err := fmt.Errorf("wal: corrupt log record: length %d beyond block boundary", length)
			r.skipBlock(offset, block, start, b, err)
			return b[:start], err
		}

		sum := crc.New(block[HeaderSize-1 : span]).Value()
		if sum != head.checksum() {
			r.skipBlock(offset, block, start, b, ErrMismatchChecksum)
			return b[:start], ErrMismatchChecksum
		}

		switch typ {
		case FullType, FirstType:
			if middle {
				r.report(len(b)-start, fmt.Errorf("wal: %s record in middle of record", typ))
				b = b[:start]
			}
		case MiddleType, LastType:
			if !middle {
				// Tail of a record whose head was lost.
				r.report(span, fmt.Errorf("wal: %s record without preceding FIRST", typ))
				block = block[span:]
				offset += int64(span)
				r.block, r.offset = block, offset
				continue
			}
		default:
			block = block[span:]
			offset += int64(span)
			r.block, r.offset = block, offset
			return b[:start], fmt.Errorf("wal: corrupt log record: unknown record type %d", typ)
		}

		b = append(b, block[HeaderSize:span]...)
		block = block[span:]
		offset += int64(span)
		switch typ {
		case FullType, LastType:
			r.block = block
			r.offset = offset
			return b, nil
		}
		middle = true
	}
}

// skipBlock drops rest of current block, along with any partial record in
// b, after a corruption. A nil reason drops silently.
func (r *Reader) skipBlock(offset int64, block []byte, start int, b []byte, reason error) {
	r.block = nil
	r.offset = offset + int64(len(block))
	if reason != nil {
		r.report(len(b)-start+len(block), reason)
	}
}

func (r *Reader) readBlock() []byte {
	n, err := io.ReadFull(r.r, r.buf[:])
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		r.err = err
	}
	r.block = r.buf[:n]
	return r.block
}
