package log

import (
	"fmt"

	"github.com/kezhuw/wal/internal/crc"
)

// Dest is the append-only sink a Writer emits records to. Appended bytes
// are assumed to land in order, but are not necessarily durable until Flush
// returns.
type Dest interface {
	Append(b []byte) error
	Flush() error
}

// Writer frames logical records into blocks of physical records.
//
// A Writer is not safe for concurrent use. It never closes dest.
type Writer struct {
	dest        Dest
	offset      int64
	blockOffset int
	head        header
}

// NewWriter creates a writer for a new, empty log.
func NewWriter(dest Dest) *Writer {
	return &Writer{dest: dest}
}

// NewWriterWithLength creates a writer appending to a log which already
// holds length bytes. Framing resumes at length modulo BlockSize.
func NewWriterWithLength(dest Dest, length int64) *Writer {
	return &Writer{
		dest:        dest,
		offset:      length,
		blockOffset: int(length % BlockSize),
	}
}

// BlockOffset returns the write position within current block.
func (w *Writer) BlockOffset() int {
	return w.blockOffset
}

// Offset returns the number of bytes the log holds, counting bytes of
// failed appends.
func (w *Writer) Offset() int64 {
	return w.offset
}

// AddRecord appends b as one logical record. An empty b still produces one
// zero length Full record.
//
// The first failure stops emission. Fragments written before the failure
// remain in dest. A failure writing trailer padding of a previous block is
// returned as the error of this record.
func (w *Writer) AddRecord(b []byte) error {
	first := true
	for {
		available, err := w.startFragment()
		if err != nil {
			return err
		}
		length := len(b)
		if length > available {
			length = available
		}
		last := length == len(b)
		if err := w.emitPhysicalRecord(recordType(first, last), b[:length]); err != nil {
			return err
		}
		b = b[length:]
		first = false
		if last {
			return nil
		}
	}
}

// startFragment switches to a new block if current one cannot hold a
// header, and returns payload capacity left in current block.
func (w *Writer) startFragment() (int, error) {
	leftover := BlockSize - w.blockOffset
	if leftover < HeaderSize {
		w.blockOffset = 0
		if leftover != 0 {
			w.offset += int64(leftover)
			if err := w.dest.Append(trailer[:leftover]); err != nil {
				return 0, err
			}
		}
	}
	available := BlockSize - w.blockOffset - HeaderSize
	if available < 0 {
		panic(fmt.Sprintf("wal: block offset %d leaves no room for a record header", w.blockOffset))
	}
	return available, nil
}

func (w *Writer) emitPhysicalRecord(typ RecordType, b []byte) error {
	length := len(b)
	switch {
	case length > 0xffff:
		panic(fmt.Sprintf("wal: fragment length %d overflows two bytes", length))
	case w.blockOffset+HeaderSize+length > BlockSize:
		panic(fmt.Sprintf("wal: fragment of %d bytes at block offset %d crosses block boundary", length, w.blockOffset))
	}

	sum := crc.Update(typeChecksums[typ], b).Value()
	w.head.encode(typ, length, sum)

	err := w.dest.Append(w.head[:])
	if err == nil {
		err = w.dest.Append(b)
		if err == nil {
			err = w.dest.Flush()
		}
	}
	// Space is consumed whether or not the write made it, a partially
	// written block cannot be rewound here.
	w.blockOffset += HeaderSize + length
	w.offset += int64(HeaderSize + length)
	return err
}
