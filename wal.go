// Package wal writes and reads block framed write-ahead logs.
//
// A log is a sequence of 32KiB blocks holding physical records, each made of
// a 7 byte header (masked crc32c, length, type) and a payload. Records that
// do not fit in a block are split into FIRST, MIDDLE and LAST fragments.
// Every physical record is flushed as soon as it is written.
package wal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/kezhuw/wal/internal/compress"
	"github.com/kezhuw/wal/internal/errors"
	"github.com/kezhuw/wal/internal/file"
	"github.com/kezhuw/wal/internal/log"
	"github.com/kezhuw/wal/internal/options"
)

// Writer appends records to one log file. It holds an exclusive lock on
// the log until closed. Appends through one Writer are serialized.
type Writer struct {
	mu     sync.Mutex
	name   string
	opts   *options.Options
	lock   io.Closer
	file   file.WritableFile
	log    *log.Writer
	closed bool
}

// Create creates an empty log named name, discarding any existing content.
// Missing parent directories are created.
func Create(name string, opts *Options) (*Writer, error) {
	iopts := convertOptions(opts)
	if iopts.ErrorIfExists && iopts.FileSystem.Exists(name) {
		return nil, ErrLogExists
	}
	return openWriter(name, iopts, true)
}

// Open opens log named name for appending. Framing resumes after the
// existing content of the file.
func Open(name string, opts *Options) (*Writer, error) {
	iopts := convertOptions(opts)
	switch exists := iopts.FileSystem.Exists(name); {
	case exists && iopts.ErrorIfExists:
		return nil, ErrLogExists
	case !exists && !iopts.CreateIfMissing:
		return nil, ErrLogMissing
	}
	return openWriter(name, iopts, false)
}

func openWriter(name string, opts *options.Options, truncate bool) (_ *Writer, err error) {
	fs := opts.FileSystem
	if err := fs.MkdirAll(filepath.Dir(name)); err != nil {
		return nil, err
	}
	lock, err := fs.Lock(name + ".lock")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			lock.Close()
		}
	}()

	f, err := file.NewWritableFile(fs, name, truncate)
	if err != nil {
		return nil, err
	}
	var size int64
	if !truncate {
		if size, err = fs.Size(name); err != nil {
			f.Close()
			return nil, err
		}
	}
	opts.Logger.Infof("wal: opened log %s at offset %d", name, size)
	return &Writer{
		name: name,
		opts: opts,
		lock: lock,
		file: f,
		log:  log.NewWriterWithLength(f, size),
	}, nil
}

// Name returns the file name of the log.
func (w *Writer) Name() string {
	return w.name
}

// Append appends record to the log. Zero length records are allowed.
//
// On error, the record may be partially or fully absent from the log. The
// writer stays usable, later records are framed after the failed one.
func (w *Writer) Append(record []byte, opts *WriteOptions) error {
	wopts := convertWriteOptions(opts)
	b, err := compress.Encode(w.opts.Compression, nil, record)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	offset := w.log.Offset()
	if err := w.log.AddRecord(b); err != nil {
		w.opts.Logger.Errorf("wal: fail to append record at offset %d to %s: %s", offset, w.name, err)
		return fmt.Errorf("wal: append record to %s: %w", w.name, err)
	}
	if wopts.Sync {
		return w.sync()
	}
	return nil
}

func (w *Writer) sync() error {
	if err := w.file.Sync(); err != nil {
		w.opts.Logger.Errorf("wal: fail to sync %s: %s", w.name, err)
		return fmt.Errorf("wal: sync %s: %w", w.name, err)
	}
	return nil
}

// Sync synchronizes appended records to underlying storage.
func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	return w.sync()
}

// Size returns the size of the log in bytes, including bytes of failed
// appends.
func (w *Writer) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.log.Offset()
}

// Close closes the log file and releases the lock on it. All operations
// after this call will get error ErrClosed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	err := w.file.Close()
	if err1 := w.lock.Close(); err == nil {
		err = err1
	}
	w.opts.Logger.Infof("wal: closed log %s at offset %d", w.name, w.log.Offset())
	return err
}

// Reader reads records from a log file.
type Reader struct {
	name   string
	opts   *options.Options
	file   file.File
	log    *log.Reader
	closed bool
}

// OpenReader opens log named name for reading from its start.
func OpenReader(name string, opts *Options) (*Reader, error) {
	iopts := convertOptions(opts)
	if !iopts.FileSystem.Exists(name) {
		return nil, ErrLogMissing
	}
	f, err := iopts.FileSystem.Open(name, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	r := &Reader{name: name, opts: iopts, file: f}
	r.log = log.NewReader(f, r.report)
	return r, nil
}

func (r *Reader) report(dropped int, reason error) {
	r.opts.Logger.Warnf("wal: dropped %d bytes from %s after offset %d: %s", dropped, r.name, r.log.Offset(), reason)
}

// Next returns next record in the log. It returns io.EOF after the last
// record. Damaged records are reported as *CorruptionError, reading may
// continue after them.
func (r *Reader) Next() ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	offset := r.log.Offset()
	b, err := r.log.ReadRecord(nil)
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case err == log.ErrIncompleteRecord, errors.IsCorrupt(err):
		r.opts.Logger.Warnf("wal: corrupt record in %s at offset %d: %s", r.name, offset, err)
		return nil, errors.NewCorruption(r.name, "record", offset, err)
	case err != nil:
		return nil, err
	}
	record, err := compress.Decode(r.opts.Compression, nil, b)
	if err != nil {
		return nil, errors.NewCorruption(r.name, "compressed record", offset, err)
	}
	return record, nil
}

// Close closes the log file.
func (r *Reader) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	return r.file.Close()
}
