package file

import (
	"errors"
	"io"
	"os"

	"github.com/gofrs/flock"
)

// WritableFileBufferSize is the number of appended bytes a WritableFile
// buffers before writing them to the OS.
const WritableFileBufferSize = 64 * 1024

type Reader interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

type ReadCloser interface {
	Reader
	io.Closer
}

type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	io.ReaderAt
	Truncate(size int64) error
	Sync() error
}

// WritableFile is an append only file. Appended bytes reach the OS in order
// on Flush, and stable storage on Sync.
type WritableFile interface {
	Append(b []byte) error
	Flush() error
	Sync() error
	Close() error
}

// FileSystem defines methods for hierarchical file storage.
type FileSystem interface {
	// Open opens a file using specified flag.
	Open(name string, flag int) (File, error)

	// Lock locks a file for exclusive usage. If the file is locked by
	// someone else, failed with an error instead of blocking.
	Lock(name string) (io.Closer, error)

	// Exists returns true if the named file exists.
	Exists(name string) bool

	// Size returns size of the named file.
	Size(name string) (int64, error)

	// MkdirAll creates a directory and all necessary parents.
	MkdirAll(path string) error
}

// ErrLocked is returned by FileSystem.Lock if the file is locked by others.
var ErrLocked = errors.New("wal: file locked by another writer")

// NewWritableFile opens name for appending through fs, creating it if
// missing. If truncate is true, existing content is discarded.
func NewWritableFile(fs FileSystem, name string, truncate bool) (WritableFile, error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if truncate {
		flag |= os.O_TRUNC
	}
	f, err := fs.Open(name, flag)
	if err != nil {
		return nil, err
	}
	return &writableFile{f: f, buf: make([]byte, 0, WritableFileBufferSize)}, nil
}

// writableFile drops buffered bytes once writing them fails, so one failure
// does not poison later appends.
type writableFile struct {
	f   File
	buf []byte
}

func (f *writableFile) Append(b []byte) error {
	if len(f.buf)+len(b) > cap(f.buf) {
		if err := f.Flush(); err != nil {
			return err
		}
		if len(b) > cap(f.buf) {
			_, err := f.f.Write(b)
			return err
		}
	}
	f.buf = append(f.buf, b...)
	return nil
}

func (f *writableFile) Flush() error {
	if len(f.buf) == 0 {
		return nil
	}
	_, err := f.f.Write(f.buf)
	f.buf = f.buf[:0]
	return err
}

func (f *writableFile) Sync() error {
	if err := f.Flush(); err != nil {
		return err
	}
	return f.f.Sync()
}

func (f *writableFile) Close() error {
	err := f.Flush()
	if err1 := f.f.Close(); err == nil {
		err = err1
	}
	return err
}

type osFileSystem struct{}

func (osFileSystem) Open(name string, flag int) (File, error) {
	return os.OpenFile(name, flag, 0666)
}

type lockCloser struct {
	l *flock.Flock
}

func (l lockCloser) Close() error {
	return l.l.Unlock()
}

func (osFileSystem) Lock(name string) (io.Closer, error) {
	l := flock.New(name)
	ok, err := l.TryLock()
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return nil, ErrLocked
	}
	return lockCloser{l}, nil
}

func (osFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0740)
}

func (osFileSystem) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func (osFileSystem) Size(name string) (int64, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

var DefaultFileSystem FileSystem = osFileSystem{}
