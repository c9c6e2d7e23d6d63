package wal

import (
	"github.com/kezhuw/wal/internal/compress"
	"github.com/kezhuw/wal/internal/file"
	"github.com/kezhuw/wal/internal/logger"
	"github.com/kezhuw/wal/internal/options"
)

// CompressionType defines compression methods applied to whole records
// before they are framed into the log.
type CompressionType int

const (
	DefaultCompression CompressionType = iota // Points to NoCompression
	NoCompression
	SnappyCompression
)

// Options contains options controlling how a log is opened, written and read.
type Options struct {
	// Compression type used to compress records. Readers must be opened
	// with the same compression as the writer.
	//
	// The default value points to NoCompression.
	Compression CompressionType

	// Logger specifys a place that internal progress/error information
	// is written to.
	//
	// The default value is DiscardLogger.
	Logger Logger

	// FileSystem defines a hierarchical file storage interface.
	//
	// The default file system is built around os package.
	FileSystem FileSystem

	// CreateIfMissing specifys whether Open creates the log if it does not
	// exist.
	//
	// The default value is false.
	CreateIfMissing bool

	// ErrorIfExists specifys whether to report ErrLogExists if the log
	// already exists.
	//
	// The default value is false.
	ErrorIfExists bool
}

func (opts *Options) getLogger() logger.LogCloser {
	if opts.Logger == nil {
		return logger.Discard
	}
	return logger.NopCloser(opts.Logger)
}

func (opts *Options) getFileSystem() file.FileSystem {
	if opts.FileSystem == nil {
		return file.DefaultFileSystem
	}
	if fs, ok := opts.FileSystem.(internalFileSystem); ok {
		return fs.FileSystem
	}
	return wrappedFileSystem{opts.FileSystem}
}

func (opts *Options) getCompression() compress.Type {
	switch opts.Compression {
	case NoCompression:
		return compress.NoCompression
	case SnappyCompression:
		return compress.SnappyCompression
	}
	return options.DefaultCompression
}

func convertOptions(opts *Options) *options.Options {
	if opts == nil {
		return &options.DefaultOptions
	}
	var iopts options.Options
	iopts.Compression = opts.getCompression()
	iopts.Logger = opts.getLogger()
	iopts.FileSystem = opts.getFileSystem()
	iopts.CreateIfMissing = opts.CreateIfMissing
	iopts.ErrorIfExists = opts.ErrorIfExists
	return &iopts
}

// WriteOptions contains options controlling Writer.Append.
type WriteOptions struct {
	// Sync specifys whether to synchronize the write from OS cache to
	// underlying storage before the append is considered complete.
	//
	// Every physical record is flushed to the OS as it is written, so
	// without Sync a process crash loses at most the record being
	// appended, but a machine crash may lose more.
	Sync bool
}

func convertWriteOptions(opts *WriteOptions) *options.WriteOptions {
	if opts == nil {
		return &options.DefaultWriteOptions
	}
	wopts := options.WriteOptions(*opts)
	return &wopts
}
