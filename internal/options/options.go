package options

import (
	"github.com/kezhuw/wal/internal/compress"
	"github.com/kezhuw/wal/internal/file"
	"github.com/kezhuw/wal/internal/logger"
)

const DefaultCompression = compress.NoCompression

type Options struct {
	Compression compress.Type
	Logger      logger.LogCloser
	FileSystem  file.FileSystem

	CreateIfMissing bool
	ErrorIfExists   bool
}

type WriteOptions struct {
	Sync bool
}

var DefaultOptions = Options{
	Compression: DefaultCompression,
	Logger:      logger.Discard,
	FileSystem:  file.DefaultFileSystem,
}

var DefaultWriteOptions = WriteOptions{}
