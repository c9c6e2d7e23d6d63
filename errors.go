package wal

import (
	"github.com/kezhuw/wal/internal/errors"
	"github.com/kezhuw/wal/internal/file"
)

var (
	ErrLogExists  = errors.ErrLogExists
	ErrLogMissing = errors.ErrLogMissing
	ErrClosed     = errors.ErrClosed
	ErrLocked     = file.ErrLocked // log held by another Writer
)

// CorruptionError describes a damaged record found while reading a log.
type CorruptionError = errors.CorruptionError

// IsCorrupt returns a boolean indicating whether the error is a corruption error.
func IsCorrupt(err error) bool {
	return errors.IsCorrupt(err)
}
