package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLogExists  = errors.New("wal: log exists")
	ErrLogMissing = errors.New("wal: missing log")
	ErrClosed     = errors.New("wal: log closed")
)

type CorruptionError struct {
	Err      error
	Offset   int64
	Category string
	File     string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("wal: corrupt %s in file %s at %d: %s", e.Category, e.File, e.Offset, e.Err)
}

func (e *CorruptionError) Unwrap() error {
	return e.Err
}

func NewCorruption(file string, category string, offset int64, err error) error {
	return &CorruptionError{Err: err, Offset: offset, Category: category, File: file}
}

func IsCorrupt(err error) bool {
	if err == nil {
		return false
	}
	var corruption *CorruptionError
	if errors.As(err, &corruption) {
		return true
	}
	return strings.HasPrefix(err.Error(), "wal: corrupt ")
}
