package errors_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	werrors "github.com/kezhuw/wal/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsCorrupt(t *testing.T) {
	cause := errors.New("wal: corrupt log record: mismatch checksum")
	err := werrors.NewCorruption("000001.log", "record", 32768, cause)
	assert.True(t, werrors.IsCorrupt(err))
	assert.True(t, werrors.IsCorrupt(fmt.Errorf("read: %w", err)))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "wal: corrupt record in file 000001.log at 32768: wal: corrupt log record: mismatch checksum", err.Error())

	assert.True(t, werrors.IsCorrupt(cause))
	assert.False(t, werrors.IsCorrupt(io.EOF))
	assert.False(t, werrors.IsCorrupt(nil))
	assert.False(t, werrors.IsCorrupt(werrors.ErrClosed))
}
