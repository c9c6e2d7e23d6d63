package compress_test

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/kezhuw/wal/internal/compress"
	"github.com/stretchr/testify/require"
)

func randomBuffer(size int) []byte {
	buf := make([]byte, size)
	rand.Read(buf)
	return buf
}

func TestSnappyCompression(t *testing.T) {
	for _, size := range []int{0, 1, 16, 1024, 32 * 1024, 128 * 1024, 1024 * 1024} {
		buf := randomBuffer(size)
		compressed, err := compress.Encode(compress.SnappyCompression, nil, buf)
		require.NoError(t, err, "size %d", size)
		decompressed, err := compress.Decode(compress.SnappyCompression, nil, compressed)
		require.NoError(t, err, "size %d", size)
		require.True(t, bytes.Equal(buf, decompressed), "size %d", size)
	}
}

func TestSnappyShrinksRepetitiveRecords(t *testing.T) {
	buf := bytes.Repeat([]byte("put key value;"), 4096)
	compressed, err := compress.Encode(compress.SnappyCompression, nil, buf)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(buf)/4)
}

func TestNoCompression(t *testing.T) {
	buf := []byte("raw")
	encoded, err := compress.Encode(compress.NoCompression, nil, buf)
	require.NoError(t, err)
	require.Equal(t, buf, encoded)
	decoded, err := compress.Decode(compress.NoCompression, nil, encoded)
	require.NoError(t, err)
	require.Equal(t, buf, decoded)
}

var invalidCompression compress.Type = math.MinInt32

func TestUnsupportedCompression(t *testing.T) {
	_, err := compress.Encode(invalidCompression, nil, nil)
	require.Equal(t, compress.ErrUnsupportedCompression, err)
	_, err = compress.Decode(invalidCompression, nil, nil)
	require.Equal(t, compress.ErrUnsupportedCompression, err)
}
