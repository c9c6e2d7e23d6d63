package crc_test

import (
	"testing"

	"github.com/kezhuw/wal/internal/crc"
	"github.com/stretchr/testify/require"
)

func TestStandardResults(t *testing.T) {
	// From rfc3720 section B.4.
	buf := make([]byte, 32)
	require.Equal(t, uint32(0x8a9136aa), crc.New(buf).Raw())

	for i := range buf {
		buf[i] = 0xff
	}
	require.Equal(t, uint32(0x62a8ab43), crc.New(buf).Raw())

	for i := range buf {
		buf[i] = byte(i)
	}
	require.Equal(t, uint32(0x46dd794e), crc.New(buf).Raw())

	for i := range buf {
		buf[i] = byte(31 - i)
	}
	require.Equal(t, uint32(0x113fdb5c), crc.New(buf).Raw())
}

func TestUpdate(t *testing.T) {
	require.Equal(t, crc.New([]byte("hello world")), crc.Update(crc.New([]byte("hello ")), []byte("world")))
}

func TestValuesDiffer(t *testing.T) {
	require.NotEqual(t, crc.New([]byte("a")), crc.New([]byte("foo")))
}

func TestMask(t *testing.T) {
	c := crc.New([]byte("foo"))
	require.NotEqual(t, c.Raw(), c.Value())
	require.Equal(t, c.Raw(), crc.Unmask(c.Value()))
}
