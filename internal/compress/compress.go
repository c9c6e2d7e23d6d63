// Package compress encodes whole records before they are framed into a log.
package compress

import (
	"errors"

	"github.com/golang/snappy"
)

type Type int

const (
	NoCompression     Type = 0
	SnappyCompression Type = 1
)

var ErrUnsupportedCompression = errors.New("wal: unsupported compression")

// Decode decodes src into dst. With NoCompression src is returned as is.
func Decode(typ Type, dst, src []byte) ([]byte, error) {
	switch typ {
	case NoCompression:
		return src, nil
	case SnappyCompression:
		return snappy.Decode(dst, src)
	default:
		return nil, ErrUnsupportedCompression
	}
}

// Encode encodes src into dst. With NoCompression src is returned as is.
func Encode(typ Type, dst, src []byte) ([]byte, error) {
	switch typ {
	case NoCompression:
		return src, nil
	case SnappyCompression:
		return snappy.Encode(dst, src), nil
	default:
		return nil, ErrUnsupportedCompression
	}
}
