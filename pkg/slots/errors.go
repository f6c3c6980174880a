package slots

import (
	"github.com/pkg/errors"
)

var (
	ErrNotPlain    = errors.New("element type is not plain data")
	ErrShortBuffer = errors.New("snapshot truncated")
	ErrChecksum    = errors.New("snapshot checksum mismatch")
	ErrLength      = errors.New("snapshot length mismatch")
	ErrIndex       = errors.New("slot index out of range")
)

func errIndex(i, n int) error {
	return errors.Wrapf(ErrIndex, "index %d, len %d", i, n)
}
