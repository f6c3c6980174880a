package slots

import (
	"encoding/binary"
	"hash/crc32"
	"reflect"

	"github.com/pkg/errors"

	"github.com/rawbytedev/untagged"
	"github.com/rawbytedev/untagged/internal/common"
)

// Snapshot layout:
//
//	varint N                 slot count
//	(N+7)/8 bytes            presence bitmap
//	Size[T] bytes per value  present slots in index order, host layout
//	uint32 LE                crc32 IEEE of everything above

const crcSize = 4

func plainCheck[T any]() error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if !common.IsPlain(t) {
		return errors.Wrapf(ErrNotPlain, "%v", t)
	}
	return nil
}

// MarshalBinary encodes the slots. T must be plain data.
func (s *Slots[T]) MarshalBinary() ([]byte, error) {
	if err := plainCheck[T](); err != nil {
		return nil, err
	}
	n := s.Len()
	size := int(untagged.Size[T]())
	buf := make([]byte, 0, 10+len(s.present)+s.Count()*size+crcSize)
	buf = common.WriteVarUintTo(buf, uint64(n))
	buf = append(buf, s.present...)
	for i := range s.vals {
		if common.TestBit(s.present, i) {
			buf = append(buf, s.vals[i].Bytes()...)
		}
	}
	return binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf)), nil
}

// UnmarshalBinary replaces the contents of s with the snapshot in data.
// Present values are released first and s is resized to the snapshot
// length. On error s is left unchanged.
func (s *Slots[T]) UnmarshalBinary(data []byte) error {
	if err := plainCheck[T](); err != nil {
		return err
	}
	if len(data) < crcSize+1 {
		return errors.Wrapf(ErrShortBuffer, "%d bytes", len(data))
	}
	body := data[:len(data)-crcSize]
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(data[len(body):]) {
		return ErrChecksum
	}
	n64, hdr := common.ReadVarUint(body)
	if hdr == 0 {
		return errors.Wrap(ErrShortBuffer, "slot count")
	}
	rest := body[hdr:]
	if n64 > uint64(len(rest))*8 {
		return errors.Wrapf(ErrLength, "%d slots in %d bytes", n64, len(rest))
	}
	n := int(n64)
	bmLen := common.BitmapLen(n)
	present := rest[:bmLen]
	// bits past N must be clear
	if n%8 != 0 && present[bmLen-1]>>(n%8) != 0 {
		return errors.Wrap(ErrLength, "presence bits beyond slot count")
	}
	rest = rest[bmLen:]
	size := int(untagged.Size[T]())
	if want := common.PopCount(present) * size; len(rest) != want {
		return errors.Wrapf(ErrLength, "body is %d bytes, want %d", len(rest), want)
	}

	s.Close()
	s.vals = make([]untagged.Option[T], n)
	s.present = append(make([]byte, 0, bmLen), present...)
	for i := range s.vals {
		if common.TestBit(s.present, i) {
			copy(s.vals[i].Bytes(), rest[:size])
			rest = rest[size:]
		}
	}
	return nil
}
