// Package sector provides fixed-size access to the 2048-byte logical sectors of an ISO9660 image.
package sector

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bgrewell/isoinfo/pkg/consts"
)

// Size is the size in bytes of a logical sector.
const Size = consts.ISO9660_SECTOR_SIZE

var (
	// ErrOutOfBounds is returned when a field does not lie completely within a sector.
	ErrOutOfBounds = errors.New("field out of sector bounds")
	// ErrShortRead is returned when fewer than Size bytes could be read for a sector.
	ErrShortRead = errors.New("short sector read")
)

// Sector is the raw content of a single logical sector.
type Sector [Size]byte

// Field returns length bytes starting at offset. The returned slice aliases the sector.
func (s *Sector) Field(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > Size {
		return nil, fmt.Errorf("%w: offset %d length %d", ErrOutOfBounds, offset, length)
	}
	return s[offset : offset+length], nil
}

// Byte returns the byte at offset.
func (s *Sector) Byte(offset int) (byte, error) {
	b, err := s.Field(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16LE decodes a little-endian 16-bit number at offset.
func (s *Sector) Uint16LE(offset int) (uint16, error) {
	b, err := s.Field(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32LE decodes a little-endian 32-bit number at offset.
func (s *Sector) Uint32LE(offset int) (uint32, error) {
	b, err := s.Field(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint32BE decodes a big-endian 32-bit number at offset.
func (s *Sector) Uint32BE(offset int) (uint32, error) {
	b, err := s.Field(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// String returns the text stored in a fixed-length field. Padding is preserved, but the text ends at
// the first NUL byte, so an all-NUL field is the empty string.
func (s *Sector) String(offset, length int) (string, error) {
	b, err := s.Field(offset, length)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

// Reader reads single sectors by index.
type Reader interface {
	ReadSector(index uint32) (*Sector, error)
}

// NewReader returns a Reader over an image exposed as an io.ReaderAt.
func NewReader(r io.ReaderAt) *ReaderAt {
	return &ReaderAt{r: r}
}

// ReaderAt adapts an io.ReaderAt into a Reader. Every call reads the sector again; nothing is cached.
type ReaderAt struct {
	r io.ReaderAt
}

// ReadSector reads the sector at index into a freshly allocated Sector.
func (r *ReaderAt) ReadSector(index uint32) (*Sector, error) {
	s := &Sector{}
	n, err := r.r.ReadAt(s[:], int64(index)*Size)
	if n == Size {
		// io.ReaderAt may return io.EOF together with a full final sector
		return s, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, Size)
	}
	return nil, err
}
