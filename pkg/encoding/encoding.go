package encoding

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// MarshalString encodes the given string as a byte array padded to the given length
func MarshalString(s string, padToLength int) []byte {
	if len(s) > padToLength {
		s = s[:padToLength]
	}
	missingPadding := padToLength - len(s)
	s = s + strings.Repeat(" ", missingPadding)
	return []byte(s)
}

// BothByteOrder16 is a 16-bit number recorded in both byte orders, as defined in ECMA-119 7.2.3. The
// little-endian half is taken as the correct value when the two disagree.
type BothByteOrder16 struct {
	LE uint16
	BE uint16
}

// BothByteOrder32 is a 32-bit number recorded in both byte orders, as defined in ECMA-119 7.3.3. The
// little-endian half is taken as the correct value when the two disagree.
type BothByteOrder32 struct {
	LE uint32
	BE uint32
}

// DecodeBothByteOrder16 reads the little-endian value from the first two bytes and the big-endian value
// from the next two. Both halves are kept so a mismatch can be reported rather than rejected.
func DecodeBothByteOrder16(data []byte) (BothByteOrder16, error) {
	if len(data) < 4 {
		return BothByteOrder16{}, io.ErrUnexpectedEOF
	}
	return BothByteOrder16{
		LE: binary.LittleEndian.Uint16(data[0:2]),
		BE: binary.BigEndian.Uint16(data[2:4]),
	}, nil
}

// DecodeBothByteOrder32 reads the little-endian value from the first four bytes and the big-endian value
// from the next four.
func DecodeBothByteOrder32(data []byte) (BothByteOrder32, error) {
	if len(data) < 8 {
		return BothByteOrder32{}, io.ErrUnexpectedEOF
	}
	return BothByteOrder32{
		LE: binary.LittleEndian.Uint32(data[0:4]),
		BE: binary.BigEndian.Uint32(data[4:8]),
	}, nil
}

// Valid reports whether both byte orders hold the same value.
func (v BothByteOrder16) Valid() bool {
	return v.LE == v.BE
}

// Value returns the little-endian value.
func (v BothByteOrder16) Value() uint16 {
	return v.LE
}

// Validate writes a mismatch warning for field to w and returns false when the byte orders disagree.
func (v BothByteOrder16) Validate(w io.Writer, field string) bool {
	if v.Valid() {
		return true
	}
	writeMismatch(w, field, uint64(v.LE), uint64(v.BE))
	return false
}

// Valid reports whether both byte orders hold the same value.
func (v BothByteOrder32) Valid() bool {
	return v.LE == v.BE
}

// Value returns the little-endian value.
func (v BothByteOrder32) Value() uint32 {
	return v.LE
}

// Validate writes a mismatch warning for field to w and returns false when the byte orders disagree.
func (v BothByteOrder32) Validate(w io.Writer, field string) bool {
	if v.Valid() {
		return true
	}
	writeMismatch(w, field, uint64(v.LE), uint64(v.BE))
	return false
}

func writeMismatch(w io.Writer, field string, le, be uint64) {
	fmt.Fprintf(w, "\t\t??? %s: LE and BE mismatch: LE %d, BE %d\n", field, le, be)
}

// MarshalBothByteOrders32 converts a uint32 value into an 8-byte field that
// encodes the value in both little‑endian and big‑endian orders.
func MarshalBothByteOrders32(val uint32) [8]byte {
	var data [8]byte
	binary.LittleEndian.PutUint32(data[0:4], val)
	binary.BigEndian.PutUint32(data[4:8], val)
	return data
}

// MarshalBothByteOrders16 converts a uint16 value into a 4-byte field that
// encodes the value in both little‑endian and big‑endian orders.
// For example, for the value 0x1234, it returns [0x34, 0x12, 0x12, 0x34].
func MarshalBothByteOrders16(val uint16) [4]byte {
	var data [4]byte
	binary.LittleEndian.PutUint16(data[0:2], val)
	binary.BigEndian.PutUint16(data[2:4], val)
	return data
}
