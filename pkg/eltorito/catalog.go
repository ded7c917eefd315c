package eltorito

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bgrewell/isoinfo/pkg/consts"
	"github.com/bgrewell/isoinfo/pkg/sector"
)

const (
	validationHeaderID = 0x01
	keyByte55          = 0x55
	keyByteAA          = 0xAA
	bootable           = 0x88
	notBootable        = 0x00
	defaultLoadAddress = 0x7C00
	initialEntryOffset = consts.EL_TORITO_ENTRY_SIZE
)

var (
	ErrValidationEntryMissing = errors.New("validation entry missing")
	ErrReservedNotZero        = errors.New("reserved bytes 2-3 not zero")
	ErrInvalidKey             = errors.New("key missing or incorrect")
	ErrUnusedNotZero          = errors.New("byte 0x05 unexpectedly non-zero")
)

// ChecksumError reports a validation entry whose words do not sum to zero.
type ChecksumError struct {
	Sum uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum %d invalid", e.Sum)
}

// BootIndicatorError reports an initial entry whose boot indicator is neither 0x88 nor 0x00.
type BootIndicatorError struct {
	Indicator byte
}

func (e *BootIndicatorError) Error() string {
	return fmt.Sprintf("unexpected boot indicator %02X", e.Indicator)
}

// MediaTypeError reports an initial entry with an undefined boot media type.
type MediaTypeError struct {
	MediaType Emulation
}

func (e *MediaTypeError) Error() string {
	return fmt.Sprintf("unexpected media type ID %02X", uint8(e.MediaType))
}

// ValidationEntry is the first 32 byte record of the boot catalog.
type ValidationEntry struct {
	HeaderID     byte     `json:"header_id"`
	Platform     Platform `json:"platform"`
	Reserved     uint16   `json:"reserved"`
	Manufacturer string   `json:"manufacturer"`
	Checksum     uint16   `json:"checksum"`
	Key          [2]byte  `json:"key"`
	// Sum of the sixteen little-endian words of the entry, zero when the checksum is correct.
	Sum uint16 `json:"sum"`
}

// Validate returns the first problem found, checking header id, reserved bytes, key and checksum in
// that order.
func (v *ValidationEntry) Validate() error {
	switch {
	case v.HeaderID != validationHeaderID:
		return ErrValidationEntryMissing
	case v.Reserved != 0:
		return ErrReservedNotZero
	case v.Key != [2]byte{keyByte55, keyByteAA}:
		return ErrInvalidKey
	case v.Sum != 0:
		return &ChecksumError{Sum: v.Sum}
	}
	return nil
}

// InitialEntry is the default boot entry that follows the validation entry.
type InitialEntry struct {
	BootIndicator byte      `json:"boot_indicator"`
	MediaType     Emulation `json:"media_type"`
	LoadSegment   uint16    `json:"load_segment"`
	SystemType    byte      `json:"system_type"`
	Unused        byte      `json:"unused"`
	// SectorCount is the number of 512 byte virtual sectors loaded at boot.
	SectorCount uint16 `json:"sector_count"`
	// LoadRBA is the 2048 byte sector holding the boot image.
	LoadRBA uint32 `json:"load_rba"`
}

// Bootable reports whether the boot indicator marks the entry bootable.
func (e *InitialEntry) Bootable() bool {
	return e.BootIndicator == bootable
}

// Validate returns the first problem found in the entry.
func (e *InitialEntry) Validate() error {
	if e.BootIndicator != bootable && e.BootIndicator != notBootable {
		return &BootIndicatorError{Indicator: e.BootIndicator}
	}
	if !e.MediaType.Known() {
		return &MediaTypeError{MediaType: e.MediaType}
	}
	if e.Unused != 0 {
		return ErrUnusedNotZero
	}
	return nil
}

// BootCatalog holds the validation and initial entries of a boot catalog sector. Section headers and
// section entries that may follow are not decoded.
type BootCatalog struct {
	Validation ValidationEntry `json:"validation"`
	Initial    InitialEntry    `json:"initial"`
}

// ParseBootCatalog decodes the first two entries of the boot catalog sector.
func ParseBootCatalog(s *sector.Sector) (*BootCatalog, error) {
	f := s.Fields(0)
	c := &BootCatalog{
		Validation: ValidationEntry{
			HeaderID:     f.Byte(0),
			Platform:     Platform(f.Byte(1)),
			Reserved:     f.Uint16LE(2),
			Manufacturer: f.String(4, 24),
			Checksum:     f.Uint16LE(28),
		},
	}
	copy(c.Validation.Key[:], f.Bytes(30, 2))
	words := f.Bytes(0, consts.EL_TORITO_ENTRY_SIZE)

	e := s.Fields(initialEntryOffset)
	c.Initial = InitialEntry{
		BootIndicator: e.Byte(0),
		MediaType:     Emulation(e.Byte(1)),
		LoadSegment:   e.Uint16LE(2),
		SystemType:    e.Byte(4),
		Unused:        e.Byte(5),
		SectorCount:   e.Uint16LE(6),
		LoadRBA:       e.Uint32LE(8),
	}
	if err := errors.Join(f.Err(), e.Err()); err != nil {
		return nil, fmt.Errorf("failed to read boot catalog: %w", err)
	}

	for i := 0; i < len(words); i += 2 {
		c.Validation.Sum += binary.LittleEndian.Uint16(words[i : i+2])
	}
	return c, nil
}

// Print writes the report for the catalog. The validation entry report stops at its first problem and
// the initial entry is then skipped. The initial entry report stops where its first problem is found.
func (c *BootCatalog) Print(w io.Writer) {
	v := &c.Validation
	fmt.Fprintf(w, "\t\t--- Validation Entry\n")
	if err := v.Validate(); err != nil {
		var checksumErr *ChecksumError
		switch {
		case errors.Is(err, ErrValidationEntryMissing):
			fmt.Fprintf(w, "\t\t??? Validation entry missing\n")
		case errors.Is(err, ErrReservedNotZero):
			fmt.Fprintf(w, "\t\t??? Reserved bytes 2-3 not zero\n")
		case errors.Is(err, ErrInvalidKey):
			fmt.Fprintf(w, "\t\t??? Key missing or incorrect\n")
		case errors.As(err, &checksumErr):
			fmt.Fprintf(w, "\t\t??? Checksum %d invalid!\n", checksumErr.Sum)
		}
		return
	}
	fmt.Fprintf(w, "\t\tPlatform ID = 0x%02X (%s)\n", uint8(v.Platform), displayName(v.Platform.Known(), v.Platform.String()))
	fmt.Fprintf(w, "\t\tManufacturer = [%s]\n", v.Manufacturer)

	c.Initial.print(w)
}

func (e *InitialEntry) print(w io.Writer) {
	fmt.Fprintf(w, "\t\t--- Initial Entry\n")
	err := e.Validate()
	var indicatorErr *BootIndicatorError
	if errors.As(err, &indicatorErr) {
		fmt.Fprintf(w, "\t\t??? Unexpected boot indicator %02X\n", indicatorErr.Indicator)
		return
	}
	yes := "NO"
	if e.Bootable() {
		yes = "YES"
	}
	fmt.Fprintf(w, "\t\tBOOTABLE   = %s\n", yes)
	fmt.Fprintf(w, "\t\tMEDIA TYPE = 0x%02X (%s)\n", uint8(e.MediaType), displayName(e.MediaType.Known(), e.MediaType.String()))
	var mediaErr *MediaTypeError
	if errors.As(err, &mediaErr) {
		fmt.Fprintf(w, "\t\t??? Unexpected media type ID %02X\n", uint8(mediaErr.MediaType))
		return
	}
	fmt.Fprintf(w, "\t\tLOAD SEG  = 0x%04X\n", e.LoadSegment)
	if e.LoadSegment == 0 {
		fmt.Fprintf(w, "\t\t[Load segment 0, assume default 0x%X]\n", defaultLoadAddress)
	}
	fmt.Fprintf(w, "\t\tSYS TYPE  = 0x%02X\n", e.SystemType)
	if errors.Is(err, ErrUnusedNotZero) {
		fmt.Fprintf(w, "\t\t??? Byte 0x05 unexpectedly non-zero\n")
		return
	}
	fmt.Fprintf(w, "\t\tBOOT SEC  = %d [%d byte sector]\n", e.LoadRBA, consts.ISO9660_SECTOR_SIZE)
	fmt.Fprintf(w, "\t\tSECTORS   = %d [%d byte sectors]\n", e.SectorCount, consts.EL_TORITO_VIRTUAL_SECTOR_SIZE)
}
