package descriptor

import (
	"fmt"
	"io"

	"github.com/bgrewell/isoinfo/pkg/consts"
	"github.com/bgrewell/isoinfo/pkg/sector"
)

const (
	bootSystemIdentifier = 7
	bootIdentifier       = 39
	// The first bytes of the Boot System Use field hold the El Torito boot catalog sector.
	bootCatalogPointer = 71
)

type BootRecordDescriptor struct {
	VolumeDescriptorHeader
	// Boot System Identifier specifies and identification of a system which can recognize and act upon the contents of
	// the Boot Identifier and Boot System Use fields in the Boot Record. (a-characters)
	BootSystemIdentifier string `json:"boot_system_identifier"`
	// Boot Identifier shall specify an identification of the boot system specified in the Boot System Use field of the
	// Boot Record. (a-characters)
	BootIdentifier string `json:"boot_identifier"`
	// BootCatalogSector is the absolute sector of the El Torito boot catalog. It is only meaningful when
	// IsElTorito reports true.
	BootCatalogSector uint32 `json:"boot_catalog_sector"`
}

// ParseBootRecordDescriptor decodes a sector already identified as a type 0 descriptor.
func ParseBootRecordDescriptor(s *sector.Sector) (*BootRecordDescriptor, error) {
	header, err := ParseHeader(s)
	if err != nil {
		return nil, err
	}
	f := s.Fields(0)
	d := &BootRecordDescriptor{
		VolumeDescriptorHeader: *header,
		BootSystemIdentifier:   f.String(bootSystemIdentifier, 32),
		BootIdentifier:         f.String(bootIdentifier, 32),
		BootCatalogSector:      f.Uint32LE(bootCatalogPointer),
	}
	if err = f.Err(); err != nil {
		return nil, fmt.Errorf("failed to read boot record: %w", err)
	}
	return d, nil
}

// IsElTorito reports whether the record carries the El Torito signature and an empty boot identifier.
func (d *BootRecordDescriptor) IsElTorito() bool {
	return d.BootSystemIdentifier == consts.EL_TORITO_BOOT_SYSTEM_ID && d.BootIdentifier == ""
}

// Print writes the report for the boot record and returns the boot catalog sector to use from now on.
// catalogSector is the value captured from earlier boot records, zero if none. A record that is not El
// Torito returns it unchanged; an El Torito record replaces it, with a warning when it was already set.
func (d *BootRecordDescriptor) Print(w io.Writer, catalogSector uint32) uint32 {
	fmt.Fprintf(w, "\tTYPE 0: BOOT RECORD\n")
	fmt.Fprintf(w, "\t\tBoot System Id = [%s]\n", d.BootSystemIdentifier)
	fmt.Fprintf(w, "\t\tBoot Id        = [%s]\n", d.BootIdentifier)
	if !d.IsElTorito() {
		fmt.Fprintf(w, "\t!!! NOT EL TORITO\n")
		return catalogSector
	}
	fmt.Fprintf(w, "\t\t=== EL TORITO FOUND\n")
	if catalogSector != 0 {
		fmt.Fprintf(w, "\t\t??? MULTIPLE EL TORITO BOOT RECORDS ???\n")
	}
	fmt.Fprintf(w, "\t\tBOOT CATALOG SECTOR = %d\n", d.BootCatalogSector)
	return d.BootCatalogSector
}
