package descriptor

import (
	"errors"
	"fmt"
	"io"

	"github.com/bgrewell/isoinfo/pkg/consts"
	"github.com/bgrewell/isoinfo/pkg/dump"
	"github.com/bgrewell/isoinfo/pkg/encoding"
	"github.com/bgrewell/isoinfo/pkg/sector"
	"github.com/bgrewell/isoinfo/pkg/validation"
)

// Byte positions of the Primary Volume Descriptor fields (ECMA-119 8.4).
const (
	pvdSystemIdentifier        = 8
	pvdVolumeIdentifier        = 40
	pvdVolumeSpaceSize         = 80
	pvdVolumeSetSize           = 120
	pvdVolumeSequenceNumber    = 124
	pvdLogicalBlockSize        = 128
	pvdPathTableSize           = 132
	pvdTypeLPathTable          = 140
	pvdOptionalTypeLPathTable  = 144
	pvdTypeMPathTable          = 148
	pvdOptionalTypeMPathTable  = 152
	pvdVolumeSetIdentifier     = 190
	pvdPublisherIdentifier     = 318
	pvdDataPreparerIdentifier  = 446
	pvdApplicationIdentifier   = 574
	pvdCopyrightFileIdentifier = 702
	pvdAbstractFileIdentifier  = 739
	pvdBibliographicIdentifier = 776
	pvdCreationDateAndTime     = 813
	pvdModificationDateAndTime = 830
	pvdExpirationDateAndTime   = 847
	pvdEffectiveDateAndTime    = 864
	pvdFileStructureVersion    = 881
	pvdApplicationUse          = 883
)

type PrimaryVolumeDescriptor struct {
	VolumeDescriptorHeader
	// System Identifier specifies a system which can recognize and act upon the content of the Logical Sectors within
	// logical Sector Numbers 0 to 15 of the volume.
	SystemIdentifier string `json:"system_identifier"`
	// Volume Identifier specifies an identification of the volume
	VolumeIdentifier string `json:"volume_identifier"`
	// Volume Space Size is the number of logical blocks in which the Volume Space of the volume is recorded.
	//  | Encoding: BothByteOrder
	VolumeSpaceSize encoding.BothByteOrder32 `json:"volume_space_size"`
	// Volume Set Size is the assigned Volume Set size of the volume.
	//  | Encoding: BothByteOrder
	VolumeSetSize encoding.BothByteOrder16 `json:"volume_set_size"`
	// Volume Sequence Number is the ordinal number of the volume in the Volume Set.
	//  | Encoding: BothByteOrder
	VolumeSequenceNumber encoding.BothByteOrder16 `json:"volume_sequence_number"`
	// Logical Block Size specifies the size in bytes of a logical block
	//  | Encoding: BothByteOrder
	LogicalBlockSize encoding.BothByteOrder16 `json:"logical_block_size"`
	// Path Table Size specifies the length in bytes of a recorded occurrence of the Path Table.
	//  | Encoding: BothByteOrder
	PathTableSize encoding.BothByteOrder32 `json:"path_table_size"`
	// The four path table locations are independent values, not two copies of one number.
	//  | Encoding: LittleEndian
	LocationOfTypeLPathTable uint32 `json:"location_of_type_l_path_table"`
	//  | Encoding: LittleEndian
	LocationOfOptionalTypeLPathTable uint32 `json:"location_of_optional_type_l_path_table"`
	//  | Encoding: BigEndian
	LocationOfTypeMPathTable uint32 `json:"location_of_type_m_path_table"`
	//  | Encoding: BigEndian
	LocationOfOptionalTypeMPathTable uint32 `json:"location_of_optional_type_m_path_table"`
	VolumeSetIdentifier              string `json:"volume_set_identifier"`
	PublisherIdentifier              string `json:"publisher_identifier"`
	DataPreparerIdentifier           string `json:"data_preparer_identifier"`
	ApplicationIdentifier            string `json:"application_identifier"`
	CopyrightFileIdentifier          string `json:"copyright_file_identifier"`
	AbstractFileIdentifier           string `json:"abstract_file_identifier"`
	BibliographicFileIdentifier      string `json:"bibliographic_file_identifier"`
	// Date and time fields are kept raw, see encoding.UnmarshalDateTime.
	//  | 8.4.26.1 Date and Time Format
	VolumeCreationDateAndTime     [consts.ISO9660_DATE_TIME_SIZE]byte `json:"volume_creation_date_and_time"`
	VolumeModificationDateAndTime [consts.ISO9660_DATE_TIME_SIZE]byte `json:"volume_modification_date_and_time"`
	VolumeExpirationDateAndTime   [consts.ISO9660_DATE_TIME_SIZE]byte `json:"volume_expiration_date_and_time"`
	VolumeEffectiveDateAndTime    [consts.ISO9660_DATE_TIME_SIZE]byte `json:"volume_effective_date_and_time"`
	// File Structure Version specifies the version of the records of a directory and of a Path Table.
	FileStructureVersion uint8 `json:"file_structure_version"`
	// Application Use field is reserved for application use.
	ApplicationUse [consts.ISO9660_APPLICATION_USE_SIZE]byte `json:"application_use"`
}

// ParsePrimaryVolumeDescriptor decodes a sector already identified as a type 1 descriptor. Both byte
// order fields are decoded but not validated; see Valid and Print.
func ParsePrimaryVolumeDescriptor(s *sector.Sector) (*PrimaryVolumeDescriptor, error) {
	header, err := ParseHeader(s)
	if err != nil {
		return nil, err
	}

	f := s.Fields(0)
	pvd := &PrimaryVolumeDescriptor{
		VolumeDescriptorHeader:           *header,
		SystemIdentifier:                 f.String(pvdSystemIdentifier, 32),
		VolumeIdentifier:                 f.String(pvdVolumeIdentifier, 32),
		LocationOfTypeLPathTable:         f.Uint32LE(pvdTypeLPathTable),
		LocationOfOptionalTypeLPathTable: f.Uint32LE(pvdOptionalTypeLPathTable),
		LocationOfTypeMPathTable:         f.Uint32BE(pvdTypeMPathTable),
		LocationOfOptionalTypeMPathTable: f.Uint32BE(pvdOptionalTypeMPathTable),
		VolumeSetIdentifier:              f.String(pvdVolumeSetIdentifier, 128),
		PublisherIdentifier:              f.String(pvdPublisherIdentifier, 128),
		DataPreparerIdentifier:           f.String(pvdDataPreparerIdentifier, 128),
		ApplicationIdentifier:            f.String(pvdApplicationIdentifier, 128),
		CopyrightFileIdentifier:          f.String(pvdCopyrightFileIdentifier, 37),
		AbstractFileIdentifier:           f.String(pvdAbstractFileIdentifier, 37),
		BibliographicFileIdentifier:      f.String(pvdBibliographicIdentifier, 37),
		FileStructureVersion:             f.Byte(pvdFileStructureVersion),
	}
	copy(pvd.VolumeCreationDateAndTime[:], f.Bytes(pvdCreationDateAndTime, consts.ISO9660_DATE_TIME_SIZE))
	copy(pvd.VolumeModificationDateAndTime[:], f.Bytes(pvdModificationDateAndTime, consts.ISO9660_DATE_TIME_SIZE))
	copy(pvd.VolumeExpirationDateAndTime[:], f.Bytes(pvdExpirationDateAndTime, consts.ISO9660_DATE_TIME_SIZE))
	copy(pvd.VolumeEffectiveDateAndTime[:], f.Bytes(pvdEffectiveDateAndTime, consts.ISO9660_DATE_TIME_SIZE))
	copy(pvd.ApplicationUse[:], f.Bytes(pvdApplicationUse, consts.ISO9660_APPLICATION_USE_SIZE))

	volumeSpaceSize := f.Bytes(pvdVolumeSpaceSize, 8)
	volumeSetSize := f.Bytes(pvdVolumeSetSize, 4)
	volumeSequenceNumber := f.Bytes(pvdVolumeSequenceNumber, 4)
	logicalBlockSize := f.Bytes(pvdLogicalBlockSize, 4)
	pathTableSize := f.Bytes(pvdPathTableSize, 8)
	if err = f.Err(); err != nil {
		return nil, fmt.Errorf("failed to read primary volume descriptor: %w", err)
	}

	// The slices above are exactly sized, so decoding cannot fail.
	pvd.VolumeSpaceSize, _ = encoding.DecodeBothByteOrder32(volumeSpaceSize)
	pvd.VolumeSetSize, _ = encoding.DecodeBothByteOrder16(volumeSetSize)
	pvd.VolumeSequenceNumber, _ = encoding.DecodeBothByteOrder16(volumeSequenceNumber)
	pvd.LogicalBlockSize, _ = encoding.DecodeBothByteOrder16(logicalBlockSize)
	pvd.PathTableSize, _ = encoding.DecodeBothByteOrder32(pathTableSize)

	return pvd, nil
}

// Valid reports whether every both byte order field is self-consistent.
func (pvd *PrimaryVolumeDescriptor) Valid() bool {
	return pvd.validate(io.Discard)
}

// validate checks the both byte order fields in layout order and stops at the first mismatch, which is
// reported to w.
func (pvd *PrimaryVolumeDescriptor) validate(w io.Writer) bool {
	return pvd.VolumeSpaceSize.Validate(w, "Volume Space Size") &&
		pvd.VolumeSetSize.Validate(w, "Volume Set Size") &&
		pvd.VolumeSequenceNumber.Validate(w, "Volume Sequence") &&
		pvd.LogicalBlockSize.Validate(w, "Block Size") &&
		pvd.PathTableSize.Validate(w, "Path Table Size")
}

// ValidateIdentifiers checks the identifier fields against the character sets ECMA-119 8.4 assigns to
// them and returns every violation found, joined.
func (pvd *PrimaryVolumeDescriptor) ValidateIdentifiers() error {
	checks := []struct {
		field string
		err   error
	}{
		{"System Identifier", validation.ValidateACharacters(pvd.SystemIdentifier)},
		{"Volume Identifier", validation.ValidateDCharacters(pvd.VolumeIdentifier, false)},
		{"Volume Set Identifier", validation.ValidateDCharacters(pvd.VolumeSetIdentifier, false)},
		{"Publisher Identifier", validation.ValidateACharacters(pvd.PublisherIdentifier)},
		{"Data Preparer Identifier", validation.ValidateACharacters(pvd.DataPreparerIdentifier)},
		{"Application Identifier", validation.ValidateACharacters(pvd.ApplicationIdentifier)},
		{"Copyright File Identifier", validation.ValidateDCharacters(pvd.CopyrightFileIdentifier, true)},
		{"Abstract File Identifier", validation.ValidateDCharacters(pvd.AbstractFileIdentifier, true)},
		{"Bibliographic File Identifier", validation.ValidateDCharacters(pvd.BibliographicFileIdentifier, true)},
	}
	var errs []error
	for _, c := range checks {
		if c.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.field, c.err))
		}
	}
	return errors.Join(errs...)
}

// Print writes the report for the descriptor. Nothing after the mismatch warning is printed when a both
// byte order field is inconsistent.
func (pvd *PrimaryVolumeDescriptor) Print(w io.Writer) {
	fmt.Fprintf(w, "\tTYPE 1: PRIMARY VOLUME DESCRIPTOR\n")
	if !pvd.validate(w) {
		return
	}
	fmt.Fprintf(w, "\t\tSystem Id         = [%s]\n", pvd.SystemIdentifier)
	fmt.Fprintf(w, "\t\tVolume Id         = [%s]\n", pvd.VolumeIdentifier)
	fmt.Fprintf(w, "\t\tVolume Space Size = %d\n", pvd.VolumeSpaceSize.Value())
	fmt.Fprintf(w, "\t\tVolume Set Size   = %d\n", pvd.VolumeSetSize.Value())
	fmt.Fprintf(w, "\t\tVolume Sequence   = %d\n", pvd.VolumeSequenceNumber.Value())
	fmt.Fprintf(w, "\t\tBlock Size        = %d\n", pvd.LogicalBlockSize.Value())
	fmt.Fprintf(w, "\t\tPath Table Size   = %d\n", pvd.PathTableSize.Value())
	fmt.Fprintf(w, "\t\tPath Table     LE = %d\n", pvd.LocationOfTypeLPathTable)
	fmt.Fprintf(w, "\t\tPath Table Opt LE = %d\n", pvd.LocationOfOptionalTypeLPathTable)
	fmt.Fprintf(w, "\t\tPath Table     BE = %d\n", pvd.LocationOfTypeMPathTable)
	fmt.Fprintf(w, "\t\tPath Table Opt BE = %d\n", pvd.LocationOfOptionalTypeMPathTable)
	fmt.Fprintf(w, "\t\tVolume Set Id     = [%s]\n", pvd.VolumeSetIdentifier)
	fmt.Fprintf(w, "\t\tPublisher Id      = [%s]\n", pvd.PublisherIdentifier)
	fmt.Fprintf(w, "\t\tData Prep Id      = [%s]\n", pvd.DataPreparerIdentifier)
	fmt.Fprintf(w, "\t\tApplication Id    = [%s]\n", pvd.ApplicationIdentifier)
	fmt.Fprintf(w, "\t\tCopyright File    = [%s]\n", pvd.CopyrightFileIdentifier)
	fmt.Fprintf(w, "\t\tAbstract File     = [%s]\n", pvd.AbstractFileIdentifier)
	fmt.Fprintf(w, "\t\tBiblio File       = [%s]\n", pvd.BibliographicFileIdentifier)
	fmt.Fprintf(w, "\t\tVolume Created    = %s\n", encoding.FormatDateTime(pvd.VolumeCreationDateAndTime))
	fmt.Fprintf(w, "\t\tVolume Modified   = %s\n", encoding.FormatDateTime(pvd.VolumeModificationDateAndTime))
	fmt.Fprintf(w, "\t\tVolume Expires    = %s\n", encoding.FormatDateTime(pvd.VolumeExpirationDateAndTime))
	fmt.Fprintf(w, "\t\tVolume Effective  = %s\n", encoding.FormatDateTime(pvd.VolumeEffectiveDateAndTime))
	fmt.Fprintf(w, "\t\tFile Struct Ver   = 0x%02X\n", pvd.FileStructureVersion)
	fmt.Fprintf(w, "\t\t=== APPLICATION USE AREA\n")
	dump.Write(w, pvd.ApplicationUse[:consts.ISO9660_APPLICATION_USE_DUMP_SIZE])
}
