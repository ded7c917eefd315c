// Package fixture builds synthetic ISO9660 images for tests.
package fixture

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bgrewell/isoinfo/pkg/consts"
	"github.com/bgrewell/isoinfo/pkg/encoding"
	"github.com/bgrewell/isoinfo/pkg/sector"
)

// Image is an in-memory image. It implements sector.Reader.
type Image struct {
	sectors []sector.Sector
	// Reads records every sector index passed to ReadSector, in order.
	Reads []uint32
}

// NewImage returns an image of count zeroed sectors.
func NewImage(count int) *Image {
	return &Image{sectors: make([]sector.Sector, count)}
}

// Len returns the number of sectors.
func (i *Image) Len() int {
	return len(i.sectors)
}

// Sector returns the sector at index for modification.
func (i *Image) Sector(index int) *sector.Sector {
	return &i.sectors[index]
}

// ReadSector returns a copy of the sector at index.
func (i *Image) ReadSector(index uint32) (*sector.Sector, error) {
	i.Reads = append(i.Reads, index)
	if int(index) >= len(i.sectors) {
		return nil, fmt.Errorf("%w: sector %d beyond end of image", sector.ErrShortRead, index)
	}
	s := i.sectors[index]
	return &s, nil
}

// Bytes returns the raw image.
func (i *Image) Bytes() []byte {
	out := make([]byte, 0, len(i.sectors)*sector.Size)
	for _, s := range i.sectors {
		out = append(out, s[:]...)
	}
	return out
}

// WriteFile stores the image as name in a temporary directory and returns its path.
func (i *Image) WriteFile(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, i.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

// PutHeader writes a volume descriptor header with the CD001 identifier.
func PutHeader(s *sector.Sector, vdType byte, version byte) {
	s[0] = vdType
	copy(s[1:6], consts.ISO9660_STD_IDENTIFIER)
	s[6] = version
}

// PutTerminator writes a Volume Descriptor Set Terminator.
func PutTerminator(s *sector.Sector) {
	PutHeader(s, 0xFF, consts.ISO9660_VOLUME_DESC_VERSION)
}

// Primary holds the values written by PutPrimary.
type Primary struct {
	SystemIdentifier            string
	VolumeIdentifier            string
	VolumeSpaceSize             uint32
	VolumeSetSize               uint16
	VolumeSequenceNumber        uint16
	LogicalBlockSize            uint16
	PathTableSize               uint32
	TypeLPathTable              uint32
	OptionalTypeLPathTable      uint32
	TypeMPathTable              uint32
	OptionalTypeMPathTable      uint32
	VolumeSetIdentifier         string
	PublisherIdentifier         string
	DataPreparerIdentifier      string
	ApplicationIdentifier       string
	CopyrightFileIdentifier     string
	AbstractFileIdentifier      string
	BibliographicFileIdentifier string
	Created                     [consts.ISO9660_DATE_TIME_SIZE]byte
	Modified                    [consts.ISO9660_DATE_TIME_SIZE]byte
	Expires                     [consts.ISO9660_DATE_TIME_SIZE]byte
	Effective                   [consts.ISO9660_DATE_TIME_SIZE]byte
	FileStructureVersion        byte
	ApplicationUse              []byte
}

// DefaultPrimary returns a self-consistent primary volume descriptor for an image of sectors sectors.
func DefaultPrimary(sectors uint32) Primary {
	return Primary{
		SystemIdentifier:       "LINUX",
		VolumeIdentifier:       "TESTVOL",
		VolumeSpaceSize:        sectors,
		VolumeSetSize:          1,
		VolumeSequenceNumber:   1,
		LogicalBlockSize:       consts.ISO9660_SECTOR_SIZE,
		PathTableSize:          10,
		TypeLPathTable:         19,
		OptionalTypeLPathTable: 0,
		TypeMPathTable:         20,
		OptionalTypeMPathTable: 0,
		PublisherIdentifier:    "PUBLISHER",
		ApplicationIdentifier:  "ISOINFO TESTS",
		Created:                encoding.MarshalDateTimeDigits("2023011512304567", 4),
		Modified:               encoding.MarshalDateTimeDigits("2023011512304567", 4),
		FileStructureVersion:   1,
		ApplicationUse:         []byte("APPLICATION USE"),
	}
}

// PutPrimary writes a type 1 descriptor. Identifiers are padded with spaces.
func PutPrimary(s *sector.Sector, p Primary) {
	PutHeader(s, 0x01, consts.ISO9660_VOLUME_DESC_VERSION)
	copy(s[8:40], encoding.MarshalString(p.SystemIdentifier, 32))
	copy(s[40:72], encoding.MarshalString(p.VolumeIdentifier, 32))
	both32 := encoding.MarshalBothByteOrders32(p.VolumeSpaceSize)
	copy(s[80:88], both32[:])
	both16 := encoding.MarshalBothByteOrders16(p.VolumeSetSize)
	copy(s[120:124], both16[:])
	both16 = encoding.MarshalBothByteOrders16(p.VolumeSequenceNumber)
	copy(s[124:128], both16[:])
	both16 = encoding.MarshalBothByteOrders16(p.LogicalBlockSize)
	copy(s[128:132], both16[:])
	both32 = encoding.MarshalBothByteOrders32(p.PathTableSize)
	copy(s[132:140], both32[:])
	binary.LittleEndian.PutUint32(s[140:144], p.TypeLPathTable)
	binary.LittleEndian.PutUint32(s[144:148], p.OptionalTypeLPathTable)
	binary.BigEndian.PutUint32(s[148:152], p.TypeMPathTable)
	binary.BigEndian.PutUint32(s[152:156], p.OptionalTypeMPathTable)
	copy(s[190:318], encoding.MarshalString(p.VolumeSetIdentifier, 128))
	copy(s[318:446], encoding.MarshalString(p.PublisherIdentifier, 128))
	copy(s[446:574], encoding.MarshalString(p.DataPreparerIdentifier, 128))
	copy(s[574:702], encoding.MarshalString(p.ApplicationIdentifier, 128))
	copy(s[702:739], encoding.MarshalString(p.CopyrightFileIdentifier, 37))
	copy(s[739:776], encoding.MarshalString(p.AbstractFileIdentifier, 37))
	copy(s[776:813], encoding.MarshalString(p.BibliographicFileIdentifier, 37))
	copy(s[813:830], p.Created[:])
	copy(s[830:847], p.Modified[:])
	copy(s[847:864], p.Expires[:])
	copy(s[864:881], p.Effective[:])
	s[881] = p.FileStructureVersion
	copy(s[883:883+consts.ISO9660_APPLICATION_USE_SIZE], p.ApplicationUse)
}

// PutBootRecord writes a type 0 descriptor. The identifiers are NUL padded.
func PutBootRecord(s *sector.Sector, bootSystemID, bootID string, catalogSector uint32) {
	PutHeader(s, 0x00, consts.ISO9660_VOLUME_DESC_VERSION)
	copy(s[7:39], bootSystemID)
	copy(s[39:71], bootID)
	binary.LittleEndian.PutUint32(s[71:75], catalogSector)
}

// PutElToritoBootRecord writes an El Torito boot record pointing at catalogSector.
func PutElToritoBootRecord(s *sector.Sector, catalogSector uint32) {
	PutBootRecord(s, consts.EL_TORITO_BOOT_SYSTEM_ID, "", catalogSector)
}

// Catalog holds the values written by PutBootCatalog.
type Catalog struct {
	Platform      byte
	Manufacturer  string
	BootIndicator byte
	MediaType     byte
	LoadSegment   uint16
	SystemType    byte
	SectorCount   uint16
	LoadRBA       uint32
}

// DefaultCatalog returns a bootable no-emulation x86 entry.
func DefaultCatalog() Catalog {
	return Catalog{
		Platform:      0x00,
		Manufacturer:  "ISOINFO",
		BootIndicator: 0x88,
		MediaType:     0x00,
		LoadSegment:   0,
		SystemType:    0,
		SectorCount:   4,
		LoadRBA:       21,
	}
}

// PutBootCatalog writes a validation entry with a correct checksum followed by an initial entry.
func PutBootCatalog(s *sector.Sector, c Catalog) {
	s[0] = 0x01
	s[1] = c.Platform
	copy(s[4:28], c.Manufacturer)
	s[30] = 0x55
	s[31] = 0xAA
	FixChecksum(s)

	s[32] = c.BootIndicator
	s[33] = c.MediaType
	binary.LittleEndian.PutUint16(s[34:36], c.LoadSegment)
	s[36] = c.SystemType
	binary.LittleEndian.PutUint16(s[38:40], c.SectorCount)
	binary.LittleEndian.PutUint32(s[40:44], c.LoadRBA)
}

// FixChecksum sets the validation entry checksum so its sixteen words sum to zero.
func FixChecksum(s *sector.Sector) {
	binary.LittleEndian.PutUint16(s[28:30], 0)
	var sum uint16
	for i := 0; i < 32; i += 2 {
		sum += binary.LittleEndian.Uint16(s[i : i+2])
	}
	binary.LittleEndian.PutUint16(s[28:30], -sum)
}

// NewPrimaryImage returns an 18 sector image with a primary volume descriptor at sector 16 and a
// terminator at sector 17.
func NewPrimaryImage() *Image {
	img := NewImage(18)
	PutPrimary(img.Sector(16), DefaultPrimary(18))
	PutTerminator(img.Sector(17))
	return img
}

// NewElToritoImage returns a 22 sector image with an El Torito boot record at sector 16, a terminator at
// sector 17 and a valid boot catalog at sector 20.
func NewElToritoImage() *Image {
	img := NewImage(22)
	PutElToritoBootRecord(img.Sector(16), 20)
	PutTerminator(img.Sector(17))
	PutBootCatalog(img.Sector(20), DefaultCatalog())
	return img
}
