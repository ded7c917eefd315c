package descriptor

import (
	"errors"
	"fmt"

	"github.com/bgrewell/isoinfo/pkg/consts"
	"github.com/bgrewell/isoinfo/pkg/sector"
)

// ErrInvalidIdentifier is returned for a sector in the Volume Descriptor Set that does not carry the
// CD001 standard identifier.
var ErrInvalidIdentifier = errors.New("missing " + consts.ISO9660_STD_IDENTIFIER + " descriptor")

type VolumeDescriptorHeader struct {
	// Volume Descriptor Types.
	//  | 0 = Boot Record
	//  | 1 = Primary
	//  | 2 = Supplementary
	//  | 3 = Partition
	//  | 4 - 254 = Reserved
	//  | 255 = Terminator
	VolumeDescriptorType VolumeDescriptorType `json:"volume_descriptor_type"`
	// Standard Identifier should always be 'CD001' as a string or 0x4344303031.
	StandardIdentifier string `json:"standard_identifier"`
	// Volume Descriptor Version. The contents and interpretation depend on the Volume Descriptor Type field.
	VolumeDescriptorVersion uint8 `json:"volume_descriptor_version"`
}

func (h *VolumeDescriptorHeader) Type() VolumeDescriptorType {
	return h.VolumeDescriptorType
}

func (h *VolumeDescriptorHeader) Identifier() string {
	return h.StandardIdentifier
}

func (h *VolumeDescriptorHeader) Version() uint8 {
	return h.VolumeDescriptorVersion
}

// ParseHeader decodes the first 7 bytes of a volume descriptor. The header is returned together with
// ErrInvalidIdentifier when the standard identifier is not CD001.
func ParseHeader(s *sector.Sector) (*VolumeDescriptorHeader, error) {
	data, err := s.Field(0, consts.ISO9660_VOLUME_DESC_HEADER_SIZE)
	if err != nil {
		return nil, err
	}
	h := &VolumeDescriptorHeader{
		VolumeDescriptorType:    VolumeDescriptorType(data[0]),
		StandardIdentifier:      string(data[1:6]),
		VolumeDescriptorVersion: data[6],
	}
	if h.StandardIdentifier != consts.ISO9660_STD_IDENTIFIER {
		return h, fmt.Errorf("%w: found %q", ErrInvalidIdentifier, h.StandardIdentifier)
	}
	return h, nil
}
