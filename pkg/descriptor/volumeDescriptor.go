package descriptor

import "fmt"

// VolumeDescriptorType represents the type of volume descriptor in the ISO 9660 standard.
type VolumeDescriptorType byte

const (
	// VolumeDescriptorBootRecord indicates a Boot Record (type 0).
	VolumeDescriptorBootRecord VolumeDescriptorType = 0x00

	// VolumeDescriptorPrimary indicates a Primary Volume Descriptor (type 1).
	VolumeDescriptorPrimary VolumeDescriptorType = 0x01

	// VolumeDescriptorSupplementary indicates a Supplementary Volume Descriptor (type 2).
	VolumeDescriptorSupplementary VolumeDescriptorType = 0x02

	// VolumeDescriptorPartition indicates a Partition Volume Descriptor (type 3).
	VolumeDescriptorPartition VolumeDescriptorType = 0x03

	// VolumeDescriptorSetTerminator indicates the Volume Descriptor Set Terminator (type 255).
	VolumeDescriptorSetTerminator VolumeDescriptorType = 0xFF
)

func (t VolumeDescriptorType) String() string {
	switch t {
	case VolumeDescriptorBootRecord:
		return "Boot Record"
	case VolumeDescriptorPrimary:
		return "Primary"
	case VolumeDescriptorSupplementary:
		return "Supplementary"
	case VolumeDescriptorPartition:
		return "Partition"
	case VolumeDescriptorSetTerminator:
		return "Terminator"
	default:
		return fmt.Sprintf("Reserved(%d)", byte(t))
	}
}
