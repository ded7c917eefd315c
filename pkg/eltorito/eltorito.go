// Package eltorito decodes the El Torito boot catalog referenced by a boot record volume descriptor.
package eltorito

import "fmt"

// Platform represents the target booting system for an El-Torito bootable ISO.
type Platform uint8

const (
	X86 Platform = 0x0  // Classic PC-BIOS x86
	PPC Platform = 0x1  // PowerPC
	Mac Platform = 0x2  // Macintosh systems
	EFI Platform = 0xef // Extensible Firmware Interface (EFI)
)

// Known reports whether p is one of the defined platform ids.
func (p Platform) Known() bool {
	switch p {
	case X86, PPC, Mac, EFI:
		return true
	}
	return false
}

func (p Platform) String() string {
	switch p {
	case X86:
		return "X86"
	case PPC:
		return "PPC"
	case Mac:
		return "Mac"
	case EFI:
		return "EFI"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", uint8(p))
	}
}

// Emulation represents the emulation mode used for booting.
type Emulation uint8

const (
	NoEmulation        Emulation = 0x0 // No emulation (default)
	Floppy12Emulation  Emulation = 0x1 // Emulate a 1.2 MB floppy
	Floppy144Emulation Emulation = 0x2 // Emulate a 1.44 MB floppy
	Floppy288Emulation Emulation = 0x3 // Emulate a 2.88 MB floppy
	HardDiskEmulation  Emulation = 0x4 // Emulate a hard disk
)

// Known reports whether e is one of the defined media types.
func (e Emulation) Known() bool {
	return e <= HardDiskEmulation
}

func (e Emulation) String() string {
	switch e {
	case NoEmulation:
		return "NOEMU"
	case Floppy12Emulation:
		return "FDD12"
	case Floppy144Emulation:
		return "FDD144"
	case Floppy288Emulation:
		return "FDD288"
	case HardDiskEmulation:
		return "HDD"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", uint8(e))
	}
}

// displayName returns the name shown in the report, which flags unknown values.
func displayName(known bool, name string) string {
	if !known {
		return "??? UNKNOWN"
	}
	return name
}
