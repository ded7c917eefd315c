package consts

const (
	// Number of system area sectors. The Volume Descriptor Set starts right after them.
	ISO9660_SYSTEM_AREA_SECTORS = 16

	// Smallest image that can hold the system area plus one volume descriptor.
	ISO9660_MIN_SECTORS = ISO9660_SYSTEM_AREA_SECTORS + 1

	// Standard ISO9660 identifier.
	ISO9660_STD_IDENTIFIER = "CD001"

	// ISO9660 volume descriptor version (always 1).
	ISO9660_VOLUME_DESC_VERSION = 1

	// ISO9660 default sector size.
	ISO9660_SECTOR_SIZE = 2048

	// ISO9660 volume descriptor header size
	ISO9660_VOLUME_DESC_HEADER_SIZE = 7

	// ISO9660 application use area size
	ISO9660_APPLICATION_USE_SIZE = 512

	// Portion of the application use area shown in reports.
	ISO9660_APPLICATION_USE_DUMP_SIZE = 32

	// Size of a volume descriptor date and time field (8.4.26.1).
	ISO9660_DATE_TIME_SIZE = 17

	// El Torito bootable cdrom system identifier.
	EL_TORITO_BOOT_SYSTEM_ID = "EL TORITO SPECIFICATION"

	// Size of a single boot catalog entry.
	EL_TORITO_ENTRY_SIZE = 32

	// Size of the sectors counted by the initial entry sector count.
	EL_TORITO_VIRTUAL_SECTOR_SIZE = 512

	// ECMA-119 7.4.1 a-characters.
	A_CHARACTERS = " !\"%&'()*+,-./0123456789:;<=>?ABCDEFGHIJKLMNOPQRSTUVWXYZ_"

	// ECMA-119 7.4.1 d-characters.
	D_CHARACTERS = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_"

	// File name and version separators.
	ISO9660_SEPARATOR_1 = "."
	ISO9660_SEPARATOR_2 = ";"

	// ISO9660 Filler 0x20 (space)
	ISO9660_FILLER = ' '
)
