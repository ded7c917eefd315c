package eltorito

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bgrewell/isoinfo/internal/fixture"
	"github.com/bgrewell/isoinfo/pkg/sector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogSector(c fixture.Catalog) *sector.Sector {
	var s sector.Sector
	fixture.PutBootCatalog(&s, c)
	return &s
}

func printCatalog(t *testing.T, s *sector.Sector) string {
	t.Helper()
	c, err := ParseBootCatalog(s)
	require.NoError(t, err)
	var buf bytes.Buffer
	c.Print(&buf)
	return buf.String()
}

func TestParseBootCatalog(t *testing.T) {
	c, err := ParseBootCatalog(catalogSector(fixture.DefaultCatalog()))
	require.NoError(t, err)

	assert.NoError(t, c.Validation.Validate())
	assert.NoError(t, c.Initial.Validate())
	assert.Equal(t, X86, c.Validation.Platform)
	assert.Equal(t, "ISOINFO", c.Validation.Manufacturer)
	assert.True(t, c.Initial.Bootable())
	assert.Equal(t, NoEmulation, c.Initial.MediaType)
	assert.Equal(t, uint16(4), c.Initial.SectorCount)
	assert.Equal(t, uint32(21), c.Initial.LoadRBA)
}

func TestBootCatalog_Print(t *testing.T) {
	out := printCatalog(t, catalogSector(fixture.DefaultCatalog()))
	assert.Equal(t,
		"\t\t--- Validation Entry\n"+
			"\t\tPlatform ID = 0x00 (X86)\n"+
			"\t\tManufacturer = [ISOINFO]\n"+
			"\t\t--- Initial Entry\n"+
			"\t\tBOOTABLE   = YES\n"+
			"\t\tMEDIA TYPE = 0x00 (NOEMU)\n"+
			"\t\tLOAD SEG  = 0x0000\n"+
			"\t\t[Load segment 0, assume default 0x7C00]\n"+
			"\t\tSYS TYPE  = 0x00\n"+
			"\t\tBOOT SEC  = 21 [2048 byte sector]\n"+
			"\t\tSECTORS   = 4 [512 byte sectors]\n",
		out)
}

func TestBootCatalog_PrintEFIHardDisk(t *testing.T) {
	c := fixture.DefaultCatalog()
	c.Platform = 0xEF
	c.BootIndicator = 0x00
	c.MediaType = 0x04
	c.LoadSegment = 0x07C0
	c.SystemType = 0x0C

	out := printCatalog(t, catalogSector(c))
	assert.Contains(t, out, "\t\tPlatform ID = 0xEF (EFI)\n")
	assert.Contains(t, out, "\t\tBOOTABLE   = NO\n")
	assert.Contains(t, out, "\t\tMEDIA TYPE = 0x04 (HDD)\n")
	assert.Contains(t, out, "\t\tLOAD SEG  = 0x07C0\n")
	assert.Contains(t, out, "\t\tSYS TYPE  = 0x0C\n")
	assert.NotContains(t, out, "assume default")
	assert.NotContains(t, out, "???")
}

func TestBootCatalog_ValidationFaults(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *sector.Sector)
		want   string
		err    error
	}{
		{
			name:   "missing header",
			mutate: func(s *sector.Sector) { s[0] = 0x02; fixture.FixChecksum(s) },
			want:   "\t\t??? Validation entry missing\n",
			err:    ErrValidationEntryMissing,
		},
		{
			name:   "reserved bytes",
			mutate: func(s *sector.Sector) { s[3] = 0x01; fixture.FixChecksum(s) },
			want:   "\t\t??? Reserved bytes 2-3 not zero\n",
			err:    ErrReservedNotZero,
		},
		{
			name:   "key",
			mutate: func(s *sector.Sector) { s[0x1F] = 0x00; fixture.FixChecksum(s) },
			want:   "\t\t??? Key missing or incorrect\n",
			err:    ErrInvalidKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := catalogSector(fixture.DefaultCatalog())
			tt.mutate(s)

			c, err := ParseBootCatalog(s)
			require.NoError(t, err)
			assert.ErrorIs(t, c.Validation.Validate(), tt.err)

			out := printCatalog(t, s)
			assert.Equal(t, "\t\t--- Validation Entry\n"+tt.want, out)
			assert.Equal(t, 1, strings.Count(out, "???"))
		})
	}
}

func TestBootCatalog_Checksum(t *testing.T) {
	s := catalogSector(fixture.DefaultCatalog())
	// Adding one to the low byte of the first word leaves the sum at 1.
	s[4]++

	c, err := ParseBootCatalog(s)
	require.NoError(t, err)
	var checksumErr *ChecksumError
	require.ErrorAs(t, c.Validation.Validate(), &checksumErr)
	assert.Equal(t, uint16(1), checksumErr.Sum)

	out := printCatalog(t, s)
	assert.Equal(t, "\t\t--- Validation Entry\n\t\t??? Checksum 1 invalid!\n", out)
}

func TestBootCatalog_UnknownPlatform(t *testing.T) {
	c := fixture.DefaultCatalog()
	c.Platform = 0x42

	out := printCatalog(t, catalogSector(c))
	assert.Contains(t, out, "\t\tPlatform ID = 0x42 (??? UNKNOWN)\n")
	assert.Contains(t, out, "\t\t--- Initial Entry\n")
}

func TestBootCatalog_InitialFaults(t *testing.T) {
	t.Run("boot indicator", func(t *testing.T) {
		c := fixture.DefaultCatalog()
		c.BootIndicator = 0x44
		out := printCatalog(t, catalogSector(c))
		assert.True(t, strings.HasSuffix(out, "\t\t--- Initial Entry\n\t\t??? Unexpected boot indicator 44\n"))
		assert.Equal(t, 1, strings.Count(out, "???"))
	})

	t.Run("media type", func(t *testing.T) {
		c := fixture.DefaultCatalog()
		c.MediaType = 0x09
		out := printCatalog(t, catalogSector(c))
		assert.True(t, strings.HasSuffix(out,
			"\t\tBOOTABLE   = YES\n"+
				"\t\tMEDIA TYPE = 0x09 (??? UNKNOWN)\n"+
				"\t\t??? Unexpected media type ID 09\n"))
		assert.NotContains(t, out, "LOAD SEG")
	})

	t.Run("unused byte", func(t *testing.T) {
		s := catalogSector(fixture.DefaultCatalog())
		s[0x20+5] = 0x01
		c, err := ParseBootCatalog(s)
		require.NoError(t, err)
		assert.ErrorIs(t, c.Initial.Validate(), ErrUnusedNotZero)

		out := printCatalog(t, s)
		assert.True(t, strings.HasSuffix(out, "\t\tSYS TYPE  = 0x00\n\t\t??? Byte 0x05 unexpectedly non-zero\n"))
		assert.NotContains(t, out, "BOOT SEC")
		assert.Equal(t, 1, strings.Count(out, "???"))
	})
}

func TestPlatformAndEmulationNames(t *testing.T) {
	assert.Equal(t, "Mac", Mac.String())
	assert.False(t, Platform(0x03).Known())
	assert.Equal(t, "Unknown(0x03)", Platform(0x03).String())
	assert.Equal(t, "FDD144", Floppy144Emulation.String())
	assert.False(t, Emulation(0x05).Known())
	assert.Equal(t, "Unknown(0x05)", Emulation(0x05).String())
}
