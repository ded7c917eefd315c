package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bgrewell/isoinfo/internal/fixture"
	"github.com/bgrewell/isoinfo/pkg/descriptor"
	"github.com/bgrewell/isoinfo/pkg/logging"
	"github.com/bgrewell/isoinfo/pkg/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walk(t *testing.T, img *fixture.Image, opts ...option.Option) (*Summary, string, error) {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]option.Option{option.WithOutput(&buf)}, opts...)
	summary, err := NewParser(img, option.Default(opts...)).Walk()
	return summary, buf.String(), err
}

func TestWalk_PrimaryAndTerminator(t *testing.T) {
	img := fixture.NewPrimaryImage()
	summary, out, err := walk(t, img)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Descriptors)
	assert.Equal(t, uint32(17), summary.LastSector)
	assert.Equal(t, []descriptor.VolumeDescriptorType{
		descriptor.VolumeDescriptorPrimary,
		descriptor.VolumeDescriptorSetTerminator,
	}, summary.Types)
	assert.Zero(t, summary.BootCatalogSector)
	assert.Equal(t, []uint32{16, 17}, img.Reads)

	assert.True(t, strings.HasPrefix(out, "=== Volume Descriptors\nSector 16: descriptor type 1 version 1\n\t000: 014344303031"))
	assert.Contains(t, out, "\tTYPE 1: PRIMARY VOLUME DESCRIPTOR\n")
	assert.Contains(t, out, "Sector 17: descriptor type 255 version 1\n"+
		"\t000: ff434430303101000000000000000000 .CD001..........\n"+
		"\t010: 00000000000000000000000000000000 ................\n"+
		"\t...\n"+
		"\t7f0: 00000000000000000000000000000000 ................\n")
	assert.True(t, strings.HasSuffix(out, "TOTAL: 2 volume descriptors (sectors 16-17)\n"))
	assert.NotContains(t, out, "=== El Torito")
}

func TestWalk_DumpDisabled(t *testing.T) {
	_, out, err := walk(t, fixture.NewPrimaryImage(), option.WithDumpEnabled(false))
	require.NoError(t, err)

	assert.NotContains(t, out, "\t7f0:")
	assert.Contains(t, out, "Sector 17: descriptor type 255 version 1\nTOTAL: 2 volume descriptors (sectors 16-17)\n")
	// The application use area is part of the descriptor report, not a sector dump.
	assert.Contains(t, out, "\t\t=== APPLICATION USE AREA\n\t000: ")
}

func TestWalk_ElTorito(t *testing.T) {
	img := fixture.NewElToritoImage()
	summary, out, err := walk(t, img)
	require.NoError(t, err)

	assert.Equal(t, uint32(20), summary.BootCatalogSector)
	assert.Equal(t, []uint32{16, 17, 20}, img.Reads)
	assert.Contains(t, out, "\t\tBOOT CATALOG SECTOR = 20\n")
	assert.Contains(t, out, "TOTAL: 2 volume descriptors (sectors 16-17)\n=== El Torito\nSector 20: EL TORITO BOOT CATALOG\n\t000: 01")
	assert.True(t, strings.HasSuffix(out, "\t\tSECTORS   = 4 [512 byte sectors]\n"))
}

func TestWalk_ElToritoDisabled(t *testing.T) {
	img := fixture.NewElToritoImage()
	summary, out, err := walk(t, img, option.WithElToritoEnabled(false))
	require.NoError(t, err)

	assert.Equal(t, uint32(20), summary.BootCatalogSector)
	assert.Equal(t, []uint32{16, 17}, img.Reads)
	assert.Contains(t, out, "\t\t=== EL TORITO FOUND\n")
	assert.NotContains(t, out, "=== El Torito\n")
}

func TestWalk_NotElTorito(t *testing.T) {
	img := fixture.NewImage(20)
	fixture.PutBootRecord(img.Sector(16), "OTHER BOOT", "", 19)
	fixture.PutTerminator(img.Sector(17))

	summary, out, err := walk(t, img)
	require.NoError(t, err)
	assert.Zero(t, summary.BootCatalogSector)
	assert.Equal(t, []uint32{16, 17}, img.Reads)
	assert.Contains(t, out, "\t!!! NOT EL TORITO\n")
	assert.NotContains(t, out, "=== El Torito")
}

func TestWalk_MultipleElToritoRecords(t *testing.T) {
	img := fixture.NewImage(24)
	fixture.PutElToritoBootRecord(img.Sector(16), 20)
	fixture.PutElToritoBootRecord(img.Sector(17), 21)
	fixture.PutPrimary(img.Sector(18), fixture.DefaultPrimary(24))
	fixture.PutTerminator(img.Sector(19))
	fixture.PutBootCatalog(img.Sector(21), fixture.DefaultCatalog())

	summary, out, err := walk(t, img)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Descriptors)
	assert.Equal(t, uint32(21), summary.BootCatalogSector)
	assert.Equal(t, []uint32{16, 17, 18, 19, 21}, img.Reads)
	assert.Equal(t, 1, strings.Count(out, "??? MULTIPLE EL TORITO BOOT RECORDS ???"))
	assert.Contains(t, out, "TOTAL: 4 volume descriptors (sectors 16-19)\n")
	assert.Contains(t, out, "Sector 21: EL TORITO BOOT CATALOG\n")
}

func TestWalk_OtherDescriptorTypes(t *testing.T) {
	img := fixture.NewImage(20)
	fixture.PutPrimary(img.Sector(16), fixture.DefaultPrimary(20))
	fixture.PutHeader(img.Sector(17), 0x02, 1)
	fixture.PutHeader(img.Sector(18), 0x03, 1)
	fixture.PutTerminator(img.Sector(19))

	summary, out, err := walk(t, img, option.WithDumpEnabled(false))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Descriptors)
	assert.Contains(t, out, "Sector 17: descriptor type 2 version 1\nSector 18: descriptor type 3 version 1\n")
	assert.Contains(t, out, "TOTAL: 4 volume descriptors (sectors 16-19)\n")
}

func TestWalk_MissingIdentifier(t *testing.T) {
	img := fixture.NewImage(18)
	fixture.PutPrimary(img.Sector(16), fixture.DefaultPrimary(18))

	summary, out, err := walk(t, img)
	require.ErrorIs(t, err, descriptor.ErrInvalidIdentifier)
	assert.Nil(t, summary)
	assert.True(t, strings.HasPrefix(err.Error(), "sector 17 missing CD001 descriptor"))
	assert.Contains(t, out, "Sector 16: descriptor type 1 version 1\n")
	assert.NotContains(t, out, "Sector 17:")
	assert.NotContains(t, out, "TOTAL:")
}

func TestWalk_NoTerminator(t *testing.T) {
	img := fixture.NewImage(17)
	fixture.PutPrimary(img.Sector(16), fixture.DefaultPrimary(17))

	_, out, err := walk(t, img)
	require.ErrorIs(t, err, ErrReadSector)
	assert.True(t, strings.HasPrefix(err.Error(), "failed reading sector 17"))
	assert.NotContains(t, out, "TOTAL:")
}

func TestWalk_CatalogBeyondImage(t *testing.T) {
	img := fixture.NewImage(18)
	fixture.PutElToritoBootRecord(img.Sector(16), 40)
	fixture.PutTerminator(img.Sector(17))

	_, out, err := walk(t, img)
	require.ErrorIs(t, err, ErrReadBootCatalog)
	assert.True(t, strings.HasPrefix(err.Error(), "failed reading boot catalog sector 40"))
	assert.Contains(t, out, "TOTAL: 2 volume descriptors (sectors 16-17)\n")
	assert.NotContains(t, out, "=== El Torito")
}

func TestWalk_LogsSoftDiagnostics(t *testing.T) {
	img := fixture.NewElToritoImage()
	img.Sector(20)[0x1E] = 0x00

	var logs bytes.Buffer
	logger := logging.NewLogger(logging.NewSimpleLogger(&logs, logging.LEVEL_DEBUG, false))
	_, out, err := walk(t, img, option.WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, out, "\t\t??? Key missing or incorrect\n")
	assert.Contains(t, logs.String(), "[DEBUG] [parser] invalid validation entry\n")
	assert.Contains(t, logs.String(), "reason: key missing or incorrect\n")
	assert.NotContains(t, out, "[DEBUG]")
}
