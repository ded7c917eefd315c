// Package parser walks the Volume Descriptor Set of an image and writes the diagnostic report.
package parser

import (
	"errors"
	"fmt"

	"github.com/bgrewell/isoinfo/pkg/consts"
	"github.com/bgrewell/isoinfo/pkg/descriptor"
	"github.com/bgrewell/isoinfo/pkg/dump"
	"github.com/bgrewell/isoinfo/pkg/eltorito"
	"github.com/bgrewell/isoinfo/pkg/logging"
	"github.com/bgrewell/isoinfo/pkg/option"
	"github.com/bgrewell/isoinfo/pkg/sector"
)

var (
	ErrReadSector      = errors.New("failed reading sector")
	ErrReadBootCatalog = errors.New("failed reading boot catalog sector")
)

// Summary describes a completed walk.
type Summary struct {
	// Descriptors is the number of volume descriptors read, terminator included.
	Descriptors int
	// LastSector is the sector holding the Volume Descriptor Set Terminator.
	LastSector uint32
	// Types lists the descriptor types in the order they were found.
	Types []descriptor.VolumeDescriptorType
	// BootCatalogSector is the El Torito boot catalog sector, zero when there is none.
	BootCatalogSector uint32
}

func NewParser(reader sector.Reader, options *option.Options) *Parser {
	if options == nil {
		options = option.Default()
	}
	return &Parser{
		reader:  reader,
		options: options,
		logger:  options.Logger.WithName("parser"),
	}
}

type Parser struct {
	reader  sector.Reader
	options *option.Options
	logger  *logging.Logger
}

// Walk reads the descriptors from sector 16 up to and including the terminator, reporting each one,
// then decodes the El Torito boot catalog if a boot record pointed at one. Sectors are read strictly in
// order. A read failure or a sector without the CD001 identifier ends the walk with an error; everything
// else found wrong is reported and the walk goes on.
func (p *Parser) Walk() (*Summary, error) {
	out := p.options.Output
	summary := &Summary{}
	var catalogSector uint32

	fmt.Fprintf(out, "=== Volume Descriptors\n")
	index := uint32(consts.ISO9660_SYSTEM_AREA_SECTORS)
	for ; ; index++ {
		s, err := p.reader.ReadSector(index)
		if err != nil {
			p.logger.Error(err, "sector read failed", "sector", index)
			return nil, fmt.Errorf("%w %d: %w", ErrReadSector, index, err)
		}
		header, err := descriptor.ParseHeader(s)
		if err != nil {
			return nil, fmt.Errorf("sector %d %w", index, err)
		}
		p.logger.Trace("volume descriptor", "sector", index, "type", header.Type().String())

		summary.Descriptors++
		summary.Types = append(summary.Types, header.Type())
		fmt.Fprintf(out, "Sector %d: descriptor type %d version %d\n", index, header.Type(), header.Version())
		if p.options.DumpEnabled {
			dump.Sector(out, s)
		}

		switch header.Type() {
		case descriptor.VolumeDescriptorBootRecord:
			catalogSector, err = p.bootRecord(s, catalogSector)
		case descriptor.VolumeDescriptorPrimary:
			err = p.primary(s)
		}
		if err != nil {
			return nil, fmt.Errorf("sector %d: %w", index, err)
		}
		if header.Type() == descriptor.VolumeDescriptorSetTerminator {
			break
		}
	}

	summary.LastSector = index
	summary.BootCatalogSector = catalogSector
	fmt.Fprintf(out, "TOTAL: %d volume descriptors (sectors %d-%d)\n",
		summary.Descriptors, consts.ISO9660_SYSTEM_AREA_SECTORS, index)

	if catalogSector == 0 {
		return summary, nil
	}
	if !p.options.ElToritoEnabled {
		p.logger.Debug("boot catalog skipped", "sector", catalogSector)
		return summary, nil
	}
	if err := p.bootCatalog(catalogSector); err != nil {
		return nil, err
	}
	return summary, nil
}

func (p *Parser) bootRecord(s *sector.Sector, catalogSector uint32) (uint32, error) {
	d, err := descriptor.ParseBootRecordDescriptor(s)
	if err != nil {
		return catalogSector, err
	}
	if !d.IsElTorito() {
		p.logger.Debug("boot record is not El Torito", "bootSystemId", d.BootSystemIdentifier, "bootId", d.BootIdentifier)
	} else if catalogSector != 0 {
		p.logger.Debug("multiple El Torito boot records", "previous", catalogSector, "current", d.BootCatalogSector)
	}
	return d.Print(p.options.Output, catalogSector), nil
}

func (p *Parser) primary(s *sector.Sector) error {
	pvd, err := descriptor.ParsePrimaryVolumeDescriptor(s)
	if err != nil {
		return err
	}
	if !pvd.Valid() {
		p.logger.Debug("both byte order mismatch in primary volume descriptor")
	}
	if err = pvd.ValidateIdentifiers(); err != nil {
		p.logger.Debug("non-conforming identifiers in primary volume descriptor", "reason", err.Error())
	}
	pvd.Print(p.options.Output)
	return nil
}

func (p *Parser) bootCatalog(index uint32) error {
	out := p.options.Output
	s, err := p.reader.ReadSector(index)
	if err != nil {
		p.logger.Error(err, "boot catalog read failed", "sector", index)
		return fmt.Errorf("%w %d: %w", ErrReadBootCatalog, index, err)
	}
	fmt.Fprintf(out, "=== El Torito\n")
	fmt.Fprintf(out, "Sector %d: EL TORITO BOOT CATALOG\n", index)
	if p.options.DumpEnabled {
		dump.Sector(out, s)
	}

	catalog, err := eltorito.ParseBootCatalog(s)
	if err != nil {
		return fmt.Errorf("sector %d: %w", index, err)
	}
	if err = catalog.Validation.Validate(); err != nil {
		p.logger.Debug("invalid validation entry", "sector", index, "reason", err.Error())
	} else if err = catalog.Initial.Validate(); err != nil {
		p.logger.Debug("invalid initial entry", "sector", index, "reason", err.Error())
	}
	catalog.Print(out)
	return nil
}
