// Package image opens an image file and serves its sectors from a read-only memory map.
package image

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgrewell/isoinfo/pkg/consts"
	"github.com/bgrewell/isoinfo/pkg/logging"
	"github.com/bgrewell/isoinfo/pkg/option"
	"github.com/bgrewell/isoinfo/pkg/sector"
	"golang.org/x/exp/mmap"
)

var ErrNotRegularFile = errors.New("not a regular file")

// ExtraBytesError reports an image whose size is not a whole number of sectors.
type ExtraBytesError struct {
	Extra int64
}

func (e *ExtraBytesError) Error() string {
	return fmt.Sprintf("extra %d bytes at end of image", e.Extra)
}

// TooFewSectorsError reports an image too small to hold the system area and a volume descriptor.
type TooFewSectorsError struct {
	Sectors int64
}

func (e *TooFewSectorsError) Error() string {
	return fmt.Sprintf("not a valid image, %d is too few sectors", e.Sectors)
}

// Image is an opened image file. It implements sector.Reader.
type Image struct {
	name    string
	sectors uint32
	data    *mmap.ReaderAt
	reader  *sector.ReaderAt
	logger  *logging.Logger
}

// Open checks that path is a regular file holding a whole number of sectors, at least 17 of them, and
// maps it into memory.
func Open(path string, opts ...option.Option) (*Image, error) {
	options := option.Default(opts...)
	logger := options.Logger.WithName("image")

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat failed: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}
	size := info.Size()
	if extra := size % consts.ISO9660_SECTOR_SIZE; extra != 0 {
		return nil, &ExtraBytesError{Extra: extra}
	}
	sectors := size / consts.ISO9660_SECTOR_SIZE
	if sectors < consts.ISO9660_MIN_SECTORS {
		return nil, &TooFewSectorsError{Sectors: sectors}
	}

	data, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to map image: %w", err)
	}
	logger.Debug("image opened", "path", path, "sectors", sectors)

	return &Image{
		name:    filepath.Base(path),
		sectors: uint32(sectors),
		data:    data,
		reader:  sector.NewReader(data),
		logger:  logger,
	}, nil
}

// Name returns the base name of the image file.
func (i *Image) Name() string {
	return i.name
}

// Sectors returns the number of 2048 byte sectors in the image.
func (i *Image) Sectors() uint32 {
	return i.sectors
}

// ReadSector returns a fresh copy of the sector at index.
func (i *Image) ReadSector(index uint32) (*sector.Sector, error) {
	i.logger.Trace("reading sector", "sector", index)
	return i.reader.ReadSector(index)
}

func (i *Image) Close() error {
	return i.data.Close()
}
