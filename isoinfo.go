// Package isoinfo reports the volume descriptors and El Torito boot catalog of an ISO9660 image.
package isoinfo

import (
	"fmt"

	"github.com/bgrewell/isoinfo/pkg/image"
	"github.com/bgrewell/isoinfo/pkg/option"
	"github.com/bgrewell/isoinfo/pkg/parser"
)

// Inspect opens the image at location, writes the "<name>: <n> sectors" line followed by the descriptor
// report to the configured output, and returns the walk summary.
func Inspect(location string, opts ...option.Option) (*parser.Summary, error) {
	options := option.Default(opts...)

	img, err := image.Open(location, opts...)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	fmt.Fprintf(options.Output, "%s: %d sectors\n", img.Name(), img.Sectors())
	return parser.NewParser(img, options).Walk()
}
