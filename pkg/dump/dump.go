// Package dump renders byte regions as rows of hex and printable ASCII.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/bgrewell/isoinfo/pkg/sector"
)

// RowSize is the number of bytes rendered per row.
const RowSize = 16

// Write renders data to w one 16-byte row at a time. A run of all-zero rows collapses: the second zero
// row of the run is replaced by "...", the rest of the run is omitted, and the final row of data is
// always printed.
func Write(w io.Writer, data []byte) {
	rows := (len(data) + RowSize - 1) / RowSize
	zeroRun := 0
	var line strings.Builder
	for i := 0; i < rows; i++ {
		start := i * RowSize
		row := data[start:min(start+RowSize, len(data))]

		if isZero(row) {
			zeroRun++
		} else {
			zeroRun = 0
		}
		if i < rows-1 {
			if zeroRun == 2 {
				fmt.Fprint(w, "\t...\n")
				continue
			}
			if zeroRun > 2 {
				continue
			}
		}

		line.Reset()
		fmt.Fprintf(&line, "\t%03x: ", start)
		for _, b := range row {
			fmt.Fprintf(&line, "%02x", b)
		}
		line.WriteByte(' ')
		for _, b := range row {
			if b >= 0x20 && b <= 0x7e {
				line.WriteByte(b)
			} else {
				line.WriteByte('.')
			}
		}
		line.WriteByte('\n')
		io.WriteString(w, line.String())
	}
}

// Sector renders a full sector.
func Sector(w io.Writer, s *sector.Sector) {
	Write(w, s[:])
}

func isZero(row []byte) bool {
	for _, b := range row {
		if b != 0 {
			return false
		}
	}
	return true
}
