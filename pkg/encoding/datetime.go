package encoding

import (
	"errors"
	"fmt"

	"github.com/bgrewell/isoinfo/pkg/consts"
)

// ErrDateTimeUnset is returned for a date and time field whose 17 bytes are all zero.
var ErrDateTimeUnset = errors.New("date and time not set")

// InvalidDateTimeFieldError identifies the first digit group of a date and time field that is not made
// of ASCII digits.
type InvalidDateTimeFieldError struct {
	Field string
}

func (e *InvalidDateTimeFieldError) Error() string {
	return fmt.Sprintf("invalid %s", e.Field)
}

// DateTime is a volume descriptor date and time (ECMA-119 8.4.26.1). The digit groups are kept as the
// recorded text; they are checked to be digits but never checked against the calendar.
type DateTime struct {
	Year       string
	Month      string
	Day        string
	Hour       string
	Minute     string
	Second     string
	Hundredths string
	// Offset from GMT in 15 minute intervals.
	Offset int8
}

var dateTimeGroups = []struct {
	name   string
	length int
}{
	{"year", 4},
	{"month", 2},
	{"day", 2},
	{"hour", 2},
	{"minute", 2},
	{"second", 2},
	{"hundredths", 2},
}

// UnmarshalDateTime decodes a 17-byte date and time field. The first 16 bytes are the digit groups
// YYYY MM DD hh mm ss cc and the 17th byte is the signed GMT offset in 15 minute intervals.
func UnmarshalDateTime(b [consts.ISO9660_DATE_TIME_SIZE]byte) (DateTime, error) {
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return DateTime{}, ErrDateTimeUnset
	}

	groups := make([]string, 0, len(dateTimeGroups))
	offset := 0
	for _, g := range dateTimeGroups {
		field := b[offset : offset+g.length]
		if !isDigits(field) {
			return DateTime{}, &InvalidDateTimeFieldError{Field: g.name}
		}
		groups = append(groups, string(field))
		offset += g.length
	}

	return DateTime{
		Year:       groups[0],
		Month:      groups[1],
		Day:        groups[2],
		Hour:       groups[3],
		Minute:     groups[4],
		Second:     groups[5],
		Hundredths: groups[6],
		Offset:     int8(b[16]),
	}, nil
}

// OffsetMinutes returns the GMT offset in minutes.
func (d DateTime) OffsetMinutes() int {
	return int(d.Offset) * 15
}

// String renders the date and time as YYYY-MM-DD HH:MM:SS.CC ±HH:MM.
func (d DateTime) String() string {
	minutes := d.OffsetMinutes()
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%s-%s-%s %s:%s:%s.%s %c%02d:%02d",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, d.Hundredths,
		sign, minutes/60, minutes%60)
}

// FormatDateTime returns the report text for a raw date and time field: "(all zeros)" when unset,
// "[invalid <group>]" when a digit group is malformed, and the rendered timestamp otherwise.
func FormatDateTime(b [consts.ISO9660_DATE_TIME_SIZE]byte) string {
	dt, err := UnmarshalDateTime(b)
	if errors.Is(err, ErrDateTimeUnset) {
		return "(all zeros)"
	}
	if err != nil {
		return "[" + err.Error() + "]"
	}
	return dt.String()
}

// MarshalDateTimeDigits builds a 17-byte field from a 16-digit string and an offset. Shorter strings
// leave the remaining digit bytes zero.
func MarshalDateTimeDigits(digits string, offset int8) [consts.ISO9660_DATE_TIME_SIZE]byte {
	var out [consts.ISO9660_DATE_TIME_SIZE]byte
	copy(out[:16], digits)
	out[16] = byte(offset)
	return out
}

func isDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
