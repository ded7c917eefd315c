// Package validation checks identifier strings against the ISO9660 character sets.
package validation

import (
	"fmt"
	"strings"

	"github.com/bgrewell/isoinfo/pkg/consts"
)

// validateByAllowedChars checks that every byte of s is in the allowed set. Trailing filler is
// ignored. The setName is used in error messages.
func validateByAllowedChars(s, allowed, setName string) error {
	s = strings.TrimRight(s, string(consts.ISO9660_FILLER))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(allowed, s[i]) < 0 {
			return fmt.Errorf("invalid %s-character at index %d: %q is not allowed", setName, i, s[i])
		}
	}
	return nil
}

// ValidateACharacters checks that every character in the input string is one of the allowed A_CHARACTERS.
func ValidateACharacters(s string) error {
	return validateByAllowedChars(s, consts.A_CHARACTERS, "A")
}

// ValidateDCharacters checks that every character in the input string is one of the allowed D_CHARACTERS.
// If allowSeparators is true, it also permits the ISO9660 separator characters.
func ValidateDCharacters(s string, allowSeparators bool) error {
	allowedChars := consts.D_CHARACTERS
	if allowSeparators {
		allowedChars += consts.ISO9660_SEPARATOR_1 + consts.ISO9660_SEPARATOR_2
	}
	return validateByAllowedChars(s, allowedChars, "D")
}
