package order

import (
	"regexp"
	"strings"
)

// South African mobile numbers: optional +27/27 or leading 0, second digit
// 6-8, then eight more digits.
var cellPattern = regexp.MustCompile(`^(\+27|27|0)[6-8][0-9]{8}$`)

// ValidCellNumber checks the number after stripping all whitespace.
func ValidCellNumber(cell string) bool {
	stripped := strings.Join(strings.Fields(cell), "")
	return cellPattern.MatchString(stripped)
}
