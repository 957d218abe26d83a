package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRegex captures the first number after a dollar sign, allowing
// thousands separators ("$1,200", "$25-35" -> "25").
var priceRegex = regexp.MustCompile(`\$(\d[\d,]*)`)

// ParsePrice extracts a single representative integer from a free-text price.
// Returns false when the string is empty, has no "$<digits>" token, or overflows.
func ParsePrice(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	match := priceRegex.FindStringSubmatch(s)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return value, true
}
