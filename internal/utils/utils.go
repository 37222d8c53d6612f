package utils

import "strings"

// NormalizeCurrency uppercases a 3-letter currency code and falls back to
// home when the value is missing or malformed.
func NormalizeCurrency(code, home string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return home
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return home
		}
	}
	return code
}
