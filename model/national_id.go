package model

import "strings"

// NormalizeNationalID strips the "." and "-" separators of a formatted CPF.
// Any other character is kept as-is, so applying it twice yields the same value.
func NormalizeNationalID(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, id)
}
