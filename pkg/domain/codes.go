package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// CompositeCodeSeparator joins member codes into a combined identifier,
// e.g. "Ag_Pe" for a system grouping Agricultura and Pesca.
const CompositeCodeSeparator = "_"

// ShortCode derives a display code from an item name: the first letter of
// each of the first two words, or the first two characters of a single-word
// name. The first letter is uppercased, the second kept as-is for two-word
// names and lowercased for single words, matching the built-in catalogs
// ("Agricultura" -> "Ag", "Medio Ambiente" -> "MA").
func ShortCode(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	switch len(fields) {
	case 0:
		return ""
	case 1:
		runes := []rune(fields[0])
		if len(runes) == 1 {
			return string(unicode.ToUpper(runes[0]))
		}
		return string(unicode.ToUpper(runes[0])) + string(unicode.ToLower(runes[1]))
	default:
		a := []rune(fields[0])
		b := []rune(fields[1])
		return string(unicode.ToUpper(a[0])) + string(unicode.ToUpper(b[0]))
	}
}

// UniqueCode resolves collisions against already-issued codes by appending an
// incrementing integer suffix. The issued set is updated with the result.
func UniqueCode(name string, issued map[string]bool) string {
	base := ShortCode(name)
	if base == "" {
		base = "X"
	}
	code := base
	for i := 1; issued[code]; i++ {
		code = base + strconv.Itoa(i)
	}
	issued[code] = true
	return code
}

// CompositeCode joins member codes in order with the standard separator.
func CompositeCode(codes []string) string {
	return strings.Join(codes, CompositeCodeSeparator)
}

// ConflictDisplayCode builds the synthetic code used to reference a conflict
// in evolution and attribution tools, e.g. "Ag_L_C1C3": target code, level
// initial, concatenated type codes.
func ConflictDisplayCode(c ConflictRecord) string {
	parts := []string{c.TargetCode}
	switch c.Level {
	case ConflictLight:
		parts = append(parts, "L")
	case ConflictModerate:
		parts = append(parts, "M")
	case ConflictGrave:
		parts = append(parts, "G")
	default:
		parts = append(parts, "N")
	}
	if len(c.TypeCodes) > 0 {
		parts = append(parts, strings.Join(c.TypeCodes, ""))
	}
	return strings.Join(parts, CompositeCodeSeparator)
}
