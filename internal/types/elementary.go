package types

import (
	"fmt"
	"strings"
)

// elementaryBitSizes maps every valid elementary type name to its value
// width in bits. "string" and "bytes" are absent on purpose; their size
// is runtime data.
var elementaryBitSizes = map[string]uint64{
	"bool":    8,
	"address": 160,
}

var elementaryNames = map[string]bool{
	"bool":    true,
	"address": true,
	"string":  true,
	"bytes":   true,
}

func init() {
	for width := uint64(8); width <= 256; width += 8 {
		uname := fmt.Sprintf("uint%d", width)
		iname := fmt.Sprintf("int%d", width)
		elementaryBitSizes[uname] = width
		elementaryBitSizes[iname] = width
		elementaryNames[uname] = true
		elementaryNames[iname] = true
	}
	for n := uint64(1); n <= 32; n++ {
		name := fmt.Sprintf("bytes%d", n)
		elementaryBitSizes[name] = n * 8
		elementaryNames[name] = true
	}
}

// IsElementaryName reports whether the name denotes a valid elementary
// type after normalization.
func IsElementaryName(name string) bool {
	normalized, ok := normalizeElementaryName(name)
	return ok && elementaryNames[normalized]
}

// LooksElementary reports whether the name is shaped like an elementary
// type even if its width is unsupported, such as "uint7". Used to decide
// between a width diagnostic and an unknown-name diagnostic.
func LooksElementary(name string) bool {
	for _, prefix := range []string{"uint", "int", "bytes"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok && digitsOnly(rest) {
			return true
		}
	}
	switch name {
	case "bool", "address", "string", "byte":
		return true
	}
	return false
}

// normalizeElementaryName resolves the unsized spellings and validates
// the result: "uint" and "int" widen to 256 bits, "byte" is "bytes1".
func normalizeElementaryName(name string) (string, bool) {
	switch name {
	case "uint":
		return "uint256", true
	case "int":
		return "int256", true
	case "byte":
		return "bytes1", true
	}
	return name, elementaryNames[name]
}

// IsSignedIntegerName and IsUnsignedIntegerName classify normalized
// elementary names for constant parsing.
func IsSignedIntegerName(name string) bool {
	return strings.HasPrefix(name, "int") && digitsOnly(name[len("int"):])
}

func IsUnsignedIntegerName(name string) bool {
	return strings.HasPrefix(name, "uint") && digitsOnly(name[len("uint"):])
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsInteger reports whether the type is a sized signed or unsigned integer.
func (t *ElementaryType) IsInteger() bool {
	return IsSignedIntegerName(t.name) || IsUnsignedIntegerName(t.name)
}
