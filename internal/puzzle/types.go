package puzzle

import "strings"

// Type is an editorial puzzle category derived from the puzzle's display name.
type Type string

const (
	TypeQuickCryptic Type = "quick_cryptic"
	TypeCryptic      Type = "cryptic"
	TypeJumbo        Type = "jumbo"
	TypeMephisto     Type = "mephisto"
)

// Types returns all valid puzzle types in display order.
func Types() []Type {
	return []Type{TypeQuickCryptic, TypeCryptic, TypeJumbo, TypeMephisto}
}

// Labels maps each puzzle type to its human-readable label.
func Labels() map[Type]string {
	return map[Type]string{
		TypeQuickCryptic: "Times Quick Cryptic",
		TypeCryptic:      "Times Cryptic",
		TypeJumbo:        "Jumbo",
		TypeMephisto:     "Mephisto",
	}
}

// IsValid reports whether s is one of the known puzzle types.
func IsValid(s string) bool {
	switch Type(s) {
	case TypeQuickCryptic, TypeCryptic, TypeJumbo, TypeMephisto:
		return true
	}
	return false
}

// TypeFromName categorizes a puzzle by its display name.
// Matching is case-insensitive substring, first match wins:
// "quick cryptic" before "jumbo" before "mephisto". Anything
// unrecognized (including Times Saturday) is a regular cryptic.
func TypeFromName(puzzleName string) Type {
	name := strings.ToLower(puzzleName)

	if strings.Contains(name, "quick cryptic") {
		return TypeQuickCryptic
	}
	if strings.Contains(name, "jumbo") {
		return TypeJumbo
	}
	if strings.Contains(name, "mephisto") {
		return TypeMephisto
	}

	return TypeCryptic
}
