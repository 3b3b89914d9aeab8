package narrative

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ShortenName abbreviates a first name to its initial: "LeBron James"
// becomes "L. James". Short or all-caps first tokens (initials, "TJ") are
// left alone.
func ShortenName(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	first := fields[0]
	if len(first) > 2 && strings.ContainsFunc(first, unicode.IsLower) {
		fields[0] = string([]rune(first)[:1]) + "."
	}
	return strings.Join(fields, " ")
}

var accentFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldAccents strips diacritics ("Dončić" -> "Doncic") so names from the
// injury report line up with the ASCII-folded names used elsewhere.
func FoldAccents(name string) string {
	folded, _, err := transform.String(accentFolder, name)
	if err != nil {
		return name
	}
	return folded
}
