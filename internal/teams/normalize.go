package teams

import (
	"strings"
	"unicode"
)

// invisible code points stripped before folding. ZWJ and variation
// selectors survive compatibility folding and would otherwise split keys.
var invisible = map[rune]bool{
	0x200B: true, // zero width space
	0x200D: true, // zero width joiner
	0xFE0E: true, // variation selector-15
	0xFE0F: true, // variation selector-16
}

// foldRune maps stylized Unicode letters and digits back to plain ASCII.
// Covers the ranges that actually show up in decorated Discord role and
// channel names: fullwidth forms, circled letters, and the Mathematical
// Alphanumeric Symbols block ("fancy font" generators).
func foldRune(r rune) rune {
	switch {
	case r >= 0xFF01 && r <= 0xFF5E: // fullwidth ASCII
		return r - 0xFEE0
	case r >= 0x24B6 && r <= 0x24CF: // circled A-Z
		return 'A' + (r - 0x24B6)
	case r >= 0x24D0 && r <= 0x24E9: // circled a-z
		return 'a' + (r - 0x24D0)
	case r >= 0x1D400 && r <= 0x1D6A3: // mathematical A-Z/a-z alphabets
		off := (r - 0x1D400) % 52
		if off < 26 {
			return 'A' + off
		}
		return 'a' + off - 26
	case r >= 0x1D7CE && r <= 0x1D7FF: // mathematical digits
		return '0' + (r-0x1D7CE)%10
	}
	return r
}

// NormalizeKey reduces any decorated team string (emoji, fancy fonts,
// odd casing, stray punctuation) to a stable lowercase comparison key.
// Symbols collapse to single spaces so "🔥Dallas🔥" and "Dallas" agree.
func NormalizeKey(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if invisible[r] {
			continue
		}
		r = foldRune(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeName strips spaces, dots and dashes and lowercases. Looser than
// NormalizeKey; used for emoji-name matching where symbols never appear.
func NormalizeName(name string) string {
	name = strings.NewReplacer(" ", "", ".", "", "-", "").Replace(name)
	return strings.ToLower(name)
}
