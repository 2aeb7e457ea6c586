package platform

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var channelKeepRe = regexp.MustCompile(`[^a-z0-9]`)

// NormalizeChannelName reduces a channel name to bare ascii alphanumerics
// so "📊・Standings" and "standings" compare equal. Decomposed accents and
// non-ascii decoration are dropped entirely.
func NormalizeChannelName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r > unicode.MaxASCII {
			// fold fullwidth ascii, drop everything else non-ascii
			if r >= 0xFF01 && r <= 0xFF5E {
				r -= 0xFEE0
			} else {
				continue
			}
		}
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return channelKeepRe.ReplaceAllString(b.String(), "")
}

var memberNameRe = regexp.MustCompile(`[^a-z0-9_.]`)

// NormalizeMemberName is the key function for Directory.MemberByName:
// lowercase, whitespace removed, anything outside [a-z0-9_.] stripped.
func NormalizeMemberName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "")
	return memberNameRe.ReplaceAllString(s, "")
}
