package extract

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// registrable reports whether host ends in a known public suffix and has a
// registrable label in front of it.
func registrable(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" || !strings.Contains(host, ".") {
		return false
	}
	suffix, icann := publicsuffix.PublicSuffix(host)
	if !icann && !strings.Contains(suffix, ".") {
		// Implicit "*" rule: the TLD is not on the list at all.
		return false
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	return err == nil && etld1 != ""
}

// hostOf returns the host part of a URL-ish string with or without scheme.
func hostOf(raw string) string {
	s := strings.ToLower(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return s
}
