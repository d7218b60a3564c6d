// Package numplan validates and formats telephone numbers against a national
// numbering plan.
package numplan

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Plan is an immutable numbering-plan table.
type Plan struct {
	codes    []Code // longest prefix first
	byPrefix map[string]Code
	longest  int
	shortest int
}

// New builds a Plan from a code table. Codes are matched longest prefix first,
// so a three-digit code always wins over a shorter code that is one of its
// digit prefixes.
func New(codes []Code) *Plan {
	p := &Plan{
		codes:    slices.Clone(codes),
		byPrefix: make(map[string]Code, len(codes)),
	}
	slices.SortStableFunc(p.codes, func(a, b Code) int {
		if c := cmp.Compare(len(b.Prefix), len(a.Prefix)); c != 0 {
			return c
		}
		return cmp.Compare(a.Prefix, b.Prefix)
	})
	for _, c := range p.codes {
		p.byPrefix[c.Prefix] = c
		if p.shortest == 0 || len(c.Prefix) < p.shortest {
			p.shortest = len(c.Prefix)
		}
		p.longest = max(p.longest, len(c.Prefix))
	}
	return p
}

// Default returns the process-wide plan built from DefaultCodes.
var Default = sync.OnceValue(func() *Plan {
	return New(DefaultCodes)
})

// lookup returns the entry for an exact prefix.
func (p *Plan) lookup(prefix string) (Code, bool) {
	c, ok := p.byPrefix[prefix]
	return c, ok
}

var extensionRe = regexp.MustCompile(`(?i)\s*(?:\(?\s*(?:내선|ext\.?|x)\s*\d+\s*\)?|~\s*\d+)\s*$`)

// Digits reduces a phone string to its national digit sequence. Full-width
// digits are folded, a trailing extension ("내선 12", "ext. 3", "~9") is cut,
// and an international +82 / 0082 prefix becomes a trunk 0.
func Digits(phone string) string {
	s := strings.TrimSpace(norm.NFKC.String(phone))
	s = extensionRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(s, "+82"):
		digits = trunk(digits[2:])
	case strings.HasPrefix(digits, "0082"):
		digits = trunk(digits[4:])
	}
	return digits
}

func trunk(national string) string {
	if national == "" || strings.HasPrefix(national, "0") {
		return national
	}
	return "0" + national
}

// ExtractCode resolves the numbering-plan code of a phone string.
func (p *Plan) ExtractCode(phone string) (Code, bool) {
	return p.codeOf(Digits(phone))
}

func (p *Plan) codeOf(digits string) (Code, bool) {
	for n := min(p.longest, len(digits)); n >= p.shortest && n > 0; n-- {
		if c, ok := p.lookup(digits[:n]); ok {
			return c, true
		}
	}
	return Code{}, false
}

// Validate reports whether the phone string has a known code and a total
// digit count inside that code's range.
func (p *Plan) Validate(phone string) bool {
	_, ok := p.resolve(Digits(phone))
	return ok
}

func (p *Plan) resolve(digits string) (Code, bool) {
	c, ok := p.codeOf(digits)
	if !ok {
		return Code{}, false
	}
	if n := len(digits); n < c.MinDigits || n > c.MaxDigits {
		return Code{}, false
	}
	return c, true
}

// Format validates a phone string and returns its canonical hyphenated form.
// Formatting a canonical string returns it unchanged.
func (p *Plan) Format(phone string) (string, bool) {
	digits := Digits(phone)
	c, ok := p.resolve(digits)
	if !ok {
		return "", false
	}
	return FormatDigits(digits, c), true
}

// FormatDigits inserts hyphens into a digit string that starts with the
// code's prefix:
//
//	02         02-123-4567, 02-1234-5678
//	mobile/VoIP 010-1234-5678
//	대표번호     1588-1234
//	others     031-123-4567, 031-1234-5678
//
// Digits that do not start with the prefix are returned unchanged.
func FormatDigits(digits string, code Code) string {
	if !strings.HasPrefix(digits, code.Prefix) {
		return digits
	}
	rest := digits[len(code.Prefix):]

	switch {
	case rest == "":
		return digits
	case code.Class == ClassRepresentative:
		return code.Prefix + "-" + rest
	case code.Class == ClassMobile || code.Class == ClassVoIP:
		if len(rest) > 4 {
			return code.Prefix + "-" + rest[:4] + "-" + rest[4:]
		}
	}

	if len(rest) <= 4 {
		return code.Prefix + "-" + rest
	}
	split := len(rest) - 4
	return code.Prefix + "-" + rest[:split] + "-" + rest[split:]
}
