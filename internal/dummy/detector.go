// Package dummy recognizes placeholder and test phone numbers that look valid
// but carry no real contact information.
package dummy

import (
	"regexp"
	"strings"
	"sync"

	"github.com/sells-group/contact-cli/internal/numplan"
)

// Rule names reported by Check.
const (
	RuleDenylist       = "denylist"
	RuleRepeatedGroups = "repeated_groups"
	RuleZeroSuffix     = "zero_suffix"
	RuleSequential     = "sequential"
	RuleUniform        = "uniform_digits"
)

// DefaultDenylist holds known fake numbers in canonical form.
var DefaultDenylist = []string{
	"02-000-0000", "02-111-1111", "02-222-2222", "02-333-3333", "02-444-4444",
	"02-555-5555", "02-666-6666", "02-777-7777", "02-888-8888", "02-999-9999",
	"02-0000-0000", "02-1111-1111", "02-2222-2222",
	"031-111-1111", "031-000-0000", "032-222-2222", "033-333-3333",
	"041-111-1111", "042-222-2222", "043-333-3333", "051-111-1111",
	"052-222-2222", "053-333-3333", "054-444-4444", "055-555-5555",
	"061-111-1111", "062-222-2222", "063-333-3333", "064-444-4444",
	"010-0000-0000", "010-1111-1111", "010-1234-1234", "010-0000-1234",
	"070-0000-0000", "1588-0000",
}

var sequentialRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{3}-123-4567$`),
	regexp.MustCompile(`^\d{3}-1234-5678$`),
}

var separatorRe = regexp.MustCompile(`[\s.()/]+`)

// Detector flags placeholder phone numbers. It is immutable and safe for
// concurrent use.
type Detector struct {
	plan     *numplan.Plan
	denylist map[string]bool
}

// New builds a Detector. Denylist entries are canonicalized with the plan
// before storage so that any input spelling matches.
func New(plan *numplan.Plan, denylist []string) *Detector {
	d := &Detector{
		plan:     plan,
		denylist: make(map[string]bool, len(denylist)),
	}
	for _, n := range denylist {
		d.denylist[d.canonical(n)] = true
	}
	return d
}

// Default returns the process-wide detector over the default plan.
var Default = sync.OnceValue(func() *Detector {
	return New(numplan.Default(), DefaultDenylist)
})

// IsDummy reports whether the phone string is a known placeholder.
func (d *Detector) IsDummy(phone string) bool {
	_, ok := d.Check(phone)
	return ok
}

// Check returns the name of the first rule the phone string matches.
func (d *Detector) Check(phone string) (string, bool) {
	c := d.canonical(phone)
	if c == "" {
		return "", false
	}

	if d.denylist[c] {
		return RuleDenylist, true
	}
	if uniformDigits(c) {
		return RuleUniform, true
	}
	if repeatedGroups(c) {
		return RuleRepeatedGroups, true
	}
	if strings.HasSuffix(c, "-0000") {
		return RuleZeroSuffix, true
	}
	for _, re := range sequentialRes {
		if re.MatchString(c) {
			return RuleSequential, true
		}
	}
	return "", false
}

// canonical returns the plan's canonical form, or the trimmed input with its
// separators folded to hyphens when the plan cannot format it.
func (d *Detector) canonical(phone string) string {
	if f, ok := d.plan.Format(phone); ok {
		return f
	}
	s := strings.TrimSpace(phone)
	s = separatorRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniformDigits reports whether every digit is 0 or every digit is 9.
func uniformDigits(s string) bool {
	var digits int
	var first rune
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if digits == 0 {
			first = r
		}
		if r != first {
			return false
		}
		digits++
	}
	return digits > 0 && (first == '0' || first == '9')
}

// repeatedGroups reports whether the string has at least three hyphen groups
// and each consists of a single repeated digit, e.g. 111-111-1111.
func repeatedGroups(s string) bool {
	groups := strings.Split(s, "-")
	if len(groups) < 3 {
		return false
	}
	for _, g := range groups {
		if g == "" {
			return false
		}
		for i := 0; i < len(g); i++ {
			if g[i] < '0' || g[i] > '9' || g[i] != g[0] {
				return false
			}
		}
	}
	return true
}
