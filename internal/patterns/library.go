// Package patterns holds the ordered extraction cascades for each contact
// field. Cascades are compiled once from an embedded rules file and are
// read-only afterwards.
package patterns

import (
	_ "embed"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/contact-cli/internal/model"
)

//go:embed data/patterns.yaml
var defaultRules []byte

// Match is one value found in a text.
type Match struct {
	Pattern string `json:"pattern"`
	Value   string `json:"value"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Matcher is the capability every cascade entry provides.
type Matcher interface {
	// MatchFirst returns the earliest accepted match in text.
	MatchFirst(text string) (Match, bool)
	// MatchAll returns every accepted match in text order.
	MatchAll(text string) []Match
}

// Cascade is an ordered list of matchers, most specific first.
type Cascade []Matcher

// Library maps each field to its cascade.
type Library struct {
	cascades map[model.Field]Cascade
}

// Cascade returns the cascade for a field, or nil when the field has none.
func (l *Library) Cascade(f model.Field) Cascade {
	return l.cascades[f]
}

// Fields returns the fields that have a cascade, in canonical order.
func (l *Library) Fields() []model.Field {
	var out []model.Field
	for _, f := range model.Fields {
		if len(l.cascades[f]) > 0 {
			out = append(out, f)
		}
	}
	return out
}

type patternSpec struct {
	Name         string   `yaml:"name"`
	Expr         string   `yaml:"expr"`
	Template     string   `yaml:"template"`
	DigitBounded bool     `yaml:"digit_bounded"`
	NotAfter     []string `yaml:"not_after"`
	TrimAt       []string `yaml:"trim_at"`
	TrimChars    string   `yaml:"trim_chars"`
}

// Load compiles a rules document. Top-level keys must be canonical field names.
func Load(data []byte) (*Library, error) {
	var doc map[string][]patternSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "patterns: decode rules")
	}

	lib := &Library{cascades: make(map[model.Field]Cascade, len(doc))}
	for key, specs := range doc {
		field, ok := model.ParseField(key)
		if !ok {
			return nil, eris.Errorf("patterns: unknown field %q", key)
		}
		cascade := make(Cascade, 0, len(specs))
		for i, spec := range specs {
			p, err := compile(spec)
			if err != nil {
				return nil, eris.Wrapf(err, "patterns: %s[%d]", key, i)
			}
			cascade = append(cascade, p)
		}
		lib.cascades[field] = cascade
	}
	return lib, nil
}

// MustLoad is Load that panics on error. Use it for rules known at build time.
func MustLoad(data []byte) *Library {
	lib, err := Load(data)
	if err != nil {
		panic(err)
	}
	return lib
}

// Default returns the process-wide library compiled from the embedded rules.
var Default = sync.OnceValue(func() *Library {
	return MustLoad(defaultRules)
})

// Pattern is a compiled cascade entry.
type Pattern struct {
	name         string
	re           *regexp.Regexp
	template     string
	digitBounded bool
	notAfter     []string
	trimAt       []string
	trimChars    string
}

func compile(spec patternSpec) (*Pattern, error) {
	if spec.Expr == "" {
		return nil, eris.New("empty expr")
	}
	re, err := regexp.Compile(spec.Expr)
	if err != nil {
		return nil, eris.Wrapf(err, "compile %q", spec.Name)
	}
	p := &Pattern{
		name:         spec.Name,
		re:           re,
		template:     spec.Template,
		digitBounded: spec.DigitBounded,
		trimChars:    spec.TrimChars,
	}
	for _, s := range spec.NotAfter {
		p.notAfter = append(p.notAfter, strings.ToLower(s))
	}
	for _, s := range spec.TrimAt {
		p.trimAt = append(p.trimAt, strings.ToLower(s))
	}
	return p, nil
}

// Name returns the pattern's rule name.
func (p *Pattern) Name() string { return p.name }

// MatchFirst implements Matcher.
func (p *Pattern) MatchFirst(text string) (Match, bool) {
	for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if m, ok := p.accept(text, loc); ok {
			return m, true
		}
	}
	return Match{}, false
}

// MatchAll implements Matcher.
func (p *Pattern) MatchAll(text string) []Match {
	var out []Match
	for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if m, ok := p.accept(text, loc); ok {
			out = append(out, m)
		}
	}
	return out
}

// accept applies the post-match constraints RE2 cannot express and shapes
// the value.
func (p *Pattern) accept(text string, loc []int) (Match, bool) {
	start, end := loc[0], loc[1]
	if len(loc) >= 4 && loc[2] >= 0 {
		start, end = loc[2], loc[3]
	}

	if p.digitBounded && (digitBefore(text, start) || digitAfter(text, end)) {
		return Match{}, false
	}
	if len(p.notAfter) > 0 {
		before := strings.ToLower(strings.TrimRight(text[:loc[0]], " \t :：)"))
		if slices.ContainsFunc(p.notAfter, func(label string) bool {
			return strings.HasSuffix(before, label)
		}) {
			return Match{}, false
		}
	}

	var value string
	if p.template != "" {
		value = string(p.re.ExpandString(nil, p.template, text, loc))
	} else {
		value = text[start:end]
	}
	value = p.clean(value)
	if value == "" {
		return Match{}, false
	}
	return Match{Pattern: p.name, Value: value, Start: start, End: end}, true
}

func (p *Pattern) clean(v string) string {
	if len(p.trimAt) > 0 {
		lower := strings.ToLower(v)
		cut := len(v)
		for _, marker := range p.trimAt {
			// Lowercasing can change byte lengths outside ASCII; only trust
			// the index when the two strings still line up.
			if i := strings.Index(lower, marker); i >= 0 && i < cut && len(lower) == len(v) {
				cut = i
			}
		}
		v = v[:cut]
	}
	v = strings.TrimSpace(v)
	if p.trimChars != "" {
		v = strings.TrimRight(v, p.trimChars)
	}
	return strings.TrimSpace(v)
}

func digitBefore(text string, i int) bool {
	return i > 0 && text[i-1] >= '0' && text[i-1] <= '9'
}

func digitAfter(text string, i int) bool {
	return i < len(text) && text[i] >= '0' && text[i] <= '9'
}
