// Package extract pulls contact field values out of free text using the
// ordered cascades of the pattern library.
package extract

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/patterns"
)

// AllSuffix is appended to a multi-valued field name in ExtractRow to hold
// every extracted value.
const AllSuffix = "_all"

// Extractor applies a pattern library to text. It holds no mutable state.
type Extractor struct {
	lib *patterns.Library
}

// New returns an Extractor over lib.
func New(lib *patterns.Library) *Extractor {
	return &Extractor{lib: lib}
}

// Default returns the process-wide extractor over the embedded rules.
var Default = sync.OnceValue(func() *Extractor {
	return New(patterns.Default())
})

// Extract returns the values of one field found in text.
//
// Singular fields stop at the first pattern that matches and yield its
// earliest match. Multi-valued fields run the whole cascade and collect
// distinct values in first-seen order. A field without matches yields nil.
func (e *Extractor) Extract(text string, f model.Field) []string {
	return e.extract(norm.NFC.String(text), f)
}

// ExtractOne returns the first value of a field, or "".
func (e *Extractor) ExtractOne(text string, f model.Field) string {
	if vs := e.Extract(text, f); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// ExtractAll runs every cascade in the library over text.
func (e *Extractor) ExtractAll(text string) map[model.Field][]string {
	text = norm.NFC.String(text)
	out := make(map[model.Field][]string)
	for _, f := range e.lib.Fields() {
		if vs := e.extract(text, f); len(vs) > 0 {
			out[f] = vs
		}
	}
	return out
}

// ExtractRow maps text onto a raw row. Multi-valued fields keep their first
// value under the field name and every value, joined with "; ", under the
// field name plus AllSuffix when more than one was found.
func (e *Extractor) ExtractRow(text string) model.Row {
	row := make(model.Row)
	for f, vs := range e.ExtractAll(text) {
		row[string(f)] = vs[0]
		if f.MultiValued() && len(vs) > 1 {
			row[string(f)+AllSuffix] = strings.Join(vs, "; ")
		}
	}
	return row
}

func (e *Extractor) extract(text string, f model.Field) []string {
	cascade := e.lib.Cascade(f)
	if strings.TrimSpace(text) == "" || len(cascade) == 0 {
		return nil
	}

	if !f.MultiValued() {
		for _, m := range cascade {
			if match, ok := m.MatchFirst(text); ok {
				return []string{match.Value}
			}
		}
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range cascade {
		for _, match := range m.MatchAll(text) {
			if !plausible(f, match.Value) {
				continue
			}
			key := dedupKey(f, match.Value)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, match.Value)
		}
	}
	return out
}

// plausible drops candidates whose host cannot be a real domain, such as
// image names that look like addresses ("logo@2x.png").
func plausible(f model.Field, v string) bool {
	switch f {
	case model.FieldEmail:
		at := strings.LastIndexByte(v, '@')
		return at > 0 && registrable(v[at+1:])
	case model.FieldHomepage:
		return registrable(hostOf(v))
	default:
		return true
	}
}

func dedupKey(f model.Field, v string) string {
	switch f {
	case model.FieldEmail:
		return strings.ToLower(v)
	case model.FieldHomepage:
		k := strings.ToLower(v)
		k = strings.TrimPrefix(k, "https://")
		k = strings.TrimPrefix(k, "http://")
		return strings.TrimRight(k, "/")
	default:
		return strings.Join(strings.Fields(v), " ")
	}
}
