// Package normalize turns raw rows into validated contact records.
package normalize

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/contact-cli/internal/dummy"
	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/numplan"
)

// DefaultPlaceholders are the cell values that mean "no data".
var DefaultPlaceholders = []string{"nan", "null", "none", "-", "n/a", "없음", "x"}

// Options tune a Normalizer.
type Options struct {
	// Placeholders are extra tokens collapsed to "" next to DefaultPlaceholders.
	Placeholders []string
	// Workers bounds NormalizeAll's parallelism. Zero means DefaultWorkers.
	Workers int
	// Logger receives field warnings. Nil means zap.L().
	Logger *zap.Logger
}

// DefaultWorkers is the NormalizeAll parallelism when Options.Workers is unset.
const DefaultWorkers = 8

// Normalizer applies the per-field cleanup rules. It is safe for concurrent use.
type Normalizer struct {
	plan         *numplan.Plan
	detector     *dummy.Detector
	placeholders map[string]bool
	workers      int
	log          *zap.Logger
}

// New returns a Normalizer over the given plan and detector.
func New(plan *numplan.Plan, detector *dummy.Detector, opts Options) *Normalizer {
	n := &Normalizer{
		plan:         plan,
		detector:     detector,
		placeholders: make(map[string]bool),
		workers:      opts.Workers,
		log:          opts.Logger,
	}
	for _, p := range DefaultPlaceholders {
		n.placeholders[strings.ToLower(p)] = true
	}
	for _, p := range opts.Placeholders {
		n.placeholders[strings.ToLower(strings.TrimSpace(p))] = true
	}
	if n.workers <= 0 {
		n.workers = DefaultWorkers
	}
	return n
}

// Default returns a Normalizer over the default plan and detector.
var Default = sync.OnceValue(func() *Normalizer {
	return New(numplan.Default(), dummy.Default(), Options{})
})

func (n *Normalizer) logger() *zap.Logger {
	if n.log != nil {
		return n.log
	}
	return zap.L()
}

// Normalize maps a raw row onto a ContactRecord. Keys that are not canonical
// field names are carried as metadata. It returns false when the row has no
// name; such rows are rejected.
func (n *Normalizer) Normalize(row model.Row) (model.ContactRecord, bool) {
	var rec model.ContactRecord
	for k, v := range row {
		if f, ok := model.ParseField(k); ok {
			rec.Set(f, n.clean(v))
			continue
		}
		if rec.Metadata == nil {
			rec.Metadata = make(map[string]string)
		}
		rec.Metadata[k] = v
	}

	if rec.Name == "" {
		return rec, false
	}

	for _, f := range []model.Field{model.FieldPhone, model.FieldFax, model.FieldMobile} {
		n.phone(&rec, f)
	}
	if rec.Fax != "" && rec.Fax == rec.Phone {
		rec.SetStatus(model.FieldFax, model.StatusSharedLine)
	}

	if rec.Email != "" {
		email, ok := firstEmail(rec.Email)
		if !ok {
			rec.SetStatus(model.FieldEmail, model.StatusInvalidCleared)
		}
		rec.Email = email
	}
	if rec.Homepage != "" {
		url, ok := homepage(rec.Homepage)
		if !ok {
			rec.SetStatus(model.FieldHomepage, model.StatusInvalidCleared)
		}
		rec.Homepage = url
	}
	return rec, true
}

// clean NFC-normalizes and trims a cell and collapses placeholder tokens.
func (n *Normalizer) clean(v string) string {
	v = strings.TrimSpace(norm.NFC.String(v))
	if n.placeholders[strings.ToLower(v)] {
		return ""
	}
	return v
}

func (n *Normalizer) phone(rec *model.ContactRecord, f model.Field) {
	v := rec.Get(f)
	if v == "" {
		return
	}

	if rule, ok := n.detector.Check(v); ok {
		n.logger().Warn("normalize: dummy phone rejected",
			zap.String("name", rec.Name),
			zap.String("field", string(f)),
			zap.String("value", MaskPhone(v)),
			zap.String("rule", rule),
		)
		rec.Set(f, "")
		rec.SetStatus(f, model.StatusDummyRejected)
		return
	}

	if canonical, ok := n.plan.Format(v); ok {
		rec.Set(f, canonical)
		return
	}

	n.logger().Warn("normalize: phone failed numbering-plan validation",
		zap.String("name", rec.Name),
		zap.String("field", string(f)),
		zap.String("value", MaskPhone(v)),
	)
	rec.SetStatus(f, model.StatusUnverified)
}

// firstEmail returns the first token with exactly one "@" and a "." after it.
func firstEmail(v string) (string, bool) {
	tokens := strings.FieldsFunc(v, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', ';', '/', '|':
			return true
		}
		return false
	})
	for _, tok := range tokens {
		tok = strings.Trim(tok, `<>()[]"'`)
		tok = strings.TrimRight(tok, ".:")
		tok = strings.TrimPrefix(tok, "mailto:")
		if validEmail(tok) {
			return tok, true
		}
	}
	return "", false
}

func validEmail(s string) bool {
	if strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

var schemeRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*):(//)?`)

// hasScheme reports whether u starts with a URL scheme. "host:port" is not a
// scheme: a dotted name or a digit after the colon without "//" means a host.
func hasScheme(u string) (rest string, ok bool) {
	m := schemeRe.FindStringSubmatchIndex(u)
	if m == nil {
		return "", false
	}
	rest = u[m[1]:]
	if m[4] >= 0 {
		return rest, true
	}
	if strings.Contains(u[:m[3]], ".") || (rest != "" && rest[0] >= '0' && rest[0] <= '9') {
		return "", false
	}
	return rest, true
}

// homepage keeps values that carry a scheme as they are and adds one to
// scheme-less values: https for "www." hosts, http otherwise. A scheme-less
// value needs a dotted host.
func homepage(v string) (string, bool) {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return "", false
	}
	u := strings.TrimRight(fields[0], ",;")

	if rest, ok := hasScheme(u); ok {
		if rest == "" {
			return "", false
		}
		return u, true
	}

	if strings.HasPrefix(strings.ToLower(u), "www.") {
		u = "https://" + u
	} else {
		u = "http://" + u
	}
	host, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://"), "/")
	host, _, _ = strings.Cut(host, ":")
	dot := strings.IndexByte(host, '.')
	if dot <= 0 || dot == len(host)-1 {
		return "", false
	}
	return u, true
}

// MaskPhone hides every digit but the last four, keeping separators.
func MaskPhone(phone string) string {
	runes := []rune(strings.TrimSpace(phone))
	keep := 4
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] < '0' || runes[i] > '9' {
			continue
		}
		if keep > 0 {
			keep--
			continue
		}
		runes[i] = '*'
	}
	return string(runes)
}
