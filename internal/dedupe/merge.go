// Package dedupe folds contact collections into one, keyed by organization
// name.
package dedupe

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/normalize"
)

// Policy decides what a duplicate contributes to the record already kept.
type Policy string

const (
	// FirstSeenWins keeps the first record for a name and skips later ones.
	FirstSeenWins Policy = "first_seen_wins"
	// FillBlanks also copies a duplicate's values into fields the kept record
	// has empty. Kept values are never overwritten.
	FillBlanks Policy = "fill_blanks"
)

// Namespace is the UUIDv5 namespace for record IDs.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/sells-group/contact-cli/organization"))

// RecordID returns the deterministic ID of an organization name.
func RecordID(name string) string {
	return uuid.NewSHA1(Namespace, []byte(name)).String()
}

// Options configure a Merger.
type Options struct {
	Policy Policy
	// NearDuplicateDistance reports kept names within this edit distance.
	// Zero disables the check.
	NearDuplicateDistance int
}

// Merger deduplicates records by name.
type Merger struct {
	normalizer *normalize.Normalizer
	opts       Options
}

// NewMerger returns a Merger that re-normalizes every record with n.
func NewMerger(n *normalize.Normalizer, opts Options) *Merger {
	if opts.Policy == "" {
		opts.Policy = FirstSeenWins
	}
	return &Merger{normalizer: n, opts: opts}
}

// Merge folds b into a. See MergeAll.
func (m *Merger) Merge(a, b []model.ContactRecord) ([]model.ContactRecord, model.MergeStats) {
	return m.MergeAll(a, b)
}

// MergeAll folds the sources in argument order. Every record is normalized
// first; nameless records are dropped and counted. The first record seen for
// a name is kept and later ones are skipped, or only fill its blanks under
// FillBlanks. The fold is sequential so the outcome depends only on input
// order.
func (m *Merger) MergeAll(sources ...[]model.ContactRecord) ([]model.ContactRecord, model.MergeStats) {
	stats := model.MergeStats{Inputs: make([]int, len(sources))}
	var out []model.ContactRecord
	index := make(map[string]int)

	for s, src := range sources {
		stats.Inputs[s] = len(src)
		for _, in := range src {
			rec, ok := m.normalize(in)
			if !ok {
				stats.NamelessRejected++
				continue
			}

			if i, dup := index[rec.Name]; dup {
				stats.DuplicatesSkipped++
				if m.opts.Policy == FillBlanks {
					fillBlanks(&out[i], rec)
				}
				continue
			}

			rec.ID = RecordID(rec.Name)
			index[rec.Name] = len(out)
			out = append(out, rec)
		}
	}

	stats.Merged = len(out)
	if m.opts.NearDuplicateDistance > 0 {
		stats.NearDuplicates = nearDuplicates(out, m.opts.NearDuplicateDistance)
	}

	zap.L().Debug("dedupe: merge complete",
		zap.Ints("inputs", stats.Inputs),
		zap.Int("merged", stats.Merged),
		zap.Int("duplicates_skipped", stats.DuplicatesSkipped),
		zap.Int("nameless_rejected", stats.NamelessRejected),
		zap.Int("near_duplicates", len(stats.NearDuplicates)),
	)
	return out, stats
}

// normalize runs a record back through the normalizer. A clearing tag from
// an earlier pass survives only while the field is still empty; every other
// tag is recomputed from the value.
func (m *Merger) normalize(in model.ContactRecord) (model.ContactRecord, bool) {
	rec, ok := m.normalizer.Normalize(in.Row())
	if !ok {
		return rec, false
	}
	for f, st := range in.Status {
		if rec.StatusOf(f) == model.StatusOK && rec.Get(f) == "" && clearing(st) {
			rec.SetStatus(f, st)
		}
	}
	return rec, true
}

// clearing reports whether a tag marks a value the normalizer removed.
func clearing(st model.Status) bool {
	return st == model.StatusDummyRejected || st == model.StatusInvalidCleared
}

func fillBlanks(kept *model.ContactRecord, dup model.ContactRecord) {
	for _, f := range model.Fields {
		if kept.Get(f) != "" || dup.Get(f) == "" {
			continue
		}
		kept.Set(f, dup.Get(f))
		kept.SetStatus(f, dup.StatusOf(f))
	}
	for k, v := range dup.Metadata {
		if _, ok := kept.Metadata[k]; ok {
			continue
		}
		if kept.Metadata == nil {
			kept.Metadata = make(map[string]string)
		}
		kept.Metadata[k] = v
	}
}
