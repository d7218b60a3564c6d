package dedupe

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/sells-group/contact-cli/internal/model"
)

// nearDuplicates lists pairs of kept names whose edit distance is at most
// maxDist. Names are compared without spaces and case so "Grace Church" and
// "GraceChurch" count as distance 0. Pairs are reported, never merged.
func nearDuplicates(recs []model.ContactRecord, maxDist int) []model.NearDuplicate {
	keys := make([]string, len(recs))
	for i, r := range recs {
		keys[i] = strings.ToLower(strings.Join(strings.Fields(r.Name), ""))
	}

	var out []model.NearDuplicate
	for i := range recs {
		for j := i + 1; j < len(recs); j++ {
			d := levenshtein.ComputeDistance(keys[i], keys[j])
			if d <= maxDist {
				out = append(out, model.NearDuplicate{A: recs[i].Name, B: recs[j].Name, Distance: d})
			}
		}
	}
	return out
}
