package normalize

import (
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/contact-cli/internal/model"
)

// NormalizeAll normalizes rows in parallel and returns the accepted records
// in input order. Nameless rows are dropped and counted.
func (n *Normalizer) NormalizeAll(rows []model.Row) ([]model.ContactRecord, model.NormalizeStats) {
	type result struct {
		rec model.ContactRecord
		ok  bool
	}
	results := make([]result, len(rows))

	var g errgroup.Group
	g.SetLimit(n.workers)
	for i, row := range rows {
		g.Go(func() error {
			rec, ok := n.Normalize(row)
			results[i] = result{rec: rec, ok: ok}
			return nil
		})
	}
	_ = g.Wait()

	stats := model.NormalizeStats{Input: len(rows)}
	out := make([]model.ContactRecord, 0, len(rows))
	for _, r := range results {
		if !r.ok {
			stats.NamelessRejected++
			continue
		}
		for f, st := range r.rec.Status {
			stats.AddStatus(f, st)
		}
		out = append(out, r.rec)
	}
	stats.Normalized = len(out)
	return out, stats
}
