package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-cli/internal/model"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

// Extra export columns next to the canonical fields.
const (
	columnID     = "id"
	columnStatus = "status"
)

// collection is the JSON document written by normalize and merge.
type collection struct {
	Records []model.ContactRecord `json:"records"`
	Stats   any                   `json:"stats,omitempty"`
}

// openOutput returns stdout when path is empty or "-".
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "create output")
	}
	return f, f.Close, nil
}

func writeRecords(w io.Writer, format string, recs []model.ContactRecord, stats any) error {
	switch format {
	case formatJSON, "":
		if recs == nil {
			recs = []model.ContactRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return eris.Wrap(enc.Encode(collection{Records: recs, Stats: stats}), "write json")
	case formatCSV:
		return writeCSV(w, recs)
	default:
		return eris.Errorf("unknown output format %q (want json or csv)", format)
	}
}

// writeCSV writes one row per record: id, the canonical fields, a status
// column of field=tag pairs, then every metadata key in sorted order.
func writeCSV(w io.Writer, recs []model.ContactRecord) error {
	metaKeys := make(map[string]bool)
	for _, r := range recs {
		for k := range r.Metadata {
			metaKeys[k] = true
		}
	}
	extra := make([]string, 0, len(metaKeys))
	for k := range metaKeys {
		extra = append(extra, k)
	}
	slices.Sort(extra)

	header := []string{columnID}
	for _, f := range model.Fields {
		header = append(header, string(f))
	}
	header = append(header, columnStatus)
	header = append(header, extra...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, r := range recs {
		row := []string{r.ID}
		for _, f := range model.Fields {
			row = append(row, r.Get(f))
		}
		row = append(row, formatStatus(r.Status))
		for _, k := range extra {
			row = append(row, r.Metadata[k])
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}

// formatStatus renders tags as "fax=shared-line;phone=unverified".
func formatStatus(st map[model.Field]model.Status) string {
	parts := make([]string, 0, len(st))
	for f, s := range st {
		if s != model.StatusOK {
			parts = append(parts, string(f)+"="+string(s))
		}
	}
	slices.Sort(parts)
	return strings.Join(parts, ";")
}

func parseStatus(s string) map[model.Field]model.Status {
	var out map[model.Field]model.Status
	for _, part := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		f, known := model.ParseField(k)
		if !known || v == "" {
			continue
		}
		if out == nil {
			out = make(map[model.Field]model.Status)
		}
		out[f] = model.Status(v)
	}
	return out
}

// recordFromRow undoes writeCSV for one loaded row, so exported collections
// can be merged again.
func recordFromRow(row model.Row) model.ContactRecord {
	row = maps.Clone(row)
	status := row[columnStatus]
	delete(row, columnID)
	delete(row, columnStatus)
	rec := model.FromRow(row)
	rec.Status = parseStatus(status)
	return rec
}
