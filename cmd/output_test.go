package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-cli/internal/model"
)

func TestFormatStatus(t *testing.T) {
	assert.Empty(t, formatStatus(nil))
	assert.Equal(t, "fax=shared-line;phone=unverified", formatStatus(map[model.Field]model.Status{
		model.FieldPhone: model.StatusUnverified,
		model.FieldFax:   model.StatusSharedLine,
		model.FieldEmail: model.StatusOK,
	}))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want map[model.Field]model.Status
	}{
		{"", nil},
		{"phone=unverified", map[model.Field]model.Status{model.FieldPhone: model.StatusUnverified}},
		{"fax=shared-line; email=invalid-cleared", map[model.Field]model.Status{
			model.FieldFax:   model.StatusSharedLine,
			model.FieldEmail: model.StatusInvalidCleared,
		}},
		{"bogus=unverified;phone=;mobile", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseStatus(tt.in))
		})
	}
}

func TestRecordFromRow(t *testing.T) {
	row := model.Row{
		"id":     "abc",
		"name":   "은혜교회",
		"phone":  "",
		"status": "phone=dummy-rejected",
		"비고":     "x",
	}
	rec := recordFromRow(row)

	assert.Empty(t, rec.ID)
	assert.Equal(t, "은혜교회", rec.Name)
	assert.Equal(t, model.StatusDummyRejected, rec.StatusOf(model.FieldPhone))
	assert.Equal(t, map[string]string{"비고": "x"}, rec.Metadata)
	assert.Contains(t, row, "id", "input row is not modified")
}

func TestWriteCSV(t *testing.T) {
	recs := []model.ContactRecord{
		{ID: "1", Name: "A", Phone: "02-123-4567", Metadata: map[string]string{"z": "last", "a": "first"}},
		{ID: "2", Name: "B, Inc", Status: map[model.Field]model.Status{model.FieldEmail: model.StatusInvalidCleared}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, formatCSV, recs, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "category", "homepage", "phone", "fax", "email", "mobile", "postal_code", "address", "status", "a", "z"}, rows[0])
	assert.Equal(t, []string{"1", "A", "", "", "02-123-4567", "", "", "", "", "", "", "first", "last"}, rows[1])
	assert.Equal(t, "B, Inc", rows[2][1])
	assert.Equal(t, "email=invalid-cleared", rows[2][10])
}

func TestWriteJSON_EmptyRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, formatJSON, nil, model.MergeStats{}))
	assert.Contains(t, buf.String(), `"records": []`)
	assert.Contains(t, buf.String(), `"merged": 0`)
}

func TestOpenOutput_Stdout(t *testing.T) {
	var buf bytes.Buffer
	w, closeOut, err := openOutput("-", &buf)
	require.NoError(t, err)
	assert.Same(t, &buf, w)
	assert.NoError(t, closeOut())
}
