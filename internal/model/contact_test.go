package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRecord_GetSet(t *testing.T) {
	t.Parallel()

	var r ContactRecord
	for i, f := range Fields {
		r.Set(f, string(rune('a'+i)))
	}
	for i, f := range Fields {
		assert.Equal(t, string(rune('a'+i)), r.Get(f), f)
	}

	r.Set(Field("unknown"), "ignored")
	assert.Empty(t, r.Get(Field("unknown")))
}

func TestContactRecord_Status(t *testing.T) {
	t.Parallel()

	var r ContactRecord
	assert.Equal(t, StatusOK, r.StatusOf(FieldPhone))

	r.SetStatus(FieldPhone, StatusUnverified)
	assert.Equal(t, StatusUnverified, r.StatusOf(FieldPhone))

	r.SetStatus(FieldPhone, StatusOK)
	assert.Equal(t, StatusOK, r.StatusOf(FieldPhone))
	assert.Empty(t, r.Status)
}

func TestContactRecord_Row(t *testing.T) {
	t.Parallel()

	r := ContactRecord{
		Name:     "은혜교회",
		Phone:    "02-1234-5678",
		Metadata: map[string]string{"crawled_at": "2024-01-02"},
	}
	row := r.Row()
	assert.Equal(t, Row{
		"name":       "은혜교회",
		"phone":      "02-1234-5678",
		"crawled_at": "2024-01-02",
	}, row)
}

func TestContactRecord_Clone(t *testing.T) {
	t.Parallel()

	r := ContactRecord{
		Name:     "Grace Church",
		Metadata: map[string]string{"source_file": "a.csv"},
	}
	r.SetStatus(FieldFax, StatusSharedLine)

	c := r.Clone()
	c.Metadata["source_file"] = "b.csv"
	c.SetStatus(FieldFax, StatusOK)

	require.NotNil(t, r.Metadata)
	assert.Equal(t, "a.csv", r.Metadata["source_file"])
	assert.Equal(t, StatusSharedLine, r.StatusOf(FieldFax))
}

func TestFromRow(t *testing.T) {
	t.Parallel()

	r := FromRow(Row{"name": " 은혜교회 ", "phone": "02-123-4567", "source_row": "7"})
	assert.Equal(t, " 은혜교회 ", r.Name, "values are not cleaned")
	assert.Equal(t, "02-123-4567", r.Phone)
	assert.Equal(t, map[string]string{"source_row": "7"}, r.Metadata)
	assert.Nil(t, r.Status)

	assert.Nil(t, FromRow(Row{"name": "x"}).Metadata)
}
