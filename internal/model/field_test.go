package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Field
		ok   bool
	}{
		{"phone", FieldPhone, true},
		{" Postal_Code ", FieldPostalCode, true},
		{"EMAIL", FieldEmail, true},
		{"crawled_at", Field("crawled_at"), false},
		{"", Field(""), false},
	}
	for _, tt := range tests {
		got, ok := ParseField(tt.in)
		assert.Equal(t, tt.ok, ok, "input: %q", tt.in)
		assert.Equal(t, tt.want, got, "input: %q", tt.in)
	}
}

func TestField_Kinds(t *testing.T) {
	t.Parallel()

	for _, f := range []Field{FieldPhone, FieldFax, FieldMobile} {
		assert.True(t, f.PhoneLike(), f)
		assert.False(t, f.MultiValued(), f)
	}
	for _, f := range []Field{FieldEmail, FieldAddress, FieldHomepage} {
		assert.True(t, f.MultiValued(), f)
		assert.False(t, f.PhoneLike(), f)
	}
	assert.False(t, FieldName.PhoneLike())
	assert.False(t, FieldPostalCode.MultiValued())
}
