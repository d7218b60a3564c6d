package model

import "strings"

// Field names a canonical contact field.
type Field string

const (
	FieldName       Field = "name"
	FieldCategory   Field = "category"
	FieldHomepage   Field = "homepage"
	FieldPhone      Field = "phone"
	FieldFax        Field = "fax"
	FieldEmail      Field = "email"
	FieldMobile     Field = "mobile"
	FieldPostalCode Field = "postal_code"
	FieldAddress    Field = "address"
)

// Fields lists every canonical field in export column order.
var Fields = []Field{
	FieldName,
	FieldCategory,
	FieldHomepage,
	FieldPhone,
	FieldFax,
	FieldEmail,
	FieldMobile,
	FieldPostalCode,
	FieldAddress,
}

var fieldSet = func() map[Field]bool {
	m := make(map[Field]bool, len(Fields))
	for _, f := range Fields {
		m[f] = true
	}
	return m
}()

// ParseField resolves a canonical field name. Matching is case-insensitive.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	return f, fieldSet[f]
}

// PhoneLike reports whether the field holds a telephone number.
func (f Field) PhoneLike() bool {
	return f == FieldPhone || f == FieldFax || f == FieldMobile
}

// MultiValued reports whether extraction may yield several values for the field.
func (f Field) MultiValued() bool {
	return f == FieldEmail || f == FieldAddress || f == FieldHomepage
}

// Status tags the outcome of normalizing one field.
type Status string

const (
	StatusOK             Status = ""
	StatusUnverified     Status = "unverified"      // kept verbatim, failed the numbering plan
	StatusDummyRejected  Status = "dummy-rejected"  // cleared, matched a placeholder number
	StatusInvalidCleared Status = "invalid-cleared" // cleared, malformed email
	StatusSharedLine     Status = "shared-line"     // fax identical to phone
)
