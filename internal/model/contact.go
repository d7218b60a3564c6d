// Package model defines the canonical contact record shared by extraction,
// normalization and merging.
package model

import "maps"

// Row is one raw record keyed by canonical field name. Keys that are not
// canonical fields are provenance metadata and pass through untouched.
type Row map[string]string

// ContactRecord is the canonical contact data of one organization.
type ContactRecord struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name"`
	Category   string            `json:"category,omitempty"`
	Homepage   string            `json:"homepage,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Fax        string            `json:"fax,omitempty"`
	Email      string            `json:"email,omitempty"`
	Mobile     string            `json:"mobile,omitempty"`
	PostalCode string            `json:"postal_code,omitempty"`
	Address    string            `json:"address,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Status     map[Field]Status  `json:"status,omitempty"`
}

// Get returns the value of a canonical field.
func (r *ContactRecord) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldCategory:
		return r.Category
	case FieldHomepage:
		return r.Homepage
	case FieldPhone:
		return r.Phone
	case FieldFax:
		return r.Fax
	case FieldEmail:
		return r.Email
	case FieldMobile:
		return r.Mobile
	case FieldPostalCode:
		return r.PostalCode
	case FieldAddress:
		return r.Address
	default:
		return ""
	}
}

// Set assigns the value of a canonical field. Unknown fields are ignored.
func (r *ContactRecord) Set(f Field, v string) {
	switch f {
	case FieldName:
		r.Name = v
	case FieldCategory:
		r.Category = v
	case FieldHomepage:
		r.Homepage = v
	case FieldPhone:
		r.Phone = v
	case FieldFax:
		r.Fax = v
	case FieldEmail:
		r.Email = v
	case FieldMobile:
		r.Mobile = v
	case FieldPostalCode:
		r.PostalCode = v
	case FieldAddress:
		r.Address = v
	}
}

// StatusOf returns the normalization tag for a field.
func (r *ContactRecord) StatusOf(f Field) Status {
	return r.Status[f]
}

// SetStatus tags a field. StatusOK removes any existing tag.
func (r *ContactRecord) SetStatus(f Field, s Status) {
	if s == StatusOK {
		delete(r.Status, f)
		return
	}
	if r.Status == nil {
		r.Status = make(map[Field]Status)
	}
	r.Status[f] = s
}

// Row flattens the record back into a raw row, metadata included.
func (r *ContactRecord) Row() Row {
	row := make(Row, len(Fields)+len(r.Metadata))
	maps.Copy(row, r.Metadata)
	for _, f := range Fields {
		if v := r.Get(f); v != "" {
			row[string(f)] = v
		}
	}
	return row
}

// Clone returns a deep copy of the record.
func (r *ContactRecord) Clone() ContactRecord {
	c := *r
	c.Metadata = maps.Clone(r.Metadata)
	c.Status = maps.Clone(r.Status)
	return c
}

// FromRow maps a raw row onto a record without any cleanup. Keys that are
// not canonical fields become metadata.
func FromRow(row Row) ContactRecord {
	var r ContactRecord
	for k, v := range row {
		if f, ok := ParseField(k); ok {
			r.Set(f, v)
			continue
		}
		if r.Metadata == nil {
			r.Metadata = make(map[string]string)
		}
		r.Metadata[k] = v
	}
	return r
}
