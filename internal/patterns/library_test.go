package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-cli/internal/model"
)

func TestDefault_HasEveryExtractableField(t *testing.T) {
	lib := Default()

	assert.Equal(t, []model.Field{
		model.FieldHomepage,
		model.FieldPhone,
		model.FieldFax,
		model.FieldEmail,
		model.FieldMobile,
		model.FieldPostalCode,
		model.FieldAddress,
	}, lib.Fields())
	assert.Nil(t, lib.Cascade(model.FieldName))
}

func TestDefault_LabeledBeforeBare(t *testing.T) {
	lib := Default()

	for _, f := range []model.Field{model.FieldPhone, model.FieldEmail, model.FieldHomepage, model.FieldMobile} {
		cascade := lib.Cascade(f)
		require.NotEmpty(t, cascade, f)
		first, ok := cascade[0].(*Pattern)
		require.True(t, ok)
		assert.Contains(t, first.Name(), "labeled", f)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]byte("phone: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode rules")

	_, err = Load([]byte("nickname:\n  - name: x\n    expr: 'x'\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "nickname"`)

	_, err = Load([]byte("phone:\n  - name: broken\n    expr: '(unclosed'\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone[0]")

	_, err = Load([]byte("phone:\n  - name: empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty expr")
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad([]byte("bogus: [")) })
}

func TestPattern_GroupAndBounds(t *testing.T) {
	lib := MustLoad([]byte(`
phone:
  - name: digits
    expr: '(\d{3}-\d{4})'
    digit_bounded: true
`))
	p := lib.Cascade(model.FieldPhone)[0]

	m, ok := p.MatchFirst("call 9123-4567 or 555-1234 today")
	require.True(t, ok)
	assert.Equal(t, "555-1234", m.Value)
	assert.Equal(t, "digits", m.Pattern)
	assert.Equal(t, "call 9123-4567 or 555-1234 today"[m.Start:m.End], m.Value)

	_, ok = p.MatchFirst("no numbers")
	assert.False(t, ok)
}

func TestPattern_NotAfter(t *testing.T) {
	lib := MustLoad([]byte(`
phone:
  - name: bare
    expr: '(0\d-\d{4}-\d{4})'
    not_after: ['fax']
`))
	p := lib.Cascade(model.FieldPhone)[0]

	all := p.MatchAll("FAX: 02-1111-2222 / 02-3333-4444")
	require.Len(t, all, 1)
	assert.Equal(t, "02-3333-4444", all[0].Value)

	m, ok := p.MatchFirst("(Fax) 02-1111-2222")
	assert.False(t, ok, "got %q", m.Value)
}

func TestPattern_TemplateTrimAndChars(t *testing.T) {
	lib := MustLoad([]byte(`
email:
  - name: obfuscated
    expr: '([a-z]+)\s*\(at\)\s*([a-z]+\.[a-z]+)'
    template: '$1@$2'
address:
  - name: labeled
    expr: '주소\s*:\s*([^\n]+)'
    trim_at: ['전화']
    trim_chars: ' ,'
`))

	m, ok := lib.Cascade(model.FieldEmail)[0].MatchFirst("mail me: pastor (at) grace.org")
	require.True(t, ok)
	assert.Equal(t, "pastor@grace.org", m.Value)

	m, ok = lib.Cascade(model.FieldAddress)[0].MatchFirst("주소: 서울 종로구 종로 1, 전화: 02-123-4567")
	require.True(t, ok)
	assert.Equal(t, "서울 종로구 종로 1", m.Value)
}

func TestDefault_PhoneCascade(t *testing.T) {
	cascade := Default().Cascade(model.FieldPhone)

	tests := []struct {
		name    string
		text    string
		pattern string
		value   string
	}{
		{"korean label", "전화: 02-123-4567", "labeled_phone", "02-123-4567"},
		{"tel label", "TEL. 031-765-4321", "labeled_phone", "031-765-4321"},
		{"inquiry label", "문의: 02-1234-5678, FAX:02-1234-5679", "labeled_phone", "02-1234-5678"},
		{"representative", "대표번호 1588-1234", "labeled_phone", "1588-1234"},
		{"international", "Tel +82-2-1234-5678", "labeled_phone", "+82-2-1234-5678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := cascade[0].MatchFirst(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.pattern, m.Pattern)
			assert.Equal(t, tt.value, m.Value)
		})
	}

	// A mobile label is not a phone label.
	_, ok := cascade[0].MatchFirst("휴대전화: 010-9876-5432")
	assert.False(t, ok)

	// The bare pattern skips a fax-labeled number.
	m, ok := cascade[1].MatchFirst("FAX 02-111-2222, 02-333-4444")
	require.True(t, ok)
	assert.Equal(t, "02-333-4444", m.Value)
}
