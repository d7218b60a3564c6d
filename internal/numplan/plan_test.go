package numplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_OrdersLongestPrefixFirst(t *testing.T) {
	p := New([]Code{
		{Prefix: "01", Region: "short", MinDigits: 9, MaxDigits: 10},
		{Prefix: "010", Region: "mobile", Class: ClassMobile, MinDigits: 11, MaxDigits: 11},
		{Prefix: "1588", Region: "rep", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	})

	codes := p.codes
	require.Len(t, codes, 3)
	assert.Equal(t, "1588", codes[0].Prefix)
	assert.Equal(t, "010", codes[1].Prefix)
	assert.Equal(t, "01", codes[2].Prefix)

	c, ok := p.ExtractCode("010-1234-5678")
	require.True(t, ok)
	assert.Equal(t, "010", c.Prefix)
}

func TestExtractCode(t *testing.T) {
	p := Default()

	tests := []struct {
		phone  string
		prefix string
		ok     bool
	}{
		{"010-1234-5678", "010", true},
		{"02-1234-5678", "02", true},
		{"(031) 123-4567", "031", true},
		{"070.1234.5678", "070", true},
		{"1588-1234", "1588", true},
		{"+82 10 1234 5678", "010", true},
		{"099-123-4567", "", false},
		{"", "", false},
		{"없음", "", false},
	}
	for _, tt := range tests {
		c, ok := p.ExtractCode(tt.phone)
		assert.Equal(t, tt.ok, ok, "phone: %q", tt.phone)
		assert.Equal(t, tt.prefix, c.Prefix, "phone: %q", tt.phone)
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"02-1234-5678", "0212345678"},
		{"(02) 123 4567", "021234567"},
		{"+82-2-1234-5678", "0212345678"},
		{"+82 (0)2 1234 5678", "0212345678"},
		{"0082-10-1234-5678", "01012345678"},
		{"031-123-4567 내선 204", "0311234567"},
		{"031-123-4567 (ext. 9)", "0311234567"},
		{"02-1234-5678~9", "0212345678"},
		{"０２－１２３４－５６７８", "0212345678"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Digits(tt.in), "input: %q", tt.in)
	}
}

func TestValidate(t *testing.T) {
	p := Default()

	valid := []string{
		"02-123-4567",
		"02-1234-5678",
		"031-123-4567",
		"031-1234-5678",
		"064 712 3456",
		"010-1234-5678",
		"01012345678",
		"070-1234-5678",
		"080-123-4567",
		"1588-1234",
	}
	for _, phone := range valid {
		assert.True(t, p.Validate(phone), "expected valid: %q", phone)
	}

	invalid := []string{
		"",
		"02-123-456",
		"02-12345-67890",
		"031-12-3456",
		"010-123-4567",
		"070-123-4567",
		"1588-12345",
		"099-1234-5678",
		"12345",
	}
	for _, phone := range invalid {
		assert.False(t, p.Validate(phone), "expected invalid: %q", phone)
	}
}

func TestFormat(t *testing.T) {
	p := Default()

	tests := []struct {
		in, want string
	}{
		{"021234567", "02-123-4567"},
		{"0212345678", "02-1234-5678"},
		{"(02)1234.5678", "02-1234-5678"},
		{"0311234567", "031-123-4567"},
		{"03112345678", "031-1234-5678"},
		{"01012345678", "010-1234-5678"},
		{"010 1234 5678", "010-1234-5678"},
		{"07012345678", "070-1234-5678"},
		{"0801234567", "080-123-4567"},
		{"15881234", "1588-1234"},
		{"+82-2-1234-5678", "02-1234-5678"},
		{"031-123-4567 내선 12", "031-123-4567"},
	}
	for _, tt := range tests {
		got, ok := p.Format(tt.in)
		require.True(t, ok, "input: %q", tt.in)
		assert.Equal(t, tt.want, got, "input: %q", tt.in)
	}

	_, ok := p.Format("099-1234-5678")
	assert.False(t, ok)
}

func TestFormat_Idempotent(t *testing.T) {
	p := Default()

	for _, phone := range []string{
		"02-123-4567", "02-1234-5678", "031-123-4567", "055-1234-5678",
		"010-9876-5432", "070-4000-1234", "080-555-1234", "1577-0000",
	} {
		first, ok := p.Format(phone)
		require.True(t, ok, phone)
		assert.Equal(t, phone, first, "canonical input should be unchanged")

		second, ok := p.Format(Digits(first))
		require.True(t, ok, phone)
		assert.Equal(t, first, second)
	}
}

func TestFormat_EveryCodeRoundTrips(t *testing.T) {
	p := Default()

	for _, c := range p.codes {
		for n := c.MinDigits; n <= c.MaxDigits; n++ {
			digits := c.Prefix
			for len(digits) < n {
				digits += "7"
			}
			formatted, ok := p.Format(digits)
			require.True(t, ok, "prefix %s len %d", c.Prefix, n)
			assert.Equal(t, formatted, FormatDigits(Digits(formatted), c))
			assert.True(t, p.Validate(formatted))
		}
	}
}

func TestFormatDigits(t *testing.T) {
	seoul, _ := Default().lookup("02")
	mobile, _ := Default().lookup("010")
	gyeonggi, _ := Default().lookup("031")
	rep, _ := Default().lookup("1588")

	assert.Equal(t, "02-123-4567", FormatDigits("021234567", seoul))
	assert.Equal(t, "02-1234-5678", FormatDigits("0212345678", seoul))
	assert.Equal(t, "010-1234-5678", FormatDigits("01012345678", mobile))
	assert.Equal(t, "031-123-4567", FormatDigits("0311234567", gyeonggi))
	assert.Equal(t, "031-1234-5678", FormatDigits("03112345678", gyeonggi))
	assert.Equal(t, "1588-1234", FormatDigits("15881234", rep))

	// Prefix mismatch is returned untouched.
	assert.Equal(t, "0311234567", FormatDigits("0311234567", seoul))
}

func TestPlan_lookup(t *testing.T) {
	c, ok := Default().lookup("064")
	require.True(t, ok)
	assert.Equal(t, "제주", c.Region)
	assert.Equal(t, ClassGeographic, c.Class)

	_, ok = Default().lookup("099")
	assert.False(t, ok)
}
