package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const churchHTML = `<html><head><title> 사랑의교회 - 오시는 길 </title>
<style>.x { color: red }</style></head>
<body>
<h2>오시는 길</h2>
<p><strong>주소</strong>: 서울특별시 서초구 반포대로 121</p>
<p><b>전화</b>: 02-3479-7000</p>
<p>문의 <a href="tel:02-3479-7001">대표번호로 전화하기</a></p>
<p><a href="mailto:info@sarang.org">메일 보내기</a></p>
<p><a href="https://www.sarang.org">https://www.sarang.org</a></p>
<img src="/img/logo@2x.png" alt="logo">
<script>var phone = "010-0000-0000";</script>
</body></html>`

func TestPageText(t *testing.T) {
	text, err := PageText(churchHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "주소: 서울특별시 서초구 반포대로 121")
	assert.Contains(t, text, "전화: 02-3479-7000")
	assert.Contains(t, text, "대표번호로 전화하기 02-3479-7001")
	assert.Contains(t, text, "메일 보내기 info@sarang.org")
	assert.Contains(t, text, "https://www.sarang.org")
	assert.NotContains(t, text, "https://www.sarang.org https://www.sarang.org")
	assert.NotContains(t, text, "logo@2x.png")
	assert.NotContains(t, text, "010-0000-0000")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "## ")
}

func TestPageText_Empty(t *testing.T) {
	text, err := PageText("")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestConvert(t *testing.T) {
	page, err := Convert(churchHTML)
	require.NoError(t, err)
	assert.Equal(t, "사랑의교회 - 오시는 길", page.Title)
	assert.Contains(t, page.Text, "오시는 길")
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Home", extractTitle(`<TITLE lang="en">Home</TITLE>`))
	assert.Empty(t, extractTitle("<p>no title</p>"))
}
