// Package scrape turns saved HTML pages into plain text the field extractor
// can read.
package scrape

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/rotisserie/eris"
)

// MetaPageTitle is the record metadata key holding the <title> of the page a
// record was extracted from.
const MetaPageTitle = "page_title"

// Page is the text form of one HTML document.
type Page struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

var (
	titleRe  = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	imageRe  = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe   = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]*)(?:\s+"[^"]*")?\)`)
	escapeRe = regexp.MustCompile(`\\([\\` + "`" + `*_{}\[\]()#+\-.!|~<>])`)
	headRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	spaceRe  = regexp.MustCompile(`[ \t]+`)
	blankRe  = regexp.MustCompile(`\n{3,}`)
)

// Convert parses an HTML document into a Page.
func Convert(html string) (Page, error) {
	text, err := PageText(html)
	if err != nil {
		return Page{}, err
	}
	return Page{Title: extractTitle(html), Text: text}, nil
}

// PageText converts HTML to plain text. Markdown markup is removed; a link
// keeps its text followed by its target, with tel: and mailto: schemes
// dropped, so numbers and addresses that only appear in hrefs survive.
func PageText(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", eris.Wrap(err, "scrape: convert html")
	}

	md = imageRe.ReplaceAllString(md, "")
	md = linkRe.ReplaceAllStringFunc(md, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		text, href := strings.TrimSpace(sub[1]), sub[2]
		href = strings.TrimPrefix(href, "tel:")
		href = strings.TrimPrefix(href, "mailto:")
		if href == "" || href == text || strings.HasPrefix(href, "#") {
			return text
		}
		if text == "" {
			return href
		}
		return text + " " + href
	})
	md = strings.NewReplacer("**", "", "__", "").Replace(md)
	md = escapeRe.ReplaceAllString(md, "$1")
	md = headRe.ReplaceAllString(md, "")
	md = spaceRe.ReplaceAllString(md, " ")
	md = blankRe.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md), nil
}

// extractTitle pulls the <title> from HTML.
func extractTitle(html string) string {
	if m := titleRe.FindStringSubmatch(html); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}
