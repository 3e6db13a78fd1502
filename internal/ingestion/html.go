package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockTags get a line break after their text so paragraphs survive
// flattening.
const blockTags = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr"

// HTMLToText converts an HTML fragment to plain text. Scripts, styles and
// other non-content elements are dropped. Input without markup is returned
// cleaned but otherwise unchanged.
func HTMLToText(content string) (string, error) {
	if !looksLikeHTML(content) {
		return CleanText(content), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, nav, footer").Remove()
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find(blockTags).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(doc.Find("body").Text()), nil
}

func looksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}
