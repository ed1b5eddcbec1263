// Package extract parses fetched HTML into the plain-text view the signal
// detector and normalizer consume.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Content is the immutable extraction result for one fetched page.
type Content struct {
	Text            string
	Links           []string
	Title           string
	MetaDescription string
}

// Text is capped so signal scanning stays bounded on pathological pages.
const maxTextChars = 10_000

// Parse turns raw HTML into Content. Scripts and styles are stripped, link
// hrefs are collected verbatim (not resolved), and the visible text is
// capped at maxTextChars. Parse never fails: on a parser error it degrades
// to the first maxTextChars raw characters with everything else empty.
func Parse(html string) Content {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Content{Text: truncate(html, maxTextChars)}
	}

	doc.Find("script, style").Remove()

	text := strings.TrimSpace(truncate(doc.Find("body").Text(), maxTextChars))

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})

	title := doc.Find("title").First().Text()
	meta := doc.Find(`meta[name="description"]`).AttrOr("content", "")

	return Content{
		Text:            text,
		Links:           links,
		Title:           title,
		MetaDescription: meta,
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
