package canon

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// PageText reduces a wiki page to whitespace-normalised plain text. Scripts, styles and
// noscript blocks are dropped and the article body is used when the page has one.
func PageText(page string) string {
	if strings.TrimSpace(page) == "" {
		return ""
	}

	markup := page
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page)); err == nil {
		doc.Find("script, style, noscript").Remove()
		content := doc.Find(".mw-parser-output").First()
		if content.Length() == 0 {
			content = doc.Find("body")
		}
		if inner, err := goquery.OuterHtml(content); err == nil && inner != "" {
			markup = inner
		}
	}

	text := html.UnescapeString(textPolicy.Sanitize(markup))
	return strings.Join(strings.Fields(text), " ")
}
