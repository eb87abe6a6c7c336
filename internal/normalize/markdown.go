package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// StripLinks keeps the anchor text of markdown links and drops bare URLs.
func StripLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// MarkdownToText renders markdown and flattens the result to plain text,
// used on Reddit comment bodies before scoring.
func MarkdownToText(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := HTMLToText(string(rendered))
	plain = strings.Join(strings.Fields(plain), " ")
	return strings.TrimSpace(StripLinks(plain))
}

// HTMLToText extracts the text content of an HTML fragment. RSS feeds
// routinely ship markup inside summaries.
func HTMLToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}
