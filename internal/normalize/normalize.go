package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder replaces text that cleans down to nothing. It survives a
// second Normalize call unchanged, which keeps the function idempotent.
const Placeholder = "no content"

var (
	urlPattern        = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	mentionPattern    = regexp.MustCompile(`[@#]\w+`)
	retweetPattern    = regexp.MustCompile(`(?i)\bRT\s*:\s*`)
	charsetPattern    = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// NFKD decomposition followed by combining-mark removal, the usual
	// x/text recipe for folding accented text down to its ASCII base.
	asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
)

// Normalize cleans raw article or comment text for scoring: emoji become
// their textual names, URLs/mentions/hashtags/retweet markers are stripped,
// Unicode is folded to ASCII, elongated spellings are collapsed, and anything
// outside [a-zA-Z0-9\s.,!?] is removed. Empty results come back as
// Placeholder, never as "".
//
// The pass repeats until the text stops changing: stripping a symbol can
// expose a token an earlier-ordered rule matches (a bare "www." after a
// stray character is removed), and a single pass would leave it behind.
func Normalize(text string) string {
	out := pass(text)
	for prev := text; out != prev; {
		prev = out
		out = pass(out)
	}
	if out == "" {
		return Placeholder
	}
	return out
}

func pass(text string) string {
	out := demojize(text)
	out = urlPattern.ReplaceAllString(out, " ")
	out = mentionPattern.ReplaceAllString(out, " ")
	out = retweetPattern.ReplaceAllString(out, " ")
	if folded, _, err := transform.String(asciiFold, out); err == nil {
		out = folded
	}
	out = dropNonASCII(out)
	out = collapseRuns(out)
	out = charsetPattern.ReplaceAllString(out, "")
	out = whitespacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// demojize swaps each emoji for its spelled-out name so the sentiment of
// "great 😊" is not lost when non-ASCII characters get dropped.
func demojize(text string) string {
	if !gomoji.ContainsEmoji(text) {
		return text
	}
	for _, e := range gomoji.FindAll(text) {
		name := strings.ReplaceAll(e.Slug, "-", " ")
		text = strings.ReplaceAll(text, e.Character, " "+name+" ")
	}
	return text
}

func dropNonASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseRuns squeezes runs of the same character down to one occurrence,
// taming elongated informal spellings like "sooo goood". RE2 has no
// backreferences, so this is a plain rune walk.
func collapseRuns(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	prev := rune(-1)
	for _, r := range text {
		if r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
