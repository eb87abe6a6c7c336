package sentiment

import (
	"strings"

	"github.com/forPelevin/gomoji"
)

// Emoji polarity sets. Comparison strips the U+FE0F variation selector so
// presentation variants of the same emoji match.
var (
	positiveEmoji = emojiSet("😊", "😂", "😍", "😄", "😁", "😎")
	negativeEmoji = emojiSet("☹️", "😢", "😡", "😠", "😭")
)

func emojiSet(chars ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(chars))
	for _, c := range chars {
		set[stripVariation(c)] = struct{}{}
	}
	return set
}

func stripVariation(emoji string) string {
	return strings.ReplaceAll(emoji, "\ufe0f", "")
}

// EmojiSentiment is a coarse signal computed on the raw text, independent of
// the lexical scorer: each distinct emoji from the positive set counts +1,
// each from the negative set -1, and the sign of the total is the label.
func EmojiSentiment(text string) string {
	score := 0
	for _, e := range gomoji.FindAll(text) {
		char := stripVariation(e.Character)
		if _, ok := positiveEmoji[char]; ok {
			score++
		} else if _, ok := negativeEmoji[char]; ok {
			score--
		}
	}
	switch {
	case score > 0:
		return LabelPositive
	case score < 0:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
