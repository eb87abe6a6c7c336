package sentiment

import "testing"

func TestEmojiSentiment(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"launch day 😊 😂 but one hiccup 😢", LabelPositive},
		{"rough week 😢 😭", LabelNegative},
		{"no emoji at all", LabelNeutral},
		{"balanced 😊 😢", LabelNeutral},
		{"unlisted emoji 🚀 only", LabelNeutral},
	}
	for _, c := range cases {
		if got := EmojiSentiment(c.text); got != c.want {
			t.Errorf("EmojiSentiment(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
