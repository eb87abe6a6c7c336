package normalize

import (
	"strings"
	"testing"
)

func TestNormalizeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n", "@user #tag http://x.io/a"} {
		if got := Normalize(input); got != Placeholder {
			t.Errorf("Normalize(%q) = %q, want placeholder", input, got)
		}
	}
}

func TestNormalizeStripsURLs(t *testing.T) {
	got := Normalize("read this http://example.com/a now")
	if got != "read this now" {
		t.Errorf("got %q", got)
	}
	got = Normalize("see www.example.com for more")
	if strings.Contains(got, "example") {
		t.Errorf("bare www URL survived: %q", got)
	}
}

func TestNormalizeStripsMentionsAndHashtags(t *testing.T) {
	got := Normalize("@user loves #golang today")
	if got != "loves today" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeStripsRetweetMarker(t *testing.T) {
	got := Normalize("RT: market update today")
	if got != "market update today" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeCollapsesElongation(t *testing.T) {
	if got := Normalize("sooo goood"); got != "so god" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeFoldsAccents(t *testing.T) {
	if got := Normalize("café résumé"); got != "cafe resume" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeKeepsSentencePunctuation(t *testing.T) {
	if got := Normalize("wait, really?! yes."); got != "wait, realy?! yes." {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeDemojizes(t *testing.T) {
	got := Normalize("great day 😊")
	if !strings.HasPrefix(got, "great day ") || !strings.Contains(got, "smiling") {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text already",
		"RT: @user check https://t.co/abc 😊 soooo cool!!! #wow",
		"«RT hello» http://x.io",
		"naïve café ☕ crowd",
		"www♥.example mixed",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestMarkdownToText(t *testing.T) {
	got := MarkdownToText("**bold** and [a link](https://example.com) plus https://bare.example")
	if strings.Contains(got, "*") || strings.Contains(got, "example.com") || strings.Contains(got, "bare") {
		t.Errorf("markup survived: %q", got)
	}
	if !strings.Contains(got, "bold") || !strings.Contains(got, "a link") {
		t.Errorf("text lost: %q", got)
	}
}

func TestHTMLToText(t *testing.T) {
	got := HTMLToText(`<p>Breaking: <b>markets</b> rally</p>`)
	if got != "Breaking: markets rally" {
		t.Errorf("got %q", got)
	}
}
