package sentiment

import (
	"errors"
	"testing"
)

func TestLabelForCompound(t *testing.T) {
	cases := []struct {
		compound float64
		want     string
	}{
		{0.05, LabelPositive},
		{0.9, LabelPositive},
		{-0.05, LabelNegative},
		{-0.7, LabelNegative},
		{0.049, LabelNeutral},
		{-0.049, LabelNeutral},
		{0, LabelNeutral},
	}
	for _, c := range cases {
		if got := labelForCompound(c.compound); got != c.want {
			t.Errorf("labelForCompound(%v) = %q, want %q", c.compound, got, c.want)
		}
	}
}

func TestVaderScorerObviousPolarity(t *testing.T) {
	v := NewVaderScorer()
	if label, _ := v.Score("I love this wonderful amazing movie"); label != LabelPositive {
		t.Errorf("positive text labeled %q", label)
	}
	if label, _ := v.Score("I hate this terrible awful disaster"); label != LabelNegative {
		t.Errorf("negative text labeled %q", label)
	}
}

type stubModel struct {
	label      string
	confidence float64
	err        error
	calls      int
}

func (s *stubModel) Score(text string) (string, float64, error) {
	s.calls++
	return s.label, s.confidence, s.err
}

func TestScorerConfidenceFloor(t *testing.T) {
	model := &stubModel{label: LabelPositive, confidence: 0.59}
	s := NewScorer(model)
	if got := s.Score("यह बहुत अच्छी खबर है", "hi"); got.Label != LabelNeutral {
		t.Errorf("confidence 0.59 gave %q, want Neutral", got.Label)
	}

	model.confidence = 0.61
	if got := s.Score("यह बहुत अच्छी खबर है", "hi"); got.Label != LabelPositive {
		t.Errorf("confidence 0.61 gave %q, want Positive", got.Label)
	}
}

func TestScorerModelFailureDefaultsNeutral(t *testing.T) {
	model := &stubModel{err: errors.New("session gone")}
	s := NewScorer(model)
	got := s.Score("कुछ समाचार", "hi")
	if got.Label != LabelNeutral {
		t.Errorf("got %q, want Neutral", got.Label)
	}
	if got.Display != DisplayLabel(LabelNeutral, "hi") {
		t.Errorf("display = %q", got.Display)
	}
}

func TestScorerEmptyTextSkipsModel(t *testing.T) {
	model := &stubModel{label: LabelPositive, confidence: 0.99}
	s := NewScorer(model)
	got := s.Score("   ", "hi")
	if got.Label != LabelNeutral || got.Score != 0 {
		t.Errorf("got %+v, want Neutral with zero score", got)
	}
	if model.calls != 0 {
		t.Errorf("model was called %d times on empty input", model.calls)
	}
}

func TestScorerEnglishUsesVader(t *testing.T) {
	model := &stubModel{label: LabelNegative, confidence: 0.99}
	s := NewScorer(model)
	got := s.Score("what a wonderful fantastic day", "en")
	if got.Label != LabelPositive {
		t.Errorf("got %q, want Positive from VADER", got.Label)
	}
	if model.calls != 0 {
		t.Errorf("model was consulted for English text")
	}
}

func TestScorerNoModelDegradesToNeutral(t *testing.T) {
	s := NewScorer(nil)
	if got := s.Score("कुछ समाचार", "hi"); got.Label != LabelNeutral {
		t.Errorf("got %q, want Neutral", got.Label)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := DisplayLabel(LabelPositive, "hi"); got != "सकारात्मक 😊" {
		t.Errorf("got %q", got)
	}
	if got := DisplayLabel(LabelPositive, "en"); got != LabelPositive {
		t.Errorf("got %q", got)
	}
	if got := DisplayLabel(LabelPositive, "ta"); got != LabelPositive {
		t.Errorf("unknown language got %q", got)
	}
}

func TestCanonicalLabel(t *testing.T) {
	cases := map[string]string{
		"POSITIVE": LabelPositive,
		"negative": LabelNegative,
		"NEUTRAL":  LabelNeutral,
		"5 stars":  LabelPositive,
		"4 stars":  LabelPositive,
		"3 stars":  LabelNeutral,
		"2 stars":  LabelNegative,
		"1 star":   LabelNegative,
		"LABEL_9":  LabelNeutral,
	}
	for raw, want := range cases {
		if got := CanonicalLabel(raw); got != want {
			t.Errorf("CanonicalLabel(%q) = %q, want %q", raw, got, want)
		}
	}
}
