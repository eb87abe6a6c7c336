package fakenews

import (
	"math"
	"testing"
)

func TestLoadDegradedWithoutArtifacts(t *testing.T) {
	c := Load("", "")
	if c.Available() {
		t.Fatal("classifier reports available without artifacts")
	}
	if got := c.Classify("some headline"); got != LabelUnknown {
		t.Errorf("degraded Classify = %q, want Unknown", got)
	}
}

func TestLoadDegradedWithMissingFiles(t *testing.T) {
	c := Load("/nonexistent/model.onnx", "/nonexistent/vocab.json")
	if c.Available() {
		t.Fatal("classifier reports available with missing files")
	}
	if got := c.Classify("some headline"); got != LabelUnknown {
		t.Errorf("Classify = %q, want Unknown", got)
	}
}

func TestNilClassifierIsUnknown(t *testing.T) {
	var c *Classifier
	if got := c.Classify("anything"); got != LabelUnknown {
		t.Errorf("nil Classify = %q, want Unknown", got)
	}
}

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"Breaking!! NEWS":           "breaking news",
		"  Mixed-CASE, text; here ": "mixed case text here",
		"already clean":             "already clean",
	}
	for input, want := range cases {
		if got := cleanText(input); got != want {
			t.Errorf("cleanText(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestVectorize(t *testing.T) {
	c := &Classifier{
		vocab: map[string]int{"fake": 0, "news": 1},
		idf:   []float32{1, 1},
	}
	got := c.vectorize("fake fake news other")
	if len(got) != 2 {
		t.Fatalf("row width %d", len(got))
	}

	// term counts [2, 1], L2 normalized
	norm := float32(math.Sqrt(5))
	want := []float32{2 / norm, 1 / norm}
	for i := range want {
		if diff := math.Abs(float64(got[i] - want[i])); diff > 1e-6 {
			t.Errorf("column %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestVectorizeEmptyRowStaysZero(t *testing.T) {
	c := &Classifier{
		vocab: map[string]int{"fake": 0},
		idf:   []float32{1},
	}
	got := c.vectorize("unrelated words only")
	if got[0] != 0 {
		t.Errorf("expected zero row, got %v", got)
	}
}
