package sentiment

import (
	"github.com/jonreiter/govader"
)

// Compound-score cutoffs for mapping VADER output onto labels.
const (
	POSITIVE_THRESHOLD = 0.05
	NEGATIVE_THRESHOLD = -0.05
)

// VaderScorer labels English text with the VADER lexicon. The analyzer is
// stateless across calls and safe to share.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the canonical label and the raw compound score in [-1, 1].
func (v *VaderScorer) Score(text string) (string, float64) {
	compound := v.analyzer.PolarityScores(text).Compound
	return labelForCompound(compound), compound
}

func labelForCompound(compound float64) string {
	switch {
	case compound >= POSITIVE_THRESHOLD:
		return LabelPositive
	case compound <= NEGATIVE_THRESHOLD:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
