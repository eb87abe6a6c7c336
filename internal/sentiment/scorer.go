package sentiment

import (
	"log/slog"
	"strings"

	"github.com/newslens/newslens/internal/metrics"
	"github.com/newslens/newslens/internal/normalize"
)

// Model confidence below this forces Neutral rather than trusting a shaky
// class assignment.
const CONFIDENCE_FLOOR = 0.6

// modelScorer is what the multilingual path needs from a model. Satisfied by
// *MultilingualScorer; stubbed in tests.
type modelScorer interface {
	Score(text string) (string, float64, error)
}

// Result carries the canonical label, its localized display form, and the
// scorer's numeric output (VADER compound or model confidence).
type Result struct {
	Label   string
	Display string
	Score   float64
}

// Scorer routes text to the right backend by language: English goes through
// VADER, everything else through the multilingual model. Scoring never
// fails from the caller's view; every failure path degrades to Neutral.
type Scorer struct {
	vader *VaderScorer
	model modelScorer
}

// NewScorer builds a Scorer. Pass nil for model to run without the
// multilingual backend; non-English text then scores Neutral.
func NewScorer(model modelScorer) *Scorer {
	s := &Scorer{vader: NewVaderScorer()}
	if model != nil {
		s.model = model
	}
	return s
}

func (s *Scorer) Score(text, language string) Result {
	if language == "en" {
		cleaned := normalize.Normalize(text)
		if cleaned == normalize.Placeholder {
			return s.neutral(language)
		}
		label, compound := s.vader.Score(cleaned)
		return Result{Label: label, Display: DisplayLabel(label, language), Score: compound}
	}

	// The full normalizer folds text down to ASCII, which would erase
	// non-Latin scripts outright. The model path takes the text as-is.
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return s.neutral(language)
	}
	if s.model == nil {
		return s.neutral(language)
	}

	label, confidence, err := s.model.Score(trimmed)
	if err != nil {
		slog.Warn("[SentimentScorer] Model scoring failed, defaulting to Neutral",
			slog.String("language", language),
			slog.String("error", err.Error()))
		metrics.ScoreFailures.WithLabelValues(language).Inc()
		return s.neutral(language)
	}
	if confidence < CONFIDENCE_FLOOR {
		label = LabelNeutral
	}
	return Result{Label: label, Display: DisplayLabel(label, language), Score: confidence}
}

func (s *Scorer) neutral(language string) Result {
	return Result{Label: LabelNeutral, Display: DisplayLabel(LabelNeutral, language)}
}
