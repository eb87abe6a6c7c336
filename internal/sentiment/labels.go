package sentiment

import "strings"

// Canonical labels used everywhere internally. Distribution counts and
// stored records key off these; localized display strings ride alongside.
const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
	LabelNeutral  = "Neutral"
)

var displayLabels = map[string]map[string]string{
	"hi": {
		LabelPositive: "सकारात्मक 😊",
		LabelNegative: "नकारात्मक ☹️",
		LabelNeutral:  "तटस्थ 😐",
	},
}

// DisplayLabel returns the localized presentation form of a canonical label,
// falling back to the canonical label for languages without translations.
func DisplayLabel(label, language string) string {
	if byLang, ok := displayLabels[language]; ok {
		if display, ok := byLang[label]; ok {
			return display
		}
	}
	return label
}

// CanonicalLabel maps a classification-model label onto the canonical set.
// Handles both POSITIVE/NEGATIVE style heads and star-rating heads
// ("1 star" .. "5 stars").
func CanonicalLabel(raw string) string {
	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "pos"):
		return LabelPositive
	case strings.Contains(lowered, "neg"):
		return LabelNegative
	case strings.Contains(lowered, "star"):
		switch {
		case strings.HasPrefix(lowered, "4"), strings.HasPrefix(lowered, "5"):
			return LabelPositive
		case strings.HasPrefix(lowered, "1"), strings.HasPrefix(lowered, "2"):
			return LabelNegative
		}
	}
	return LabelNeutral
}
