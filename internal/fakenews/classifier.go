package fakenews

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"regexp"
	"strings"
	"sync"

	onnxruntime "github.com/yalue/onnxruntime_go"
)

// Classifier labels. Unknown is the degraded-mode answer, never an error.
const (
	LabelReal    = "Real"
	LabelFake    = "Fake"
	LabelUnknown = "Unknown"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error

	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9\s]+`)
)

// vectorizerArtifact is the exported TF-IDF vocabulary: term to column index
// plus the per-column IDF weights, serialized as JSON next to the model.
type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float32      `json:"idf"`
}

// Classifier scores headlines with a TF-IDF vectorizer and an ONNX
// classification model. When either artifact fails to load the classifier
// stays usable and answers Unknown for everything.
type Classifier struct {
	modelPath string
	vocab     map[string]int
	idf       []float32
	available bool
}

func initializeORT() error {
	ortInitOnce.Do(func() {
		libPath := os.Getenv("ONNX_LIB_PATH")
		if libPath != "" {
			onnxruntime.SetSharedLibraryPath(libPath)
		}
		ortInitErr = onnxruntime.InitializeEnvironment()
		if ortInitErr != nil {
			ortInitErr = fmt.Errorf("[FakeNewsClassifier] ONNX Runtime init failed: %w", ortInitErr)
		}
	})
	return ortInitErr
}

// Load reads the model and vocabulary artifacts. It never fails the caller:
// missing or unreadable artifacts produce a degraded classifier.
func Load(modelPath, vocabPath string) *Classifier {
	c := &Classifier{modelPath: modelPath}

	if modelPath == "" || vocabPath == "" {
		slog.Warn("[FakeNewsClassifier] Model artifacts not configured, running degraded")
		return c
	}

	raw, err := os.ReadFile(vocabPath)
	if err != nil {
		slog.Warn("[FakeNewsClassifier] Failed to read vocabulary, running degraded",
			slog.String("path", vocabPath),
			slog.String("error", err.Error()))
		return c
	}
	var artifact vectorizerArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		slog.Warn("[FakeNewsClassifier] Failed to parse vocabulary, running degraded",
			slog.String("error", err.Error()))
		return c
	}
	if len(artifact.IDF) == 0 || len(artifact.Vocabulary) == 0 {
		slog.Warn("[FakeNewsClassifier] Vocabulary artifact is empty, running degraded")
		return c
	}

	if _, err := os.Stat(modelPath); err != nil {
		slog.Warn("[FakeNewsClassifier] Model file missing, running degraded",
			slog.String("path", modelPath),
			slog.String("error", err.Error()))
		return c
	}
	if err := initializeORT(); err != nil {
		slog.Warn("[FakeNewsClassifier] Running degraded",
			slog.String("error", err.Error()))
		return c
	}

	c.vocab = artifact.Vocabulary
	c.idf = artifact.IDF
	c.available = true
	slog.Info("[FakeNewsClassifier] Model loaded",
		slog.String("path", modelPath),
		slog.Int("vocabulary_size", len(c.vocab)))
	return c
}

func (c *Classifier) Available() bool {
	return c != nil && c.available
}

// Classify labels one headline. Any failure along the way degrades to
// Unknown; the pipeline treats the classifier as a best-effort annotation.
func (c *Classifier) Classify(text string) string {
	if !c.Available() {
		return LabelUnknown
	}

	features := c.vectorize(cleanText(text))

	inputShape := onnxruntime.Shape{1, int64(len(c.idf))}
	inputTensor, err := onnxruntime.NewTensor(inputShape, features)
	if err != nil {
		slog.Warn("[FakeNewsClassifier] Input tensor error",
			slog.String("error", err.Error()))
		return LabelUnknown
	}
	defer inputTensor.Destroy()

	// Two classes; the model is exported with zipmap disabled so the
	// probabilities come back as a plain float tensor.
	outputTensor, err := onnxruntime.NewEmptyTensor[float32](onnxruntime.Shape{1, 2})
	if err != nil {
		slog.Warn("[FakeNewsClassifier] Output tensor error",
			slog.String("error", err.Error()))
		return LabelUnknown
	}
	defer outputTensor.Destroy()

	session, err := onnxruntime.NewAdvancedSession(
		c.modelPath,
		[]string{"float_input"},
		[]string{"probabilities"},
		[]onnxruntime.Value{inputTensor},
		[]onnxruntime.Value{outputTensor},
		nil,
	)
	if err != nil {
		slog.Warn("[FakeNewsClassifier] Session error",
			slog.String("error", err.Error()))
		return LabelUnknown
	}
	defer session.Destroy()

	if err := session.Run(); err != nil {
		slog.Warn("[FakeNewsClassifier] Inference failed",
			slog.String("error", err.Error()))
		return LabelUnknown
	}

	probabilities := outputTensor.GetData()
	if len(probabilities) != 2 {
		slog.Warn("[FakeNewsClassifier] Unexpected output width",
			slog.Int("got", len(probabilities)))
		return LabelUnknown
	}
	if probabilities[1] >= probabilities[0] {
		return LabelReal
	}
	return LabelFake
}

// cleanText mirrors the preprocessing the model was trained with: lowercase,
// strip everything outside [a-z0-9\s], squeeze whitespace.
func cleanText(text string) string {
	lowered := strings.ToLower(text)
	lowered = nonAlnumPattern.ReplaceAllString(lowered, " ")
	return strings.Join(strings.Fields(lowered), " ")
}

// vectorize builds the L2-normalized TF-IDF row for one cleaned text.
func (c *Classifier) vectorize(cleaned string) []float32 {
	features := make([]float32, len(c.idf))
	for _, term := range strings.Fields(cleaned) {
		if idx, ok := c.vocab[term]; ok && idx < len(features) {
			features[idx]++
		}
	}

	var sumSquares float64
	for i := range features {
		features[i] *= c.idf[i]
		sumSquares += float64(features[i]) * float64(features[i])
	}
	if sumSquares > 0 {
		norm := float32(math.Sqrt(sumSquares))
		for i := range features {
			features[i] /= norm
		}
	}
	return features
}
