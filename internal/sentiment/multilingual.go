package sentiment

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const MULTILINGUAL_MODEL_ID = "nlptown/bert-base-multilingual-uncased-sentiment"

// MultilingualScorer runs a transformer classification pipeline over ONNX
// Runtime for languages VADER cannot handle. Construction is expensive;
// build one per process and share it.
type MultilingualScorer struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewMultilingualScorer loads the classification model from modelDir,
// downloading it on first run when the directory is empty.
func NewMultilingualScorer(modelDir string) (*MultilingualScorer, error) {
	if modelDir == "" {
		modelDir = "./models/sentiment"
	}
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("[MultilingualScorer] failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, "model.onnx")
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[MultilingualScorer] Model not found, downloading...",
			slog.String("model", MULTILINGUAL_MODEL_ID))
		downloaded, err := hugot.DownloadModel(MULTILINGUAL_MODEL_ID, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("[MultilingualScorer] model download failed: %w", err)
		}
		modelPath = downloaded
		slog.Info("[MultilingualScorer] Model downloaded successfully",
			slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[MultilingualScorer] failed to initialize Hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "multilingualSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("[MultilingualScorer] failed to initialize pipeline: %w", err)
	}

	return &MultilingualScorer{session: session, pipeline: pipeline}, nil
}

// Score classifies one text and returns the canonical label with the model's
// confidence for the winning class.
func (m *MultilingualScorer) Score(text string) (string, float64, error) {
	output, err := m.pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", 0, fmt.Errorf("[MultilingualScorer] inference failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return "", 0, fmt.Errorf("[MultilingualScorer] model returned no classes")
	}

	top := output.ClassificationOutputs[0][0]
	for _, candidate := range output.ClassificationOutputs[0][1:] {
		if candidate.Score > top.Score {
			top = candidate
		}
	}
	return CanonicalLabel(top.Label), float64(top.Score), nil
}

func (m *MultilingualScorer) Close() {
	if m.session != nil {
		m.session.Destroy()
	}
}
