package api

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
)

const MAX_CSV_UPLOAD_BYTES = 10 << 20

// handlePredictSentiment scores an uploaded CSV row by row. The file must
// carry a "text" column; a "language" column, when present, routes each row
// to the matching scorer. All original columns are echoed back with a
// predicted_label column added.
//
// A file without a text column is a well-formed request with a disappointing
// answer, so it gets a 200 with a structured error body.
func (s *Server) handlePredictSentiment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MAX_CSV_UPLOAD_BYTES)

	file, _, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "a CSV file upload named 'file' is required")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		respondWithJSON(w, http.StatusOK, map[string]string{"error": "CSV must contain a 'text' column."})
		return
	}

	textIdx, languageIdx := -1, -1
	for i, column := range header {
		switch column {
		case "text":
			textIdx = i
		case "language":
			languageIdx = i
		}
	}
	if textIdx == -1 {
		respondWithJSON(w, http.StatusOK, map[string]string{"error": "CSV must contain a 'text' column."})
		return
	}

	rows := []map[string]string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed CSV row")
			return
		}

		language := "en"
		if languageIdx != -1 && languageIdx < len(record) && record[languageIdx] != "" {
			language = record[languageIdx]
		}
		result := s.Scorer.Score(record[textIdx], language)

		row := make(map[string]string, len(header)+1)
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		row["predicted_label"] = result.Label
		rows = append(rows, row)
	}

	respondWithJSON(w, http.StatusOK, rows)
}
