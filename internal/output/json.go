// internal/output/json.go
package output

import (
	"io"

	"argpred/internal/jsonutil"
	"argpred/internal/predict"
	"argpred/pkg/api"
)

// ToAPIPrediction converts a domain Prediction to the stable wire schema (v1).
func ToAPIPrediction(p predict.Prediction) api.PredictionV1 {
	return api.PredictionV1{
		SequenceID:  p.ID,
		Probability: p.Probability,
		Class:       string(p.Class),
		Length:      p.Length,
		Truncated:   p.Truncated,
	}
}

// ToAPIReport wraps list and meta in a v1 report. Predictions is never nil.
func ToAPIReport(list []predict.Prediction, meta Meta) api.ReportV1 {
	preds := make([]api.PredictionV1, 0, len(list))
	for _, p := range list {
		preds = append(preds, ToAPIPrediction(p))
	}
	return api.ReportV1{
		RunID:       meta.RunID,
		Model:       meta.Model,
		Threshold:   meta.Threshold,
		MaxLength:   meta.MaxLength,
		Predictions: preds,
	}
}

// WriteJSON writes a single pretty-indented v1 report.
func WriteJSON(w io.Writer, list []predict.Prediction, meta Meta) error {
	return jsonutil.EncodePretty(w, ToAPIReport(list, meta))
}
