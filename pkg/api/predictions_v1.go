// pkg/api/predictions_v1.go
package api

// PredictionV1 is the stable JSON/JSONL schema for one classified sequence.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type PredictionV1 struct {
	SequenceID  string  `json:"sequence_id"`
	Probability float64 `json:"probability"`
	Class       string  `json:"class"` // "ARG" | "Non-ARG"
	Length      int     `json:"length"`
	Truncated   bool    `json:"truncated,omitempty"`
}

// ReportV1 wraps a whole run for the pretty JSON output.
type ReportV1 struct {
	RunID       string         `json:"run_id"`
	Model       string         `json:"model,omitempty"`
	Threshold   float64        `json:"threshold"`
	MaxLength   int            `json:"max_length"`
	Predictions []PredictionV1 `json:"predictions"`
}
