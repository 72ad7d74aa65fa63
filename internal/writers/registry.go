// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"argpred/internal/output"
	"argpred/internal/predict"
)

// Options carries what a format handler may need besides the stream itself.
type Options struct {
	Meta   output.Meta
	Header bool
}

// Handler consumes every prediction from in and renders it to w.
type Handler func(w io.Writer, in <-chan predict.Prediction, opt Options) error

// Writer registry (format → handler). Populated from init() blocks.
var PredictionWriters = map[string]Handler{}

// RegisterPrediction adds or replaces (last wins) the handler for format.
func RegisterPrediction(format string, fn Handler) { PredictionWriters[format] = fn }

// Registered returns the known formats, sorted.
func Registered() []string {
	out := make([]string, 0, len(PredictionWriters))
	for f := range PredictionWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WritePredictions dispatches to the handler registered for format.
func WritePredictions(format string, w io.Writer, in <-chan predict.Prediction, opt Options) error {
	fn, ok := PredictionWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, in, opt)
}
