package writers

import (
	"io"

	"argpred/internal/output"
	"argpred/internal/predict"
)

func init() {
	RegisterPrediction(output.FormatText, func(w io.Writer, in <-chan predict.Prediction, opt Options) error {
		return output.StreamText(w, in, opt.Meta.Threshold)
	})
	RegisterPrediction(output.FormatTSV, func(w io.Writer, in <-chan predict.Prediction, opt Options) error {
		return output.StreamTSV(w, in, opt.Header)
	})
	RegisterPrediction(output.FormatJSON, func(w io.Writer, in <-chan predict.Prediction, opt Options) error {
		var buf []predict.Prediction
		for p := range in {
			buf = append(buf, p)
		}
		return output.WriteJSON(w, buf, opt.Meta)
	})
	RegisterPrediction(output.FormatJSONL, func(w io.Writer, in <-chan predict.Prediction, _ Options) error {
		out, done := StartPredictionJSONLWriter(w, cap(in))
		for p := range in {
			out <- p
		}
		close(out)
		return <-done
	})
}

// StartPredictionWriter spins up a writer goroutine for format. Predictions
// sent on the returned channel are rendered in order; the error channel
// yields exactly one value once the input is closed and drained.
func StartPredictionWriter(out io.Writer, format string, meta output.Meta, header bool, bufSize int) (chan<- predict.Prediction, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan predict.Prediction, bufSize)
	errCh := make(chan error, 1)

	go func() {
		err := WritePredictions(format, out, in, Options{Meta: meta, Header: header})
		// a handler that stopped early must not leave senders blocked
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
