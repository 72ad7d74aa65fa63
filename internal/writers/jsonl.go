// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"argpred/internal/jsonlutil"
	"argpred/internal/output"
	"argpred/internal/predict"
)

// StartPredictionJSONLWriter streams each Prediction as one JSON line (v1).
func StartPredictionJSONLWriter(out io.Writer, bufSize int) (chan<- predict.Prediction, <-chan error) {
	return jsonlutil.Start[predict.Prediction](out, bufSize,
		func(enc *json.Encoder, p predict.Prediction) error {
			return enc.Encode(output.ToAPIPrediction(p))
		},
		IsBrokenPipe,
	)
}
