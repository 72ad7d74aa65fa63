// Package predict runs encoded sequences through a model and labels the
// results against a threshold.
package predict

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/andrew-torda/matrix"
	"github.com/klauspost/cpuid/v2"

	"argpred/internal/encode"
	"argpred/internal/fasta"
)

// Class is the label assigned to a sequence.
type Class string

const (
	ClassARG    Class = "ARG"
	ClassNonARG Class = "Non-ARG"
)

// Classify is strict: a probability equal to the threshold is Non-ARG.
func Classify(p, threshold float64) Class {
	if p > threshold {
		return ClassARG
	}
	return ClassNonARG
}

// Prediction is the outcome for one FASTA record.
type Prediction struct {
	ID          string
	Length      int  // raw sequence length
	Truncated   bool // Length exceeded the encoder length
	Probability float64
	Class       Class
}

// Predictor is a batch model: one probability per input, in input order.
type Predictor interface {
	Predict(ctx context.Context, batch []*matrix.FMatrix2d) ([]float64, error)
}

// Runner encodes records, submits them as a single batch and labels the
// probabilities.
type Runner struct {
	Model     Predictor
	Encoder   encode.Encoder
	Threshold float64
	Log       *slog.Logger
}

// Run returns one Prediction per record, in record order.
func (r Runner) Run(ctx context.Context, recs []fasta.Record) ([]Prediction, error) {
	log := r.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(recs) == 0 {
		return nil, nil
	}

	seqs := make([][]byte, len(recs))
	for i, rec := range recs {
		seqs[i] = rec.Seq
	}
	batch := r.Encoder.EncodeAll(seqs)

	log.Debug("inference",
		"batch", len(batch),
		"length", r.Encoder.Length,
		"cpu", cpuid.CPU.BrandName,
		"avx2", cpuid.CPU.Supports(cpuid.AVX2),
	)
	start := time.Now()
	probs, err := r.Model.Predict(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if len(probs) != len(recs) {
		return nil, fmt.Errorf("predict: model returned %d probabilities for %d sequences", len(probs), len(recs))
	}
	log.Debug("inference done", "elapsed", time.Since(start))

	out := make([]Prediction, len(recs))
	for i, rec := range recs {
		out[i] = Prediction{
			ID:          rec.ID,
			Length:      len(rec.Seq),
			Truncated:   len(rec.Seq) > r.Encoder.Length,
			Probability: probs[i],
			Class:       Classify(probs[i], r.Threshold),
		}
	}
	return out, nil
}
