package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"argpred/internal/cli"
	"argpred/internal/cmdutil"
	"argpred/internal/encode"
	"argpred/internal/fasta"
	"argpred/internal/nn"
	"argpred/internal/output"
	"argpred/internal/predict"
	"argpred/internal/writers"
)

// run is one prediction pass: load the model, read the FASTA file, predict
// and write. Nothing reaches stdout unless every step before writing worked.
func run(ctx context.Context, flags *pflag.FlagSet, fastaPath string, stdout, stderr io.Writer) error {
	cfg, err := cli.Load(flags)
	if err != nil {
		return usageError(err)
	}
	log, err := cmdutil.NewLogger(stderr, cfg.LogLevel, cfg.LogFormat, cfg.Quiet)
	if err != nil {
		return usageError(err)
	}
	if !cfg.ThresholdInRange() {
		log.Warn("threshold outside [0, 1]; every sequence gets the same class", "threshold", cfg.Threshold)
	}
	fail := func(code int, msg string, err error, args ...any) error {
		if errors.Is(err, context.Canceled) {
			code, msg = ExitInterrupted, "interrupted"
		}
		log.Error(msg, append(args, "err", err)...)
		return &exitError{code: code, err: err, logged: true}
	}

	model, err := nn.Load(cfg.Model)
	if err != nil {
		return fail(ExitFailure, "load model", err, "path", cfg.Model)
	}
	length := resolveLength(cfg.MaxLength, model.InputSteps())
	if err := model.Compile(length, encode.Channels); err != nil {
		return fail(ExitFailure, "compile model", err, "path", cfg.Model, "max_length", length)
	}
	log.Info("model loaded", "path", cfg.Model, "name", model.Name(), "max_length", length)
	log.Debug("model layers", "summary", model.Summary())

	recs, err := fasta.ReadFile(ctx, fastaPath)
	if err != nil {
		return fail(ExitFailure, "read sequences", err, "path", fastaPath)
	}
	if len(recs) == 0 {
		log.Info("no sequences found", "path", fastaPath)
		return nil
	}
	log.Info("sequences read", "path", fastaPath, "count", len(recs))

	alphabet, _ := encode.ParseAlphabet(cfg.Alphabet) // validated by cli.Load
	runner := predict.Runner{
		Model:     model,
		Encoder:   encode.New(length, alphabet),
		Threshold: cfg.Threshold,
		Log:       log,
	}
	preds, err := runner.Run(ctx, recs)
	if err != nil {
		return fail(ExitFailure, "inference", err)
	}

	meta := output.Meta{
		RunID:     uuid.NewString(),
		Model:     model.Name(),
		Threshold: cfg.Threshold,
		MaxLength: length,
	}
	if err := write(stdout, cfg.Output, meta, !cfg.NoHeader, preds, log); err != nil {
		return fail(ExitWrite, "write results", err)
	}
	return nil
}

// resolveLength picks the encoded length: an explicit setting wins, then
// the model's declared input, then encode.DefaultLength. A setting that
// contradicts the model is left for Compile to reject.
func resolveLength(setting, declared int) int {
	switch {
	case setting > 0:
		return setting
	case declared > 0:
		return declared
	default:
		return encode.DefaultLength
	}
}

func write(out io.Writer, format string, meta output.Meta, header bool, preds []predict.Prediction, log *slog.Logger) error {
	in, done := writers.StartPredictionWriter(out, format, meta, header, len(preds))
	for _, p := range preds {
		in <- p
	}
	close(in)
	if err := <-done; writers.IsBrokenPipe(err) {
		log.Debug("output closed early", "err", err)
		return nil
	} else if err != nil {
		return err
	}
	return nil
}
