package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"

	"argpred/internal/output"
	"argpred/internal/predict"
	"argpred/pkg/api"
)

var sample = []predict.Prediction{
	{ID: "seq1", Probability: 0.7, Class: predict.ClassARG, Length: 5},
	{ID: "seq2", Probability: 0.1, Class: predict.ClassNonARG, Length: 2},
}

func run(t *testing.T, w io.Writer, format string, header bool) error {
	t.Helper()
	in, done := StartPredictionWriter(w, format, output.Meta{Threshold: 0.5, RunID: "r"}, header, 1)
	for _, p := range sample {
		in <- p
	}
	close(in)
	return <-done
}

func TestRegistry_AllFormats(t *testing.T) {
	if d := cmp.Diff([]string{"json", "jsonl", "text", "tsv"}, Registered()); d != "" {
		t.Fatalf("registered formats (-want +got):\n%s", d)
	}
}

func TestUnknownFormatError(t *testing.T) {
	var b bytes.Buffer
	err := run(t, &b, "nope-format", false)
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("want 'unknown output format' error, got: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("unexpected output: %q", b.String())
	}
}

func TestStartPredictionWriter_Text(t *testing.T) {
	var b bytes.Buffer
	if err := run(t, &b, output.FormatText, false); err != nil {
		t.Fatal(err)
	}
	want := "\n" +
		"PREDICTION RESULTS (Threshold: 0.50) ---\n" +
		"Sequence ID                    | Probability     | Class\n" +
		"-----------------------------------------------------------------\n" +
		"seq1                           | 0.7000          | ARG\n" +
		"seq2                           | 0.1000          | Non-ARG\n" +
		"-----------------------------------------------------------------\n"
	if d := cmp.Diff(want, b.String()); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
}

func TestStartPredictionWriter_TSV(t *testing.T) {
	var b bytes.Buffer
	if err := run(t, &b, output.FormatTSV, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 || lines[0] != output.TSVHeader || !strings.HasPrefix(lines[2], "seq2\t") {
		t.Fatalf("unexpected tsv:\n%s", b.String())
	}
}

func TestStartPredictionWriter_JSON(t *testing.T) {
	var b bytes.Buffer
	if err := run(t, &b, output.FormatJSON, false); err != nil {
		t.Fatal(err)
	}
	var got api.ReportV1
	if err := json.Unmarshal(b.Bytes(), &got); err != nil || len(got.Predictions) != 2 || got.RunID != "r" {
		t.Fatalf("json roundtrip: %v %+v", err, got)
	}
}

func TestStartPredictionWriter_JSONL(t *testing.T) {
	var b bytes.Buffer
	if err := run(t, &b, output.FormatJSONL, false); err != nil {
		t.Fatal(err)
	}
	sc := bufio.NewScanner(&b)
	var ids []string
	for sc.Scan() {
		var v api.PredictionV1
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		ids = append(ids, v.SequenceID)
	}
	if d := cmp.Diff([]string{"seq1", "seq2"}, ids); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
}

type errWriter struct{ err error }

func (e errWriter) Write([]byte) (int, error) { return 0, e.err }

func TestStartPredictionWriter_WriteErrorDoesNotBlock(t *testing.T) {
	boom := errors.New("boom")
	err := run(t, errWriter{boom}, output.FormatText, false)
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("x"), false},
		{syscall.EPIPE, true},
		{io.ErrClosedPipe, true},
		{fmt.Errorf("write stdout: %w", syscall.EPIPE), true},
	}
	for _, c := range cases {
		if got := IsBrokenPipe(c.err); got != c.want {
			t.Errorf("IsBrokenPipe(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
