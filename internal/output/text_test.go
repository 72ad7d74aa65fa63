package output

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"argpred/internal/predict"
)

func feed(list []predict.Prediction) <-chan predict.Prediction {
	in := make(chan predict.Prediction, len(list))
	for _, p := range list {
		in <- p
	}
	close(in)
	return in
}

func TestStreamText_Layout(t *testing.T) {
	var buf bytes.Buffer
	list := []predict.Prediction{
		{ID: "seq1", Probability: 0.7, Class: predict.ClassARG},
		{ID: "seq2", Probability: 0.12345, Class: predict.ClassNonARG},
	}
	if err := StreamText(&buf, feed(list), 0.5); err != nil {
		t.Fatalf("StreamText: %v", err)
	}
	want := "\n" +
		"PREDICTION RESULTS (Threshold: 0.50) ---\n" +
		"Sequence ID                    | Probability     | Class\n" +
		"-----------------------------------------------------------------\n" +
		"seq1                           | 0.7000          | ARG\n" +
		"seq2                           | 0.1235          | Non-ARG\n" +
		"-----------------------------------------------------------------\n"
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", d)
	}
}

func TestWriteText_LongIDIsNotCut(t *testing.T) {
	var buf bytes.Buffer
	id := "a_rather_long_identifier_over_thirty_chars"
	if err := WriteTextRow(&buf, predict.Prediction{ID: id, Probability: 1, Class: predict.ClassARG}); err != nil {
		t.Fatal(err)
	}
	if want := id + " | 1.0000          | ARG\n"; buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestStreamText_Empty(t *testing.T) {
	var buf bytes.Buffer
	in := make(chan predict.Prediction)
	close(in)
	if err := StreamText(&buf, in, 0.25); err != nil {
		t.Fatal(err)
	}
	want := "\nPREDICTION RESULTS (Threshold: 0.25) ---\n" +
		"Sequence ID                    | Probability     | Class\n" +
		rule + "\n" + rule + "\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}
