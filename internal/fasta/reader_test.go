package fasta

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const plain = `>seq1 first record
ACGT
acgt
>seq2
NNnn
>seq3 empty-ish

>seq4
GATTACA
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fn
}

// writeGz creates a gzipped FASTA file with provided data, returns the file path.
func writeGz(t *testing.T, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "test.fa.gz")
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return fn
}

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestReadFile_Plain(t *testing.T) {
	recs, err := ReadFile(context.Background(), writeFile(t, "x.fa", plain))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if d := cmp.Diff([]string{"seq1", "seq2", "seq3", "seq4"}, ids(recs)); d != "" {
		t.Fatalf("ids (-want +got):\n%s", d)
	}
	if got := string(recs[0].Seq); got != "ACGTacgt" {
		t.Fatalf("multi-line sequence joined wrong: %q", got)
	}
	if got := string(recs[3].Seq); got != "GATTACA" {
		t.Fatalf("seq4 = %q", got)
	}
}

func TestReadFile_Gzip(t *testing.T) {
	recs, err := ReadFile(context.Background(), writeGz(t, plain))
	if err != nil {
		t.Fatalf("ReadFile gz: %v", err)
	}
	if len(recs) != 4 || recs[1].ID != "seq2" {
		t.Fatalf("gzip parse failed, ids=%v", ids(recs))
	}
}

func TestReadFile_Stdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	recs, err := ReadFile(context.Background(), "-")
	if err != nil {
		t.Fatalf("stdin: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 records from stdin, got %d", len(recs))
	}
}

func TestReadFile_EmptyYieldsNoRecords(t *testing.T) {
	recs, err := ReadFile(context.Background(), writeFile(t, "empty.fa", ""))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("want 0 records, got %d", len(recs))
	}
}

func TestReadFile_MissingPath(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
	if err == nil || !strings.Contains(err.Error(), "nope.fa") {
		t.Fatalf("want open error naming the path, got %v", err)
	}
}

func TestRead_SequenceBeforeHeaderIsAnError(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader("ACGT\n>s\nACGT\n"))
	if err == nil {
		t.Fatalf("expected error for sequence line before first header")
	}
}

func TestRead_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Read(ctx, strings.NewReader(plain))
	if err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
