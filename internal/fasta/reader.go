// Package fasta reads FASTA records for classification.
package fasta

import (
	"context"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Record is one parsed FASTA entry. ID is the first word of the header.
type Record struct {
	ID  string
	Seq []byte
}

// ReadFile parses every record of path ("-" for stdin, gzip allowed).
func ReadFile(ctx context.Context, path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	recs, err := Read(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, nil
}

// Read parses FASTA from r in file order. Sequence letters are passed
// through untouched; validation is the encoder's business.
func Read(ctx context.Context, r io.Reader) ([]Record, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))

	var out []Record
	for sc.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("unexpected sequence type %T", sc.Seq())
		}
		seq := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			seq[i] = byte(l)
		}
		out = append(out, Record{ID: s.ID, Seq: seq})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
