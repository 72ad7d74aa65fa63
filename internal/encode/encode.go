// Package encode turns nucleotide sequences into fixed-size one-hot tensors.
//
// A tensor has one row per position and one column per base of the
// Alphabet. Rows past the end of a sequence stay zero; bases past the
// target length are dropped.
package encode

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/matrix"
)

// Channels is the width of every encoded row.
const Channels = 4

// DefaultLength is the encoded length used when neither the caller nor the
// model names one.
const DefaultLength = 2000

// DefaultAlphabet is the column order the bundled models were trained with.
const DefaultAlphabet = "ATCG"

// Alphabet is the column order of the one-hot vector: Alphabet[i] is the
// upper-case base that sets column i.
type Alphabet [Channels]byte

// ParseAlphabet accepts any permutation of A, C, G and T (case-insensitive).
func ParseAlphabet(s string) (Alphabet, error) {
	var a Alphabet
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != Channels {
		return a, fmt.Errorf("alphabet %q: want %d bases, got %d", s, Channels, len(s))
	}
	var seen [256]bool
	for i := 0; i < Channels; i++ {
		c := s[i]
		switch c {
		case 'A', 'C', 'G', 'T':
		default:
			return a, fmt.Errorf("alphabet %q: %q is not one of A, C, G, T", s, c)
		}
		if seen[c] {
			return a, fmt.Errorf("alphabet %q: %q repeated", s, c)
		}
		seen[c] = true
		a[i] = c
	}
	return a, nil
}

// MustAlphabet is ParseAlphabet for constants.
func MustAlphabet(s string) Alphabet {
	a, err := ParseAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Alphabet) String() string { return string(a[:]) }

// Index returns the column set by base b, or -1 when b is not in the
// alphabet (N, IUPAC ambiguity codes, gaps, anything else).
func (a Alphabet) Index(b byte) int {
	if 'a' <= b && b <= 'z' {
		b -= 'a' - 'A'
	}
	for i, c := range a {
		if c != 0 && c == b {
			return i
		}
	}
	return -1
}

// Vector is defined for every byte: mapped bases give their one-hot row,
// everything else the zero row.
func (a Alphabet) Vector(b byte) (v [Channels]float32) {
	switch i := a.Index(b); {
	case i >= 0:
		v[i] = 1
		return v
	default:
		return [Channels]float32{}
	}
}

// Encoder holds the target length and alphabet chosen at startup.
type Encoder struct {
	Length   int
	Alphabet Alphabet
}

// New returns an Encoder producing Length x Channels tensors.
func New(length int, alphabet Alphabet) Encoder {
	return Encoder{Length: length, Alphabet: alphabet}
}

// Encode returns the one-hot tensor of seq.
func (e Encoder) Encode(seq []byte) *matrix.FMatrix2d {
	m := matrix.NewFMatrix2d(e.Length, Channels)
	n := min(len(seq), e.Length)
	for i := 0; i < n; i++ {
		v := e.Alphabet.Vector(seq[i])
		copy(m.Mat[i], v[:])
	}
	return m
}

// EncodeAll encodes seqs in order.
func (e Encoder) EncodeAll(seqs [][]byte) []*matrix.FMatrix2d {
	out := make([]*matrix.FMatrix2d, len(seqs))
	for i, s := range seqs {
		out[i] = e.Encode(s)
	}
	return out
}
