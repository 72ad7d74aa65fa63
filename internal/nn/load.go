package nn

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"compress/lzw"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// LoadError reports a model file that could not be turned into a Model.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load model %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load memory-maps the model file at path and decodes it. The mapping is
// released before Load returns.
func Load(path string) (*Model, error) {
	m, err := load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return m, nil
}

func load(path string) (*Model, error) {
	if path == "" {
		return nil, errors.New("no model path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, errors.New("is a directory")
	}
	if st.Size() == 0 {
		return nil, errors.New("empty file")
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	defer func() { _ = data.Unmap() }()

	r, closeFn, err := decompressor(path, data)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return Decode(r)
}

// decompressor picks gzip by magic number and LZW by ".lzw" suffix.
func decompressor(path string, data []byte) (io.Reader, func(), error) {
	br := bytes.NewReader(data)
	switch {
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return gr, func() { _ = gr.Close() }, nil
	case strings.HasSuffix(path, ".lzw"):
		lr := lzw.NewReader(br, lzw.LSB, 8)
		return lr, func() { _ = lr.Close() }, nil
	default:
		return br, func() {}, nil
	}
}

// Decode reads one JSON model document from r.
func Decode(r io.Reader) (*Model, error) {
	var f File
	dec := json.NewDecoder(bufio.NewReader(r))
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(f)
}

// Save writes f to path, compressing by suffix (".gz" gzip, ".lzw" LZW).
func Save(path string, f File) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	err = Encode(fh, f, compressionFor(path))
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	return err
}

// Compression selects the container Encode writes.
type Compression int

const (
	CompressNone Compression = iota
	CompressGzip
	CompressLZW
)

func compressionFor(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressGzip
	case strings.HasSuffix(path, ".lzw"):
		return CompressLZW
	}
	return CompressNone
}

// Encode writes f as JSON to w in the given container.
func Encode(w io.Writer, f File, c Compression) error {
	var wc io.WriteCloser
	switch c {
	case CompressGzip:
		wc = gzip.NewWriter(w)
	case CompressLZW:
		wc = lzw.NewWriter(w, lzw.LSB, 8)
	default:
		return json.NewEncoder(w).Encode(f)
	}
	if err := json.NewEncoder(wc).Encode(f); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}
