package nn

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/andrew-torda/matrix"
)

// Shape is the (steps x channels) shape of an activation.
type Shape struct {
	Steps    int
	Channels int
}

func (s Shape) String() string { return fmt.Sprintf("(%d, %d)", s.Steps, s.Channels) }

// Layer is one stage of a sequential model.
type Layer interface {
	Type() string
	// OutShape validates the layer against its input shape.
	OutShape(in Shape) (Shape, error)
	// Forward never modifies x.
	Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d
	// outActivation is the activation last applied to this layer's output,
	// given the one applied to its input.
	outActivation(prev string) string
}

const (
	paddingValid = "valid"
	paddingSame  = "same"
)

func parsePadding(p string) (string, error) {
	switch p {
	case "", paddingValid:
		return paddingValid, nil
	case paddingSame:
		return paddingSame, nil
	default:
		return "", fmt.Errorf("unknown padding %q", p)
	}
}

// window returns the output length and left padding of a sliding window
// of width size moved by stride over steps positions.
func window(steps, size, stride int, padding string) (out, padLeft int, err error) {
	if padding == paddingSame {
		out = (steps + stride - 1) / stride
		pad := (out-1)*stride + size - steps
		if pad < 0 {
			pad = 0
		}
		return out, pad / 2, nil
	}
	if steps < size {
		return 0, 0, fmt.Errorf("window %d longer than input %d", size, steps)
	}
	return (steps-size)/stride + 1, 0, nil
}

// ---------------- dense ----------------

type dense struct {
	kernel [][]float32 // [in][units]
	bias   []float32
	act    activation
}

func newDense(ls LayerSpec) (*dense, error) {
	var k [][]float32
	if err := decodeKernel(ls.Kernel, &k); err != nil {
		return nil, err
	}
	if len(k) == 0 || len(k[0]) == 0 {
		return nil, errors.New("empty kernel")
	}
	units := len(k[0])
	for i, row := range k {
		if len(row) != units {
			return nil, fmt.Errorf("kernel row %d has %d units, want %d", i, len(row), units)
		}
	}
	if ls.Units != 0 && ls.Units != units {
		return nil, fmt.Errorf("units %d but kernel has %d columns", ls.Units, units)
	}
	if len(ls.Bias) != 0 && len(ls.Bias) != units {
		return nil, fmt.Errorf("bias has %d entries, want %d", len(ls.Bias), units)
	}
	act, err := lookupActivation(ls.Activation)
	if err != nil {
		return nil, err
	}
	return &dense{kernel: k, bias: ls.Bias, act: act}, nil
}

func (d *dense) Type() string                { return TypeDense }
func (d *dense) outActivation(string) string { return d.act.name }

func (d *dense) OutShape(in Shape) (Shape, error) {
	if in.Channels != len(d.kernel) {
		return Shape{}, fmt.Errorf("kernel expects %d inputs, got %d", len(d.kernel), in.Channels)
	}
	return Shape{Steps: in.Steps, Channels: len(d.kernel[0])}, nil
}

func (d *dense) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d {
	steps, _ := x.Size()
	y := matrix.NewFMatrix2d(steps, len(d.kernel[0]))
	for t, in := range x.Mat {
		row := y.Mat[t]
		copy(row, d.bias)
		for i, v := range in {
			if v == 0 {
				continue
			}
			for u, w := range d.kernel[i] {
				row[u] += v * w
			}
		}
		d.act.apply(row)
	}
	return y
}

// ---------------- conv1d ----------------

type conv1D struct {
	kernel  [][][]float32 // [k][in][filters]
	bias    []float32
	stride  int
	padding string
	act     activation
}

func newConv1D(ls LayerSpec) (*conv1D, error) {
	var k [][][]float32
	if err := decodeKernel(ls.Kernel, &k); err != nil {
		return nil, err
	}
	if len(k) == 0 || len(k[0]) == 0 || len(k[0][0]) == 0 {
		return nil, errors.New("empty kernel")
	}
	in, filters := len(k[0]), len(k[0][0])
	for i := range k {
		if len(k[i]) != in {
			return nil, fmt.Errorf("kernel tap %d has %d input channels, want %d", i, len(k[i]), in)
		}
		for j := range k[i] {
			if len(k[i][j]) != filters {
				return nil, fmt.Errorf("kernel tap %d channel %d has %d filters, want %d", i, j, len(k[i][j]), filters)
			}
		}
	}
	if ls.KernelSize != 0 && ls.KernelSize != len(k) {
		return nil, fmt.Errorf("kernel_size %d but kernel has %d taps", ls.KernelSize, len(k))
	}
	if ls.Filters != 0 && ls.Filters != filters {
		return nil, fmt.Errorf("filters %d but kernel has %d", ls.Filters, filters)
	}
	if len(ls.Bias) != 0 && len(ls.Bias) != filters {
		return nil, fmt.Errorf("bias has %d entries, want %d", len(ls.Bias), filters)
	}
	stride := ls.Strides
	if stride == 0 {
		stride = 1
	}
	if stride < 0 {
		return nil, fmt.Errorf("negative strides %d", stride)
	}
	padding, err := parsePadding(ls.Padding)
	if err != nil {
		return nil, err
	}
	act, err := lookupActivation(ls.Activation)
	if err != nil {
		return nil, err
	}
	return &conv1D{kernel: k, bias: ls.Bias, stride: stride, padding: padding, act: act}, nil
}

func (c *conv1D) Type() string                { return TypeConv1D }
func (c *conv1D) outActivation(string) string { return c.act.name }

func (c *conv1D) OutShape(in Shape) (Shape, error) {
	if in.Channels != len(c.kernel[0]) {
		return Shape{}, fmt.Errorf("kernel expects %d input channels, got %d", len(c.kernel[0]), in.Channels)
	}
	out, _, err := window(in.Steps, len(c.kernel), c.stride, c.padding)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Steps: out, Channels: len(c.kernel[0][0])}, nil
}

func (c *conv1D) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d {
	steps, _ := x.Size()
	out, padLeft, _ := window(steps, len(c.kernel), c.stride, c.padding)
	y := matrix.NewFMatrix2d(out, len(c.kernel[0][0]))
	for t := 0; t < out; t++ {
		row := y.Mat[t]
		copy(row, c.bias)
		start := t*c.stride - padLeft
		for k, tap := range c.kernel {
			p := start + k
			if p < 0 || p >= steps {
				continue
			}
			for ci, v := range x.Mat[p] {
				if v == 0 {
					continue
				}
				for f, w := range tap[ci] {
					row[f] += v * w
				}
			}
		}
		c.act.apply(row)
	}
	return y
}

// ---------------- max_pooling1d ----------------

type maxPool1D struct {
	pool    int
	stride  int
	padding string
}

func newMaxPool1D(ls LayerSpec) (*maxPool1D, error) {
	pool := ls.PoolSize
	if pool == 0 {
		pool = 2
	}
	stride := ls.Strides
	if stride == 0 {
		stride = pool
	}
	if pool < 0 || stride < 0 {
		return nil, fmt.Errorf("negative pool_size/strides %d/%d", pool, stride)
	}
	padding, err := parsePadding(ls.Padding)
	if err != nil {
		return nil, err
	}
	return &maxPool1D{pool: pool, stride: stride, padding: padding}, nil
}

func (m *maxPool1D) Type() string                     { return TypeMaxPool1D }
func (m *maxPool1D) outActivation(prev string) string { return prev }

func (m *maxPool1D) OutShape(in Shape) (Shape, error) {
	out, _, err := window(in.Steps, m.pool, m.stride, m.padding)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Steps: out, Channels: in.Channels}, nil
}

func (m *maxPool1D) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d {
	steps, ch := x.Size()
	out, padLeft, _ := window(steps, m.pool, m.stride, m.padding)
	y := matrix.NewFMatrix2d(out, ch)
	for t := 0; t < out; t++ {
		row := y.Mat[t]
		for c := range row {
			row[c] = float32(math.Inf(-1))
		}
		start := t*m.stride - padLeft
		for p := max(start, 0); p < start+m.pool && p < steps; p++ {
			for c, v := range x.Mat[p] {
				if v > row[c] {
					row[c] = v
				}
			}
		}
	}
	return y
}

// ---------------- global pooling ----------------

type globalPool struct{ avg bool }

func (g globalPool) Type() string {
	if g.avg {
		return TypeGlobalAvgPool1D
	}
	return TypeGlobalMaxPool1D
}

func (g globalPool) outActivation(prev string) string { return prev }

func (g globalPool) OutShape(in Shape) (Shape, error) {
	if in.Steps < 1 {
		return Shape{}, errors.New("no steps to pool")
	}
	return Shape{Steps: 1, Channels: in.Channels}, nil
}

func (g globalPool) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d {
	steps, ch := x.Size()
	y := matrix.NewFMatrix2d(1, ch)
	row := y.Mat[0]
	copy(row, x.Mat[0])
	for _, in := range x.Mat[1:] {
		for c, v := range in {
			if g.avg {
				row[c] += v
			} else if v > row[c] {
				row[c] = v
			}
		}
	}
	if g.avg {
		for c := range row {
			row[c] /= float32(steps)
		}
	}
	return y
}

// ---------------- flatten ----------------

type flatten struct{}

func (flatten) Type() string                     { return TypeFlatten }
func (flatten) outActivation(prev string) string { return prev }

func (flatten) OutShape(in Shape) (Shape, error) {
	return Shape{Steps: 1, Channels: in.Steps * in.Channels}, nil
}

// Forward flattens row-major, matching Keras' Flatten on (steps, channels).
func (flatten) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d {
	steps, ch := x.Size()
	y := matrix.NewFMatrix2d(1, steps*ch)
	for t, in := range x.Mat {
		copy(y.Mat[0][t*ch:], in)
	}
	return y
}

// ---------------- batch_normalization ----------------

type batchNorm struct {
	scale []float32
	shift []float32
}

func newBatchNorm(ls LayerSpec) (*batchNorm, error) {
	n := len(ls.MovingMean)
	if n == 0 || len(ls.MovingVariance) != n {
		return nil, fmt.Errorf("moving_mean/moving_variance lengths %d/%d", n, len(ls.MovingVariance))
	}
	if len(ls.Gamma) != 0 && len(ls.Gamma) != n {
		return nil, fmt.Errorf("gamma has %d entries, want %d", len(ls.Gamma), n)
	}
	if len(ls.Beta) != 0 && len(ls.Beta) != n {
		return nil, fmt.Errorf("beta has %d entries, want %d", len(ls.Beta), n)
	}
	eps := ls.Epsilon
	if eps == 0 {
		eps = 1e-3
	}
	b := &batchNorm{scale: make([]float32, n), shift: make([]float32, n)}
	for c := 0; c < n; c++ {
		if ls.MovingVariance[c] < 0 {
			return nil, fmt.Errorf("negative moving_variance at %d", c)
		}
		gamma := float64(1)
		if len(ls.Gamma) != 0 {
			gamma = float64(ls.Gamma[c])
		}
		var beta float64
		if len(ls.Beta) != 0 {
			beta = float64(ls.Beta[c])
		}
		s := gamma / math.Sqrt(float64(ls.MovingVariance[c])+eps)
		b.scale[c] = float32(s)
		b.shift[c] = float32(beta - float64(ls.MovingMean[c])*s)
	}
	return b, nil
}

func (b *batchNorm) Type() string                { return TypeBatchNormalization }
func (b *batchNorm) outActivation(string) string { return ActLinear }

func (b *batchNorm) OutShape(in Shape) (Shape, error) {
	if in.Channels != len(b.scale) {
		return Shape{}, fmt.Errorf("has %d channels, input has %d", len(b.scale), in.Channels)
	}
	return in, nil
}

func (b *batchNorm) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d {
	steps, ch := x.Size()
	y := matrix.NewFMatrix2d(steps, ch)
	for t, in := range x.Mat {
		for c, v := range in {
			y.Mat[t][c] = v*b.scale[c] + b.shift[c]
		}
	}
	return y
}

// ---------------- activation / dropout ----------------

type activationLayer struct{ act activation }

func (a activationLayer) Type() string                { return TypeActivation }
func (a activationLayer) outActivation(string) string { return a.act.name }

func (a activationLayer) OutShape(in Shape) (Shape, error) { return in, nil }

func (a activationLayer) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d {
	steps, ch := x.Size()
	y := matrix.NewFMatrix2d(steps, ch)
	for t, in := range x.Mat {
		copy(y.Mat[t], in)
		a.act.apply(y.Mat[t])
	}
	return y
}

// dropout is the identity at inference time.
type dropout struct{}

func (dropout) Type() string                     { return TypeDropout }
func (dropout) outActivation(prev string) string { return prev }

func (dropout) OutShape(in Shape) (Shape, error)              { return in, nil }
func (dropout) Forward(x *matrix.FMatrix2d) *matrix.FMatrix2d { return x }

func decodeKernel(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errors.New("missing kernel")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("kernel: %w", err)
	}
	return nil
}
