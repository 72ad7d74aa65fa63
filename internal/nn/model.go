package nn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andrew-torda/matrix"
)

// Model is a sequential network. Build one with New, Decode or Load, then
// Compile it for the input shape before calling Predict.
type Model struct {
	name     string
	declared Shape // zero fields are unconstrained
	layers   []Layer

	in     Shape
	shapes []Shape // output shape of each layer, set by Compile
}

// New builds a model from its file description.
func New(f File) (*Model, error) {
	if f.Format != FormatName {
		return nil, fmt.Errorf("unknown model format %q (want %q)", f.Format, FormatName)
	}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported model version %d (want %d)", f.Version, FormatVersion)
	}
	if len(f.Layers) == 0 {
		return nil, errors.New("model has no layers")
	}
	m := &Model{name: f.Name}
	switch len(f.InputShape) {
	case 0:
	case 2:
		if f.InputShape[0] < 0 || f.InputShape[1] < 0 {
			return nil, fmt.Errorf("negative input_shape %v", f.InputShape)
		}
		m.declared = Shape{Steps: f.InputShape[0], Channels: f.InputShape[1]}
	default:
		return nil, fmt.Errorf("input_shape %v: want [steps, channels]", f.InputShape)
	}
	for i, ls := range f.Layers {
		l, err := ls.build()
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, ls.Type, err)
		}
		m.layers = append(m.layers, l)
	}
	return m, nil
}

// Name is the model's self-reported name.
func (m *Model) Name() string { return m.name }

// InputSteps is the declared input length, or 0 when the model accepts any.
func (m *Model) InputSteps() int { return m.declared.Steps }

// Compile fixes the input shape and validates every layer against it.
// The network must reduce to a single value squashed by a sigmoid.
func (m *Model) Compile(steps, channels int) error {
	if steps < 1 || channels < 1 {
		return fmt.Errorf("input shape (%d, %d) must be positive", steps, channels)
	}
	if m.declared.Steps != 0 && m.declared.Steps != steps {
		return fmt.Errorf("model expects %d input steps, got %d", m.declared.Steps, steps)
	}
	if m.declared.Channels != 0 && m.declared.Channels != channels {
		return fmt.Errorf("model expects %d input channels, got %d", m.declared.Channels, channels)
	}
	in := Shape{Steps: steps, Channels: channels}
	shapes := make([]Shape, len(m.layers))
	cur, act := in, ActLinear
	for i, l := range m.layers {
		out, err := l.OutShape(cur)
		if err != nil {
			return fmt.Errorf("layer %d (%s) on input %v: %w", i, l.Type(), cur, err)
		}
		shapes[i], cur = out, out
		act = l.outActivation(act)
	}
	if cur != (Shape{Steps: 1, Channels: 1}) {
		return fmt.Errorf("model output shape %v, want (1, 1)", cur)
	}
	if act != ActSigmoid {
		return fmt.Errorf("model output activation %q, want %q", act, ActSigmoid)
	}
	m.in, m.shapes = in, shapes
	return nil
}

// Summary lists the layers with their compiled output shapes.
func (m *Model) Summary() string {
	var b strings.Builder
	for i, l := range m.layers {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(l.Type())
		if i < len(m.shapes) {
			b.WriteString(m.shapes[i].String())
		}
	}
	return b.String()
}

// Forward runs one input through the network and returns its output.
func (m *Model) Forward(x *matrix.FMatrix2d) (float32, error) {
	if m.shapes == nil {
		return 0, errors.New("model not compiled")
	}
	if steps, ch := x.Size(); steps != m.in.Steps || ch != m.in.Channels {
		return 0, fmt.Errorf("input shape (%d, %d), model compiled for %v", steps, ch, m.in)
	}
	for _, l := range m.layers {
		x = l.Forward(x)
	}
	return x.Mat[0][0], nil
}

// Predict returns one probability per input, in input order. The batch is
// processed sequentially; ctx is checked between inputs.
func (m *Model) Predict(ctx context.Context, batch []*matrix.FMatrix2d) ([]float64, error) {
	out := make([]float64, len(batch))
	for i, x := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := m.Forward(x)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		out[i] = float64(p)
	}
	return out, nil
}
