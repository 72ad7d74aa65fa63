package nn

import (
	"fmt"
	"math"
)

// Activation names.
const (
	ActLinear  = "linear"
	ActReLU    = "relu"
	ActSigmoid = "sigmoid"
	ActTanh    = "tanh"
)

type activation struct {
	name string
	fn   func(float32) float32 // nil is the identity
}

func lookupActivation(name string) (activation, error) {
	switch name {
	case "", ActLinear:
		return activation{name: ActLinear}, nil
	case ActReLU:
		return activation{name: name, fn: relu}, nil
	case ActSigmoid:
		return activation{name: name, fn: sigmoid}, nil
	case ActTanh:
		return activation{name: name, fn: tanh}, nil
	default:
		return activation{}, fmt.Errorf("unknown activation %q", name)
	}
}

func (a activation) apply(row []float32) {
	if a.fn == nil {
		return
	}
	for i, v := range row {
		row[i] = a.fn(v)
	}
}

func relu(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

func tanh(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}
