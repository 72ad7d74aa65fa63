package nn

import (
	"encoding/json"
	"fmt"
)

// FormatName and FormatVersion identify the model file schema.
const (
	FormatName    = "argpred/sequential"
	FormatVersion = 1
)

// File is the on-disk model document.
type File struct {
	Format     string      `json:"format"`
	Version    int         `json:"version"`
	Name       string      `json:"name,omitempty"`
	InputShape []int       `json:"input_shape,omitempty"` // [steps, channels]; 0 steps = any
	Layers     []LayerSpec `json:"layers"`
}

// LayerSpec describes one layer. Which fields apply depends on Type.
type LayerSpec struct {
	Type       string `json:"type"`
	Activation string `json:"activation,omitempty"`

	Units      int    `json:"units,omitempty"`
	Filters    int    `json:"filters,omitempty"`
	KernelSize int    `json:"kernel_size,omitempty"`
	PoolSize   int    `json:"pool_size,omitempty"`
	Strides    int    `json:"strides,omitempty"`
	Padding    string `json:"padding,omitempty"`

	Rate    float64 `json:"rate,omitempty"`
	Epsilon float64 `json:"epsilon,omitempty"`

	Kernel json.RawMessage `json:"kernel,omitempty"`
	Bias   []float32       `json:"bias,omitempty"`

	Gamma          []float32 `json:"gamma,omitempty"`
	Beta           []float32 `json:"beta,omitempty"`
	MovingMean     []float32 `json:"moving_mean,omitempty"`
	MovingVariance []float32 `json:"moving_variance,omitempty"`
}

// Layer types.
const (
	TypeConv1D             = "conv1d"
	TypeMaxPool1D          = "max_pooling1d"
	TypeGlobalMaxPool1D    = "global_max_pooling1d"
	TypeGlobalAvgPool1D    = "global_average_pooling1d"
	TypeFlatten            = "flatten"
	TypeDense              = "dense"
	TypeBatchNormalization = "batch_normalization"
	TypeActivation         = "activation"
	TypeDropout            = "dropout"
)

func (ls LayerSpec) build() (Layer, error) {
	switch ls.Type {
	case TypeDense:
		return newDense(ls)
	case TypeConv1D:
		return newConv1D(ls)
	case TypeMaxPool1D:
		return newMaxPool1D(ls)
	case TypeGlobalMaxPool1D:
		return globalPool{avg: false}, nil
	case TypeGlobalAvgPool1D:
		return globalPool{avg: true}, nil
	case TypeFlatten:
		return flatten{}, nil
	case TypeBatchNormalization:
		return newBatchNorm(ls)
	case TypeActivation:
		a, err := lookupActivation(ls.Activation)
		if err != nil {
			return nil, err
		}
		return activationLayer{act: a}, nil
	case TypeDropout:
		if ls.Rate < 0 || ls.Rate >= 1 {
			return nil, fmt.Errorf("dropout rate %v outside [0,1)", ls.Rate)
		}
		return dropout{}, nil
	case "":
		return nil, fmt.Errorf("missing layer type")
	default:
		return nil, fmt.Errorf("unknown layer type %q", ls.Type)
	}
}
