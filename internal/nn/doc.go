// Package nn loads and runs pretrained sequential networks.
//
// A model file is a JSON document:
//
//	{
//	  "format": "argpred/sequential",
//	  "version": 1,
//	  "name": "ARG Predictor",
//	  "input_shape": [2000, 4],
//	  "layers": [
//	    {"type": "conv1d", "kernel_size": 8, "filters": 32, "activation": "relu", "kernel": [...], "bias": [...]},
//	    {"type": "global_max_pooling1d"},
//	    {"type": "dense", "units": 1, "activation": "sigmoid", "kernel": [...], "bias": [...]}
//	  ]
//	}
//
// Weights use the Keras layouts: conv1d kernels are [kernel_size][in][filters]
// and dense kernels are [in][units], so weights exported from a Keras model
// load without transposition. Files may be gzip-compressed (detected by magic
// number) or LZW-compressed (".lzw" suffix, LSB order, 8-bit literals).
//
// Activations flow between layers as (steps x channels) matrices. Dense
// layers apply to each step independently; flatten and the global pooling
// layers collapse the steps to one row. A model is usable once Compile has
// checked every weight against the input shape.
package nn
