// Package writers turns predictions into serialized output.
//
// Design:
//   - Writers own all presentation: the results table, TSV, JSON and JSONL.
//   - Inference stays presentation-free; the app only sends predictions.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
