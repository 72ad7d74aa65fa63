// internal/cli/flags.go
package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"argpred/internal/config"
	"argpred/internal/encode"
	"argpred/internal/writers"
)

// FlagConfig names the config file flag. It is not itself a setting.
const FlagConfig = "config"

// Register adds every argpred flag to fs with its default.
func Register(fs *pflag.FlagSet) {
	d := config.Default()

	// Model
	fs.StringP(config.KeyModel, "m", d.Model, "model file (.json, .json.gz or .lzw) [*]")
	fs.Int(config.KeyMaxLength, d.MaxLength, "encoded sequence length (0 = from model, else "+strconv.Itoa(encode.DefaultLength)+")")
	fs.String(config.KeyAlphabet, d.Alphabet, "one-hot column order, a permutation of ACGT")

	// Classification
	fs.Float64(config.KeyThreshold, d.Threshold, "probability cutoff; p > threshold is ARG")

	// Output
	fs.StringP(config.KeyOutput, "o", d.Output, "output format: "+strings.Join(writers.Registered(), " | "))
	fs.Bool(config.KeyNoHeader, d.NoHeader, "suppress header line in TSV")

	// Diagnostics
	fs.String(config.KeyLogLevel, d.LogLevel, "log level: debug | info | warn | error")
	fs.String(config.KeyLogFormat, d.LogFormat, "log format: text | json")
	fs.BoolP(config.KeyQuiet, "q", d.Quiet, "suppress log output on stderr")

	fs.String(FlagConfig, "", "config file (yaml, toml or json)")
}
