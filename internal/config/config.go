// Package config holds the resolved settings of one argpred run.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"argpred/internal/cmdutil"
	"argpred/internal/encode"
	"argpred/internal/output"
)

// Keys shared by flags, environment variables and config files.
const (
	KeyModel     = "model"
	KeyThreshold = "threshold"
	KeyMaxLength = "max-length"
	KeyAlphabet  = "alphabet"
	KeyOutput    = "output"
	KeyNoHeader  = "no-header"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyQuiet     = "quiet"
)

// Keys lists every setting in flag order.
var Keys = []string{
	KeyModel, KeyThreshold, KeyMaxLength, KeyAlphabet, KeyOutput,
	KeyNoHeader, KeyLogLevel, KeyLogFormat, KeyQuiet,
}

// Defaults.
const (
	DefaultThreshold = 0.5
	DefaultOutput    = output.FormatText
	DefaultLogLevel  = "warn"
	DefaultLogFormat = cmdutil.LogText
)

// Config is the viper unmarshal target.
type Config struct {
	// Model is the path to the model file.
	Model string `mapstructure:"model"`

	// Threshold is the probability above which a sequence is an ARG.
	Threshold float64 `mapstructure:"threshold"`

	// MaxLength is the encoded length; 0 takes it from the model.
	MaxLength int `mapstructure:"max-length"`

	// Alphabet is the one-hot column order.
	Alphabet string `mapstructure:"alphabet"`

	Output   string `mapstructure:"output"`
	NoHeader bool   `mapstructure:"no-header"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	Quiet     bool   `mapstructure:"quiet"`
}

// Default returns a Config with every default filled in.
func Default() Config {
	return Config{
		Threshold: DefaultThreshold,
		Alphabet:  encode.DefaultAlphabet,
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// ThresholdInRange reports whether Threshold lies in [0, 1]. Any other value
// is still usable: every sequence lands in the same class.
func (c Config) ThresholdInRange() bool {
	return c.Threshold >= 0 && c.Threshold <= 1
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("no model given (use --model, ARGPRED_MODEL or the config file)")
	}
	if math.IsNaN(c.Threshold) {
		return errors.New("--threshold must be a number, got NaN")
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("--max-length must be ≥ 0, got %d", c.MaxLength)
	}
	if _, err := encode.ParseAlphabet(c.Alphabet); err != nil {
		return fmt.Errorf("--alphabet: %w", err)
	}
	if !validOutput(c.Output) {
		return fmt.Errorf("invalid --output %q (want %s)", c.Output, strings.Join(output.Formats, ", "))
	}
	if _, err := cmdutil.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if f := strings.ToLower(c.LogFormat); f != cmdutil.LogText && f != cmdutil.LogJSON {
		return fmt.Errorf("invalid --log-format %q (want text or json)", c.LogFormat)
	}
	return nil
}

func validOutput(s string) bool {
	for _, f := range output.Formats {
		if s == f {
			return true
		}
	}
	return false
}
