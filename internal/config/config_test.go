package config

import (
	"math"
	"strings"
	"testing"
)

func TestDefault_NeedsOnlyAModel(t *testing.T) {
	c := Default()
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "no model") {
		t.Fatalf("want missing model error, got %v", err)
	}
	c.Model = "m.json"
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults + model should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		want string
	}{
		{"threshold NaN", func(c *Config) { c.Threshold = math.NaN() }, "--threshold"},
		{"negative length", func(c *Config) { c.MaxLength = -1 }, "--max-length"},
		{"bad alphabet", func(c *Config) { c.Alphabet = "ACGU" }, "--alphabet"},
		{"bad output", func(c *Config) { c.Output = "fasta" }, "--output"},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, "log level"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "--log-format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			c.Model = "m.json"
			tc.mod(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidate_AnyFiniteThreshold(t *testing.T) {
	for _, thr := range []float64{0, 1, 1.5, -0.1, math.Inf(1)} {
		c := Default()
		c.Model = "m"
		c.Threshold = thr
		c.Output = "jsonl"
		c.LogFormat = "JSON"
		if err := c.Validate(); err != nil {
			t.Fatalf("threshold %v: %v", thr, err)
		}
		if in := thr >= 0 && thr <= 1; c.ThresholdInRange() != in {
			t.Fatalf("ThresholdInRange(%v) = %v, want %v", thr, !in, in)
		}
	}
}
