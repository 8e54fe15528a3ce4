package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Config describes a set of trials.
type Config struct {
	// Seed fixes the salt tables of every trial. Zero draws random salts.
	Seed   uint64  `toml:"seed"`
	Trials []Trial `toml:"trial"`
}

// Trial describes one filter to fill and probe.
type Trial struct {
	Name          string  `toml:"name"`
	ExpectedItems uint64  `toml:"expected-items"`
	FPRate        float64 `toml:"fp-rate"`
	// Inserted is the number of distinct elements recorded. Zero means
	// ExpectedItems.
	Inserted uint64 `toml:"inserted"`
	// Repeat is how many times each inserted element is recorded.
	Repeat int `toml:"repeat"`
	// Probes is the number of never-recorded elements queried.
	Probes int `toml:"probes"`
}

// NewConfig returns the default trial set.
func NewConfig() *Config {
	return &Config{
		Trials: []Trial{
			{Name: "1k-1pct", ExpectedItems: 1000, FPRate: 0.01, Repeat: 1, Probes: 100_000},
			{Name: "100k-0.1pct", ExpectedItems: 100_000, FPRate: 0.001, Repeat: 1, Probes: 1_000_000},
			{Name: "10k-1pct-overfilled", ExpectedItems: 10_000, FPRate: 0.01, Inserted: 20_000, Repeat: 1, Probes: 100_000},
			{Name: "10k-1pct-repeat-5", ExpectedItems: 10_000, FPRate: 0.01, Repeat: 5, Probes: 100_000},
		},
	}
}

// ParseConfig decodes filename over the defaults in cfg. An empty filename
// leaves cfg unchanged.
func ParseConfig(filename string, cfg *Config) error {
	if filename != "" {
		// A file replaces the default trial list rather than appending to it.
		cfg.Trials = nil
		if _, err := toml.DecodeFile(filename, cfg); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

// Validate fills in defaults and checks every trial.
func (c *Config) Validate() error {
	if len(c.Trials) == 0 {
		return fmt.Errorf("no trials configured")
	}
	for i := range c.Trials {
		t := &c.Trials[i]
		if t.Name == "" {
			t.Name = fmt.Sprintf("trial-%d", i)
		}
		if t.Inserted == 0 {
			t.Inserted = t.ExpectedItems
		}
		if t.Repeat == 0 {
			t.Repeat = 1
		}
		if t.Repeat < 0 || t.Probes < 0 {
			return fmt.Errorf("trial %q: repeat and probes must not be negative", t.Name)
		}
	}
	return nil
}

// PrintConfig writes cfg as TOML.
func PrintConfig(w io.Writer, cfg *Config) error {
	buf := new(bytes.Buffer)

	encoder := toml.NewEncoder(buf)
	encoder.Indent = ""

	if err := encoder.Encode(cfg); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}
