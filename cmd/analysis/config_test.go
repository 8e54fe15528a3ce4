package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, ParseConfig("", cfg))
	require.Len(t, cfg.Trials, 4)

	for _, tr := range cfg.Trials {
		require.NotZero(t, tr.Inserted, tr.Name)
		require.GreaterOrEqual(t, tr.Repeat, 1, tr.Name)
	}
}

func TestParseConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "analysis.toml")
	require.NoError(t, os.WriteFile(filename, []byte(`
seed = 42

[[trial]]
name = "small"
expected-items = 500
fp-rate = 0.05
probes = 1000

[[trial]]
expected-items = 100
fp-rate = 0.01
inserted = 50
repeat = 3
`), 0o644))

	cfg := NewConfig()
	require.NoError(t, ParseConfig(filename, cfg))

	require.Equal(t, uint64(42), cfg.Seed)
	require.Len(t, cfg.Trials, 2)

	require.Equal(t, "small", cfg.Trials[0].Name)
	require.Equal(t, uint64(500), cfg.Trials[0].Inserted)
	require.Equal(t, 1, cfg.Trials[0].Repeat)
	require.Equal(t, 0.05, cfg.Trials[0].FPRate)

	require.Equal(t, "trial-1", cfg.Trials[1].Name)
	require.Equal(t, uint64(50), cfg.Trials[1].Inserted)
	require.Equal(t, 3, cfg.Trials[1].Repeat)
}

func TestParseConfigErrors(t *testing.T) {
	dir := t.TempDir()

	require.Error(t, ParseConfig(filepath.Join(dir, "missing.toml"), NewConfig()))

	empty := filepath.Join(dir, "empty.toml")
	require.NoError(t, os.WriteFile(empty, []byte("seed = 1\n"), 0o644))
	require.Error(t, ParseConfig(empty, NewConfig()))

	negative := filepath.Join(dir, "negative.toml")
	require.NoError(t, os.WriteFile(negative, []byte("[[trial]]\nexpected-items = 10\nfp-rate = 0.1\nprobes = -1\n"), 0o644))
	require.Error(t, ParseConfig(negative, NewConfig()))
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintConfig(&buf, NewConfig()))
	require.Contains(t, buf.String(), "[[trial]]")
	require.Contains(t, buf.String(), `name = "1k-1pct"`)
}
