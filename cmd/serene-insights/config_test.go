package main

import (
	"flag"
	"io"
	"testing"
	"time"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return parseFlags(fs, args)
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parse(t, "-user", "u1")
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Days != 7 || cfg.OutDir != "insights-out" || cfg.Timeout != 60*time.Second {
		t.Fatalf("cfg=%+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"missing user", nil},
		{"days too small", []string{"-user", "u1", "-days", "0"}},
		{"days too large", []string{"-user", "u1", "-days", "400"}},
		{"empty out", []string{"-user", "u1", "-out", ""}},
		{"empty model without stats-only", []string{"-user", "u1", "-model", ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := parse(t, tc.args...)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate accepted %+v", cfg)
			}
		})
	}
}

func TestStatsOnlySkipsModelCheck(t *testing.T) {
	cfg, err := parse(t, "-user", "u1", "-model", "", "-stats-only")
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
