package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"viewsim/internal/simulation"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEngine_FixedTick(t *testing.T) {
	path := writeTemp(t, "engine.yml", `
timezone: Asia/Seoul
tick_duration: 30m
increment:
  min: 5
  max: 60
hourly_weights:
  "9": 1.0
limits:
  max_hours: 48
  system_hour_cap: 100
`)
	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Location.String() != "Asia/Seoul" {
		t.Errorf("timezone = %s, want Asia/Seoul", cfg.Location)
	}
	if cfg.Tick.Random || cfg.Tick.Fixed != 30*time.Minute {
		t.Errorf("tick = %+v, want fixed 30m", cfg.Tick)
	}
	if cfg.IncrementMin != 5 || cfg.IncrementMax != 60 {
		t.Errorf("increment bounds = (%d, %d), want (5, 60)", cfg.IncrementMin, cfg.IncrementMax)
	}
	if cfg.HourlyWeights[9] != 1.0 {
		t.Errorf("hourly_weights[9] = %v, want 1.0", cfg.HourlyWeights[9])
	}
	if cfg.MaxTicks != 48 {
		t.Errorf("max_ticks = %d, want 48", cfg.MaxTicks)
	}
	if cfg.HourCap != 100 {
		t.Errorf("hour cap = %d, want 100", cfg.HourCap)
	}
}

func TestLoadEngine_RangeTick(t *testing.T) {
	path := writeTemp(t, "engine.yml", `
tick_duration:
  min: 90m
  max: 15m
increment:
  min: 1
  max: 10
`)
	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Tick.Random {
		t.Fatal("expected a range tick")
	}
	// Inverted windows are swapped, not rejected.
	if cfg.Tick.Min != 15*time.Minute || cfg.Tick.Max != 90*time.Minute {
		t.Errorf("window = [%s, %s], want [15m, 90m]", cfg.Tick.Min, cfg.Tick.Max)
	}
}

func TestLoadEngine_Defaults(t *testing.T) {
	path := writeTemp(t, "engine.yml", `
increment:
  min: 1
  max: 10
`)
	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Location != time.UTC {
		t.Errorf("default timezone = %s, want UTC", cfg.Location)
	}
	if cfg.Tick.Random || cfg.Tick.Fixed != time.Hour {
		t.Errorf("default tick = %+v, want fixed 1h", cfg.Tick)
	}
	if cfg.MaxTicks != DefaultMaxHours {
		t.Errorf("default max_ticks = %d, want %d", cfg.MaxTicks, DefaultMaxHours)
	}
	if cfg.HourCap != 0 {
		t.Errorf("default hour cap = %d, want 0 (disabled)", cfg.HourCap)
	}
}

func TestLoadEngine_Errors(t *testing.T) {
	cases := map[string]string{
		"missing increment": `
timezone: UTC
`,
		"bad timezone": `
timezone: Mars/Olympus
increment: {min: 1, max: 2}
`,
		"bad tick": `
tick_duration: 10d
increment: {min: 1, max: 2}
`,
		"bad weight key": `
increment: {min: 1, max: 2}
hourly_weights:
  "noon": 1.0
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, "engine.yml", content)
			if _, err := LoadEngine(path); !errors.Is(err, simulation.ErrConfig) {
				t.Errorf("got %v, want ErrConfig", err)
			}
		})
	}
	if _, err := LoadEngine(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, simulation.ErrConfig) {
		t.Errorf("missing file: got %v, want ErrConfig", err)
	}
}
