package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"viewsim/internal/simulation"
)

// Engine parameter defaults, applied when the YAML omits the field.
const (
	DefaultTimezone = "UTC"
	DefaultTick     = "1h"
	DefaultMaxHours = 336 // 14 days of hourly ticks
)

// tickDuration accepts either a scalar duration literal or a {min, max}
// mapping for jittered tick intervals.
type tickDuration struct {
	Fixed  string
	Min    string
	Max    string
	Ranged bool
}

func (t *tickDuration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.Fixed = value.Value
		return nil
	case yaml.MappingNode:
		var window struct {
			Min string `yaml:"min"`
			Max string `yaml:"max"`
		}
		if err := value.Decode(&window); err != nil {
			return err
		}
		t.Min, t.Max = window.Min, window.Max
		t.Ranged = true
		return nil
	default:
		return fmt.Errorf("tick_duration must be a duration string or a {min, max} mapping")
	}
}

type engineFile struct {
	Timezone     string       `yaml:"timezone"`
	TickDuration tickDuration `yaml:"tick_duration"`
	Increment    *struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"increment"`
	HourlyWeights map[string]float64 `yaml:"hourly_weights"`
	Limits        struct {
		MaxHours      int  `yaml:"max_hours"`
		SystemHourCap *int `yaml:"system_hour_cap"`
	} `yaml:"limits"`
}

// LoadEngine reads the engine parameter YAML and resolves it into a
// simulation.Config. Defaults: UTC, a fixed 1h tick, and a 336-tick budget.
func LoadEngine(path string) (simulation.Config, error) {
	var cfg simulation.Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading engine config: %v", simulation.ErrConfig, err)
	}
	var file engineFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("%w: parsing engine config %s: %v", simulation.ErrConfig, path, err)
	}

	tz := file.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("%w: unknown timezone %q", simulation.ErrConfig, tz)
	}
	cfg.Location = loc

	cfg.Tick, err = resolveTick(file.TickDuration)
	if err != nil {
		return cfg, err
	}

	if file.Increment == nil {
		return cfg, fmt.Errorf("%w: engine config %s is missing the increment section", simulation.ErrConfig, path)
	}
	cfg.IncrementMin = file.Increment.Min
	cfg.IncrementMax = file.Increment.Max

	cfg.HourlyWeights = make(map[int]float64, len(file.HourlyWeights))
	for key, w := range file.HourlyWeights {
		hour, err := strconv.Atoi(key)
		if err != nil {
			return cfg, fmt.Errorf("%w: hourly_weights key %q is not an hour", simulation.ErrConfig, key)
		}
		cfg.HourlyWeights[hour] = w
	}

	cfg.MaxTicks = file.Limits.MaxHours
	if cfg.MaxTicks == 0 {
		cfg.MaxTicks = DefaultMaxHours
	}
	if file.Limits.SystemHourCap != nil {
		cfg.HourCap = *file.Limits.SystemHourCap
	}

	return cfg, nil
}

func resolveTick(t tickDuration) (simulation.TickSpec, error) {
	if t.Ranged {
		minStr, maxStr := t.Min, t.Max
		if minStr == "" {
			minStr = DefaultTick
		}
		if maxStr == "" {
			maxStr = DefaultTick
		}
		min, err := ParseTick(minStr)
		if err != nil {
			return simulation.TickSpec{}, err
		}
		max, err := ParseTick(maxStr)
		if err != nil {
			return simulation.TickSpec{}, err
		}
		return simulation.RangeTick(min, max), nil
	}

	fixed := t.Fixed
	if fixed == "" {
		fixed = DefaultTick
	}
	d, err := ParseTick(fixed)
	if err != nil {
		return simulation.TickSpec{}, err
	}
	return simulation.FixedTick(d), nil
}
