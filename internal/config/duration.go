package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"viewsim/internal/simulation"
)

// ParseTick parses a duration literal like "1h", "30m" or "15s". Fractional
// values are allowed ("1.5h"); any other suffix is a format error.
func ParseTick(s string) (time.Duration, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if len(trimmed) < 2 {
		return 0, fmt.Errorf("%w: unsupported tick_duration %q (use like \"1h\", \"30m\", \"15s\")", simulation.ErrConfig, s)
	}

	var unit time.Duration
	switch trimmed[len(trimmed)-1] {
	case 'h':
		unit = time.Hour
	case 'm':
		unit = time.Minute
	case 's':
		unit = time.Second
	default:
		return 0, fmt.Errorf("%w: unsupported tick_duration %q (use like \"1h\", \"30m\", \"15s\")", simulation.ErrConfig, s)
	}

	value, err := strconv.ParseFloat(trimmed[:len(trimmed)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unsupported tick_duration %q (use like \"1h\", \"30m\", \"15s\")", simulation.ErrConfig, s)
	}
	return time.Duration(value * float64(unit)), nil
}
