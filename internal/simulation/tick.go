package simulation

import "time"

// TickSpec determines the simulated time elapsed between successive
// observations: either a fixed duration, or a duration sampled uniformly
// from an inclusive [Min, Max] window.
type TickSpec struct {
	Fixed  time.Duration
	Min    time.Duration
	Max    time.Duration
	Random bool
}

// FixedTick returns a spec that always advances by d.
func FixedTick(d time.Duration) TickSpec {
	return TickSpec{Fixed: d}
}

// RangeTick returns a spec sampling uniformly from [min, max]. An inverted
// window is swapped rather than rejected.
func RangeTick(min, max time.Duration) TickSpec {
	if max < min {
		min, max = max, min
	}
	return TickSpec{Min: min, Max: max, Random: true}
}

// Step returns the next interval. In range mode it consumes exactly one
// draw from rng and truncates the sampled interval to whole seconds.
func (ts TickSpec) Step(rng *Rand) time.Duration {
	if !ts.Random {
		return ts.Fixed
	}
	span := (ts.Max - ts.Min).Seconds()
	secs := ts.Min.Seconds() + rng.UniformFloat()*span
	return time.Duration(int64(secs)) * time.Second
}
