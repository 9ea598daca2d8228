package simulation

import (
	"errors"
	"time"
)

// Error kinds for eager input validation. The simulation loop itself never
// fails once its inputs are validated; exhausting the tick budget is a
// normal termination path.
var (
	// ErrConfig marks a defective engine or stage configuration.
	ErrConfig = errors.New("config error")
	// ErrInput marks a defective post row.
	ErrInput = errors.New("input error")
)

// StageCount is the number of growth stages posts can declare.
const StageCount = 13

// Post is one content item to simulate. Immutable input, consumed once per
// run.
type Post struct {
	ID         string
	Stage      int // 1..StageCount
	StartTime  time.Time
	SeedOffset int
}

// StageTarget bounds the cumulative view target drawn for posts in a stage.
type StageTarget struct {
	ViewsMin int
	ViewsMax int
}

// Config holds the engine parameters for one run. It is an explicit
// immutable value per invocation; the engine reads no ambient state.
type Config struct {
	// Location is the zone used for hour-of-day lookups and for start
	// timestamps that carry no zone of their own.
	Location *time.Location
	Tick     TickSpec

	IncrementMin int
	IncrementMax int

	// HourlyWeights maps hour-of-day (0..23) to a non-negative raw weight.
	// Missing hours take the uniform default. Normalized once per run.
	HourlyWeights map[int]float64

	// MaxTicks bounds every post's loop; it is the only termination
	// guarantee for targets that are approached slowly.
	MaxTicks int

	// HourCap, when positive, clamps the weighted increment of any single
	// tick before target clamping is applied.
	HourCap int
}

// Row is one emitted observation: a strictly positive view increment at a
// point in simulated time.
type Row struct {
	SequenceNo      int
	PostID          string
	Increment       int
	CumulativeViews int
	Timestamp       time.Time
}
