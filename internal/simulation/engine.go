package simulation

import (
	"fmt"
	"math"
	"time"
)

// Engine runs the deterministic view-count simulation. Weights are
// normalized once at construction; per-post randomness comes from private
// PRNG streams derived from the global seed, so posts have no cross-post
// data dependency.
type Engine struct {
	cfg     Config
	stages  map[int]StageTarget
	weights map[int]float64
	seed    int64
}

// NewEngine validates cfg and the stage table and returns a ready engine.
// All configuration defects are reported here, before any post is touched.
func NewEngine(cfg Config, stages map[int]StageTarget, globalSeed int64) (*Engine, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.IncrementMin < 1 {
		return nil, fmt.Errorf("%w: increment.min must be >= 1, got %d", ErrConfig, cfg.IncrementMin)
	}
	if cfg.IncrementMax < cfg.IncrementMin {
		return nil, fmt.Errorf("%w: increment.max %d below increment.min %d", ErrConfig, cfg.IncrementMax, cfg.IncrementMin)
	}
	if cfg.MaxTicks < 1 {
		return nil, fmt.Errorf("%w: max_hours must be >= 1, got %d", ErrConfig, cfg.MaxTicks)
	}
	if cfg.HourCap < 0 {
		return nil, fmt.Errorf("%w: system_hour_cap must be >= 1, got %d", ErrConfig, cfg.HourCap)
	}
	if !cfg.Tick.Random && cfg.Tick.Fixed <= 0 {
		return nil, fmt.Errorf("%w: tick_duration must be positive, got %s", ErrConfig, cfg.Tick.Fixed)
	}
	for h, w := range cfg.HourlyWeights {
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("%w: hourly_weights key %d outside 0..23", ErrConfig, h)
		}
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("%w: hourly_weights[%d] must be non-negative, got %v", ErrConfig, h, w)
		}
	}
	for id, st := range stages {
		if st.ViewsMin < 1 {
			return nil, fmt.Errorf("%w: stage %d views_min must be >= 1, got %d", ErrConfig, id, st.ViewsMin)
		}
		if st.ViewsMax < st.ViewsMin {
			return nil, fmt.Errorf("%w: stage %d views_max %d below views_min %d", ErrConfig, id, st.ViewsMax, st.ViewsMin)
		}
	}

	return &Engine{
		cfg:     cfg,
		stages:  stages,
		weights: NormalizeWeights(cfg.HourlyWeights),
		seed:    globalSeed,
	}, nil
}

// validatePost rejects defective post rows before their loop starts. A
// stage outside the declared range is a bad post; a stage in range but
// absent from the table is an incomplete table.
func (e *Engine) validatePost(p Post) error {
	if p.ID == "" {
		return fmt.Errorf("%w: post with empty post_id", ErrInput)
	}
	if p.StartTime.IsZero() {
		return fmt.Errorf("%w: post %q has no start_datetime", ErrInput, p.ID)
	}
	if p.Stage < 1 || p.Stage > StageCount {
		return fmt.Errorf("%w: post %q references unknown stage %d", ErrInput, p.ID, p.Stage)
	}
	if _, ok := e.stages[p.Stage]; !ok {
		return fmt.Errorf("%w: no stage table entry for stage %d (post %q)", ErrConfig, p.Stage, p.ID)
	}
	return nil
}

func (e *Engine) validatePosts(posts []Post) error {
	for _, p := range posts {
		if err := e.validatePost(p); err != nil {
			return err
		}
	}
	return nil
}

// Run simulates every post in input order and returns all emitted rows with
// a single strictly increasing sequence counter. Validation is eager: no
// row is produced if any post or stage entry is defective.
func (e *Engine) Run(posts []Post) ([]Row, error) {
	if err := e.validatePosts(posts); err != nil {
		return nil, err
	}
	var rows []Row
	for _, p := range posts {
		rows = appendNumbered(rows, e.simulatePost(p))
	}
	return rows, nil
}

// appendNumbered extends rows with one post's rows, stamping the shared
// 1-based sequence counter.
func appendNumbered(rows, postRows []Row) []Row {
	for _, r := range postRows {
		r.SequenceNo = len(rows) + 1
		rows = append(rows, r)
	}
	return rows
}

// simulatePost runs the per-post loop. The PRNG call order is fixed: one
// draw for the target, then per tick one draw for the base increment and,
// in range-tick mode, one draw for the interval. Changing this order breaks
// reproducibility.
func (e *Engine) simulatePost(p Post) []Row {
	rng := NewRand(DeriveSeed(e.seed, p.ID, p.SeedOffset))

	st := e.stages[p.Stage]
	target := rng.UniformInt(st.ViewsMin, st.ViewsMax)

	var rows []Row
	cum := 0
	t := p.StartTime
	for k := 0; k < e.cfg.MaxTicks; k++ {
		w := e.weights[t.In(e.cfg.Location).Hour()]
		base := rng.UniformInt(e.cfg.IncrementMin, e.cfg.IncrementMax)
		incRaw := float64(base) * (w / meanHourWeight)
		inc := int(math.Floor(math.Max(0, incRaw)))
		if e.cfg.HourCap > 0 && inc > e.cfg.HourCap {
			inc = e.cfg.HourCap
		}

		remaining := target - cum
		if remaining <= 0 {
			break
		}
		if remaining <= e.cfg.IncrementMin {
			// Forced final increment: lands exactly on target even when
			// the remainder is below the configured minimum.
			inc = remaining
		} else if inc > 0 {
			// A zero-weight hour contributes no growth and emits no row;
			// only nonzero increments are pulled into bounds.
			if inc < e.cfg.IncrementMin {
				inc = e.cfg.IncrementMin
			}
			if inc > e.cfg.IncrementMax {
				inc = e.cfg.IncrementMax
			}
			if inc > remaining {
				inc = remaining
			}
		}

		if inc > 0 {
			cum += inc
			rows = append(rows, Row{
				PostID:          p.ID,
				Increment:       inc,
				CumulativeViews: cum,
				Timestamp:       t,
			})
			if cum >= target {
				break
			}
		}

		t = t.Add(e.cfg.Tick.Step(rng))
	}
	return rows
}
