package baseline

import (
	"context"
	"time"

	"qsched/internal/binpack"
	"qsched/internal/makespan"
	"qsched/internal/qjob"
	"qsched/internal/sched"
)

// Solver is the deterministic first-fit baseline scheduler: a greedy
// single-pass packer plus the finish-time makespan score. It never
// backtracks or rebalances once a job is placed; its point is to be the
// fast, low-quality reference other schedulers are measured against.
type Solver struct {
	Cfg Config
}

// New returns a baseline solver with a validated configuration.
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Schedule packs the instance's jobs into machine-bound time slots and
// scores the resulting assignment. Pure and deterministic: the same
// instance always yields the same schedule and makespan.
func (s *Solver) Schedule(ctx context.Context, inst *qjob.Instance) (sched.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return sched.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return sched.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return sched.Result{}, err
	}

	bins, err := binpack.Pack(inst.Jobs, inst.Machines)
	if err != nil {
		return sched.Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return sched.Result{}, err
	}

	score := makespan.Score
	if s.Cfg.Strict {
		score = makespan.StrictScore
	}
	ms, records, err := makespan.Evaluate(bins, inst, score)
	if err != nil {
		return sched.Result{}, err
	}

	generations := 0
	if n := len(bins); n > 0 {
		generations = bins[n-1].Generation + 1
	}

	res := sched.Result{
		Makespan:    ms,
		Records:     records,
		Bins:        len(bins),
		Generations: generations,
		Meta: map[string]any{
			"strict": s.Cfg.Strict,
		},
	}
	res.Duration = time.Since(start)
	return res, nil
}
